// Package storage persists the payment and purchase lists. Loading
// returns both lists; saving rewrites them wholesale and leaves a
// timestamped backup behind.
package storage

import (
	"context"

	"finanzas/internal/core"
)

// Repository is the persistence contract of the record lists.
type Repository interface {
	// Load returns the stored payments and purchases. Records always carry
	// the kind of the list they were read from.
	Load(ctx context.Context) (payments, purchases []core.Record, err error)

	// Save replaces the stored lists. A failed backup is logged, not
	// returned.
	Save(ctx context.Context, payments, purchases []core.Record) error

	// LastBackup returns the path of the backup written by the latest
	// successful Save, or "" when none was written.
	LastBackup() string

	Close() error
}

func withKind(records []core.Record, kind core.Kind) []core.Record {
	for i := range records {
		records[i].Kind = kind
	}
	return records
}
