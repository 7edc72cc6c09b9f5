package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"finanzas/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository stores both lists in one table, in list order.
type SQLiteRepository struct {
	db      *sql.DB
	path    string
	backups Backups
	logger  *slog.Logger

	mu         sync.Mutex
	lastBackup string
}

// NewSQLiteRepository opens the database at dbPath and migrates it.
func NewSQLiteRepository(dbPath string, backups Backups, logger *slog.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer; also keeps VACUUM INTO off concurrent connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		path:    dbPath,
		backups: backups,
		logger:  logger,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const selectRecords = `
SELECT uid, name, amount, date, category, method, status,
       recurring, frequency, until_date, generated, parent_id
FROM records
WHERE kind = ?
ORDER BY position`

// Load reads both lists in their stored order.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Record, []core.Record, error) {
	payments, err := r.loadKind(ctx, core.Payment)
	if err != nil {
		return nil, nil, err
	}
	purchases, err := r.loadKind(ctx, core.Purchase)
	if err != nil {
		return nil, nil, err
	}

	r.logger.DebugContext(ctx, "Records loaded from SQLite",
		"path", r.path,
		"payments", len(payments),
		"purchases", len(purchases))

	return payments, purchases, nil
}

func (r *SQLiteRepository) loadKind(ctx context.Context, kind core.Kind) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx, selectRecords, kind.String())
	if err != nil {
		return nil, fmt.Errorf("query %s records: %w", kind, err)
	}
	defer rows.Close()

	out := []core.Record{}
	for rows.Next() {
		var (
			rec       core.Record
			amount    string
			status    string
			recurring int64
			generated int64
		)
		if err := rows.Scan(
			&rec.UID, &rec.Name, &amount, &rec.Date, &rec.Category, &rec.Method, &status,
			&recurring, &rec.Frequency, &rec.Until, &generated, &rec.ParentID,
		); err != nil {
			return nil, fmt.Errorf("scan %s record: %w", kind, err)
		}
		rec.Kind = kind
		rec.Amount = core.CoerceAmount(amount)
		rec.Status = core.ParseStatus(status)
		rec.Recurring = recurring != 0
		rec.Generated = generated != 0
		rec.Category = rec.CategoryOrDefault()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s records: %w", kind, err)
	}
	return out, nil
}

const insertRecord = `
INSERT INTO records (
    uid, kind, position, name, amount, date, category, method, status,
    recurring, frequency, until_date, generated, parent_id
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Save replaces every stored record in one transaction, then writes a
// backup copy of the database.
func (r *SQLiteRepository) Save(ctx context.Context, payments, purchases []core.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertRecord)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	insert := func(records []core.Record, kind core.Kind) error {
		for i, rec := range records {
			_, err := stmt.ExecContext(ctx,
				rec.UID, kind.String(), i, rec.Name, rec.Amount.String(), rec.Date,
				rec.CategoryOrDefault(), rec.Method, string(core.ParseStatus(string(rec.Status))),
				boolInt(rec.Recurring), rec.Frequency, rec.Until, boolInt(rec.Generated), rec.ParentID,
			)
			if err != nil {
				return fmt.Errorf("insert %s %s: %w", kind, rec.UID, err)
			}
		}
		return nil
	}
	if err := insert(payments, core.Payment); err != nil {
		return err
	}
	if err := insert(purchases, core.Purchase); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit records: %w", err)
	}

	r.logger.InfoContext(ctx, "Records saved to SQLite",
		"path", r.path,
		"payments", len(payments),
		"purchases", len(purchases))

	backup := ""
	if r.backups.Enabled() {
		path, err := r.backup(ctx)
		if err != nil {
			r.logger.WarnContext(ctx, "Backup failed", "dir", r.backups.Dir, "error", err)
		}
		backup = path
	}

	r.mu.Lock()
	r.lastBackup = backup
	r.mu.Unlock()

	return nil
}

// backup snapshots the database with VACUUM INTO.
func (r *SQLiteRepository) backup(ctx context.Context) (string, error) {
	if err := os.MkdirAll(r.backups.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	dst := r.backups.path(".db")
	// VACUUM INTO refuses to overwrite; two saves within a second share a name.
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("replace backup: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `VACUUM INTO ?`, dst); err != nil {
		return "", fmt.Errorf("vacuum into %s: %w", dst, err)
	}
	if err := r.backups.prune(".db"); err != nil {
		return dst, err
	}
	return dst, nil
}

func (r *SQLiteRepository) LastBackup() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastBackup
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ Repository = (*SQLiteRepository)(nil)
