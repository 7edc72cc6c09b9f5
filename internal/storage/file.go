package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"finanzas/internal/core"
)

// dataFile is the layout of the JSON data file.
type dataFile struct {
	Pagos   []core.Record `json:"pagos"`
	Compras []core.Record `json:"compras"`
}

// FileRepository stores both lists in a single JSON file.
type FileRepository struct {
	path    string
	backups Backups
	logger  *slog.Logger

	mu         sync.Mutex
	lastBackup string
}

// NewFileRepository creates a repository for the data file at path. Backups
// are skipped when backups.Dir is empty.
func NewFileRepository(path string, backups Backups, logger *slog.Logger) *FileRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileRepository{
		path:    path,
		backups: backups,
		logger:  logger,
	}
}

// Path returns the data file location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the data file. A missing file yields two empty lists.
func (r *FileRepository) Load(ctx context.Context) ([]core.Record, []core.Record, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.InfoContext(ctx, "Data file not found, starting empty", "path", r.path)
		return []core.Record{}, []core.Record{}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read data file: %w", err)
	}

	var df dataFile
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &df); err != nil {
			return nil, nil, fmt.Errorf("decode data file %s: %w", r.path, err)
		}
	}
	if df.Pagos == nil {
		df.Pagos = []core.Record{}
	}
	if df.Compras == nil {
		df.Compras = []core.Record{}
	}

	r.logger.DebugContext(ctx, "Data file loaded",
		"path", r.path,
		"payments", len(df.Pagos),
		"purchases", len(df.Compras))

	return withKind(df.Pagos, core.Payment), withKind(df.Compras, core.Purchase), nil
}

// Save rewrites the data file and copies it into the backup directory.
func (r *FileRepository) Save(ctx context.Context, payments, purchases []core.Record) error {
	df := dataFile{
		Pagos:   withKind(append([]core.Record{}, payments...), core.Payment),
		Compras: withKind(append([]core.Record{}, purchases...), core.Purchase),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(df); err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}

	if err := writeFileAtomic(r.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}

	r.logger.InfoContext(ctx, "Data file saved",
		"path", r.path,
		"payments", len(payments),
		"purchases", len(purchases))

	backup := ""
	if r.backups.Enabled() {
		path, err := r.backups.Copy(buf.Bytes(), ".json")
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

func (r *FileRepository) LastBackup() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastBackup
}

func (r *FileRepository) Close() error {
	return nil
}

var _ Repository = (*FileRepository)(nil)
