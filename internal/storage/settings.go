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

	"finanzas/internal/core"
)

// SettingsFile reads and writes the JSON config file holding salary,
// budgets and savings goals.
type SettingsFile struct {
	path   string
	logger *slog.Logger
}

func NewSettingsFile(path string, logger *slog.Logger) *SettingsFile {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsFile{path: path, logger: logger}
}

// Load reads the config file. A missing or empty file yields default
// settings.
func (f *SettingsFile) Load(ctx context.Context) (core.Settings, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.logger.DebugContext(ctx, "Config file not found, using defaults", "path", f.path)
		return core.DefaultSettings(), nil
	}
	if err != nil {
		return core.Settings{}, fmt.Errorf("read config file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return core.DefaultSettings(), nil
	}

	var s core.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return core.Settings{}, fmt.Errorf("decode config file %s: %w", f.path, err)
	}
	return s, nil
}

// Save rewrites the config file.
func (f *SettingsFile) Save(ctx context.Context, s core.Settings) error {
	if len(s.SavingsGoals) == 0 {
		s.SavingsGoals = json.RawMessage("[]")
	}
	if s.SalaryHistory == nil {
		s.SalaryHistory = core.SalaryHistory{}
	}
	if s.Budgets == nil {
		s.Budgets = core.Budgets{}
	}

	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}
	if err := writeFileAtomic(f.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	f.logger.InfoContext(ctx, "Config file saved", "path", f.path)
	return nil
}
