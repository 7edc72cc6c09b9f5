package backend

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzas/internal/config"
	"finanzas/internal/storage"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	_, err = FromAppConfig(&config.Config{DataBackend: "memory"})
	assert.Error(t, err)

	cfg, err := FromAppConfig(&config.Config{
		DataBackend:  "sqlite",
		DataFile:     "datos.json",
		SQLiteDBPath: "finanzas.db",
		BackupDir:    "backups",
		MaxBackups:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, SQLiteBackend, cfg.Type)
	assert.Equal(t, "finanzas.db", cfg.SQLiteDBPath)
	assert.Equal(t, 3, cfg.MaxBackups)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"json ok", Config{Type: JSONBackend, DataFile: "d.json"}, false},
		{"json without file", Config{Type: JSONBackend}, true},
		{"sqlite ok", Config{Type: SQLiteBackend, SQLiteDBPath: "d.db"}, false},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"unknown type", Config{Type: "sheets"}, true},
		{"negative backups", Config{Type: JSONBackend, DataFile: "d.json", MaxBackups: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "error = %v", err)
		})
	}
	assert.Equal(t, []string{"json", "sqlite"}, GetBackendTypeStrings())
}

func TestFactory_CreateBackend(t *testing.T) {
	dir := t.TempDir()
	factory := NewFactory(quietLogger())
	ctx := context.Background()

	t.Run("json", func(t *testing.T) {
		res, err := factory.CreateBackend(ctx, Config{Type: JSONBackend, DataFile: filepath.Join(dir, "datos.json")})
		require.NoError(t, err)
		defer res.Cleanup()

		assert.IsType(t, &storage.FileRepository{}, res.Repository)
		assert.Nil(t, res.Notifier)
	})

	t.Run("sqlite", func(t *testing.T) {
		res, err := factory.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "finanzas.db")})
		require.NoError(t, err)

		assert.IsType(t, &storage.SQLiteRepository{}, res.Repository)
		assert.NoError(t, res.Cleanup())
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := factory.CreateBackend(ctx, Config{Type: "memory"})
		assert.Error(t, err)
	})
}
