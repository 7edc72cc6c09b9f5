package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	backupPrefix     = "datos_"
	backupTimeLayout = "20060102_150405"
)

// Backups writes timestamped copies of saved data into Dir, keeping the
// newest Max of them. Max <= 0 keeps every copy.
type Backups struct {
	Dir string
	Max int
	Now func() time.Time
}

// path returns a free backup file name for a save made now. Saves within
// the same second get a _001, _002 ... suffix, which still sorts after the
// plain name.
func (b Backups) path(ext string) string {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	base := filepath.Join(b.Dir, backupPrefix+now().Format(backupTimeLayout))
	name := base + ext
	for seq := 1; fileExists(name); seq++ {
		name = fmt.Sprintf("%s_%03d%s", base, seq, ext)
	}
	return name
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Enabled reports whether a backup directory is configured.
func (b Backups) Enabled() bool {
	return b.Dir != ""
}

// Copy stores data as a new backup and prunes old ones.
func (b Backups) Copy(data []byte, ext string) (string, error) {
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	dst := b.path(ext)
	if err := writeFileAtomic(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := b.prune(ext); err != nil {
		return dst, err
	}
	return dst, nil
}

// List returns the backups with extension ext, oldest first.
func (b Backups) List(ext string) ([]string, error) {
	entries, err := os.ReadDir(b.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || filepath.Ext(name) != ext {
			continue
		}
		out = append(out, filepath.Join(b.Dir, name))
	}
	// The timestamp layout sorts lexically.
	sort.Strings(out)
	return out, nil
}

func (b Backups) prune(ext string) error {
	if b.Max <= 0 {
		return nil
	}
	files, err := b.List(ext)
	if err != nil {
		return err
	}
	for len(files) > b.Max {
		if err := os.Remove(files[0]); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove old backup: %w", err)
		}
		files = files[1:]
	}
	return nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never see a partial file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
