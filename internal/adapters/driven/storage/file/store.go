// Package file provides filesystem-backed implementations of the
// storage ports. One JSON document per record; the directory listing is
// the source of truth, so a restart always sees exactly the committed
// state. Every write goes through a temp-then-rename so readers never
// observe a partial record.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

// Subdirectories of the data directory.
const (
	artifactsDir = "artifacts"
	historyDir   = "history"
	rawDir       = "raw"
	backupDir    = "backup"
)

const recordExt = ".json"

// Layout maps the data directory to the per-concern subdirectories.
// All file stores share one Layout so paths agree across adapters.
type Layout struct {
	dataDir string
}

// NewLayout creates a layout rooted at dataDir.
// If dataDir is empty, defaults to ~/.finsight/data.
func NewLayout(dataDir string) (Layout, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Layout{}, fmt.Errorf("get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".finsight", "data")
	}
	return Layout{dataDir: dataDir}, nil
}

// DataDir returns the root data directory.
func (l Layout) DataDir() string { return l.dataDir }

// ArtifactsDir returns the extracted-artifact directory.
func (l Layout) ArtifactsDir() string { return filepath.Join(l.dataDir, artifactsDir) }

// GroupDir returns the artifact directory for one group.
func (l Layout) GroupDir(group string) string { return filepath.Join(l.ArtifactsDir(), group) }

// HistoryDir returns the session history directory.
func (l Layout) HistoryDir() string { return filepath.Join(l.dataDir, historyDir) }

// RawDir returns the raw upload directory.
func (l Layout) RawDir() string { return filepath.Join(l.dataDir, rawDir) }

// BackupDir returns the backup area for migration copies.
func (l Layout) BackupDir() string { return filepath.Join(l.dataDir, backupDir) }

// GroupsFile returns the group registry file path.
func (l Layout) GroupsFile() string { return filepath.Join(l.dataDir, "groups.json") }

// validName rejects names that would escape their directory or collide
// with the temp-file convention.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return !strings.HasPrefix(name, ".tmp-")
}

// writeJSONAtomic marshals v and writes it to path via a temp file in
// the same directory followed by a rename. The rename is what makes a
// save atomic: a crash leaves either the old record or the new one,
// never a torn file.
func writeJSONAtomic(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit %s: %w", filepath.Base(path), err)
	}
	return nil
}

// readJSON unmarshals the record at path into v.
// Returns domain.ErrNotFound when the file does not exist.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
