package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore persists artifacts as one JSON file per record under
// <data>/artifacts/<group>/<file>.json. The per-group directory IS the
// group index: membership queries are directory listings, and the
// structured key never suffers the prefix ambiguity of the old flat
// "group_file.json" layout. Flat records at the artifacts root are
// leftovers from that layout; they are surfaced through the Legacy
// methods for the migrator.
type ArtifactStore struct {
	layout Layout

	// now is swappable so tests can pin ExtractedAt.
	now func() time.Time
}

// artifactRecord is the on-disk schema.
type artifactRecord struct {
	SchemaVersion      int           `json:"schema_version"`
	GroupName          string        `json:"group_name"`
	OriginalFilename   string        `json:"original_filename"`
	StoredPath         string        `json:"stored_path,omitempty"`
	Text               string        `json:"text"`
	Tables             []tableRecord `json:"tables,omitempty"`
	ExtractedAt        time.Time     `json:"extracted_at"`
	MigratedFromLegacy bool          `json:"migrated_from_legacy,omitempty"`
}

type tableRecord struct {
	Page    int        `json:"page"`
	Index   int        `json:"table_index"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// NewArtifactStore creates a filesystem artifact store.
func NewArtifactStore(layout Layout) *ArtifactStore {
	return &ArtifactStore{layout: layout, now: time.Now}
}

// SetClock overrides the store's clock. Test helper.
func (s *ArtifactStore) SetClock(now func() time.Time) { s.now = now }

func (s *ArtifactStore) recordPath(key domain.ArtifactKey) string {
	return filepath.Join(s.layout.GroupDir(key.Group), key.File+recordExt)
}

// Save stores or overwrites an artifact, stamping ExtractedAt.
func (s *ArtifactStore) Save(_ context.Context, artifact *domain.Artifact) error {
	if artifact == nil {
		return domain.ErrInvalidInput
	}
	key := artifact.Key
	if !validName(key.Group) || !validName(key.File) {
		return fmt.Errorf("artifact key %q: %w", key, domain.ErrInvalidInput)
	}

	rec := artifactRecord{
		SchemaVersion:      domain.ArtifactSchemaVersion,
		GroupName:          key.Group,
		OriginalFilename:   key.File,
		StoredPath:         artifact.StoredPath,
		Text:               artifact.Text,
		Tables:             toTableRecords(artifact.Tables),
		ExtractedAt:        s.now(),
		MigratedFromLegacy: artifact.MigratedFromLegacy,
	}
	return writeJSONAtomic(s.recordPath(key), rec)
}

// Load retrieves an artifact by key.
func (s *ArtifactStore) Load(_ context.Context, key domain.ArtifactKey) (*domain.Artifact, error) {
	if !validName(key.Group) || !validName(key.File) {
		return nil, domain.ErrNotFound
	}
	var rec artifactRecord
	if err := readJSON(s.recordPath(key), &rec); err != nil {
		return nil, err
	}
	return rec.toDomain(key), nil
}

// List returns every artifact key, sorted by (group, file).
// Recomputed from the directory tree on every call.
func (s *ArtifactStore) List(_ context.Context) ([]domain.ArtifactKey, error) {
	entries, err := os.ReadDir(s.layout.ArtifactsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list artifacts: %w", err)
	}

	var keys []domain.ArtifactKey
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		groupKeys, err := s.listGroupDir(entry.Name())
		if err != nil {
			return nil, err
		}
		keys = append(keys, groupKeys...)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys, nil
}

// ListGroup returns the keys owned by one group, sorted by file.
func (s *ArtifactStore) ListGroup(_ context.Context, group string) ([]domain.ArtifactKey, error) {
	if !validName(group) {
		return nil, nil
	}
	keys, err := s.listGroupDir(group)
	if err != nil {
		return nil, err
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys, nil
}

func (s *ArtifactStore) listGroupDir(group string) ([]domain.ArtifactKey, error) {
	entries, err := os.ReadDir(s.layout.GroupDir(group))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list group %s: %w", group, err)
	}
	var keys []domain.ArtifactKey
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) || !validName(name) {
			continue
		}
		keys = append(keys, domain.ArtifactKey{
			Group: group,
			File:  strings.TrimSuffix(name, recordExt),
		})
	}
	return keys, nil
}

// Delete removes an artifact record. Returns false when absent.
func (s *ArtifactStore) Delete(_ context.Context, key domain.ArtifactKey) (bool, error) {
	if !validName(key.Group) || !validName(key.File) {
		return false, nil
	}
	err := os.Remove(s.recordPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete %s: %w", key, err)
	}
	// Drop the group directory once empty so List stays clean. Best
	// effort: a non-empty directory is expected and not an error.
	_ = os.Remove(s.layout.GroupDir(key.Group))
	return true, nil
}

// ListLegacy returns flat records at the artifacts root, left behind by
// the pre-group layout.
func (s *ArtifactStore) ListLegacy(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.layout.ArtifactsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) || !validName(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// LoadLegacy reads a flat legacy record by its file name.
func (s *ArtifactStore) LoadLegacy(_ context.Context, name string) (*domain.Artifact, error) {
	if !validName(name) {
		return nil, domain.ErrNotFound
	}
	var rec artifactRecord
	if err := readJSON(filepath.Join(s.layout.ArtifactsDir(), name), &rec); err != nil {
		return nil, err
	}
	a := rec.toDomain(domain.ArtifactKey{})
	if a.OriginalFilename == "" {
		a.OriginalFilename = strings.TrimSuffix(name, recordExt)
	}
	return a, nil
}

// BackupLegacy copies a flat legacy record into <data>/backup/<tag>/,
// verifying the copy is byte-complete by size before reporting success.
func (s *ArtifactStore) BackupLegacy(_ context.Context, name, tag string) (string, error) {
	if !validName(name) {
		return "", domain.ErrNotFound
	}
	if !validName(tag) {
		return "", fmt.Errorf("backup tag %q: %w", tag, domain.ErrInvalidInput)
	}
	src := filepath.Join(s.layout.ArtifactsDir(), name)
	dir := filepath.Join(s.layout.BackupDir(), tag)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	dst := filepath.Join(dir, name)
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("backup %s: %w", name, err)
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("backup %s: %w", name, err)
	}
	dstInfo, err := os.Stat(dst)
	if err != nil {
		return "", fmt.Errorf("backup %s: %w", name, err)
	}
	if srcInfo.Size() != dstInfo.Size() {
		return "", fmt.Errorf("backup %s: incomplete copy", name)
	}
	return dir, nil
}

// DeleteLegacy removes a flat legacy record. Returns false when absent.
func (s *ArtifactStore) DeleteLegacy(_ context.Context, name string) (bool, error) {
	if !validName(name) {
		return false, nil
	}
	err := os.Remove(filepath.Join(s.layout.ArtifactsDir(), name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete legacy %s: %w", name, err)
	}
	return true, nil
}

func (r artifactRecord) toDomain(key domain.ArtifactKey) *domain.Artifact {
	group := key.Group
	if group == "" {
		group = r.GroupName
	}
	file := key.File
	if file == "" {
		file = r.OriginalFilename
	}
	return &domain.Artifact{
		Key:                domain.ArtifactKey{Group: group, File: file},
		GroupName:          r.GroupName,
		OriginalFilename:   r.OriginalFilename,
		StoredPath:         r.StoredPath,
		Text:               r.Text,
		Tables:             toDomainTables(r.Tables),
		ExtractedAt:        r.ExtractedAt,
		SchemaVersion:      r.SchemaVersion,
		MigratedFromLegacy: r.MigratedFromLegacy,
	}
}

func toTableRecords(tables []domain.Table) []tableRecord {
	if len(tables) == 0 {
		return nil
	}
	recs := make([]tableRecord, len(tables))
	for i, t := range tables {
		recs[i] = tableRecord{Page: t.Page, Index: t.Index, Headers: t.Headers, Rows: t.Rows}
	}
	return recs
}

func toDomainTables(recs []tableRecord) []domain.Table {
	if len(recs) == 0 {
		return nil
	}
	tables := make([]domain.Table, len(recs))
	for i, r := range recs {
		tables[i] = domain.Table{Page: r.Page, Index: r.Index, Headers: r.Headers, Rows: r.Rows}
	}
	return tables
}
