package lakestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

// catalogEntry records where one table lives and how it is laid out.
type catalogEntry struct {
	Path          string   `json:"path"`
	Format        string   `json:"format"`
	PartitionKeys []string `json:"partition_keys"`
	UpdatedAt     string   `json:"updated_at"`
}

// catalogFile is one database's table catalog on disk.
type catalogFile struct {
	Database string                  `json:"database"`
	Tables   map[string]catalogEntry `json:"tables"`
}

// registerTable upserts the location into <catalogDir>/<database>.json.
// Registration is best-effort metadata for humans and tools; the write path
// treats its failure as a warning, never as a write failure.
func (s *Store) registerTable(loc etl.Location) error {
	if loc.Database == "" {
		return errors.New("location has no database")
	}
	path := filepath.Join(s.catalogDir, loc.Database+".json")

	catalog := catalogFile{Database: loc.Database, Tables: map[string]catalogEntry{}}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &catalog); err != nil {
			return fmt.Errorf("parsing catalog %s: %w", path, err)
		}
		if catalog.Tables == nil {
			catalog.Tables = map[string]catalogEntry{}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("reading catalog %s: %w", path, err)
	}

	catalog.Tables[loc.Table] = catalogEntry{
		Path:          loc.Path,
		Format:        loc.Format,
		PartitionKeys: loc.PartitionKeys,
		UpdatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if err := os.MkdirAll(s.catalogDir, 0o755); err != nil {
		return fmt.Errorf("creating catalog dir: %w", err)
	}
	out, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	tmp, err := os.CreateTemp(s.catalogDir, loc.Database+".json.tmp-*")
	if err != nil {
		return fmt.Errorf("creating catalog temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if _, err := tmp.Write(append(out, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing catalog temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing catalog: %w", err)
	}
	return nil
}
