package lakestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadJSONLFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads records and skips blank lines", func(t *testing.T) {
		path := filepath.Join(dir, "ok.jsonl")
		content := `{"id": 1, "name": "asterix"}

{"id": 2, "name": "obelix"}
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		rows, err := readJSONLFile(path)
		if err != nil {
			t.Fatalf("readJSONLFile: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("got %d rows, want 2", len(rows))
		}
		if rows[0]["name"] != "asterix" || rows[1]["name"] != "obelix" {
			t.Errorf("unexpected rows: %v", rows)
		}
	})

	t.Run("malformed line fails the read", func(t *testing.T) {
		path := filepath.Join(dir, "bad.jsonl")
		if err := os.WriteFile(path, []byte("{\"id\": 1}\nnot json\n"), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		if _, err := readJSONLFile(path); err == nil {
			t.Fatal("expected error for malformed line")
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := readJSONLFile(filepath.Join(dir, "absent.jsonl")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

func TestWriteJSONLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl")

	rows := []map[string]any{
		{"id": int64(1), "price": 2.5},
		{"id": int64(2), "price": 3.0},
	}
	if err := writeJSONLFile(path, rows); err != nil {
		t.Fatalf("writeJSONLFile: %v", err)
	}

	back, err := readJSONLFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("got %d rows, want 2", len(back))
	}
	// JSON numbers come back as float64.
	if back[0]["id"] != float64(1) || back[1]["price"] != 3.0 {
		t.Errorf("unexpected rows after roundtrip: %v", back)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("listing dir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteJSONLFile_EmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	if err := writeJSONLFile(path, nil); err != nil {
		t.Fatalf("writeJSONLFile: %v", err)
	}
	rows, err := readJSONLFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}
