package lakestore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

func newTestSession(t *testing.T) *dataframe.Session {
	t.Helper()
	sess, err := dataframe.Open()
	if err != nil {
		t.Fatalf("opening session: %v", err)
	}
	t.Cleanup(func() { sess.Close() })
	return sess
}

func stampedFrame(t *testing.T, sess *dataframe.Session, stamp string, ids ...int64) *dataframe.DataFrame {
	t.Helper()
	rows := make([][]any, len(ids))
	for i, id := range ids {
		rows[i] = []any{id, "user-" + stamp, stamp}
	}
	f, err := sess.CreateDataFrame(context.Background(), []string{"id", "name", "etl_inserted"}, rows)
	if err != nil {
		t.Fatalf("creating frame: %v", err)
	}
	return f
}

func testLocation(dir string) etl.Location {
	return etl.Location{
		Table:         "appuser",
		Path:          filepath.Join(dir, "bronze", "appuser"),
		Format:        FormatJSONL,
		Database:      "testdb",
		PartitionKeys: []string{"etl_inserted"},
	}
}

func TestStoreWriteRead(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)
	store := NewStore()
	loc := testLocation(t.TempDir())
	stamp := "20240101T000000.000000000Z"

	if err := store.Write(ctx, stampedFrame(t, sess, stamp, 1, 2), loc, etl.Append); err != nil {
		t.Fatalf("Write: %v", err)
	}

	partDir := filepath.Join(loc.Path, "etl_inserted="+stamp)
	files, err := partFiles(partDir)
	if err != nil {
		t.Fatalf("listing part files: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d part files, want 1", len(files))
	}
	fileRows, err := readJSONLFile(files[0])
	if err != nil {
		t.Fatalf("reading part file: %v", err)
	}
	for _, row := range fileRows {
		if _, ok := row["etl_inserted"]; ok {
			t.Errorf("partition column leaked into part file: %v", row)
		}
	}

	frame, err := store.Read(ctx, sess, loc, nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	rows, err := frame.Collect(ctx)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for _, row := range rows {
		if row["etl_inserted"] != stamp {
			t.Errorf("partition value not re-attached: %v", row)
		}
		// JSONL numbers come back as float64.
		if _, ok := row["id"].(float64); !ok {
			t.Errorf("id has type %T, want float64", row["id"])
		}
	}
}

func TestStoreAppend(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)
	store := NewStore()
	loc := testLocation(t.TempDir())
	first := "20240101T000000.000000000Z"
	second := "20240102T000000.000000000Z"

	if err := store.Write(ctx, stampedFrame(t, sess, first, 1, 2), loc, etl.Append); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := store.Write(ctx, stampedFrame(t, sess, second, 1, 2, 3), loc, etl.Append); err != nil {
		t.Fatalf("second Write: %v", err)
	}

	t.Run("all partitions load without filters", func(t *testing.T) {
		frame, err := store.Read(ctx, sess, loc, nil)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		n, err := frame.Count(ctx)
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		if n != 5 {
			t.Errorf("got %d rows, want 5", n)
		}
	})

	t.Run("filter prunes to one partition", func(t *testing.T) {
		frame, err := store.Read(ctx, sess, loc, []etl.PartitionFilter{{Key: "etl_inserted", Value: first}})
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		rows, err := frame.Collect(ctx)
		if err != nil {
			t.Fatalf("Collect: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("got %d rows, want 2", len(rows))
		}
		for _, row := range rows {
			if row["etl_inserted"] != first {
				t.Errorf("row from wrong partition: %v", row)
			}
		}
	})

	t.Run("same partition value lands a second part file", func(t *testing.T) {
		if err := store.Write(ctx, stampedFrame(t, sess, first, 9), loc, etl.Append); err != nil {
			t.Fatalf("Write: %v", err)
		}
		files, err := partFiles(filepath.Join(loc.Path, "etl_inserted="+first))
		if err != nil {
			t.Fatalf("listing part files: %v", err)
		}
		if len(files) != 2 {
			t.Errorf("got %d part files, want 2", len(files))
		}
	})
}

func TestStoreReadErrors(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)
	store := NewStore()

	t.Run("missing table path", func(t *testing.T) {
		loc := testLocation(t.TempDir())
		if _, err := store.Read(ctx, sess, loc, nil); err == nil {
			t.Fatal("expected error for missing path")
		}
	})

	t.Run("no matching partitions", func(t *testing.T) {
		loc := testLocation(t.TempDir())
		stamp := "20240101T000000.000000000Z"
		if err := store.Write(ctx, stampedFrame(t, sess, stamp, 1), loc, etl.Append); err != nil {
			t.Fatalf("Write: %v", err)
		}
		_, err := store.Read(ctx, sess, loc, []etl.PartitionFilter{{Key: "etl_inserted", Value: "20990101T000000.000000000Z"}})
		if !errors.Is(err, ErrNoPartitions) {
			t.Fatalf("got %v, want ErrNoPartitions", err)
		}
	})

	t.Run("filter on non-partition column", func(t *testing.T) {
		loc := testLocation(t.TempDir())
		stamp := "20240101T000000.000000000Z"
		if err := store.Write(ctx, stampedFrame(t, sess, stamp, 1), loc, etl.Append); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if _, err := store.Read(ctx, sess, loc, []etl.PartitionFilter{{Key: "name", Value: "x"}}); err == nil {
			t.Fatal("expected error for non-partition filter")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		loc := testLocation(t.TempDir())
		loc.Format = "parquet"
		_, err := store.Read(ctx, sess, loc, nil)
		if !errors.Is(err, ErrUnknownFormat) {
			t.Fatalf("got %v, want ErrUnknownFormat", err)
		}
	})
}

func TestStoreWriteErrors(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)
	store := NewStore()
	stamp := "20240101T000000.000000000Z"

	t.Run("unsupported mode", func(t *testing.T) {
		loc := testLocation(t.TempDir())
		err := store.Write(ctx, stampedFrame(t, sess, stamp, 1), loc, etl.WriteMode("overwrite"))
		if !errors.Is(err, ErrUnsupportedMode) {
			t.Fatalf("got %v, want ErrUnsupportedMode", err)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		loc := testLocation(t.TempDir())
		loc.Format = "csv"
		err := store.Write(ctx, stampedFrame(t, sess, stamp, 1), loc, etl.Append)
		if !errors.Is(err, ErrUnknownFormat) {
			t.Fatalf("got %v, want ErrUnknownFormat", err)
		}
	})

	t.Run("partition column missing from frame", func(t *testing.T) {
		loc := testLocation(t.TempDir())
		f, err := sess.CreateDataFrame(ctx, []string{"id"}, [][]any{{int64(1)}})
		if err != nil {
			t.Fatalf("creating frame: %v", err)
		}
		if err := store.Write(ctx, f, loc, etl.Append); err == nil {
			t.Fatal("expected error for missing partition column")
		}
	})
}

func TestStoreCatalog(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)
	catalogDir := t.TempDir()
	store := NewStore(WithCatalogDir(catalogDir))
	loc := testLocation(t.TempDir())
	stamp := "20240101T000000.000000000Z"

	if err := store.Write(ctx, stampedFrame(t, sess, stamp, 1), loc, etl.Append); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(catalogDir, "testdb.json"))
	if err != nil {
		t.Fatalf("reading catalog: %v", err)
	}
	var catalog catalogFile
	if err := json.Unmarshal(data, &catalog); err != nil {
		t.Fatalf("parsing catalog: %v", err)
	}
	entry, ok := catalog.Tables["appuser"]
	if !ok {
		t.Fatalf("table not registered: %v", catalog.Tables)
	}
	if entry.Path != loc.Path || entry.Format != FormatJSONL {
		t.Errorf("unexpected entry: %+v", entry)
	}

	// A second table upserts into the same file.
	other := loc
	other.Table = "seller"
	other.Path = filepath.Join(filepath.Dir(loc.Path), "seller")
	if err := store.Write(ctx, stampedFrame(t, sess, stamp, 1), other, etl.Append); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	data, err = os.ReadFile(filepath.Join(catalogDir, "testdb.json"))
	if err != nil {
		t.Fatalf("re-reading catalog: %v", err)
	}
	if err := json.Unmarshal(data, &catalog); err != nil {
		t.Fatalf("re-parsing catalog: %v", err)
	}
	if len(catalog.Tables) != 2 {
		t.Errorf("got %d tables, want 2", len(catalog.Tables))
	}
}

func TestSourceStore(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)
	src := NewSourceStore(filepath.Join(t.TempDir(), "raw"))

	rows := []map[string]any{
		{"user_id": int64(1), "email": "idefix@menhir.example"},
		{"user_id": int64(2), "email": "dogmatix@menhir.example"},
	}
	if err := src.WriteTable("appuser", rows); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	frame, err := src.ReadTable(ctx, sess, "appuser")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	got, err := frame.Collect(ctx)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0]["email"] != "idefix@menhir.example" && got[1]["email"] != "idefix@menhir.example" {
		t.Errorf("unexpected rows: %v", got)
	}

	t.Run("missing table errors", func(t *testing.T) {
		if _, err := src.ReadTable(ctx, sess, "ghost"); err == nil {
			t.Fatal("expected error for missing raw table")
		}
	})

	t.Run("empty table errors", func(t *testing.T) {
		if err := src.WriteTable("empty", nil); err != nil {
			t.Fatalf("WriteTable: %v", err)
		}
		if _, err := src.ReadTable(ctx, sess, "empty"); err == nil {
			t.Fatal("expected error for empty raw table")
		}
	})

	t.Run("landing replaces prior landing", func(t *testing.T) {
		if err := src.WriteTable("appuser", rows[:1]); err != nil {
			t.Fatalf("WriteTable: %v", err)
		}
		frame, err := src.ReadTable(ctx, sess, "appuser")
		if err != nil {
			t.Fatalf("ReadTable: %v", err)
		}
		n, err := frame.Count(ctx)
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		if n != 1 {
			t.Errorf("got %d rows, want 1", n)
		}
	})
}

func TestPartitionSegments(t *testing.T) {
	tests := []struct {
		key, value, dir string
	}{
		{"etl_inserted", "20240101T000000.000000000Z", "etl_inserted=20240101T000000.000000000Z"},
		{"region", "eu/west", "region=eu%2Fwest"},
		{"label", "a b", "label=a%20b"},
	}
	for _, tt := range tests {
		if got := segment(tt.key, tt.value); got != tt.dir {
			t.Errorf("segment(%q, %q) = %q, want %q", tt.key, tt.value, got, tt.dir)
		}
		back, ok := parseSegment(tt.dir, tt.key)
		if !ok || back != tt.value {
			t.Errorf("parseSegment(%q, %q) = %q, %v", tt.dir, tt.key, back, ok)
		}
	}
	if _, ok := parseSegment("other=1", "etl_inserted"); ok {
		t.Error("parseSegment matched a foreign key")
	}
}
