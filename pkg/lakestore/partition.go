package lakestore

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// partition is one leaf directory of a table's hive-style layout, together
// with the partition-column values its path encodes.
type partition struct {
	dir    string
	values map[string]string
}

// segment renders one path element of the layout. Values are URL-escaped so
// arbitrary strings stay single path segments.
func segment(key, value string) string {
	return key + "=" + url.PathEscape(value)
}

// parseSegment splits a directory name back into its key and value.
func parseSegment(name, key string) (string, bool) {
	rest, ok := strings.CutPrefix(name, key+"=")
	if !ok {
		return "", false
	}
	value, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	return value, true
}

// listPartitions walks the table root one partition key per directory level
// and returns every complete partition found. Entries that do not parse as
// the expected key (stray files, foreign directories) are skipped. A table
// with no partition keys is a single partition at the root.
func listPartitions(root string, keys []string) ([]partition, error) {
	if len(keys) == 0 {
		return []partition{{dir: root, values: map[string]string{}}}, nil
	}
	parts := []partition{{dir: root, values: map[string]string{}}}
	for _, key := range keys {
		var next []partition
		for _, p := range parts {
			entries, err := os.ReadDir(p.dir)
			if err != nil {
				return nil, fmt.Errorf("listing partitions under %s: %w", p.dir, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() {
					continue
				}
				value, ok := parseSegment(entry.Name(), key)
				if !ok {
					continue
				}
				values := make(map[string]string, len(p.values)+1)
				for k, v := range p.values {
					values[k] = v
				}
				values[key] = value
				next = append(next, partition{dir: filepath.Join(p.dir, entry.Name()), values: values})
			}
		}
		parts = next
	}
	return parts, nil
}

// partFiles returns the data files of one partition directory, sorted.
func partFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing part files in %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "part-") || !strings.HasSuffix(name, ".jsonl") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// partitionValueString renders a row's partition-column value for the
// directory layout. Partition values must be present; a NULL cannot address
// a directory.
func partitionValueString(column string, v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	case nil:
		return "", fmt.Errorf("partition column %s holds NULL", column)
	default:
		return "", fmt.Errorf("partition column %s holds unsupported type %T", column, v)
	}
}
