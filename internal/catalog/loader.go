package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Recognized header names, compared case-insensitively.
const (
	columnName       = "name"
	columnURL        = "url"
	columnSize       = "size"
	columnModTime    = "modtime"
	columnNormalized = "normalized_name"
)

// ErrEmptyCatalog indicates the catalog file parsed but contained no entries.
var ErrEmptyCatalog = errors.New("catalog contains no entries")

// Load reads the whole catalog file into an Index. A missing or empty file
// is an error: the caller treats it as fatal before any batch processing.
func Load(path string) (*Index, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("catalog file not configured (set paths.catalog_file or RELINK_CATALOG)")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	index, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return index, nil
}

// Parse reads CSV catalog data from r. The first row must be a header
// containing at least Name and URL columns; Size, ModTime, and
// Normalized_Name are optional. A missing Normalized_Name is backfilled by
// normalizing Name at load time.
func Parse(r io.Reader) (*Index, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	nameIdx, ok := columns[columnName]
	if !ok {
		return nil, errors.New("catalog header missing Name column")
	}
	urlIdx, ok := columns[columnURL]
	if !ok {
		return nil, errors.New("catalog header missing URL column")
	}

	var entries []Entry
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		entry := Entry{
			Name: field(record, nameIdx),
			URL:  field(record, urlIdx),
		}
		if idx, ok := columns[columnSize]; ok {
			entry.Size = field(record, idx)
		}
		if idx, ok := columns[columnModTime]; ok {
			entry.ModTime = field(record, idx)
		}
		if idx, ok := columns[columnNormalized]; ok {
			entry.Normalized = field(record, idx)
		}
		if entry.Name == "" || entry.URL == "" {
			// Blank filler rows from spreadsheet exports are skipped.
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	return NewIndex(entries), nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
