package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Canonical input columns. Files may order columns freely; the reader maps
// them by header name and emits rows in this layout.
var requiredColumns = []string{"customer", "latitude", "longitude", "priority", "weight_kg"}

// FileRowSource reads delivery rows from a CSV file on disk. Implements the
// RowSource port.
type FileRowSource struct {
	Path string
}

func NewFileRowSource(path string) *FileRowSource {
	return &FileRowSource{Path: path}
}

func (f *FileRowSource) ReadRows(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read rows: open %q: %w", f.Path, err)
	}
	defer file.Close()

	rows, err := ReadRows(file)
	if err != nil {
		return nil, fmt.Errorf("read rows: %q: %w", f.Path, err)
	}
	return rows, nil
}

// ReadRows decodes delivery rows from CSV data. The first record is the
// header; its column names are matched case-insensitively and may appear in
// any order. An empty input yields no rows and no error. Short data rows are
// padded with empty fields so the validator rejects them with the right row
// index.
func ReadRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return [][]string{}, nil
	}

	header := records[0]
	// Excel prepends a byte order mark to the first cell.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	positions, err := columnPositions(header)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(requiredColumns))
		for i, pos := range positions {
			if pos < len(rec) {
				row[i] = rec[pos]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columnPositions resolves each required column to its header position.
func columnPositions(header []string) ([]int, error) {
	idx := func(col string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}

	positions := make([]int, len(requiredColumns))
	missing := []string{}
	for i, col := range requiredColumns {
		positions[i] = idx(col)
		if positions[i] < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header is missing columns: %s", strings.Join(missing, ", "))
	}
	return positions, nil
}
