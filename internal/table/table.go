// Package table turns a rectangular region of a worksheet grid into a
// normalized table of named columns and string rows.
package table

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tuilad01/excelext/internal/log"
	"github.com/tuilad01/excelext/internal/xlsx"
)

const (
	DefaultMaxRow    = 3000
	DefaultMaxColumn = 200
)

// Grid is a read-only, 1-based cell source with a reported bounding
// rectangle. Bounds returns zeros for a sheet without data.
type Grid interface {
	Bounds() (endRow, endColumn int)
	Cell(row, column int) (string, bool)
}

// Options selects the region to extract. A nil EndRow or EndColumn is
// resolved from the grid's bounds.
type Options struct {
	StartRow    int
	StartColumn int
	EndRow      *int
	EndColumn   *int
	HasHeader   bool
	MaxRow      int
	MaxColumn   int
}

// DefaultOptions returns the whole-sheet, header-first extraction.
func DefaultOptions() Options {
	return Options{
		StartRow:    1,
		StartColumn: 1,
		HasHeader:   true,
		MaxRow:      DefaultMaxRow,
		MaxColumn:   DefaultMaxColumn,
	}
}

// Table is the extraction result. Every row has exactly len(Columns) values.
// Column names may repeat.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Extract builds a Table from the region of g described by opts.
func Extract(g Grid, opts Options) (*Table, error) {
	if opts.StartRow == 0 || opts.StartColumn == 0 {
		return nil, fmt.Errorf("%w: start row and start column must be >= 1", xlsx.ErrInvalidArgument)
	}
	if (opts.EndRow != nil && *opts.EndRow == 0) || (opts.EndColumn != nil && *opts.EndColumn == 0) {
		return nil, fmt.Errorf("%w: end row and end column must be >= 1", xlsx.ErrInvalidArgument)
	}

	gridRow, gridCol := g.Bounds()
	if opts.EndRow == nil && opts.EndColumn == nil && (gridRow == 0 || gridCol == 0) {
		return nil, xlsx.ErrEmptySource
	}

	endRow, endCol := gridRow, gridCol
	if opts.EndRow != nil {
		endRow = *opts.EndRow
	}
	if opts.EndColumn != nil {
		endCol = *opts.EndColumn
	}
	lastRow := min(endRow, opts.MaxRow)
	lastCol := min(endCol, opts.MaxColumn)

	log.Named("table").Debugw("extract",
		"start_row", opts.StartRow, "start_column", opts.StartColumn,
		"last_row", lastRow, "last_column", lastCol, "header", opts.HasHeader)

	t := &Table{Columns: []string{}, Rows: [][]string{}}
	n := 0
	for c := opts.StartColumn; c <= lastCol; c++ {
		if opts.HasHeader {
			t.Columns = append(t.Columns, cellText(g, opts.StartRow, c))
			continue
		}
		n++
		t.Columns = append(t.Columns, "Column "+strconv.Itoa(n))
	}

	first := opts.StartRow
	if opts.HasHeader {
		first++
	}
	for r := first; r <= lastRow; r++ {
		row := make([]string, 0, len(t.Columns))
		for c := opts.StartColumn; c <= lastCol; c++ {
			row = append(row, cellText(g, r, c))
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ExtractJSON extracts and serializes the table as an array of records.
func ExtractJSON(g Grid, opts Options) (string, error) {
	t, err := Extract(g, opts)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ClearText trims surrounding whitespace and drops every CR, LF and tab.
func ClearText(s string) string {
	return strings.NewReplacer("\r", "", "\n", "", "\t", "").Replace(strings.TrimSpace(s))
}

func cellText(g Grid, row, column int) string {
	v, ok := g.Cell(row, column)
	if !ok {
		return ""
	}
	return ClearText(v)
}

// MarshalJSON encodes the table as an array of objects, one per row, with
// keys in column order. Repeated column names produce repeated keys.
func (t Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range t.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, name := range t.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(row[j])
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// StringRows returns the header followed by the data rows, for CSV/TSV output.
func (t *Table) StringRows() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, t.Columns)
	return append(out, t.Rows...)
}

// ExtractSheet streams sheet from f, keeping only the cells inside the caps,
// and extracts it.
func ExtractSheet(ctx context.Context, f *excelize.File, sheet string, opts Options) (*Table, error) {
	g, err := xlsx.ReadGrid(ctx, f, sheet, opts.MaxRow, opts.MaxColumn)
	if err != nil {
		return nil, err
	}
	return Extract(g, opts)
}
