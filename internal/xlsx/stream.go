package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Grid is an in-memory snapshot of one worksheet, addressed by 1-based
// (row, column). Only cells inside the capture window are retained, but the
// reported bounds always cover the whole sheet.
type Grid struct {
	Sheet     string
	endRow    int
	endColumn int
	rows      [][]string
}

// Bounds returns the last populated row and column of the sheet.
// Both are zero when the sheet holds no values.
func (g *Grid) Bounds() (endRow, endColumn int) {
	return g.endRow, g.endColumn
}

// Cell returns the text of a cell and whether the cell holds a value.
func (g *Grid) Cell(row, column int) (string, bool) {
	if row < 1 || column < 1 || row > len(g.rows) {
		return "", false
	}
	cols := g.rows[row-1]
	if column > len(cols) {
		return "", false
	}
	v := cols[column-1]
	return v, v != ""
}

// ReadGrid streams a sheet once and captures the cells with row <= maxRow and
// column <= maxColumn. A non-positive cap captures nothing in that dimension.
// The stream stops early when ctx is cancelled.
func ReadGrid(ctx context.Context, f *excelize.File, sheet string, maxRow, maxColumn int) (*Grid, error) {
	if f == nil {
		return nil, fmt.Errorf("file handle is nil")
	}

	resolved, err := ResolveSheetName(f, sheet)
	if err != nil {
		return nil, err
	}

	g := &Grid{Sheet: resolved}
	g.endRow, g.endColumn, err = scanRows(ctx, f, resolved, func(rowNum int, cols []string) {
		if rowNum > maxRow || maxColumn < 1 {
			return
		}
		for len(g.rows) < rowNum {
			g.rows = append(g.rows, nil)
		}
		keep := cols[:min(len(cols), maxColumn)]
		g.rows[rowNum-1] = append([]string(nil), keep...)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// NewGrid builds a Grid from literal rows. Row i of rows is sheet row i+1.
func NewGrid(sheet string, rows [][]string) *Grid {
	g := &Grid{Sheet: sheet, rows: rows}
	for i, cols := range rows {
		last := lastPopulated(cols)
		if last > 0 {
			g.endRow = i + 1
			g.endColumn = max(g.endColumn, last)
		}
	}
	return g
}

// scanRows walks every row of a sheet with excelize's streaming iterator,
// calling visit for rows holding at least one value, and returns the last
// populated row and column.
func scanRows(ctx context.Context, f *excelize.File, sheet string, visit func(rowNum int, cols []string)) (endRow, endCol int, err error) {
	rows, err := f.Rows(sheet)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open row iterator: %w", err)
	}
	defer rows.Close()

	rowNum := 0
	for rows.Next() {
		rowNum++

		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}

		cols, err := rows.Columns()
		if err != nil {
			return 0, 0, fmt.Errorf("error reading row %d: %w", rowNum, err)
		}

		last := lastPopulated(cols)
		if last == 0 {
			continue
		}
		endRow = rowNum
		endCol = max(endCol, last)
		visit(rowNum, cols)
	}

	if err := rows.Error(); err != nil {
		return 0, 0, fmt.Errorf("row iteration error: %w", err)
	}
	return endRow, endCol, nil
}

// lastPopulated returns the 1-based index of the last non-empty value.
func lastPopulated(cols []string) int {
	for i := len(cols) - 1; i >= 0; i-- {
		if cols[i] != "" {
			return i + 1
		}
	}
	return 0
}
