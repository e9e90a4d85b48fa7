package xlsx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Error types
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptySource     = errors.New("no data to extract")
	ErrInvalidRange    = errors.New("invalid cell range")
	ErrInvalidAddress  = errors.New("invalid cell address")
	ErrSheetNotFound   = errors.New("sheet not found")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileTooLarge    = errors.New("file exceeds size limit for write operations")
)

// CellRange represents a rectangular range of cells (e.g., A1:C10)
type CellRange struct {
	StartCol int // 1-based column (A=1)
	StartRow int // 1-based row
	EndCol   int
	EndRow   int
}

// SheetInfo describes a worksheet's bounding rectangle.
// EndRow and EndColumn are zero when the sheet holds no data.
type SheetInfo struct {
	Name      string   `json:"name"`
	EndRow    int      `json:"end_row"`
	EndColumn int      `json:"end_column"`
	Headers   []string `json:"headers,omitempty"`
}

// ParseCellAddress parses a cell address like "A1" or "$B$7" into 1-based
// column and row numbers.
func ParseCellAddress(addr string) (col, row int, err error) {
	addr = strings.ToUpper(strings.TrimSpace(addr))
	if addr == "" {
		return 0, 0, fmt.Errorf("%w: empty address", ErrInvalidAddress)
	}
	col, row, err = excelize.CellNameToCoordinates(addr)
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("%w: %s", ErrInvalidAddress, addr)
	}
	return col, row, nil
}

// ColumnNumberToName converts a 1-based column number to a column name.
// Out-of-range numbers yield an empty string.
func ColumnNumberToName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return ""
	}
	return name
}

// FormatCellAddress formats a column and row number into an address like "A1"
func FormatCellAddress(col, row int) string {
	return fmt.Sprintf("%s%d", ColumnNumberToName(col), row)
}

// ParseRange parses a range string like "A1:C10" or "A1" into a CellRange
func ParseRange(rangeStr string) (*CellRange, error) {
	rangeStr = strings.TrimSpace(rangeStr)

	parts := strings.Split(rangeStr, ":")
	switch len(parts) {
	case 1:
		col, row, err := ParseCellAddress(parts[0])
		if err != nil {
			return nil, err
		}
		return &CellRange{StartCol: col, StartRow: row, EndCol: col, EndRow: row}, nil

	case 2:
		startCol, startRow, err := ParseCellAddress(parts[0])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start %s", ErrInvalidRange, parts[0])
		}
		endCol, endRow, err := ParseCellAddress(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end %s", ErrInvalidRange, parts[1])
		}
		return normalize(startCol, startRow, endCol, endRow), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidRange, rangeStr)
	}
}

func normalize(startCol, startRow, endCol, endRow int) *CellRange {
	return &CellRange{
		StartCol: min(startCol, endCol),
		StartRow: min(startRow, endRow),
		EndCol:   max(startCol, endCol),
		EndRow:   max(startRow, endRow),
	}
}

// Union returns the smallest range covering both r and other.
func (r *CellRange) Union(other *CellRange) *CellRange {
	return &CellRange{
		StartCol: min(r.StartCol, other.StartCol),
		StartRow: min(r.StartRow, other.StartRow),
		EndCol:   max(r.EndCol, other.EndCol),
		EndRow:   max(r.EndRow, other.EndRow),
	}
}

// Count returns the number of cells in the range.
func (r *CellRange) Count() int {
	return (r.EndRow - r.StartRow + 1) * (r.EndCol - r.StartCol + 1)
}

// TopLeft returns the address of the first cell.
func (r *CellRange) TopLeft() string {
	return FormatCellAddress(r.StartCol, r.StartRow)
}

// BottomRight returns the address of the last cell.
func (r *CellRange) BottomRight() string {
	return FormatCellAddress(r.EndCol, r.EndRow)
}

// Cells returns every cell address in row-major order.
func (r *CellRange) Cells() []string {
	cells := make([]string, 0, r.Count())
	for row := r.StartRow; row <= r.EndRow; row++ {
		for col := r.StartCol; col <= r.EndCol; col++ {
			cells = append(cells, FormatCellAddress(col, row))
		}
	}
	return cells
}

// String returns the range as a string like "A1:C10"
func (r *CellRange) String() string {
	if r.StartCol == r.EndCol && r.StartRow == r.EndRow {
		return r.TopLeft()
	}
	return r.TopLeft() + ":" + r.BottomRight()
}

// IsValidRange checks if a string looks like a valid cell range
func IsValidRange(s string) bool {
	_, err := ParseRange(s)
	return err == nil
}
