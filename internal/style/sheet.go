// Package style applies presentation attributes to worksheet cells through a
// fluent range handle, and renders batches of per-cell instructions.
package style

import (
	"fmt"
	"image/color"

	"github.com/xuri/excelize/v2"

	"github.com/tuilad01/excelext/internal/cache"
	"github.com/tuilad01/excelext/internal/xlsx"
)

const styleCacheSize = 512

// Sheet binds a worksheet of an open workbook.
type Sheet struct {
	f      *excelize.File
	name   string
	styles *cache.LRU[string, int]
}

// NewSheet resolves name (empty means the first sheet) and binds it.
func NewSheet(f *excelize.File, name string) (*Sheet, error) {
	resolved, err := xlsx.ResolveSheetName(f, name)
	if err != nil {
		return nil, err
	}
	return &Sheet{f: f, name: resolved, styles: cache.New[string, int](styleCacheSize)}, nil
}

// Name returns the resolved sheet name.
func (s *Sheet) Name() string { return s.name }

// Range returns a handle for an address like "B2" or "A1:C3".
func (s *Sheet) Range(address string) *Range {
	ref, err := xlsx.ParseRange(address)
	return &Range{sheet: s, ref: ref, err: err}
}

// Cell returns a handle for a single 1-based cell.
func (s *Sheet) Cell(row, column int) *Range {
	if row < 1 || column < 1 {
		return &Range{sheet: s, err: fmt.Errorf("%w: row %d column %d", xlsx.ErrInvalidAddress, row, column)}
	}
	return &Range{sheet: s, ref: &xlsx.CellRange{StartCol: column, StartRow: row, EndCol: column, EndRow: row}}
}

// Range is a chainable handle on a rectangle of cells. The first failure is
// kept and every later call becomes a no-op; check it with Err.
type Range struct {
	sheet *Sheet
	ref   *xlsx.CellRange
	err   error
}

// Err returns the first error hit by the chain.
func (r *Range) Err() error { return r.err }

// Address returns the range in A1 notation.
func (r *Range) Address() string {
	if r.ref == nil {
		return ""
	}
	return r.ref.String()
}

// SetValue writes value to every cell of the range. A nil value leaves the
// cells untouched.
func (r *Range) SetValue(value any, valueType string) *Range {
	if r.err != nil || value == nil {
		return r
	}
	cells, err := r.cells()
	if err != nil {
		r.err = err
		return r
	}
	for _, cell := range cells {
		if err := xlsx.WriteValue(r.sheet.f, r.sheet.name, cell, value, valueType); err != nil {
			r.err = err
			return r
		}
	}
	return r
}

func (r *Range) SetBold() *Range {
	return r.mutate("bold", func(st *excelize.Style) { font(st).Bold = true })
}

func (r *Range) SetItalic() *Range {
	return r.mutate("italic", func(st *excelize.Style) { font(st).Italic = true })
}

func (r *Range) SetUnderline() *Range {
	return r.mutate("underline", func(st *excelize.Style) { font(st).Underline = "single" })
}

// SetBorder draws a thin black border on all four sides of every cell.
func (r *Range) SetBorder() *Range {
	return r.mutate("border", func(st *excelize.Style) { st.Border = thinBorder() })
}

func (r *Range) SetFontSize(size float64) *Range {
	if r.err == nil && size <= 0 {
		r.err = fmt.Errorf("%w: font size %v", xlsx.ErrInvalidArgument, size)
		return r
	}
	return r.mutate(fmt.Sprintf("size:%g", size), func(st *excelize.Style) { font(st).Size = size })
}

func (r *Range) SetBackgroundHex(hex string) *Range {
	return r.SetBackground(Background{Hex: hex})
}

func (r *Range) SetBackgroundRGB(red, green, blue int) *Range {
	return r.SetBackground(Background{RGB: &RGB{R: red, G: green, B: blue}})
}

func (r *Range) SetBackgroundColor(c color.Color) *Range {
	return r.SetBackground(Background{Color: c})
}

// SetBackground fills the range with the winning colour of bg. An empty
// Background changes nothing.
func (r *Range) SetBackground(bg Background) *Range {
	if r.err != nil || bg.IsZero() {
		return r
	}
	hex, err := bg.Resolve()
	if err != nil {
		r.err = err
		return r
	}
	return r.mutate("fill:"+hex, func(st *excelize.Style) {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex}}
	})
}

// SetWidth sets the width of the whole column holding the range's first cell.
func (r *Range) SetWidth(width float64) *Range {
	if r.err != nil {
		return r
	}
	col := xlsx.ColumnNumberToName(r.ref.StartCol)
	if err := r.sheet.f.SetColWidth(r.sheet.name, col, col, width); err != nil {
		r.err = fmt.Errorf("failed to set width of column %s: %w", col, err)
	}
	return r
}

// MergeTo merges the smallest rectangle covering r and target.
func (r *Range) MergeTo(target *Range) *Range {
	if r.err != nil {
		return r
	}
	if target == nil {
		r.err = fmt.Errorf("%w: merge target is nil", xlsx.ErrInvalidArgument)
		return r
	}
	if target.err != nil {
		r.err = target.err
		return r
	}
	area := r.ref.Union(target.ref)
	if err := r.sheet.f.MergeCell(r.sheet.name, area.TopLeft(), area.BottomRight()); err != nil {
		r.err = fmt.Errorf("failed to merge %s: %w", area, err)
	}
	return r
}

// MergeToAddress merges from r to the cell or range at address.
func (r *Range) MergeToAddress(address string) *Range {
	return r.MergeTo(r.sheet.Range(address))
}

// mutate re-registers each cell's current style with fn applied, keeping
// every attribute fn does not touch.
func (r *Range) mutate(key string, fn func(*excelize.Style)) *Range {
	if r.err != nil {
		return r
	}
	cells, err := r.cells()
	if err != nil {
		r.err = err
		return r
	}
	f, sheet := r.sheet.f, r.sheet.name
	for _, cell := range cells {
		base, err := f.GetCellStyle(sheet, cell)
		if err != nil {
			r.err = fmt.Errorf("failed to read style of %s: %w", cell, err)
			return r
		}
		id, err := r.sheet.styles.GetOrCreate(fmt.Sprintf("%d/%s", base, key), func() (int, error) {
			st, err := f.GetStyle(base)
			if err != nil {
				return 0, err
			}
			fn(st)
			return f.NewStyle(st)
		})
		if err != nil {
			r.err = fmt.Errorf("failed to derive style for %s: %w", cell, err)
			return r
		}
		if err := f.SetCellStyle(sheet, cell, cell, id); err != nil {
			r.err = fmt.Errorf("failed to set style of %s: %w", cell, err)
			return r
		}
	}
	return r
}

// cells lists the range's addresses, refusing ranges larger than
// xlsx.MaxWriteRangeCells before any are built.
func (r *Range) cells() ([]string, error) {
	if n := r.ref.Count(); n > xlsx.MaxWriteRangeCells {
		return nil, fmt.Errorf("%w: %s spans %d cells, limit is %d", xlsx.ErrInvalidRange, r.ref, n, xlsx.MaxWriteRangeCells)
	}
	return r.ref.Cells(), nil
}

func font(st *excelize.Style) *excelize.Font {
	if st.Font == nil {
		st.Font = &excelize.Font{}
	}
	return st.Font
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}
