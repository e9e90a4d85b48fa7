package xlsx

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// OpenFile opens an xlsx file and returns the excelize handle
func OpenFile(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}

	return f, nil
}

// GetSheets returns a list of all sheet names in the workbook
func GetSheets(f *excelize.File) ([]string, error) {
	if f == nil {
		return nil, fmt.Errorf("file handle is nil")
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in workbook")
	}

	return sheets, nil
}

// GetSheetInfo returns the sheet's bounding rectangle and first-row headers.
// The sheet is streamed once; only the first row is kept in memory.
func GetSheetInfo(ctx context.Context, f *excelize.File, sheet string) (*SheetInfo, error) {
	if f == nil {
		return nil, fmt.Errorf("file handle is nil")
	}

	resolved, err := ResolveSheetName(f, sheet)
	if err != nil {
		return nil, err
	}

	info := &SheetInfo{Name: resolved}
	endRow, endCol, err := scanRows(ctx, f, resolved, func(rowNum int, cols []string) {
		if rowNum == 1 && len(cols) > 0 {
			info.Headers = make([]string, len(cols))
			copy(info.Headers, cols)
		}
	})
	if err != nil {
		return nil, err
	}

	info.EndRow = endRow
	info.EndColumn = endCol
	return info, nil
}

// GetDefaultSheet returns the first sheet name or error if none exist
func GetDefaultSheet(f *excelize.File) (string, error) {
	sheets, err := GetSheets(f)
	if err != nil {
		return "", err
	}
	return sheets[0], nil
}

// SheetExists checks if a sheet exists in the workbook
func SheetExists(f *excelize.File, sheet string) bool {
	_, err := ResolveSheetName(f, sheet)
	return sheet != "" && err == nil
}

// ResolveSheetName returns the actual sheet name (with correct casing) or
// the first sheet when sheet is empty.
func ResolveSheetName(f *excelize.File, sheet string) (string, error) {
	if sheet == "" {
		return GetDefaultSheet(f)
	}

	for _, s := range f.GetSheetList() {
		if strings.EqualFold(s, sheet) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
}
