package xlsx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// OpenFileForWrite opens an existing xlsx file for write operations.
// It validates the file exists and is within size limits.
func OpenFileForWrite(path string) (*excelize.File, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}

	if fileInfo.Size() > MaxWriteFileSize {
		return nil, fmt.Errorf("%w: file size %d bytes exceeds limit of %d bytes",
			ErrFileTooLarge, fileInfo.Size(), MaxWriteFileSize)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s for write: %w", path, err)
	}

	return f, nil
}

// OpenOrCreate opens path for writing. When the file does not exist and
// create is set, a new workbook is returned instead.
func OpenOrCreate(path string, create bool) (*excelize.File, error) {
	f, err := OpenFileForWrite(path)
	if err != nil && create && errors.Is(err, ErrFileNotFound) {
		return excelize.NewFile(), nil
	}
	return f, err
}

// EnsureSheet resolves sheet, creating it when it does not exist yet.
// A fresh workbook's untouched default sheet is renamed instead of kept.
func EnsureSheet(f *excelize.File, sheet string) (string, error) {
	resolved, err := ResolveSheetName(f, sheet)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, ErrSheetNotFound) {
		return "", err
	}

	sheets := f.GetSheetList()
	if len(sheets) == 1 && sheets[0] == "Sheet1" {
		if rows, _ := f.GetRows("Sheet1"); len(rows) == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return "", fmt.Errorf("failed to rename sheet: %w", err)
			}
			return sheet, nil
		}
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return "", fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	return sheet, nil
}

// SaveFileAtomic saves the file atomically using temp file + rename.
func SaveFileAtomic(f *excelize.File, path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	tmpPath := filepath.Join(dir, filepath.Base(path)+".tmp")
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file %s: %w", tmpPath, err)
	}

	if err := f.Write(tmpFile); err != nil {
		tmpFile.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write to temp file %s: %w", tmpPath, err)
	}

	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file %s: %w", tmpPath, err)
	}

	// Rename is atomic on most filesystems
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	return nil
}

// WriteValue writes a value to a cell with the requested type handling.
// valueType is one of ValueAuto, ValueString, ValueNumber, ValueBool or
// ValueFormula; an empty type means ValueString.
func WriteValue(f *excelize.File, sheet, cell string, value any, valueType string) error {
	actualType := valueType
	switch valueType {
	case "":
		actualType = ValueString
	case ValueAuto:
		actualType = detectValueType(value)
	}

	switch actualType {
	case ValueString:
		if err := f.SetCellStr(sheet, cell, fmt.Sprintf("%v", value)); err != nil {
			return fmt.Errorf("failed to set cell %s as string: %w", cell, err)
		}

	case ValueNumber:
		num, err := toFloat(value)
		if err != nil {
			return err
		}
		if err := f.SetCellFloat(sheet, cell, num, -1, 64); err != nil {
			return fmt.Errorf("failed to set cell %s as number: %w", cell, err)
		}

	case ValueBool:
		var b bool
		switch v := value.(type) {
		case bool:
			b = v
		case string:
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("failed to parse string %q as bool: %w", v, err)
			}
			b = parsed
		default:
			return fmt.Errorf("cannot convert %T to bool", value)
		}
		if err := f.SetCellBool(sheet, cell, b); err != nil {
			return fmt.Errorf("failed to set cell %s as bool: %w", cell, err)
		}

	case ValueFormula:
		formula, ok := value.(string)
		if !ok {
			return fmt.Errorf("formula must be string, got %T", value)
		}
		if !strings.HasPrefix(formula, "=") {
			formula = "=" + formula
		}
		if err := f.SetCellFormula(sheet, cell, formula); err != nil {
			return fmt.Errorf("failed to set cell %s as formula: %w", cell, err)
		}

	default:
		return fmt.Errorf("%w: unknown value type %q", ErrInvalidArgument, actualType)
	}

	return nil
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse string %q as number: %w", v, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to number", value)
	}
}

// detectValueType infers the value type from a Go value
func detectValueType(value any) string {
	switch v := value.(type) {
	case nil:
		return ValueString
	case bool:
		return ValueBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return ValueNumber
	case string:
		if strings.HasPrefix(v, "=") {
			return ValueFormula
		}
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return ValueNumber
		}
		if _, err := strconv.ParseBool(v); err == nil {
			return ValueBool
		}
		return ValueString
	default:
		return ValueString
	}
}
