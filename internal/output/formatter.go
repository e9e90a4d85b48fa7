package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format represents output format options
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
)

// Tabular is implemented by results that can be printed as rows.
type Tabular interface {
	StringRows() [][]string
}

// ParseFormat validates a --format value. Empty means JSON.
func ParseFormat(format string) (Format, error) {
	switch f := Format(strings.ToLower(format)); f {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatCSV, FormatTSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format: %s (valid: json, csv, tsv)", format)
	}
}

// Write renders v to w. JSON accepts any value; CSV and TSV accept Tabular
// values, [][]string and []string (one value per line).
func Write(w io.Writer, format string, v any) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}

	if f == FormatJSON {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}

	rows, err := toRows(v)
	if err != nil {
		return fmt.Errorf("%s output: %w", f, err)
	}
	if f == FormatCSV {
		return writeCSV(w, rows)
	}
	return writeTSV(w, rows)
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

func writeTSV(w io.Writer, rows [][]string) error {
	for i, row := range rows {
		if _, err := io.WriteString(w, strings.Join(row, "\t")+"\n"); err != nil {
			return fmt.Errorf("failed to write TSV row %d: %w", i, err)
		}
	}
	return nil
}

// toRows converts the supported values to [][]string for CSV/TSV output.
func toRows(v any) ([][]string, error) {
	switch val := v.(type) {
	case Tabular:
		return val.StringRows(), nil
	case [][]string:
		return val, nil
	case []string:
		rows := make([][]string, len(val))
		for i, s := range val {
			rows[i] = []string{s}
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("cannot render %T as rows", v)
	}
}
