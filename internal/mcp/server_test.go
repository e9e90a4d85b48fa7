package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xuri/excelize/v2"

	"github.com/tuilad01/excelext/internal/xlsx"
)

func createMockRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// sandbox points AllowedBasePaths at a fresh temp dir holding a workbook
// with a Name/Score table.
func sandbox(t *testing.T) (dir, file string) {
	t.Helper()
	original := AllowedBasePaths
	t.Cleanup(func() { AllowedBasePaths = original })

	dir = t.TempDir()
	AllowedBasePaths = []string{dir}

	file = filepath.Join(dir, "scores.xlsx")
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{{"Name", "Score"}, {"Alice", 90}, {"Bob", 85}, {"Carol", 77}}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	if err := f.SaveAs(file); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return dir, file
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("result is nil")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is not TextContent type")
	}
	return text.Text
}

func TestNewServer(t *testing.T) {
	srv := New("test")
	if srv == nil {
		t.Fatal("New() returned nil")
	}
	if srv.mcpServer == nil {
		t.Error("mcpServer is nil")
	}
}

func TestHandleSheetsAndInfo(t *testing.T) {
	_, file := sandbox(t)
	srv := New("test")

	result, err := srv.handleSheets(context.Background(), createMockRequest("sheets", map[string]any{"file": file}))
	if err != nil {
		t.Fatalf("handleSheets returned error: %v", err)
	}
	if got := resultText(t, result); got != `["Sheet1"]` {
		t.Errorf("sheets = %s, want [\"Sheet1\"]", got)
	}

	result, err = srv.handleInfo(context.Background(), createMockRequest("info", map[string]any{"file": file}))
	if err != nil {
		t.Fatalf("handleInfo returned error: %v", err)
	}
	var info xlsx.SheetInfo
	if err := json.Unmarshal([]byte(resultText(t, result)), &info); err != nil {
		t.Fatalf("failed to parse result JSON: %v", err)
	}
	if info.EndRow != 4 || info.EndColumn != 2 {
		t.Errorf("bounds = (%d, %d), want (4, 2)", info.EndRow, info.EndColumn)
	}
}

func TestHandleExtractTable(t *testing.T) {
	_, file := sandbox(t)
	srv := New("test")

	tests := []struct {
		name    string
		args    map[string]any
		want    string
		wantErr string
	}{
		{
			name: "defaults",
			args: map[string]any{},
			want: `[{"Name":"Alice","Score":"90"},{"Name":"Bob","Score":"85"},{"Name":"Carol","Score":"77"}]`,
		},
		{
			name: "explicit end and cap",
			args: map[string]any{"end_row": float64(100000), "max_row": float64(3)},
			want: `[{"Name":"Alice","Score":"90"},{"Name":"Bob","Score":"85"}]`,
		},
		{
			name: "no header",
			args: map[string]any{"has_header": false, "start_row": float64(3), "end_column": float64(1)},
			want: `[{"Column 1":"Bob"},{"Column 1":"Carol"}]`,
		},
		{
			name:    "zero start row",
			args:    map[string]any{"start_row": float64(0)},
			wantErr: "invalid argument",
		},
		{
			name:    "zero end column",
			args:    map[string]any{"end_column": float64(0)},
			wantErr: "invalid argument",
		},
		{
			name:    "missing sheet",
			args:    map[string]any{"sheet": "Nope"},
			wantErr: "sheet not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.args["file"] = file
			result, err := srv.handleExtractTable(context.Background(), createMockRequest("extract_table", tt.args))
			if err != nil {
				t.Fatalf("handleExtractTable returned error: %v", err)
			}
			got := resultText(t, result)
			if tt.wantErr != "" {
				if !result.IsError || !strings.Contains(got, tt.wantErr) {
					t.Errorf("expected tool error containing %q, got %q", tt.wantErr, got)
				}
				return
			}
			if result.IsError {
				t.Fatalf("unexpected tool error: %s", got)
			}
			if got != tt.want {
				t.Errorf("extract_table = %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestHandleRenderCells(t *testing.T) {
	dir, _ := sandbox(t)
	srv := New("test")
	target := filepath.Join(dir, "rendered.xlsx")

	request := createMockRequest("render_cells", map[string]any{
		"file":   target,
		"sheet":  "Report",
		"create": true,
		"instructions": []any{
			map[string]any{"address": "A1", "value": "Total", "header": true, "background_hex": "#FFFF00"},
			map[string]any{"address": "B1", "value": 42, "type": "number", "border": true},
		},
	})

	result, err := srv.handleRenderCells(context.Background(), request)
	if err != nil {
		t.Fatalf("handleRenderCells returned error: %v", err)
	}
	text := resultText(t, result)
	if result.IsError {
		t.Fatalf("expected success, got error: %s", text)
	}

	var res xlsx.WriteResult
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		t.Fatalf("failed to parse result JSON: %v", err)
	}
	if !res.Success || res.Applied != 2 || res.Sheet != "Report" {
		t.Errorf("unexpected result: %+v", res)
	}

	f, err := excelize.OpenFile(target)
	if err != nil {
		t.Fatalf("failed to open rendered file: %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue("Report", "B1"); v != "42" {
		t.Errorf("B1 = %q, want 42", v)
	}
	id, _ := f.GetCellStyle("Report", "A1")
	st, err := f.GetStyle(id)
	if err != nil {
		t.Fatalf("GetStyle: %v", err)
	}
	if st.Font == nil || !st.Font.Bold {
		t.Error("A1 should be bold")
	}
}

func TestHandleRenderCellsErrors(t *testing.T) {
	dir, file := sandbox(t)
	srv := New("test")

	tests := []struct {
		name    string
		args    map[string]any
		wantErr string
	}{
		{
			name:    "no instructions",
			args:    map[string]any{"file": file},
			wantErr: "no instructions",
		},
		{
			name:    "missing address",
			args:    map[string]any{"file": file, "instructions": []any{map[string]any{"value": "x"}}},
			wantErr: "address is required",
		},
		{
			name:    "missing file without create",
			args:    map[string]any{"file": filepath.Join(dir, "none.xlsx"), "instructions": []any{map[string]any{"address": "A1"}}},
			wantErr: "file not found",
		},
		{
			name:    "outside sandbox",
			args:    map[string]any{"file": filepath.Join(t.TempDir(), "x.xlsx"), "create": true, "instructions": []any{map[string]any{"address": "A1"}}},
			wantErr: "access denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := srv.handleRenderCells(context.Background(), createMockRequest("render_cells", tt.args))
			if err != nil {
				t.Fatalf("handleRenderCells returned error: %v", err)
			}
			got := resultText(t, result)
			if !result.IsError || !strings.Contains(got, tt.wantErr) {
				t.Errorf("expected tool error containing %q, got %q", tt.wantErr, got)
			}
		})
	}
}

func TestHandleStyleRange(t *testing.T) {
	_, file := sandbox(t)
	srv := New("test")

	request := createMockRequest("style_range", map[string]any{
		"file":       file,
		"range":      "A1:B1",
		"bold":       true,
		"italic":     false,
		"background": "lightgray",
		"width":      float64(22),
		"merge_to":   "C1",
	})

	result, err := srv.handleStyleRange(context.Background(), request)
	if err != nil {
		t.Fatalf("handleStyleRange returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %s", resultText(t, result))
	}

	f, err := excelize.OpenFile(file)
	if err != nil {
		t.Fatalf("failed to open file: %v", err)
	}
	defer f.Close()

	id, _ := f.GetCellStyle("Sheet1", "B1")
	st, _ := f.GetStyle(id)
	if st.Font == nil || !st.Font.Bold {
		t.Error("B1 should be bold")
	}
	if st.Font.Italic {
		t.Error("italic=false should not apply italic")
	}
	if w, _ := f.GetColWidth("Sheet1", "A"); w != 22 {
		t.Errorf("column A width = %v, want 22", w)
	}
	merged, _ := f.GetMergeCells("Sheet1")
	if len(merged) != 1 || merged[0].GetStartAxis() != "A1" || merged[0].GetEndAxis() != "C1" {
		t.Errorf("unexpected merges: %v", merged)
	}
}

func TestHandleStyleRangeRejectsRange(t *testing.T) {
	_, file := sandbox(t)
	srv := New("test")

	for _, rng := range []string{"", "not-a-range", "A1:XFD1048576"} {
		request := createMockRequest("style_range", map[string]any{
			"file":  file,
			"range": rng,
			"bold":  true,
		})
		result, err := srv.handleStyleRange(context.Background(), request)
		if err != nil {
			t.Fatalf("handleStyleRange(%q) returned error: %v", rng, err)
		}
		if !result.IsError {
			t.Errorf("handleStyleRange(%q) should fail", rng)
		}
	}
}

func TestJsonResult(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		isError bool
	}{
		{name: "simple string slice", input: []string{"a", "b", "c"}},
		{name: "map", input: map[string]string{"key": "value"}},
		{name: "nil", input: nil},
		{name: "too large", input: strings.Repeat("x", MaxOutputBytes), isError: true},
		{name: "unencodable", input: make(chan int), isError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := jsonResult(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.IsError != tt.isError {
				t.Errorf("IsError = %v, want %v", result.IsError, tt.isError)
			}
		})
	}
}
