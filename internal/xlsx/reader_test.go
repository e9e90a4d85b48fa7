package xlsx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// createTestFile creates a workbook whose first sheet holds a small table
// and whose second sheet is empty.
func createTestFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Name", "Age", "City"},
		{"Alice", 30, "New York"},
		{"Bob", 25, "Boston"},
		{"Charlie", 35, "Chicago"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	_, err := f.NewSheet("Empty")
	require.NoError(t, err)

	require.NoError(t, f.SaveAs(path))
	return path
}

func TestOpenFile(t *testing.T) {
	path := createTestFile(t)

	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = OpenFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestGetSheets(t *testing.T) {
	f, err := OpenFile(createTestFile(t))
	require.NoError(t, err)
	defer f.Close()

	sheets, err := GetSheets(f)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1", "Empty"}, sheets)

	_, err = GetSheets(nil)
	assert.Error(t, err)
}

func TestGetSheetInfo(t *testing.T) {
	f, err := OpenFile(createTestFile(t))
	require.NoError(t, err)
	defer f.Close()

	info, err := GetSheetInfo(context.Background(), f, "sheet1")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", info.Name)
	assert.Equal(t, 4, info.EndRow)
	assert.Equal(t, 3, info.EndColumn)
	assert.Equal(t, []string{"Name", "Age", "City"}, info.Headers)

	empty, err := GetSheetInfo(context.Background(), f, "Empty")
	require.NoError(t, err)
	assert.Zero(t, empty.EndRow)
	assert.Zero(t, empty.EndColumn)
	assert.Nil(t, empty.Headers)

	_, err = GetSheetInfo(context.Background(), f, "Nope")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestResolveSheetName(t *testing.T) {
	f, err := OpenFile(createTestFile(t))
	require.NoError(t, err)
	defer f.Close()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "", want: "Sheet1"},
		{input: "Sheet1", want: "Sheet1"},
		{input: "EMPTY", want: "Empty"},
		{input: "Missing", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ResolveSheetName(f, tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSheetNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.True(t, SheetExists(f, "empty"))
	assert.False(t, SheetExists(f, ""))
	assert.False(t, SheetExists(f, "Missing"))
}
