package main

import (
	"fmt"
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

// Writes testdata/report.xlsx and testdata/render.yaml for trying the
// extract and render commands by hand:
//
//	go run testdata/create_test_file.go
//	excelext extract testdata/report.xlsx Orders --start-row 3 --start-column 2
//	excelext render testdata/report.xlsx testdata/render.yaml --sheet Orders
func main() {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
	}()

	if err := f.SetSheetName("Sheet1", "Orders"); err != nil {
		log.Fatal(err)
	}

	// Title above the table; the table itself starts at B3
	if err := f.SetCellValue("Orders", "B1", "Orders report"); err != nil {
		log.Fatal(err)
	}

	rows := [][]any{
		{"Order", "Customer", "Note", "Amount", "Amount"},
		{1001, "Alice", "rush\ndelivery", 120.5, 130},
		{1002, "Bob", "  ", 80, 80},
		{1003, "Charlie", "gift\twrap", 42.25, 45},
		{1004, "David", "", 300, 310},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(2, i+3)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetSheetRow("Orders", cell, &row); err != nil {
			log.Fatal(err)
		}
	}

	// Second sheet without a header row
	if _, err := f.NewSheet("Raw"); err != nil {
		log.Fatal(err)
	}
	for i, v := range []string{"alpha", "beta", "gamma"} {
		if err := f.SetSheetRow("Raw", fmt.Sprintf("A%d", i+1), &[]any{v, i + 1}); err != nil {
			log.Fatal(err)
		}
	}

	if err := f.SaveAs("testdata/report.xlsx"); err != nil {
		log.Fatal(err)
	}

	instructions := `- address: B1
  header: true
  font_size: 16
  merge_address: F1
- address: B3:F3
  header: true
  background_hex: lightsteelblue
  width: 14
- address: B4:F7
  body: true
- address: F8
  value: "=SUM(F4:F7)"
  type: formula
  bold: true
  background_rgb: {r: 255, g: 242, b: 204}
`
	if err := os.WriteFile("testdata/render.yaml", []byte(instructions), 0644); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Created testdata/report.xlsx (Orders, Raw) and testdata/render.yaml")
}
