package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tuilad01/excelext/internal/output"
	"github.com/tuilad01/excelext/internal/xlsx"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.xlsx> [sheet]",
	Short: "Show a sheet's bounding rectangle and header row",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := xlsx.OpenFile(resolveArg(cmd, args[0]))
		if err != nil {
			return err
		}
		defer f.Close()

		sheet := ""
		if len(args) > 1 {
			sheet = args[1]
		}

		info, err := xlsx.GetSheetInfo(cmd.Context(), f, sheet)
		if err != nil {
			return err
		}

		// info is a single record; csv/tsv get a header line
		format := GetFormatFromCmd(cmd)
		if ft, _ := output.ParseFormat(format); ft != output.FormatJSON {
			return output.Print([][]string{
				{"name", "end_row", "end_column"},
				{info.Name, strconv.Itoa(info.EndRow), strconv.Itoa(info.EndColumn)},
			}, format)
		}
		return output.Print(info, format)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
