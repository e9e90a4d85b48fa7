package cli

import (
	"github.com/spf13/cobra"

	"github.com/tuilad01/excelext/internal/output"
	"github.com/tuilad01/excelext/internal/xlsx"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets <file.xlsx>",
	Short: "List all sheets in workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := xlsx.OpenFile(resolveArg(cmd, args[0]))
		if err != nil {
			return err
		}
		defer f.Close()

		sheets, err := xlsx.GetSheets(f)
		if err != nil {
			return err
		}

		return output.Print(sheets, GetFormatFromCmd(cmd))
	},
}

func init() {
	rootCmd.AddCommand(sheetsCmd)
}
