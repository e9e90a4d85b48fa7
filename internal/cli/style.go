package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tuilad01/excelext/internal/output"
	"github.com/tuilad01/excelext/internal/style"
	"github.com/tuilad01/excelext/internal/xlsx"
)

var styleCmd = &cobra.Command{
	Use:   "style <file.xlsx> <range>",
	Short: "Style a cell or range",
	Example: `  excelext style report.xlsx A1:D1 --header --bg "#DDEBF7" --width 20
  excelext style report.xlsx A2:D9 --body
  excelext style report.xlsx A1 --merge-to D1 --font-size 16`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		sheet, _ := flags.GetString("sheet")

		in := style.Instruction{Address: args[1]}
		in.BackgroundHex, _ = flags.GetString("bg")
		in.MergeAddress, _ = flags.GetString("merge-to")

		for name, field := range map[string]**bool{
			"header":    &in.Header,
			"body":      &in.Body,
			"bold":      &in.Bold,
			"italic":    &in.Italic,
			"underline": &in.Underline,
			"border":    &in.Border,
		} {
			if on, _ := flags.GetBool(name); on {
				*field = &on
			}
		}

		if flags.Changed("rgb") {
			raw, _ := flags.GetString("rgb")
			rgb, err := parseRGB(raw)
			if err != nil {
				return err
			}
			in.BackgroundRGB = rgb
		}
		if flags.Changed("font-size") {
			v, _ := flags.GetFloat64("font-size")
			in.FontSize = &v
		}
		if flags.Changed("width") {
			v, _ := flags.GetFloat64("width")
			in.Width = &v
		}

		result, err := style.RenderFile(resolveArg(cmd, args[0]), sheet, false, []style.Instruction{in})
		if err != nil {
			return err
		}
		result.Target = args[1]

		return output.Print(result, GetFormatFromCmd(cmd))
	},
}

func init() {
	rootCmd.AddCommand(styleCmd)
	styleCmd.Flags().StringP("sheet", "s", "", "Sheet name (default: first sheet)")
	styleCmd.Flags().Bool("header", false, "Header style: bold and border")
	styleCmd.Flags().Bool("body", false, "Body style: border")
	styleCmd.Flags().Bool("bold", false, "Bold font")
	styleCmd.Flags().Bool("italic", false, "Italic font")
	styleCmd.Flags().Bool("underline", false, "Single underline")
	styleCmd.Flags().Bool("border", false, "Thin border on all four sides")
	styleCmd.Flags().String("bg", "", "Background colour: #RRGGBB, #RGB or a CSS colour name")
	styleCmd.Flags().String("rgb", "", "Background colour as R,G,B (used when --bg is empty)")
	styleCmd.Flags().Float64("font-size", 0, "Font size in points")
	styleCmd.Flags().Float64("width", 0, "Width of the column holding the range's first cell")
	styleCmd.Flags().String("merge-to", "", "Merge from the range to this address")
}

func parseRGB(s string) (*style.RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: rgb must be R,G,B, got %q", xlsx.ErrInvalidArgument, s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: rgb component %q", xlsx.ErrInvalidArgument, p)
		}
		v[i] = n
	}
	return &style.RGB{R: v[0], G: v[1], B: v[2]}, nil
}
