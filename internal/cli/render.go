package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tuilad01/excelext/internal/output"
	"github.com/tuilad01/excelext/internal/style"
)

var renderCmd = &cobra.Command{
	Use:   "render <file.xlsx> <instructions.json|.yaml>",
	Short: "Apply a batch of cell value and style instructions",
	Long: `Apply a list of per-cell instructions in order. Each instruction has an
address and optional value, type, header, body, bold, italic, underline,
border, font_size, width, background_hex, background_rgb and merge_address.
A flag that is present applies its style, even when set to false.

The workbook is only saved when every instruction succeeds.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, _ := cmd.Flags().GetString("sheet")
		create, _ := cmd.Flags().GetBool("create")

		instructions, err := loadInstructions(resolveArg(cmd, args[1]))
		if err != nil {
			return err
		}

		result, err := style.RenderFile(resolveArg(cmd, args[0]), sheet, create, instructions)
		if err != nil {
			return err
		}

		return output.Print(result, GetFormatFromCmd(cmd))
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("sheet", "s", "", "Sheet name (default: first sheet)")
	renderCmd.Flags().Bool("create", false, "Create the workbook and sheet when missing")
}

// loadInstructions reads a YAML (.yaml, .yml) or JSON instruction list.
func loadInstructions(path string) ([]style.Instruction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read instructions: %w", err)
	}

	var instructions []style.Instruction
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &instructions)
	default:
		err = json.Unmarshal(data, &instructions)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse instructions %s: %w", path, err)
	}
	if len(instructions) == 0 {
		return nil, fmt.Errorf("no instructions in %s", path)
	}
	return instructions, nil
}
