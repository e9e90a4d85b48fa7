package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/tuilad01/excelext/internal/log"
	"github.com/tuilad01/excelext/internal/output"
)

// LogLevelEnv is read when --log-level is not given.
const LogLevelEnv = "EXCELEXT_LOG_LEVEL"

var (
	formatFlag   string
	logLevelFlag string
	logFileFlag  string
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "excelext",
	Short: "excelext - extract tables from and style Excel sheets",
	Long: `excelext extracts rectangular regions of xlsx sheets as JSON records
and applies cell styling (bold, borders, fills, merges, widths) from the
command line, from instruction files, or as an MCP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := output.ParseFormat(formatFlag); err != nil {
			return err
		}
		return initLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute(ctx context.Context, version, commit, date string) error {

	// Build version string with commit and date
	versionStr := version
	if versionStr == "" {
		versionStr = "dev"
	}
	serverVersion = versionStr
	if commit != "" {
		versionStr += fmt.Sprintf(" (commit: %s)", commit)
	}
	if date != "" {
		versionStr += fmt.Sprintf(" built: %s", date)
	}

	defer func() { _ = log.Sync() }()
	return fang.Execute(ctx, rootCmd,
		fang.WithVersion(versionStr),
	)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format (json, csv, tsv)")
	rootCmd.PersistentFlags().StringP("basepath", "b", "", "Base directory for relative file paths (env: "+BasepathEnv+")")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (env: "+LogLevelEnv+", default WARN)")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Write logs to this rotated file instead of stderr")
}

func initLogging() error {
	opts := log.Options{Level: logLevelFlag}
	if opts.Level == "" {
		opts.Level = os.Getenv(LogLevelEnv)
	}
	if logFileFlag != "" {
		opts.Sink = "FILE"
		opts.Filename = logFileFlag
	}
	return log.Init(opts)
}

// GetFormatFromCmd returns the output format of cmd, falling back to the
// root flag value.
func GetFormatFromCmd(cmd *cobra.Command) string {
	if f, err := cmd.Flags().GetString("format"); err == nil && f != "" {
		return f
	}
	return formatFlag
}
