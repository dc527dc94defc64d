package cli

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"
)

var (
	catalogPath      string
	langFlag         string
	translationsPath string
	logLevel         string
	noColor          bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&catalogPath, "catalog", "", "Path to catalog YAML/JSON (default ~/.toolrisk/catalog.yaml, built-in when missing)")
	pf.StringVar(&langFlag, "lang", "", "Display language (default: saved preference, then en)")
	pf.StringVar(&translationsPath, "translations", "", "Path to translations YAML (default ~/.toolrisk/translations.yaml)")
	pf.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.BoolVar(&noColor, "no-color", false, "Disable coloured output")
}

var rootCmd = &cobra.Command{
	Use:   "toolrisk",
	Short: "Risk assessment for using AI tools with business data",
	Long:  "Scores an input data category against an AI tool, resolves the score to a risk level and reports the action and approver it requires.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger(logLevel)
	},
	SilenceUsage: true,
}

func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return goerr.Wrap(err, "invalid log level", goerr.V("level", level))
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
