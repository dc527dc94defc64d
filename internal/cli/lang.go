package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(langCmd)
}

var langCmd = &cobra.Command{
	Use:   "lang [code]",
	Short: "Show or save the preferred display language",
	Long:  "Without an argument, prints the active and available languages.\nWith a language code, saves it to ~/.toolrisk/language as the default for later runs.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLang,
}

func runLang(cmd *cobra.Command, args []string) error {
	tr, err := loadTranslator()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprintf(w, "%s\n", displayLanguage(tr))
		fmt.Fprintf(w, "available: %s\n", strings.Join(tr.Languages(), ", "))
		return nil
	}

	resolved := tr.Resolve(args[0])
	if err := prefs().SetLanguage(resolved); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n", resolved)
	return nil
}
