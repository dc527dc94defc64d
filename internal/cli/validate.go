package cli

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/ppiankov/toolrisk/internal/catalog"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog for gaps, overlaps and dangling references",
	Long:  "Parses the catalog and reports integrity issues: empty sections, tools whose AI type\nhas no score, inverted ranges, gaps and overlaps between risk levels, and scores\nof valid input/tool pairs that no risk level covers. Exits 1 when any issue is found.",
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := resolvedCatalogPath()
	c, hash, err := loadCatalog()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	issues := catalog.Lint(c)
	for _, issue := range issues {
		fmt.Fprintln(w, issue.String())
	}
	if len(issues) > 0 {
		return goerr.New("catalog has issues", goerr.V("count", len(issues)), goerr.V("path", path))
	}

	fmt.Fprintf(w, "ok: %s (%s)\n", path, hash)
	return nil
}
