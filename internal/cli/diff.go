package cli

import (
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/ppiankov/toolrisk/internal/catalog"
	"github.com/ppiankov/toolrisk/internal/catalogdiff"
)

// builtinArg names the built-in catalog in place of a file path.
const builtinArg = "builtin"

var diffFormat string

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().StringVarP(&diffFormat, "format", "f", "text", "Output format (text|json)")
}

var diffCmd = &cobra.Command{
	Use:   "diff <old.yaml> <new.yaml>",
	Short: "Compare two catalogs and show which pairs change risk level",
	Long: "Loads two catalog YAML files and shows what changed in human-readable terms:\n" +
		"scores, modifiers and risk level ranges, entries added/removed, and every\n" +
		"input/tool pair whose score or risk level moves. Use \"builtin\" for the built-in catalog.",
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	oldCat, err := loadDiffSide(args[0])
	if err != nil {
		return goerr.Wrap(err, "load old catalog")
	}

	newCat, err := loadDiffSide(args[1])
	if err != nil {
		return goerr.Wrap(err, "load new catalog")
	}

	result := catalogdiff.Diff(oldCat, newCat)
	result.OldPath = args[0]
	result.NewPath = args[1]

	w := cmd.OutOrStdout()
	switch diffFormat {
	case "json":
		out, err := catalogdiff.FormatJSON(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
	case "text":
		fmt.Fprint(w, catalogdiff.FormatText(result))
	default:
		return goerr.New("unknown format", goerr.V("format", diffFormat))
	}

	return nil
}

func loadDiffSide(arg string) (*catalog.Catalog, error) {
	if arg == builtinArg {
		return catalog.Default(), nil
	}
	if _, err := os.Stat(arg); err != nil {
		return nil, goerr.Wrap(err, "catalog file not readable", goerr.V("path", arg))
	}
	return catalog.Load(arg)
}
