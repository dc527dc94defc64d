package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/ppiankov/toolrisk/internal/catalog"
)

var initCatalogForce bool

func init() {
	rootCmd.AddCommand(initCatalogCmd)
	initCatalogCmd.Flags().BoolVar(&initCatalogForce, "force", false, "Overwrite an existing catalog")
}

var initCatalogCmd = &cobra.Command{
	Use:   "init-catalog",
	Short: "Generate default catalog.yaml with comments",
	Long:  "Creates ~/.toolrisk/catalog.yaml (or --catalog) with the built-in input data categories,\nAI tools, AI type scores and risk levels. Edit this file to fit your organisation.",
	RunE:  runInitCatalog,
}

func runInitCatalog(cmd *cobra.Command, args []string) error {
	path := resolvedCatalogPath()
	if path == "" {
		return goerr.New("cannot determine home directory, pass --catalog")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return goerr.Wrap(err, "cannot create config directory")
	}

	if _, err := os.Stat(path); err == nil && !initCatalogForce {
		return goerr.New("catalog already exists, use --force to overwrite", goerr.V("path", path))
	}

	if err := os.WriteFile(path, []byte(catalog.DefaultYAML()), 0644); err != nil {
		return goerr.Wrap(err, "failed to write catalog", goerr.V("path", path))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
