package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/toolrisk/api/riskv1"
	"github.com/ppiankov/toolrisk/internal/client"
	"github.com/ppiankov/toolrisk/internal/i18n"
	"github.com/ppiankov/toolrisk/internal/render"
)

var (
	catalogJSON   bool
	catalogRemote string
)

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print the catalog as JSON")
	catalogCmd.Flags().StringVar(&catalogRemote, "remote", "", "Describe the catalog of a toolrisk server at host:port")
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List input data categories, AI tools, AI type scores and risk levels",
	RunE:  runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	var resp riskv1.CatalogResponse
	if catalogRemote != "" {
		cl, err := client.New(catalogRemote)
		if err != nil {
			return err
		}
		defer cl.Close()
		if resp, err = cl.Catalog(cmd.Context()); err != nil {
			return err
		}
	} else {
		c, hash, err := loadCatalog()
		if err != nil {
			return err
		}
		resp = riskv1.NewCatalogResponse(c, hash)
	}

	w := cmd.OutOrStdout()
	if catalogJSON {
		return render.WriteJSON(w, resp)
	}

	tr, err := loadTranslator()
	if err != nil {
		return err
	}
	return writeCatalogText(w, resp, tr.For(displayLanguage(tr)))
}

func writeCatalogText(w io.Writer, c riskv1.CatalogResponse, loc i18n.Localizer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", loc.T(i18n.LabelInputData))
	for _, in := range c.Inputs {
		fmt.Fprintf(&b, "  %-24s %s %d\n", loc.T(in.Key), loc.T(i18n.LabelScore), in.Score)
		if in.Description != "" {
			fmt.Fprintf(&b, "    %s\n", loc.T(in.Description))
		}
	}

	fmt.Fprintf(&b, "\n%s\n", loc.T(i18n.LabelAITool))
	for _, t := range c.Tools {
		fmt.Fprintf(&b, "  %-30s %s, %s, %s %+d\n", loc.T(t.Key), loc.T(t.Type), loc.T(t.Provider), loc.T(i18n.LabelModifier), t.Modifier)
	}

	fmt.Fprintf(&b, "\n%s\n", loc.T(i18n.LabelType))
	for _, ts := range c.AITypes {
		fmt.Fprintf(&b, "  %-24s %d\n", loc.T(ts.Type), ts.Score)
	}

	fmt.Fprintf(&b, "\n%s\n", loc.T(i18n.LabelRiskLevel))
	for _, t := range c.Tiers {
		fmt.Fprintf(&b, "  [%d, %d] %s: %s (%s)\n", t.Range.Low, t.Range.High, loc.T(t.Level), loc.T(t.Action), loc.T(t.Approver))
	}

	fmt.Fprintf(&b, "\n%s\n", c.Hash)
	_, err := io.WriteString(w, b.String())
	return err
}
