package cli

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/ppiankov/toolrisk/internal/client"
	"github.com/ppiankov/toolrisk/internal/render"
	"github.com/ppiankov/toolrisk/internal/risk"
)

var (
	matrixFormat string
	matrixRemote string
)

func init() {
	rootCmd.AddCommand(matrixCmd)
	matrixCmd.Flags().StringVar(&matrixFormat, "format", "text", "Output format: text, json, csv, markdown, html")
	matrixCmd.Flags().StringVar(&matrixRemote, "remote", "", "Fetch the matrix from a toolrisk server at host:port")
}

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the decision matrix for every input/tool pair",
	Long:  "Evaluates every input data category against every AI tool, inputs outer and tools inner,\nin catalog order. Fails on the first pair whose score no risk level covers.",
	RunE:  runMatrix,
}

func runMatrix(cmd *cobra.Command, args []string) error {
	tr, err := loadTranslator()
	if err != nil {
		return err
	}
	lang := displayLanguage(tr)
	loc := tr.For(lang)
	labels := render.NewLabels(loc)

	var rows []render.Row
	if matrixRemote != "" {
		if matrixFormat == "html" {
			return goerr.New("html output needs a local catalog")
		}
		cl, err := client.New(matrixRemote)
		if err != nil {
			return err
		}
		defer cl.Close()
		resp, err := cl.Matrix(cmd.Context(), lang)
		if err != nil {
			return err
		}
		rows = resp.Rows
	} else {
		c, _, err := loadCatalog()
		if err != nil {
			return err
		}
		entries, err := risk.EvaluateAll(c)
		if err != nil {
			return err
		}
		rows = render.Rows(entries, loc)

		if matrixFormat == "html" {
			return render.WriteHTML(cmd.OutOrStdout(), render.NewPage(c, nil, rows, loc))
		}
	}

	w := cmd.OutOrStdout()
	switch matrixFormat {
	case "text":
		return render.WriteMatrixText(w, rows, labels, styler(w))
	case "json":
		return render.WriteJSON(w, rows)
	case "csv":
		return render.WriteCSV(w, rows, labels)
	case "markdown", "md":
		return render.WriteMarkdown(w, rows, labels)
	default:
		return goerr.New("unknown format", goerr.V("format", matrixFormat))
	}
}
