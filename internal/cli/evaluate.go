package cli

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/ppiankov/toolrisk/internal/client"
	"github.com/ppiankov/toolrisk/internal/i18n"
	"github.com/ppiankov/toolrisk/internal/render"
	"github.com/ppiankov/toolrisk/internal/risk"
)

var (
	evalInput  string
	evalTool   string
	evalFormat string
	evalRemote string
)

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().StringVar(&evalInput, "input", "", "Input data category key (e.g. Confidential)")
	evaluateCmd.Flags().StringVar(&evalTool, "tool", "", "AI tool key (e.g. ChatGPT Enterprise)")
	evaluateCmd.Flags().StringVar(&evalFormat, "format", "text", "Output format: text, json, html")
	evaluateCmd.Flags().StringVar(&evalRemote, "remote", "", "Evaluate on a toolrisk server at host:port instead of locally")
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Assess one input data category against one AI tool",
	Long:  "Computes input score + AI type score + tool modifier and prints the risk level,\nrequired action and approver of the first risk level whose range contains it.",
	RunE:  runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	tr, err := loadTranslator()
	if err != nil {
		return err
	}
	lang := displayLanguage(tr)
	loc := tr.For(lang)

	if evalInput == "" || evalTool == "" {
		return goerr.New(loc.T(i18n.LabelSelectBoth))
	}

	var (
		row    render.Row
		result risk.Result
	)
	if evalRemote != "" {
		row, result, err = evaluateRemote(cmd, lang)
	} else {
		row, result, err = evaluateLocal(loc)
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch evalFormat {
	case "text":
		return render.WriteRecommendation(w, row, render.NewLabels(loc), styler(w))
	case "json":
		return render.WriteJSON(w, struct {
			Input  string      `json:"input"`
			Tool   string      `json:"tool"`
			Result risk.Result `json:"result"`
			Row    render.Row  `json:"row"`
		}{evalInput, evalTool, result, row})
	case "html":
		if evalRemote != "" {
			return goerr.New("html output needs a local catalog")
		}
		c, _, err := loadCatalog()
		if err != nil {
			return err
		}
		var rows []render.Row
		if entries, err := risk.EvaluateAll(c); err != nil {
			slog.Warn("matrix omitted from report", "error", err)
		} else {
			rows = render.Rows(entries, loc)
		}
		return render.WriteHTML(w, render.NewPage(c, &row, rows, loc))
	default:
		return goerr.New("unknown format", goerr.V("format", evalFormat))
	}
}

func evaluateLocal(loc i18n.Localizer) (render.Row, risk.Result, error) {
	c, _, err := loadCatalog()
	if err != nil {
		return render.Row{}, risk.Result{}, err
	}
	res, err := risk.Evaluate(c, evalInput, evalTool)
	if err != nil {
		return render.Row{}, risk.Result{}, err
	}
	in, _ := c.InputCategory(evalInput)
	tool, _ := c.Tool(evalTool)
	return render.NewRow(in, tool, res, loc), res, nil
}

func evaluateRemote(cmd *cobra.Command, lang string) (render.Row, risk.Result, error) {
	cl, err := client.New(evalRemote)
	if err != nil {
		return render.Row{}, risk.Result{}, err
	}
	defer cl.Close()

	resp, err := cl.Evaluate(cmd.Context(), evalInput, evalTool, lang)
	if err != nil {
		return render.Row{}, risk.Result{}, err
	}
	return resp.Row, resp.Result, nil
}
