package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/toolrisk/internal/i18n"
	"github.com/ppiankov/toolrisk/internal/render"
	"github.com/ppiankov/toolrisk/internal/risk"
	"github.com/ppiankov/toolrisk/internal/session"
)

func init() {
	rootCmd.AddCommand(assessCmd)
}

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Interactive risk assessment",
	Long: `Reads commands from stdin and shows the recommendation as soon as both an
input data category and an AI tool are selected.

  inputs            list input data categories
  tools             list AI tools
  input <n|key>     select an input data category
  tool <n|key>      select an AI tool
  lang <code>       switch and save the display language
  show              print the current recommendation
  matrix            print the decision matrix
  clear             drop both selections
  quit              leave`,
	RunE: runAssess,
}

func runAssess(cmd *cobra.Command, args []string) error {
	c, _, err := loadCatalog()
	if err != nil {
		return err
	}
	tr, err := loadTranslator()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	a := &assessor{
		sess:  session.New(c, tr, displayLanguage(tr)),
		prefs: prefs(),
		out:   out,
		style: styler(out),
	}
	return a.run(cmd.InOrStdin())
}

type assessor struct {
	sess  *session.Session
	prefs *session.Prefs
	out   io.Writer
	style render.Styler
}

func (a *assessor) run(in io.Reader) error {
	a.printf("%s\n", a.sess.Localizer().T(i18n.LabelTitle))
	a.printf("%s\n", a.sess.Localizer().T(i18n.LabelSelectBoth))

	sc := bufio.NewScanner(in)
	for {
		a.printf("> ")
		if !sc.Scan() {
			a.printf("\n")
			return sc.Err()
		}
		verb, arg, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(verb) {
		case "":
		case "inputs":
			a.listInputs()
		case "tools":
			a.listTools()
		case "input":
			if key, ok := a.pickInput(arg); ok {
				a.sess.SelectInput(key)
				a.showIfComplete()
			}
		case "tool":
			if key, ok := a.pickTool(arg); ok {
				a.sess.SelectTool(key)
				a.showIfComplete()
			}
		case "lang":
			a.setLanguage(arg)
		case "show":
			a.show()
		case "matrix":
			a.matrix()
		case "clear":
			a.sess.Clear()
		case "help", "?":
			a.printf("inputs | tools | input <n|key> | tool <n|key> | lang <code> | show | matrix | clear | quit\n")
		case "quit", "exit", "q":
			return nil
		default:
			a.printf("unknown command %q, type help\n", verb)
		}
	}
}

func (a *assessor) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *assessor) listInputs() {
	loc := a.sess.Localizer()
	for i, in := range a.sess.Catalog().InputCategories() {
		a.printf("%2d. %s (%s: %d)\n", i+1, loc.T(in.Key), loc.T(i18n.LabelScore), in.Score)
	}
}

func (a *assessor) listTools() {
	loc := a.sess.Localizer()
	for i, t := range a.sess.Catalog().Tools() {
		a.printf("%2d. %s (%s, %s: %+d)\n", i+1, loc.T(t.Key), loc.T(t.Type), loc.T(i18n.LabelModifier), t.Modifier)
	}
}

// pickInput accepts a key or a 1-based list position. A key that looks like
// a number still selects by key.
func (a *assessor) pickInput(arg string) (string, bool) {
	_, err := a.sess.Catalog().InputCategory(arg)
	if err == nil {
		return arg, true
	}
	inputs := a.sess.Catalog().InputCategories()
	if n, convErr := strconv.Atoi(arg); convErr == nil && n >= 1 && n <= len(inputs) {
		return inputs[n-1].Key, true
	}
	a.printf("error: %v\n", err)
	return "", false
}

func (a *assessor) pickTool(arg string) (string, bool) {
	_, err := a.sess.Catalog().Tool(arg)
	if err == nil {
		return arg, true
	}
	tools := a.sess.Catalog().Tools()
	if n, convErr := strconv.Atoi(arg); convErr == nil && n >= 1 && n <= len(tools) {
		return tools[n-1].Key, true
	}
	a.printf("error: %v\n", err)
	return "", false
}

func (a *assessor) setLanguage(arg string) {
	if arg == "" {
		a.printf("%s: %s\n", a.sess.Localizer().T(i18n.LabelLanguage), a.sess.Language())
		return
	}
	lang := a.sess.SetLanguage(arg)
	if err := a.prefs.SetLanguage(lang); err != nil {
		slog.Warn("language preference not saved", "error", err)
	}
	a.printf("%s: %s\n", a.sess.Localizer().T(i18n.LabelLanguage), lang)
	a.showIfComplete()
}

func (a *assessor) showIfComplete() {
	if input, tool := a.sess.Selection(); input != "" && tool != "" {
		a.show()
	}
}

func (a *assessor) show() {
	loc := a.sess.Localizer()
	res, ok, err := a.sess.Current()
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	if !ok {
		a.printf("%s\n", loc.T(i18n.LabelSelectBoth))
		return
	}

	inputKey, toolKey := a.sess.Selection()
	in, _ := a.sess.Catalog().InputCategory(inputKey)
	tool, _ := a.sess.Catalog().Tool(toolKey)
	a.printf("\n")
	if err := render.WriteRecommendation(a.out, render.NewRow(in, tool, res, loc), render.NewLabels(loc), a.style); err != nil {
		slog.Error("failed to write recommendation", "error", err)
	}
	a.printf("\n")
}

func (a *assessor) matrix() {
	loc := a.sess.Localizer()
	entries, err := risk.EvaluateAll(a.sess.Catalog())
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	if err := render.WriteMatrixText(a.out, render.Rows(entries, loc), render.NewLabels(loc), a.style); err != nil {
		slog.Error("failed to write matrix", "error", err)
	}
}
