package cli

import (
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/ppiankov/toolrisk/internal/catalog"
	"github.com/ppiankov/toolrisk/internal/i18n"
	"github.com/ppiankov/toolrisk/internal/risk"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration files and diagnose catalog issues",
	RunE:  runDoctor,
}

type checkResult struct {
	label  string
	ok     bool
	detail string
	fix    string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	var checks []checkResult

	// 1. Config directory.
	configDir := catalog.DefaultDir()
	if configDir == "" {
		checks = append(checks, checkResult{
			label:  "config directory",
			ok:     false,
			detail: "cannot determine home directory",
		})
	} else if info, err := os.Stat(configDir); err == nil && info.IsDir() {
		checks = append(checks, checkResult{label: "config directory", ok: true, detail: configDir})
	} else {
		checks = append(checks, checkResult{
			label:  "config directory",
			ok:     false,
			detail: "missing",
			fix:    "toolrisk init-catalog",
		})
	}

	// 2. Catalog file and parse.
	path := resolvedCatalogPath()
	c, hash, loadErr := loadCatalog()
	switch {
	case loadErr != nil:
		checks = append(checks, checkResult{label: "catalog", ok: false, detail: loadErr.Error(), fix: "toolrisk validate"})
	case fileExists(path):
		checks = append(checks, checkResult{label: "catalog", ok: true, detail: fmt.Sprintf("%s (%s)", path, hash)})
	default:
		checks = append(checks, checkResult{
			label:  "catalog",
			ok:     true,
			detail: "built-in (no file at " + path + ")",
		})
	}

	// 3. Catalog integrity and full matrix.
	if c != nil {
		if issues := catalog.Lint(c); len(issues) > 0 {
			checks = append(checks, checkResult{
				label:  "catalog integrity",
				ok:     false,
				detail: fmt.Sprintf("%d issue(s)", len(issues)),
				fix:    "toolrisk validate",
			})
		} else {
			checks = append(checks, checkResult{label: "catalog integrity", ok: true, detail: "no issues"})
		}

		if entries, err := risk.EvaluateAll(c); err != nil {
			checks = append(checks, checkResult{label: "matrix", ok: false, detail: risk.ErrorKind(err), fix: "toolrisk validate"})
		} else {
			checks = append(checks, checkResult{label: "matrix", ok: true, detail: fmt.Sprintf("%d pairs", len(entries))})
		}
	}

	// 4. Translations.
	tr, trErr := loadTranslator()
	if trErr != nil {
		checks = append(checks, checkResult{label: "translations", ok: false, detail: trErr.Error()})
	} else {
		checks = append(checks, checkResult{label: "translations", ok: true, detail: fmt.Sprintf("%v", tr.Languages())})
		if c != nil {
			if missing := missingTranslations(c, tr, displayLanguage(tr)); missing > 0 {
				checks = append(checks, checkResult{
					label:  "display language",
					ok:     false,
					detail: fmt.Sprintf("%s, %d catalog text(s) untranslated", displayLanguage(tr), missing),
					fix:    "add them to " + resolvedTranslationsPath(),
				})
			} else {
				checks = append(checks, checkResult{label: "display language", ok: true, detail: displayLanguage(tr)})
			}
		}
	}

	// Print results.
	w := cmd.OutOrStdout()
	hasFailures := false
	for _, c := range checks {
		mark := "\u2713" // ✓
		if !c.ok {
			mark = "\u2717" // ✗
			hasFailures = true
		}
		line := fmt.Sprintf("%s %-20s %s", mark, c.label+":", c.detail)
		if !c.ok && c.fix != "" {
			line += fmt.Sprintf("  ->  %s", c.fix)
		}
		fmt.Fprintln(w, line)
	}

	if hasFailures {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Some checks failed. Run the suggested commands to fix.")
		return goerr.New("doctor found issues")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "All checks passed.")
	return nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// missingTranslations counts catalog texts lang renders untranslated. The
// default language shows canonical text as-is and never misses anything.
func missingTranslations(c *catalog.Catalog, tr *i18n.Translator, lang string) int {
	if lang == tr.Default() {
		return 0
	}
	loc := tr.For(lang)

	var keys []string
	for _, in := range c.InputCategories() {
		keys = append(keys, in.Key, in.Description)
	}
	for _, t := range c.Tools() {
		keys = append(keys, t.Type)
	}
	for _, t := range c.Tiers() {
		keys = append(keys, t.Level, t.Action, t.Approver)
	}

	seen := make(map[string]bool, len(keys))
	missing := 0
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		if !loc.Has(k) {
			missing++
		}
	}
	return missing
}
