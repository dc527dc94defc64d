package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/ppiankov/toolrisk/internal/catalog"
	"github.com/ppiankov/toolrisk/internal/i18n"
	"github.com/ppiankov/toolrisk/internal/render"
	"github.com/ppiankov/toolrisk/internal/session"
)

// resolvedCatalogPath returns --catalog or ~/.toolrisk/catalog.yaml.
func resolvedCatalogPath() string {
	if catalogPath != "" {
		return catalogPath
	}
	return catalog.DefaultPath()
}

// resolvedTranslationsPath returns --translations or ~/.toolrisk/translations.yaml.
func resolvedTranslationsPath() string {
	if translationsPath != "" {
		return translationsPath
	}
	dir := catalog.DefaultDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "translations.yaml")
}

func loadCatalog() (*catalog.Catalog, string, error) {
	path := resolvedCatalogPath()
	c, hash, err := catalog.LoadWithHash(path)
	if err != nil {
		return nil, "", err
	}
	slog.Debug("catalog loaded", "path", path, "hash", hash)
	return c, hash, nil
}

func loadTranslator() (*i18n.Translator, error) {
	overlay, err := i18n.LoadFile(resolvedTranslationsPath())
	if err != nil {
		return nil, err
	}
	return i18n.New(i18n.Merge(i18n.Builtin(), overlay), i18n.DefaultLanguage), nil
}

func prefs() *session.Prefs {
	return session.NewPrefs(catalog.DefaultDir())
}

// displayLanguage picks --lang, then the saved preference, then the default.
func displayLanguage(tr *i18n.Translator) string {
	if langFlag != "" {
		return tr.Resolve(langFlag)
	}
	saved, err := prefs().Language()
	if err != nil {
		slog.Warn("ignoring saved language", "error", err)
		return tr.Default()
	}
	return tr.Resolve(saved)
}

// styler colours output only when w is a terminal.
func styler(w io.Writer) render.Styler {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return render.Styler{}
	}
	f, ok := w.(*os.File)
	if !ok {
		return render.Styler{}
	}
	return render.Styler{Color: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())}
}
