package session

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

const languageFile = "language"

// Prefs persists the preferred display language as a single string in
// <dir>/language.
type Prefs struct {
	dir string
}

// NewPrefs returns a preference store rooted at dir. Empty dir disables
// persistence: reads return "" and writes are no-ops.
func NewPrefs(dir string) *Prefs {
	return &Prefs{dir: dir}
}

// Language returns the stored language, or "" when none is stored.
func (p *Prefs) Language() (string, error) {
	if p.dir == "" {
		return "", nil
	}
	data, err := os.ReadFile(filepath.Join(p.dir, languageFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", goerr.Wrap(err, "failed to read language preference", goerr.V("dir", p.dir))
	}
	return strings.TrimSpace(string(data)), nil
}

// SetLanguage stores lang, creating the directory when needed.
func (p *Prefs) SetLanguage(lang string) error {
	if p.dir == "" {
		return nil
	}
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return goerr.Wrap(err, "failed to create preference directory", goerr.V("dir", p.dir))
	}
	path := filepath.Join(p.dir, languageFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(lang+"\n"), 0644); err != nil {
		return goerr.Wrap(err, "failed to write language preference", goerr.V("path", path))
	}
	if err := os.Rename(tmp, path); err != nil {
		return goerr.Wrap(err, "failed to store language preference", goerr.V("path", path))
	}
	return nil
}
