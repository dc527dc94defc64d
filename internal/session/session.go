// Package session holds the interactive selection state: the chosen input
// data category, the chosen AI tool and the display language. State lives
// only as long as the Session value; results are recomputed on every read.
package session

import (
	"github.com/ppiankov/toolrisk/internal/catalog"
	"github.com/ppiankov/toolrisk/internal/i18n"
	"github.com/ppiankov/toolrisk/internal/risk"
)

// Session is single-writer state owned by the interaction layer.
type Session struct {
	cat   *catalog.Catalog
	tr    *i18n.Translator
	input string
	tool  string
	lang  string
}

// New starts a session with nothing selected.
func New(cat *catalog.Catalog, tr *i18n.Translator, lang string) *Session {
	return &Session{cat: cat, tr: tr, lang: tr.Resolve(lang)}
}

// SelectInput records the chosen input data category. Keys are checked
// only when the result is computed.
func (s *Session) SelectInput(key string) {
	s.input = key
}

// SelectTool records the chosen AI tool.
func (s *Session) SelectTool(key string) {
	s.tool = key
}

// SetLanguage switches the display language and returns the resolved code.
func (s *Session) SetLanguage(lang string) string {
	s.lang = s.tr.Resolve(lang)
	return s.lang
}

// Clear drops both selections. The language is kept.
func (s *Session) Clear() {
	s.input = ""
	s.tool = ""
}

// Selection returns the current input and tool keys ("" when unset).
func (s *Session) Selection() (input, tool string) {
	return s.input, s.tool
}

// Language returns the active language code.
func (s *Session) Language() string {
	return s.lang
}

// Localizer returns a localizer for the active language.
func (s *Session) Localizer() i18n.Localizer {
	return s.tr.For(s.lang)
}

// Catalog returns the catalog the session evaluates against.
func (s *Session) Catalog() *catalog.Catalog {
	return s.cat
}

// Current evaluates the selection. ok is false, with no error, while either
// selection is still unset; the result must then be hidden.
func (s *Session) Current() (res risk.Result, ok bool, err error) {
	if s.input == "" || s.tool == "" {
		return risk.Result{}, false, nil
	}
	res, err = risk.Evaluate(s.cat, s.input, s.tool)
	if err != nil {
		return risk.Result{}, false, err
	}
	return res, true, nil
}
