// Package i18n maps canonical catalog text and UI label keys to display
// strings in a chosen language.
//
// Lookup order for a key: the requested language (best match), then the
// default language, then the key itself. Missing translations never fail.
package i18n

import (
	"os"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when no language is requested or matched.
const DefaultLanguage = "en"

// Dictionary maps language code → key → display string.
type Dictionary map[string]map[string]string

// Merge returns a new dictionary with overlay entries replacing base entries.
func Merge(base, overlay Dictionary) Dictionary {
	out := make(Dictionary, len(base)+len(overlay))
	for _, d := range []Dictionary{base, overlay} {
		for lang, entries := range d {
			if out[lang] == nil {
				out[lang] = make(map[string]string, len(entries))
			}
			for k, v := range entries {
				out[lang][k] = v
			}
		}
	}
	return out
}

// LoadFile reads a YAML dictionary of the form {lang: {key: text}}.
// A missing file yields an empty dictionary.
func LoadFile(path string) (Dictionary, error) {
	if path == "" {
		return Dictionary{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Dictionary{}, nil
		}
		return nil, goerr.Wrap(err, "failed to read translations", goerr.V("path", path))
	}
	var d Dictionary
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, goerr.Wrap(err, "failed to parse translations", goerr.V("path", path))
	}
	if d == nil {
		d = Dictionary{}
	}
	return d, nil
}

// Translator resolves languages against a fixed dictionary.
type Translator struct {
	dict    Dictionary
	def     string
	langs   []string
	matcher language.Matcher
}

// New builds a translator. defaultLang is always supported, even when the
// dictionary has no entries for it (keys then render as themselves).
func New(dict Dictionary, defaultLang string) *Translator {
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}

	others := make([]string, 0, len(dict))
	for lang := range dict {
		if lang != defaultLang {
			others = append(others, lang)
		}
	}
	sort.Strings(others)

	// The matcher falls back to its first tag, so the default goes first.
	langs := append([]string{defaultLang}, others...)
	tags := make([]language.Tag, len(langs))
	for i, l := range langs {
		tags[i] = language.Make(l)
	}

	return &Translator{
		dict:    dict,
		def:     defaultLang,
		langs:   langs,
		matcher: language.NewMatcher(tags),
	}
}

// Languages returns the supported language codes, default first.
func (t *Translator) Languages() []string {
	out := make([]string, len(t.langs))
	copy(out, t.langs)
	return out
}

// Default returns the default language code.
func (t *Translator) Default() string {
	return t.def
}

// Resolve returns the supported language code that best matches lang.
// Unparseable or unsupported input resolves to the default language.
func (t *Translator) Resolve(lang string) string {
	if lang == "" {
		return t.def
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return t.def
	}
	_, idx, conf := t.matcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(t.langs) {
		return t.def
	}
	return t.langs[idx]
}

// For returns a Localizer bound to the best match for lang.
func (t *Translator) For(lang string) Localizer {
	resolved := t.Resolve(lang)
	return Localizer{
		lang:     resolved,
		primary:  t.dict[resolved],
		fallback: t.dict[t.def],
	}
}

// Localizer translates keys for one language. The zero value returns keys
// unchanged.
type Localizer struct {
	lang     string
	primary  map[string]string
	fallback map[string]string
}

// Lang returns the language code this localizer is bound to.
func (l Localizer) Lang() string {
	return l.lang
}

// T translates key.
func (l Localizer) T(key string) string {
	if s, ok := l.primary[key]; ok && s != "" {
		return s
	}
	if s, ok := l.fallback[key]; ok && s != "" {
		return s
	}
	return key
}

// Has reports whether key has a non-empty translation in the bound language
// itself, without fallback.
func (l Localizer) Has(key string) bool {
	return l.primary[key] != ""
}
