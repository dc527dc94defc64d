package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Section names of the catalog source document. JSON sources use the same
// names; JSON is parsed as YAML.
const (
	sectionInputs     = "input_data"
	sectionTools      = "ai_tools"
	sectionTypeScores = "ai_type_scores"
	sectionTiers      = "risk_levels"
)

// wholeNumber accepts only YAML integers. Floats such as 1.5, 2.0 or 1e2
// are rejected rather than truncated.
type wholeNumber int

func (w *wholeNumber) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!int" {
		return goerr.New(fmt.Sprintf("line %d: expected an integer, got %q", n.Line, n.Value),
			goerr.V("tag", n.ShortTag()))
	}
	var i int
	if err := n.Decode(&i); err != nil {
		return err
	}
	*w = wholeNumber(i)
	return nil
}

type inputEntry struct {
	Score       wholeNumber `yaml:"score"`
	Description string      `yaml:"description"`
}

type toolEntry struct {
	Type     string      `yaml:"type"`
	Provider string      `yaml:"provider"`
	Modifier wholeNumber `yaml:"modifier"`
}

type tierEntry struct {
	Range    []wholeNumber `yaml:"range"`
	Level    string        `yaml:"level"`
	Action   string        `yaml:"action"`
	Approver string        `yaml:"approver"`
}

// DefaultDir returns ~/.toolrisk, or "" when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".toolrisk")
}

// DefaultPath returns ~/.toolrisk/catalog.yaml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	dir := DefaultDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "catalog.yaml")
}

// Parse builds a Catalog from YAML or JSON source. Mapping sections are read
// node by node so the declared key order becomes the catalog order.
func Parse(data []byte) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(ErrInvalidCatalog, "failed to parse catalog", goerr.V("cause", err.Error()))
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, goerr.Wrap(ErrInvalidCatalog, "catalog is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, goerr.Wrap(ErrInvalidCatalog, "catalog root must be a mapping", goerr.V("line", root.Line))
	}

	sections := make(map[string]*yaml.Node)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		if _, dup := sections[name]; dup {
			return nil, goerr.Wrap(ErrInvalidCatalog, "duplicate catalog section",
				goerr.V("section", name), goerr.V("line", root.Content[i].Line))
		}
		sections[name] = root.Content[i+1]
	}
	for _, name := range []string{sectionInputs, sectionTools, sectionTypeScores, sectionTiers} {
		if _, ok := sections[name]; !ok {
			return nil, goerr.Wrap(ErrInvalidCatalog, "missing catalog section", goerr.V("section", name))
		}
	}

	b := NewBuilder()

	err := eachPair(sections[sectionInputs], sectionInputs, func(key string, v *yaml.Node) error {
		var e inputEntry
		if err := v.Decode(&e); err != nil {
			return decodeErr(sectionInputs, key, v, err)
		}
		b.Input(key, int(e.Score), e.Description)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachPair(sections[sectionTools], sectionTools, func(key string, v *yaml.Node) error {
		var e toolEntry
		if err := v.Decode(&e); err != nil {
			return decodeErr(sectionTools, key, v, err)
		}
		b.Tool(key, e.Type, e.Provider, int(e.Modifier))
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachPair(sections[sectionTypeScores], sectionTypeScores, func(key string, v *yaml.Node) error {
		var score wholeNumber
		if err := v.Decode(&score); err != nil {
			return decodeErr(sectionTypeScores, key, v, err)
		}
		b.TypeScore(key, int(score))
		return nil
	})
	if err != nil {
		return nil, err
	}

	tiers := sections[sectionTiers]
	if tiers.Kind != yaml.SequenceNode {
		return nil, goerr.Wrap(ErrInvalidCatalog, "risk_levels must be a list", goerr.V("line", tiers.Line))
	}
	for i, n := range tiers.Content {
		var e tierEntry
		if err := n.Decode(&e); err != nil {
			return nil, goerr.Wrap(ErrInvalidCatalog, "invalid risk level",
				goerr.V("index", i), goerr.V("line", n.Line), goerr.V("cause", err.Error()))
		}
		if len(e.Range) != 2 {
			return nil, goerr.Wrap(ErrInvalidCatalog, "risk level range must have exactly two bounds",
				goerr.V("index", i), goerr.V("level", e.Level), goerr.V("range", e.Range))
		}
		b.Tier(int(e.Range[0]), int(e.Range[1]), e.Level, e.Action, e.Approver)
	}

	return b.Build()
}

func eachPair(n *yaml.Node, section string, fn func(key string, v *yaml.Node) error) error {
	if n.Kind != yaml.MappingNode {
		return goerr.Wrap(ErrInvalidCatalog, "catalog section must be a mapping",
			goerr.V("section", section), goerr.V("line", n.Line))
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func decodeErr(section, key string, n *yaml.Node, err error) error {
	return goerr.Wrap(ErrInvalidCatalog, "invalid catalog entry",
		goerr.V("section", section), goerr.V("key", key), goerr.V("line", n.Line), goerr.V("cause", err.Error()))
}

// Load reads the catalog at path.
// Empty path falls back to ~/.toolrisk/catalog.yaml.
// A missing file yields the built-in default catalog.
func Load(path string) (*Catalog, error) {
	c, _, err := LoadWithHash(path)
	return c, err
}

// LoadWithHash loads the catalog and returns the SHA-256 of the raw bytes on
// disk. When the built-in catalog is used the hash is that of empty input.
func LoadWithHash(path string) (*Catalog, string, error) {
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return Default(), hashOf(nil), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), hashOf(nil), nil
		}
		return nil, "", goerr.Wrap(err, "failed to read catalog", goerr.V("path", path))
	}

	c, err := Parse(data)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to load catalog", goerr.V("path", path))
	}
	return c, hashOf(data), nil
}

func hashOf(data []byte) string {
	h := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(h[:])
}
