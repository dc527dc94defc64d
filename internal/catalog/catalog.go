// Package catalog holds the reference dataset used for AI tool risk scoring:
// input-data categories, AI tools, AI-type base scores and risk tiers.
// A Catalog is built once and never mutated afterwards.
package catalog

import (
	"github.com/m-mizutani/goerr/v2"
)

var (
	// ErrNotFound is returned when an input category, tool or AI type key
	// is not present in the catalog.
	ErrNotFound = goerr.New("catalog entry not found")

	// ErrInvalidCatalog is returned when catalog source data cannot be
	// turned into a Catalog.
	ErrInvalidCatalog = goerr.New("invalid catalog")
)

// InputCategory is a data-sensitivity class the user can pick.
type InputCategory struct {
	Key         string `json:"key"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

// Tool is an AI tool the user can pick.
type Tool struct {
	Key      string `json:"key"`
	Type     string `json:"type"`
	Provider string `json:"provider"`
	Modifier int    `json:"modifier"`
}

// Range is an inclusive integer interval.
type Range struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Contains reports whether score lies in [Low, High].
func (r Range) Contains(score int) bool {
	return score >= r.Low && score <= r.High
}

// Tier is a labelled risk band. Action and Approver are canonical text that
// doubles as translation keys.
type Tier struct {
	Range    Range  `json:"range"`
	Level    string `json:"level"`
	Action   string `json:"action"`
	Approver string `json:"approver"`
}

// Catalog is the immutable lookup dataset. Slices keep declared order;
// index maps give constant-time lookup by key.
type Catalog struct {
	inputs     []InputCategory
	inputIndex map[string]int

	tools     []Tool
	toolIndex map[string]int

	typeNames  []string
	typeScores map[string]int

	tiers []Tier
}

// Builder assembles a Catalog in declaration order. Used by the parser and
// by tests that need a hand-built catalog.
type Builder struct {
	c   *Catalog
	err error
}

// NewBuilder returns an empty catalog builder.
func NewBuilder() *Builder {
	return &Builder{c: &Catalog{
		inputIndex: make(map[string]int),
		toolIndex:  make(map[string]int),
		typeScores: make(map[string]int),
	}}
}

// Input appends an input-data category.
func (b *Builder) Input(key string, score int, description string) *Builder {
	if b.err != nil {
		return b
	}
	if _, dup := b.c.inputIndex[key]; dup {
		b.err = goerr.Wrap(ErrInvalidCatalog, "duplicate input_data key", goerr.V("key", key))
		return b
	}
	b.c.inputIndex[key] = len(b.c.inputs)
	b.c.inputs = append(b.c.inputs, InputCategory{Key: key, Score: score, Description: description})
	return b
}

// Tool appends an AI tool.
func (b *Builder) Tool(key, aiType, provider string, modifier int) *Builder {
	if b.err != nil {
		return b
	}
	if _, dup := b.c.toolIndex[key]; dup {
		b.err = goerr.Wrap(ErrInvalidCatalog, "duplicate ai_tools key", goerr.V("key", key))
		return b
	}
	b.c.toolIndex[key] = len(b.c.tools)
	b.c.tools = append(b.c.tools, Tool{Key: key, Type: aiType, Provider: provider, Modifier: modifier})
	return b
}

// TypeScore sets the base score for an AI type.
func (b *Builder) TypeScore(aiType string, score int) *Builder {
	if b.err != nil {
		return b
	}
	if _, dup := b.c.typeScores[aiType]; dup {
		b.err = goerr.Wrap(ErrInvalidCatalog, "duplicate ai_type_scores key", goerr.V("type", aiType))
		return b
	}
	b.c.typeNames = append(b.c.typeNames, aiType)
	b.c.typeScores[aiType] = score
	return b
}

// Tier appends a risk tier. Order matters: evaluation takes the first match.
func (b *Builder) Tier(low, high int, level, action, approver string) *Builder {
	if b.err != nil {
		return b
	}
	b.c.tiers = append(b.c.tiers, Tier{
		Range:    Range{Low: low, High: high},
		Level:    level,
		Action:   action,
		Approver: approver,
	})
	return b
}

// Build returns the catalog or the first error recorded while building.
// The builder must not be reused afterwards.
func (b *Builder) Build() (*Catalog, error) {
	if b.err != nil {
		return nil, b.err
	}
	c := b.c
	b.c = nil
	return c, nil
}

// InputCategory returns the input-data category for key.
func (c *Catalog) InputCategory(key string) (InputCategory, error) {
	i, ok := c.inputIndex[key]
	if !ok {
		return InputCategory{}, goerr.Wrap(ErrNotFound, "unknown input data category", goerr.V("input", key))
	}
	return c.inputs[i], nil
}

// Tool returns the AI tool for key.
func (c *Catalog) Tool(key string) (Tool, error) {
	i, ok := c.toolIndex[key]
	if !ok {
		return Tool{}, goerr.Wrap(ErrNotFound, "unknown AI tool", goerr.V("tool", key))
	}
	return c.tools[i], nil
}

// TypeScore returns the base score of an AI type. A tool whose type is
// missing here is a catalog defect; it is reported, never scored as zero.
func (c *Catalog) TypeScore(aiType string) (int, error) {
	s, ok := c.typeScores[aiType]
	if !ok {
		return 0, goerr.Wrap(ErrNotFound, "unknown AI type", goerr.V("type", aiType))
	}
	return s, nil
}

// InputCategories returns all input categories in declared order.
func (c *Catalog) InputCategories() []InputCategory {
	out := make([]InputCategory, len(c.inputs))
	copy(out, c.inputs)
	return out
}

// Tools returns all AI tools in declared order.
func (c *Catalog) Tools() []Tool {
	out := make([]Tool, len(c.tools))
	copy(out, c.tools)
	return out
}

// AITypes returns the AI type names in declared order.
func (c *Catalog) AITypes() []string {
	out := make([]string, len(c.typeNames))
	copy(out, c.typeNames)
	return out
}

// Tiers returns the risk tiers in source order.
func (c *Catalog) Tiers() []Tier {
	out := make([]Tier, len(c.tiers))
	copy(out, c.tiers)
	return out
}
