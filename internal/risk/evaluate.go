// Package risk scores an (input data, AI tool) pair against a catalog and
// resolves the score to a risk tier.
//
// Evaluation is pure: the result depends only on the catalog and the two
// keys. Nothing is cached.
package risk

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/ppiankov/toolrisk/internal/catalog"
)

// ErrTierNotFound is returned when a computed score lies outside every tier
// range. It signals a catalog defect (gap or domain boundary), distinct from
// catalog.ErrNotFound which signals an unknown key.
var ErrTierNotFound = goerr.New("no risk tier covers score")

// Result is the outcome of scoring one pair.
type Result struct {
	TotalScore int          `json:"total_score"`
	Tier       catalog.Tier `json:"tier"`
}

// Entry is one cell of the decision matrix.
type Entry struct {
	Input  catalog.InputCategory `json:"input"`
	Tool   catalog.Tool          `json:"tool"`
	Result Result                `json:"result"`
}

// Evaluate computes input score + AI type score + tool modifier and resolves
// it to the first tier, in source order, whose range contains it.
func Evaluate(c *catalog.Catalog, inputKey, toolKey string) (Result, error) {
	total, err := Score(c, inputKey, toolKey)
	if err != nil {
		return Result{}, err
	}

	tier, err := ResolveTier(c.Tiers(), total)
	if err != nil {
		return Result{}, goerr.Wrap(err, "failed to resolve tier",
			goerr.V("input", inputKey), goerr.V("tool", toolKey))
	}

	return Result{TotalScore: total, Tier: tier}, nil
}

// Score returns input score + AI type score + tool modifier without
// resolving a tier. Every failure carries both keys.
func Score(c *catalog.Catalog, inputKey, toolKey string) (int, error) {
	in, err := c.InputCategory(inputKey)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to score pair",
			goerr.V("input", inputKey), goerr.V("tool", toolKey))
	}
	tool, err := c.Tool(toolKey)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to score pair",
			goerr.V("input", inputKey), goerr.V("tool", toolKey))
	}
	typeScore, err := c.TypeScore(tool.Type)
	if err != nil {
		return 0, goerr.Wrap(err, "AI tool references unknown type",
			goerr.V("input", inputKey), goerr.V("tool", toolKey))
	}

	return in.Score + typeScore + tool.Modifier, nil
}

// ResolveTier returns the first tier whose inclusive range contains score.
// Overlapping ranges resolve to the earlier tier.
func ResolveTier(tiers []catalog.Tier, score int) (catalog.Tier, error) {
	for _, t := range tiers {
		if t.Range.Contains(score) {
			return t, nil
		}
	}
	return catalog.Tier{}, goerr.Wrap(ErrTierNotFound, "score outside every tier range", goerr.V("score", score))
}

// EvaluateAll scores every input category against every tool. Row order is
// part of the contract: inputs outer, tools inner, both in catalog order.
// The first failing pair aborts the matrix.
func EvaluateAll(c *catalog.Catalog) ([]Entry, error) {
	inputs := c.InputCategories()
	tools := c.Tools()

	entries := make([]Entry, 0, len(inputs)*len(tools))
	for _, in := range inputs {
		for _, tool := range tools {
			res, err := Evaluate(c, in.Key, tool.Key)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Input: in, Tool: tool, Result: res})
		}
	}
	return entries, nil
}
