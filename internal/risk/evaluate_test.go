package risk_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/ppiankov/toolrisk/internal/catalog"
	"github.com/ppiankov/toolrisk/internal/risk"
)

// scenarioCatalog is the two-tier catalog used throughout the evaluator tests.
func scenarioCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.NewBuilder().
		Input("Public", 0, "").
		Input("Confidential", 5, "").
		Tool("ToolA", "assistant", "Acme", 1).
		TypeScore("assistant", 2).
		Tier(0, 3, "Low", "none", "self").
		Tier(4, 10, "High", "review", "manager").
		Build()
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

func TestEvaluateScenario(t *testing.T) {
	c := scenarioCatalog(t)

	tests := []struct {
		input    string
		score    int
		level    string
		action   string
		approver string
	}{
		{"Public", 3, "Low", "none", "self"},
		{"Confidential", 8, "High", "review", "manager"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := risk.Evaluate(c, tt.input, "ToolA")
			gt.NoError(t, err).Required()
			gt.Value(t, res.TotalScore).Equal(tt.score)
			gt.Value(t, res.Tier.Level).Equal(tt.level)
			gt.Value(t, res.Tier.Action).Equal(tt.action)
			gt.Value(t, res.Tier.Approver).Equal(tt.approver)
		})
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	c := catalog.Default()
	for _, in := range c.InputCategories() {
		for _, tool := range c.Tools() {
			first, err := risk.Evaluate(c, in.Key, tool.Key)
			gt.NoError(t, err).Required()
			for i := 0; i < 5; i++ {
				again, err := risk.Evaluate(c, in.Key, tool.Key)
				gt.NoError(t, err).Required()
				gt.Value(t, again).Equal(first)
			}
		}
	}
}

func TestEvaluateIsAdditive(t *testing.T) {
	c, err := catalog.NewBuilder().
		Input("Low", 1, "").
		Input("High", 7, "").
		Tool("Minus", "a", "", -2).
		Tool("Plus", "b", "", 4).
		TypeScore("a", 3).
		TypeScore("b", 10).
		Tier(-100, 100, "Any", "", "").
		Build()
	gt.NoError(t, err).Required()

	for _, in := range c.InputCategories() {
		for _, tool := range c.Tools() {
			ts, err := c.TypeScore(tool.Type)
			gt.NoError(t, err).Required()

			res, err := risk.Evaluate(c, in.Key, tool.Key)
			gt.NoError(t, err).Required()
			gt.Value(t, res.TotalScore).Equal(in.Score + ts + tool.Modifier)
		}
	}
}

func TestEvaluateUnknownKeys(t *testing.T) {
	c := scenarioCatalog(t)

	_, err := risk.Evaluate(c, "nonexistent", "ToolA")
	gt.Error(t, err).Is(catalog.ErrNotFound)
	gt.Bool(t, errors.Is(err, risk.ErrTierNotFound)).False()

	_, err = risk.Evaluate(c, "Public", "nonexistent")
	gt.Error(t, err).Is(catalog.ErrNotFound)
}

func TestEvaluateUnknownType(t *testing.T) {
	c, err := catalog.NewBuilder().
		Input("Public", 0, "").
		Tool("Orphan", "unlisted", "", 0).
		Tier(0, 10, "Low", "", "").
		Build()
	gt.NoError(t, err).Required()

	_, err = risk.Evaluate(c, "Public", "Orphan")
	gt.Error(t, err).Is(catalog.ErrNotFound)
}

func TestEvaluateErrorsCarryBothKeys(t *testing.T) {
	c, err := catalog.NewBuilder().
		Input("Public", 0, "").
		Input("Four", 4, "").
		Tool("ToolA", "x", "", 0).
		Tool("Orphan", "unlisted", "", 0).
		TypeScore("x", 0).
		Tier(0, 3, "Low", "", "").
		Build()
	gt.NoError(t, err).Required()

	tests := []struct {
		name  string
		input string
		tool  string
		kind  string
	}{
		{"unknown input", "missing", "ToolA", risk.KindNotFound},
		{"unknown tool", "Public", "missing", risk.KindNotFound},
		{"unknown type", "Public", "Orphan", risk.KindNotFound},
		{"gap", "Four", "ToolA", risk.KindTierNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := risk.Evaluate(c, tt.input, tt.tool)
			gt.Value(t, risk.ErrorKind(err)).Equal(tt.kind)

			vals := goerr.Values(err)
			gt.Value(t, vals["input"]).Equal(any(tt.input))
			gt.Value(t, vals["tool"]).Equal(any(tt.tool))
		})
	}
}

func TestScore(t *testing.T) {
	c := scenarioCatalog(t)

	total, err := risk.Score(c, "Confidential", "ToolA")
	gt.NoError(t, err).Required()
	gt.Value(t, total).Equal(8)

	_, err = risk.Score(c, "Confidential", "missing")
	gt.Error(t, err).Is(catalog.ErrNotFound)
}

func TestEvaluateGapDetection(t *testing.T) {
	c, err := catalog.NewBuilder().
		Input("Four", 4, "").
		Input("Seven", 7, "").
		Tool("Zero", "x", "", 0).
		TypeScore("x", 0).
		Tier(0, 3, "Low", "", "").
		Tier(6, 10, "High", "", "").
		Build()
	gt.NoError(t, err).Required()

	_, err = risk.Evaluate(c, "Four", "Zero")
	gt.Error(t, err).Is(risk.ErrTierNotFound)
	gt.Bool(t, errors.Is(err, catalog.ErrNotFound)).False()

	res, err := risk.Evaluate(c, "Seven", "Zero")
	gt.NoError(t, err).Required()
	gt.Value(t, res.Tier.Level).Equal("High")
}

func TestResolveTierFirstMatchWins(t *testing.T) {
	tiers := []catalog.Tier{
		{Range: catalog.Range{Low: 0, High: 5}, Level: "First"},
		{Range: catalog.Range{Low: 3, High: 10}, Level: "Second"},
	}

	tests := []struct {
		score int
		level string
	}{
		{0, "First"},
		{3, "First"},
		{5, "First"},
		{6, "Second"},
		{10, "Second"},
	}
	for _, tt := range tests {
		tier, err := risk.ResolveTier(tiers, tt.score)
		gt.NoError(t, err).Required()
		gt.Value(t, tier.Level).Equal(tt.level)
	}

	_, err := risk.ResolveTier(tiers, 11)
	gt.Error(t, err).Is(risk.ErrTierNotFound)
	_, err = risk.ResolveTier(nil, 0)
	gt.Error(t, err).Is(risk.ErrTierNotFound)
}

func TestResolveTierCoverage(t *testing.T) {
	tiers := []catalog.Tier{
		{Range: catalog.Range{Low: 0, High: 3}, Level: "Low"},
		{Range: catalog.Range{Low: 4, High: 7}, Level: "Medium"},
		{Range: catalog.Range{Low: 8, High: 99}, Level: "High"},
	}

	for score := 0; score <= 99; score++ {
		matches := 0
		for _, tier := range tiers {
			if tier.Range.Contains(score) {
				matches++
			}
		}
		gt.Value(t, matches).Equal(1)

		tier, err := risk.ResolveTier(tiers, score)
		gt.NoError(t, err).Required()
		switch {
		case score <= 3:
			gt.Value(t, tier.Level).Equal("Low")
		case score <= 7:
			gt.Value(t, tier.Level).Equal("Medium")
		default:
			gt.Value(t, tier.Level).Equal("High")
		}
	}
}

func TestEvaluateAllCompleteAndOrdered(t *testing.T) {
	c, err := catalog.NewBuilder().
		Input("C", 0, "").
		Input("A", 1, "").
		Input("B", 2, "").
		Tool("T2", "x", "", 0).
		Tool("T1", "x", "", 1).
		TypeScore("x", 0).
		Tier(0, 99, "Any", "", "").
		Build()
	gt.NoError(t, err).Required()

	entries, err := risk.EvaluateAll(c)
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(len(c.InputCategories()) * len(c.Tools())).Required()

	var got []string
	seen := make(map[string]bool)
	for _, e := range entries {
		pair := e.Input.Key + "/" + e.Tool.Key
		gt.Bool(t, seen[pair]).False()
		seen[pair] = true
		got = append(got, pair)
	}
	gt.Value(t, got).Equal([]string{"C/T2", "C/T1", "A/T2", "A/T1", "B/T2", "B/T1"})

	for _, e := range entries {
		single, err := risk.Evaluate(c, e.Input.Key, e.Tool.Key)
		gt.NoError(t, err).Required()
		gt.Value(t, e.Result).Equal(single)
	}
}

func TestEvaluateAllScenario(t *testing.T) {
	entries, err := risk.EvaluateAll(scenarioCatalog(t))
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(2).Required()
	gt.Value(t, entries[0].Result.TotalScore).Equal(3)
	gt.Value(t, entries[1].Result.Tier.Level).Equal("High")
}

func TestEvaluateAllStopsOnGap(t *testing.T) {
	c, err := catalog.NewBuilder().
		Input("Ok", 0, "").
		Input("Gap", 4, "").
		Tool("T", "x", "", 0).
		TypeScore("x", 0).
		Tier(0, 3, "Low", "", "").
		Tier(6, 10, "High", "", "").
		Build()
	gt.NoError(t, err).Required()

	entries, err := risk.EvaluateAll(c)
	gt.Error(t, err).Is(risk.ErrTierNotFound)
	gt.Array(t, entries).Length(0)
	gt.Value(t, goerr.Values(err)["input"]).Equal(any("Gap"))
	gt.Value(t, goerr.Values(err)["tool"]).Equal(any("T"))
}

func TestEvaluateAllEmptyCatalog(t *testing.T) {
	c, err := catalog.NewBuilder().Build()
	gt.NoError(t, err).Required()

	entries, err := risk.EvaluateAll(c)
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(0)
}

func TestErrorKind(t *testing.T) {
	c := scenarioCatalog(t)
	_, notFound := risk.Evaluate(c, "missing", "ToolA")
	_, gap := risk.ResolveTier(nil, 1)

	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{notFound, risk.KindNotFound},
		{gap, risk.KindTierNotFound},
		{fmt.Errorf("wrapped: %w", gap), risk.KindTierNotFound},
		{errors.New("boom"), risk.KindInternal},
	}
	for _, tt := range tests {
		gt.Value(t, risk.ErrorKind(tt.err)).Equal(tt.want)
	}
}
