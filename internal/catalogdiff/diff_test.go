package catalogdiff

import (
	"strings"
	"testing"

	"github.com/ppiankov/toolrisk/internal/catalog"
)

func build(t *testing.T, b *catalog.Builder) *catalog.Catalog {
	t.Helper()
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return c
}

func base() *catalog.Builder {
	return catalog.NewBuilder().
		Input("Public", 0, "public").
		Input("Confidential", 5, "confidential").
		Tool("ToolA", "assistant", "Acme", 1).
		TypeScore("assistant", 2).
		Tier(0, 3, "Low", "none", "self").
		Tier(4, 10, "High", "review", "manager")
}

func TestIdenticalCatalogsNoChanges(t *testing.T) {
	r := Diff(catalog.Default(), catalog.Default())
	if r.HasChanges {
		t.Errorf("expected no changes, got %d changes + %d key changes + %d pair changes",
			len(r.Changes), len(r.KeyChanges), len(r.PairChanges))
	}
}

func TestChangedModifierMovesPairs(t *testing.T) {
	old := build(t, base())
	new := build(t, catalog.NewBuilder().
		Input("Public", 0, "public").
		Input("Confidential", 5, "confidential").
		Tool("ToolA", "assistant", "Acme", 2).
		TypeScore("assistant", 2).
		Tier(0, 3, "Low", "none", "self").
		Tier(4, 10, "High", "review", "manager"))

	r := Diff(old, new)
	if !r.HasChanges {
		t.Fatal("expected changes")
	}

	found := false
	for _, c := range r.Changes {
		if c.Field == "ai_tools.ToolA.modifier" {
			found = true
			if c.Old != "1" || c.New != "2" {
				t.Errorf("expected 1→2, got %s→%s", c.Old, c.New)
			}
			if c.Comment != "stricter" {
				t.Errorf("expected 'stricter', got %q", c.Comment)
			}
		}
	}
	if !found {
		t.Error("modifier change not found")
	}

	// Public: 3 Low → 4 High; Confidential: 8 High → 9 High
	if len(r.PairChanges) != 2 {
		t.Fatalf("expected 2 pair changes, got %d", len(r.PairChanges))
	}
	pc := r.PairChanges[0]
	if pc.Input != "Public" || pc.OldLevel != "Low" || pc.NewLevel != "High" {
		t.Errorf("unexpected first pair change: %+v", pc)
	}
}

func TestRetieredRangeSameScore(t *testing.T) {
	old := build(t, base())
	new := build(t, catalog.NewBuilder().
		Input("Public", 0, "public").
		Input("Confidential", 5, "confidential").
		Tool("ToolA", "assistant", "Acme", 1).
		TypeScore("assistant", 2).
		Tier(0, 8, "Low", "none", "self").
		Tier(9, 10, "High", "review", "manager"))

	r := Diff(old, new)

	var fields []string
	for _, c := range r.Changes {
		fields = append(fields, c.Field)
	}
	joined := strings.Join(fields, ",")
	if !strings.Contains(joined, "risk_levels.Low.range") || !strings.Contains(joined, "risk_levels.High.range") {
		t.Errorf("expected both range changes, got %s", joined)
	}

	if len(r.PairChanges) != 1 {
		t.Fatalf("expected 1 pair change, got %d", len(r.PairChanges))
	}
	pc := r.PairChanges[0]
	if pc.Input != "Confidential" || *pc.OldScore != 8 || *pc.NewScore != 8 || pc.NewLevel != "Low" {
		t.Errorf("unexpected pair change: %+v", pc)
	}
	if pc.Comment != "" {
		t.Errorf("expected no direction comment for unchanged score, got %q", pc.Comment)
	}
}

func TestGapReportedAsErrorKind(t *testing.T) {
	old := build(t, base())
	new := build(t, catalog.NewBuilder().
		Input("Public", 0, "public").
		Input("Confidential", 5, "confidential").
		Tool("ToolA", "assistant", "Acme", 1).
		TypeScore("assistant", 2).
		Tier(0, 3, "Low", "none", "self"))

	r := Diff(old, new)

	var gap *PairChange
	for i := range r.PairChanges {
		if r.PairChanges[i].Input == "Confidential" {
			gap = &r.PairChanges[i]
		}
	}
	if gap == nil {
		t.Fatal("expected Confidential pair to change")
	}
	if gap.NewLevel != "tier_not_found" || gap.NewScore == nil || *gap.NewScore != 8 {
		t.Errorf("expected 8 tier_not_found, got %v %s", gap.NewScore, gap.NewLevel)
	}

	removed := false
	for _, kc := range r.KeyChanges {
		if kc.Section == "risk_levels" && kc.Type == "removed" && kc.Key == "High" {
			removed = true
		}
	}
	if !removed {
		t.Error("expected removed High tier")
	}
}

func TestUnscorablePairHasNoScore(t *testing.T) {
	old := build(t, base())
	new := build(t, catalog.NewBuilder().
		Input("Public", 0, "public").
		Input("Confidential", 5, "confidential").
		Tool("ToolA", "chatbot", "Acme", 1).
		TypeScore("assistant", 2).
		Tier(0, 3, "Low", "none", "self").
		Tier(4, 10, "High", "review", "manager"))

	r := Diff(old, new)
	if len(r.PairChanges) != 2 {
		t.Fatalf("expected 2 pair changes, got %d", len(r.PairChanges))
	}
	pc := r.PairChanges[0]
	if pc.NewScore != nil {
		t.Errorf("expected no score for a tool with an unknown AI type, got %d", *pc.NewScore)
	}
	if pc.NewLevel != "not_found" || pc.Comment != "" {
		t.Errorf("unexpected pair change: %+v", pc)
	}
	if pc.OldScore == nil || *pc.OldScore != 3 {
		t.Errorf("expected old score 3, got %v", pc.OldScore)
	}

	out := FormatText(r)
	if !strings.Contains(out, "~ Public × ToolA: 3 Low → - not_found\n") {
		t.Errorf("expected unscored pair in text output:\n%s", out)
	}
	js, err := FormatJSON(r)
	if err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	if strings.Contains(js, `"new_score"`) {
		t.Errorf("expected new_score omitted from JSON:\n%s", js)
	}
}

func TestAddedAndRemovedEntries(t *testing.T) {
	old := build(t, base())
	new := build(t, catalog.NewBuilder().
		Input("Public", 0, "public").
		Input("Restricted", 7, "restricted").
		Tool("ToolA", "assistant", "Acme", 1).
		Tool("ToolB", "assistant", "Beta", 0).
		TypeScore("assistant", 2).
		Tier(0, 3, "Low", "none", "self").
		Tier(4, 10, "High", "review", "manager"))

	r := Diff(old, new)

	want := map[string]bool{
		"added input_data Restricted":     false,
		"removed input_data Confidential": false,
		"added ai_tools ToolB":            false,
	}
	for _, kc := range r.KeyChanges {
		k := kc.Type + " " + kc.Section + " " + kc.Key
		if _, ok := want[k]; ok {
			want[k] = true
		}
	}
	for k, seen := range want {
		if !seen {
			t.Errorf("missing key change %q", k)
		}
	}

	// Pairs only present on one side are not compared.
	if len(r.PairChanges) != 0 {
		t.Errorf("expected no pair changes, got %+v", r.PairChanges)
	}
}

func TestFormatText(t *testing.T) {
	old := build(t, base())
	new := build(t, catalog.NewBuilder().
		Input("Public", 1, "public").
		Input("Confidential", 5, "confidential").
		Tool("ToolA", "assistant", "Acme", 1).
		TypeScore("assistant", 2).
		Tier(0, 3, "Low", "none", "self").
		Tier(4, 10, "High", "review", "manager"))

	r := Diff(old, new)
	r.OldPath, r.NewPath = "old.yaml", "new.yaml"
	out := FormatText(r)

	for _, want := range []string{
		"Catalog diff: old.yaml → new.yaml",
		"input_data.Public.score:",
		"0 → 1  (stricter)",
		"~ Public × ToolA: 3 Low → 4 High  (stricter)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	same := Diff(old, old)
	if !strings.Contains(FormatText(same), "No changes detected.") {
		t.Error("expected no-change message")
	}

	js, err := FormatJSON(r)
	if err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	if !strings.Contains(js, `"pair_changes"`) {
		t.Errorf("expected pair_changes in JSON")
	}
}
