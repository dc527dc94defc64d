// Package catalogdiff compares two catalogs and reports what an operator
// needs to review before rolling the new one out: edited scores and tiers,
// added or removed entries, and every input/tool pair whose outcome moves.
package catalogdiff

import (
	"fmt"

	"github.com/ppiankov/toolrisk/internal/catalog"
	"github.com/ppiankov/toolrisk/internal/risk"
)

// Change represents a scalar field change.
type Change struct {
	Field   string `json:"field"`
	Old     string `json:"old"`
	New     string `json:"new"`
	Comment string `json:"comment,omitempty"`
}

// KeyChange represents an entry added to or removed from a section.
type KeyChange struct {
	Section string `json:"section"`
	Type    string `json:"type"` // "added", "removed"
	Key     string `json:"key"`
}

// PairChange is an input/tool pair present in both catalogs whose score or
// tier differs. Level is the tier level, or the error kind when the pair
// cannot be evaluated. A score is nil when the pair cannot be scored at all.
type PairChange struct {
	Input    string `json:"input"`
	Tool     string `json:"tool"`
	OldScore *int   `json:"old_score,omitempty"`
	NewScore *int   `json:"new_score,omitempty"`
	OldLevel string `json:"old_level"`
	NewLevel string `json:"new_level"`
	Comment  string `json:"comment,omitempty"`
}

// DiffResult holds the comparison of two catalogs.
type DiffResult struct {
	OldPath     string       `json:"old_path"`
	NewPath     string       `json:"new_path"`
	Changes     []Change     `json:"changes"`
	KeyChanges  []KeyChange  `json:"key_changes"`
	PairChanges []PairChange `json:"pair_changes"`
	HasChanges  bool         `json:"has_changes"`
}

// Diff compares two catalogs and returns the differences.
func Diff(old, new *catalog.Catalog) *DiffResult {
	r := &DiffResult{}

	diffInputs(r, old, new)
	diffTools(r, old, new)
	diffTypeScores(r, old, new)
	diffTiers(r, old.Tiers(), new.Tiers())
	diffPairs(r, old, new)

	r.HasChanges = len(r.Changes) > 0 || len(r.KeyChanges) > 0 || len(r.PairChanges) > 0
	return r
}

func diffInputs(r *DiffResult, old, new *catalog.Catalog) {
	var oldKeys, newKeys []string
	for _, in := range old.InputCategories() {
		oldKeys = append(oldKeys, in.Key)
	}
	for _, in := range new.InputCategories() {
		newKeys = append(newKeys, in.Key)
		prev, err := old.InputCategory(in.Key)
		if err != nil {
			continue
		}
		diffInt(r, "input_data."+in.Key+".score", prev.Score, in.Score)
		diffString(r, "input_data."+in.Key+".description", prev.Description, in.Description)
	}
	diffKeys(r, "input_data", oldKeys, newKeys)
}

func diffTools(r *DiffResult, old, new *catalog.Catalog) {
	var oldKeys, newKeys []string
	for _, t := range old.Tools() {
		oldKeys = append(oldKeys, t.Key)
	}
	for _, t := range new.Tools() {
		newKeys = append(newKeys, t.Key)
		prev, err := old.Tool(t.Key)
		if err != nil {
			continue
		}
		diffString(r, "ai_tools."+t.Key+".type", prev.Type, t.Type)
		diffString(r, "ai_tools."+t.Key+".provider", prev.Provider, t.Provider)
		diffInt(r, "ai_tools."+t.Key+".modifier", prev.Modifier, t.Modifier)
	}
	diffKeys(r, "ai_tools", oldKeys, newKeys)
}

func diffTypeScores(r *DiffResult, old, new *catalog.Catalog) {
	for _, name := range new.AITypes() {
		score, _ := new.TypeScore(name)
		if prev, err := old.TypeScore(name); err == nil {
			diffInt(r, "ai_type_scores."+name, prev, score)
		}
	}
	diffKeys(r, "ai_type_scores", old.AITypes(), new.AITypes())
}

// diffTiers matches tiers by level name.
func diffTiers(r *DiffResult, oldTiers, newTiers []catalog.Tier) {
	oldMap := make(map[string]catalog.Tier)
	var oldKeys, newKeys []string
	for _, t := range oldTiers {
		oldMap[t.Level] = t
		oldKeys = append(oldKeys, t.Level)
	}

	for _, t := range newTiers {
		newKeys = append(newKeys, t.Level)
		prev, ok := oldMap[t.Level]
		if !ok {
			continue
		}
		if prev.Range != t.Range {
			r.Changes = append(r.Changes, Change{
				Field: "risk_levels." + t.Level + ".range",
				Old:   rangeString(prev.Range),
				New:   rangeString(t.Range),
			})
		}
		diffString(r, "risk_levels."+t.Level+".action", prev.Action, t.Action)
		diffString(r, "risk_levels."+t.Level+".approver", prev.Approver, t.Approver)
	}
	diffKeys(r, "risk_levels", oldKeys, newKeys)
}

// diffPairs evaluates every pair present in both catalogs, input-major in
// the new catalog's order.
func diffPairs(r *DiffResult, old, new *catalog.Catalog) {
	for _, in := range new.InputCategories() {
		if _, err := old.InputCategory(in.Key); err != nil {
			continue
		}
		for _, t := range new.Tools() {
			if _, err := old.Tool(t.Key); err != nil {
				continue
			}
			oldScore, oldLevel := outcome(old, in.Key, t.Key)
			newScore, newLevel := outcome(new, in.Key, t.Key)
			if sameScore(oldScore, newScore) && oldLevel == newLevel {
				continue
			}
			pc := PairChange{
				Input:    in.Key,
				Tool:     t.Key,
				OldScore: oldScore,
				NewScore: newScore,
				OldLevel: oldLevel,
				NewLevel: newLevel,
			}
			if oldScore != nil && newScore != nil {
				pc.Comment = intComment(*oldScore, *newScore)
			}
			r.PairChanges = append(r.PairChanges, pc)
		}
	}
}

// outcome returns the score and tier level of a pair. A pair whose score
// lies outside every tier keeps its score; a pair that cannot be scored
// (unknown AI type) has none. Failures report the error kind as level.
func outcome(c *catalog.Catalog, inputKey, toolKey string) (*int, string) {
	score, err := risk.Score(c, inputKey, toolKey)
	if err != nil {
		return nil, risk.ErrorKind(err)
	}
	tier, err := risk.ResolveTier(c.Tiers(), score)
	if err != nil {
		return &score, risk.ErrorKind(err)
	}
	return &score, tier.Level
}

func sameScore(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func diffInt(r *DiffResult, field string, old, new int) {
	if old != new {
		r.Changes = append(r.Changes, Change{
			Field:   field,
			Old:     fmt.Sprintf("%d", old),
			New:     fmt.Sprintf("%d", new),
			Comment: intComment(old, new),
		})
	}
}

func diffString(r *DiffResult, field, old, new string) {
	if old != new {
		r.Changes = append(r.Changes, Change{Field: field, Old: old, New: new})
	}
}

// intComment: a higher score means a higher risk tier.
func intComment(old, new int) string {
	switch {
	case new > old:
		return "stricter"
	case new < old:
		return "looser"
	default:
		return ""
	}
}

func rangeString(rg catalog.Range) string {
	return fmt.Sprintf("[%d, %d]", rg.Low, rg.High)
}

func diffKeys(r *DiffResult, section string, oldKeys, newKeys []string) {
	oldSet := make(map[string]bool)
	for _, k := range oldKeys {
		oldSet[k] = true
	}
	newSet := make(map[string]bool)
	for _, k := range newKeys {
		newSet[k] = true
	}

	for _, k := range newKeys {
		if !oldSet[k] {
			r.KeyChanges = append(r.KeyChanges, KeyChange{Section: section, Type: "added", Key: k})
		}
	}
	for _, k := range oldKeys {
		if !newSet[k] {
			r.KeyChanges = append(r.KeyChanges, KeyChange{Section: section, Type: "removed", Key: k})
		}
	}
}
