package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// IssueKind classifies a catalog integrity finding.
type IssueKind string

const (
	IssueEmptySection   IssueKind = "empty_section"
	IssueDanglingType   IssueKind = "dangling_type"
	IssueInvertedRange  IssueKind = "inverted_range"
	IssueTierGap        IssueKind = "tier_gap"
	IssueTierOverlap    IssueKind = "tier_overlap"
	IssueUncoveredScore IssueKind = "uncovered_score"
)

// Issue is one catalog integrity finding.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Kind, i.Subject, i.Message)
}

// Lint checks the invariants evaluation relies on but never verifies:
// every tool type resolves, tier ranges are well formed, contiguous and
// disjoint, and every score produced by a valid input/tool pair falls in
// some tier. An empty result means the catalog is sound.
func Lint(c *Catalog) []Issue {
	var issues []Issue

	if len(c.inputs) == 0 {
		issues = append(issues, Issue{IssueEmptySection, sectionInputs, "no input data categories defined"})
	}
	if len(c.tools) == 0 {
		issues = append(issues, Issue{IssueEmptySection, sectionTools, "no AI tools defined"})
	}
	if len(c.tiers) == 0 {
		issues = append(issues, Issue{IssueEmptySection, sectionTiers, "no risk levels defined"})
	}

	for _, t := range c.tools {
		if _, ok := c.typeScores[t.Type]; !ok {
			issues = append(issues, Issue{IssueDanglingType, t.Key,
				fmt.Sprintf("type %q has no entry in ai_type_scores", t.Type)})
		}
	}

	var wellFormed []Tier
	for _, t := range c.tiers {
		if t.Range.Low > t.Range.High {
			issues = append(issues, Issue{IssueInvertedRange, t.Level,
				fmt.Sprintf("range [%d, %d] is inverted", t.Range.Low, t.Range.High)})
			continue
		}
		wellFormed = append(wellFormed, t)
	}

	for i := 0; i < len(wellFormed); i++ {
		for j := i + 1; j < len(wellFormed); j++ {
			a, b := wellFormed[i].Range, wellFormed[j].Range
			lo, hi := max(a.Low, b.Low), min(a.High, b.High)
			if lo <= hi {
				issues = append(issues, Issue{IssueTierOverlap,
					wellFormed[i].Level + "/" + wellFormed[j].Level,
					fmt.Sprintf("scores [%d, %d] match both; %s wins", lo, hi, wellFormed[i].Level)})
			}
		}
	}

	sorted := make([]Range, 0, len(wellFormed))
	for _, t := range wellFormed {
		sorted = append(sorted, t.Range)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Low < sorted[j].Low })
	if len(sorted) > 0 {
		reach := sorted[0].High
		for _, r := range sorted[1:] {
			if r.Low > reach+1 {
				issues = append(issues, Issue{IssueTierGap, fmt.Sprintf("[%d, %d]", reach+1, r.Low-1),
					"no risk level covers these scores"})
			}
			reach = max(reach, r.High)
		}
	}

	if uncovered := uncoveredScores(c); len(uncovered) > 0 {
		parts := make([]string, len(uncovered))
		for i, s := range uncovered {
			parts[i] = fmt.Sprint(s)
		}
		issues = append(issues, Issue{IssueUncoveredScore, strings.Join(parts, ","),
			"reachable scores fall outside every risk level"})
	}

	return issues
}

// uncoveredScores returns, ascending, the scores produced by some valid
// input/tool pair that no tier contains.
func uncoveredScores(c *Catalog) []int {
	seen := make(map[int]bool)
	var out []int
	for _, in := range c.inputs {
		for _, t := range c.tools {
			ts, ok := c.typeScores[t.Type]
			if !ok {
				continue
			}
			score := in.Score + ts + t.Modifier
			if seen[score] {
				continue
			}
			seen[score] = true
			covered := false
			for _, tier := range c.tiers {
				if tier.Range.Contains(score) {
					covered = true
					break
				}
			}
			if !covered {
				out = append(out, score)
			}
		}
	}
	sort.Ints(out)
	return out
}
