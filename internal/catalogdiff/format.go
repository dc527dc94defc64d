package catalogdiff

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// FormatText renders the diff result as human-readable text.
func FormatText(r *DiffResult) string {
	if !r.HasChanges {
		return fmt.Sprintf("Catalog diff: %s → %s\n\nNo changes detected.\n", r.OldPath, r.NewPath)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Catalog diff: %s → %s\n", r.OldPath, r.NewPath)

	if len(r.Changes) > 0 {
		b.WriteString("\n  Fields:\n")
		for _, c := range r.Changes {
			fmt.Fprintf(&b, "    %-40s %s → %s", c.Field+":", c.Old, c.New)
			if c.Comment != "" {
				fmt.Fprintf(&b, "  (%s)", c.Comment)
			}
			b.WriteString("\n")
		}
	}

	if len(r.KeyChanges) > 0 {
		b.WriteString("\n  Entries:\n")
		for _, kc := range r.KeyChanges {
			switch kc.Type {
			case "added":
				fmt.Fprintf(&b, "    + %s: %s\n", kc.Section, kc.Key)
			case "removed":
				fmt.Fprintf(&b, "    - %s: %s\n", kc.Section, kc.Key)
			}
		}
	}

	if len(r.PairChanges) > 0 {
		fmt.Fprintf(&b, "\n  Affected pairs (%d):\n", len(r.PairChanges))
		for _, pc := range r.PairChanges {
			fmt.Fprintf(&b, "    ~ %s × %s: %s %s → %s %s", pc.Input, pc.Tool, scoreText(pc.OldScore), pc.OldLevel, scoreText(pc.NewScore), pc.NewLevel)
			if pc.Comment != "" {
				fmt.Fprintf(&b, "  (%s)", pc.Comment)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func scoreText(score *int) string {
	if score == nil {
		return "-"
	}
	return strconv.Itoa(*score)
}

// FormatJSON renders the diff result as JSON.
func FormatJSON(r *DiffResult) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "marshal diff result")
	}
	return string(data), nil
}
