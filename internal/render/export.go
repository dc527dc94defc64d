package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal JSON")
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteCSV writes the matrix as CSV with a UTF-8 BOM so spreadsheet tools
// pick the right encoding for translated labels.
func WriteCSV(w io.Writer, rows []Row, l Labels) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	header := []string{
		l.InputData, l.Score, l.AITool, l.Type, l.Provider, l.Modifier,
		l.RiskScore, l.RiskLevel, l.ActionRequired, l.Approver,
	}
	if err := cw.Write(header); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}
	for _, r := range rows {
		rec := []string{
			r.Input, fmt.Sprint(r.InputScore), r.Tool, r.ToolType, r.Provider, fmt.Sprintf("%+d", r.Modifier),
			fmt.Sprint(r.TotalScore), r.Level, r.Action, r.Approver,
		}
		if err := cw.Write(rec); err != nil {
			return goerr.Wrap(err, "failed to write CSV row", goerr.V("input", r.InputKey), goerr.V("tool", r.ToolKey))
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMarkdown writes the matrix as a Markdown table.
func WriteMarkdown(w io.Writer, rows []Row, l Labels) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", l.Matrix)

	header := l.matrixHeader()
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", len(header)) + "\n")
	for _, r := range rows {
		rec := matrixRecord(r)
		for i := range rec {
			rec[i] = strings.ReplaceAll(rec[i], "|", `\|`)
		}
		b.WriteString("| " + strings.Join(rec, " | ") + " |\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
