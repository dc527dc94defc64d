// Package render turns evaluation results into text, JSON, CSV, Markdown
// and HTML. Catalog text is passed through a Localizer; the evaluator's
// canonical values are kept alongside for machine consumers.
package render

import (
	"fmt"
	"strings"

	"github.com/ppiankov/toolrisk/internal/catalog"
	"github.com/ppiankov/toolrisk/internal/i18n"
	"github.com/ppiankov/toolrisk/internal/risk"
)

// Row is one localized recommendation or matrix line.
type Row struct {
	InputKey   string `json:"input_key"`
	Input      string `json:"input"`
	InputScore int    `json:"input_score"`
	ToolKey    string `json:"tool_key"`
	Tool       string `json:"tool"`
	ToolType   string `json:"tool_type"`
	Provider   string `json:"provider"`
	Modifier   int    `json:"modifier"`
	TotalScore int    `json:"total_score"`
	LevelKey   string `json:"level_key"`
	Level      string `json:"level"`
	Action     string `json:"action"`
	Approver   string `json:"approver"`
	Class      string `json:"class"`
}

// NewRow localizes one evaluated pair.
func NewRow(in catalog.InputCategory, tool catalog.Tool, res risk.Result, loc i18n.Localizer) Row {
	return Row{
		InputKey:   in.Key,
		Input:      loc.T(in.Key),
		InputScore: in.Score,
		ToolKey:    tool.Key,
		Tool:       loc.T(tool.Key),
		ToolType:   loc.T(tool.Type),
		Provider:   loc.T(tool.Provider),
		Modifier:   tool.Modifier,
		TotalScore: res.TotalScore,
		LevelKey:   res.Tier.Level,
		Level:      loc.T(res.Tier.Level),
		Action:     loc.T(res.Tier.Action),
		Approver:   loc.T(res.Tier.Approver),
		Class:      LevelClass(res.Tier.Level),
	}
}

// Rows localizes a decision matrix, keeping its order.
func Rows(entries []risk.Entry, loc i18n.Localizer) []Row {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = NewRow(e.Input, e.Tool, e.Result, loc)
	}
	return rows
}

// LevelClass returns the CSS class for a canonical tier level,
// e.g. "Very High" → "risk-very-high".
func LevelClass(level string) string {
	return "risk-" + strings.Join(strings.Fields(strings.ToLower(level)), "-")
}

func inputCell(r Row) string {
	return fmt.Sprintf("%s (%d)", r.Input, r.InputScore)
}

func toolCell(r Row) string {
	return fmt.Sprintf("%s (%s, %+d)", r.Tool, r.ToolType, r.Modifier)
}

// Labels are the localized UI strings shared by all renderers.
type Labels struct {
	Title          string
	InputData      string
	AITool         string
	Score          string
	Modifier       string
	Type           string
	Provider       string
	RiskScore      string
	RiskLevel      string
	ActionRequired string
	Approver       string
	Matrix         string
	SelectBoth     string
}

// NewLabels resolves every UI label through loc.
func NewLabels(loc i18n.Localizer) Labels {
	return Labels{
		Title:          loc.T(i18n.LabelTitle),
		InputData:      loc.T(i18n.LabelInputData),
		AITool:         loc.T(i18n.LabelAITool),
		Score:          loc.T(i18n.LabelScore),
		Modifier:       loc.T(i18n.LabelModifier),
		Type:           loc.T(i18n.LabelType),
		Provider:       loc.T(i18n.LabelProvider),
		RiskScore:      loc.T(i18n.LabelRiskScore),
		RiskLevel:      loc.T(i18n.LabelRiskLevel),
		ActionRequired: loc.T(i18n.LabelActionRequired),
		Approver:       loc.T(i18n.LabelApprover),
		Matrix:         loc.T(i18n.LabelMatrix),
		SelectBoth:     loc.T(i18n.LabelSelectBoth),
	}
}

func (l Labels) matrixHeader() []string {
	return []string{l.InputData, l.AITool, l.RiskScore, l.RiskLevel, l.ActionRequired, l.Approver}
}

func matrixRecord(r Row) []string {
	return []string{inputCell(r), toolCell(r), fmt.Sprint(r.TotalScore), r.Level, r.Action, r.Approver}
}
