package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ppiankov/toolrisk/internal/catalog"
	"github.com/ppiankov/toolrisk/internal/i18n"
)

// InputOption is a selectable input data category.
type InputOption struct {
	Key         string
	Label       string
	Score       int
	Description string
}

// ToolOption is a selectable AI tool.
type ToolOption struct {
	Key      string
	Label    string
	Type     string
	Provider string
	Modifier int
}

// Page is the data behind the standalone HTML report.
type Page struct {
	Lang   string
	Labels Labels
	Inputs []InputOption
	Tools  []ToolOption
	// Result is nil until both selections are made.
	Result *Row
	Rows   []Row
}

// NewPage collects the options of c, the optional current result and the
// matrix rows into one page.
func NewPage(c *catalog.Catalog, result *Row, rows []Row, loc i18n.Localizer) Page {
	p := Page{
		Lang:   loc.Lang(),
		Labels: NewLabels(loc),
		Result: result,
		Rows:   rows,
	}
	for _, in := range c.InputCategories() {
		p.Inputs = append(p.Inputs, InputOption{
			Key:         in.Key,
			Label:       loc.T(in.Key),
			Score:       in.Score,
			Description: loc.T(in.Description),
		})
	}
	for _, t := range c.Tools() {
		p.Tools = append(p.Tools, ToolOption{
			Key:      t.Key,
			Label:    loc.T(t.Key),
			Type:     loc.T(t.Type),
			Provider: loc.T(t.Provider),
			Modifier: t.Modifier,
		})
	}
	return p
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"signed": func(n int) string { return fmt.Sprintf("%+d", n) },
}).Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Labels.Title}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 40px; color: #333; }
.option { margin: 6px 0; }
.description { color: #666; font-size: 0.9em; }
#results-section { padding: 12px 16px; margin: 20px 0; border-left: 6px solid #999; }
table { border-collapse: collapse; width: 100%; margin-top: 20px; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; }
.risk-low { background-color: #e6f4ea; border-color: #34a853; }
.risk-medium { background-color: #fef7e0; border-color: #fbbc04; }
.risk-high { background-color: #fce8e6; border-color: #ea8600; }
.risk-critical { background-color: #f9d6d5; border-color: #d93025; }
</style>
</head>
<body>
<h1>{{.Labels.Title}}</h1>

<h2>{{.Labels.InputData}}</h2>
{{range .Inputs}}<div class="option"><strong>{{.Label}}</strong> ({{$.Labels.Score}}: {{.Score}})<br><span class="description">{{.Description}}</span></div>
{{end}}
<h2>{{.Labels.AITool}}</h2>
{{range .Tools}}<div class="option"><strong>{{.Label}}</strong> - {{$.Labels.Modifier}}: {{signed .Modifier}}<br><span class="description">{{.Type}}, {{.Provider}}</span></div>
{{end}}
{{with .Result}}<div id="results-section" class="{{.Class}}">
<p><strong>{{$.Labels.RiskScore}}:</strong> {{.TotalScore}}</p>
<p><strong>{{$.Labels.RiskLevel}}:</strong> {{.Level}}</p>
<p><strong>{{$.Labels.ActionRequired}}:</strong> {{.Action}}</p>
<p><strong>{{$.Labels.Approver}}:</strong> {{.Approver}}</p>
</div>
{{else}}<p>{{.Labels.SelectBoth}}</p>
{{end}}
<h2>{{.Labels.Matrix}}</h2>
<table>
<thead><tr><th>{{.Labels.InputData}}</th><th>{{.Labels.AITool}}</th><th>{{.Labels.RiskScore}}</th><th>{{.Labels.RiskLevel}}</th><th>{{.Labels.ActionRequired}}</th><th>{{.Labels.Approver}}</th></tr></thead>
<tbody>
{{range .Rows}}<tr class="{{.Class}}"><td><strong>{{.Input}}</strong> ({{.InputScore}})</td><td><strong>{{.Tool}}</strong> ({{.ToolType}}, {{signed .Modifier}})</td><td>{{.TotalScore}}</td><td>{{.Level}}</td><td>{{.Action}}</td><td>{{.Approver}}</td></tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

// WriteHTML renders p as a standalone HTML document.
func WriteHTML(w io.Writer, p Page) error {
	if err := pageTemplate.Execute(w, p); err != nil {
		return goerr.Wrap(err, "failed to render HTML")
	}
	return nil
}
