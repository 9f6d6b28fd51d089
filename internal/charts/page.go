package charts

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"netzero-nexus/internal/models"

	"github.com/go-echarts/go-echarts/v2/components"
)

// PageTitle is shown in the browser tab and the page header.
const PageTitle = "NetZero Nexus"

// PageData is everything one dashboard page shows.
type PageData struct {
	Options     models.FilterOptions
	Spec        models.FilterSpec
	Output      models.RenderOutput
	Interactive bool // render the sidebar as a live form
}

// widget is one sidebar multiselect
type widget struct {
	Name     string
	Label    string
	Options  []string
	Selected []string
}

func widgets(o models.FilterOptions, s models.FilterSpec) []widget {
	return []widget{
		{"location", "Select Location", o.Locations, s.Locations},
		{"scenario", "Select Scenario", o.Scenarios, s.Scenarios},
		{"initiative", "Select Initiative", o.Initiatives, s.Initiatives},
		{"alignment", "Alignment with Government Target", o.Alignments, s.Alignments},
		{"customization", "Customization Required", o.Customizations, s.Customizations},
		{"sellable", "Sellable to Other Companies", o.Sellable, s.Sellable},
	}
}

var funcs = template.FuncMap{
	"selected": func(values []string, v string) bool { return slices.Contains(values, v) },
	"num":      formatNumber,
	"exact":    formatExact,
	"up":       func(v float64) bool { return v >= 0 },
}

var pageTemplates = template.Must(template.New("page").Funcs(funcs).Parse(pageHTML))

// RenderPage writes the full dashboard: the chart sections rendered by
// go-echarts with the sidebar, key metrics and data preview around them.
func RenderPage(w io.Writer, data PageData) error {
	out := data.Output
	metrics := NewKeyMetrics(out.TotalGHG, out.TotalCost)

	page := components.NewPage()
	page.PageTitle = PageTitle
	page.AddCharts(
		ScenarioBar(out.Scenarios),
		AlignmentPie(out.Alignment),
		InitiativeBar(out.Initiatives),
		GHGCostScatter(out.Scatter),
		LocationBar(out.LocationGHG),
	)

	var buf strings.Builder
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}

	view := struct {
		PageData
		Title   string
		Metrics KeyMetrics
		Widgets []widget
		Columns []string
	}{data, PageTitle, metrics, widgets(data.Options, data.Spec), models.RequiredColumns}

	var style, top, bottom bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&style, "style", view); err != nil {
		return err
	}
	if err := pageTemplates.ExecuteTemplate(&top, "top", view); err != nil {
		return err
	}
	if err := pageTemplates.ExecuteTemplate(&bottom, "bottom", view); err != nil {
		return err
	}

	htmlContent := buf.String()
	htmlContent = strings.Replace(htmlContent, "</head>", style.String()+"</head>", 1)
	htmlContent = strings.Replace(htmlContent, "<body>", "<body>\n"+top.String(), 1)
	htmlContent = strings.Replace(htmlContent, "</body>", bottom.String()+"</body>", 1)

	_, err := io.WriteString(w, htmlContent)
	return err
}

// formatExact keeps full precision so a resubmitted bound filters exactly
// like the one that produced the page.
func formatExact(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatNumber rounds to two decimals for display.
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

const pageHTML = `
{{- define "style" }}
<style>
    body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif; margin: 0 0 0 300px; padding: 20px; }
    .sidebar { position: fixed; left: 0; top: 0; bottom: 0; width: 270px; overflow-y: auto; padding: 15px; background: #f5f5f5; border-right: 1px solid #ddd; }
    .sidebar label { display: block; margin-top: 12px; font-size: 13px; font-weight: bold; }
    .sidebar select, .sidebar input { width: 100%; box-sizing: border-box; }
    .metrics { display: flex; gap: 20px; margin: 10px 0 20px 0; }
    .metric { flex: 1; padding: 15px; border: 1px solid #ddd; text-align: center; }
    .metric .value { font-size: 28px; font-weight: bold; }
    .metric .delta.up { color: #10B981; }
    .metric .delta.down { color: #EF4444; }
    .container { display: block !important; margin: 0 0 10px 0 !important; }
    .item > div[_echarts_instance_] { width: 100% !important; }
    table.preview { border-collapse: collapse; font-size: 12px; }
    table.preview td, table.preview th { padding: 3px 8px; border-bottom: 1px solid #eee; text-align: left; }
</style>
{{- end }}

{{- define "top" }}
<div class="sidebar">
    <h2>Configuration</h2>
    <form method="get" action="/">
        {{- range .Widgets }}
        {{- $w := . }}
        <label for="{{ $w.Name }}">{{ $w.Label }}</label>
        <select id="{{ $w.Name }}" name="{{ $w.Name }}" multiple size="5"{{ if not $.Interactive }} disabled{{ end }} onchange="this.form.submit()">
            {{- range $w.Options }}
            <option value="{{ . }}"{{ if selected $w.Selected . }} selected{{ end }}>{{ . }}</option>
            {{- end }}
        </select>
        {{- end }}
        <label for="cost_min">Minimum Cost Saving</label>
        <input id="cost_min" name="cost_min" type="number" step="any" value="{{ exact .Spec.CostMin }}"{{ if not .Interactive }} disabled{{ end }} onchange="this.form.submit()">
        <label for="cost_max">Maximum Cost Saving</label>
        <input id="cost_max" name="cost_max" type="number" step="any" value="{{ exact .Spec.CostMax }}"{{ if not .Interactive }} disabled{{ end }} onchange="this.form.submit()">
    </form>
</div>
<h1>{{ .Title }}</h1>
<p><em>{{ .Output.Rows }} initiatives match the current filters</em></p>
<h2>{{ .Metrics.Heading }}</h2>
<div class="metrics">
    {{- template "metric" .Metrics.GHG }}
    {{- template "metric" .Metrics.Cost }}
</div>
{{- end }}

{{- define "metric" }}
    <div class="metric">
        <div class="title">{{ .Title }}</div>
        <div class="value">{{ num .Value }}</div>
        <div class="delta {{ if up .Delta }}up{{ else }}down{{ end }}">{{ if up .Delta }}&#9650;{{ else }}&#9660;{{ end }} {{ num .Delta }}</div>
    </div>
{{- end }}

{{- define "bottom" }}
<details>
    <summary>View Filtered Dataset Sample</summary>
    <table class="preview">
        <tr>{{ range .Columns }}<th>{{ . }}</th>{{ end }}</tr>
        {{- range .Output.Preview }}
        <tr><td>{{ .Location }}</td><td>{{ .Scenario }}</td><td>{{ .Initiative }}</td><td>{{ num .CostSaving }}</td><td>{{ num .GHGMitigated }}</td><td>{{ num .MIRR }}</td><td>{{ .Alignment }}</td><td>{{ .Customization }}</td><td>{{ .Sellable }}</td></tr>
        {{- end }}
    </table>
</details>
{{- end }}
`
