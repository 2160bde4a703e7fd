package http

import (
	"encoding/json"

	"finboard/internal/dashboard"
	"finboard/internal/report"
)

type menuItem struct {
	Slug   string
	Label  string
	Active bool
}

type indexView struct {
	Menu        []menuItem
	Title       string
	Sections    []sectionView
	GeneratedAt string
	Notice      string
}

type sectionView struct {
	Kind        string
	Title       string
	Columns     []string
	Rows        [][]string
	Chart       string
	ChartData   string // chart payload as JSON, drawn without another request
	ValueLabels bool
	Month       string
	Total       string
	Failed      bool
	Notice      string
}

func (v sectionView) Empty() bool {
	return !v.Failed && len(v.Rows) == 0
}

func menuView(entries []report.MenuEntry, active string) []menuItem {
	if active == "" && len(entries) > 0 {
		active = entries[0].Slug
	}
	out := make([]menuItem, len(entries))
	for i, e := range entries {
		out[i] = menuItem{Slug: e.Slug, Label: e.Label, Active: e.Slug == active}
	}
	return out
}

func sectionViews(sections []dashboard.Section) []sectionView {
	out := make([]sectionView, len(sections))
	for i, s := range sections {
		if s.Failed() {
			out[i] = failedSection(s.Kind, s.Err)
			continue
		}
		out[i] = tableView(s.Table)
	}
	return out
}

func failedSection(kind report.Kind, err error) sectionView {
	return sectionView{
		Kind:   kind.String(),
		Title:  kind.Title(),
		Failed: true,
		Notice: noticeFor(err),
	}
}

// tableView formats a table for the page. Aggregate values are shown as
// currency; entity dumps are shown as stored.
func tableView(t report.Table) sectionView {
	v := sectionView{
		Kind:        t.Kind.String(),
		Title:       t.Title,
		Columns:     t.Columns,
		Rows:        make([][]string, len(t.Rows)),
		Chart:       string(t.Chart),
		ValueLabels: t.ValueLabels,
		Month:       t.Month.String(),
	}
	if t.Chart != "" {
		v.ChartData = newChartPayload(t).JSON()
	}
	_, isEntity := t.Kind.Entity()
	for i, r := range t.Rows {
		if isEntity {
			v.Rows[i] = r.Cells
			continue
		}
		v.Rows[i] = []string{r.Label, formatReais(r.Value)}
	}
	if !isEntity && !t.IsEmpty() {
		v.Total = formatReais(t.Total())
	}
	return v
}

// chartPayload is what the page's charts are drawn from.
type chartPayload struct {
	Kind        string     `json:"kind"`
	Title       string     `json:"title"`
	Chart       string     `json:"chart,omitempty"`
	Month       string     `json:"month,omitempty"`
	ValueLabels bool       `json:"value_labels"`
	Columns     []string   `json:"columns"`
	Labels      []string   `json:"labels"`
	Values      []float64  `json:"values"`
	Rows        [][]string `json:"rows"`
}

// JSON encodes p for a data attribute. It returns "{}" if encoding fails.
func (p chartPayload) JSON() string {
	b, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func newChartPayload(t report.Table) chartPayload {
	p := chartPayload{
		Kind:        t.Kind.String(),
		Title:       t.Title,
		Chart:       string(t.Chart),
		Month:       t.Month.String(),
		ValueLabels: t.ValueLabels,
		Columns:     t.Columns,
		Labels:      []string{},
		Values:      []float64{},
		Rows:        t.Cells(),
	}
	if _, isEntity := t.Kind.Entity(); isEntity {
		return p
	}
	for _, r := range t.Rows {
		p.Labels = append(p.Labels, r.Label)
		p.Values = append(p.Values, r.Value.Float64())
	}
	return p
}
