package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(title string, headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(title)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// RenderSummary renders the coverage summary table.
func RenderSummary(rep *Report) string {
	rows := [][]string{
		{"Meetings", fmt.Sprintf("%d", rep.Summary.Total)},
		{"Has calendar event", fmt.Sprintf("%d", rep.Summary.HasCalendar)},
		{"Has recording", fmt.Sprintf("%d", rep.Summary.HasRecording)},
		{"Has transcript", fmt.Sprintf("%d", rep.Summary.HasTranscript)},
		{"Has analysis", fmt.Sprintf("%d", rep.Summary.HasAnalysis)},
		{"Gaps", fmt.Sprintf("%d", rep.Summary.Gaps)},
		{"Unresolved", fmt.Sprintf("%d", rep.Summary.Unresolved)},
	}
	title := "Coverage"
	if rep.Period.Start != "" || rep.Period.End != "" {
		title = fmt.Sprintf("Coverage %s .. %s", rep.Period.Start, rep.Period.End)
	}
	return renderTable(title, []string{"Metric", "Count"}, rows,
		[]columnAlignment{alignLeft, alignRight})
}

// RenderGaps renders the prioritized gap table.
func RenderGaps(rep *Report) string {
	rows := make([][]string, 0, len(rep.Gaps))
	for _, gap := range rep.Gaps {
		rows = append(rows, []string{
			gap.Date,
			gap.Counterpart,
			strings.Join(gap.Missing, ", "),
			fmt.Sprintf("%.2f", gap.Priority),
		})
	}
	return renderTable("Gaps by priority",
		[]string{"Date", "Counterpart", "Missing", "Priority"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight})
}

// RenderGapsByMonth renders one gap table per calendar month, newest month
// first.
func RenderGapsByMonth(rep *Report) string {
	groups := make(map[string][]Gap)
	for _, gap := range rep.Gaps {
		month := gap.Date
		if len(month) >= 7 {
			month = month[:7]
		}
		groups[month] = append(groups[month], gap)
	}

	months := make([]string, 0, len(groups))
	for m := range groups {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	var sections []string
	for _, month := range months {
		rows := make([][]string, 0, len(groups[month]))
		for _, gap := range groups[month] {
			rows = append(rows, []string{
				gap.Date,
				gap.Counterpart,
				strings.Join(gap.Missing, ", "),
				fmt.Sprintf("%.2f", gap.Priority),
			})
		}
		sections = append(sections, renderTable(month,
			[]string{"Date", "Counterpart", "Missing", "Priority"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))
	}
	return strings.Join(sections, "\n")
}

// RenderGapsByCounterpart renders one gap table per counterpart person,
// alphabetically.
func RenderGapsByCounterpart(rep *Report) string {
	groups := make(map[string][]Gap)
	for _, gap := range rep.Gaps {
		name := gap.Counterpart
		if name == "" {
			name = "unknown"
		}
		groups[name] = append(groups[name], gap)
	}

	names := make([]string, 0, len(groups))
	for n := range groups {
		names = append(names, n)
	}
	sort.Strings(names)

	var sections []string
	for _, name := range names {
		rows := make([][]string, 0, len(groups[name]))
		for _, gap := range groups[name] {
			rows = append(rows, []string{
				gap.Date,
				strings.Join(gap.Missing, ", "),
				fmt.Sprintf("%.2f", gap.Priority),
			})
		}
		sections = append(sections, renderTable(name,
			[]string{"Date", "Missing", "Priority"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight}))
	}
	return strings.Join(sections, "\n")
}
