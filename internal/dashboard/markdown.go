package dashboard

import (
	"fmt"
	"io"
	"strings"
)

// Markdown renders the view as a sectioned report.
func (v *View) Markdown() string {
	var b strings.Builder
	b.WriteString("[DASHBOARD]\n")
	if v.Source != "" {
		b.WriteString(fmt.Sprintf("- File: %s\n", v.Source))
	}
	b.WriteString(fmt.Sprintf("- Students: %d of %d\n", v.Total, v.Population))
	b.WriteString(fmt.Sprintf("- Year groups: %s\n", listOrNone(v.State.YearGroups)))
	b.WriteString(fmt.Sprintf("- Provisions: %s\n", listOrNone(v.State.Provisions)))
	if len(v.State.Markers) > 0 {
		b.WriteString(fmt.Sprintf("- Markers: %s\n", strings.Join(v.State.Markers, " AND ")))
	}

	b.WriteString("\n[HEADLINE]\n")
	b.WriteString(fmt.Sprintf("- Total Students: %d\n", v.Total))
	for _, m := range v.Headline {
		b.WriteString(fmt.Sprintf("- %s: %.1f%% (%d students)\n", m.Label, m.Percentage, m.Count))
	}

	b.WriteString("\n[DEPRIVATION STATUS]\n")
	b.WriteString(fmt.Sprintf("- Disadvantaged: %d\n", v.Status.Disadvantaged))
	b.WriteString(fmt.Sprintf("- Not Disadvantaged: %d\n", v.Status.NotDisadvantaged))

	if len(v.MarkerCounts) > 0 {
		b.WriteString("\n[NUMBER OF DISADVANTAGE FACTORS]\n")
		for _, l := range v.MarkerCounts {
			b.WriteString(fmt.Sprintf("- %d: %d\n", l.Level, l.Count))
		}
	}

	if len(v.YearGroups) > 0 {
		b.WriteString("\n[DEPRIVATION BY YEAR GROUP]\n")
		b.WriteString("| Year | Disadvantaged | Total | % |\n|---|---|---|---|\n")
		for _, r := range v.YearGroups {
			b.WriteString(fmt.Sprintf("| %s | %d | %d | %.1f%% |\n", safeCell(r.Key), r.Count, r.Total, r.Percentage))
		}
	}

	b.WriteString("\n[VULNERABILITY FACTORS]\n")
	for _, m := range v.Factors {
		b.WriteString(fmt.Sprintf("- %s: %d (%.1f%%)\n", m.Label, m.Count, m.Percentage))
	}

	if len(v.National) > 0 {
		b.WriteString("\n[NATIONAL COMPARISON]\n")
		b.WriteString("| Indicator | Our School | National Average |\n|---|---|---|\n")
		for _, n := range v.National {
			b.WriteString(fmt.Sprintf("| %s | %.1f%% | %.1f%% |\n", n.Label, n.School, n.National))
		}
		b.WriteString("\nSources:\n")
		for _, n := range v.National {
			b.WriteString(fmt.Sprintf("- %s: %s\n", n.Label, n.Source))
		}
	}

	b.WriteString("\n[DISADVANTAGE MARKERS PYRAMID]\n")
	for _, l := range v.Pyramid {
		b.WriteString(fmt.Sprintf("- %s: %d students (%.1f%%)\n", l.Label, l.Count, l.Percentage))
	}

	if len(v.Heatmap.Rows) > 0 {
		b.WriteString("\n[DETAILED ANALYSIS BY YEAR GROUP]\n")
		b.WriteString("| Year | " + strings.Join(v.Heatmap.Columns, " | ") + " |\n")
		b.WriteString("|---" + strings.Repeat("|---", len(v.Heatmap.Columns)) + "|\n")
		for i, row := range v.Heatmap.Rows {
			cells := make([]string, len(v.Heatmap.Values[i]))
			for j, val := range v.Heatmap.Values[i] {
				cells[j] = fmt.Sprintf("%.1f%%", val)
			}
			b.WriteString(fmt.Sprintf("| %s | %s |\n", safeCell(row), strings.Join(cells, " | ")))
		}
	}

	if len(v.Provisions) > 0 {
		b.WriteString("\n[PROVISION]\n")
		for _, m := range v.Provisions {
			b.WriteString(fmt.Sprintf("- %s: %d (%.1f%%)\n", m.Label, m.Count, m.Percentage))
		}
	}

	b.WriteString("\n[ATTENDANCE]\n")
	if s := v.Attendance.Summary; s.HasData {
		b.WriteString(fmt.Sprintf("- Mean %.1f%%, median %.1f%% (n=%d, missing %d)\n", s.Mean, s.Median, s.N, s.Missing))
		for _, bk := range v.Attendance.Bands {
			b.WriteString(fmt.Sprintf("- %s: %d\n", bk.Label, bk.Count))
		}
	} else {
		b.WriteString("- no data\n")
	}

	if hasOutcomes(v.Outcomes) {
		b.WriteString("\n[OUTCOMES BY NUMBER OF MARKERS]\n")
		for _, o := range v.Outcomes {
			if len(o.ByLevel) == 0 {
				continue
			}
			b.WriteString(fmt.Sprintf("- %s:", o.Measure))
			for _, g := range o.ByLevel {
				if g.HasData {
					b.WriteString(fmt.Sprintf(" %s=%.2f (n=%d)", g.Key, g.Mean, g.SampleSize))
				} else {
					b.WriteString(fmt.Sprintf(" %s=no data", g.Key))
				}
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n[KEY INSIGHTS]\n")
	md := v.Insights.MultipleDeprivation
	b.WriteString(fmt.Sprintf("- Multiple Deprivation: %d students (%.1f%%) face %d or more disadvantage factors\n", md.Count, md.Percentage, v.Insights.Threshold))
	b.WriteString(fmt.Sprintf("- Child Protection: %d students on child protection plans\n", v.Insights.ChildProtection))
	b.WriteString(fmt.Sprintf("- Looked After Children: %d students in care\n", v.Insights.LookedAfter))
	return b.String()
}

// WriteMarkdown writes v.Markdown() to w.
func WriteMarkdown(w io.Writer, v *View) error {
	_, err := io.WriteString(w, v.Markdown())
	return err
}

func hasOutcomes(outs []Outcome) bool {
	for _, o := range outs {
		if len(o.ByLevel) > 0 {
			return true
		}
	}
	return false
}

func listOrNone(ss []string) string {
	if len(ss) == 0 {
		return "(none)"
	}
	return strings.Join(ss, ", ")
}

func safeCell(s string) string {
	s = strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
	if strings.TrimSpace(s) == "" {
		return "(blank)"
	}
	return s
}
