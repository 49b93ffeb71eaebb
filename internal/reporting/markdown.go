package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/Avishah123/hb-dashboard/internal/domain"
)

// RenderChanges renders a change report as Markdown.
func RenderChanges(r *ChangeReport) string {
	var sb strings.Builder
	res := r.Result
	p := res.Params

	sb.WriteString(fmt.Sprintf("# %s %s Changes\n\n", r.Dataset.Label(), p.Measure.Label()))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Lookback | %d days |\n", p.LookbackDays))
	sb.WriteString(fmt.Sprintf("| Threshold | %g%% |\n", p.ThresholdPercent))
	if !r.Range.IsOpen() {
		sb.WriteString(fmt.Sprintf("| Date Filter | %s |\n", r.Range))
	}
	if !res.ReferenceDate.IsZero() {
		sb.WriteString(fmt.Sprintf("| Window | %s to %s |\n", res.WindowStart, res.ReferenceDate))
	}
	sb.WriteString(fmt.Sprintf("| Entities Covered | %d / %d |\n", res.Covered, res.Entities))
	sb.WriteString("\n")

	if res.Insufficient() || len(res.Records) == 0 {
		sb.WriteString(fmt.Sprintf("**%s**\n", res.Message()))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("## Rising (≥%g%%)\n\n", p.ThresholdPercent))
	writeChangeTable(&sb, r.Rising, "No entities found with a rise")
	sb.WriteString(fmt.Sprintf("## Falling (≥%g%%)\n\n", p.ThresholdPercent))
	writeChangeTable(&sb, r.Falling, "No entities found with a fall")

	return sb.String()
}

func writeChangeTable(sb *strings.Builder, rows []ChangeRow, empty string) {
	if len(rows) == 0 {
		sb.WriteString(empty + ".\n\n")
		return
	}
	sb.WriteString("| Symbol | Start Date | Start | End Date | End | Days | Change |\n")
	sb.WriteString("|--------|------------|-------|----------|-----|------|--------|\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
			row.Symbol, row.StartDate, row.StartValue, row.EndDate, row.EndValue, row.DaysBetween, row.PctChange))
	}
	sb.WriteString("\n")
}

// RenderTrend renders a drill-down report as Markdown.
func RenderTrend(r *TrendReport) string {
	var sb strings.Builder
	tr := r.Trend

	sb.WriteString(fmt.Sprintf("# %s %s: %s\n\n", r.Dataset.Label(), tr.Measure.Label(), tr.Symbol))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	if len(tr.Points) == 0 {
		sb.WriteString(fmt.Sprintf("No data for %s between %s and %s.\n", tr.Symbol, tr.WindowStart, tr.WindowEnd))
		return sb.String()
	}

	s := tr.Stats
	sb.WriteString("## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Mean | %s |\n", FormatMeasure(tr.Measure, s.Mean)))
	sb.WriteString(fmt.Sprintf("| Max | %s |\n", FormatMeasure(tr.Measure, s.Max)))
	sb.WriteString(fmt.Sprintf("| Min | %s |\n", FormatMeasure(tr.Measure, s.Min)))
	sb.WriteString(fmt.Sprintf("| Std Dev | %s |\n", FormatOptional(tr.Measure, s.Stddev)))
	sb.WriteString(fmt.Sprintf("| Days Tracked | %d |\n", s.DistinctDates))
	sb.WriteString(fmt.Sprintf("| Change | %s |\n", FormatOptionalPercent(tr.PctChange)))
	sb.WriteString("\n")

	sb.WriteString("## Series\n\n")
	sb.WriteString("| Date | Value |\n")
	sb.WriteString("|------|-------|\n")
	for _, pt := range tr.Points {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", pt.Date, FormatMeasure(tr.Measure, pt.Value)))
	}
	sb.WriteString("\n")

	return sb.String()
}

// RenderStatus renders a store status report as Markdown.
func RenderStatus(r *StatusReport) string {
	var sb strings.Builder
	st := r.Status

	sb.WriteString("# Database Status\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	if !st.Connected {
		sb.WriteString(fmt.Sprintf("**Disconnected** (%s): %s\n", st.Driver, st.Error))
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("**Connected** (%s)\n\n", st.Driver))

	sb.WriteString("| Table | Rows |\n")
	sb.WriteString("|-------|------|\n")
	for _, k := range domain.AllDatasets() {
		if n, ok := st.Counts[k]; ok {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", k.Table(), n))
		}
	}
	sb.WriteString("\n")

	last := NA
	if st.LastUpdated != nil {
		last = st.LastUpdated.Format("2006-01-02 15:04:05")
	}
	sb.WriteString(fmt.Sprintf("Last updated: %s\n", last))
	return sb.String()
}
