package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/domaincomb/domaincomb/internal/core"
)

// TableFormatter renders a report as an ASCII table with a summary footer.
type TableFormatter struct{}

// FormatReport renders the report records as a table.
func (f *TableFormatter) FormatReport(report *core.Report) (string, error) {
	if report == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Domain", "Status", "HTTP", "Detail"})

	for _, record := range report.Records {
		t.AppendRow(table.Row{
			record.Domain,
			strings.ToUpper(string(record.Outcome.Status)),
			httpColumn(record.Outcome),
			record.Outcome.Detail,
		})
	}

	summary := report.Summary
	t.AppendFooter(table.Row{
		fmt.Sprintf("%d checked", summary.Total),
		fmt.Sprintf("%d available", summary.Available),
		"",
		fmt.Sprintf("%d registered, %d invalid, %d unknown", summary.Registered, summary.Invalid, summary.Unknown),
	})

	return t.Render(), nil
}

func httpColumn(outcome core.LookupOutcome) string {
	if outcome.StatusCode == 0 {
		return ""
	}
	return strconv.Itoa(outcome.StatusCode)
}
