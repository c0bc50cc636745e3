package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/domaincomb/domaincomb/internal/core"
)

// csvHeader is the report column contract. http_status stays blank when no
// HTTP response was observed.
var csvHeader = []string{"domain", "status", "http_status", "detail", "prefix", "suffix"}

// CSVFormatter renders a report as delimited text.
type CSVFormatter struct{}

// FormatReport renders the report records as CSV.
func (f *CSVFormatter) FormatReport(report *core.Report) (string, error) {
	if report == nil {
		return "", nil
	}

	var b strings.Builder
	if err := WriteCSV(&b, report); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteCSV streams the report records to w, header first, in record order.
func WriteCSV(w io.Writer, report *core.Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, record := range report.Records {
		row := []string{
			record.Domain,
			string(record.Outcome.Status),
			httpStatusField(record.Outcome),
			record.Outcome.Detail,
			record.Prefix,
			record.Suffix,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func httpStatusField(outcome core.LookupOutcome) string {
	if outcome.StatusCode == 0 {
		return ""
	}
	return strconv.Itoa(outcome.StatusCode)
}
