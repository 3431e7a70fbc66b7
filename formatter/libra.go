package formatter

import (
	"io"
	"strings"

	"github.com/hubertkaluzny/weight-exporter/record"
)

// libraPreamble is the header of the Libra weight app's CSV import format.
const libraPreamble = "#Version:5\n" +
	"#Units:kg\n" +
	"\n" +
	"#date;weight;weight trend;body fat;body fat trend;comment\n"

// libraFormatter only conveys date and weight. Trend, body fat and comment
// columns are kept empty so column positions match the import format.
type libraFormatter struct {
	lifecycle
}

var _ FileFormatter = (*libraFormatter)(nil)

func newLibraFormatter(w io.Writer) *libraFormatter {
	return &libraFormatter{lifecycle: newLifecycle(w, ';')}
}

func (f *libraFormatter) WriteHeader() error {
	if err := f.beginHeader(); err != nil {
		return err
	}
	_, err := io.WriteString(f.w, libraPreamble)
	return err
}

func (f *libraFormatter) WriteRecord(rec record.FlatRecord) error {
	return f.writeRow(libraRow(rec))
}

func libraRow(rec record.FlatRecord) []string {
	return []string{
		strings.Replace(rec.Date, "T", " ", 1),
		record.FormatKg(rec.ValueKg),
		"",
		"",
		"",
		"",
	}
}
