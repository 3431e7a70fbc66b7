package formatter

import (
	"io"

	"github.com/hubertkaluzny/weight-exporter/record"
)

// defaultFormatter writes every FlatRecord field as a tab separated column.
type defaultFormatter struct {
	lifecycle
}

var _ FileFormatter = (*defaultFormatter)(nil)

func newDefaultFormatter(w io.Writer) *defaultFormatter {
	return &defaultFormatter{lifecycle: newLifecycle(w, '\t')}
}

func (f *defaultFormatter) WriteHeader() error {
	if err := f.beginHeader(); err != nil {
		return err
	}
	return f.csv.Write(record.FlatHeader)
}

func (f *defaultFormatter) WriteRecord(rec record.FlatRecord) error {
	return f.writeRow(record.SerializeFlat(rec))
}
