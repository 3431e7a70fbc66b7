// Package formatter renders FlatRecords into the supported export layouts.
//
// Every formatter goes through the same lifecycle: WriteHeader once, any
// number of WriteRecord calls, then WriteFooter, which flushes the output and
// releases the file it was created on. Calls out of that order fail.
package formatter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hubertkaluzny/weight-exporter/record"
)

type Format string

const (
	Default Format = "default"
	Libra   Format = "libra"
)

var (
	ErrUnknownFormat    = errors.New("unknown output format")
	ErrHeaderNotWritten = errors.New("header has not been written")
	ErrHeaderWritten    = errors.New("header already written")
	ErrClosed           = errors.New("formatter is closed")
)

type Formatter interface {
	WriteHeader() error
	WriteRecord(rec record.FlatRecord) error
	WriteFooter() error
}

// Formats lists the valid format names.
func Formats() []Format {
	return []Format{Default, Libra}
}

func ToFormat(input string) (Format, error) {
	switch input {
	case string(Default):
		return Default, nil
	case string(Libra):
		return Libra, nil
	}
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return Default, fmt.Errorf("%w %q, expected one of %s", ErrUnknownFormat, input, strings.Join(names, ", "))
}

// New returns a formatter writing to w. If w is an io.Closer it is closed by
// WriteFooter.
func New(format Format, w io.Writer) (Formatter, error) {
	return newFormatter(format, w)
}

func newFormatter(format Format, w io.Writer) (FileFormatter, error) {
	switch format {
	case Default:
		return newDefaultFormatter(w), nil
	case Libra:
		return newLibraFormatter(w), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

// FileFormatter is a Formatter that owns an output file.
type FileFormatter interface {
	Formatter
	// Close releases the file without requiring the lifecycle to complete.
	// It is a no-op once WriteFooter has run.
	Close() error
}

// Create opens path for writing, truncating it, and returns a formatter
// over it.
func Create(format Format, path string) (FileFormatter, error) {
	if _, err := ToFormat(string(format)); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	formatter, err := newFormatter(format, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return formatter, nil
}
