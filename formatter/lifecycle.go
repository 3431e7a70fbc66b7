package formatter

import (
	"encoding/csv"
	"io"
)

type state int

const (
	created state = iota
	headerWritten
	closed
)

// lifecycle holds the output plumbing shared by every format and enforces
// the Created -> HeaderWritten -> Closed ordering.
type lifecycle struct {
	state state
	w     io.Writer
	csv   *csv.Writer
}

func newLifecycle(w io.Writer, comma rune) lifecycle {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	return lifecycle{w: w, csv: cw}
}

func (l *lifecycle) beginHeader() error {
	switch l.state {
	case headerWritten:
		return ErrHeaderWritten
	case closed:
		return ErrClosed
	}
	l.state = headerWritten
	return nil
}

func (l *lifecycle) writeRow(row []string) error {
	switch l.state {
	case created:
		return ErrHeaderNotWritten
	case closed:
		return ErrClosed
	}
	return l.csv.Write(row)
}

func (l *lifecycle) finish() error {
	if l.state == closed {
		return ErrClosed
	}
	l.state = closed

	l.csv.Flush()
	err := l.csv.Error()
	if c, ok := l.w.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (l *lifecycle) WriteFooter() error {
	return l.finish()
}

func (l *lifecycle) Close() error {
	if l.state == closed {
		return nil
	}
	return l.finish()
}
