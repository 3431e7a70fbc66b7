package record

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// DateLayout is ISO-8601 without fractional seconds or zone offset.
const DateLayout = "2006-01-02T15:04:05"

// FlatRecord is the row every formatter consumes.
type FlatRecord struct {
	Source  string
	ValueKg float64
	Date    string
	Year    int
	Month   int
	Day     int
	Hour    int
	Minute  int
	Second  int
}

// FlatHeader holds the column names of a serialised FlatRecord.
var FlatHeader = []string{"Source", "Value(kg)", "Date", "Year", "Month", "Day", "Hour", "Minute", "Second"}

// FormatKg prints a weight with the single decimal it was rounded to.
func FormatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func SerializeFlat(r FlatRecord) []string {
	return []string{
		r.Source,
		FormatKg(r.ValueKg),
		r.Date,
		strconv.Itoa(r.Year),
		strconv.Itoa(r.Month),
		strconv.Itoa(r.Day),
		strconv.Itoa(r.Hour),
		strconv.Itoa(r.Minute),
		strconv.Itoa(r.Second),
	}
}

func UnserialiseFlat(fields []string) (*FlatRecord, error) {
	if len(fields) != len(FlatHeader) {
		return nil, errors.New("incorrect number of fields in record")
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, err
	}
	ints := make([]int, 6)
	for i := range ints {
		ints[i], err = strconv.Atoi(fields[i+3])
		if err != nil {
			return nil, err
		}
	}

	return &FlatRecord{
		Source:  fields[0],
		ValueKg: v,
		Date:    fields[2],
		Year:    ints[0],
		Month:   ints[1],
		Day:     ints[2],
		Hour:    ints[3],
		Minute:  ints[4],
		Second:  ints[5],
	}, nil
}

// ReadFlat parses a tab separated export, header row first.
func ReadFlat(r io.Reader) ([]FlatRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("missing header row")
	}

	records := make([]FlatRecord, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := UnserialiseFlat(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records[i] = *rec
	}
	return records, nil
}
