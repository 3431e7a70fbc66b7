package record

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hubertkaluzny/weight-exporter/epoch"
)

var (
	ErrNoValue  = errors.New("point has no value")
	ErrBadValue = errors.New("point value is not a finite number")
)

// MappingError reports a data point that could not be turned into a
// FlatRecord.
type MappingError struct {
	StreamID string
	Nanos    string
	Err      error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("map point %s@%s: %v", e.StreamID, e.Nanos, e.Err)
}

func (e *MappingError) Unwrap() error { return e.Err }

// RoundKg rounds to one decimal, half away from zero, on the shortest
// decimal form of v. v must be finite.
func RoundKg(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

type Mapper struct {
	Catalog  Catalog
	Location *time.Location
}

func NewMapper(catalog Catalog) *Mapper {
	return &Mapper{Catalog: catalog, Location: time.Local}
}

// MapPoint maps point in local time.
func MapPoint(catalog Catalog, point DataPoint) (FlatRecord, error) {
	return NewMapper(catalog).Map(point)
}

func (m *Mapper) Map(point DataPoint) (FlatRecord, error) {
	if len(point.Value) == 0 {
		return FlatRecord{}, m.fail(point, ErrNoValue)
	}
	kg := point.Value[0].FpVal
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return FlatRecord{}, m.fail(point, ErrBadValue)
	}
	nanos, err := epoch.ParseNanos(point.StartTimeNanos)
	if err != nil {
		return FlatRecord{}, m.fail(point, err)
	}

	loc := m.Location
	if loc == nil {
		loc = time.Local
	}
	at := epoch.FromNanoEpochIn(nanos, loc)

	return FlatRecord{
		Source:  SourceLabel(m.Catalog, point.OriginDataSourceID),
		ValueKg: RoundKg(kg),
		Date:    at.Format(DateLayout),
		Year:    at.Year(),
		Month:   int(at.Month()),
		Day:     at.Day(),
		Hour:    at.Hour(),
		Minute:  at.Minute(),
		Second:  at.Second(),
	}, nil
}

func (m *Mapper) fail(point DataPoint, err error) error {
	return &MappingError{StreamID: point.OriginDataSourceID, Nanos: point.StartTimeNanos, Err: err}
}
