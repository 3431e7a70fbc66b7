// Package epoch converts between calendar time and the nanosecond epoch
// integers used by the fitness API.
package epoch

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const nanosPerSecond = 1_000_000_000

var ErrOutOfRange = errors.New("nano epoch out of range")

// ToNanoEpoch returns the whole seconds of t since the Unix epoch, scaled to
// nanoseconds, as a decimal string. The scaling is done on the digits so
// dates past 2262 do not overflow int64.
func ToNanoEpoch(t time.Time) string {
	secs := t.Unix()
	if secs == 0 {
		return "0"
	}
	return strconv.FormatInt(secs, 10) + "000000000"
}

// DatasetID builds the "<startNanos>-<endNanos>" range identifier the
// datasets endpoint expects.
func DatasetID(start, end time.Time) string {
	return ToNanoEpoch(start) + "-" + ToNanoEpoch(end)
}

// FromNanoEpoch converts nanos to local time. The value is rounded to the
// nearest second before conversion so the result never carries sub-second
// precision.
func FromNanoEpoch(nanos float64) time.Time {
	return FromNanoEpochIn(nanos, time.Local)
}

func FromNanoEpochIn(nanos float64, loc *time.Location) time.Time {
	secs := math.Round(nanos / nanosPerSecond)
	return time.Unix(int64(secs), 0).In(loc)
}

// ParseNanos decodes the decimal string form of a nano epoch. NaN, infinities
// and values whose seconds do not fit an int64 are rejected.
func ParseNanos(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, s)
	}
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.Abs(v/nanosPerSecond) >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, s)
	}
	return v, nil
}
