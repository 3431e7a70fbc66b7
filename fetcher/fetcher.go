package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hubertkaluzny/weight-exporter/formatter"
	"github.com/hubertkaluzny/weight-exporter/record"
)

// MergedWeightStream is the derived stream Google Fit merges every weight
// source into.
const MergedWeightStream = "derived:com.google.weight:com.google.android.gms:merge_weight"

var ErrReversedRange = errors.New("end date is before start date")

type FetchTarget struct {
	From         time.Time
	To           time.Time
	DataSourceID string
}

type Source interface {
	DataSources(ctx context.Context) (record.Catalog, error)
	Dataset(ctx context.Context, target FetchTarget) ([]record.DataPoint, error)
}

type Fetcher struct {
	Source   Source
	Logger   *log.Logger
	Location *time.Location
}

func NewFetcher(source Source, logger *log.Logger) *Fetcher {
	return &Fetcher{Source: source, Logger: logger, Location: time.Local}
}

func (f Fetcher) logger() *log.Logger {
	if f.Logger == nil {
		return log.Default()
	}
	return f.Logger
}

// Fetch reads the catalog and the points of target and writes them to dst
// in the given format. The output file is only created once both fetches
// succeeded, and is always released before returning. It returns the number
// of rows written.
func (f Fetcher) Fetch(ctx context.Context, target FetchTarget, format formatter.Format, dst string) (int, error) {
	if target.DataSourceID == "" {
		target.DataSourceID = MergedWeightStream
	}
	if target.To.Before(target.From) {
		return 0, ErrReversedRange
	}
	logger := f.logger()

	logger.Info("fetching weight data sources")
	catalog, err := f.Source.DataSources(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch data sources: %w", err)
	}
	logger.Debug("data sources fetched", "count", len(catalog))

	logger.Info("fetching weight dataset", "source", target.DataSourceID,
		"from", target.From.Format(time.DateOnly), "to", target.To.Format(time.DateOnly))
	points, err := f.Source.Dataset(ctx, target)
	if err != nil {
		return 0, fmt.Errorf("fetch dataset: %w", err)
	}

	logger.Info("exporting weight dataset", "expected", len(points), "format", format)
	out, err := formatter.Create(format, dst)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	mapper := &record.Mapper{Catalog: catalog, Location: f.Location}
	written, err := Export(out, mapper, points)
	if err != nil {
		return written, err
	}

	logger.Info("export finished", "rows", written, "file", dst)
	return written, nil
}

// Export drives w through its whole lifecycle, writing one row per point in
// the order given. The first point that fails to map aborts the export.
func Export(w formatter.Formatter, mapper *record.Mapper, points []record.DataPoint) (int, error) {
	if err := w.WriteHeader(); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	written := 0
	for i, point := range points {
		rec, err := mapper.Map(point)
		if err != nil {
			return written, fmt.Errorf("point %d: %w", i, err)
		}
		if err := w.WriteRecord(rec); err != nil {
			return written, fmt.Errorf("write point %d: %w", i, err)
		}
		written++
	}
	if err := w.WriteFooter(); err != nil {
		return written, fmt.Errorf("write footer: %w", err)
	}
	return written, nil
}
