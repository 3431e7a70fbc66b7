package fetcher

import (
	"context"
	"strconv"

	"google.golang.org/api/fitness/v1"
	"google.golang.org/api/option"

	"github.com/hubertkaluzny/weight-exporter/epoch"
	"github.com/hubertkaluzny/weight-exporter/record"
)

const (
	WeightDataType = "com.google.weight"
	currentUser    = "me"
)

type GoogleFit struct {
	service *fitness.Service
}

var _ Source = (*GoogleFit)(nil)

func NewGoogleFitSource(ctx context.Context, opts ...option.ClientOption) (*GoogleFit, error) {
	svc, err := fitness.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GoogleFit{svc}, nil
}

func (g GoogleFit) DataSources(ctx context.Context) (record.Catalog, error) {
	resp, err := g.service.Users.DataSources.List(currentUser).
		DataTypeName(WeightDataType).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	catalog := make(record.Catalog, 0, len(resp.DataSource))
	for _, ds := range resp.DataSource {
		if ds == nil {
			continue
		}
		catalog = append(catalog, toDataSource(ds))
	}
	return catalog, nil
}

func (g GoogleFit) Dataset(ctx context.Context, target FetchTarget) ([]record.DataPoint, error) {
	datasetID := epoch.DatasetID(target.From, target.To)

	var points []record.DataPoint
	pageToken := ""
	for {
		call := g.service.Users.DataSources.Datasets.Get(currentUser, target.DataSourceID, datasetID).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		ds, err := call.Do()
		if err != nil {
			return nil, err
		}
		for _, p := range ds.Point {
			if p == nil {
				continue
			}
			points = append(points, toDataPoint(p))
		}
		if ds.NextPageToken == "" || ds.NextPageToken == pageToken {
			break
		}
		pageToken = ds.NextPageToken
	}
	return points, nil
}

func toDataSource(ds *fitness.DataSource) record.DataSource {
	out := record.DataSource{DataStreamID: ds.DataStreamId}
	if ds.Application != nil {
		out.Application = &record.Application{PackageName: ds.Application.PackageName}
	}
	if ds.Device != nil {
		out.Device = &record.Device{Manufacturer: ds.Device.Manufacturer, Model: ds.Device.Model}
	}
	return out
}

func toDataPoint(p *fitness.DataPoint) record.DataPoint {
	out := record.DataPoint{
		StartTimeNanos:     strconv.FormatInt(p.StartTimeNanos, 10),
		OriginDataSourceID: p.OriginDataSourceId,
	}
	for _, v := range p.Value {
		if v == nil {
			continue
		}
		out.Value = append(out.Value, record.Value{FpVal: v.FpVal})
	}
	return out
}
