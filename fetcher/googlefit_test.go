package fetcher

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/hubertkaluzny/weight-exporter/formatter"
	"github.com/hubertkaluzny/weight-exporter/record"
)

const dataSourcesBody = `{
  "dataSource": [
    {
      "dataStreamId": "raw:com.google.weight:com.example.app:Acme:Scale-9000",
      "application": {"packageName": "com.example.app"},
      "device": {"manufacturer": "Acme", "model": "Scale-9000"}
    },
    {
      "dataStreamId": "raw:com.google.weight:com.example.manual",
      "application": {"packageName": "com.example.manual"}
    }
  ]
}`

const firstPageBody = `{
  "point": [
    {
      "startTimeNanos": "1514862245000000000",
      "originDataSourceId": "raw:com.google.weight:com.example.app:Acme:Scale-9000",
      "value": [{"fpVal": 70.46}]
    }
  ],
  "nextPageToken": "page-2"
}`

const secondPageBody = `{
  "point": [
    {
      "startTimeNanos": "1514948645000000000",
      "originDataSourceId": "raw:com.google.weight:com.example.manual",
      "value": [{"fpVal": 70.33}]
    }
  ]
}`

func newFitServer(t *testing.T, requests *[]*http.Request) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests = append(*requests, r)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(r.URL.Path, "/datasets/"):
			if r.URL.Query().Get("pageToken") == "page-2" {
				_, _ = w.Write([]byte(secondPageBody))
				return
			}
			_, _ = w.Write([]byte(firstPageBody))
		case strings.HasSuffix(r.URL.Path, "/dataSources"):
			_, _ = w.Write([]byte(dataSourcesBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGoogleFit(t *testing.T, srv *httptest.Server) *GoogleFit {
	src, err := NewGoogleFitSource(context.Background(),
		option.WithEndpoint(srv.URL+"/fitness/v1/users/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return src
}

func TestGoogleFitDataSources(t *testing.T) {
	var requests []*http.Request
	src := newTestGoogleFit(t, newFitServer(t, &requests))

	catalog, err := src.DataSources(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, "com.example.app Acme Scale-9000", record.SourceLabel(catalog, catalog[0].DataStreamID))
	assert.Nil(t, catalog[1].Device)

	require.Len(t, requests, 1)
	assert.Equal(t, "/fitness/v1/users/me/dataSources", requests[0].URL.Path)
	assert.Equal(t, WeightDataType, requests[0].URL.Query().Get("dataTypeName"))
}

func TestGoogleFitDataset(t *testing.T) {
	var requests []*http.Request
	src := newTestGoogleFit(t, newFitServer(t, &requests))

	target := FetchTarget{
		From:         time.Unix(1514764800, 0),
		To:           time.Unix(1517443200, 0),
		DataSourceID: MergedWeightStream,
	}
	points, err := src.Dataset(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, []record.DataPoint{
		{
			StartTimeNanos:     "1514862245000000000",
			OriginDataSourceID: "raw:com.google.weight:com.example.app:Acme:Scale-9000",
			Value:              []record.Value{{FpVal: 70.46}},
		},
		{
			StartTimeNanos:     "1514948645000000000",
			OriginDataSourceID: "raw:com.google.weight:com.example.manual",
			Value:              []record.Value{{FpVal: 70.33}},
		},
	}, points)

	require.Len(t, requests, 2)
	assert.True(t, strings.HasSuffix(requests[0].URL.Path,
		"/datasets/1514764800000000000-1517443200000000000"), requests[0].URL.Path)
	assert.Contains(t, requests[0].URL.Path, MergedWeightStream)
	assert.Equal(t, "page-2", requests[1].URL.Query().Get("pageToken"))
}

func TestGoogleFitServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 403, "message": "forbidden"}}`, http.StatusForbidden)
	}))
	defer srv.Close()
	src := newTestGoogleFit(t, srv)

	_, err := src.DataSources(context.Background())
	assert.Error(t, err)
	_, err = src.Dataset(context.Background(), FetchTarget{DataSourceID: MergedWeightStream})
	assert.Error(t, err)
}

func TestGoogleFitNaNWeightFailsExport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, "/datasets/") {
			_, _ = w.Write([]byte(`{"point": [{"startTimeNanos": "0", "originDataSourceId": "s", "value": [{"fpVal": "NaN"}]}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"dataSource": []}`))
	}))
	defer srv.Close()

	f := NewFetcher(newTestGoogleFit(t, srv), log.New(io.Discard))
	dst := filepath.Join(t.TempDir(), "out.csv")
	_, err := f.Fetch(context.Background(), testTarget(), formatter.Default, dst)

	var mapErr *record.MappingError
	assert.True(t, errors.As(err, &mapErr))
	assert.ErrorIs(t, err, record.ErrBadValue)
}
