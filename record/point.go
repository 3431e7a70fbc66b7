package record

// Value is one typed value of a data point. Weight samples only populate
// the floating point field.
type Value struct {
	FpVal float64 `json:"fpVal"`
}

// DataPoint is a raw weight sample as returned by the dataset endpoint.
type DataPoint struct {
	StartTimeNanos     string  `json:"startTimeNanos"`
	OriginDataSourceID string  `json:"originDataSourceId"`
	Value              []Value `json:"value"`
}

type Application struct {
	PackageName string `json:"packageName,omitempty"`
}

type Device struct {
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
}

// DataSource describes the app or device a stream of points originates from.
type DataSource struct {
	DataStreamID string       `json:"dataStreamId"`
	Application  *Application `json:"application,omitempty"`
	Device       *Device      `json:"device,omitempty"`
}

// Catalog is the list of data sources known for the weight data type.
type Catalog []DataSource

// Find returns the first data source with the given stream id.
func (c Catalog) Find(streamID string) (DataSource, bool) {
	for _, ds := range c {
		if ds.DataStreamID == streamID {
			return ds, true
		}
	}
	return DataSource{}, false
}
