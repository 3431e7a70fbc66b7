package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog() Catalog {
	return Catalog{
		{
			DataStreamID: "raw:com.google.weight:com.example.app:Acme:Scale-9000",
			Application:  &Application{PackageName: "com.example.app"},
			Device:       &Device{Manufacturer: "Acme", Model: "Scale-9000"},
		},
		{
			DataStreamID: "raw:com.google.weight:com.example.manual",
			Application:  &Application{PackageName: "com.example.manual"},
		},
		{
			DataStreamID: "raw:com.google.weight:Withings:Body",
			Device:       &Device{Model: "Body"},
		},
		{
			DataStreamID: "raw:com.google.weight:bare",
		},
	}
}

func TestSourceLabel(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name     string
		streamID string
		expected string
	}{
		{"all fields", "raw:com.google.weight:com.example.app:Acme:Scale-9000", "com.example.app Acme Scale-9000"},
		{"package only", "raw:com.google.weight:com.example.manual", "com.example.manual"},
		{"model only", "raw:com.google.weight:Withings:Body", "Body"},
		{"no descriptors", "raw:com.google.weight:bare", ""},
		{"missing stream", "raw:com.google.weight:gone", UnknownSource},
		{"empty stream id", "", UnknownSource},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SourceLabel(catalog, tc.streamID))
		})
	}

	t.Run("empty catalog", func(t *testing.T) {
		assert.Equal(t, "Unknown Application", SourceLabel(nil, "anything"))
	})
}
