package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubertkaluzny/weight-exporter/record"
)

func TestRender(t *testing.T) {
	recs := []record.FlatRecord{
		{Source: "com.example.app Acme Scale-9000", ValueKg: 70.5, Date: "2018-01-02T03:04:05"},
		{Source: "Unknown Application", ValueKg: 69.8, Date: "2018-01-03T03:04:05"},
		{Source: "com.example.app Acme Scale-9000", ValueKg: 70.1, Date: "2018-01-04T03:04:05"},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, recs))
	out := buf.String()
	assert.Contains(t, out, "Body Weight")
	assert.Contains(t, out, "com.example.app Acme Scale-9000")
	assert.Contains(t, out, "Unknown Application")
	assert.Contains(t, out, "2018-01-04T03:04:05")
}

func TestWeightLineEmpty(t *testing.T) {
	_, err := WeightLine(nil)
	assert.ErrorIs(t, err, ErrNoRecords)

	var buf bytes.Buffer
	assert.ErrorIs(t, Render(&buf, nil), ErrNoRecords)
	assert.Zero(t, buf.Len())
}
