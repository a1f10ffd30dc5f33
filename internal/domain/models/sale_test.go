package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTimeFormats(t *testing.T) {
	want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := map[string]string{
		"seconds":  `1709294400`,
		"millis":   `1709294400000`,
		"rfc3339":  `"2024-03-01T12:00:00Z"`,
		"rfc3339z": `"2024-03-01T15:00:00+03:00"`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			var et EventTime
			require.NoError(t, json.Unmarshal([]byte(in), &et))
			assert.True(t, et.Equal(want), "got %v", et.Time)
		})
	}
}

func TestEventTimeRejectsGarbage(t *testing.T) {
	var et EventTime
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &et))
	assert.Error(t, json.Unmarshal([]byte(`1.5`), &et))
}

func TestSaleEventValidate(t *testing.T) {
	ts := EventTime{time.Unix(1709294400, 0)}
	ok := SaleEvent{SKU: "A1", Qty: 2, TS: ts}
	require.NoError(t, ok.Validate())
	assert.Equal(t, "unknown", ok.Sale().Store)

	assert.Error(t, SaleEvent{Qty: 1, TS: ts}.Validate())
	assert.Error(t, SaleEvent{SKU: "A1", Qty: 0, TS: ts}.Validate())
	assert.Error(t, SaleEvent{SKU: "A1", Qty: 1}.Validate())
}
