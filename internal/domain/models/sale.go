package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Sale is one recorded sale line stored for forecasting.
type Sale struct {
	SKU   string
	Store string
	Qty   float64
	TS    time.Time
}

// SaleEvent is the wire shape of a sale on the ingest topic.
type SaleEvent struct {
	SKU   string    `json:"sku"`
	Store string    `json:"store"`
	Qty   float64   `json:"qty"`
	TS    EventTime `json:"ts"`
}

// Validate rejects events that cannot be stored.
func (e SaleEvent) Validate() error {
	switch {
	case e.SKU == "":
		return fmt.Errorf("sku empty")
	case math.IsNaN(e.Qty) || math.IsInf(e.Qty, 0) || e.Qty <= 0:
		return fmt.Errorf("qty must be a positive number")
	case e.TS.IsZero():
		return fmt.Errorf("ts missing")
	}
	return nil
}

// Sale converts the event; an empty store is recorded as "unknown".
func (e SaleEvent) Sale() Sale {
	store := e.Store
	if store == "" {
		store = "unknown"
	}
	return Sale{SKU: e.SKU, Store: store, Qty: e.Qty, TS: e.TS.UTC()}
}

// EventTime accepts unix seconds, unix milliseconds or an RFC3339 string.
type EventTime struct {
	time.Time
}

func (t *EventTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("ts: %w", err)
		}
		t.Time = parsed
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("ts: %w", err)
	}
	if n <= 0 {
		t.Time = time.Time{}
		return nil
	}
	if n > 1e11 { // ms
		t.Time = time.UnixMilli(n)
		return nil
	}
	t.Time = time.Unix(n, 0)
	return nil
}

func (t EventTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Unix())
}
