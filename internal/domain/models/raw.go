package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RawForecastRequest is the wire shape accepted by every transport.
type RawForecastRequest struct {
	Horizon *int      `json:"horizon,omitempty" validate:"omitempty,gte=0,lte=3650"`
	Details []RawItem `json:"details" validate:"required"`
}

// RawItem is one detail entry before sanitization.
type RawItem struct {
	SKU     SKU         `json:"sku"`
	History []SaleValue `json:"history"`
}

// NullSKU is the key used for items sent without an identifier.
const NullSKU = "null"

// UnmarshalJSON keys an entry without a "sku" field as NullSKU.
func (it *RawItem) UnmarshalJSON(b []byte) error {
	type plain RawItem
	p := plain{SKU: NullSKU}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*it = RawItem(p)
	return nil
}

// SKU accepts a JSON string, number or null as an item identifier.
type SKU string

func (s *SKU) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = NullSKU
		return nil
	case len(b) > 0 && b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = SKU(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("sku must be a string or number: %s", b)
	}
	*s = SKU(n.String())
	return nil
}

// SaleValue is one history entry. JSON null becomes zero, booleans count as 1 and 0.
type SaleValue struct {
	Value float64
	Null  bool
}

func (v *SaleValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = SaleValue{Null: true}
		return nil
	case bytes.Equal(b, []byte("true")):
		*v = SaleValue{Value: 1}
		return nil
	case bytes.Equal(b, []byte("false")):
		*v = SaleValue{Value: 0}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("history value %q is not numeric", s)
		}
		*v = SaleValue{Value: f}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("history value %s is not numeric", b)
	}
	*v = SaleValue{Value: f}
	return nil
}

func (v SaleValue) MarshalJSON() ([]byte, error) {
	if v.Null {
		return []byte("null"), nil
	}
	return json.Marshal(v.Value)
}

// Float returns the coerced value.
func (v SaleValue) Float() float64 {
	if v.Null {
		return 0
	}
	return v.Value
}
