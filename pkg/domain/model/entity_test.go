package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/mailcrest/mailcrest/pkg/domain/model"
)

func TestEntityBag_Has(t *testing.T) {
	bag := model.NewEntityBag(map[string]any{
		"trackingNumber": "1Z999",
		"nullValue":      nil,
		"zero":           0,
		"emptyString":    "",
	})

	tests := []struct {
		name string
		key  string
		want bool
	}{
		{name: "present string", key: "trackingNumber", want: true},
		{name: "explicit null counts as absent", key: "nullValue", want: false},
		{name: "zero is present", key: "zero", want: true},
		{name: "empty string is present", key: "emptyString", want: true},
		{name: "missing key", key: "nope", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, bag.Has(tt.key)).Equal(tt.want)
		})
	}
}

func TestEntityBag_NilReceiver(t *testing.T) {
	var bag *model.EntityBag

	gt.Bool(t, bag.Has("anything")).False()
	_, ok := bag.Get("anything")
	gt.Bool(t, ok).False()
	gt.Value(t, bag.Len()).Equal(0)
}

func TestEntityBag_String(t *testing.T) {
	bag := model.NewEntityBag(map[string]any{
		"str":    "hello",
		"int":    42,
		"float":  3.5,
		"bool":   true,
		"nested": map[string]any{"x": 1},
	})

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{key: "str", want: "hello", wantOK: true},
		{key: "int", want: "42", wantOK: true},
		{key: "float", want: "3.5", wantOK: true},
		{key: "bool", want: "true", wantOK: true},
		{key: "nested", want: "", wantOK: false},
		{key: "missing", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := bag.String(tt.key)
			gt.Value(t, ok).Equal(tt.wantOK)
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestEntityBag_Date(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		wantOK bool
	}{
		{name: "RFC3339", value: "2026-09-03T10:00:00Z", wantOK: true},
		{name: "date only", value: "2026-09-03", wantOK: true},
		{name: "US slashes", value: "09/03/2026", wantOK: true},
		{name: "long month", value: "September 3, 2026", wantOK: true},
		{name: "short month", value: "Sep 3, 2026", wantOK: true},
		{name: "day first", value: "3 September 2026", wantOK: true},
		{name: "time.Time passthrough", value: time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC), wantOK: true},
		{name: "garbage", value: "next tuesday", wantOK: false},
		{name: "number", value: 20260903, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := model.NewEntityBag(map[string]any{"d": tt.value})
			_, ok := bag.Date("d")
			gt.Value(t, ok).Equal(tt.wantOK)
		})
	}
}

func TestEntityBag_Nested(t *testing.T) {
	bag := model.NewEntityBag(map[string]any{
		"extractedContent": map[string]any{
			"attachments": []any{"report.pdf"},
			"date":        "2026-09-20",
		},
		"plain": "value",
	})

	nested, ok := bag.Nested("extractedContent")
	gt.Bool(t, ok).True()
	gt.Bool(t, nested.Has("attachments")).True()
	gt.Bool(t, nested.HasDateTime()).True()

	_, ok = bag.Nested("plain")
	gt.Bool(t, ok).False()
}

func TestEntityBag_DerivedAccessors(t *testing.T) {
	t.Run("primary keys", func(t *testing.T) {
		bag := model.NewEntityBag(map[string]any{
			"trackingNumber": "1Z999",
			"carrier":        "UPS",
			"amount":         "25.00",
			"merchant":       "Acme",
			"flightNumber":   "UA123",
		})

		v, ok := bag.TrackingNumber()
		gt.Bool(t, ok).True()
		gt.Value(t, v).Equal("1Z999")

		v, ok = bag.Amount()
		gt.Bool(t, ok).True()
		gt.Value(t, v).Equal("25.00")

		v, ok = bag.FlightNumber()
		gt.Bool(t, ok).True()
		gt.Value(t, v).Equal("UA123")
	})

	t.Run("alias fallback", func(t *testing.T) {
		bag := model.NewEntityBag(map[string]any{
			"tracking_number":   "1Z888",
			"totalAmount":       "99.00",
			"vendor":            "Globex",
			"estimatedDelivery": "2026-09-05",
		})

		v, ok := bag.TrackingNumber()
		gt.Bool(t, ok).True()
		gt.Value(t, v).Equal("1Z888")

		v, ok = bag.Amount()
		gt.Bool(t, ok).True()
		gt.Value(t, v).Equal("99.00")

		v, ok = bag.Merchant()
		gt.Bool(t, ok).True()
		gt.Value(t, v).Equal("Globex")

		_, ok = bag.DeliveryDate()
		gt.Bool(t, ok).True()
	})

	t.Run("primary beats alias", func(t *testing.T) {
		bag := model.NewEntityBag(map[string]any{
			"amount": "1.00",
			"total":  "2.00",
		})
		v, ok := bag.Amount()
		gt.Bool(t, ok).True()
		gt.Value(t, v).Equal("1.00")
	})
}

func TestEntityBag_Isolation(t *testing.T) {
	src := map[string]any{"key": "before"}
	bag := model.NewEntityBag(src)

	src["key"] = "after"
	src["added"] = "later"

	v, ok := bag.String("key")
	gt.Bool(t, ok).True()
	gt.Value(t, v).Equal("before")
	gt.Bool(t, bag.Has("added")).False()
}

func TestEntityBag_JSONRoundTrip(t *testing.T) {
	bag := model.NewEntityBag(map[string]any{
		"trackingNumber": "1Z999",
		"nested":         map[string]any{"a": "b"},
	})

	data, err := json.Marshal(bag)
	gt.NoError(t, err).Required()

	var decoded model.EntityBag
	gt.NoError(t, json.Unmarshal(data, &decoded)).Required()

	v, ok := decoded.String("trackingNumber")
	gt.Bool(t, ok).True()
	gt.Value(t, v).Equal("1Z999")

	nested, ok := decoded.Nested("nested")
	gt.Bool(t, ok).True()
	gt.Bool(t, nested.Has("a")).True()
}
