package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"
)

// EntityBag holds the structured data extracted from one email, keyed by
// entity name. It is built once per email per render pass and must not be
// mutated afterwards; every accessor is read-only.
type EntityBag struct {
	values map[string]any
}

// NewEntityBag creates an EntityBag from a key/value map. The map is
// shallow-copied so later mutation of the argument does not leak in.
func NewEntityBag(values map[string]any) *EntityBag {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &EntityBag{values: copied}
}

// EmptyEntityBag returns a bag with no entities
func EmptyEntityBag() *EntityBag {
	return &EntityBag{values: map[string]any{}}
}

// Has reports whether the key maps to a present, non-null value.
// Presence is the only check: type correctness is the producer's
// responsibility.
func (x *EntityBag) Has(key string) bool {
	if x == nil {
		return false
	}
	v, ok := x.values[key]
	return ok && v != nil
}

// Get returns the raw value for the key
func (x *EntityBag) Get(key string) (any, bool) {
	if x == nil {
		return nil, false
	}
	v, ok := x.values[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns the value for the key rendered as a string. Numeric and
// boolean values are converted; nested mappings are not.
func (x *EntityBag) String(key string) (string, bool) {
	v, ok := x.Get(key)
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

// Int returns the value for the key as an int64
func (x *EntityBag) Int(key string) (int64, bool) {
	v, ok := x.Get(key)
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int64:
		return val, true
	case float64:
		return int64(val), true
	case string:
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Float returns the value for the key as a float64
func (x *EntityBag) Float(key string) (float64, bool) {
	v, ok := x.Get(key)
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Bool returns the value for the key as a bool
func (x *EntityBag) Bool(key string) (bool, bool) {
	v, ok := x.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// dateFormats are the accepted date layouts, tried in order
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// Date returns the value for the key parsed as a date. String values are
// tried against each accepted layout in order; time.Time values pass
// through unchanged.
func (x *EntityBag) Date(key string) (time.Time, bool) {
	v, ok := x.Get(key)
	if !ok {
		return time.Time{}, false
	}
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		for _, layout := range dateFormats {
			if t, err := time.Parse(layout, val); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// Nested returns the value for the key as a nested EntityBag
func (x *EntityBag) Nested(key string) (*EntityBag, bool) {
	v, ok := x.Get(key)
	if !ok {
		return nil, false
	}
	switch val := v.(type) {
	case map[string]any:
		return NewEntityBag(val), true
	case *EntityBag:
		return val, true
	}
	return nil, false
}

// FirstString returns the first present, non-empty string among the given
// keys, tried in order. This is the alias fallback primitive used by the
// derived accessors and URL templating.
func (x *EntityBag) FirstString(keys ...string) (string, bool) {
	for _, key := range keys {
		if s, ok := x.String(key); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// FirstDate returns the first present, parseable date among the given keys
func (x *EntityBag) FirstDate(keys ...string) (time.Time, bool) {
	for _, key := range keys {
		if t, ok := x.Date(key); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// HasAny reports whether any of the given keys is present
func (x *EntityBag) HasAny(keys ...string) bool {
	for _, key := range keys {
		if x.Has(key) {
			return true
		}
	}
	return false
}

// Keys returns the entity keys in sorted order
func (x *EntityBag) Keys() []string {
	if x == nil {
		return nil
	}
	keys := make([]string, 0, len(x.values))
	for k := range x.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entities in the bag
func (x *EntityBag) Len() int {
	if x == nil {
		return 0
	}
	return len(x.values)
}

// Alias fallback key lists for the derived accessors. Lookups try the
// primary key first, then each alias in order.
var (
	trackingNumberKeys = []string{"trackingNumber", "tracking_number", "trackingId"}
	carrierKeys        = []string{"carrier", "shippingCarrier", "courier"}
	amountKeys         = []string{"amount", "totalAmount", "total", "price"}
	merchantKeys       = []string{"merchant", "vendor", "store", "seller"}
	dueDateKeys        = []string{"dueDate", "due_date", "paymentDue", "dueBy"}
	eventDateKeys      = []string{"eventDate", "event_date", "startDate", "startTime"}
	deliveryDateKeys   = []string{"deliveryDate", "estimatedDelivery", "delivery_date", "eta"}
	saleDateKeys       = []string{"saleDate", "sale_date", "saleEnds", "offerEnds"}
	flightNumberKeys   = []string{"flightNumber", "flight_number", "flight"}
	dateTimeKeys       = []string{"date", "dateTime", "time", "appointmentDate", "eventDate"}
)

// TrackingNumber returns the shipment tracking number, if present
func (x *EntityBag) TrackingNumber() (string, bool) {
	return x.FirstString(trackingNumberKeys...)
}

// Carrier returns the shipping carrier, if present
func (x *EntityBag) Carrier() (string, bool) {
	return x.FirstString(carrierKeys...)
}

// Amount returns the monetary amount entity, if present
func (x *EntityBag) Amount() (string, bool) {
	return x.FirstString(amountKeys...)
}

// Merchant returns the merchant entity, if present
func (x *EntityBag) Merchant() (string, bool) {
	return x.FirstString(merchantKeys...)
}

// DueDate returns the payment due date, if present
func (x *EntityBag) DueDate() (time.Time, bool) {
	return x.FirstDate(dueDateKeys...)
}

// EventDate returns the event date, if present
func (x *EntityBag) EventDate() (time.Time, bool) {
	return x.FirstDate(eventDateKeys...)
}

// DeliveryDate returns the estimated delivery date, if present
func (x *EntityBag) DeliveryDate() (time.Time, bool) {
	return x.FirstDate(deliveryDateKeys...)
}

// SaleDate returns the sale/offer date, if present
func (x *EntityBag) SaleDate() (time.Time, bool) {
	return x.FirstDate(saleDateKeys...)
}

// FlightNumber returns the flight number, if present
func (x *EntityBag) FlightNumber() (string, bool) {
	return x.FirstString(flightNumberKeys...)
}

// HasDateTime reports whether any generic date/time entity is present
func (x *EntityBag) HasDateTime() bool {
	_, ok := x.FirstDate(dateTimeKeys...)
	return ok
}

// ToMap returns a copy of the underlying key/value map
func (x *EntityBag) ToMap() map[string]any {
	if x == nil {
		return map[string]any{}
	}
	copied := make(map[string]any, len(x.values))
	for k, v := range x.values {
		copied[k] = v
	}
	return copied
}

// MarshalJSON renders the bag as a plain JSON object
func (x *EntityBag) MarshalJSON() ([]byte, error) {
	if x == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(x.values)
}

// UnmarshalJSON builds the bag from a plain JSON object
func (x *EntityBag) UnmarshalJSON(data []byte) error {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	if values == nil {
		values = map[string]any{}
	}
	x.values = values
	return nil
}
