package domain

import (
	"bytes"
	"encoding/json"
)

// Optional wraps a JSON field that must distinguish three states: absent
// from the payload, present as null, and present with a value. Absent
// fields keep Set false; an explicit null sets Set but not Valid.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// NewOptional returns a present Optional carrying v.
func NewOptional[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// NullOptional returns an explicit-null Optional.
func NullOptional[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// Ptr returns the value as a pointer, nil when absent or null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
