// Package optional models request fields that can be absent, explicitly
// null, or carry a value. Partial updates depend on telling these apart.
package optional

import (
	"bytes"
	"encoding/json"
)

type Value[T any] struct {
	Set  bool
	Null bool
	V    T
}

func Of[T any](v T) Value[T] {
	return Value[T]{Set: true, V: v}
}

func Null[T any]() Value[T] {
	return Value[T]{Set: true, Null: true}
}

// Present reports whether the field was sent with a non-null value.
func (o Value[T]) Present() bool {
	return o.Set && !o.Null
}

// Or returns o when it was sent, otherwise fallback.
func (o Value[T]) Or(fallback Value[T]) Value[T] {
	if o.Set {
		return o
	}
	return fallback
}

// Ptr returns a pointer to the value, or nil when absent or null.
func (o Value[T]) Ptr() *T {
	if !o.Present() {
		return nil
	}
	v := o.V
	return &v
}

func (o *Value[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		var zero T
		o.V = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.V)
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(o.V)
}
