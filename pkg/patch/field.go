// Package patch provides a tri-state field for sparse updates.
//
// A Field distinguishes three inputs that a plain pointer cannot:
// the key was absent (leave the column alone), the key was present with
// null (clear the column), and the key was present with a value.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is an optional, nullable value decoded from a PATCH body.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Value returns a Field supplied with v.
func Value[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a Field supplied as an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// Get returns the value and whether a non-null value was supplied.
func (f Field[T]) Get() (T, bool) {
	if !f.Set || f.Null {
		var zero T
		return zero, false
	}
	return f.Value, true
}

// Ptr returns nil for an absent or null field and a pointer to a copy of the value otherwise.
func (f Field[T]) Ptr() *T {
	v, ok := f.Get()
	if !ok {
		return nil
	}
	return &v
}

// UnmarshalJSON is only invoked by encoding/json when the key is present.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Null = true
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON writes null for absent and null fields.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
