// Package patch carries sparse update payloads. Each Field distinguishes a key
// that was absent from the request, a key that was sent as null, and a key
// that was sent with a value.
package patch

import (
	"bytes"
	"encoding/json"
)

type state uint8

const (
	unset state = iota
	null
	value
)

// Field is a tri-state JSON field. The zero value is Unset.
type Field[T any] struct {
	state state
	value T
}

// Value returns a Field holding v.
func Value[T any](v T) Field[T] {
	return Field[T]{state: value, value: v}
}

// Null returns a Field that was explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{state: null}
}

// IsSet reports whether the key was present, with a value or with null.
func (f Field[T]) IsSet() bool { return f.state != unset }

// IsNull reports whether the key was present with an explicit null.
func (f Field[T]) IsNull() bool { return f.state == null }

// HasValue reports whether the key was present with a non-null value.
func (f Field[T]) HasValue() bool { return f.state == value }

// Get returns the value and whether one was supplied.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == value
}

// UnmarshalJSON is only called by encoding/json when the key is present,
// which is what separates Unset from Null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.state = null
		f.value = zero
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.state = value
	f.value = v
	return nil
}

// MarshalJSON writes null for both Unset and Null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.state != value {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// Apply copies a supplied value into dst. Unset and Null leave dst untouched;
// callers decide what Null means for their field.
func Apply[T any](f Field[T], dst *T) {
	if v, ok := f.Get(); ok {
		*dst = v
	}
}
