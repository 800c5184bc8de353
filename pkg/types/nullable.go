package types

import (
	"bytes"
	"encoding/json"
)

// Nullable tracks whether a JSON field was explicitly present, and whether it was null.
// Set is false when the key was omitted; Set with a nil Value means an explicit null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	if bytes.Equal(trimmed, []byte("null")) {
		n.Set = true
		n.Value = nil
		return nil
	}

	var parsed T
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return err
	}
	n.Set = true
	n.Value = &parsed
	return nil
}

// Present wraps v as an explicitly provided value.
func Present[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns an explicitly provided null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Clone returns a copy of the Nullable.
func (n Nullable[T]) Clone() Nullable[T] {
	if n.Value == nil {
		return Nullable[T]{Set: n.Set}
	}
	copy := *n.Value
	return Nullable[T]{Set: n.Set, Value: &copy}
}
