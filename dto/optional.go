package dto

import "encoding/json"

// Optional is a three-state field for partial-update payloads. It
// distinguishes a field that was omitted from the request (Set=false),
// explicitly sent as null (Set=true, Valid=false), and sent with a value
// (Set=true, Valid=true). Omitted means "leave unchanged"; null means
// "clear the value".
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// UnmarshalJSON is only invoked for present fields, so Set is always true
// here; absent fields keep the zero Optional.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Ptr returns the value as a pointer, nil when the field was null.
// Callers must check Set before using the result.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
