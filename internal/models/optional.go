package models

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// OptionalID is a nullable reference in a partial update. Set records that
// the field appeared in the payload, so an explicit null clears the
// reference while an absent field leaves it alone.
type OptionalID struct {
	Set   bool
	Value *int64
}

// SetID returns an OptionalID carrying id.
func SetID(id int64) OptionalID {
	return OptionalID{Set: true, Value: &id}
}

// ClearID returns an OptionalID that removes the reference.
func ClearID() OptionalID {
	return OptionalID{Set: true}
}

// UnmarshalJSON accepts an integer or null.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("id must be an integer or null: %w", err)
	}
	o.Value = &id
	return nil
}

// applyTo overwrites *dst when the field was supplied.
func (o OptionalID) applyTo(dst **int64) {
	if !o.Set {
		return
	}
	if o.Value == nil {
		*dst = nil
		return
	}
	id := *o.Value
	*dst = &id
}

// optionalIDValue exposes the id to validator tags; a missing or null id
// is skipped by omitempty.
func optionalIDValue(field reflect.Value) any {
	o, ok := field.Interface().(OptionalID)
	if !ok || o.Value == nil {
		return nil
	}
	return *o.Value
}
