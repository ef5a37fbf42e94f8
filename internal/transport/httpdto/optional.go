package httpdto

import (
	"bytes"
	"encoding/json"

	"huddle/internal/services"
)

// OptionalString tells an absent JSON field from an explicit null.
// encoding/json only calls UnmarshalJSON for keys present in the body.
type OptionalString struct {
	Present bool
	Null    bool
	Value   string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns nil unless a non-null value was sent.
func (o OptionalString) Ptr() *string {
	if !o.Present || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// collectNulls records which named fields arrived as null.
func collectNulls(fields map[string]OptionalString) services.Nulls {
	var nulls services.Nulls
	for name, f := range fields {
		if f.Null {
			if nulls == nil {
				nulls = services.Nulls{}
			}
			nulls[name] = true
		}
	}
	return nulls
}
