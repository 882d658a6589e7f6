package dto

import "encoding/json"

// OptionalString distinguishes a JSON field that was omitted from one that
// was explicitly set to null. The partial-update contract needs all three
// states for the damage description: absent (leave unchanged), null (clear),
// and a value (replace).
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
