package gametypes

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StatValue is a raw JSON stat value: a number, a boolean or a string id.
type StatValue json.RawMessage

// NumberValue builds a numeric stat value.
func NumberValue(f float64) StatValue {
	b, _ := json.Marshal(f)
	return StatValue(b)
}

// BoolValue builds a boolean stat value.
func BoolValue(v bool) StatValue {
	b, _ := json.Marshal(v)
	return StatValue(b)
}

// StringValue builds a string stat value.
func StringValue(s string) StatValue {
	b, _ := json.Marshal(s)
	return StatValue(b)
}

// Number returns the value as float64. Booleans count as 1 or 0.
func (v StatValue) Number() (float64, bool) {
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return f, true
	}
	if b, ok := v.Bool(); ok {
		if b {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Bool returns the value as a boolean.
func (v StatValue) Bool() (bool, bool) {
	trimmed := bytes.TrimSpace(v)
	switch string(trimmed) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// Text returns the value as a string.
func (v StatValue) Text() (string, bool) {
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

func (v StatValue) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return v, nil
}

func (v *StatValue) UnmarshalJSON(data []byte) error {
	*v = append((*v)[0:0], data...)
	return nil
}

// Value stores the raw JSON in a jsonb column.
func (v StatValue) Value() (driver.Value, error) {
	if len(v) == 0 {
		return nil, nil
	}
	return string(v), nil
}

// Scan reads a jsonb column.
func (v *StatValue) Scan(src any) error {
	switch data := src.(type) {
	case nil:
		*v = nil
	case []byte:
		*v = append((*v)[0:0], data...)
	case string:
		*v = StatValue(data)
	default:
		return fmt.Errorf("cannot scan %T into StatValue", src)
	}
	return nil
}
