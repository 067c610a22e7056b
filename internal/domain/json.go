package domain

import (
	"bytes"
	"encoding/json"
	"math"
)

// decodeObject decodes data as a JSON object. It reports false for any other
// JSON value, including null.
func decodeObject(data []byte) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// decodeArray decodes data as a JSON array of raw elements.
func decodeArray(data []byte) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, false
	}
	return items, true
}

func arrayField(obj map[string]json.RawMessage, key string) ([]json.RawMessage, bool) {
	raw, ok := obj[key]
	if !ok {
		return nil, false
	}
	return decodeArray(raw)
}

// strictStringField reports false unless the field is present and is a JSON string.
func strictStringField(obj map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := obj[key]
	if !ok {
		return "", false
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

func stringField(obj map[string]json.RawMessage, key string) string {
	s, _ := strictStringField(obj, key)
	return s
}

// intField returns the field as an int when it is an integral JSON number,
// otherwise def.
func intField(obj map[string]json.RawMessage, key string, def int) int {
	raw, ok := obj[key]
	if !ok {
		return def
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || (trimmed[0] != '-' && (trimmed[0] < '0' || trimmed[0] > '9')) {
		return def
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return def
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return def
	}
	return int(f)
}
