// Package coerce normalizes multipart form values into typed data.
//
// The admin front end submits page sections as JSON serialized into string
// form fields. Every helper here parses permissively: a malformed or absent
// value falls back to the supplied default instead of failing the request,
// so a bad field degrades to "no change" for that field.
package coerce

import "encoding/json"

// Object parses a JSON object out of a form value. Returns fallback when the
// value is empty, not valid JSON, or not an object.
func Object(val string, fallback map[string]any) map[string]any {
	if val == "" {
		return fallback
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(val), &m); err != nil || m == nil {
		return fallback
	}
	return m
}

// List parses a JSON array out of a form value. Returns fallback when the
// value is empty, not valid JSON, or not an array.
func List(val string, fallback []any) []any {
	if val == "" {
		return fallback
	}
	var l []any
	if err := json.Unmarshal([]byte(val), &l); err != nil || l == nil {
		return fallback
	}
	return l
}

// String parses a JSON-quoted string ("\"hi\"" -> "hi"). A bare unquoted
// value is returned as-is; an empty value yields fallback.
func String(val, fallback string) string {
	if val == "" {
		return fallback
	}
	var s string
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return val
	}
	return s
}

// Lang normalizes a value into an {en, vi} map. Missing keys default to "".
// Historical documents used "vn" for Vietnamese; that key is migrated to
// "vi" here so callers only ever see the canonical form.
func Lang(v any) map[string]any {
	out := map[string]any{"en": "", "vi": ""}
	m, ok := v.(map[string]any)
	if !ok {
		return out
	}
	if en, ok := m["en"].(string); ok {
		out["en"] = en
	}
	if vi, ok := m["vi"].(string); ok && vi != "" {
		out["vi"] = vi
	} else if vn, ok := m["vn"].(string); ok {
		out["vi"] = vn
	}
	return out
}
