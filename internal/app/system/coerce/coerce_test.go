package coerce

import (
	"reflect"
	"testing"
)

func TestObject(t *testing.T) {
	fallback := map[string]any{"keep": true}

	tests := []struct {
		name string
		val  string
		want map[string]any
	}{
		{"valid object", `{"a":"b"}`, map[string]any{"a": "b"}},
		{"empty value", "", fallback},
		{"malformed JSON", `{"a":`, fallback},
		{"array not object", `[1,2]`, fallback},
		{"null", `null`, fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Object(tt.val, fallback)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Object(%q) = %v, want %v", tt.val, got, tt.want)
			}
		})
	}
}

func TestList(t *testing.T) {
	fallback := []any{"x"}

	tests := []struct {
		name string
		val  string
		want []any
	}{
		{"valid array", `["a","b"]`, []any{"a", "b"}},
		{"empty value", "", fallback},
		{"malformed", `[oops`, fallback},
		{"object not array", `{"a":1}`, fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := List(tt.val, fallback)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("List(%q) = %v, want %v", tt.val, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		val      string
		fallback string
		want     string
	}{
		{"json quoted", `"hello"`, "fb", "hello"},
		{"bare value passes through", "hello", "fb", "hello"},
		{"empty uses fallback", "", "fb", "fb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.val, tt.fallback); got != tt.want {
				t.Errorf("String(%q) = %q, want %q", tt.val, got, tt.want)
			}
		})
	}
}

func TestLang(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want map[string]any
	}{
		{"both keys", map[string]any{"en": "Hi", "vi": "Chao"}, map[string]any{"en": "Hi", "vi": "Chao"}},
		{"missing vi", map[string]any{"en": "Hi"}, map[string]any{"en": "Hi", "vi": ""}},
		{"legacy vn migrated", map[string]any{"en": "Hi", "vn": "Chao"}, map[string]any{"en": "Hi", "vi": "Chao"}},
		{"vi wins over vn", map[string]any{"vi": "A", "vn": "B"}, map[string]any{"en": "", "vi": "A"}},
		{"not a map", "nope", map[string]any{"en": "", "vi": ""}},
		{"nil", nil, map[string]any{"en": "", "vi": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lang(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lang(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
