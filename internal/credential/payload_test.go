// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSecret(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantKind PayloadKind
		wantKey  string
	}{
		{"preferred field", `{"GOOGLE_BOOKS_API_KEY":"AAA","apiKey":"BBB","API_KEY":"CCC"}`, Structured, "AAA"},
		{"secondary alias", `{"apiKey":"XYZ123","API_KEY":"CCC"}`, Structured, "XYZ123"},
		{"tertiary alias", `{"API_KEY":"CCC"}`, Structured, "CCC"},
		{"empty preferred falls through", `{"GOOGLE_BOOKS_API_KEY":"","apiKey":"BBB"}`, Structured, "BBB"},
		{"non-string value ignored", `{"GOOGLE_BOOKS_API_KEY":42,"API_KEY":"CCC"}`, Structured, "CCC"},
		{"no recognizable field", `{"other":"x"}`, Structured, ""},
		{"json null", `null`, Structured, ""},
		{"plain text", "AIzaPlainText", Raw, "AIzaPlainText"},
		{"numeric text", "1234567890", Raw, "1234567890"},
		{"malformed json", `{"apiKey":`, Raw, `{"apiKey":`},
		{"empty string", "", Raw, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseSecret(tt.in)
			assert.Equal(t, tt.wantKind, p.Kind)
			assert.Equal(t, tt.wantKey, p.APIKey())
		})
	}
}
