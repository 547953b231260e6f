// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package credential

import "encoding/json"

// keyFields lists the recognized credential field names in priority order.
var keyFields = []string{"GOOGLE_BOOKS_API_KEY", "apiKey", "API_KEY"}

// PayloadKind tags how a secret string was interpreted.
type PayloadKind int

const (
	// Structured means the secret was a JSON object.
	Structured PayloadKind = iota
	// Raw means the secret was anything else and is the key verbatim.
	Raw
)

// SecretPayload is the result of parsing a secret string.
type SecretPayload struct {
	Kind   PayloadKind
	Fields map[string]any
	Text   string
}

// ParseSecret interprets s as a JSON object when possible and as a plain-text
// key otherwise. A JSON null is an object with no fields.
func ParseSecret(s string) SecretPayload {
	var fields map[string]any
	if err := json.Unmarshal([]byte(s), &fields); err == nil {
		return SecretPayload{Kind: Structured, Fields: fields}
	}
	return SecretPayload{Kind: Raw, Text: s}
}

// APIKey extracts the credential. Raw payloads are stored under the first
// recognized field name; only non-empty string values match.
func (p SecretPayload) APIKey() string {
	fields := p.Fields
	if p.Kind == Raw {
		fields = map[string]any{keyFields[0]: p.Text}
	}
	for _, name := range keyFields {
		if v, ok := fields[name].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
