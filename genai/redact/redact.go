// Package redact masks credentials before they reach logs or API clients.
package redact

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Mask replaces redacted values.
const Mask = "***REDACTED***"

var defaultKeys = []string{
	"api_key", "apikey", "api-key", "authorization", "password", "secret", "token", "bearer", "client_secret",
}

// vendor key shapes: OpenAI (sk-...), Google (AIza...), bearer headers.
var keyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`sk-[A-Za-z0-9_\-*]{8,}`),
	regexp.MustCompile(`AIza[0-9A-Za-z_\-]{20,}`),
	regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._\-]{8,}`),
}

// Text masks API key shaped tokens and any of the literal secrets in text.
func Text(text string, secrets ...string) string {
	for _, secret := range secrets {
		if len(secret) >= 4 {
			text = strings.ReplaceAll(text, secret, Mask)
		}
	}
	for _, pattern := range keyPatterns {
		text = pattern.ReplaceAllString(text, Mask)
	}
	return text
}

// JSON replaces values of the given keys (case-insensitive, any depth) in a
// JSON document. Invalid documents are returned unchanged.
func JSON(data []byte, keys ...string) []byte {
	if len(data) == 0 {
		return data
	}
	if len(keys) == 0 {
		keys = defaultKeys
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[strings.ToLower(strings.TrimSpace(k))] = true
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return data
	}
	out, err := json.Marshal(scrub(v, set))
	if err != nil {
		return data
	}
	return out
}

func scrub(v interface{}, keys map[string]bool) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			if keys[strings.ToLower(k)] {
				t[k] = Mask
				continue
			}
			t[k] = scrub(val, keys)
		}
		return t
	case []interface{}:
		for i := range t {
			t[i] = scrub(t[i], keys)
		}
		return t
	case string:
		return Text(t)
	default:
		return v
	}
}
