package oracle

import (
	"encoding/json"
	"strings"
)

// StripCodeFences removes the ``` wrappers models like to put around JSON,
// with or without a language tag.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Decode strips fences and unmarshals the reply into v.
func Decode(raw string, v any) error {
	return json.Unmarshal([]byte(StripCodeFences(raw)), v)
}

// DecodeOr decodes the reply, returning fallback untouched when the model
// sent something that is not our JSON. The model is the single largest
// source of malformed output; a degraded answer beats a crashed request.
func DecodeOr[T any](raw string, fallback T) T {
	var out T
	if err := Decode(raw, &out); err != nil {
		return fallback
	}
	return out
}
