package prompt

import (
	"encoding/json"
	"strings"
)

// ParseJSONField extracts a single string field from a completion that was
// asked for strict JSON. When the completion does not parse, or the field is
// missing, the raw text is returned as a best-effort answer and the second
// return value reports that the structured branch failed. Callers log the
// fallback rather than hiding it.
func ParseJSONField(raw, field string) (string, bool) {
	cleaned := stripCodeFence(raw)

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return strings.TrimSpace(raw), false
	}

	var value string
	if err := json.Unmarshal(payload[field], &value); err != nil || value == "" {
		return strings.TrimSpace(raw), false
	}
	return value, true
}

// stripCodeFence removes a surrounding markdown code fence. Models asked for
// strict JSON still wrap it in ```json fences often enough to handle here.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
