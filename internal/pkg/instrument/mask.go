package instrument

import (
	"encoding/json"
	"strings"
)

const masked = "***"

// MaskKeys normalizes field names into a lookup set. Matching is case-insensitive.
type MaskKeys map[string]struct{}

// NewMaskKeys builds a MaskKeys set, ignoring blank names.
func NewMaskKeys(fields []string) MaskKeys {
	keys := make(MaskKeys, len(fields))
	for _, f := range fields {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			keys[f] = struct{}{}
		}
	}
	return keys
}

// Has reports whether key must be masked.
func (m MaskKeys) Has(key string) bool {
	_, ok := m[strings.ToLower(key)]
	return ok
}

// Value walks decoded JSON-like data and replaces masked keys.
func (m MaskKeys) Value(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, v2 := range val {
			if m.Has(k) {
				out[k] = masked
				continue
			}
			out[k] = m.Value(v2)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, v2 := range val {
			out[k] = v2
		}
		return m.Value(out)
	case map[string][]string:
		out := make(map[string]any, len(val))
		for k, v2 := range val {
			if m.Has(k) {
				out[k] = masked
				continue
			}
			if len(v2) == 1 {
				out[k] = v2[0]
			} else {
				out[k] = v2
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, v2 := range val {
			out[i] = m.Value(v2)
		}
		return out
	default:
		return v
	}
}

// JSON masks a JSON document. ok is false when payload is not JSON.
func (m MaskKeys) JSON(payload []byte) (string, bool) {
	if len(payload) == 0 || (payload[0] != '{' && payload[0] != '[') {
		return "", false
	}

	var body any
	if err := json.Unmarshal(payload, &body); err != nil {
		return "", false
	}

	out, err := json.Marshal(m.Value(body))
	if err != nil {
		return "", false
	}
	return string(out), true
}
