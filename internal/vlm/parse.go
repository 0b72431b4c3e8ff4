package vlm

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
)

// ParseResponse turns one raw model answer into a RawFields, tolerating the
// usual failure modes of VLM output:
//   - well-formed JSON with the expected keys: used directly
//   - JSON embedded inside extra prose: the first balanced object is used
//   - totally unparseable text: every field is absent
//
// A garbled response is routine, not exceptional; this never returns an
// error for content it cannot use, only for nothing-at-all situations the
// caller also treats as an empty answer.
func ParseResponse(raw []byte, logger *slog.Logger) RawFields {
	if logger == nil {
		logger = slog.Default()
	}

	m, ok := decodeObject(raw)
	if !ok {
		if obj := firstBalancedObject(string(raw)); obj != "" {
			m, ok = decodeObject([]byte(obj))
		}
	}
	if !ok {
		logger.Warn("vlm.parse.unparseable", "raw_bytes", len(raw))
		return RawFields{}
	}

	var out RawFields
	out.IDType = asString(m["ID_type"])
	out.DLNumber = asString(m["dl_number"])
	out.Expiry = asString(m["expiry"])
	out.Name = asString(m["name"])
	out.DOB = asString(m["dob"])
	out.Address = asString(m["address"])
	out.Sex = asString(m["sex"])
	out.Height = asString(m["height"])
	out.Weight = asString(m["weight"])
	out.Hair = asString(m["hair"])
	out.Eyes = asString(m["eyes"])
	out.Altered = asString(m["altered"])
	if bbox, ok := m["face_bbox"].([]any); ok {
		out.FaceBBox = bbox
	}
	return out
}

func decodeObject(raw []byte) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	return m, true
}

// firstBalancedObject extracts the first balanced {...} substring, skipping
// braces inside string literals. Returns "" when no balanced object exists.
func firstBalancedObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// asString coerces any scalar JSON value to a string pointer; nil and
// non-scalar values become absent. Models routinely hand back numbers or
// booleans where strings were asked for.
func asString(v any) *string {
	var s string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s = t
	case bool:
		s = strconv.FormatBool(t)
	case float64:
		if t == float64(int64(t)) {
			s = strconv.FormatInt(int64(t), 10)
		} else {
			s = strconv.FormatFloat(t, 'f', -1, 64)
		}
	default:
		// arrays/objects where a scalar belongs: drop rather than stringify
		return nil
	}
	return &s
}
