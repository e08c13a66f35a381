// Package jsonutil decodes model output that may arrive double-escaped
// or wrapped in a quoted JSON string.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// UnmarshalFlex unmarshals raw into v, falling back to a normalization
// pass when the payload carries double-escaped unicode sequences or is a
// JSON document wrapped in a JSON string.
func UnmarshalFlex(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err == nil {
		return nil
	}
	norm, err := Normalize(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(norm, v)
}

// Normalize parses raw, unwrapping one level of string quoting if needed,
// and unescapes remaining "\\uXXXX" sequences inside string values.
func Normalize(raw []byte) ([]byte, error) {
	var val any
	if err := json.Unmarshal(raw, &val); err != nil {
		var s string
		if err2 := json.Unmarshal(raw, &s); err2 != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(s), &val); err != nil {
			return nil, errors.New("jsonutil: cannot parse payload")
		}
	} else if s, ok := val.(string); ok {
		// The whole document was a quoted string holding JSON.
		if err := json.Unmarshal([]byte(s), &val); err != nil {
			return nil, errors.New("jsonutil: cannot parse payload")
		}
	}
	return marshalNoEscape(unescapeDeep(val))
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func unescapeDeep(v any) any {
	switch x := v.(type) {
	case string:
		if s, err := unescapeUnicode(x); err == nil {
			return s
		}
		return x
	case []any:
		for i := range x {
			x[i] = unescapeDeep(x[i])
		}
		return x
	case map[string]any:
		for k, vv := range x {
			x[k] = unescapeDeep(vv)
		}
		return x
	default:
		return v
	}
}

// unescapeUnicode turns sequences like "\u003e" (possibly double-escaped)
// back into their characters by round-tripping through a quoted JSON string.
func unescapeUnicode(s string) (string, error) {
	esc := strings.ReplaceAll(s, `\`, `\\`)
	esc = strings.ReplaceAll(esc, `"`, `\"`)
	var out string
	if err := json.Unmarshal([]byte(`"`+esc+`"`), &out); err != nil {
		return "", err
	}
	return out, nil
}
