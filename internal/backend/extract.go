package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/wmlab/robustwm/internal/constants"
)

// Field extraction rules for backend responses. Each endpoint has an ordered
// list of rules tried in sequence; the first hit wins. The rules are pure
// functions over a parsed body so they can be tested without a network.

// ErrorField returns the top-level error field of a parsed response. When
// present it takes precedence over any successful-result parsing.
func ErrorField(obj map[string]interface{}) (string, bool) {
	v, exists := obj[constants.KeyError]
	if !exists || v == nil {
		return "", false
	}
	if s, isString := v.(string); isString {
		return s, true
	}
	return fmt.Sprintf("%v", v), true
}

// ExtractWatermarked resolves the result filename of the watermark stage:
// `watermarked`, else `filename`, else `watermarked_filename`, else — when
// the object has exactly one string-valued field regardless of its key —
// that sole value. Reports false when every rule misses, in which case the
// stage falls back to the input filename.
func ExtractWatermarked(b Body) (string, bool) {
	for _, key := range []string{
		constants.KeyWatermarked,
		constants.KeyFilename,
		constants.KeyWatermarkedFilename,
	} {
		if s, found := stringField(b.Obj, key); found {
			return s, true
		}
	}
	return soleStringField(b.Obj)
}

// ExtractEdited resolves the result filename of the edit stage: `edited`,
// else `filename`, else the first string-valued field in document order.
func ExtractEdited(b Body) (string, bool) {
	for _, key := range []string{constants.KeyEdited, constants.KeyFilename} {
		if s, found := stringField(b.Obj, key); found {
			return s, true
		}
	}
	return firstStringField(b.Raw)
}

// stringField returns a named field when it holds a non-empty string.
func stringField(obj map[string]interface{}, key string) (string, bool) {
	if s, isString := obj[key].(string); isString && s != "" {
		return s, true
	}
	return "", false
}

// soleStringField accepts the value of an object's only string-valued field,
// whatever its key and regardless of any non-string siblings. Two or more
// string fields make the choice ambiguous.
func soleStringField(obj map[string]interface{}) (string, bool) {
	var result string
	count := 0
	for _, v := range obj {
		if s, isString := v.(string); isString {
			result = s
			count++
		}
	}
	if count == 1 && result != "" {
		return result, true
	}
	return "", false
}

// firstStringField scans the raw response for the first string-valued
// top-level field in document order. Go maps do not preserve key order, so
// this walks the original bytes.
func firstStringField(raw []byte) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return "", false
	}
	if delim, isDelim := tok.(json.Delim); !isDelim || delim != '{' {
		return "", false
	}

	for dec.More() {
		// Key token
		if _, err := dec.Token(); err != nil {
			return "", false
		}

		// Value, consumed whole so nested structures are skipped
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return "", false
		}

		var s string
		if json.Unmarshal(val, &s) == nil && s != "" {
			return s, true
		}
	}

	return "", false
}

// Truthy reports whether a decoded JSON value counts as a positive detection
// flag. The detection report's schema is opaque, so the check is loose:
// false, zero, empty string, and absent/null are falsy, everything else is
// truthy.
func Truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

// FormatScore renders a detection score for display: three decimal places
// when numeric, the value as-is when present but non-numeric, and "-" when
// absent.
func FormatScore(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case float64:
		return strconv.FormatFloat(t, 'f', 3, 64)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', 3, 64)
		}
		return t.String()
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
