package backend

import (
	"encoding/json"
	"testing"
)

// parse builds a Body from raw JSON the way safeJSON would for a parseable
// response.
func parse(t *testing.T, raw string) Body {
	t.Helper()

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		t.Fatalf("test body is not valid JSON: %v", err)
	}
	return Body{Status: 200, Raw: []byte(raw), Obj: obj}
}

func TestExtractWatermarked(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      string
		wantFound bool
	}{
		{
			name:      "Preferred key",
			raw:       `{"watermarked": "wm_cat.png"}`,
			want:      "wm_cat.png",
			wantFound: true,
		},
		{
			name:      "Fallback to filename",
			raw:       `{"filename": "cat.png"}`,
			want:      "cat.png",
			wantFound: true,
		},
		{
			name:      "Fallback to watermarked_filename",
			raw:       `{"watermarked_filename": "wm.png", "status": 1}`,
			want:      "wm.png",
			wantFound: true,
		},
		{
			name:      "Preferred key wins over fallback",
			raw:       `{"filename": "cat.png", "watermarked": "wm_cat.png"}`,
			want:      "wm_cat.png",
			wantFound: true,
		},
		{
			name:      "Sole string field under unrecognized key",
			raw:       `{"wm_path": "x.png"}`,
			want:      "x.png",
			wantFound: true,
		},
		{
			name:      "Sole string field among non-string siblings",
			raw:       `{"wm_path": "x.png", "code": 0}`,
			want:      "x.png",
			wantFound: true,
		},
		{
			name:      "Sole field not a string",
			raw:       `{"count": 3}`,
			wantFound: false,
		},
		{
			name:      "Two string fields is ambiguous",
			raw:       `{"wm_path": "x.png", "other": "y.png"}`,
			wantFound: false,
		},
		{
			name:      "Two string fields among others is still ambiguous",
			raw:       `{"wm_path": "x.png", "alt": "y.png", "code": 0}`,
			wantFound: false,
		},
		{
			name:      "Empty object",
			raw:       `{}`,
			wantFound: false,
		},
		{
			name:      "Empty string is not a filename",
			raw:       `{"watermarked": ""}`,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractWatermarked(parse(t, tt.raw))

			if found != tt.wantFound {
				t.Errorf("ExtractWatermarked() found = %v, want %v", found, tt.wantFound)
			}
			if got != tt.want {
				t.Errorf("ExtractWatermarked() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractEdited(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      string
		wantFound bool
	}{
		{
			name:      "Preferred key",
			raw:       `{"edited": "edit_cat.png"}`,
			want:      "edit_cat.png",
			wantFound: true,
		},
		{
			name:      "Fallback to filename",
			raw:       `{"filename": "cat.png"}`,
			want:      "cat.png",
			wantFound: true,
		},
		{
			name:      "First string field in document order",
			raw:       `{"status": 1, "path": "a.png", "alt": "b.png"}`,
			want:      "a.png",
			wantFound: true,
		},
		{
			name:      "Nested structures are skipped",
			raw:       `{"meta": {"inner": "nope"}, "out": "edit.png"}`,
			want:      "edit.png",
			wantFound: true,
		},
		{
			name:      "Empty object",
			raw:       `{}`,
			wantFound: false,
		},
		{
			name:      "No string fields",
			raw:       `{"w": 10, "h": 20}`,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractEdited(parse(t, tt.raw))

			if found != tt.wantFound {
				t.Errorf("ExtractEdited() found = %v, want %v", found, tt.wantFound)
			}
			if got != tt.want {
				t.Errorf("ExtractEdited() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorField(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      string
		wantFound bool
	}{
		{
			name:      "String error",
			raw:       `{"error": "Input file not found on server."}`,
			want:      "Input file not found on server.",
			wantFound: true,
		},
		{
			name:      "Error takes precedence even with a result",
			raw:       `{"watermarked": "wm.png", "error": "boom"}`,
			want:      "boom",
			wantFound: true,
		},
		{
			name:      "Non-string error is stringified",
			raw:       `{"error": 42}`,
			want:      "42",
			wantFound: true,
		},
		{
			name:      "Null error is absent",
			raw:       `{"error": null}`,
			wantFound: false,
		},
		{
			name:      "No error field",
			raw:       `{"filename": "cat.png"}`,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ErrorField(parse(t, tt.raw).Obj)

			if found != tt.wantFound {
				t.Errorf("ErrorField() found = %v, want %v", found, tt.wantFound)
			}
			if got != tt.want {
				t.Errorf("ErrorField() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    interface{}
		want bool
	}{
		{name: "Nil", v: nil, want: false},
		{name: "False", v: false, want: false},
		{name: "True", v: true, want: true},
		{name: "Zero", v: float64(0), want: false},
		{name: "Number", v: float64(1), want: true},
		{name: "Empty string", v: "", want: false},
		{name: "Any non-empty string", v: "false", want: true},
		{name: "String", v: "yes", want: true},
		{name: "Object", v: map[string]interface{}{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.v); got != tt.want {
				t.Errorf("Truthy(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		name string
		v    interface{}
		want string
	}{
		{name: "Absent", v: nil, want: "-"},
		{name: "Float", v: 0.842, want: "0.842"},
		{name: "Float rounds to three decimals", v: 0.12345, want: "0.123"},
		{name: "Integer-valued float", v: float64(1), want: "1.000"},
		{name: "String as-is", v: "inconclusive", want: "inconclusive"},
		{name: "Bool stringified", v: true, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatScore(tt.v); got != tt.want {
				t.Errorf("FormatScore(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}
