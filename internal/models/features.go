package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Features is an ordered list of product feature tags.
type Features []string

// ParseFeatures splits comma or newline separated input into trimmed,
// non-empty feature tags.
func ParseFeatures(input string) Features {
	parts := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	out := make(Features, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String joins the tags with ", ". ParseFeatures(f.String()) yields f again.
func (f Features) String() string {
	return strings.Join(f, ", ")
}

// JSON returns the list encoded as a JSON array, the form the admin API
// expects in multipart bodies.
func (f Features) JSON() string {
	if len(f) == 0 {
		return "[]"
	}
	b, _ := json.Marshal([]string(f))
	return string(b)
}

// UnmarshalJSON accepts a JSON array, a JSON-encoded array inside a string,
// or a plain comma separated string.
func (f *Features) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = Features{}
		return nil
	}

	switch data[0] {
	case '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("features: %w", err)
		}
		*f = cleanFeatures(list)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("features: %w", err)
		}
		s = strings.TrimSpace(s)
		if strings.HasPrefix(s, "[") {
			var list []string
			if err := json.Unmarshal([]byte(s), &list); err == nil {
				*f = cleanFeatures(list)
				return nil
			}
		}
		*f = ParseFeatures(s)
		return nil
	}
	return fmt.Errorf("features: unexpected JSON %q", data)
}

func cleanFeatures(list []string) Features {
	out := make(Features, 0, len(list))
	for _, item := range list {
		out = append(out, ParseFeatures(item)...)
	}
	return out
}
