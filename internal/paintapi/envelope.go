package paintapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page is one decoded list response.
type Page[T any] struct {
	Items []T
	Next  string
	Total int
}

// DecodeList accepts a bare JSON array or an object wrapping the list in
// "items" or "results". Both shapes produce the same Page.
func DecodeList[T any](data []byte) (Page[T], error) {
	var page Page[T]
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return page, fmt.Errorf("%w: empty list body", ErrMalformed)
	}

	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &page.Items); err != nil {
			return page, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	case '{':
		var env struct {
			Items   json.RawMessage `json:"items"`
			Results json.RawMessage `json:"results"`
			Next    *string         `json:"next"`
			Total   int             `json:"total"`
		}
		if err := json.Unmarshal(data, &env); err != nil {
			return page, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		raw := env.Items
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			raw = env.Results
		}
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			return page, fmt.Errorf("%w: object has neither items nor results", ErrMalformed)
		}
		if err := json.Unmarshal(raw, &page.Items); err != nil {
			return page, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		if env.Next != nil {
			page.Next = *env.Next
		}
		page.Total = env.Total
	default:
		return page, fmt.Errorf("%w: expected a list, got %.20q", ErrMalformed, data)
	}

	if page.Items == nil {
		page.Items = []T{}
	}
	if page.Total == 0 {
		page.Total = len(page.Items)
	}
	return page, nil
}
