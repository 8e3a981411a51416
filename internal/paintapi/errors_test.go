package paintapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusErrorMatchesUnauthorized(t *testing.T) {
	err := fmt.Errorf("load: %w", newStatusError(http.StatusUnauthorized, []byte(`{"detail":"Not authenticated"}`)))
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, newStatusError(http.StatusForbidden, nil), ErrUnauthorized)
}

func TestMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{newStatusError(422, []byte(`{"detail":[{"loc":["body","name"],"msg":"field required"},{"loc":["body","price",0],"msg":"bad"}]}`)),
			"body.name: field required; body.price.0: bad"},
		{newStatusError(422, []byte(`{"detail":"Category is invalid"}`)), "Category is invalid"},
		{newStatusError(422, []byte(`oops`)), "Invalid input data. Check all fields."},
		{newStatusError(413, nil), "Image size too large. Please use a smaller image."},
		{newStatusError(500, []byte(`{"detail":"db down"}`)), "db down"},
		{newStatusError(500, nil), "Server error. Please try again."},
		{newStatusError(404, nil), "API endpoint not found. Please check server configuration."},
		{newStatusError(405, nil), "Method not allowed. Please check API configuration."},
		{newStatusError(400, []byte(`{"detail":"Duplicate name"}`)), "Duplicate name"},
		{newStatusError(409, nil), "Failed to add product. Please try again."},
		{newStatusError(401, nil), "Session expired. Please log in again."},
		{fmt.Errorf("%w: deadline", ErrTimeout), "Request timed out. Your image may be too large."},
		{fmt.Errorf("%w: refused", ErrNoResponse), "Cannot connect to server. Check your connection or server status."},
		{errors.New("boom"), "Failed to add product. Please try again."},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Message(tc.err, "add product"), tc.err.Error())
	}
	assert.Empty(t, Message(nil, "x"))
}
