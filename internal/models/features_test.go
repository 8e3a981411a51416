package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeatures(t *testing.T) {
	cases := map[string]Features{
		"":                               {},
		"Durable":                        {"Durable"},
		"Durable, Washable":              {"Durable", "Washable"},
		" Durable ,\n\nLow VOC,, ,Matte": {"Durable", "Low VOC", "Matte"},
		"Anti-fungal\r\nQuick dry":       {"Anti-fungal", "Quick dry"},
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseFeatures(in), "input %q", in)
	}
}

func TestFeaturesRoundTrip(t *testing.T) {
	inputs := []string{
		"a,b,c",
		"  Weather Resistance ,\nDurability\n,Low VOC  ",
		"one\n\n\ntwo",
		",,,",
		"single",
	}
	for _, in := range inputs {
		parsed := ParseFeatures(in)
		assert.Equal(t, parsed, ParseFeatures(parsed.String()), "input %q", in)
	}
}

func TestFeaturesUnmarshal(t *testing.T) {
	var p struct {
		Features Features `json:"features"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"features":["Durable"," Washable ",""]}`), &p))
	assert.Equal(t, Features{"Durable", "Washable"}, p.Features)

	require.NoError(t, json.Unmarshal([]byte(`{"features":"[\"Durable\"]"}`), &p))
	assert.Equal(t, Features{"Durable"}, p.Features)

	require.NoError(t, json.Unmarshal([]byte(`{"features":"Durable, Low VOC"}`), &p))
	assert.Equal(t, Features{"Durable", "Low VOC"}, p.Features)

	require.NoError(t, json.Unmarshal([]byte(`{"features":null}`), &p))
	assert.Empty(t, p.Features)

	assert.Error(t, json.Unmarshal([]byte(`{"features":12}`), &p))
}

func TestFeaturesJSON(t *testing.T) {
	assert.Equal(t, "[]", Features(nil).JSON())
	assert.Equal(t, `["Durable","Low VOC"]`, Features{"Durable", "Low VOC"}.JSON())
}
