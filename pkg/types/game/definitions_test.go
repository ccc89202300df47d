package gametypes

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTitleDefinitions(t *testing.T) {
	raw := json.RawMessage(`[
		{"name":"Sharpshooter","description":"Most points","condition":{"type":"highest","stat":"points"}},
		{"name":"Butterfingers","description":"Fewest points","is_funny":true,"condition":{"type":"lowest","stat":"points"}},
		{"name":"Perfect Ten","description":"Exactly ten","condition":{"type":"exact","stat":"points","value":10}},
		{"name":"Daredevil","description":"Took the dare","condition":{"type":"flag","stat":"dared"}},
		{"name":"Centurion","description":"100 or more","condition":{"type":"threshold","stat":"points","value":100}}
	]`)

	defs, err := ParseTitleDefinitions(raw)
	require.NoError(t, err)

	want := []Condition{
		Highest{StatKey: "points"},
		Lowest{StatKey: "points"},
		Exact{StatKey: "points", Value: 10},
		Flag{StatKey: "dared"},
		Threshold{StatKey: "points", Min: 100},
	}
	got := make([]Condition, len(defs))
	for i, d := range defs {
		got[i] = d.Condition
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("conditions mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, defs[1].IsFunny)

	encoded, err := json.Marshal(defs)
	require.NoError(t, err)
	again, err := ParseTitleDefinitions(encoded)
	require.NoError(t, err)
	assert.Equal(t, defs, again)
}

func TestParseTitleDefinitions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "unknown condition", raw: `[{"name":"x","condition":{"type":"median","stat":"points"}}]`},
		{name: "missing value", raw: `[{"name":"x","condition":{"type":"threshold","stat":"points"}}]`},
		{name: "missing stat", raw: `[{"name":"x","condition":{"type":"highest"}}]`},
		{name: "missing name", raw: `[{"condition":{"type":"highest","stat":"points"}}]`},
		{name: "not an array", raw: `{"name":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTitleDefinitions(json.RawMessage(tt.raw))
			assert.ErrorIs(t, err, ErrInvalidTitleDefinition)
		})
	}
}

func TestParseInputs(t *testing.T) {
	raw := json.RawMessage(`[
		{"type":"number","key":"points","label":"Points","min":0,"max":100},
		{"type":"boolean","key":"dared","label":"Took the dare"},
		{"type":"team_select","key":"winner","label":"Winner"},
		{"type":"player_select","key":"mvp","label":"MVP"},
		{"type":"choice","key":"mood","label":"Mood","options":["happy","sad"]}
	]`)

	inputs, err := ParseInputs(raw)
	require.NoError(t, err)
	require.Len(t, inputs, 5)

	assert.Equal(t, InputNumber, inputs[0].Kind())
	assert.True(t, inputs[0].Accepts(NumberValue(50)))
	assert.False(t, inputs[0].Accepts(NumberValue(150)))
	assert.True(t, inputs[1].Accepts(BoolValue(true)))
	assert.False(t, inputs[1].Accepts(StringValue("yes")))
	assert.True(t, inputs[4].Accepts(StringValue("sad")))
	assert.False(t, inputs[4].Accepts(StringValue("meh")))
	assert.Equal(t, "mvp", inputs[3].StatKey())

	_, err = ParseInputs(json.RawMessage(`[{"type":"slider","key":"x"}]`))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ParseInputs(json.RawMessage(`[{"type":"number","key":"x"},{"type":"boolean","key":"x"}]`))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStatValue(t *testing.T) {
	n, ok := NumberValue(3.5).Number()
	assert.True(t, ok)
	assert.Equal(t, 3.5, n)

	n, ok = BoolValue(true).Number()
	assert.True(t, ok)
	assert.Equal(t, 1.0, n)

	_, ok = StringValue("abc").Number()
	assert.False(t, ok)

	var v StatValue
	require.NoError(t, v.Scan([]byte(`true`)))
	b, ok := v.Bool()
	assert.True(t, ok)
	assert.True(t, b)
}
