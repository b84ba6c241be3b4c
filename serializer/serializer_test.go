package serializer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_Nil(t *testing.T) {
	assert.Nil(t, Serialize(nil))

	var ptr *string
	assert.Nil(t, Serialize(ptr))
}

func TestSerialize_ScalarsAreIdempotent(t *testing.T) {
	for _, value := range []any{"hello", "", 42, int64(-7), 3.14, float64(1), true, false} {
		once := Serialize(value)
		assert.Equal(t, value, once)
		assert.Equal(t, once, Serialize(once))
	}
}

func TestSerialize_Time(t *testing.T) {
	date := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-15T10:30:00.000Z", Serialize(date))
	assert.Equal(t, "2024-01-15T10:30:00.000Z", Serialize(&date))

	paris := time.FixedZone("CET", 3600)
	assert.Equal(t, "2024-01-15T09:30:00.000Z", Serialize(time.Date(2024, 1, 15, 10, 30, 0, 0, paris)))
}

func TestSerialize_Sequences(t *testing.T) {
	testCases := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "numbers", input: []any{1, 2, 3}, expected: "1;2;3"},
		{name: "decoded json numbers", input: []any{float64(1), float64(2), float64(3)}, expected: "1;2;3"},
		{name: "empty", input: []any{}, expected: ""},
		{name: "typed strings", input: []string{"a", "b"}, expected: "a;b"},
		{name: "nested map", input: []any{map[string]any{"x": 1}, "y"}, expected: `{"x":1};y`},
		{name: "nested slice", input: []any{[]any{1, 2}, 3}, expected: "[1,2];3"},
		{name: "nil element", input: []any{nil, "a"}, expected: "null;a"},
		{name: "array", input: [2]int{4, 5}, expected: "4;5"},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Serialize(test.input))
		})
	}
}

func TestSerialize_MapIsJSON(t *testing.T) {
	result := Serialize(map[string]any{"x": 1})

	text, ok := result.(string)
	require.True(t, ok)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &decoded))
	assert.Equal(t, map[string]any{"x": float64(1)}, decoded)
}

func TestSerialize_Struct(t *testing.T) {
	type point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	assert.Equal(t, `{"x":1,"y":2}`, Serialize(point{X: 1, Y: 2}))
}

func TestSerialize_UnmarshalableMapFallsBack(t *testing.T) {
	result := Serialize(map[string]any{"fn": func() {}})
	_, ok := result.(string)
	assert.True(t, ok)
}
