package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt_UnmarshalJSON(t *testing.T) {
	for _, in := range []string{`7`, `"7"`, `" 7 "`, `7.0`, `7e0`} {
		var n Int
		require.NoError(t, json.Unmarshal([]byte(in), &n), in)
		assert.Equal(t, Int(7), n, in)
	}

	for _, in := range []string{`"abc"`, `""`, `1.5`, `"1.5"`, `true`, `[1]`, `"NaN"`, `1e30`} {
		var n Int
		assert.Error(t, json.Unmarshal([]byte(in), &n), in)
	}
}

func TestFloat_UnmarshalJSON(t *testing.T) {
	cases := map[string]Float{
		`1.5`:   1.5,
		`"1.5"`: 1.5,
		`-70`:   -70,
		`"-70"`: -70,
	}
	for in, want := range cases {
		var f Float
		require.NoError(t, json.Unmarshal([]byte(in), &f), in)
		assert.Equal(t, want, f, in)
	}

	for _, in := range []string{`"NaN"`, `"Inf"`, `"x"`, `false`, `{}`} {
		var f Float
		assert.Error(t, json.Unmarshal([]byte(in), &f), in)
	}
}

func TestNumericFields_NullStaysNil(t *testing.T) {
	var req CreateReservationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"userID": null, "eventID": "3"}`), &req))
	assert.Nil(t, req.UserID)
	require.NotNil(t, req.EventID)
	assert.Equal(t, Int(3), *req.EventID)
}

func TestIntPtr(t *testing.T) {
	assert.Nil(t, IntPtr(nil))

	n := Int(42)
	got := IntPtr(&n)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), *got)
}
