package xnet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go4.org/netipx"
)

func TestWireRangeFrom(t *testing.T) {
	r, err := ParseRange("192.168.1.1-192.168.1.100")
	require.NoError(t, err)

	w, err := WireRangeFrom(r)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.1", w.Start)
	assert.Equal(t, "192.168.1.100", w.End)

	_, err = WireRangeFrom(netipx.IPRange{})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestWireRangeJSON(t *testing.T) {
	w := WireRange{Start: "10.0.0.0", End: "10.0.0.255"}
	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"10.0.0.0","end":"10.0.0.255"}`, string(data))

	var back WireRange
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, w, back)
	r, err := ParseRange(back.String())
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/24", r.Prefixes()[0].String())
}

func TestWireRangeString(t *testing.T) {
	tests := []struct {
		w    WireRange
		want string
	}{
		{WireRange{}, ""},
		{WireRange{Start: "10.0.0.1", End: "10.0.0.1"}, "10.0.0.1"},
		{WireRange{Start: "10.0.0.1", End: "10.0.0.9"}, "10.0.0.1-10.0.0.9"},
		{WireRange{Start: "10.0.0.1"}, "10.0.0.1"},
		{WireRange{End: "10.0.0.9"}, "10.0.0.9"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.w.String())
	}
	assert.True(t, WireRange{}.IsZero())
	assert.False(t, WireRange{Start: "10.0.0.1"}.IsZero())
}
