package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  float64
	}{
		{0, 0},
		{100, 1},
		{999, 9.99},
		{100000, 1000},
		{1, 0.01},
		{2550, 25.50},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, DisplayAmount(tt.cents), 1e-9)
	}
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount("2500")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), got)

	got, err = ParseAmount(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)

	for _, raw := range []string{"", "abc", "12.50", "10 dollars"} {
		_, err := ParseAmount(raw)
		assert.Error(t, err, raw)
	}
}
