package u128

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUint128(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		wantLo uint64
		wantHi uint64
	}{
		{"zero", "0", 0, 0},
		{"small", "42", 42, 0},
		{"q64 one", "18446744073709551616", 0, 1},
		{"padded", "  7 ", 7, 0},
		{"max", "340282366920938463463374607431768211455", ^uint64(0), ^uint64(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUint128(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLo, got.Lo)
			assert.Equal(t, tt.wantHi, got.Hi)
		})
	}
}

func TestParseUint128Errors(t *testing.T) {
	_, err := ParseUint128("-1")
	assert.ErrorIs(t, err, ErrNegative)

	_, err = ParseUint128("340282366920938463463374607431768211456")
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = ParseUint128("")
	assert.Error(t, err)

	_, err = ParseUint128("abc")
	assert.Error(t, err)
}
