package money

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr error
		expected  int64
	}{
		{
			name:     "Whole amount",
			input:    "50",
			expected: 50_000_000,
		},
		{
			name:     "Fractional amount",
			input:    "25.5",
			expected: 25_500_000,
		},
		{
			name:     "Full precision",
			input:    "0.000001",
			expected: 1,
		},
		{
			name:      "Non-numeric amount",
			input:     "abc",
			expectErr: ErrInvalidAmount,
		},
		{
			name:      "Zero amount",
			input:     "0",
			expectErr: ErrInvalidAmount,
		},
		{
			name:      "Negative amount",
			input:     "-10",
			expectErr: ErrInvalidAmount,
		},
		{
			name:      "Too many fractional digits",
			input:     "0.0000001",
			expectErr: ErrTooManyDigits,
		},
		{
			name:      "Empty string",
			input:     "",
			expectErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input, TokenDecimals)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "25.500000", Format(25_500_000, TokenDecimals))
	assert.Equal(t, "0.000001", Format(1, TokenDecimals))
	assert.Equal(t, "0.000000", Format(0, TokenDecimals))
}

func TestWeiConversion(t *testing.T) {
	wei := ToWei(125_000_000)
	assert.Equal(t, big.NewInt(125_000_000), wei)

	minor, err := FromWei(wei)
	assert.NoError(t, err)
	assert.Equal(t, int64(125_000_000), minor)

	_, err = FromWei(nil)
	assert.Error(t, err)

	huge := new(big.Int).Lsh(big.NewInt(1), 80)
	_, err = FromWei(huge)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}
