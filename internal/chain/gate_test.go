package chain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateAllowance(t *testing.T) {
	tests := []struct {
		name      string
		requested int64
		allowance *big.Int
		expected  Decision
	}{
		{
			name:      "Zero allowance needs approval",
			requested: 50_000_000,
			allowance: big.NewInt(0),
			expected:  NeedsApproval,
		},
		{
			name:      "Allowance below requested needs approval",
			requested: 50_000_000,
			allowance: big.NewInt(49_999_999),
			expected:  NeedsApproval,
		},
		{
			name:      "Allowance equal to requested is ready",
			requested: 50_000_000,
			allowance: big.NewInt(50_000_000),
			expected:  ReadyToContribute,
		},
		{
			name:      "Allowance above requested is ready",
			requested: 50_000_000,
			allowance: big.NewInt(100_000_000),
			expected:  ReadyToContribute,
		},
		{
			name:      "Failed allowance fetch fails closed",
			requested: 50_000_000,
			allowance: nil,
			expected:  NeedsApproval,
		},
		{
			name:      "Non-positive amount never proceeds",
			requested: 0,
			allowance: big.NewInt(100_000_000),
			expected:  NeedsApproval,
		},
		{
			name:      "Negative amount never proceeds",
			requested: -5,
			allowance: big.NewInt(100_000_000),
			expected:  NeedsApproval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EvaluateAllowance(tt.requested, tt.allowance))
		})
	}
}

// Re-evaluating after a successful approval flips the decision without any
// stored state.
func TestEvaluateAllowanceAfterApproval(t *testing.T) {
	requested := int64(50_000_000)

	assert.Equal(t, NeedsApproval, EvaluateAllowance(requested, big.NewInt(0)))
	assert.Equal(t, ReadyToContribute, EvaluateAllowance(requested, big.NewInt(50_000_000)))
}
