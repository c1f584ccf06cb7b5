package chain

import "math/big"

// Decision is the Allowance Gate outcome for a requested contribution.
type Decision string

const (
	// NeedsApproval means the vault is not yet authorized to pull the
	// requested amount and an approve transaction must run first.
	NeedsApproval Decision = "needs_approval"
	// ReadyToContribute means the live allowance already covers the
	// requested amount.
	ReadyToContribute Decision = "ready_to_contribute"
)

// EvaluateAllowance is a pure function of the requested minor-unit amount
// and the freshly fetched allowance. A nil allowance (failed fetch) fails
// closed into NeedsApproval so an under-funded transfer is never attempted.
func EvaluateAllowance(requested int64, allowance *big.Int) Decision {
	if requested <= 0 {
		return NeedsApproval
	}
	if allowance == nil || allowance.Cmp(big.NewInt(requested)) < 0 {
		return NeedsApproval
	}
	return ReadyToContribute
}
