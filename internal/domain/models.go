package domain

import "time"

// Monetary amounts are stored as integer minor units of the vault's
// stable token (6 decimals), never as floats.

type User struct {
	ID                int64     `db:"id"`
	Username          string    `db:"username"`
	DisplayName       string    `db:"display_name"`
	ProfilePictureURL string    `db:"profile_picture_url"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// Challenge.ID is minted on-chain and supplied by the caller;
// the database never generates it.
type Challenge struct {
	ID               int64      `db:"id"`
	Name             string     `db:"name"`
	Description      *string    `db:"description"`
	GoalAmount       int64      `db:"goal_amount"`
	CurrentAmount    int64      `db:"current_amount"`
	TotalContributed int64      `db:"total_amount_contributed"`
	TargetDate       *time.Time `db:"target_date"`
	TransactionHash  *string    `db:"transaction_hash"`
	CreatorID        int64      `db:"creator_id"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

type Participant struct {
	UserID            int64     `db:"user_id"`
	ChallengeID       int64     `db:"challenge_id"`
	AmountContributed int64     `db:"amount_contributed"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// ParticipantInfo is a participant row joined with its user profile.
type ParticipantInfo struct {
	UserID            int64  `db:"user_id"`
	Username          string `db:"username"`
	DisplayName       string `db:"display_name"`
	ProfilePictureURL string `db:"profile_picture_url"`
	AmountContributed int64  `db:"amount_contributed"`
}

// Contribution is the durable dedup record for ledger credits, keyed by
// the on-chain transaction hash.
type Contribution struct {
	ID          int64     `db:"id"`
	ChallengeID int64     `db:"challenge_id"`
	UserID      int64     `db:"user_id"`
	Amount      int64     `db:"amount"`
	TxHash      string    `db:"tx_hash"`
	Status      string    `db:"status"`
	Attempts    int       `db:"attempts"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
