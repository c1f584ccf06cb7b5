package dto

import "time"

// Amounts in request bodies are decimal currency values; the server
// converts them to token minor units at the boundary and responses render
// them back as fixed-point strings.

type CreateChallengeRequestDTO struct {
	ChallengeID       int64  `json:"challengeId" example:"7"`
	Name              string `json:"name" example:"Trip to Lisbon"`
	Description       string `json:"description,omitempty" example:"Group savings for the spring trip"`
	GoalAmount        Amount `json:"goalAmount" example:"200"`
	TargetDate        string `json:"targetDate,omitempty" example:"2026-12-01T00:00:00Z"`
	Username          string `json:"username,omitempty" example:"alice"`
	DisplayName       string `json:"displayName,omitempty" example:"Alice"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty" example:"https://i.imgur.com/alice.png"`
	TransactionHash   string `json:"transactionHash,omitempty" example:"0x5e8d..."`
}

type ChallengeResponseDTO struct {
	ID               int64                    `json:"id" example:"7"`
	Name             string                   `json:"name" example:"Trip to Lisbon"`
	Description      *string                  `json:"description"`
	GoalAmount       string                   `json:"goalAmount" example:"200.000000"`
	CurrentAmount    string                   `json:"currentAmount" example:"125.000000"`
	TotalContributed string                   `json:"totalAmountContributed" example:"125.000000"`
	Progress         float64                  `json:"progress" example:"62.5"`
	TargetDate       *time.Time               `json:"targetDate"`
	TransactionHash  *string                  `json:"transactionHash"`
	CreatorID        int64                    `json:"creatorId" example:"8152"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
	Participants     []ParticipantResponseDTO `json:"participants,omitempty"`
}

type ProgressResponseDTO struct {
	Contribution string `json:"contribution" example:"25.000000"`
	Target       string `json:"target" example:"200.000000"`
}
