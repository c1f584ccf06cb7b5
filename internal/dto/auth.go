package dto

import "time"

type VerifyRequestDTO struct {
	Message           string `json:"message" example:"save-up.app wants you to sign in..."`
	Signature         string `json:"signature" example:"0x9f2a..."`
	Nonce             string `json:"nonce" example:"Fa3k19"`
	Username          string `json:"username,omitempty" example:"alice"`
	DisplayName       string `json:"displayName,omitempty" example:"Alice"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty" example:"https://i.imgur.com/alice.png"`
}

type VerifyResponseDTO struct {
	Success bool   `json:"success" example:"true"`
	FID     int64  `json:"fid" example:"8152"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiJ9..."`
}

type UserResponseDTO struct {
	ID                int64     `json:"id" example:"8152"`
	Username          string    `json:"username" example:"alice"`
	DisplayName       string    `json:"displayName" example:"Alice"`
	ProfilePictureURL string    `json:"profilePictureUrl" example:"https://i.imgur.com/alice.png"`
	TotalChallenges   int       `json:"totalChallenges" example:"3"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
