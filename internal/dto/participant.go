package dto

type JoinRequestDTO struct {
	Username          string `json:"username" example:"alice"`
	DisplayName       string `json:"displayName" example:"Alice"`
	ProfilePictureURL string `json:"profilePictureUrl" example:"https://i.imgur.com/alice.png"`
}

type JoinResponseDTO struct {
	Message string `json:"message" example:"Successfully joined challenge"`
}

type ParticipantResponseDTO struct {
	FID               int64  `json:"fid" example:"8152"`
	Username          string `json:"username" example:"alice"`
	DisplayName       string `json:"displayName" example:"Alice"`
	ProfilePictureURL string `json:"profilePictureUrl" example:"https://i.imgur.com/alice.png"`
	AmountContributed string `json:"amountContributed" example:"25.000000"`
}
