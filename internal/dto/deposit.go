package dto

type DepositRequestDTO struct {
	Amount          Amount `json:"amount" example:"25"`
	TransactionHash string `json:"transactionHash,omitempty" example:"0x7c41..."`
}
