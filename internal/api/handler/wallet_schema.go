package handler

import "github.com/vasaworks/vasa-api/internal/core/domain"

type walletResponse struct {
	Balance    int64  `json:"balance"`
	PinkTokens int64  `json:"pink_tokens"`
	PINSet     bool   `json:"pin_set"`
	Membership string `json:"membership"`
}

type setPINRequest struct {
	CurrentPIN string `json:"current_pin"`
	NewPIN     string `json:"new_pin" validate:"required"`
}

type payRequest struct {
	JobReference string `json:"job_reference" validate:"required"`
	PIN          string `json:"pin"           validate:"required"`
}

type payResponse struct {
	JobReference string `json:"job_reference"`
	AmountPaid   int64  `json:"amount_paid"`
	TokensEarned int64  `json:"tokens_earned"`
	Balance      int64  `json:"balance"`
	PinkTokens   int64  `json:"pink_tokens"`
	AlreadyPaid  bool   `json:"already_paid"`
}

type redeemRequest struct {
	RewardID string `json:"reward_id" validate:"required"`
	Location string `json:"location"  validate:"required"`
	Date     string `json:"date"      validate:"required"`
	Time     string `json:"time"      validate:"required"`
}

type redeemResponse struct {
	RewardName  string `json:"reward_name"`
	TokensSpent int64  `json:"tokens_spent"`
	PinkTokens  int64  `json:"pink_tokens"`
}

type rewardsResponse struct {
	Data []domain.Reward `json:"data"`
}

type transactionsResponse struct {
	Data []*domain.Transaction `json:"data"`
}
