package domain

import (
	"errors"
	"regexp"
	"time"
)

var ErrPINNotSet = errors.New("wallet pin not set")
var ErrInvalidPIN = errors.New("invalid wallet pin")
var ErrPINFormat = errors.New("pin must be exactly 4 digits")
var ErrTooManyPINAttempts = errors.New("too many pin attempts")
var ErrInsufficientBalance = errors.New("insufficient wallet balance")
var ErrInsufficientTokens = errors.New("insufficient pink tokens")
var ErrMissingTripDetails = errors.New("booking location, date and time are required")
var ErrRewardNotFound = errors.New("reward not found")
var ErrJobNotPayable = errors.New("job is not in a payable state")

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// ValidPINFormat reports whether pin is exactly four digits.
func ValidPINFormat(pin string) bool {
	return pinPattern.MatchString(pin)
}

// TokenBonus returns the pink tokens earned for paying amount rupees:
// 10 tokens per full ₹100. ₹99 earns nothing, ₹250 earns 20.
func TokenBonus(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	return amount / 100 * 10
}

// TransactionKind classifies a ledger entry.
type TransactionKind string

const (
	TxnPayment    TransactionKind = "payment"
	TxnTokenBonus TransactionKind = "token_bonus"
	TxnRedemption TransactionKind = "redemption"
)

// Transaction is one entry in the wallet ledger. Every pay and redeem writes
// here; the balance on the user document is the running aggregate.
type Transaction struct {
	ID           string          `json:"id" bson:"_id,omitempty"`
	UserID       string          `json:"user_id" bson:"user_id"`
	Kind         TransactionKind `json:"kind" bson:"kind"`
	Amount       int64           `json:"amount" bson:"amount"`
	Tokens       int64           `json:"tokens" bson:"tokens"`
	JobReference string          `json:"job_reference,omitempty" bson:"job_reference,omitempty"`
	RewardName   string          `json:"reward_name,omitempty" bson:"reward_name,omitempty"`
	// IdempotencyKey makes a payment replay-safe: a repeated key returns the
	// original entry instead of charging again.
	IdempotencyKey string    `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// Reward is a service booking redeemable with pink tokens.
type Reward struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TokenCost   int64  `json:"token_cost"`
}

// Rewards is the redemption catalog.
var Rewards = []Reward{
	{ID: "local-service", Name: "Free Local Service", Description: "Redeem for one free local service booking.", TokenCost: 50},
	{ID: "workshop", Name: "Skill-Building Workshop", Description: "Access to an exclusive online workshop.", TokenCost: 100},
	{ID: "mentorship", Name: "Mentorship Session", Description: "A one-on-one session with an industry expert.", TokenCost: 200},
}

// RewardByID looks a reward up in the catalog.
func RewardByID(id string) (Reward, error) {
	for _, r := range Rewards {
		if r.ID == id {
			return r, nil
		}
	}
	return Reward{}, ErrRewardNotFound
}
