package ports

import (
	"context"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

// PayInput carries a job payment request.
type PayInput struct {
	UserID       string
	JobReference string
	PIN          string
	// IdempotencyKey, when non-empty, makes the payment replay-safe: a
	// repeated key returns the original outcome without a second charge.
	IdempotencyKey string
}

// PayResult is returned after a successful (or replayed) payment.
type PayResult struct {
	JobReference string
	AmountPaid   int64
	TokensEarned int64
	Balance      int64
	PinkTokens   int64
	// AlreadyPaid is true when the Idempotency-Key matched a previous payment.
	AlreadyPaid bool
}

// RedeemInput carries a reward redemption with its trip booking details.
type RedeemInput struct {
	UserID   string
	RewardID string
	Location string
	Date     string
	Time     string
}

// RedeemResult is returned after a successful redemption.
type RedeemResult struct {
	RewardName  string
	TokensSpent int64
	PinkTokens  int64
}

// WalletSummary is the balances view returned by Get.
type WalletSummary struct {
	Balance    int64
	PinkTokens int64
	PINSet     bool
	Membership string
}

// TransactionRepository persists the wallet ledger.
type TransactionRepository interface {
	Insert(ctx context.Context, t *domain.Transaction) error
	// FindByIdempotencyKey looks a payment up by its replay key. Keys are
	// scoped per user: one user can never replay another user's payment.
	FindByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Transaction, error)
	// Delete removes an entry. Only the payment path uses it, to undo a
	// ledger write whose payment could not finish.
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error)
}

// WalletService defines the points/wallet use cases.
type WalletService interface {
	Get(ctx context.Context, userID string) (*WalletSummary, error)
	// SetPIN stores the first PIN; changing an existing PIN requires currentPIN.
	SetPIN(ctx context.Context, userID, currentPIN, newPIN string) error
	Pay(ctx context.Context, input PayInput) (*PayResult, error)
	Redeem(ctx context.Context, input RedeemInput) (*RedeemResult, error)
	Transactions(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error)
}
