package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vasaworks/vasa-api/internal/api/metrics"
	"github.com/vasaworks/vasa-api/internal/core/domain"
	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// PINLimiter abstracts the PIN attempt rate limiter (Redis).
type PINLimiter interface {
	TooManyAttempts(ctx context.Context, userID string) (bool, error)
	RecordFailure(ctx context.Context, userID string) error
	Reset(ctx context.Context, userID string) error
}

// WalletService implements PIN management, job payment and reward redemption.
// Balances never go negative, a wrong PIN never moves money, and every
// successful operation writes a ledger entry.
type WalletService struct {
	users   ports.UserRepository
	txns    ports.TransactionRepository
	jobs    ports.JobService
	limiter PINLimiter
	logger  zerolog.Logger
}

func NewWalletService(
	users ports.UserRepository,
	txns ports.TransactionRepository,
	jobs ports.JobService,
	limiter PINLimiter,
	logger zerolog.Logger,
) *WalletService {
	return &WalletService{users: users, txns: txns, jobs: jobs, limiter: limiter, logger: logger}
}

func (s *WalletService) Get(ctx context.Context, userID string) (*ports.WalletSummary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ports.WalletSummary{
		Balance:    user.WalletBalance,
		PinkTokens: user.PinkTokens,
		PINSet:     user.HasPIN(),
		Membership: string(user.Membership),
	}, nil
}

// SetPIN stores a bcrypt-hashed 4-digit PIN. The first PIN can be set
// freely; replacing one requires the current PIN.
func (s *WalletService) SetPIN(ctx context.Context, userID, currentPIN, newPIN string) error {
	if !domain.ValidPINFormat(newPIN) {
		return domain.ErrPINFormat
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.HasPIN() {
		if err := s.checkPIN(ctx, user, currentPIN); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPIN), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("set pin: %w", err)
	}

	user.PINHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("set pin: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("wallet pin set")
	return nil
}

// Pay charges the caller's wallet for a job and transitions it to paid.
//
// Order of checks matters: idempotent replay first (no PIN needed to return
// a previous outcome), then PIN, then job state, then balance. A ledger
// entry exists under the caller's idempotency key only once the payment has
// fully settled; a write that fails partway is compensated so a retry starts
// fresh instead of replaying a payment that never happened.
func (s *WalletService) Pay(ctx context.Context, input ports.PayInput) (*ports.PayResult, error) {
	// 1. Idempotent replay. Keys are scoped to the caller.
	if input.IdempotencyKey != "" {
		prev, err := s.txns.FindByIdempotencyKey(ctx, input.UserID, input.IdempotencyKey)
		if err == nil && prev != nil {
			user, uerr := s.users.FindByID(ctx, input.UserID)
			if uerr != nil {
				return nil, uerr
			}
			s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("job", prev.JobReference).Msg("idempotent payment replay")
			return &ports.PayResult{
				JobReference: prev.JobReference,
				AmountPaid:   prev.Amount,
				TokensEarned: prev.Tokens,
				Balance:      user.WalletBalance,
				PinkTokens:   user.PinkTokens,
				AlreadyPaid:  true,
			}, nil
		}
	}

	// 2. PIN gate.
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !user.HasPIN() {
		return nil, domain.ErrPINNotSet
	}
	if err := s.checkPIN(ctx, user, input.PIN); err != nil {
		metrics.PaymentFailuresTotal.WithLabelValues("pin").Inc()
		return nil, err
	}

	// 3. Job must be payable.
	job, err := s.jobs.Get(ctx, input.JobReference)
	if err != nil {
		metrics.PaymentFailuresTotal.WithLabelValues("job_not_found").Inc()
		return nil, err
	}
	if job.Status != domain.StatusWorkerAssigned || job.Pay <= 0 {
		metrics.PaymentFailuresTotal.WithLabelValues("not_payable").Inc()
		return nil, fmt.Errorf("pay job %s: %w", input.JobReference, domain.ErrJobNotPayable)
	}

	// 4. Balance check. The balance never goes below zero.
	if user.WalletBalance < job.Pay {
		metrics.PaymentFailuresTotal.WithLabelValues("balance").Inc()
		return nil, domain.ErrInsufficientBalance
	}

	// 5. Ledger entry. The unique (user_id, idempotency_key) index makes it
	// the claim on the key: a concurrent duplicate request fails here.
	tokens := domain.TokenBonus(job.Pay)
	txn := &domain.Transaction{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		Kind:           domain.TxnPayment,
		Amount:         job.Pay,
		Tokens:         tokens,
		JobReference:   job.Reference,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.txns.Insert(ctx, txn); err != nil {
		return nil, fmt.Errorf("pay job %s: ledger: %w", input.JobReference, err)
	}

	// 6. Move the money and credit the token bonus. If this fails the ledger
	// entry is removed so a retry charges rather than replays.
	user.WalletBalance -= job.Pay
	user.PinkTokens += tokens
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		s.compensateLedger(ctx, txn)
		return nil, fmt.Errorf("pay job %s: %w", input.JobReference, err)
	}

	// 7. Transition the job. On failure the debit and the ledger entry are
	// both rolled back; the job is still payable and the retry starts fresh.
	if err := s.jobs.MarkPaid(ctx, job.Reference, user.ID); err != nil {
		user.WalletBalance += job.Pay
		user.PinkTokens -= tokens
		user.UpdatedAt = time.Now().UTC()
		if uerr := s.users.Update(ctx, user); uerr != nil {
			s.logger.Error().Err(uerr).Str("user_id", user.ID).Str("job", job.Reference).
				Msg("failed to refund after job transition failure")
		}
		s.compensateLedger(ctx, txn)
		return nil, err
	}

	metrics.PaymentsTotal.Inc()
	metrics.PaymentAmount.Observe(float64(job.Pay))
	s.logger.Info().
		Str("user_id", user.ID).
		Str("job", job.Reference).
		Int64("amount", job.Pay).
		Int64("tokens", tokens).
		Msg("job paid")

	return &ports.PayResult{
		JobReference: job.Reference,
		AmountPaid:   job.Pay,
		TokensEarned: tokens,
		Balance:      user.WalletBalance,
		PinkTokens:   user.PinkTokens,
	}, nil
}

// Redeem spends pink tokens on a reward booking. A failed redemption never
// mutates the stored balance.
func (s *WalletService) Redeem(ctx context.Context, input ports.RedeemInput) (*ports.RedeemResult, error) {
	reward, err := domain.RewardByID(input.RewardID)
	if err != nil {
		return nil, err
	}

	if input.Location == "" || input.Date == "" || input.Time == "" {
		return nil, domain.ErrMissingTripDetails
	}

	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user.PinkTokens < reward.TokenCost {
		metrics.RedemptionFailuresTotal.Inc()
		return nil, domain.ErrInsufficientTokens
	}

	user.PinkTokens -= reward.TokenCost
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("redeem %s: %w", input.RewardID, err)
	}

	txn := &domain.Transaction{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Kind:       domain.TxnRedemption,
		Tokens:     reward.TokenCost,
		RewardName: reward.Name,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.txns.Insert(ctx, txn); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to write redemption ledger entry")
	}

	metrics.RedemptionsTotal.WithLabelValues(reward.ID).Inc()
	s.logger.Info().
		Str("user_id", user.ID).
		Str("reward", reward.ID).
		Int64("tokens", reward.TokenCost).
		Msg("reward redeemed")

	return &ports.RedeemResult{
		RewardName:  reward.Name,
		TokensSpent: reward.TokenCost,
		PinkTokens:  user.PinkTokens,
	}, nil
}

// compensateLedger removes a ledger entry whose payment did not settle. A
// failed removal is logged: the entry would make retries replay a payment
// that never moved money, which an operator must resolve by hand.
func (s *WalletService) compensateLedger(ctx context.Context, txn *domain.Transaction) {
	if err := s.txns.Delete(ctx, txn.ID); err != nil {
		s.logger.Error().Err(err).
			Str("transaction_id", txn.ID).
			Str("user_id", txn.UserID).
			Str("idempotency_key", txn.IdempotencyKey).
			Msg("failed to remove ledger entry for unsettled payment")
	}
}

func (s *WalletService) Transactions(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 || limit > maxPageLimit {
		limit = 50
	}
	return s.txns.ListByUser(ctx, userID, limit)
}

// checkPIN verifies the PIN against the stored hash, enforcing the Redis
// attempt limiter. Limiter errors are logged and ignored so wallet operation
// survives a Redis outage.
func (s *WalletService) checkPIN(ctx context.Context, user *domain.User, pin string) error {
	if s.limiter != nil {
		blocked, err := s.limiter.TooManyAttempts(ctx, user.ID)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("pin limiter check failed, proceeding")
		} else if blocked {
			return domain.ErrTooManyPINAttempts
		}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(pin)) != nil {
		if s.limiter != nil {
			if err := s.limiter.RecordFailure(ctx, user.ID); err != nil {
				s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record pin failure")
			}
		}
		return domain.ErrInvalidPIN
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, user.ID); err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to reset pin limiter")
		}
	}
	return nil
}
