package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vasaworks/vasa-api/internal/core/domain"
	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// VerificationService records PAN/Aadhaar attestations. The gate is the
// boolean AND of the two flags. Document numbers are format-validated but
// never stored: this is attestation, not KYC.
type VerificationService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewVerificationService(users ports.UserRepository, logger zerolog.Logger) *VerificationService {
	return &VerificationService{users: users, logger: logger}
}

func (s *VerificationService) SubmitPAN(ctx context.Context, userID, panNumber string) (*ports.VerificationStatus, error) {
	if !domain.ValidPAN(panNumber) {
		return nil, domain.ErrInvalidPAN
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.PANVerified = true
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Msg("pan attested")
	return statusOf(user), nil
}

func (s *VerificationService) SubmitAadhaar(ctx context.Context, userID, aadhaarNumber string) (*ports.VerificationStatus, error) {
	if !domain.ValidAadhaar(aadhaarNumber) {
		return nil, domain.ErrInvalidAadhaar
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.AadhaarVerified = true
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Msg("aadhaar attested")
	return statusOf(user), nil
}

func (s *VerificationService) Status(ctx context.Context, userID string) (*ports.VerificationStatus, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return statusOf(user), nil
}

func statusOf(u *domain.User) *ports.VerificationStatus {
	return &ports.VerificationStatus{
		PANVerified:     u.PANVerified,
		AadhaarVerified: u.AadhaarVerified,
		Verified:        u.Verified(),
	}
}
