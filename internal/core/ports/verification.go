package ports

import "context"

// VerificationStatus is the document gate view: the user is verified when
// both flags are true.
type VerificationStatus struct {
	PANVerified     bool
	AadhaarVerified bool
	Verified        bool
}

// VerificationService records PAN/Aadhaar attestations and answers the gate.
type VerificationService interface {
	SubmitPAN(ctx context.Context, userID, panNumber string) (*VerificationStatus, error)
	SubmitAadhaar(ctx context.Context, userID, aadhaarNumber string) (*VerificationStatus, error)
	Status(ctx context.Context, userID string) (*VerificationStatus, error)
}
