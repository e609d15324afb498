package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vasaworks/vasa-api/internal/core/domain"
	"github.com/vasaworks/vasa-api/internal/core/ports"
)

func seedWalletUser(t *testing.T, users *stubUserRepo, balance, tokens int64, pin string) *domain.User {
	t.Helper()
	u := &domain.User{
		Name:          "Asha",
		Email:         "asha@example.com",
		Role:          domain.RoleSeeker,
		Membership:    domain.MembershipRise,
		WalletBalance: balance,
		PinkTokens:    tokens,
	}
	if pin != "" {
		u.PINHash = hashPIN(t, pin)
	}
	return users.add(u)
}

func seedPayableJob(t *testing.T, jobs *stubJobRepo, reference string, pay int64) {
	t.Helper()
	now := time.Now().UTC()
	err := jobs.Create(context.Background(), &domain.Job{
		Reference: reference,
		Title:     "Stitch uniforms",
		Location:  "Madurai",
		JobType:   domain.JobTypeContract,
		Pay:       pay,
		Status:    domain.StatusWorkerAssigned,
		PostedBy:  "recruiter-1",
		Source:    domain.SourcePanchayat,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
}

func newWalletFixture(t *testing.T) (*WalletService, *stubUserRepo, *stubJobRepo, *stubTxnRepo, *stubLimiter) {
	t.Helper()
	users := newStubUserRepo()
	jobs := newStubJobRepo()
	txns := newStubTxnRepo()
	limiter := &stubLimiter{}
	jobSvc := NewJobService(jobs, newStubWorkerRepo(), discardLogger)
	svc := NewWalletService(users, txns, jobSvc, limiter, discardLogger)
	return svc, users, jobs, txns, limiter
}

func TestWalletService_Get(t *testing.T) {
	svc, users, _, _, _ := newWalletFixture(t)
	u := seedWalletUser(t, users, 500, 30, "1234")

	summary, err := svc.Get(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Balance != 500 || summary.PinkTokens != 30 {
		t.Errorf("summary = %+v, want balance 500 tokens 30", summary)
	}
	if !summary.PINSet {
		t.Error("expected PINSet true")
	}
}

func TestWalletService_SetPIN_FirstTime(t *testing.T) {
	svc, users, _, _, _ := newWalletFixture(t)
	u := seedWalletUser(t, users, 0, 0, "")

	if err := svc.SetPIN(context.Background(), u.ID, "", "4321"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := users.FindByID(context.Background(), u.ID)
	if !stored.HasPIN() {
		t.Error("pin hash not stored")
	}
}

func TestWalletService_SetPIN_BadFormat(t *testing.T) {
	svc, users, _, _, _ := newWalletFixture(t)
	u := seedWalletUser(t, users, 0, 0, "")

	for _, pin := range []string{"123", "12345", "abcd", ""} {
		if err := svc.SetPIN(context.Background(), u.ID, "", pin); !errors.Is(err, domain.ErrPINFormat) {
			t.Errorf("SetPIN(%q) = %v, want ErrPINFormat", pin, err)
		}
	}
}

func TestWalletService_SetPIN_ChangeRequiresCurrent(t *testing.T) {
	svc, users, _, _, limiter := newWalletFixture(t)
	u := seedWalletUser(t, users, 0, 0, "1234")

	if err := svc.SetPIN(context.Background(), u.ID, "0000", "5678"); !errors.Is(err, domain.ErrInvalidPIN) {
		t.Fatalf("got %v, want ErrInvalidPIN", err)
	}
	if limiter.failures != 1 {
		t.Errorf("failures recorded = %d, want 1", limiter.failures)
	}

	if err := svc.SetPIN(context.Background(), u.ID, "1234", "5678"); err != nil {
		t.Fatalf("change with correct pin: %v", err)
	}
}

func TestWalletService_Pay_Success(t *testing.T) {
	svc, users, jobs, txns, limiter := newWalletFixture(t)
	u := seedWalletUser(t, users, 1000, 5, "1234")
	seedPayableJob(t, jobs, "VSA-PAY00001", 250)

	result, err := svc.Pay(context.Background(), ports.PayInput{
		UserID:         u.ID,
		JobReference:   "VSA-PAY00001",
		PIN:            "1234",
		IdempotencyKey: "pay-key-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.AmountPaid != 250 {
		t.Errorf("AmountPaid = %d, want 250", result.AmountPaid)
	}
	if result.TokensEarned != 20 {
		t.Errorf("TokensEarned = %d, want 20", result.TokensEarned)
	}
	if result.Balance != 750 {
		t.Errorf("Balance = %d, want 750", result.Balance)
	}
	if result.PinkTokens != 25 {
		t.Errorf("PinkTokens = %d, want 25", result.PinkTokens)
	}
	if result.AlreadyPaid {
		t.Error("AlreadyPaid should be false on first payment")
	}

	stored, _ := users.FindByID(context.Background(), u.ID)
	if stored.WalletBalance != 750 || stored.PinkTokens != 25 {
		t.Errorf("stored balances = %d/%d, want 750/25", stored.WalletBalance, stored.PinkTokens)
	}

	job, _ := jobs.FindByReference(context.Background(), "VSA-PAY00001")
	if job.Status != domain.StatusPaid {
		t.Errorf("job status = %s, want paid", job.Status)
	}

	if len(txns.entries) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(txns.entries))
	}
	entry := txns.entries[0]
	if entry.Kind != domain.TxnPayment || entry.Amount != 250 || entry.Tokens != 20 {
		t.Errorf("ledger entry = %+v", entry)
	}
	if entry.IdempotencyKey != "pay-key-1" {
		t.Errorf("ledger idempotency key = %q", entry.IdempotencyKey)
	}
	if limiter.resets != 1 {
		t.Errorf("limiter resets = %d, want 1", limiter.resets)
	}
}

func TestWalletService_Pay_IdempotentReplay(t *testing.T) {
	svc, users, jobs, txns, _ := newWalletFixture(t)
	u := seedWalletUser(t, users, 1000, 0, "1234")
	seedPayableJob(t, jobs, "VSA-PAY00002", 300)

	input := ports.PayInput{UserID: u.ID, JobReference: "VSA-PAY00002", PIN: "1234", IdempotencyKey: "pay-key-2"}
	if _, err := svc.Pay(context.Background(), input); err != nil {
		t.Fatalf("first payment: %v", err)
	}

	// Replay with a wrong PIN: the stored outcome is returned without a
	// second charge; the PIN gate is never consulted.
	input.PIN = "0000"
	replay, err := svc.Pay(context.Background(), input)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !replay.AlreadyPaid {
		t.Error("AlreadyPaid should be true on replay")
	}
	if replay.AmountPaid != 300 {
		t.Errorf("replay AmountPaid = %d, want 300", replay.AmountPaid)
	}

	stored, _ := users.FindByID(context.Background(), u.ID)
	if stored.WalletBalance != 700 {
		t.Errorf("balance after replay = %d, want 700 (single charge)", stored.WalletBalance)
	}
	if len(txns.entries) != 1 {
		t.Errorf("ledger entries = %d, want 1", len(txns.entries))
	}
}

func TestWalletService_Pay_IdempotencyKeyScopedPerUser(t *testing.T) {
	svc, users, jobs, txns, _ := newWalletFixture(t)
	alice := seedWalletUser(t, users, 1000, 0, "1234")
	bob := users.add(&domain.User{
		Name:          "Bala",
		Email:         "bala@example.com",
		Role:          domain.RoleSeeker,
		Membership:    domain.MembershipRise,
		WalletBalance: 1000,
		PINHash:       hashPIN(t, "5678"),
	})
	seedPayableJob(t, jobs, "VSA-JOB-A", 100)
	seedPayableJob(t, jobs, "VSA-JOB-B", 100)

	if _, err := svc.Pay(context.Background(), ports.PayInput{
		UserID: alice.ID, JobReference: "VSA-JOB-A", PIN: "1234", IdempotencyKey: "shared-key",
	}); err != nil {
		t.Fatalf("first user's payment: %v", err)
	}

	// A second user reusing the same key must be charged for their own job,
	// never handed the first user's outcome.
	result, err := svc.Pay(context.Background(), ports.PayInput{
		UserID: bob.ID, JobReference: "VSA-JOB-B", PIN: "5678", IdempotencyKey: "shared-key",
	})
	if err != nil {
		t.Fatalf("second user's payment: %v", err)
	}
	if result.AlreadyPaid {
		t.Error("another user's key replayed as this user's payment")
	}
	if result.JobReference != "VSA-JOB-B" {
		t.Errorf("job reference = %s, want VSA-JOB-B", result.JobReference)
	}

	storedBob, _ := users.FindByID(context.Background(), bob.ID)
	if storedBob.WalletBalance != 900 {
		t.Errorf("second user's balance = %d, want 900", storedBob.WalletBalance)
	}
	jobB, _ := jobs.FindByReference(context.Background(), "VSA-JOB-B")
	if jobB.Status != domain.StatusPaid {
		t.Errorf("second user's job status = %s, want paid", jobB.Status)
	}
	if len(txns.entries) != 2 {
		t.Errorf("ledger entries = %d, want 2", len(txns.entries))
	}
}

func TestWalletService_Pay_FailedDebitDoesNotPoisonRetry(t *testing.T) {
	svc, users, jobs, txns, _ := newWalletFixture(t)
	u := seedWalletUser(t, users, 1000, 0, "1234")
	seedPayableJob(t, jobs, "VSA-RETRY", 250)

	input := ports.PayInput{UserID: u.ID, JobReference: "VSA-RETRY", PIN: "1234", IdempotencyKey: "retry-key"}

	users.updateErr = errStub
	if _, err := svc.Pay(context.Background(), input); err == nil {
		t.Fatal("expected error when the debit fails")
	}
	// The ledger entry is rolled back, so the key is not burned.
	if len(txns.entries) != 0 {
		t.Fatalf("ledger entries after failed debit = %d, want 0", len(txns.entries))
	}

	users.updateErr = nil
	result, err := svc.Pay(context.Background(), input)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if result.AlreadyPaid {
		t.Error("retry replayed a payment that never settled")
	}

	stored, _ := users.FindByID(context.Background(), u.ID)
	if stored.WalletBalance != 750 {
		t.Errorf("balance after retry = %d, want 750 (charged exactly once)", stored.WalletBalance)
	}
	job, _ := jobs.FindByReference(context.Background(), "VSA-RETRY")
	if job.Status != domain.StatusPaid {
		t.Errorf("job status = %s, want paid", job.Status)
	}
	if len(txns.entries) != 1 {
		t.Errorf("ledger entries = %d, want 1", len(txns.entries))
	}
}

func TestWalletService_Pay_PINNotSet(t *testing.T) {
	svc, users, jobs, _, _ := newWalletFixture(t)
	u := seedWalletUser(t, users, 1000, 0, "")
	seedPayableJob(t, jobs, "VSA-PAY00003", 100)

	_, err := svc.Pay(context.Background(), ports.PayInput{UserID: u.ID, JobReference: "VSA-PAY00003", PIN: "1234"})
	if !errors.Is(err, domain.ErrPINNotSet) {
		t.Fatalf("got %v, want ErrPINNotSet", err)
	}
}

func TestWalletService_Pay_WrongPIN(t *testing.T) {
	svc, users, jobs, txns, limiter := newWalletFixture(t)
	u := seedWalletUser(t, users, 1000, 0, "1234")
	seedPayableJob(t, jobs, "VSA-PAY00004", 100)

	_, err := svc.Pay(context.Background(), ports.PayInput{UserID: u.ID, JobReference: "VSA-PAY00004", PIN: "9999"})
	if !errors.Is(err, domain.ErrInvalidPIN) {
		t.Fatalf("got %v, want ErrInvalidPIN", err)
	}
	if limiter.failures != 1 {
		t.Errorf("failures recorded = %d, want 1", limiter.failures)
	}

	stored, _ := users.FindByID(context.Background(), u.ID)
	if stored.WalletBalance != 1000 {
		t.Errorf("wrong pin moved money: balance = %d", stored.WalletBalance)
	}
	if len(txns.entries) != 0 {
		t.Errorf("ledger entries = %d, want 0", len(txns.entries))
	}
}

func TestWalletService_Pay_TooManyAttempts(t *testing.T) {
	svc, users, jobs, _, limiter := newWalletFixture(t)
	limiter.blocked = true
	u := seedWalletUser(t, users, 1000, 0, "1234")
	seedPayableJob(t, jobs, "VSA-PAY00005", 100)

	_, err := svc.Pay(context.Background(), ports.PayInput{UserID: u.ID, JobReference: "VSA-PAY00005", PIN: "1234"})
	if !errors.Is(err, domain.ErrTooManyPINAttempts) {
		t.Fatalf("got %v, want ErrTooManyPINAttempts", err)
	}
}

func TestWalletService_Pay_LimiterOutageDoesNotBlock(t *testing.T) {
	svc, users, jobs, _, limiter := newWalletFixture(t)
	limiter.checkErr = errStub
	u := seedWalletUser(t, users, 1000, 0, "1234")
	seedPayableJob(t, jobs, "VSA-PAY00006", 100)

	if _, err := svc.Pay(context.Background(), ports.PayInput{UserID: u.ID, JobReference: "VSA-PAY00006", PIN: "1234"}); err != nil {
		t.Fatalf("payment should survive a limiter outage, got %v", err)
	}
}

func TestWalletService_Pay_JobNotPayable(t *testing.T) {
	svc, users, jobs, _, _ := newWalletFixture(t)
	u := seedWalletUser(t, users, 1000, 0, "1234")

	now := time.Now().UTC()
	_ = jobs.Create(context.Background(), &domain.Job{
		Reference: "VSA-UNASSIGNED",
		Title:     "Paint fence",
		JobType:   domain.JobTypeContract,
		Pay:       100,
		Status:    domain.StatusYetToAssign,
		CreatedAt: now,
		UpdatedAt: now,
	})
	_ = jobs.Create(context.Background(), &domain.Job{
		Reference: "VSA-NOPAY",
		Title:     "Volunteer drive",
		JobType:   domain.JobTypeContract,
		Pay:       0,
		Status:    domain.StatusWorkerAssigned,
		CreatedAt: now,
		UpdatedAt: now,
	})

	for _, ref := range []string{"VSA-UNASSIGNED", "VSA-NOPAY"} {
		_, err := svc.Pay(context.Background(), ports.PayInput{UserID: u.ID, JobReference: ref, PIN: "1234"})
		if !errors.Is(err, domain.ErrJobNotPayable) {
			t.Errorf("Pay(%s) = %v, want ErrJobNotPayable", ref, err)
		}
	}
}

func TestWalletService_Pay_InsufficientBalance(t *testing.T) {
	svc, users, jobs, txns, _ := newWalletFixture(t)
	u := seedWalletUser(t, users, 200, 0, "1234")
	seedPayableJob(t, jobs, "VSA-PAY00007", 250)

	_, err := svc.Pay(context.Background(), ports.PayInput{UserID: u.ID, JobReference: "VSA-PAY00007", PIN: "1234"})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("got %v, want ErrInsufficientBalance", err)
	}

	stored, _ := users.FindByID(context.Background(), u.ID)
	if stored.WalletBalance != 200 {
		t.Errorf("failed payment moved money: balance = %d", stored.WalletBalance)
	}
	if len(txns.entries) != 0 {
		t.Errorf("ledger entries = %d, want 0", len(txns.entries))
	}

	job, _ := jobs.FindByReference(context.Background(), "VSA-PAY00007")
	if job.Status != domain.StatusWorkerAssigned {
		t.Errorf("job status = %s, want worker_assigned", job.Status)
	}
}

func TestWalletService_Pay_TokenBoundaries(t *testing.T) {
	cases := []struct {
		pay    int64
		tokens int64
	}{
		{99, 0},
		{100, 10},
		{199, 10},
		{250, 20},
	}

	for _, tc := range cases {
		svc, users, jobs, _, _ := newWalletFixture(t)
		u := seedWalletUser(t, users, 10000, 0, "1234")
		seedPayableJob(t, jobs, "VSA-BONUS", tc.pay)

		result, err := svc.Pay(context.Background(), ports.PayInput{UserID: u.ID, JobReference: "VSA-BONUS", PIN: "1234"})
		if err != nil {
			t.Fatalf("Pay(%d): %v", tc.pay, err)
		}
		if result.TokensEarned != tc.tokens {
			t.Errorf("Pay(%d) tokens = %d, want %d", tc.pay, result.TokensEarned, tc.tokens)
		}
	}
}

func TestWalletService_Redeem_Success(t *testing.T) {
	svc, users, _, txns, _ := newWalletFixture(t)
	u := seedWalletUser(t, users, 0, 120, "")

	result, err := svc.Redeem(context.Background(), ports.RedeemInput{
		UserID:   u.ID,
		RewardID: "workshop",
		Location: "Chennai",
		Date:     "2026-09-15",
		Time:     "10:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TokensSpent != 100 {
		t.Errorf("TokensSpent = %d, want 100", result.TokensSpent)
	}
	if result.PinkTokens != 20 {
		t.Errorf("PinkTokens = %d, want 20", result.PinkTokens)
	}

	stored, _ := users.FindByID(context.Background(), u.ID)
	if stored.PinkTokens != 20 {
		t.Errorf("stored tokens = %d, want 20", stored.PinkTokens)
	}
	if len(txns.entries) != 1 || txns.entries[0].Kind != domain.TxnRedemption {
		t.Errorf("ledger entries = %+v, want one redemption", txns.entries)
	}
}

func TestWalletService_Redeem_MissingTripDetails(t *testing.T) {
	svc, users, _, _, _ := newWalletFixture(t)
	u := seedWalletUser(t, users, 0, 500, "")

	inputs := []ports.RedeemInput{
		{UserID: u.ID, RewardID: "workshop", Date: "2026-09-15", Time: "10:00"},
		{UserID: u.ID, RewardID: "workshop", Location: "Chennai", Time: "10:00"},
		{UserID: u.ID, RewardID: "workshop", Location: "Chennai", Date: "2026-09-15"},
	}
	for _, input := range inputs {
		if _, err := svc.Redeem(context.Background(), input); !errors.Is(err, domain.ErrMissingTripDetails) {
			t.Errorf("Redeem(%+v) = %v, want ErrMissingTripDetails", input, err)
		}
	}

	stored, _ := users.FindByID(context.Background(), u.ID)
	if stored.PinkTokens != 500 {
		t.Errorf("failed redemption spent tokens: %d", stored.PinkTokens)
	}
}

func TestWalletService_Redeem_UnknownReward(t *testing.T) {
	svc, users, _, _, _ := newWalletFixture(t)
	u := seedWalletUser(t, users, 0, 500, "")

	_, err := svc.Redeem(context.Background(), ports.RedeemInput{
		UserID: u.ID, RewardID: "yacht", Location: "Goa", Date: "2026-09-15", Time: "10:00",
	})
	if !errors.Is(err, domain.ErrRewardNotFound) {
		t.Fatalf("got %v, want ErrRewardNotFound", err)
	}
}

func TestWalletService_Redeem_InsufficientTokens(t *testing.T) {
	svc, users, _, _, _ := newWalletFixture(t)
	u := seedWalletUser(t, users, 0, 40, "")

	_, err := svc.Redeem(context.Background(), ports.RedeemInput{
		UserID: u.ID, RewardID: "local-service", Location: "Chennai", Date: "2026-09-15", Time: "10:00",
	})
	if !errors.Is(err, domain.ErrInsufficientTokens) {
		t.Fatalf("got %v, want ErrInsufficientTokens", err)
	}

	stored, _ := users.FindByID(context.Background(), u.ID)
	if stored.PinkTokens != 40 {
		t.Errorf("failed redemption spent tokens: %d", stored.PinkTokens)
	}
}

func TestWalletService_Transactions_DefaultLimit(t *testing.T) {
	svc, users, _, txns, _ := newWalletFixture(t)
	u := seedWalletUser(t, users, 0, 0, "")

	for i := 0; i < 60; i++ {
		_ = txns.Insert(context.Background(), &domain.Transaction{
			ID: fmt.Sprintf("txn-%d", i), UserID: u.ID, Kind: domain.TxnPayment, Amount: 10,
		})
	}

	list, err := svc.Transactions(context.Background(), u.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 50 {
		t.Errorf("default limit returned %d entries, want 50", len(list))
	}
}
