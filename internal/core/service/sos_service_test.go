package service

import (
	"context"
	"errors"
	"testing"

	"github.com/vasaworks/vasa-api/internal/core/domain"
	"github.com/vasaworks/vasa-api/internal/core/ports"
)

func newSOSFixture() (*SOSService, *stubUserRepo, *stubSOSRepo, *stubDedup, *stubNotifier) {
	users := newStubUserRepo()
	repo := &stubSOSRepo{}
	dedup := &stubDedup{}
	notifier := &stubNotifier{}
	svc := NewSOSService(repo, users, dedup, notifier, discardLogger)
	return svc, users, repo, dedup, notifier
}

func TestSOSService_Raise(t *testing.T) {
	svc, users, repo, dedup, notifier := newSOSFixture()
	u := users.add(&domain.User{Name: "Asha", Email: "asha@example.com"})

	alert, err := svc.Raise(context.Background(), ports.SOSInput{
		UserID: u.ID, Lat: 9.93, Lng: 78.12, Message: "need help",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alert.ID == "" {
		t.Error("expected an assigned alert id")
	}
	if alert.UserName != "Asha" {
		t.Errorf("user name = %q", alert.UserName)
	}
	if len(repo.alerts) != 1 {
		t.Errorf("persisted alerts = %d, want 1", len(repo.alerts))
	}
	if len(notifier.enqueued) != 1 {
		t.Errorf("enqueued = %d, want 1", len(notifier.enqueued))
	}
	if dedup.marks != 1 {
		t.Errorf("dedup marks = %d, want 1", dedup.marks)
	}
}

func TestSOSService_Raise_DuplicatePersistsWithoutFanout(t *testing.T) {
	svc, users, repo, dedup, notifier := newSOSFixture()
	u := users.add(&domain.User{Name: "Asha", Email: "asha@example.com"})
	dedup.dup = true

	alert, err := svc.Raise(context.Background(), ports.SOSInput{UserID: u.ID, Lat: 9.93, Lng: 78.12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alert == nil {
		t.Fatal("duplicate should still be accepted")
	}
	if len(repo.alerts) != 1 {
		t.Errorf("persisted alerts = %d, want 1 (audit record)", len(repo.alerts))
	}
	if len(notifier.enqueued) != 0 {
		t.Errorf("enqueued = %d, want 0", len(notifier.enqueued))
	}
	if dedup.marks != 0 {
		t.Errorf("dedup marks = %d, want 0 for a duplicate", dedup.marks)
	}
}

func TestSOSService_Raise_DedupOutageDispatchesAnyway(t *testing.T) {
	svc, users, _, dedup, notifier := newSOSFixture()
	u := users.add(&domain.User{Name: "Asha", Email: "asha@example.com"})
	dedup.checkErr = errStub

	if _, err := svc.Raise(context.Background(), ports.SOSInput{UserID: u.ID, Lat: 9.93, Lng: 78.12}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.enqueued) != 1 {
		t.Errorf("enqueued = %d, want 1 despite dedup outage", len(notifier.enqueued))
	}
}

func TestSOSService_Raise_UnknownUser(t *testing.T) {
	svc, _, repo, _, notifier := newSOSFixture()

	_, err := svc.Raise(context.Background(), ports.SOSInput{UserID: "ghost", Lat: 9.93, Lng: 78.12})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
	if len(repo.alerts) != 0 || len(notifier.enqueued) != 0 {
		t.Error("nothing should be persisted or dispatched for an unknown user")
	}
}

func TestSOSService_Raise_PersistFailure(t *testing.T) {
	svc, users, repo, _, notifier := newSOSFixture()
	u := users.add(&domain.User{Name: "Asha", Email: "asha@example.com"})
	repo.insertErr = errStub

	if _, err := svc.Raise(context.Background(), ports.SOSInput{UserID: u.ID, Lat: 9.93, Lng: 78.12}); err == nil {
		t.Fatal("expected error when persistence fails")
	}
	if len(notifier.enqueued) != 0 {
		t.Error("no fanout without a persisted alert")
	}
}

func TestSOSService_List(t *testing.T) {
	svc, users, _, _, _ := newSOSFixture()
	u := users.add(&domain.User{Name: "Asha", Email: "asha@example.com"})

	for i := 0; i < 5; i++ {
		if _, err := svc.Raise(context.Background(), ports.SOSInput{UserID: u.ID, Lat: 9.93, Lng: 78.12}); err != nil {
			t.Fatalf("raise %d: %v", i, err)
		}
	}

	alerts, err := svc.List(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alerts) != 3 {
		t.Errorf("listed = %d, want 3", len(alerts))
	}
}
