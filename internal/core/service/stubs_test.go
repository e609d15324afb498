package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vasaworks/vasa-api/internal/core/domain"
	"github.com/vasaworks/vasa-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

var errStub = errors.New("stub failure")

func hashPIN(t *testing.T, pin string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}
	return string(h)
}

// --- users ---

type stubUserRepo struct {
	users     map[string]*domain.User
	nextID    int
	updateErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	if u.ID == "" {
		r.nextID++
		u.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	r.users[u.ID] = cloneUser(u)
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	return cloneUser(r.add(u)), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	all := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	skip := (filter.Page - 1) * filter.Limit
	if skip > len(all) {
		skip = len(all)
	}
	end := skip + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

// --- jobs ---

type stubJobRepo struct {
	jobs map[string]*domain.Job
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.Job)}
}

func (r *stubJobRepo) Create(_ context.Context, j *domain.Job) error {
	if _, ok := r.jobs[j.Reference]; ok {
		return domain.ErrDuplicateJob
	}
	r.jobs[j.Reference] = cloneJob(j)
	return nil
}

func (r *stubJobRepo) FindByReference(_ context.Context, reference string) (*domain.Job, error) {
	j, ok := r.jobs[reference]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *stubJobRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.Job, error) {
	for _, j := range r.jobs {
		if j.IdempotencyKey != "" && j.IdempotencyKey == key {
			return cloneJob(j), nil
		}
	}
	return nil, domain.ErrJobNotFound
}

func (r *stubJobRepo) List(_ context.Context, filter ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	all := make([]*domain.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if filter.Status != "" && string(j.Status) != filter.Status {
			continue
		}
		if filter.JobType != "" && string(j.JobType) != filter.JobType {
			continue
		}
		all = append(all, cloneJob(j))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Reference < all[j].Reference })
	return all, int64(len(all)), nil
}

func (r *stubJobRepo) UpdateStatus(_ context.Context, reference string, status domain.JobStatus, ts time.Time, notes string, workerIDs []string) error {
	j, ok := r.jobs[reference]
	if !ok {
		return domain.ErrJobNotFound
	}
	j.Status = status
	j.UpdatedAt = ts
	if workerIDs != nil {
		j.AssignedWorkers = workerIDs
	}
	j.StatusHistory = append(j.StatusHistory, domain.StatusHistoryEntry{Status: status, Timestamp: ts, Notes: notes})
	return nil
}

func cloneJob(j *domain.Job) *domain.Job {
	c := *j
	c.StatusHistory = append([]domain.StatusHistoryEntry(nil), j.StatusHistory...)
	if j.AssignedWorkers != nil {
		c.AssignedWorkers = make([]string, len(j.AssignedWorkers))
		copy(c.AssignedWorkers, j.AssignedWorkers)
	}
	return &c
}

// --- workers ---

type stubWorkerRepo struct {
	workers map[string]*domain.WorkerProfile
	nextID  int
}

func newStubWorkerRepo() *stubWorkerRepo {
	return &stubWorkerRepo{workers: make(map[string]*domain.WorkerProfile)}
}

func (r *stubWorkerRepo) add(w *domain.WorkerProfile) *domain.WorkerProfile {
	if w.ID == "" {
		r.nextID++
		w.ID = fmt.Sprintf("worker-%d", r.nextID)
	}
	r.workers[w.ID] = w
	return w
}

func (r *stubWorkerRepo) Create(_ context.Context, w *domain.WorkerProfile) (*domain.WorkerProfile, error) {
	return r.add(w), nil
}

func (r *stubWorkerRepo) FindByID(_ context.Context, id string) (*domain.WorkerProfile, error) {
	w, ok := r.workers[id]
	if !ok {
		return nil, domain.ErrWorkerNotFound
	}
	c := *w
	return &c, nil
}

func (r *stubWorkerRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.WorkerProfile, error) {
	found := make([]*domain.WorkerProfile, 0, len(ids))
	for _, id := range ids {
		if w, ok := r.workers[id]; ok {
			c := *w
			found = append(found, &c)
		}
	}
	return found, nil
}

func (r *stubWorkerRepo) Update(_ context.Context, w *domain.WorkerProfile) error {
	if _, ok := r.workers[w.ID]; !ok {
		return domain.ErrWorkerNotFound
	}
	c := *w
	r.workers[w.ID] = &c
	return nil
}

func (r *stubWorkerRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.workers[id]; !ok {
		return domain.ErrWorkerNotFound
	}
	delete(r.workers, id)
	return nil
}

func (r *stubWorkerRepo) List(_ context.Context) ([]*domain.WorkerProfile, error) {
	all := make([]*domain.WorkerProfile, 0, len(r.workers))
	for _, w := range r.workers {
		c := *w
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// --- teams ---

type stubTeamRepo struct {
	teams  map[string]*domain.Team
	nextID int
}

func newStubTeamRepo() *stubTeamRepo {
	return &stubTeamRepo{teams: make(map[string]*domain.Team)}
}

func (r *stubTeamRepo) add(t *domain.Team) *domain.Team {
	if t.ID == "" {
		r.nextID++
		t.ID = fmt.Sprintf("team-%d", r.nextID)
	}
	r.teams[t.ID] = cloneTeam(t)
	return t
}

func (r *stubTeamRepo) Create(_ context.Context, t *domain.Team) (*domain.Team, error) {
	return cloneTeam(r.add(t)), nil
}

func (r *stubTeamRepo) FindByID(_ context.Context, id string) (*domain.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	return cloneTeam(t), nil
}

func (r *stubTeamRepo) List(_ context.Context) ([]*domain.Team, error) {
	all := make([]*domain.Team, 0, len(r.teams))
	for _, t := range r.teams {
		all = append(all, cloneTeam(t))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *stubTeamRepo) Update(_ context.Context, t *domain.Team) error {
	if _, ok := r.teams[t.ID]; !ok {
		return domain.ErrTeamNotFound
	}
	r.teams[t.ID] = cloneTeam(t)
	return nil
}

func cloneTeam(t *domain.Team) *domain.Team {
	c := *t
	c.MemberIDs = append([]string(nil), t.MemberIDs...)
	return &c
}

// --- wallet ledger ---

type stubTxnRepo struct {
	entries   []*domain.Transaction
	insertErr error
}

func newStubTxnRepo() *stubTxnRepo {
	return &stubTxnRepo{}
}

func (r *stubTxnRepo) Insert(_ context.Context, t *domain.Transaction) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	c := *t
	r.entries = append(r.entries, &c)
	return nil
}

func (r *stubTxnRepo) FindByIdempotencyKey(_ context.Context, userID, key string) (*domain.Transaction, error) {
	for _, e := range r.entries {
		if e.UserID == userID && e.IdempotencyKey != "" && e.IdempotencyKey == key {
			c := *e
			return &c, nil
		}
	}
	return nil, nil
}

func (r *stubTxnRepo) Delete(_ context.Context, id string) error {
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubTxnRepo) ListByUser(_ context.Context, userID string, limit int) ([]*domain.Transaction, error) {
	out := make([]*domain.Transaction, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].UserID == userID {
			c := *r.entries[i]
			out = append(out, &c)
		}
	}
	return out, nil
}

// --- pin limiter ---

type stubLimiter struct {
	blocked  bool
	checkErr error
	failures int
	resets   int
}

func (l *stubLimiter) TooManyAttempts(context.Context, string) (bool, error) {
	return l.blocked, l.checkErr
}

func (l *stubLimiter) RecordFailure(context.Context, string) error {
	l.failures++
	return nil
}

func (l *stubLimiter) Reset(context.Context, string) error {
	l.resets++
	return nil
}

// --- sos ---

type stubSOSRepo struct {
	alerts    []*domain.SOSAlert
	insertErr error
}

func (r *stubSOSRepo) Insert(_ context.Context, alert *domain.SOSAlert) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	c := *alert
	r.alerts = append(r.alerts, &c)
	return nil
}

func (r *stubSOSRepo) List(_ context.Context, limit int) ([]*domain.SOSAlert, error) {
	out := make([]*domain.SOSAlert, 0, limit)
	for i := len(r.alerts) - 1; i >= 0 && len(out) < limit; i-- {
		c := *r.alerts[i]
		out = append(out, &c)
	}
	return out, nil
}

type stubDedup struct {
	dup      bool
	checkErr error
	marks    int
}

func (d *stubDedup) IsDuplicate(context.Context, string) (bool, error) {
	return d.dup, d.checkErr
}

func (d *stubDedup) Mark(context.Context, string) error {
	d.marks++
	return nil
}

type stubNotifier struct {
	enqueued []domain.SOSAlert
}

func (n *stubNotifier) EnqueueAlert(alert domain.SOSAlert) {
	n.enqueued = append(n.enqueued, alert)
}

// --- learning ---

type stubLearningRepo struct {
	modules  map[string]domain.LearningModule
	progress map[string]*domain.ModuleProgress
}

func newStubLearningRepo() *stubLearningRepo {
	return &stubLearningRepo{
		modules:  make(map[string]domain.LearningModule),
		progress: make(map[string]*domain.ModuleProgress),
	}
}

func (r *stubLearningRepo) Seed(_ context.Context, modules []domain.LearningModule) error {
	for _, m := range modules {
		r.modules[m.ID] = m
	}
	return nil
}

func (r *stubLearningRepo) List(_ context.Context, language string) ([]domain.LearningModule, error) {
	out := make([]domain.LearningModule, 0, len(r.modules))
	for _, m := range r.modules {
		if language != "" && m.Language != language {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubLearningRepo) FindByID(_ context.Context, id string) (*domain.LearningModule, error) {
	m, ok := r.modules[id]
	if !ok {
		return nil, domain.ErrModuleNotFound
	}
	return &m, nil
}

func (r *stubLearningRepo) UpsertProgress(_ context.Context, p *domain.ModuleProgress) error {
	c := *p
	r.progress[p.UserID+"/"+p.ModuleID] = &c
	return nil
}

func (r *stubLearningRepo) ProgressByUser(_ context.Context, userID string) ([]domain.ModuleProgress, error) {
	out := make([]domain.ModuleProgress, 0, len(r.progress))
	for _, p := range r.progress {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModuleID < out[j].ModuleID })
	return out, nil
}

// --- model suggester ---

type stubSuggester struct {
	jobScores  []ScoredJob
	jobsErr    error
	teams      []SuggestedTeam
	teamsErr   error
	members    []string
	membersErr error
	calls      int
}

func (s *stubSuggester) MatchJobs(context.Context, MatchProfile, []JobPosting) ([]ScoredJob, error) {
	s.calls++
	return s.jobScores, s.jobsErr
}

func (s *stubSuggester) SuggestTeams(context.Context, []string, []TeamInfo, int) ([]SuggestedTeam, error) {
	s.calls++
	return s.teams, s.teamsErr
}

func (s *stubSuggester) SuggestTeamMembers(context.Context, string, []string, []string, int) ([]string, error) {
	s.calls++
	return s.members, s.membersErr
}
