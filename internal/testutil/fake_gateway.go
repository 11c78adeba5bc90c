// Package testutil provides in-memory fakes shared by tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"minitodo/internal/domain"
)

// FakeGateway is an in-memory implementation of domain.TaskGateway and
// domain.AuthGateway. It stores tasks per owner, filters and orders list
// responses the way the remote data API does, and lets tests inject
// failures per operation.
type FakeGateway struct {
	mu    sync.Mutex
	tasks map[string][]domain.Task // keyed by owner ID
	now   time.Time

	// Injectable errors; nil means the operation succeeds.
	ListErr   error
	InsertErr error
	UpdateErr error
	DeleteErr error

	// ListHook, when set, runs after a list response is built but before
	// it is returned, outside the gateway lock. It receives the 1-based
	// call number; tests use it to order concurrent list calls.
	ListHook func(call int)

	// Auth behavior
	SignInErr     error
	SignUpErr     error
	SignUpPending bool

	// Call counters
	ListCalls   int
	InsertCalls int
	UpdateCalls int
	DeleteCalls int
}

var (
	_ domain.TaskGateway = (*FakeGateway)(nil)
	_ domain.AuthGateway = (*FakeGateway)(nil)
)

// NewFakeGateway creates an empty FakeGateway.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		tasks: make(map[string][]domain.Task),
		now:   time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

// Seed inserts a task directly, bypassing error injection and counters.
// It returns the stored task with its minted ID and creation time.
func (g *FakeGateway) Seed(owner, title, category string, complete bool) domain.Task {
	g.mu.Lock()
	defer g.mu.Unlock()
	task := domain.Task{
		ID:        uuid.NewString(),
		Owner:     owner,
		Title:     title,
		Category:  category,
		Complete:  complete,
		CreatedAt: g.tick(),
	}
	g.tasks[owner] = append(g.tasks[owner], task)
	return task
}

// tick advances the fake clock so every stored task gets a distinct
// creation time. Callers must hold the lock.
func (g *FakeGateway) tick() time.Time {
	g.now = g.now.Add(time.Minute)
	return g.now
}

// ListTasks returns the owner's tasks, optionally filtered by category,
// newest first.
func (g *FakeGateway) ListTasks(ctx context.Context, accessToken string, q domain.TaskQuery) ([]domain.Task, error) {
	g.mu.Lock()
	g.ListCalls++
	call := g.ListCalls
	if g.ListErr != nil {
		g.mu.Unlock()
		return nil, g.ListErr
	}

	var out []domain.Task
	for _, task := range g.tasks[q.Owner] {
		if q.Category != "" && task.Category != q.Category {
			continue
		}
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	hook := g.ListHook
	g.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	return out, nil
}

// InsertTask stores the task under its owner and returns the stored row.
func (g *FakeGateway) InsertTask(ctx context.Context, accessToken string, task domain.Task) (*domain.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.InsertCalls++
	if g.InsertErr != nil {
		return nil, g.InsertErr
	}

	task.ID = uuid.NewString()
	task.CreatedAt = g.tick()
	g.tasks[task.Owner] = append(g.tasks[task.Owner], task)
	stored := task
	return &stored, nil
}

// UpdateTask applies the non-nil fields to the matching task. A missing
// task is a no-op, matching the remote store's zero-rows behavior.
func (g *FakeGateway) UpdateTask(ctx context.Context, accessToken, id, owner string, fields domain.TaskFields) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.UpdateCalls++
	if g.UpdateErr != nil {
		return g.UpdateErr
	}

	tasks := g.tasks[owner]
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		if fields.Title != nil {
			tasks[i].Title = *fields.Title
		}
		if fields.Description != nil {
			tasks[i].Description = *fields.Description
		}
		if fields.Category != nil {
			tasks[i].Category = *fields.Category
		}
		if fields.Complete != nil {
			tasks[i].Complete = *fields.Complete
		}
		return nil
	}
	return nil
}

// DeleteTask removes the matching task. A missing task is a no-op.
func (g *FakeGateway) DeleteTask(ctx context.Context, accessToken, id, owner string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.DeleteCalls++
	if g.DeleteErr != nil {
		return g.DeleteErr
	}

	tasks := g.tasks[owner]
	for i := range tasks {
		if tasks[i].ID == id {
			g.tasks[owner] = append(tasks[:i], tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

// Get returns the stored task by ID, or nil.
func (g *FakeGateway) Get(owner, id string) *domain.Task {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, task := range g.tasks[owner] {
		if task.ID == id {
			t := task
			return &t
		}
	}
	return nil
}

// SignIn returns a session for the given email.
func (g *FakeGateway) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if g.SignInErr != nil {
		return nil, g.SignInErr
	}
	return &domain.Session{
		UserID:       "user-" + email,
		Email:        email,
		AccessToken:  "token-" + email,
		RefreshToken: "refresh-" + email,
		ExpiresAt:    time.Now().Add(time.Hour),
	}, nil
}

// SignUp registers the email. With SignUpPending set it reports that a
// confirmation email was sent instead of returning a session.
func (g *FakeGateway) SignUp(ctx context.Context, email, password string) (*domain.SignUpResult, error) {
	if g.SignUpErr != nil {
		return nil, g.SignUpErr
	}
	if g.SignUpPending {
		return &domain.SignUpResult{ConfirmationPending: true}, nil
	}
	sess, err := g.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &domain.SignUpResult{Session: sess}, nil
}

// SignOut always succeeds.
func (g *FakeGateway) SignOut(ctx context.Context, accessToken string) error {
	return nil
}

// Refresh mints a new session from the refresh token.
func (g *FakeGateway) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	return &domain.Session{
		UserID:       "user-refreshed",
		Email:        "refreshed@example.com",
		AccessToken:  "token-refreshed",
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(time.Hour),
	}, nil
}
