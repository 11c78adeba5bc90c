package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minitodo/internal/domain"
)

// mockAuthGateway is a test double for domain.AuthGateway.
type mockAuthGateway struct {
	signInSess   *domain.Session
	signInErr    error
	signUpResult *domain.SignUpResult
	signUpErr    error
	signOutErr   error
	refreshSess  *domain.Session
	refreshErr   error
	signOutCalls int
}

func (m *mockAuthGateway) SignIn(_ context.Context, _, _ string) (*domain.Session, error) {
	return m.signInSess, m.signInErr
}

func (m *mockAuthGateway) SignUp(_ context.Context, _, _ string) (*domain.SignUpResult, error) {
	return m.signUpResult, m.signUpErr
}

func (m *mockAuthGateway) SignOut(_ context.Context, _ string) error {
	m.signOutCalls++
	return m.signOutErr
}

func (m *mockAuthGateway) Refresh(_ context.Context, _ string) (*domain.Session, error) {
	return m.refreshSess, m.refreshErr
}

// mockSessionStore is an in-memory domain.SessionStore.
type mockSessionStore struct {
	sess    *domain.Session
	loadErr error
}

func (m *mockSessionStore) Load() (*domain.Session, error) {
	return m.sess, m.loadErr
}

func (m *mockSessionStore) Save(s *domain.Session) error {
	m.sess = s
	return nil
}

func (m *mockSessionStore) Clear() error {
	m.sess = nil
	return nil
}

// mockClock is a test double for domain.Clock.
type mockClock struct {
	now time.Time
}

func (m *mockClock) Now() time.Time {
	return m.now
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validSession() *domain.Session {
	return &domain.Session{
		UserID:       "user-1",
		Email:        "user@example.com",
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestManager_Init_RestoresValidSession(t *testing.T) {
	// Setup
	auth := &mockAuthGateway{}
	store := &mockSessionStore{sess: validSession()}
	clock := &mockClock{now: time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC)}
	m := NewManager(auth, store, clock, testLogger())

	// Execute
	err := m.Init(context.Background())

	// Assert
	require.NoError(t, err)
	require.NotNil(t, m.Current())
	assert.Equal(t, "user@example.com", m.Current().Email)
}

func TestManager_Init_NoStoredSession(t *testing.T) {
	// Setup
	m := NewManager(&mockAuthGateway{}, &mockSessionStore{}, &mockClock{}, testLogger())

	// Execute
	err := m.Init(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Nil(t, m.Current())
}

func TestManager_Init_RefreshesExpiredSession(t *testing.T) {
	// Setup: stored session expired an hour ago
	refreshed := validSession()
	refreshed.AccessToken = "new-access"
	auth := &mockAuthGateway{refreshSess: refreshed}
	store := &mockSessionStore{sess: validSession()}
	clock := &mockClock{now: time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC)}
	m := NewManager(auth, store, clock, testLogger())

	// Execute
	err := m.Init(context.Background())

	// Assert
	require.NoError(t, err)
	require.NotNil(t, m.Current())
	assert.Equal(t, "new-access", m.Current().AccessToken)
}

func TestManager_Init_DiscardsUnrefreshableSession(t *testing.T) {
	// Setup: expired session, refresh fails
	auth := &mockAuthGateway{refreshErr: errors.New("refresh token revoked")}
	store := &mockSessionStore{sess: validSession()}
	clock := &mockClock{now: time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC)}
	m := NewManager(auth, store, clock, testLogger())

	// Execute
	err := m.Init(context.Background())

	// Assert: not an error, just signed out
	require.NoError(t, err)
	assert.Nil(t, m.Current())
	assert.Nil(t, store.sess)
}

func TestManager_SignIn_PersistsAndNotifies(t *testing.T) {
	// Setup
	auth := &mockAuthGateway{signInSess: validSession()}
	store := &mockSessionStore{}
	m := NewManager(auth, store, &mockClock{}, testLogger())

	var notified []*domain.Session
	unsubscribe := m.Subscribe(func(s *domain.Session) {
		notified = append(notified, s)
	})
	defer unsubscribe()

	// Execute
	err := m.SignIn(context.Background(), "user@example.com", "secret")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, m.Current())
	assert.NotNil(t, store.sess)
	require.Len(t, notified, 1)
	assert.Equal(t, "user@example.com", notified[0].Email)
}

func TestManager_SignIn_FailureChangesNothing(t *testing.T) {
	// Setup
	auth := &mockAuthGateway{signInErr: &domain.AuthError{Message: "Invalid login credentials", StatusCode: 400}}
	store := &mockSessionStore{}
	m := NewManager(auth, store, &mockClock{}, testLogger())

	notifications := 0
	unsubscribe := m.Subscribe(func(*domain.Session) { notifications++ })
	defer unsubscribe()

	// Execute
	err := m.SignIn(context.Background(), "user@example.com", "wrong")

	// Assert: provider message surfaces verbatim, state untouched
	require.Error(t, err)
	assert.Equal(t, "Invalid login credentials", err.Error())
	assert.Nil(t, m.Current())
	assert.Nil(t, store.sess)
	assert.Zero(t, notifications)
}

func TestManager_SignUp_ConfirmationPending(t *testing.T) {
	// Setup
	auth := &mockAuthGateway{signUpResult: &domain.SignUpResult{ConfirmationPending: true}}
	m := NewManager(auth, &mockSessionStore{}, &mockClock{}, testLogger())

	// Execute
	pending, err := m.SignUp(context.Background(), "new@example.com", "secret")

	// Assert: no session until the email is confirmed
	require.NoError(t, err)
	assert.True(t, pending)
	assert.Nil(t, m.Current())
}

func TestManager_SignUp_ImmediateSession(t *testing.T) {
	// Setup
	auth := &mockAuthGateway{signUpResult: &domain.SignUpResult{Session: validSession()}}
	m := NewManager(auth, &mockSessionStore{}, &mockClock{}, testLogger())

	// Execute
	pending, err := m.SignUp(context.Background(), "new@example.com", "secret")

	// Assert
	require.NoError(t, err)
	assert.False(t, pending)
	assert.NotNil(t, m.Current())
}

func TestManager_SignOut_ClearsLocalEvenOnRemoteFailure(t *testing.T) {
	// Setup
	auth := &mockAuthGateway{signInSess: validSession(), signOutErr: errors.New("server unavailable")}
	store := &mockSessionStore{}
	m := NewManager(auth, store, &mockClock{}, testLogger())
	require.NoError(t, m.SignIn(context.Background(), "user@example.com", "secret"))

	// Execute
	err := m.SignOut(context.Background())

	// Assert: error reported but local session is gone
	require.Error(t, err)
	assert.Nil(t, m.Current())
	assert.Nil(t, store.sess)
}

func TestManager_SignOut_WhenSignedOutIsNoop(t *testing.T) {
	// Setup
	auth := &mockAuthGateway{}
	m := NewManager(auth, &mockSessionStore{}, &mockClock{}, testLogger())

	// Execute
	err := m.SignOut(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Zero(t, auth.signOutCalls)
}

func TestManager_Subscribe_UnsubscribeStopsNotifications(t *testing.T) {
	// Setup
	auth := &mockAuthGateway{signInSess: validSession()}
	m := NewManager(auth, &mockSessionStore{}, &mockClock{}, testLogger())

	notifications := 0
	unsubscribe := m.Subscribe(func(*domain.Session) { notifications++ })

	// Execute
	require.NoError(t, m.SignIn(context.Background(), "user@example.com", "secret"))
	unsubscribe()
	require.NoError(t, m.SignOut(context.Background()))

	// Assert: only the first change was observed
	assert.Equal(t, 1, notifications)
}
