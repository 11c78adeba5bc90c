// Package session tracks the authenticated user. The Manager is an
// explicitly constructed instance passed to consumers; there is no
// package-level singleton.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"minitodo/internal/domain"
)

// Manager owns the current session and notifies subscribers when it
// changes. Auth operations delegate to the identity provider and never
// write the current session directly: every change flows through the
// single notification path, so consumers and the manager cannot diverge.
// Fields are ordered to minimize memory padding.
type Manager struct {
	auth    domain.AuthGateway
	store   domain.SessionStore
	clock   domain.Clock
	logger  *slog.Logger
	current *domain.Session
	subs    map[int]func(*domain.Session)
	mu      sync.Mutex
	nextSub int
}

// NewManager creates a Manager.
func NewManager(auth domain.AuthGateway, store domain.SessionStore, clock domain.Clock, logger *slog.Logger) *Manager {
	return &Manager{
		auth:   auth,
		store:  store,
		clock:  clock,
		logger: logger,
		subs:   make(map[int]func(*domain.Session)),
	}
}

// Init restores a persisted session, refreshing it at the provider when
// the access token has expired. A stale session that cannot be refreshed
// is discarded; the user simply signs in again.
func (m *Manager) Init(ctx context.Context) error {
	sess, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil
	}

	if sess.Expired(m.clock.Now()) {
		refreshed, err := m.auth.Refresh(ctx, sess.RefreshToken)
		if err != nil {
			m.logger.Warn("session refresh failed, discarding stored session", "error", err)
			_ = m.store.Clear()
			return nil
		}
		sess = refreshed
	}

	m.setSession(sess)
	return nil
}

// Current returns the active session, or nil when signed out.
func (m *Manager) Current() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Subscribe registers fn to be called with the new session value (or nil)
// on every session change. The returned function removes the registration;
// callers must invoke it on teardown.
func (m *Manager) Subscribe(fn func(*domain.Session)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// SignIn delegates credentials to the provider. On success the new
// session is persisted and announced; on failure nothing changes and the
// provider's message is returned for verbatim display.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	sess, err := m.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	m.logger.Info("signed in", "email", sess.Email)
	m.setSession(sess)
	return nil
}

// SignUp registers a new account. When the provider requires email
// confirmation no session is established and true is returned.
func (m *Manager) SignUp(ctx context.Context, email, password string) (confirmationPending bool, err error) {
	result, err := m.auth.SignUp(ctx, email, password)
	if err != nil {
		return false, err
	}
	if result.ConfirmationPending {
		m.logger.Info("sign-up pending confirmation", "email", email)
		return true, nil
	}
	m.logger.Info("signed up", "email", result.Session.Email)
	m.setSession(result.Session)
	return false, nil
}

// SignOut revokes the session at the provider and clears local state.
// The local session is cleared even if the remote revocation fails, so a
// dead token cannot wedge the client in a signed-in state.
func (m *Manager) SignOut(ctx context.Context) error {
	current := m.Current()
	if current == nil {
		return nil
	}

	err := m.auth.SignOut(ctx, current.AccessToken)
	m.setSession(nil)
	if err != nil {
		m.logger.Warn("remote sign-out failed", "error", err)
		return err
	}
	m.logger.Info("signed out")
	return nil
}

// setSession is the single write path for session state: persist, update,
// notify. Subscribers run outside the lock.
func (m *Manager) setSession(sess *domain.Session) {
	if sess == nil {
		if err := m.store.Clear(); err != nil {
			m.logger.Warn("clear session store", "error", err)
		}
	} else {
		if err := m.store.Save(sess); err != nil {
			m.logger.Warn("save session store", "error", err)
		}
	}

	m.mu.Lock()
	m.current = sess
	fns := make([]func(*domain.Session), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(sess)
	}
}
