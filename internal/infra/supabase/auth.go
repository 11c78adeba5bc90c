package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"minitodo/internal/domain"
)

// Ensure Client implements domain.AuthGateway.
var _ domain.AuthGateway = (*Client)(nil)

// tokenResponse is the GoTrue token/signup response shape.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// authErrorResponse covers the error payload variants GoTrue emits.
type authErrorResponse struct {
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

// session converts a token response into a domain session.
func (r *tokenResponse) session(now time.Time) *domain.Session {
	var expires time.Time
	if r.ExpiresIn > 0 {
		expires = now.Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return &domain.Session{
		ExpiresAt:    expires,
		UserID:       r.User.ID,
		Email:        r.User.Email,
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
	}
}

// authError maps a failed auth response to a domain.AuthError, preserving
// the provider's message so it can be shown verbatim.
func authError(status int, body []byte) error {
	var payload authErrorResponse
	_ = json.Unmarshal(body, &payload)

	msg := payload.ErrorDescription
	if msg == "" {
		msg = payload.Msg
	}
	if msg == "" {
		msg = payload.Message
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &domain.AuthError{Message: msg, StatusCode: status}
}

// SignIn exchanges credentials for a session using the password grant.
func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	var out tokenResponse
	status, body, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {"password"}},
		body:   map[string]string{"email": email, "password": password},
	}, &out)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, authError(status, body)
	}
	return out.session(c.clock.Now()), nil
}

// SignUp registers a new account. When the project requires email
// confirmation the provider returns a user without tokens; that is
// reported as a pending confirmation, not an error.
func (c *Client) SignUp(ctx context.Context, email, password string) (*domain.SignUpResult, error) {
	var out tokenResponse
	status, body, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/signup",
		body:   map[string]string{"email": email, "password": password},
	}, &out)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, authError(status, body)
	}

	if out.AccessToken == "" {
		return &domain.SignUpResult{ConfirmationPending: true}, nil
	}
	return &domain.SignUpResult{Session: out.session(c.clock.Now())}, nil
}

// SignOut revokes the session's tokens at the provider.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	status, body, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/logout",
		token:  accessToken,
	}, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent && status != http.StatusOK {
		return authError(status, body)
	}
	return nil
}

// Refresh exchanges a refresh token for a new session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	var out tokenResponse
	status, body, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {"refresh_token"}},
		body:   map[string]string{"refresh_token": refreshToken},
	}, &out)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, authError(status, body)
	}
	return out.session(c.clock.Now()), nil
}
