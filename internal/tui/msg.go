package tui

import "minitodo/internal/domain"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgSessionChanged is sent when the signed-in session changes, including
// to nil on sign-out.
type MsgSessionChanged struct {
	Session *domain.Session
}

func (MsgSessionChanged) sealed() {}

// MsgSignUpPending is sent when sign-up succeeded but the account needs
// email confirmation before it can sign in.
type MsgSignUpPending struct {
	Email string
}

func (MsgSignUpPending) sealed() {}

// MsgTasksRefreshed is sent when the task collection has been re-fetched.
type MsgTasksRefreshed struct{}

func (MsgTasksRefreshed) sealed() {}

// MsgMutationDone is sent when a mutation and its follow-up refresh have
// both completed.
type MsgMutationDone struct{}

func (MsgMutationDone) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgClearError is sent to clear the current error message.
type MsgClearError struct{}

func (MsgClearError) sealed() {}
