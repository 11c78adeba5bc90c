package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeLogin, "login"},
		{ModeNormal, "normal"},
		{ModeForm, "form"},
		{ModeConfirmDelete, "confirm_delete"},
		{ModeCategory, "category"},
		{ModeHelp, "help"},
		{Mode(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mode.String())
	}
}

func TestMode_IsInputMode(t *testing.T) {
	assert.True(t, ModeLogin.IsInputMode())
	assert.True(t, ModeForm.IsInputMode())
	assert.False(t, ModeNormal.IsInputMode())
	assert.False(t, ModeConfirmDelete.IsInputMode())
	assert.False(t, ModeCategory.IsInputMode())
	assert.False(t, ModeHelp.IsInputMode())
}
