package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minitodo/internal/domain"
)

func TestDeleteTask_Execute_Success(t *testing.T) {
	// Setup
	gw := newMockTaskGateway()
	uc := NewDeleteTask(gw)

	// Execute
	_, err := uc.Execute(context.Background(), DeleteTaskInput{
		Session: testSession(),
		TaskID:  "task-1",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"task-1"}, gw.deletes)
}

func TestDeleteTask_Execute_NoSession(t *testing.T) {
	// Setup
	uc := NewDeleteTask(newMockTaskGateway())

	// Execute
	_, err := uc.Execute(context.Background(), DeleteTaskInput{TaskID: "task-1"})

	// Assert
	assert.ErrorIs(t, err, domain.ErrNotSignedIn)
}

func TestDeleteTask_Execute_GatewayError(t *testing.T) {
	// Setup
	gw := newMockTaskGateway()
	gw.deleteErr = errors.New("boom")
	uc := NewDeleteTask(gw)

	// Execute
	_, err := uc.Execute(context.Background(), DeleteTaskInput{
		Session: testSession(),
		TaskID:  "task-1",
	})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete task")
}
