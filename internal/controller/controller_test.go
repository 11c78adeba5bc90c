package controller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minitodo/internal/domain"
	"minitodo/internal/testutil"
	"minitodo/internal/usecase"
)

func newTestController(gw *testutil.FakeGateway) *Controller {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(
		usecase.NewListTasks(gw),
		usecase.NewCreateTask(gw),
		usecase.NewEditTask(gw),
		usecase.NewDeleteTask(gw),
		usecase.NewToggleTask(gw),
		logger,
	)
}

func sessionFor(owner string) *domain.Session {
	return &domain.Session{UserID: owner, AccessToken: "token-" + owner}
}

func TestController_Refresh_OwnerIsolation(t *testing.T) {
	// Setup: tasks for two different owners
	gw := testutil.NewFakeGateway()
	gw.Seed("owner-1", "Mine", "", false)
	gw.Seed("owner-2", "Not mine", "", false)
	c := newTestController(gw)

	// Execute
	err := c.Refresh(context.Background(), sessionFor("owner-1"))

	// Assert
	require.NoError(t, err)
	tasks := c.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Mine", tasks[0].Title)
	assert.Equal(t, "owner-1", tasks[0].Owner)
}

func TestController_Refresh_NewestFirst(t *testing.T) {
	// Setup: seeded in creation order
	gw := testutil.NewFakeGateway()
	gw.Seed("owner-1", "First", "", false)
	gw.Seed("owner-1", "Second", "", false)
	gw.Seed("owner-1", "Third", "", false)
	c := newTestController(gw)

	// Execute
	require.NoError(t, c.Refresh(context.Background(), sessionFor("owner-1")))

	// Assert
	tasks := c.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, "Third", tasks[0].Title)
	assert.Equal(t, "Second", tasks[1].Title)
	assert.Equal(t, "First", tasks[2].Title)
}

func TestController_Refresh_ErrorLeavesCollectionUntouched(t *testing.T) {
	// Setup: a successful refresh followed by a failing one
	gw := testutil.NewFakeGateway()
	gw.Seed("owner-1", "Kept", "", false)
	c := newTestController(gw)
	require.NoError(t, c.Refresh(context.Background(), sessionFor("owner-1")))

	gw.ListErr = errors.New("network down")

	// Execute
	err := c.Refresh(context.Background(), sessionFor("owner-1"))

	// Assert: error surfaced, previous collection intact
	require.Error(t, err)
	tasks := c.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Kept", tasks[0].Title)
}

func TestController_Create_MutateThenRefresh(t *testing.T) {
	// Setup
	gw := testutil.NewFakeGateway()
	c := newTestController(gw)
	sess := sessionFor("owner-1")

	// Execute
	err := c.Create(context.Background(), sess, domain.Draft{Title: "Buy milk", Category: "Home"})

	// Assert: the collection reflects the store, not a local prediction
	require.NoError(t, err)
	assert.Equal(t, 1, gw.InsertCalls)
	assert.Equal(t, 1, gw.ListCalls)
	tasks := c.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.NotEmpty(t, tasks[0].ID)
}

func TestController_Create_WhitespaceTitleNeverReachesGateway(t *testing.T) {
	// Setup
	gw := testutil.NewFakeGateway()
	c := newTestController(gw)

	// Execute
	err := c.Create(context.Background(), sessionFor("owner-1"), domain.Draft{Title: "   "})

	// Assert: no insert, no refresh, error surfaced
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	assert.Equal(t, 0, gw.InsertCalls)
	assert.Equal(t, 0, gw.ListCalls)
	assert.Empty(t, c.Tasks())
}

func TestController_ToggleComplete_Involution(t *testing.T) {
	// Setup
	gw := testutil.NewFakeGateway()
	seeded := gw.Seed("owner-1", "Flip me", "", false)
	c := newTestController(gw)
	sess := sessionFor("owner-1")

	// Execute: toggle once
	require.NoError(t, c.ToggleComplete(context.Background(), sess, seeded.ID, false))

	// Assert
	tasks := c.Tasks()
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Complete)

	// Execute: toggle back with the refreshed value
	require.NoError(t, c.ToggleComplete(context.Background(), sess, seeded.ID, tasks[0].Complete))

	// Assert: original value restored
	tasks = c.Tasks()
	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].Complete)
}

func TestController_Delete_RemovesFromCollection(t *testing.T) {
	// Setup
	gw := testutil.NewFakeGateway()
	keep := gw.Seed("owner-1", "Keep", "", false)
	drop := gw.Seed("owner-1", "Drop", "", false)
	c := newTestController(gw)
	sess := sessionFor("owner-1")
	require.NoError(t, c.Refresh(context.Background(), sess))

	// Execute
	err := c.Delete(context.Background(), sess, drop.ID)

	// Assert
	require.NoError(t, err)
	tasks := c.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ID)
}

func TestController_Update_FailureLeavesCollectionUnchanged(t *testing.T) {
	// Setup
	gw := testutil.NewFakeGateway()
	seeded := gw.Seed("owner-1", "Original", "", false)
	c := newTestController(gw)
	sess := sessionFor("owner-1")
	require.NoError(t, c.Refresh(context.Background(), sess))
	listCallsBefore := gw.ListCalls

	gw.UpdateErr = errors.New("permission denied")

	// Execute
	err := c.Update(context.Background(), sess, domain.Draft{TaskID: seeded.ID, Title: "Changed"})

	// Assert: error surfaced, no refresh issued, collection unchanged
	require.Error(t, err)
	assert.Equal(t, listCallsBefore, gw.ListCalls)
	tasks := c.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Original", tasks[0].Title)
}

func TestController_SetFilter_AppliedOnNextRefresh(t *testing.T) {
	// Setup
	gw := testutil.NewFakeGateway()
	gw.Seed("owner-1", "Laundry", "Home", false)
	gw.Seed("owner-1", "Report", "Work", false)
	gw.Seed("owner-1", "Untagged", "", false)
	c := newTestController(gw)
	sess := sessionFor("owner-1")
	require.NoError(t, c.Refresh(context.Background(), sess))
	require.Len(t, c.Tasks(), 3)

	// Execute
	c.SetFilter("Work")
	require.NoError(t, c.Refresh(context.Background(), sess))

	// Assert
	tasks := c.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Report", tasks[0].Title)
	assert.Equal(t, "Work", c.Filter())
}

func TestController_SetFilter_EmptyMeansAll(t *testing.T) {
	// Setup
	c := newTestController(testutil.NewFakeGateway())

	// Execute
	c.SetFilter("")

	// Assert
	assert.Equal(t, domain.CategoryAll, c.Filter())
}

func TestController_Categories_DerivedFromCollection(t *testing.T) {
	// Setup
	gw := testutil.NewFakeGateway()
	gw.Seed("owner-1", "Laundry", "Home", false)
	gw.Seed("owner-1", "Report", "Work", false)
	gw.Seed("owner-1", "Untagged", "", false)
	c := newTestController(gw)
	require.NoError(t, c.Refresh(context.Background(), sessionFor("owner-1")))

	// Execute
	got := c.Categories()

	// Assert: All sentinel first, distinct non-empty categories after
	require.Len(t, got, 3)
	assert.Equal(t, domain.CategoryAll, got[0])
	assert.ElementsMatch(t, []string{"Home", "Work"}, got[1:])
}

func TestController_Clear_DropsStateAndFilter(t *testing.T) {
	// Setup
	gw := testutil.NewFakeGateway()
	gw.Seed("owner-1", "Gone after sign-out", "Work", false)
	c := newTestController(gw)
	sess := sessionFor("owner-1")
	c.SetFilter("Work")
	require.NoError(t, c.Refresh(context.Background(), sess))
	require.NotEmpty(t, c.Tasks())

	// Execute
	c.Clear()

	// Assert
	assert.Empty(t, c.Tasks())
	assert.Equal(t, domain.CategoryAll, c.Filter())
}

func TestController_ConcurrentRefreshesConverge(t *testing.T) {
	// Setup
	gw := testutil.NewFakeGateway()
	gw.Seed("owner-1", "Stable", "", false)
	c := newTestController(gw)
	sess := sessionFor("owner-1")

	// Execute: many racing refreshes
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Refresh(context.Background(), sess)
		}()
	}
	wg.Wait()

	// Assert: no refresh is in flight and the collection is consistent
	fetching, mutating := c.Busy()
	assert.False(t, fetching)
	assert.False(t, mutating)
	tasks := c.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Stable", tasks[0].Title)
}

func TestController_Refresh_StaleResponseDiscarded(t *testing.T) {
	// Setup: the first fetch reads the store, then stalls until a later
	// fetch has been applied.
	gw := testutil.NewFakeGateway()
	gw.Seed("owner-1", "Old snapshot", "", false)
	c := newTestController(gw)
	sess := sessionFor("owner-1")

	firstStalled := make(chan struct{})
	release := make(chan struct{})
	gw.ListHook = func(call int) {
		if call == 1 {
			close(firstStalled)
			<-release
		}
	}

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- c.Refresh(context.Background(), sess)
	}()
	<-firstStalled

	// The store changes and a newer refresh completes while the first
	// response is still in flight.
	gw.Seed("owner-1", "New snapshot", "", false)
	require.NoError(t, c.Refresh(context.Background(), sess))
	require.Len(t, c.Tasks(), 2)

	// Execute: the stalled response arrives last
	close(release)
	require.NoError(t, <-firstDone)

	// Assert: the out-of-date snapshot was discarded
	tasks := c.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "New snapshot", tasks[0].Title)
	assert.Equal(t, "Old snapshot", tasks[1].Title)
}

func TestController_TaskLifecycle(t *testing.T) {
	// Setup
	gw := testutil.NewFakeGateway()
	c := newTestController(gw)
	sess := sessionFor("user-user@example.com")
	ctx := context.Background()

	// Create
	require.NoError(t, c.Create(ctx, sess, domain.Draft{Title: "Buy milk", Category: "Home"}))
	tasks := c.Tasks()
	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].Complete)
	assert.Equal(t, "Home", tasks[0].Category)

	// Toggle
	require.NoError(t, c.ToggleComplete(ctx, sess, tasks[0].ID, tasks[0].Complete))
	tasks = c.Tasks()
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Complete)

	// Edit the title; category and completion stay put
	require.NoError(t, c.Update(ctx, sess, domain.Draft{
		TaskID:   tasks[0].ID,
		Title:    "Buy oat milk",
		Category: tasks[0].Category,
	}))
	tasks = c.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy oat milk", tasks[0].Title)
	assert.Equal(t, "Home", tasks[0].Category)
	assert.True(t, tasks[0].Complete)

	// Delete
	require.NoError(t, c.Delete(ctx, sess, tasks[0].ID))
	assert.Empty(t, c.Tasks())
}

func TestController_Refresh_NoSession(t *testing.T) {
	// Setup
	c := newTestController(testutil.NewFakeGateway())

	// Execute
	err := c.Refresh(context.Background(), nil)

	// Assert
	assert.ErrorIs(t, err, domain.ErrNotSignedIn)
}
