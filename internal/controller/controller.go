// Package controller implements the task synchronization controller: it
// owns the in-memory task collection for the signed-in user and keeps it
// consistent with the remote store by re-fetching the full filtered
// collection after every successful mutation. The client never patches
// local state from a predicted result, so there is no reconciliation
// between a local guess and the store's answer; the store is always the
// source of truth and the cost is one extra round trip per mutation.
package controller

import (
	"context"
	"log/slog"
	"sync"

	"minitodo/internal/domain"
	"minitodo/internal/usecase"
)

// Controller sequences fetches and mutations against the remote store.
//
// Methods block until the gateway answers and may be called from
// concurrent goroutines (the TUI runs each one inside a command); state is
// guarded by a mutex and refreshes carry a sequence number so a slow
// response can never overwrite the result of a newer one.
// Fields are ordered to minimize memory padding.
type Controller struct {
	list   *usecase.ListTasks
	create *usecase.CreateTask
	edit   *usecase.EditTask
	del    *usecase.DeleteTask
	toggle *usecase.ToggleTask
	logger *slog.Logger

	tasks    []domain.Task
	filter   string
	mu       sync.Mutex
	nextSeq  uint64 // Next refresh sequence number
	applied  uint64 // Sequence number of the last applied refresh
	fetching int    // Outstanding refreshes
	mutating int    // Outstanding mutations
}

// New creates a Controller.
func New(
	list *usecase.ListTasks,
	create *usecase.CreateTask,
	edit *usecase.EditTask,
	del *usecase.DeleteTask,
	toggle *usecase.ToggleTask,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		list:   list,
		create: create,
		edit:   edit,
		del:    del,
		toggle: toggle,
		logger: logger,
		filter: domain.CategoryAll,
	}
}

// Tasks returns a copy of the current task collection.
func (c *Controller) Tasks() []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	tasks := make([]domain.Task, len(c.tasks))
	copy(tasks, c.tasks)
	return tasks
}

// Categories returns the filter choices derived from the current
// collection: the distinct categories present, behind the All sentinel.
func (c *Controller) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Categories(c.tasks)
}

// Filter returns the active category filter.
func (c *Controller) Filter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// SetFilter sets the active category filter. The caller follows up with
// Refresh; changing the filter alone does not touch the collection.
func (c *Controller) SetFilter(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if category == "" {
		category = domain.CategoryAll
	}
	c.filter = category
}

// Busy reports whether a fetch or a mutation is in flight.
func (c *Controller) Busy() (fetching, mutating bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetching > 0, c.mutating > 0
}

// Clear drops all local state. Called on sign-out.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = nil
	c.filter = domain.CategoryAll
}

// Refresh re-fetches the full filtered collection for the session owner
// and replaces the local collection wholesale. On error the previous
// collection is left untouched and the error is returned to the caller.
//
// Concurrent refreshes are allowed to race; each fetch takes a sequence
// number before it starts and its response is applied only if no response
// with a higher number has been applied already, so "last response wins"
// can never regress to an older snapshot.
func (c *Controller) Refresh(ctx context.Context, sess *domain.Session) error {
	c.mu.Lock()
	c.nextSeq++
	seq := c.nextSeq
	filter := c.filter
	c.fetching++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.fetching--
		c.mu.Unlock()
	}()

	out, err := c.list.Execute(ctx, usecase.ListTasksInput{Session: sess, Category: filter})
	if err != nil {
		c.logger.Warn("refresh failed", "error", err)
		return err
	}

	c.mu.Lock()
	if seq > c.applied {
		c.applied = seq
		c.tasks = out.Tasks
	} else {
		c.logger.Debug("discarding stale refresh response", "seq", seq, "applied", c.applied)
	}
	c.mu.Unlock()
	return nil
}

// Create submits a new task and, on success, refreshes the collection.
func (c *Controller) Create(ctx context.Context, sess *domain.Session, draft domain.Draft) error {
	return c.mutateThenRefresh(ctx, sess, func() error {
		_, err := c.create.Execute(ctx, usecase.CreateTaskInput{Session: sess, Draft: draft})
		return err
	})
}

// Update submits title/description/category changes for the task the
// draft references and, on success, refreshes the collection.
func (c *Controller) Update(ctx context.Context, sess *domain.Session, draft domain.Draft) error {
	return c.mutateThenRefresh(ctx, sess, func() error {
		_, err := c.edit.Execute(ctx, usecase.EditTaskInput{Session: sess, Draft: draft})
		return err
	})
}

// Delete removes the task and, on success, refreshes the collection.
func (c *Controller) Delete(ctx context.Context, sess *domain.Session, taskID string) error {
	return c.mutateThenRefresh(ctx, sess, func() error {
		_, err := c.del.Execute(ctx, usecase.DeleteTaskInput{Session: sess, TaskID: taskID})
		return err
	})
}

// ToggleComplete flips the task's completion flag and, on success,
// refreshes the collection.
func (c *Controller) ToggleComplete(ctx context.Context, sess *domain.Session, taskID string, current bool) error {
	return c.mutateThenRefresh(ctx, sess, func() error {
		_, err := c.toggle.Execute(ctx, usecase.ToggleTaskInput{Session: sess, TaskID: taskID, Complete: current})
		return err
	})
}

// mutateThenRefresh is the consistency contract made explicit: run the
// mutation, and only if it succeeds re-fetch the collection. A failed
// mutation leaves the local collection byte-for-byte unchanged.
func (c *Controller) mutateThenRefresh(ctx context.Context, sess *domain.Session, op func() error) error {
	c.mu.Lock()
	c.mutating++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.mutating--
		c.mu.Unlock()
	}()

	if err := op(); err != nil {
		c.logger.Warn("mutation failed", "error", err)
		return err
	}
	return c.Refresh(ctx, sess)
}
