package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_RunsTask(t *testing.T) {
	d := NewDispatcher(4, time.Second)
	go d.Run()
	defer d.Stop()

	done := make(chan struct{})
	ok := d.Dispatch(Task{Name: "test", Run: func(ctx context.Context) error {
		close(done)
		return nil
	}})
	require.True(t, ok)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran")
	}
}

func TestDispatcher_RefusesWhenQueueFull(t *testing.T) {
	// Worker not started: the buffer absorbs exactly queueSize tasks.
	d := NewDispatcher(2, time.Second)

	noop := Task{Name: "noop", Run: func(ctx context.Context) error { return nil }}
	assert.True(t, d.Dispatch(noop))
	assert.True(t, d.Dispatch(noop))
	assert.False(t, d.Dispatch(noop))
}

func TestDispatcher_SurvivesPanicAndError(t *testing.T) {
	d := NewDispatcher(4, time.Second)
	go d.Run()
	defer d.Stop()

	d.Dispatch(Task{Name: "panics", Run: func(ctx context.Context) error {
		panic("boom")
	}})
	d.Dispatch(Task{Name: "fails", Run: func(ctx context.Context) error {
		return errors.New("nope")
	}})

	done := make(chan struct{})
	d.Dispatch(Task{Name: "after", Run: func(ctx context.Context) error {
		close(done)
		return nil
	}})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive earlier failures")
	}
}

func TestDispatcher_TaskContextHasDeadline(t *testing.T) {
	d := NewDispatcher(1, 50*time.Millisecond)
	go d.Run()
	defer d.Stop()

	deadlines := make(chan bool, 1)
	d.Dispatch(Task{Name: "deadline", Run: func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		deadlines <- ok
		return nil
	}})

	select {
	case hasDeadline := <-deadlines:
		assert.True(t, hasDeadline)
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran")
	}
}
