package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Task is one unit of background work with a name for log correlation.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher runs tasks on a background worker so that request handlers can
// hand off work without waiting on it. The queue is bounded: when it is full,
// Dispatch refuses the task and the caller decides what to log.
type Dispatcher struct {
	tasks       chan queuedTask
	taskTimeout time.Duration
}

type queuedTask struct {
	id   string
	task Task
}

// NewDispatcher creates a dispatcher with the given queue capacity. Each task
// runs under its own context bounded by taskTimeout.
func NewDispatcher(queueSize int, taskTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		tasks:       make(chan queuedTask, queueSize),
		taskTimeout: taskTimeout,
	}
}

// Run starts the worker loop. It returns when the task channel is closed.
func (d *Dispatcher) Run() {
	for qt := range d.tasks {
		d.run(qt)
	}
}

// Dispatch enqueues a task without blocking. It returns false when the queue
// is full and the task was dropped.
func (d *Dispatcher) Dispatch(task Task) bool {
	qt := queuedTask{id: uuid.NewString(), task: task}
	select {
	case d.tasks <- qt:
		return true
	default:
		log.Printf("❌ [DISPATCH] Queue full, dropped task %s (%s)", qt.task.Name, qt.id)
		return false
	}
}

// Stop closes the queue; Run drains remaining tasks and returns.
func (d *Dispatcher) Stop() {
	close(d.tasks)
}

func (d *Dispatcher) run(qt queuedTask) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ [DISPATCH] Task %s (%s) panicked: %v", qt.task.Name, qt.id, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.taskTimeout)
	defer cancel()

	if err := qt.task.Run(ctx); err != nil {
		log.Printf("❌ [DISPATCH] Task %s (%s) failed: %v", qt.task.Name, qt.id, err)
	}
}
