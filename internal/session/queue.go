package session

import (
	"errors"
	"log/slog"
	"sync"

	"pollroom/internal/domain"
)

// Size of the input channel buffer
const queueBufferSize = 256

// ErrQueueClosed is returned when an action is dispatched after Close
var ErrQueueClosed = errors.New("session queue closed")

// Queue is the ordered intake of server events and local actions. A
// single drain goroutine applies them one at a time, so no two machine
// transitions ever execute concurrently.
type Queue struct {
	machine *Machine
	inputs  chan queued
	done    chan struct{}
	once    sync.Once
	logger  *slog.Logger
}

type queued struct {
	event  domain.Event
	action domain.Action
	reply  chan error
}

// NewQueue creates a queue and starts its drain goroutine
func NewQueue(machine *Machine, logger *slog.Logger) *Queue {
	q := &Queue{
		machine: machine,
		inputs:  make(chan queued, queueBufferSize),
		done:    make(chan struct{}),
		logger:  logger,
	}
	go q.run()
	return q
}

// Push enqueues a server event. A full buffer drops the event with a
// warning; the next snapshot corrects whatever was missed.
func (q *Queue) Push(event domain.Event) {
	select {
	case <-q.done:
	case q.inputs <- queued{event: event}:
	default:
		q.logger.Warn("event queue full, dropping event", "event", event.EventType())
	}
}

// Dispatch runs a local action through the queue and returns its
// synchronous verdict.
func (q *Queue) Dispatch(action domain.Action) error {
	reply := make(chan error, 1)
	select {
	case <-q.done:
		return ErrQueueClosed
	case q.inputs <- queued{action: action, reply: reply}:
	}

	select {
	case <-q.done:
		return ErrQueueClosed
	case err := <-reply:
		return err
	}
}

// Close stops the drain goroutine. Pending inputs are discarded.
func (q *Queue) Close() {
	q.once.Do(func() {
		close(q.done)
	})
}

func (q *Queue) run() {
	for {
		select {
		case <-q.done:
			return
		case in := <-q.inputs:
			if in.action != nil {
				in.reply <- q.machine.Do(in.action)
			} else {
				q.machine.Apply(in.event)
			}
		}
	}
}
