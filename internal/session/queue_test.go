package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pollroom/internal/domain"
)

func TestQueueSerializesEventsAndActions(t *testing.T) {
	m, emitter := newTestMachine(t, domain.RoleStudent)
	q := NewQueue(m, testLogger())
	defer q.Close()

	q.Push(domain.RegistrationAck{Identity: domain.ClientIdentity{ConnectionID: "c1", Role: domain.RoleStudent}})
	q.Push(domain.NewPoll{Poll: testPoll("p1")})

	// Dispatch goes through the same channel, so by the time it
	// returns both pushed events have been applied in order.
	err := q.Dispatch(domain.SubmitAnswer{OptionID: "o1"})
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseAnsweredAwaiting, m.Phase())
	assert.Len(t, emitter.all(), 1)
}

func TestQueueDispatchSurfacesRejections(t *testing.T) {
	m, emitter := newTestMachine(t, domain.RoleStudent)
	q := NewQueue(m, testLogger())
	defer q.Close()

	q.Push(domain.RegistrationAck{Identity: domain.ClientIdentity{ConnectionID: "c1", Role: domain.RoleStudent}})

	err := q.Dispatch(domain.SubmitAnswer{OptionID: "o1"})
	assert.ErrorIs(t, err, domain.ErrNoActivePoll)
	assert.Empty(t, emitter.all())
}

func TestQueueClosedDispatch(t *testing.T) {
	m, _ := newTestMachine(t, domain.RoleStudent)
	q := NewQueue(m, testLogger())
	q.Close()
	q.Close() // idempotent

	err := q.Dispatch(domain.EndPoll{})
	assert.ErrorIs(t, err, ErrQueueClosed)

	// Push after close must not block or panic.
	done := make(chan struct{})
	go func() {
		q.Push(domain.NewPoll{Poll: testPoll("p1")})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("push after close blocked")
	}
}
