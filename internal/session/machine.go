// Package session holds the client-side poll session core: one state
// machine per connection that ingests server-pushed events and local
// actions, and derives a single authoritative phase plus payload.
package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"pollroom/internal/domain"
	"pollroom/internal/timer"
)

// Emitter sends an outward action to the transport. Emission is
// fire-and-forget: the machine never waits for an acknowledgment, and
// eventual correction arrives as a later event.
type Emitter interface {
	Emit(action domain.Action) error
}

// Machine is the poll session state machine for one connection,
// parameterized by role. All mutation funnels through Apply and Do.
type Machine struct {
	role   domain.Role
	anchor *timer.Anchor
	logger *slog.Logger

	mu           sync.Mutex
	state        State
	emitter      Emitter
	onTransition func(from, to domain.Phase)
	onServerErr  func(message string)
}

// NewMachine creates a machine in the AwaitingRegistration phase.
// anchor may be nil when no countdown display is needed.
func NewMachine(role domain.Role, anchor *timer.Anchor, logger *slog.Logger) *Machine {
	return &Machine{
		role:   role,
		anchor: anchor,
		logger: logger,
		state:  State{Phase: domain.PhaseAwaitingRegistration},
	}
}

// Role returns the role this machine was created with
func (m *Machine) Role() domain.Role {
	return m.role
}

// AttachEmitter wires the transport used for outward actions
func (m *Machine) AttachEmitter(e Emitter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emitter = e
}

// OnTransition registers a hook invoked after every phase change
func (m *Machine) OnTransition(hook func(from, to domain.Phase)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTransition = hook
}

// OnServerError registers a hook for server-reported errors, which are
// surfaced to the user without mutating session state
func (m *Machine) OnServerError(hook func(message string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onServerErr = hook
}

// Snapshot returns a deep copy of the current state. The countdown is
// recomputed from the anchor while a poll is running.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	st := m.state.clone()
	m.mu.Unlock()

	if m.anchor != nil && (st.Phase == domain.PhasePollActive || st.Phase == domain.PhaseAnsweredAwaiting) {
		st.TimeLeftSeconds = m.anchor.TimeLeft()
	}
	return st
}

// Phase returns the current phase
func (m *Machine) Phase() domain.Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Phase
}

// Apply ingests one server-pushed event. Malformed or unexpected
// events are absorbed without crashing the machine; the worst outcome
// is a stale display corrected by the next valid snapshot.
func (m *Machine) Apply(event domain.Event) {
	if e, ok := event.(domain.ServerError); ok {
		m.logger.Error("server reported error", "message", e.Message)
		m.mu.Lock()
		hook := m.onServerErr
		m.mu.Unlock()
		if hook != nil {
			hook(e.Message)
		}
		return
	}

	m.mu.Lock()
	from := m.state.Phase
	m.applyLocked(event)
	to := m.state.Phase
	hook := m.onTransition
	m.mu.Unlock()

	if hook != nil && from != to {
		hook(from, to)
	}
}

// Do runs a locally initiated action: gate it, record any optimistic
// effect, then emit it outward. A rejected action returns an error and
// sends nothing.
func (m *Machine) Do(action domain.Action) error {
	m.mu.Lock()
	from := m.state.Phase

	if err := Allowed(action, m.role, &m.state); err != nil {
		m.mu.Unlock()
		return err
	}
	emitter := m.emitter
	if emitter == nil {
		m.mu.Unlock()
		return domain.ErrNotConnected
	}

	switch act := action.(type) {
	case domain.RegisterClient:
		act.Role = m.role
		action = act

	case domain.SubmitAnswer:
		// Optimistic: leave PollActive without waiting for an ack. The
		// active poll id is authoritative, whatever the caller set.
		act.PollID = m.state.ActivePoll.ID
		action = act
		m.state.AnsweredOptionID = act.OptionID
		m.setPhase(domain.PhaseAnsweredAwaiting)

	case domain.SendMessage:
		act.ID = uuid.NewString()
		if id := m.state.Identity; id != nil {
			act.SenderID = id.ConnectionID
			act.SenderName = id.DisplayName
			act.SenderRole = id.Role
		}
		action = act
	}

	to := m.state.Phase
	hook := m.onTransition
	m.mu.Unlock()

	if hook != nil && from != to {
		hook(from, to)
	}
	return emitter.Emit(action)
}

func (m *Machine) applyLocked(event domain.Event) {
	if m.state.Phase.IsTerminal() {
		m.logger.Debug("event dropped in terminal phase", "event", event.EventType())
		return
	}

	switch e := event.(type) {
	case domain.RegistrationAck:
		if m.state.Phase != domain.PhaseAwaitingRegistration {
			m.logger.Debug("duplicate registration ack ignored")
			return
		}
		id := e.Identity
		m.state.Identity = &id
		m.setPhase(domain.PhaseIdle)

	case domain.InitialPollState:
		m.adoptSnapshot(e)

	case domain.NewPoll:
		if m.state.Phase == domain.PhaseAwaitingRegistration {
			m.logger.Warn("newPoll before registration ignored", "pollId", e.Poll.ID)
			return
		}
		m.beginPoll(e.Poll)

	case domain.PollStateUpdate:
		inPoll := m.state.Phase == domain.PhasePollActive || m.state.Phase == domain.PhaseAnsweredAwaiting
		if !inPoll || m.state.ActivePoll == nil || m.state.ActivePoll.ID != e.PollID {
			m.logger.Debug("stale poll state update ignored", "pollId", e.PollID)
			return
		}
		m.state.Tally = e.Tally.Clone()
		m.state.TimeLeftSeconds = e.TimeLeftSeconds
		if m.anchor != nil {
			m.anchor.Correct(e.TimeLeftSeconds)
		}

	case domain.PollEnded:
		m.endPoll(e)

	case domain.RosterUpdate:
		roster := make([]domain.Participant, len(e.Roster))
		copy(roster, e.Roster)
		m.state.Roster = roster

	case domain.ChatReceived:
		m.state.ChatLog = append(m.state.ChatLog, e.Message)

	case domain.KickedOut:
		if m.role != domain.RoleStudent {
			m.logger.Warn("kickedOut for non-student ignored", "reason", e.Reason)
			return
		}
		m.logger.Info("kicked out of session", "reason", e.Reason)
		m.clearPoll()
		m.state.Identity = nil
		m.setPhase(domain.PhaseKickedOut)

	case domain.Disconnected:
		m.clearPoll()
		m.state.Identity = nil
		m.state.Roster = nil
		m.setPhase(domain.PhaseAwaitingRegistration)

	default:
		m.logger.Warn("unknown event ignored", "event", event.EventType())
	}
}

// adoptSnapshot re-seeds the machine from an initialPollState payload.
// The snapshot wins wholesale; it is what makes reconnects safe.
func (m *Machine) adoptSnapshot(e domain.InitialPollState) {
	if m.state.Phase == domain.PhaseAwaitingRegistration {
		// The server only sends a snapshot to registered clients.
		m.setPhase(domain.PhaseIdle)
	}

	if e.Roster != nil {
		m.state.Roster = append([]domain.Participant(nil), e.Roster...)
	}
	if e.PollHistory != nil {
		m.state.PollHistory = append([]domain.EndedPoll(nil), e.PollHistory...)
	}

	if e.CurrentPoll == nil {
		m.clearPoll()
		m.setPhase(domain.PhaseIdle)
		return
	}

	m.state.ActivePoll = e.CurrentPoll.Clone()
	if e.Tally != nil {
		m.state.Tally = e.Tally.Clone()
	} else {
		m.state.Tally = domain.ZeroTally(e.CurrentPoll.Options)
	}
	m.state.AnsweredOptionID = ""
	m.state.TimeLeftSeconds = e.TimeLeftSeconds
	if m.anchor != nil {
		m.anchor.Start(e.CurrentPoll.StartAt(), e.CurrentPoll.DurationSeconds)
		m.anchor.Correct(e.TimeLeftSeconds)
	}
	m.setPhase(domain.PhasePollActive)
}

// beginPoll adopts a server-echoed poll as the active one. A new poll
// preempts an unresolved answered-state or a results display.
func (m *Machine) beginPoll(poll domain.PollDefinition) {
	if m.state.ActivePoll != nil && m.state.ActivePoll.ID != poll.ID {
		m.logger.Warn("new poll preempts the active one",
			"pollId", poll.ID,
			"previousPollId", m.state.ActivePoll.ID,
		)
	}

	m.state.ActivePoll = poll.Clone()
	m.state.Tally = domain.ZeroTally(poll.Options)
	m.state.AnsweredOptionID = ""
	m.state.TimeLeftSeconds = poll.DurationSeconds
	if m.anchor != nil {
		m.anchor.Start(poll.StartAt(), poll.DurationSeconds)
	}
	m.setPhase(domain.PhasePollActive)
}

// endPoll archives the active poll and its final tally. Duplicate
// deliveries are no-ops; an id mismatch against a live poll is ignored
// as stale.
func (m *Machine) endPoll(e domain.PollEnded) {
	if m.state.Phase == domain.PhaseAwaitingRegistration {
		m.logger.Debug("pollEnded before registration ignored", "pollId", e.PollID)
		return
	}
	if m.state.LastEndedPoll != nil && m.state.LastEndedPoll.Poll.ID == e.PollID {
		m.logger.Debug("duplicate pollEnded ignored", "pollId", e.PollID)
		return
	}
	active := m.state.ActivePoll
	if active != nil && active.ID != e.PollID {
		m.logger.Warn("pollEnded for a different poll ignored",
			"pollId", e.PollID,
			"activePollId", active.ID,
		)
		return
	}
	if active == nil && e.Question == "" && len(e.Options) == 0 {
		// A poll we never tracked ended and there is nothing to show.
		m.clearPoll()
		m.setPhase(domain.PhaseIdle)
		return
	}

	var poll domain.PollDefinition
	if active != nil {
		poll = *active.Clone()
	} else {
		poll = domain.PollDefinition{
			ID:       e.PollID,
			Question: e.Question,
			Options:  append([]domain.Option(nil), e.Options...),
		}
	}
	ended := domain.EndedPoll{Poll: poll, Tally: e.FinalTally.Clone()}
	m.state.LastEndedPoll = &ended
	m.clearPoll()

	if m.role.IsTeacher() {
		m.state.PollHistory = append(m.state.PollHistory, ended)
	}

	switch m.state.Phase {
	case domain.PhasePollActive, domain.PhaseAnsweredAwaiting:
		if m.role.IsTeacher() {
			m.setPhase(domain.PhaseIdle)
		} else {
			m.setPhase(domain.PhaseResultsShown)
		}
	}
}

func (m *Machine) clearPoll() {
	m.state.ActivePoll = nil
	m.state.Tally = nil
	m.state.AnsweredOptionID = ""
	m.state.TimeLeftSeconds = 0
	if m.anchor != nil {
		m.anchor.Stop()
	}
}

// setPhase performs a phase change, suppressing anything the
// transition table does not allow
func (m *Machine) setPhase(to domain.Phase) {
	from := m.state.Phase
	if from == to {
		return
	}
	if !from.CanTransitionTo(to) {
		m.logger.Warn("illegal phase transition suppressed", "from", from, "to", to)
		return
	}
	m.state.Phase = to
	m.logger.Info("phase changed", "from", from, "to", to)
}
