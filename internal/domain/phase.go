package domain

// Phase represents the current phase of a poll session as seen by one client
type Phase string

const (
	PhaseAwaitingRegistration Phase = "AWAITING_REGISTRATION" // Connected, identity not confirmed yet
	PhaseIdle                 Phase = "IDLE"                  // Registered, no poll running
	PhasePollActive           Phase = "POLL_ACTIVE"           // A poll is open for answers
	PhaseAnsweredAwaiting     Phase = "ANSWERED_AWAITING"     // Student answered, waiting for the poll to close
	PhaseResultsShown         Phase = "RESULTS_SHOWN"         // Final tally of the last poll on display
	PhaseKickedOut            Phase = "KICKED_OUT"            // Removed by the teacher; terminal
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// IsTerminal returns true if no event can leave this phase
func (p Phase) IsTerminal() bool {
	return p == PhaseKickedOut
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseAwaitingRegistration: {PhaseIdle, PhasePollActive, PhaseKickedOut},
		PhaseIdle:                 {PhasePollActive, PhaseAwaitingRegistration, PhaseKickedOut},
		PhasePollActive:           {PhaseAnsweredAwaiting, PhaseResultsShown, PhaseIdle, PhaseAwaitingRegistration, PhaseKickedOut},
		PhaseAnsweredAwaiting:     {PhasePollActive, PhaseResultsShown, PhaseIdle, PhaseAwaitingRegistration, PhaseKickedOut},
		PhaseResultsShown:         {PhasePollActive, PhaseIdle, PhaseAwaitingRegistration, PhaseKickedOut},
		PhaseKickedOut:            {},
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}
