package session

import (
	"fmt"
	"strings"

	"pollroom/internal/domain"
)

// Allowed reports whether a local action is permitted for the given
// role and state. A disallowed action surfaces an error to the caller;
// it is never silently dropped, and nothing is sent outward for it.
func Allowed(action domain.Action, role domain.Role, st *State) error {
	if st.Phase == domain.PhaseKickedOut {
		return domain.ErrKicked
	}

	switch act := action.(type) {
	case domain.RegisterClient:
		if st.Phase != domain.PhaseAwaitingRegistration {
			return domain.ErrAlreadyRegistered
		}
		return nil

	case domain.CreatePoll:
		if role != domain.RoleTeacher {
			return domain.ErrNotTeacher
		}
		switch st.Phase {
		case domain.PhaseIdle, domain.PhaseResultsShown:
		case domain.PhaseAwaitingRegistration:
			return domain.ErrNotRegistered
		default:
			return domain.ErrPollActive
		}
		return domain.ValidatePollDraft(act.Question, act.Options, act.DurationSeconds)

	case domain.SubmitAnswer:
		if role != domain.RoleStudent {
			return domain.ErrNotStudent
		}
		if st.AnsweredOptionID != "" {
			return domain.ErrAlreadyAnswered
		}
		if st.Phase != domain.PhasePollActive || st.ActivePoll == nil {
			return domain.ErrNoActivePoll
		}
		if !st.ActivePoll.HasOption(act.OptionID) {
			return domain.ErrUnknownOption
		}
		return nil

	case domain.EndPoll:
		if role != domain.RoleTeacher {
			return domain.ErrNotTeacher
		}
		if st.Phase != domain.PhasePollActive {
			return domain.ErrNoActivePoll
		}
		return nil

	case domain.KickStudent:
		if role != domain.RoleTeacher {
			return domain.ErrNotTeacher
		}
		for _, p := range st.Roster {
			if p.ConnectionID == act.ConnectionID && p.Role == domain.RoleStudent {
				return nil
			}
		}
		return domain.ErrTargetNotStudent

	case domain.SendMessage:
		if st.Phase == domain.PhaseAwaitingRegistration {
			return domain.ErrNotRegistered
		}
		if strings.TrimSpace(act.Text) == "" {
			return domain.ErrEmptyMessage
		}
		return nil

	default:
		return fmt.Errorf("unknown action %q", action.ActionType())
	}
}
