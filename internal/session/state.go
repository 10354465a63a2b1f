package session

import "pollroom/internal/domain"

// State is the single value owned by one Machine per connection.
// Nothing outside the machine mutates it; collaborators submit events
// and read a snapshot.
type State struct {
	Phase            domain.Phase
	Identity         *domain.ClientIdentity
	ActivePoll       *domain.PollDefinition
	Tally            domain.VoteTally
	AnsweredOptionID string
	TimeLeftSeconds  int
	LastEndedPoll    *domain.EndedPoll
	PollHistory      []domain.EndedPoll
	Roster           []domain.Participant
	ChatLog          []domain.ChatMessage
}

// clone returns a deep copy safe to hand to readers
func (s *State) clone() State {
	cp := *s

	if s.Identity != nil {
		id := *s.Identity
		cp.Identity = &id
	}
	cp.ActivePoll = s.ActivePoll.Clone()
	cp.Tally = s.Tally.Clone()
	if s.LastEndedPoll != nil {
		ended := domain.EndedPoll{
			Poll:  *s.LastEndedPoll.Poll.Clone(),
			Tally: s.LastEndedPoll.Tally.Clone(),
		}
		cp.LastEndedPoll = &ended
	}
	if s.PollHistory != nil {
		cp.PollHistory = make([]domain.EndedPoll, len(s.PollHistory))
		copy(cp.PollHistory, s.PollHistory)
	}
	if s.Roster != nil {
		cp.Roster = make([]domain.Participant, len(s.Roster))
		copy(cp.Roster, s.Roster)
	}
	if s.ChatLog != nil {
		cp.ChatLog = make([]domain.ChatMessage, len(s.ChatLog))
		copy(cp.ChatLog, s.ChatLog)
	}

	return cp
}
