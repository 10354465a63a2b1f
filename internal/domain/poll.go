package domain

import "time"

// Poll form limits
const (
	MaxQuestionLength = 100
	MaxOptionLength   = 50
	MinOptions        = 2
)

// DurationPresets are the poll durations the teacher form offers, in seconds
var DurationPresets = []int{30, 45, 60, 90, 120}

// Option is a single answer choice of a poll. IsCorrect is nil when the
// designer has not decided correctness; the client never computes it.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect *bool  `json:"isCorrect"`
}

// PollDefinition describes one poll as echoed back by the server. The
// server-echoed copy is the authoritative one; locally composed drafts
// only exist inside a createPoll action.
type PollDefinition struct {
	ID              string   `json:"id"`
	Question        string   `json:"question"`
	Options         []Option `json:"options"`
	DurationSeconds int      `json:"durationSeconds"`
	StartTimeMillis int64    `json:"startTime"`
}

// StartAt returns the poll start time as a time.Time
func (p *PollDefinition) StartAt() time.Time {
	return time.UnixMilli(p.StartTimeMillis)
}

// HasOption returns true if the given option id belongs to this poll
func (p *PollDefinition) HasOption(optionID string) bool {
	for _, opt := range p.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the poll
func (p *PollDefinition) Clone() *PollDefinition {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Options = make([]Option, len(p.Options))
	copy(cp.Options, p.Options)
	return &cp
}

// VoteTally maps option ids to vote counts. It is always a full
// replacement snapshot from the server, never incremented locally.
type VoteTally map[string]int

// Clone returns a copy of the tally
func (t VoteTally) Clone() VoteTally {
	if t == nil {
		return nil
	}
	cp := make(VoteTally, len(t))
	for id, count := range t {
		cp[id] = count
	}
	return cp
}

// Total returns the sum of all counts
func (t VoteTally) Total() int {
	total := 0
	for _, count := range t {
		total += count
	}
	return total
}

// ZeroTally builds a tally with a zero count for every option
func ZeroTally(options []Option) VoteTally {
	tally := make(VoteTally, len(options))
	for _, opt := range options {
		tally[opt.ID] = 0
	}
	return tally
}

// EndedPoll pairs a finished poll with its final tally
type EndedPoll struct {
	Poll  PollDefinition `json:"poll"`
	Tally VoteTally      `json:"tally"`
}

// OptionDraft is an answer choice in a locally composed poll draft
type OptionDraft struct {
	Text      string `json:"text"`
	IsCorrect *bool  `json:"isCorrect"`
}

// ValidatePollDraft checks a locally composed poll before it is sent to
// the server. Mirrors the teacher form rules.
func ValidatePollDraft(question string, options []OptionDraft, durationSeconds int) error {
	if question == "" {
		return ErrEmptyQuestion
	}
	if len(question) > MaxQuestionLength {
		return ErrQuestionTooLong
	}
	if len(options) < MinOptions {
		return ErrNotEnoughOptions
	}
	hasCorrect := false
	for _, opt := range options {
		if opt.Text == "" {
			return ErrEmptyOption
		}
		if len(opt.Text) > MaxOptionLength {
			return ErrOptionTooLong
		}
		if opt.IsCorrect != nil && *opt.IsCorrect {
			hasCorrect = true
		}
	}
	if !hasCorrect {
		return ErrNoCorrectOption
	}
	for _, d := range DurationPresets {
		if durationSeconds == d {
			return nil
		}
	}
	return ErrInvalidDuration
}
