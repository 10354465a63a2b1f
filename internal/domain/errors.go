package domain

import "errors"

// Domain errors
var (
	ErrNotRegistered     = errors.New("client is not registered")
	ErrAlreadyRegistered = errors.New("client is already registered")
	ErrNotTeacher        = errors.New("only the teacher can perform this action")
	ErrNotStudent        = errors.New("only a student can perform this action")
	ErrPollActive        = errors.New("a poll is already active")
	ErrNoActivePoll      = errors.New("no poll is currently active")
	ErrAlreadyAnswered   = errors.New("already answered this poll")
	ErrUnknownOption     = errors.New("option does not belong to the active poll")
	ErrTargetNotStudent  = errors.New("kick target is not a student in the roster")
	ErrKicked            = errors.New("removed from the session")
	ErrNotConnected      = errors.New("no transport attached")
	ErrEmptyMessage      = errors.New("message cannot be empty")

	// Poll draft validation
	ErrEmptyQuestion    = errors.New("question cannot be empty")
	ErrQuestionTooLong  = errors.New("question exceeds the maximum length")
	ErrNotEnoughOptions = errors.New("a poll needs at least two options")
	ErrEmptyOption      = errors.New("option text cannot be empty")
	ErrOptionTooLong    = errors.New("option text exceeds the maximum length")
	ErrNoCorrectOption  = errors.New("at least one option must be marked correct")
	ErrInvalidDuration  = errors.New("duration is not one of the allowed values")
)
