package domain

// EventType identifies a server-pushed event
type EventType string

const (
	EventRegistered       EventType = "registered"
	EventInitialPollState EventType = "initialPollState"
	EventNewPoll          EventType = "newPoll"
	EventPollStateUpdate  EventType = "pollStateUpdate"
	EventPollEnded        EventType = "pollEnded"
	EventUpdateClientList EventType = "updateClientList"
	EventReceiveMessage   EventType = "receiveMessage"
	EventKickedOut        EventType = "kickedOut"
	EventError            EventType = "error"
	EventDisconnected     EventType = "disconnected" // Synthesized by the transport, never on the wire
)

// Event is an input to the session state machine: a server-pushed
// message or a transport-synthesized one. Events carry no behavior;
// the machine owns every transition.
type Event interface {
	EventType() EventType
}

// RegistrationAck confirms the client's identity after registerClient
type RegistrationAck struct {
	Identity ClientIdentity
}

// InitialPollState is the full session snapshot sent once per
// successful registration or reconnect
type InitialPollState struct {
	CurrentPoll     *PollDefinition `json:"currentPoll"`
	Tally           VoteTally       `json:"tally"`
	TimeLeftSeconds int             `json:"timeLeft"`
	Roster          []Participant   `json:"roster"`
	PollHistory     []EndedPoll     `json:"pollHistory"`
}

// NewPoll announces a freshly started poll
type NewPoll struct {
	Poll PollDefinition
}

// PollStateUpdate refreshes the tally and time left of the active poll.
// It never changes which poll is active.
type PollStateUpdate struct {
	PollID          string    `json:"pollId"`
	Tally           VoteTally `json:"tally"`
	TimeLeftSeconds int       `json:"timeLeft"`
}

// PollEnded carries the final tally of a closed poll. Question and
// options are included so a client that missed newPoll can still show
// results.
type PollEnded struct {
	PollID     string    `json:"pollId"`
	FinalTally VoteTally `json:"finalTally"`
	Question   string    `json:"question"`
	Options    []Option  `json:"options"`
}

// RosterUpdate replaces the participant roster wholesale
type RosterUpdate struct {
	Roster []Participant `json:"roster"`
}

// ChatReceived appends one message to the chat log
type ChatReceived struct {
	Message ChatMessage
}

// KickedOut tells a student they were removed by the teacher
type KickedOut struct {
	Reason string `json:"reason"`
}

// ServerError surfaces a server-reported error to the user. It never
// mutates session state.
type ServerError struct {
	Message string `json:"message"`
}

// Disconnected is synthesized by the transport when the connection
// drops for any reason other than a kick
type Disconnected struct{}

func (RegistrationAck) EventType() EventType   { return EventRegistered }
func (InitialPollState) EventType() EventType  { return EventInitialPollState }
func (NewPoll) EventType() EventType           { return EventNewPoll }
func (PollStateUpdate) EventType() EventType   { return EventPollStateUpdate }
func (PollEnded) EventType() EventType         { return EventPollEnded }
func (RosterUpdate) EventType() EventType      { return EventUpdateClientList }
func (ChatReceived) EventType() EventType      { return EventReceiveMessage }
func (KickedOut) EventType() EventType         { return EventKickedOut }
func (ServerError) EventType() EventType       { return EventError }
func (Disconnected) EventType() EventType      { return EventDisconnected }
