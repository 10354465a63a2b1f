package domain

// ActionType identifies an outbound action. The values double as wire
// message types.
type ActionType string

const (
	ActionRegisterClient ActionType = "registerClient"
	ActionCreatePoll     ActionType = "createPoll"
	ActionSubmitAnswer   ActionType = "submitAnswer"
	ActionEndPoll        ActionType = "endPoll"
	ActionKickStudent    ActionType = "kickStudent"
	ActionSendMessage    ActionType = "sendMessage"
)

// Action is a locally initiated operation. Actions are gated by role
// and phase before anything is sent outward; an emitted action is
// fire-and-forget, corrected later by server events.
type Action interface {
	ActionType() ActionType
}

// RegisterClient announces the client's role and display name
type RegisterClient struct {
	Role        Role   `json:"role"`
	DisplayName string `json:"name"`
}

// CreatePoll submits a locally composed poll draft (teacher only)
type CreatePoll struct {
	Question        string        `json:"question"`
	Options         []OptionDraft `json:"options"`
	DurationSeconds int           `json:"duration"`
}

// SubmitAnswer casts this student's single answer for the active poll
type SubmitAnswer struct {
	PollID   string `json:"pollId"`
	OptionID string `json:"optionId"`
}

// EndPoll closes the active poll early (teacher only)
type EndPoll struct{}

// KickStudent removes a student from the session (teacher only)
type KickStudent struct {
	ConnectionID string `json:"connectionId"`
}

// SendMessage posts to the side chat. Sender fields are filled in from
// the registered identity.
type SendMessage struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	SenderRole Role   `json:"senderRole"`
	Text       string `json:"message"`
}

func (RegisterClient) ActionType() ActionType { return ActionRegisterClient }
func (CreatePoll) ActionType() ActionType     { return ActionCreatePoll }
func (SubmitAnswer) ActionType() ActionType   { return ActionSubmitAnswer }
func (EndPoll) ActionType() ActionType        { return ActionEndPoll }
func (KickStudent) ActionType() ActionType    { return ActionKickStudent }
func (SendMessage) ActionType() ActionType    { return ActionSendMessage }
