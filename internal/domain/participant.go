package domain

import "time"

// ClientIdentity is assigned once at registration and is immutable for
// the life of a connection. A new connection requires re-registration.
type ClientIdentity struct {
	ConnectionID string `json:"connectionId"`
	DisplayName  string `json:"name"`
	Role         Role   `json:"role"`
}

// Participant is one entry of the session roster. The roster is fully
// replaced on every update, so there is no per-field patching here.
type Participant struct {
	ConnectionID string `json:"connectionId"`
	DisplayName  string `json:"name"`
	Role         Role   `json:"role"`
}

// ChatMessage is one entry of the session's side chat
type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	SenderRole Role      `json:"senderRole"`
	Text       string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}
