package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pollroom/internal/domain"
)

func TestDecodeServerMessageRegistered(t *testing.T) {
	raw := []byte(`{"type":"registered","payload":{"connectionId":"c1","name":"Sam","role":"student"}}`)

	ev, err := DecodeServerMessage(raw)
	require.NoError(t, err)

	ack, ok := ev.(domain.RegistrationAck)
	require.True(t, ok, "expected RegistrationAck, got %T", ev)
	assert.Equal(t, "c1", ack.Identity.ConnectionID)
	assert.Equal(t, "Sam", ack.Identity.DisplayName)
	assert.Equal(t, domain.RoleStudent, ack.Identity.Role)
}

func TestDecodeServerMessageNewPoll(t *testing.T) {
	raw := []byte(`{"type":"newPoll","payload":{
		"id":"p1",
		"question":"Favorite color?",
		"options":[{"id":"o1","text":"Red"},{"id":"o2","text":"Blue"}],
		"durationSeconds":30,
		"startTime":1767601000000
	}}`)

	ev, err := DecodeServerMessage(raw)
	require.NoError(t, err)

	np, ok := ev.(domain.NewPoll)
	require.True(t, ok, "expected NewPoll, got %T", ev)
	assert.Equal(t, "p1", np.Poll.ID)
	assert.Equal(t, 30, np.Poll.DurationSeconds)
	require.Len(t, np.Poll.Options, 2)
	assert.Equal(t, "Red", np.Poll.Options[0].Text)
	assert.Equal(t, int64(1767601000000), np.Poll.StartTimeMillis)
}

func TestDecodeServerMessagePollStateUpdate(t *testing.T) {
	raw := []byte(`{"type":"pollStateUpdate","payload":{"pollId":"p1","tally":{"o1":3,"o2":1},"timeLeft":12}}`)

	ev, err := DecodeServerMessage(raw)
	require.NoError(t, err)

	upd, ok := ev.(domain.PollStateUpdate)
	require.True(t, ok, "expected PollStateUpdate, got %T", ev)
	assert.Equal(t, "p1", upd.PollID)
	assert.Equal(t, domain.VoteTally{"o1": 3, "o2": 1}, upd.Tally)
	assert.Equal(t, 12, upd.TimeLeftSeconds)
}

func TestDecodeServerMessagePollEnded(t *testing.T) {
	raw := []byte(`{"type":"pollEnded","payload":{"pollId":"p1","finalTally":{"o1":4,"o2":2},"question":"Favorite color?"}}`)

	ev, err := DecodeServerMessage(raw)
	require.NoError(t, err)

	ended, ok := ev.(domain.PollEnded)
	require.True(t, ok, "expected PollEnded, got %T", ev)
	assert.Equal(t, "p1", ended.PollID)
	assert.Equal(t, domain.VoteTally{"o1": 4, "o2": 2}, ended.FinalTally)
}

func TestDecodeServerMessageRoster(t *testing.T) {
	raw := []byte(`{"type":"updateClientList","payload":{"roster":[
		{"connectionId":"t1","name":"Pat","role":"teacher"},
		{"connectionId":"s1","name":"Sam","role":"student"}
	]}}`)

	ev, err := DecodeServerMessage(raw)
	require.NoError(t, err)

	roster, ok := ev.(domain.RosterUpdate)
	require.True(t, ok, "expected RosterUpdate, got %T", ev)
	require.Len(t, roster.Roster, 2)
	assert.Equal(t, domain.RoleTeacher, roster.Roster[0].Role)
}

func TestDecodeServerMessageChat(t *testing.T) {
	raw := []byte(`{"type":"receiveMessage","payload":{"id":"m1","senderId":"s1","senderName":"Sam","senderRole":"student","message":"hello"}}`)

	ev, err := DecodeServerMessage(raw)
	require.NoError(t, err)

	chat, ok := ev.(domain.ChatReceived)
	require.True(t, ok, "expected ChatReceived, got %T", ev)
	assert.Equal(t, "hello", chat.Message.Text)
	assert.Equal(t, "Sam", chat.Message.SenderName)
}

func TestDecodeServerMessageKickedOut(t *testing.T) {
	raw := []byte(`{"type":"kickedOut","payload":{"reason":"removed by teacher"}}`)

	ev, err := DecodeServerMessage(raw)
	require.NoError(t, err)

	kicked, ok := ev.(domain.KickedOut)
	require.True(t, ok, "expected KickedOut, got %T", ev)
	assert.Equal(t, "removed by teacher", kicked.Reason)
}

func TestDecodeServerMessageKickedOutWithoutReason(t *testing.T) {
	ev, err := DecodeServerMessage([]byte(`{"type":"kickedOut"}`))
	require.NoError(t, err)

	kicked, ok := ev.(domain.KickedOut)
	require.True(t, ok, "expected KickedOut, got %T", ev)
	assert.Empty(t, kicked.Reason)
}

func TestDecodeServerMessageErrorWithoutPayload(t *testing.T) {
	ev, err := DecodeServerMessage([]byte(`{"type":"error"}`))
	require.NoError(t, err)

	serr, ok := ev.(domain.ServerError)
	require.True(t, ok, "expected ServerError, got %T", ev)
	assert.Empty(t, serr.Message)
}

func TestDecodeServerMessageError(t *testing.T) {
	raw := []byte(`{"type":"error","payload":{"message":"name already taken"}}`)

	ev, err := DecodeServerMessage(raw)
	require.NoError(t, err)

	serr, ok := ev.(domain.ServerError)
	require.True(t, ok, "expected ServerError, got %T", ev)
	assert.Equal(t, "name already taken", serr.Message)
}

func TestDecodeServerMessageUnknownType(t *testing.T) {
	_, err := DecodeServerMessage([]byte(`{"type":"surprise","payload":{}}`))
	assert.ErrorContains(t, err, "unknown message type")
}

func TestDecodeServerMessageBadJSON(t *testing.T) {
	_, err := DecodeServerMessage([]byte(`{"type":`))
	assert.ErrorContains(t, err, "decode envelope")
}

func TestDecodeServerMessageBadPayload(t *testing.T) {
	_, err := DecodeServerMessage([]byte(`{"type":"newPoll","payload":"not an object"}`))
	assert.ErrorContains(t, err, "decode newPoll payload")
}

func TestNewClientMessageEnvelope(t *testing.T) {
	msg := NewClientMessage(domain.SubmitAnswer{PollID: "p1", OptionID: "o2"})

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var wire struct {
		Type    string `json:"type"`
		Payload struct {
			PollID   string `json:"pollId"`
			OptionID string `json:"optionId"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "submitAnswer", wire.Type)
	assert.Equal(t, "p1", wire.Payload.PollID)
	assert.Equal(t, "o2", wire.Payload.OptionID)
}
