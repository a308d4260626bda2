package spectate

import "encoding/json"

// Message types pushed to spectators.
const (
	TypeFrame    = "frame"
	TypeGameOver = "game_over"
)

// Message is the envelope every spectator payload travels in.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func newMessage(msgType, sessionID string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: msgType, SessionID: sessionID, Data: data})
}
