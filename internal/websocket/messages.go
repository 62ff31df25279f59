package websocket

import (
	"encoding/json"
	"fmt"
)

// ControlType defines the type of an inbound playback control frame.
type ControlType string

// Supported control frame types
const (
	ControlStart      ControlType = "start"
	ControlPause      ControlType = "pause"
	ControlResume     ControlType = "resume"
	ControlChunkEnded ControlType = "chunk_ended"
	ControlStop       ControlType = "stop"
)

// ControlMessage is a playback command sent by the client.
type ControlMessage struct {
	Type ControlType `json:"type"`
	// Text is the read-aloud source, required for start frames only.
	Text   string `json:"text,omitempty"`
	Locale string `json:"locale,omitempty"`
}

// StateMessage is an outbound playback state frame. When the state is playing
// and audio follows, the next binary frame on the connection carries the
// chunk's audio bytes.
type StateMessage struct {
	Type        string `json:"type"`
	State       string `json:"state"`
	ChunkIndex  int    `json:"chunk_index"`
	TotalChunks int    `json:"total_chunks"`
	AudioNext   bool   `json:"audio_next,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ParseControlMessage decodes and validates an inbound control frame.
func ParseControlMessage(raw []byte) (ControlMessage, error) {
	var msg ControlMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return msg, fmt.Errorf("invalid control frame: %w", err)
	}
	switch msg.Type {
	case ControlStart:
		if msg.Text == "" {
			return msg, fmt.Errorf("start frame requires text")
		}
	case ControlPause, ControlResume, ControlChunkEnded, ControlStop:
	default:
		return msg, fmt.Errorf("unknown control type %q", msg.Type)
	}
	return msg, nil
}
