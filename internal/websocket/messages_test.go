package websocket

import (
	"testing"
)

func TestParseControlMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    ControlType
		wantErr bool
	}{
		{
			name:    "valid start",
			message: `{"type": "start", "text": "Read this aloud.", "locale": "en"}`,
			want:    ControlStart,
		},
		{
			name:    "start without text",
			message: `{"type": "start"}`,
			wantErr: true,
		},
		{
			name:    "pause",
			message: `{"type": "pause"}`,
			want:    ControlPause,
		},
		{
			name:    "resume",
			message: `{"type": "resume"}`,
			want:    ControlResume,
		},
		{
			name:    "chunk ended",
			message: `{"type": "chunk_ended"}`,
			want:    ControlChunkEnded,
		},
		{
			name:    "stop",
			message: `{"type": "stop"}`,
			want:    ControlStop,
		},
		{
			name:    "unknown type",
			message: `{"type": "rewind"}`,
			wantErr: true,
		},
		{
			name:    "not json",
			message: `start please`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := ParseControlMessage([]byte(tt.message))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseControlMessage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && msg.Type != tt.want {
				t.Errorf("Expected type %s, got %s", tt.want, msg.Type)
			}
		})
	}
}

func TestParseControlMessageCarriesLocale(t *testing.T) {
	msg, err := ParseControlMessage([]byte(`{"type": "start", "text": "Bonjour tout le monde.", "locale": "fr"}`))
	if err != nil {
		t.Fatalf("ParseControlMessage failed: %v", err)
	}
	if msg.Locale != "fr" {
		t.Errorf("Expected locale fr, got %q", msg.Locale)
	}
	if msg.Text != "Bonjour tout le monde." {
		t.Errorf("Unexpected text %q", msg.Text)
	}
}
