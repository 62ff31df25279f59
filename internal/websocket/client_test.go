package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap/zaptest"

	"github.com/hanifwidyanto/kirana/adapters/llm"
)

func dialTestServer(t *testing.T, handler *PlaybackHandler) *websocket.Conn {
	t.Helper()

	e := echo.New()
	e.GET("/ws/playback", handler.Handle)
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/playback"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readStateFrame(t *testing.T, conn *websocket.Conn) StateMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	msgType, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}
	if msgType != websocket.TextMessage {
		t.Fatalf("Expected text frame, got type %d", msgType)
	}
	var frame StateMessage
	if err := json.Unmarshal(payload, &frame); err != nil {
		t.Fatalf("Failed to decode state frame: %v", err)
	}
	return frame
}

func readBinaryFrame(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	msgType, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}
	if msgType != websocket.BinaryMessage {
		t.Fatalf("Expected binary frame, got type %d", msgType)
	}
	return payload
}

func TestPlaybackSessionOverWebSocket(t *testing.T) {
	gateway := &llm.MockGateway{SynthesizeResponse: []byte("mp3-bytes")}
	handler := NewPlaybackHandler(gateway, 0, zaptest.NewLogger(t))
	conn := dialTestServer(t, handler)

	start := `{"type": "start", "text": "A short passage to read aloud.", "locale": "en"}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(start)); err != nil {
		t.Fatalf("WriteMessage failed: %v", err)
	}

	loading := readStateFrame(t, conn)
	if loading.State != "loading" {
		t.Errorf("Expected loading state first, got %s", loading.State)
	}
	if loading.TotalChunks != 1 {
		t.Errorf("Expected 1 chunk, got %d", loading.TotalChunks)
	}

	playing := readStateFrame(t, conn)
	if playing.State != "playing" {
		t.Errorf("Expected playing state, got %s", playing.State)
	}
	if !playing.AudioNext {
		t.Fatal("Expected audio to follow the playing frame")
	}
	audio := readBinaryFrame(t, conn)
	if string(audio) != "mp3-bytes" {
		t.Errorf("Unexpected audio payload %q", audio)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type": "chunk_ended"}`)); err != nil {
		t.Fatalf("WriteMessage failed: %v", err)
	}
	idle := readStateFrame(t, conn)
	if idle.State != "idle" {
		t.Errorf("Expected idle state after final chunk, got %s", idle.State)
	}
}

func TestPlaybackUsesStartFrameLocale(t *testing.T) {
	gateway := &llm.MockGateway{SynthesizeResponse: []byte("audio")}
	handler := NewPlaybackHandler(gateway, 0, zaptest.NewLogger(t))
	conn := dialTestServer(t, handler)

	start := `{"type": "start", "text": "Bonjour tout le monde.", "locale": "fr"}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(start)); err != nil {
		t.Fatalf("WriteMessage failed: %v", err)
	}
	readStateFrame(t, conn) // loading
	playing := readStateFrame(t, conn)
	if playing.State != "playing" {
		t.Fatalf("Expected playing state, got %s", playing.State)
	}
	readBinaryFrame(t, conn)

	if gateway.LastSpeech.Locale != "fr" {
		t.Errorf("Expected start frame locale to reach synthesis, got %q", gateway.LastSpeech.Locale)
	}
}

func TestPlaybackStopOverWebSocket(t *testing.T) {
	gateway := &llm.MockGateway{SynthesizeResponse: []byte("audio")}
	handler := NewPlaybackHandler(gateway, 0, zaptest.NewLogger(t))
	conn := dialTestServer(t, handler)

	start := `{"type": "start", "text": "Something to interrupt."}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(start)); err != nil {
		t.Fatalf("WriteMessage failed: %v", err)
	}
	readStateFrame(t, conn) // loading
	playing := readStateFrame(t, conn)
	if playing.State != "playing" {
		t.Fatalf("Expected playing state, got %s", playing.State)
	}
	readBinaryFrame(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type": "stop"}`)); err != nil {
		t.Fatalf("WriteMessage failed: %v", err)
	}
	idle := readStateFrame(t, conn)
	if idle.State != "idle" {
		t.Errorf("Expected idle state after stop, got %s", idle.State)
	}
}
