package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hanifwidyanto/kirana/domain/repositories"
	"github.com/hanifwidyanto/kirana/internal/playback"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Control frames are small.
	maxMessageSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// PlaybackHandler upgrades connections and runs one read-aloud session per
// peer. Each connection owns its own sequencer so playback on one surface
// never interleaves with another.
type PlaybackHandler struct {
	gateway  repositories.CompletionGateway
	maxChars int
	logger   *zap.Logger
}

// NewPlaybackHandler creates a handler synthesizing through gateway.
func NewPlaybackHandler(gateway repositories.CompletionGateway, maxChars int, logger *zap.Logger) *PlaybackHandler {
	return &PlaybackHandler{gateway: gateway, maxChars: maxChars, logger: logger}
}

type writeData struct {
	// Type is websocket.TextMessage or websocket.BinaryMessage.
	Type    int
	Payload []byte
}

// client is a middleman between one websocket connection and its sequencer.
type client struct {
	conn      *websocket.Conn
	send      chan writeData
	done      chan struct{}
	sequencer *playback.Sequencer
	logger    *zap.Logger

	// mu guards locale: written by the read pump on start frames, read by
	// the sequencer's synthesis goroutine.
	mu     sync.Mutex
	locale string
}

func (cl *client) setLocale(locale string) {
	cl.mu.Lock()
	cl.locale = locale
	cl.mu.Unlock()
}

func (cl *client) currentLocale() string {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.locale
}

// Handle upgrades the request and serves playback until the peer disconnects.
func (h *PlaybackHandler) Handle(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return err
	}

	cl := &client{
		conn:   conn,
		send:   make(chan writeData, 256),
		done:   make(chan struct{}),
		logger: h.logger,
	}
	cl.sequencer = playback.NewSequencer(cl.synthFunc(h.gateway), h.maxChars, h.logger)

	go cl.writePump()
	go cl.eventPump()
	go cl.readPump()

	return nil
}

// synthFunc adapts the gateway's speech synthesis to the sequencer, carrying
// the locale chosen on the most recent start frame.
func (cl *client) synthFunc(gateway repositories.CompletionGateway) playback.SynthFunc {
	return func(ctx context.Context, text string) ([]byte, error) {
		return gateway.Synthesize(ctx, repositories.SpeechRequest{
			Text:   text,
			Locale: cl.currentLocale(),
		})
	}
}

// readPump pumps control frames from the connection into the sequencer.
func (cl *client) readPump() {
	defer func() {
		cl.sequencer.Stop()
		close(cl.done)
		cl.conn.Close()
	}()

	cl.conn.SetReadLimit(maxMessageSize)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				cl.logger.Error("WebSocket error", zap.Error(err))
			}
			return
		}
		cl.processControl(message)
	}
}

func (cl *client) processControl(raw []byte) {
	msg, err := ParseControlMessage(raw)
	if err != nil {
		cl.logger.Warn("Rejected control frame", zap.Error(err))
		return
	}

	switch msg.Type {
	case ControlStart:
		cl.setLocale(msg.Locale)
		if err := cl.sequencer.Start(context.Background(), msg.Text); err != nil {
			cl.logger.Warn("Start rejected", zap.Error(err))
		}
	case ControlPause:
		if err := cl.sequencer.Pause(); err != nil {
			cl.logger.Debug("Pause ignored", zap.Error(err))
		}
	case ControlResume:
		if err := cl.sequencer.Resume(); err != nil {
			cl.logger.Debug("Resume ignored", zap.Error(err))
		}
	case ControlChunkEnded:
		cl.sequencer.ChunkEnded()
	case ControlStop:
		cl.sequencer.Stop()
	}
}

// eventPump forwards sequencer transitions to the peer: a JSON state frame,
// followed by a binary frame when the transition carries chunk audio.
func (cl *client) eventPump() {
	for {
		select {
		case <-cl.done:
			return
		case event := <-cl.sequencer.Events():
			frame := StateMessage{
				Type:        "state",
				State:       string(event.State),
				ChunkIndex:  event.ChunkIndex,
				TotalChunks: event.TotalChunks,
				AudioNext:   len(event.Audio) > 0,
				Error:       event.Error,
			}
			payload, err := json.Marshal(frame)
			if err != nil {
				cl.logger.Error("Failed to encode state frame", zap.Error(err))
				continue
			}
			if !cl.enqueue(writeData{Type: websocket.TextMessage, Payload: payload}) {
				return
			}
			if len(event.Audio) > 0 {
				if !cl.enqueue(writeData{Type: websocket.BinaryMessage, Payload: event.Audio}) {
					return
				}
			}
		}
	}
}

// enqueue hands a frame to the write pump without blocking past disconnect.
func (cl *client) enqueue(data writeData) bool {
	select {
	case cl.send <- data:
		return true
	case <-cl.done:
		return false
	}
}

// writePump pumps frames from the send channel to the connection.
func (cl *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case <-cl.done:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(message.Type, message.Payload); err != nil {
				cl.logger.Error("Failed to write message", zap.Error(err))
				return
			}

		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
