package playback

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hanifwidyanto/kirana/domain/entities"
)

// SynthFunc requests synthesized audio for one chunk's text.
type SynthFunc func(ctx context.Context, text string) ([]byte, error)

// Event is emitted on every state transition of a sequencer run.
type Event struct {
	State       entities.PlaybackState `json:"state"`
	ChunkIndex  int                    `json:"chunk_index"`
	TotalChunks int                    `json:"total_chunks"`
	// Audio carries the synthesized chunk audio on transitions into playing.
	Audio []byte `json:"-"`
	Error string `json:"error,omitempty"`
}

// Sequencer drives chunked read-aloud playback through an explicit state
// machine: idle -> loading -> playing -> (paused|loading|idle). One sequencer
// serves one audio surface; starting a new run while one is active stops the
// old run first, so no two chunks ever play concurrently on the surface.
type Sequencer struct {
	synth    SynthFunc
	maxChars int
	logger   *zap.Logger
	events   chan Event

	mu      sync.Mutex
	state   entities.PlaybackState
	chunks  []entities.AudioChunk
	current int
	// generation invalidates in-flight synthesis results after a stop.
	generation int
	// runCtx covers every synthesis request of the current run; Stop
	// cancels it.
	runCtx context.Context
	cancel context.CancelFunc
}

// NewSequencer creates an idle sequencer.
func NewSequencer(synth SynthFunc, maxChars int, logger *zap.Logger) *Sequencer {
	if maxChars <= 0 {
		maxChars = DefaultChunkMaxChars
	}
	return &Sequencer{
		synth:    synth,
		maxChars: maxChars,
		logger:   logger,
		events:   make(chan Event, 16),
		state:    entities.PlaybackIdle,
	}
}

// Events exposes the transition stream consumed by the audio surface.
func (s *Sequencer) Events() <-chan Event {
	return s.events
}

// State returns the current playback state.
func (s *Sequencer) State() entities.PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// QueueLength returns the number of chunks not yet played, including the
// current one.
func (s *Sequencer) QueueLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chunks) - s.current
}

// Start begins a read-aloud run for text. An active run is stopped first.
func (s *Sequencer) Start(ctx context.Context, text string) error {
	chunks := Chunk(text, s.maxChars)
	if len(chunks) == 0 {
		return fmt.Errorf("text cannot be empty")
	}

	s.mu.Lock()
	if s.state != entities.PlaybackIdle {
		s.stopLocked()
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.chunks = chunks
	s.current = 0
	s.runCtx = runCtx
	s.cancel = cancel
	s.state = entities.PlaybackLoading
	s.generation++
	gen := s.generation
	s.emitLocked(Event{State: entities.PlaybackLoading, ChunkIndex: 0, TotalChunks: len(chunks)})
	s.mu.Unlock()

	s.logger.Info("Playback started",
		zap.Int("chunks", len(chunks)),
		zap.Int("textLength", len(text)))
	go s.loadChunk(runCtx, gen, 0)
	return nil
}

// Pause suspends playback of the current chunk.
func (s *Sequencer) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != entities.PlaybackPlaying {
		return fmt.Errorf("cannot pause from state %s", s.state)
	}
	s.state = entities.PlaybackPaused
	s.emitLocked(Event{State: entities.PlaybackPaused, ChunkIndex: s.current, TotalChunks: len(s.chunks)})
	return nil
}

// Resume continues the current chunk from its paused position. The chunk's
// audio was already delivered, so no new synthesis request is made.
func (s *Sequencer) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != entities.PlaybackPaused {
		return fmt.Errorf("cannot resume from state %s", s.state)
	}
	s.state = entities.PlaybackPlaying
	s.emitLocked(Event{State: entities.PlaybackPlaying, ChunkIndex: s.current, TotalChunks: len(s.chunks)})
	return nil
}

// ChunkEnded advances past the chunk that just finished playing: either load
// the next chunk or return to idle when the sequence is exhausted.
func (s *Sequencer) ChunkEnded() {
	s.mu.Lock()
	if s.state != entities.PlaybackPlaying {
		s.mu.Unlock()
		return
	}

	s.current++
	if s.current >= len(s.chunks) {
		s.finishLocked()
		s.mu.Unlock()
		return
	}

	s.state = entities.PlaybackLoading
	gen := s.generation
	idx := s.current
	total := len(s.chunks)
	runCtx := s.runCtx
	s.emitLocked(Event{State: entities.PlaybackLoading, ChunkIndex: idx, TotalChunks: total})
	s.mu.Unlock()

	go s.loadChunk(runCtx, gen, idx)
}

// Stop cancels any pending synthesis, clears the chunk queue, and resets the
// sequencer to idle. Safe to call from any state.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == entities.PlaybackIdle {
		return
	}
	s.stopLocked()
}

func (s *Sequencer) stopLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.finishLocked()
	s.logger.Info("Playback stopped")
}

func (s *Sequencer) finishLocked() {
	s.chunks = nil
	s.current = 0
	s.state = entities.PlaybackIdle
	s.emitLocked(Event{State: entities.PlaybackIdle})
}

// loadChunk requests audio for one chunk and, when it arrives, moves the run
// into playing. Results from a superseded generation are dropped.
func (s *Sequencer) loadChunk(ctx context.Context, gen, idx int) {
	s.mu.Lock()
	if gen != s.generation || idx >= len(s.chunks) {
		s.mu.Unlock()
		return
	}
	text := s.chunks[idx].Text
	s.mu.Unlock()

	audio, err := s.synth(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// Stopped while the request was in flight.
		return
	}

	if err != nil {
		s.logger.Error("Chunk synthesis failed",
			zap.Int("chunk", idx),
			zap.Error(err))
		total := len(s.chunks)
		s.emitLocked(Event{
			State:       entities.PlaybackIdle,
			ChunkIndex:  idx,
			TotalChunks: total,
			Error:       "audio synthesis failed",
		})
		s.chunks = nil
		s.current = 0
		s.state = entities.PlaybackIdle
		return
	}

	s.state = entities.PlaybackPlaying
	s.emitLocked(Event{
		State:       entities.PlaybackPlaying,
		ChunkIndex:  idx,
		TotalChunks: len(s.chunks),
		Audio:       audio,
	})
}

func (s *Sequencer) emitLocked(event Event) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("Playback event dropped, consumer too slow",
			zap.String("state", string(event.State)))
	}
}
