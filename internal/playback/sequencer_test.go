package playback

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/hanifwidyanto/kirana/domain/entities"
)

func waitForState(t *testing.T, events <-chan Event, state entities.PlaybackState) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-events:
			if event.State == state {
				return event
			}
		case <-deadline:
			t.Fatalf("Timed out waiting for state %s", state)
		}
	}
}

func countingSynth(calls *int32) SynthFunc {
	return func(ctx context.Context, text string) ([]byte, error) {
		atomic.AddInt32(calls, 1)
		return []byte("audio:" + text[:5]), nil
	}
}

func TestSequencerFullRun(t *testing.T) {
	var calls int32
	seq := NewSequencer(countingSynth(&calls), 4000, zaptest.NewLogger(t))

	if err := seq.Start(context.Background(), words(9000)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	event := waitForState(t, seq.Events(), entities.PlaybackPlaying)
	if event.TotalChunks != 3 {
		t.Fatalf("Expected 3 chunks, got %d", event.TotalChunks)
	}
	if event.ChunkIndex != 0 {
		t.Errorf("Expected playback to begin at chunk 0, got %d", event.ChunkIndex)
	}
	if len(event.Audio) == 0 {
		t.Error("Expected audio payload on the playing transition")
	}

	// Play the sequence to exhaustion.
	seq.ChunkEnded()
	event = waitForState(t, seq.Events(), entities.PlaybackPlaying)
	if event.ChunkIndex != 1 {
		t.Errorf("Expected chunk 1, got %d", event.ChunkIndex)
	}
	seq.ChunkEnded()
	waitForState(t, seq.Events(), entities.PlaybackPlaying)
	seq.ChunkEnded()
	waitForState(t, seq.Events(), entities.PlaybackIdle)

	if seq.State() != entities.PlaybackIdle {
		t.Errorf("Expected idle after exhaustion, got %s", seq.State())
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("Expected 3 synthesis requests, got %d", got)
	}
}

func TestSequencerStopMidPlayback(t *testing.T) {
	var calls int32
	seq := NewSequencer(countingSynth(&calls), 4000, zaptest.NewLogger(t))

	if err := seq.Start(context.Background(), words(9000)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitForState(t, seq.Events(), entities.PlaybackPlaying)

	seq.Stop()

	if seq.State() != entities.PlaybackIdle {
		t.Errorf("Expected idle after stop, got %s", seq.State())
	}
	if seq.QueueLength() != 0 {
		t.Errorf("Expected empty chunk queue after stop, got %d", seq.QueueLength())
	}
}

func TestSequencerPauseResumeWithoutResynthesis(t *testing.T) {
	var calls int32
	seq := NewSequencer(countingSynth(&calls), 4000, zaptest.NewLogger(t))

	if err := seq.Start(context.Background(), words(9000)); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitForState(t, seq.Events(), entities.PlaybackPlaying)
	before := atomic.LoadInt32(&calls)

	if err := seq.Pause(); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if seq.State() != entities.PlaybackPaused {
		t.Errorf("Expected paused, got %s", seq.State())
	}

	if err := seq.Resume(); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if seq.State() != entities.PlaybackPlaying {
		t.Errorf("Expected playing after resume, got %s", seq.State())
	}

	if after := atomic.LoadInt32(&calls); after != before {
		t.Errorf("Resume must not re-request audio: %d synthesis calls before, %d after", before, after)
	}
}

func TestSequencerPauseOnlyWhilePlaying(t *testing.T) {
	seq := NewSequencer(countingSynth(new(int32)), 4000, zaptest.NewLogger(t))

	if err := seq.Pause(); err == nil {
		t.Error("Expected pause from idle to fail")
	}
	if err := seq.Resume(); err == nil {
		t.Error("Expected resume from idle to fail")
	}
}

func TestSequencerRestartForcesStop(t *testing.T) {
	var calls int32
	seq := NewSequencer(countingSynth(&calls), 4000, zaptest.NewLogger(t))

	if err := seq.Start(context.Background(), words(9000)); err != nil {
		t.Fatalf("First start failed: %v", err)
	}
	waitForState(t, seq.Events(), entities.PlaybackPlaying)

	if err := seq.Start(context.Background(), "short text"); err != nil {
		t.Fatalf("Second start failed: %v", err)
	}

	event := waitForState(t, seq.Events(), entities.PlaybackPlaying)
	if event.TotalChunks != 1 {
		t.Errorf("Expected the new single-chunk run, got %d chunks", event.TotalChunks)
	}
}

func TestSequencerSynthesisFailure(t *testing.T) {
	synth := func(ctx context.Context, text string) ([]byte, error) {
		return nil, errors.New("voice service down")
	}
	seq := NewSequencer(synth, 4000, zaptest.NewLogger(t))

	if err := seq.Start(context.Background(), "hello world"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	event := waitForState(t, seq.Events(), entities.PlaybackIdle)
	if event.Error == "" {
		t.Error("Expected a user-safe error message on the idle transition")
	}
	if event.Error == "voice service down" {
		t.Error("Raw upstream error must not surface to the client")
	}
	if seq.State() != entities.PlaybackIdle {
		t.Errorf("Expected idle after failure, got %s", seq.State())
	}
}

func TestStopCancelsPendingSynthesis(t *testing.T) {
	entered := make(chan context.Context, 1)
	var calls int32
	synth := func(ctx context.Context, text string) ([]byte, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return []byte("audio"), nil
		}
		entered <- ctx
		<-ctx.Done()
		return nil, ctx.Err()
	}
	seq := NewSequencer(synth, 10, zaptest.NewLogger(t))

	if err := seq.Start(context.Background(), "first part second part"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitForState(t, seq.Events(), entities.PlaybackPlaying)

	// Advance past the first chunk so the second load runs on the stored
	// run context, then stop while its synthesis is in flight.
	seq.ChunkEnded()
	var synthCtx context.Context
	select {
	case synthCtx = <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("Synthesis for the second chunk never started")
	}

	seq.Stop()
	select {
	case <-synthCtx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Expected stop to cancel the pending synthesis")
	}
	if seq.State() != entities.PlaybackIdle {
		t.Errorf("Expected idle after stop, got %s", seq.State())
	}
}

func TestSequencerEmptyText(t *testing.T) {
	seq := NewSequencer(countingSynth(new(int32)), 4000, zaptest.NewLogger(t))
	if err := seq.Start(context.Background(), "  "); err == nil {
		t.Error("Expected error for blank text")
	}
}
