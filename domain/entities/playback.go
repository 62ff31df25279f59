package entities

// PlaybackState is the state of a read-aloud playback run.
type PlaybackState string

const (
	PlaybackIdle    PlaybackState = "idle"
	PlaybackLoading PlaybackState = "loading"
	PlaybackPlaying PlaybackState = "playing"
	PlaybackPaused  PlaybackState = "paused"
)

// AudioChunk is one bounded slice of a source text queued for synthesis.
// Chunks are derived deterministically by a greedy word-boundary splitter
// and discarded after playback or on cancellation.
type AudioChunk struct {
	Text          string `json:"text"`
	SequenceIndex int    `json:"sequence_index"`
}
