package playback

import (
	"strings"

	"github.com/hanifwidyanto/kirana/domain/entities"
)

// DefaultChunkMaxChars bounds the text length of a single synthesis request.
const DefaultChunkMaxChars = 4000

// Chunk splits text into ordered audio chunks of at most maxChars characters,
// backtracking to the nearest preceding space so no chunk ends mid-word. The
// space at a backtracked boundary is consumed by the split. The final
// remainder chunk may be shorter than the bound.
func Chunk(text string, maxChars int) []entities.AudioChunk {
	if maxChars <= 0 {
		maxChars = DefaultChunkMaxChars
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []entities.AudioChunk
	for len(text) > maxChars {
		cut := strings.LastIndex(text[:maxChars+1], " ")
		consumed := 1
		if cut <= 0 {
			// No boundary-eligible space in range: hard cut.
			cut = maxChars
			consumed = 0
		}
		chunks = append(chunks, entities.AudioChunk{
			Text:          text[:cut],
			SequenceIndex: len(chunks),
		})
		text = text[cut+consumed:]
	}
	chunks = append(chunks, entities.AudioChunk{
		Text:          text,
		SequenceIndex: len(chunks),
	})
	return chunks
}
