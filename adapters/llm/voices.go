package llm

import (
	"strings"

	"github.com/sashabaranov/go-openai"
)

// defaultVoice is the baseline voice for unmapped locales.
const defaultVoice = openai.VoiceAlloy

// localeVoices is the fixed locale-to-voice lookup table used when a speech
// request carries no explicit voice.
var localeVoices = map[string]openai.SpeechVoice{
	"en": openai.VoiceAlloy,
	"fr": openai.VoiceShimmer,
	"es": openai.VoiceNova,
	"de": openai.VoiceOnyx,
	"id": openai.VoiceEcho,
	"ja": openai.VoiceFable,
}

// VoiceForLocale resolves a locale code to a synthesis voice. Region subtags
// are ignored, so "fr-CA" resolves the same as "fr".
func VoiceForLocale(locale string) openai.SpeechVoice {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		locale = locale[:idx]
	}
	if voice, ok := localeVoices[locale]; ok {
		return voice
	}
	return defaultVoice
}
