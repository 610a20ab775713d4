// Package tts drives the Edge neural-voice synthesis service.
package tts

import "github.com/healbot/medconsult/internal/language"

const (
	DefaultVoiceEN = "en-US-AriaNeural"
	DefaultVoiceAR = "ar-SA-ZariyahNeural"
)

// VoiceMap holds the per-language default voices.
type VoiceMap struct {
	english string
	arabic  string
}

// NewVoiceMap builds a voice map, falling back to the built-in neural
// voices for any empty override.
func NewVoiceMap(english, arabic string) VoiceMap {
	if english == "" {
		english = DefaultVoiceEN
	}
	if arabic == "" {
		arabic = DefaultVoiceAR
	}
	return VoiceMap{english: english, arabic: arabic}
}

// Resolve picks the synthesis voice: a caller-supplied voice name wins,
// then the per-language default. Any language that is not Arabic gets
// the English voice.
func (v VoiceMap) Resolve(lang language.Code, override string) string {
	if override != "" {
		return override
	}
	if lang == language.Arabic {
		return v.arabic
	}
	return v.english
}

// Defaults returns the default voice per language tag.
func (v VoiceMap) Defaults() map[string]string {
	return map[string]string{
		string(language.English): v.english,
		string(language.Arabic):  v.arabic,
	}
}
