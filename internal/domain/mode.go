// Package domain defines the core entities and value objects for wai.
//
// The domain layer is independent of infrastructure concerns: it knows nothing
// about HTTP, terminals or clipboards. It holds the transformation modes, the
// request lifecycle state, history entries and the error taxonomy shared by the
// application and infrastructure layers.
package domain

import (
	"fmt"
	"strings"
)

// Mode is the requested transformation type.
type Mode string

// Mode values double as the wire tokens understood by the generation service.
const (
	ModeImprove   Mode = "mejorar"
	ModeSummarize Mode = "resumir"
	ModeTranslate Mode = "traducir"
	ModeContinue  Mode = "continuar"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ModeImprove, ModeSummarize, ModeTranslate, ModeContinue}

var modeNames = map[Mode]string{
	ModeImprove:   "Improve",
	ModeSummarize: "Summarize",
	ModeTranslate: "Translate",
	ModeContinue:  "Continue",
}

// ParseMode accepts either the wire token or the English name, case-insensitive.
func ParseMode(raw string) (Mode, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, mode := range Modes {
		if value == string(mode) || value == strings.ToLower(modeNames[mode]) {
			return mode, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", raw)
}

// Valid reports whether m is one of the enumerated modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// Name returns the English display name.
func (m Mode) Name() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return string(m)
}

// RequiresLanguage reports whether the mode carries a target language.
func (m Mode) RequiresLanguage() bool {
	return m == ModeTranslate
}

// Label is the heading used for a completed transformation in this mode.
// lang is only consulted for ModeTranslate.
func (m Mode) Label(lang *TargetLanguage) string {
	switch m {
	case ModeImprove:
		return "Improved text"
	case ModeSummarize:
		return "Summary"
	case ModeTranslate:
		if lang == nil {
			return "Translation"
		}
		return "Translation to " + lang.Name()
	case ModeContinue:
		return "Continuation"
	default:
		return m.Name()
	}
}

// Next cycles to the following mode, wrapping around.
func (m Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Modes[0]
}

// TargetLanguage is the destination language for ModeTranslate.
type TargetLanguage string

const (
	LanguageEnglish    TargetLanguage = "inglés"
	LanguageSpanish    TargetLanguage = "español"
	LanguageFrench     TargetLanguage = "francés"
	LanguageGerman     TargetLanguage = "alemán"
	LanguageItalian    TargetLanguage = "italiano"
	LanguagePortuguese TargetLanguage = "portugués"
)

// Languages lists the supported target languages in display order.
var Languages = []TargetLanguage{
	LanguageEnglish,
	LanguageSpanish,
	LanguageFrench,
	LanguageGerman,
	LanguageItalian,
	LanguagePortuguese,
}

var languageNames = map[TargetLanguage]string{
	LanguageEnglish:    "English",
	LanguageSpanish:    "Spanish",
	LanguageFrench:     "French",
	LanguageGerman:     "German",
	LanguageItalian:    "Italian",
	LanguagePortuguese: "Portuguese",
}

// ParseLanguage accepts either the wire token or the English name, case-insensitive.
func ParseLanguage(raw string) (TargetLanguage, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, lang := range Languages {
		if value == string(lang) || value == strings.ToLower(languageNames[lang]) {
			return lang, nil
		}
	}
	return "", fmt.Errorf("unknown language %q", raw)
}

// Valid reports whether l is one of the supported languages.
func (l TargetLanguage) Valid() bool {
	_, ok := languageNames[l]
	return ok
}

// Name returns the English display name.
func (l TargetLanguage) Name() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return string(l)
}

// Next cycles to the following language, wrapping around.
func (l TargetLanguage) Next() TargetLanguage {
	return l.shift(1)
}

// Prev cycles to the preceding language, wrapping around.
func (l TargetLanguage) Prev() TargetLanguage {
	return l.shift(len(Languages) - 1)
}

func (l TargetLanguage) shift(by int) TargetLanguage {
	for i, lang := range Languages {
		if lang == l {
			return Languages[(i+by)%len(Languages)]
		}
	}
	return Languages[0]
}
