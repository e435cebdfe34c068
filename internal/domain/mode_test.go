package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/doeshing/wai-go/internal/domain"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		raw     string
		want    domain.Mode
		wantErr bool
	}{
		{raw: "mejorar", want: domain.ModeImprove},
		{raw: " Summarize ", want: domain.ModeSummarize},
		{raw: "TRADUCIR", want: domain.ModeTranslate},
		{raw: "continue", want: domain.ModeContinue},
		{raw: "", wantErr: true},
		{raw: "rewrite", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := domain.ParseMode(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestModeLabel(t *testing.T) {
	french := domain.LanguageFrench
	tests := []struct {
		mode domain.Mode
		lang *domain.TargetLanguage
		want string
	}{
		{domain.ModeImprove, nil, "Improved text"},
		{domain.ModeSummarize, &french, "Summary"},
		{domain.ModeTranslate, &french, "Translation to French"},
		{domain.ModeTranslate, nil, "Translation"},
		{domain.ModeContinue, nil, "Continuation"},
	}
	for _, tt := range tests {
		if got := tt.mode.Label(tt.lang); got != tt.want {
			t.Errorf("%s.Label() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestModeAndLanguageCycle(t *testing.T) {
	if got := domain.ModeContinue.Next(); got != domain.ModeImprove {
		t.Errorf("ModeContinue.Next() = %s", got)
	}
	if got := domain.LanguagePortuguese.Next(); got != domain.LanguageEnglish {
		t.Errorf("LanguagePortuguese.Next() = %s", got)
	}
	if got := domain.LanguageEnglish.Prev(); got != domain.LanguagePortuguese {
		t.Errorf("LanguageEnglish.Prev() = %s", got)
	}
}

func TestNewRequestPayloadLanguageOnlyForTranslate(t *testing.T) {
	for _, mode := range domain.Modes {
		payload := domain.NewRequestPayload("Hola", mode, domain.LanguageFrench)
		lang, ok := payload.Language()
		if mode == domain.ModeTranslate {
			if !ok || lang != domain.LanguageFrench {
				t.Errorf("%s: expected french target language, got %q (present=%v)", mode, lang, ok)
			}
			continue
		}
		if ok {
			t.Errorf("%s: expected no target language, got %q", mode, lang)
		}
	}
}

func TestRequestPayloadJSONNullLanguage(t *testing.T) {
	raw, err := json.Marshal(domain.NewRequestPayload("Hello", domain.ModeImprove, domain.LanguageGerman))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"text":"Hello","mode":"mejorar","targetLanguage":null}`
	if string(raw) != want {
		t.Errorf("got %s, want %s", raw, want)
	}
}

func TestHistoryEntryLabelUsesSnapshot(t *testing.T) {
	payload := domain.NewRequestPayload("Hola", domain.ModeTranslate, domain.LanguageItalian)
	entry := domain.NewHistoryEntry(1, payload, "Ciao", time.Now())
	if entry.Label() != "Translation to Italian" {
		t.Errorf("Label() = %q", entry.Label())
	}
}
