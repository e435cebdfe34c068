package assistant

import (
	"testing"

	"github.com/doeshing/wai-go/internal/domain"
)

func TestModeContextKeepsLanguageAcrossModes(t *testing.T) {
	ctx := NewModeContext(domain.ModeTranslate, domain.LanguageEnglish)
	ctx.SetTargetLanguage(domain.LanguagePortuguese)
	ctx.SetMode(domain.ModeSummarize)

	if p := ctx.Payload("text"); p.TargetLanguage != nil {
		t.Errorf("summarize payload carries %q", *p.TargetLanguage)
	}

	ctx.SetMode(domain.ModeTranslate)
	p := ctx.Payload("text")
	if p.TargetLanguage == nil || *p.TargetLanguage != domain.LanguagePortuguese {
		t.Errorf("translate payload language = %v, want portugués", p.TargetLanguage)
	}
}

func TestModeContextAcceptsAnyMode(t *testing.T) {
	ctx := NewModeContext(domain.ModeImprove, domain.LanguageEnglish)
	for _, mode := range domain.Modes {
		ctx.SetMode(mode)
		if ctx.Mode() != mode {
			t.Errorf("Mode() = %s, want %s", ctx.Mode(), mode)
		}
	}
}
