package helpers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/doeshing/wai-go/internal/domain"
)

func TestReadInput(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{name: "args joined", args: []string{"hello", "world"}, want: "hello world"},
		{name: "stdin fallback", stdin: "from pipe\n", want: "from pipe\n"},
		{name: "args win over stdin", args: []string{"arg"}, stdin: "pipe", want: "arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadInput(tt.args, strings.NewReader(tt.stdin))
			if err != nil {
				t.Fatalf("ReadInput() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadInput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadInputRejectsOversizedStdin(t *testing.T) {
	exact := strings.Repeat("a", maxStdinBytes)
	got, err := ReadInput(nil, strings.NewReader(exact))
	if err != nil {
		t.Fatalf("ReadInput() at the limit error = %v", err)
	}
	if len(got) != maxStdinBytes {
		t.Errorf("len(ReadInput()) = %d, want %d", len(got), maxStdinBytes)
	}

	got, err = ReadInput(nil, strings.NewReader(exact+"b"))
	if err == nil {
		t.Fatalf("ReadInput() over the limit returned %d bytes without error", len(got))
	}
	if !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("error = %q, want size limit message", err)
	}
}

func TestRenderEntry(t *testing.T) {
	lang := domain.LanguageGerman
	entry := domain.HistoryEntry{
		InputText:      "Hola",
		OutputText:     "Hallo",
		Mode:           domain.ModeTranslate,
		TargetLanguage: &lang,
		CreatedAt:      time.Now(),
	}

	var plain bytes.Buffer
	RenderEntry(&plain, entry, 0, true)
	if plain.String() != "Hallo\n" {
		t.Errorf("plain output = %q", plain.String())
	}

	var full bytes.Buffer
	RenderEntry(&full, entry, 40, false)
	if !strings.HasPrefix(full.String(), "Translation to German") || !strings.Contains(full.String(), "Hallo") {
		t.Errorf("rendered output = %q", full.String())
	}
}

func TestRenderModesListsTokens(t *testing.T) {
	var out bytes.Buffer
	RenderModes(&out)
	for _, token := range []string{"mejorar", "resumir", "traducir", "continuar", "inglés", "portugués"} {
		if !strings.Contains(out.String(), token) {
			t.Errorf("modes output missing %s", token)
		}
	}
}

func TestRenderHealth(t *testing.T) {
	var out bytes.Buffer
	RenderHealth(&out, domain.HealthReport{Checks: []domain.HealthCheck{
		{Name: "Clipboard", Status: domain.HealthWarn, Details: "unavailable"},
	}})
	if out.String() != "[WARN] Clipboard - unavailable\n" {
		t.Errorf("output = %q", out.String())
	}
}
