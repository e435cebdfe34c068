package ai

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/doeshing/wai-go/internal/domain"
)

// modeTemplates hold one instruction per mode. Each ends with a marker the
// model tends to echo back; StripMarker removes it from the reply.
var modeTemplates = map[domain.Mode]string{
	domain.ModeImprove: `Improve the following text, correcting grammar mistakes and improving clarity, flow and coherence without changing its original meaning:

{{.Text}}

Improved text:`,
	domain.ModeSummarize: `Summarize the following text, keeping the key points and the most important information:

{{.Text}}

Summary:`,
	domain.ModeTranslate: `Translate the following text into {{.Language}}, keeping the original tone and style:

{{.Text}}

Translation:`,
	domain.ModeContinue: `Continue the following text in a coherent and natural way, keeping the same style and tone:

{{.Text}}

Continuation:`,
}

var modeMarkers = map[domain.Mode]string{
	domain.ModeImprove:   "Improved text:",
	domain.ModeSummarize: "Summary:",
	domain.ModeTranslate: "Translation:",
	domain.ModeContinue:  "Continuation:",
}

var compiledTemplates = compileTemplates()

type templateData struct {
	Text     string
	Language string
}

func compileTemplates() map[domain.Mode]*template.Template {
	out := make(map[domain.Mode]*template.Template, len(modeTemplates))
	for mode, raw := range modeTemplates {
		out[mode] = template.Must(template.New(string(mode)).Parse(raw))
	}
	return out
}

// BuildPrompt renders the instruction for payload. Unknown modes fall back to
// the raw text.
func BuildPrompt(payload domain.RequestPayload) (string, error) {
	tmpl, ok := compiledTemplates[payload.Mode]
	if !ok {
		return payload.Text, nil
	}
	data := templateData{Text: payload.Text}
	if lang, ok := payload.Language(); ok {
		data.Language = lang.Name()
	} else if payload.Mode == domain.ModeTranslate {
		data.Language = domain.LanguageEnglish.Name()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// StripMarker drops everything up to and including an echoed mode marker.
func StripMarker(mode domain.Mode, reply string) string {
	marker, ok := modeMarkers[mode]
	if !ok {
		return reply
	}
	if idx := strings.Index(reply, marker); idx >= 0 {
		return strings.TrimSpace(reply[idx+len(marker):])
	}
	return reply
}
