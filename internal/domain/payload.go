package domain

// RequestPayload is the message sent to the generation service.
// It is built fresh for every submission and never mutated.
type RequestPayload struct {
	Text           string          `json:"text"`
	Mode           Mode            `json:"mode"`
	TargetLanguage *TargetLanguage `json:"targetLanguage"`
}

// NewRequestPayload builds a payload, attaching lang only for ModeTranslate.
func NewRequestPayload(text string, mode Mode, lang TargetLanguage) RequestPayload {
	payload := RequestPayload{Text: text, Mode: mode}
	if mode.RequiresLanguage() {
		l := lang
		payload.TargetLanguage = &l
	}
	return payload
}

// Language returns the target language and whether one is present.
func (p RequestPayload) Language() (TargetLanguage, bool) {
	if p.TargetLanguage == nil {
		return "", false
	}
	return *p.TargetLanguage, true
}

// GenerateResponse is the success body returned by the generation service.
type GenerateResponse struct {
	GeneratedText *string        `json:"generatedText"`
	Stats         *GenerateStats `json:"stats,omitempty"`
}

// GenerateStats accompanies a generation result.
type GenerateStats struct {
	InputLength  int  `json:"inputLength"`
	OutputLength int  `json:"outputLength"`
	Mode         Mode `json:"mode"`
}
