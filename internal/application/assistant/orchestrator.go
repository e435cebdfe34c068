package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/ports"
)

// Orchestrator owns the request lifecycle: it validates input, builds the
// payload from the mode context, calls the generation service and records
// successful transformations in history.
//
// At most one request is outstanding at a time. Submit composes Begin and
// Resolve for synchronous callers; event-loop callers (the TUI) call Begin,
// run the service call themselves, and feed the outcome to Resolve.
type Orchestrator struct {
	Service   ports.GenerationService
	History   ports.HistoryRepository
	Modes     *ModeContext
	Clipboard ports.Clipboard
	Logger    ports.Logger
	Now       func() time.Time

	mu               sync.Mutex
	state            domain.RequestState
	lastID           int64
	message          string
	clipboardMessage bool
}

var errDependencies = errors.New("assistant.Orchestrator dependencies not satisfied")

// State returns the current request state. A fresh orchestrator is Idle.
func (o *Orchestrator) State() domain.RequestState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current()
}

// Message returns the single user-visible message: the description of the
// last failure, or empty after a successful submission.
func (o *Orchestrator) Message() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.message
}

// Submit validates rawText, sends it and waits for the outcome.
// It returns ErrEmptyInput or ErrRequestPending without touching the
// service, the service error when the request failed, and a HistoryError
// together with the entry when the output could not be recorded.
func (o *Orchestrator) Submit(ctx context.Context, rawText string) (domain.HistoryEntry, error) {
	payload, err := o.Begin(rawText)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	output, genErr := o.Service.Generate(ctx, payload)
	return o.resolve(output, genErr)
}

// Begin performs the synchronous half of a submission: trim and validate,
// enforce single-flight and move to Pending. The returned payload must be
// sent to the generation service and its outcome passed to Resolve.
func (o *Orchestrator) Begin(rawText string) (domain.RequestPayload, error) {
	if o.Service == nil || o.History == nil || o.Modes == nil {
		return domain.RequestPayload{}, errDependencies
	}

	text := strings.TrimSpace(rawText)

	o.mu.Lock()
	defer o.mu.Unlock()

	if text == "" {
		o.setMessage(domain.ErrEmptyInput.Error(), false)
		return domain.RequestPayload{}, domain.ErrEmptyInput
	}

	payload := o.Modes.Payload(text)
	next, effects, err := Transition(o.current(), Submitted{Payload: payload})
	if err != nil {
		o.debug("submission dropped", map[string]interface{}{"reason": err.Error()})
		return domain.RequestPayload{}, err
	}
	o.state = next
	o.setMessage("", false)

	for _, effect := range effects {
		if call, ok := effect.(CallService); ok {
			payload = call.Payload
		}
	}
	o.info("request pending", map[string]interface{}{
		"mode":  string(payload.Mode),
		"chars": len(payload.Text),
	})
	return payload, nil
}

// Resolve completes the outstanding request with the service outcome.
// On success it records a history entry and returns it with true.
// On failure the state becomes Failed and history is left untouched.
// If the output was produced but could not be recorded, the state is still
// Succeeded and the entry is returned with false; Message names the problem.
func (o *Orchestrator) Resolve(output string, genErr error) (domain.HistoryEntry, bool) {
	entry, err := o.resolve(output, genErr)
	return entry, err == nil
}

func (o *Orchestrator) resolve(output string, genErr error) (domain.HistoryEntry, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if genErr != nil {
		info := domain.Describe(genErr)
		next, _, err := Transition(o.current(), Rejected{Err: info})
		if err != nil {
			o.warn("late failure ignored", map[string]interface{}{"error": genErr.Error()})
			return domain.HistoryEntry{}, genErr
		}
		o.state = next
		o.setMessage(info.Message, false)
		o.logError("request failed", genErr, map[string]interface{}{"kind": string(info.Kind)})
		return domain.HistoryEntry{}, genErr
	}

	next, effects, err := Transition(o.current(), Resolved{Output: output})
	if err != nil {
		o.warn("late response ignored", map[string]interface{}{"reason": err.Error()})
		return domain.HistoryEntry{}, errNotPending
	}
	o.state = next
	o.setMessage("", false)

	var (
		entry     domain.HistoryEntry
		recordErr error
	)
	for _, effect := range effects {
		record, ok := effect.(RecordHistory)
		if !ok {
			continue
		}
		o.lastID++
		entry = domain.NewHistoryEntry(o.lastID, record.Payload, record.Output, o.now())
		if err := o.History.Append(entry); err != nil {
			recordErr = &domain.HistoryError{Err: err}
			o.setMessage(recordErr.Error(), false)
			o.logError("history append failed", err, map[string]interface{}{"id": entry.ID})
		}
	}
	o.info("request succeeded", map[string]interface{}{
		"id":     entry.ID,
		"mode":   string(entry.Mode),
		"output": len(output),
	})
	return entry, recordErr
}

// ReEdit returns the output of history entry id so it can become the next
// input. Neither history nor the request state is modified.
func (o *Orchestrator) ReEdit(id int64) (string, error) {
	entry, ok := o.History.Get(id)
	if !ok {
		return "", &domain.ValidationError{Reason: "no such history entry"}
	}
	return o.History.ReEdit(entry), nil
}

// Copy places text on the clipboard. Failures are reported as ClipboardError
// and surface in Message, but never affect history or the request state.
// A successful copy clears a message left by an earlier failed copy.
func (o *Orchestrator) Copy(text string) error {
	var err error
	switch {
	case o.Clipboard == nil || !o.Clipboard.Enabled():
		err = &domain.ClipboardError{Err: errors.New("clipboard unavailable")}
	default:
		if copyErr := o.Clipboard.Copy(text); copyErr != nil {
			err = &domain.ClipboardError{Err: copyErr}
		}
	}
	o.mu.Lock()
	switch {
	case err != nil:
		o.setMessage(err.Error(), true)
	case o.clipboardMessage:
		o.setMessage("", false)
	}
	o.mu.Unlock()
	if err != nil {
		o.warn("clipboard write failed", map[string]interface{}{"error": err.Error()})
	}
	return err
}

// CopyLatest copies the output of the live Succeeded state.
func (o *Orchestrator) CopyLatest() error {
	succeeded, ok := o.State().(domain.Succeeded)
	if !ok {
		return &domain.ValidationError{Reason: "no output to copy"}
	}
	return o.Copy(succeeded.Output)
}

// CopyEntry copies the output of history entry id.
func (o *Orchestrator) CopyEntry(id int64) error {
	entry, ok := o.History.Get(id)
	if !ok {
		return &domain.ValidationError{Reason: "no such history entry"}
	}
	return o.Copy(entry.OutputText)
}

// Entries returns the session history, newest first.
func (o *Orchestrator) Entries() ([]domain.HistoryEntry, error) {
	return o.History.List()
}

// Search returns up to limit entries whose input or output contains query,
// newest first. An empty query lists everything; limit <= 0 means no limit.
func (o *Orchestrator) Search(query string, limit int) ([]domain.HistoryEntry, error) {
	if searcher, ok := o.History.(ports.HistorySearcher); ok {
		return searcher.Search(query, limit)
	}
	entries, err := o.History.List()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	matches := entries[:0:0]
	for _, entry := range entries {
		if needle != "" &&
			!strings.Contains(strings.ToLower(entry.InputText), needle) &&
			!strings.Contains(strings.ToLower(entry.OutputText), needle) {
			continue
		}
		matches = append(matches, entry)
		if limit > 0 && len(matches) == limit {
			break
		}
	}
	return matches, nil
}

func (o *Orchestrator) current() domain.RequestState {
	if o.state == nil {
		return domain.Idle{}
	}
	return o.state
}

// setMessage must be called with mu held. fromClipboard marks messages that a
// later successful copy may clear.
func (o *Orchestrator) setMessage(msg string, fromClipboard bool) {
	o.message = msg
	o.clipboardMessage = fromClipboard
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Orchestrator) debug(msg string, fields map[string]interface{}) {
	if o.Logger != nil {
		o.Logger.Debug(msg, fields)
	}
}

func (o *Orchestrator) info(msg string, fields map[string]interface{}) {
	if o.Logger != nil {
		o.Logger.Info(msg, fields)
	}
}

func (o *Orchestrator) warn(msg string, fields map[string]interface{}) {
	if o.Logger != nil {
		o.Logger.Warn(msg, fields)
	}
}

func (o *Orchestrator) logError(msg string, err error, fields map[string]interface{}) {
	if o.Logger != nil {
		o.Logger.Error(msg, err, fields)
	}
}
