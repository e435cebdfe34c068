package assistant

import (
	"errors"
	"fmt"

	"github.com/doeshing/wai-go/internal/domain"
)

// Event drives a RequestState transition.
type Event interface {
	isEvent()
}

// Submitted is raised when a validated payload is ready to send.
type Submitted struct {
	Payload domain.RequestPayload
}

// Resolved is raised when the service returned generated text.
type Resolved struct {
	Output string
}

// Rejected is raised when the request failed for any reason.
type Rejected struct {
	Err domain.ErrorInfo
}

func (Submitted) isEvent() {}
func (Resolved) isEvent()  {}
func (Rejected) isEvent()  {}

// Effect is work the caller must perform after a transition.
type Effect interface {
	isEffect()
}

// CallService asks the caller to send Payload to the generation service.
type CallService struct {
	Payload domain.RequestPayload
}

// RecordHistory asks the caller to append a history entry.
type RecordHistory struct {
	Payload domain.RequestPayload
	Output  string
}

func (CallService) isEffect()   {}
func (RecordHistory) isEffect() {}

// errNotPending is returned when a response arrives with no request outstanding.
var errNotPending = errors.New("no request in flight")

// Transition computes the next state and the effects to run. It is pure:
// the current state is never modified and nothing outside is touched.
//
//	Idle|Succeeded|Failed --Submitted--> Pending      [CallService]
//	Pending               --Submitted--> (rejected)   ErrRequestPending
//	Pending               --Resolved---> Succeeded    [RecordHistory]
//	Pending               --Rejected---> Failed
func Transition(state domain.RequestState, event Event) (domain.RequestState, []Effect, error) {
	if state == nil {
		state = domain.Idle{}
	}
	pending, isPending := state.(domain.Pending)

	switch ev := event.(type) {
	case Submitted:
		if isPending {
			return state, nil, domain.ErrRequestPending
		}
		return domain.Pending{Payload: ev.Payload}, []Effect{CallService{Payload: ev.Payload}}, nil
	case Resolved:
		if !isPending {
			return state, nil, errNotPending
		}
		return domain.Succeeded{Output: ev.Output}, []Effect{RecordHistory{Payload: pending.Payload, Output: ev.Output}}, nil
	case Rejected:
		if !isPending {
			return state, nil, errNotPending
		}
		return domain.Failed{Err: ev.Err}, nil, nil
	default:
		return state, nil, fmt.Errorf("unknown event %T", event)
	}
}
