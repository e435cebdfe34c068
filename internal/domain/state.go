package domain

// RequestState is the lifecycle of a single submission.
// Exactly one of Idle, Pending, Succeeded or Failed is current at any time.
type RequestState interface {
	isRequestState()
}

// Idle is the initial state before any submission.
type Idle struct{}

// Pending means a request is outstanding.
type Pending struct {
	Payload RequestPayload
}

// Succeeded carries the generated output of the last request.
type Succeeded struct {
	Output string
}

// Failed carries the error of the last request.
type Failed struct {
	Err ErrorInfo
}

func (Idle) isRequestState()      {}
func (Pending) isRequestState()   {}
func (Succeeded) isRequestState() {}
func (Failed) isRequestState()    {}

// IsPending reports whether s is Pending.
func IsPending(s RequestState) bool {
	_, ok := s.(Pending)
	return ok
}

// StateName returns a short name for logging and display.
func StateName(s RequestState) string {
	switch s.(type) {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
