package domain

import "fmt"

// HealthStatus is the outcome of one doctor check.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

// HealthCheck captures a single diagnostic result.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport aggregates checks in the order they ran.
type HealthReport struct {
	Checks []HealthCheck
}

// Count returns how many checks ended with status.
func (r HealthReport) Count(status HealthStatus) int {
	n := 0
	for _, check := range r.Checks {
		if check.Status == status {
			n++
		}
	}
	return n
}

// Failed reports whether any check errored.
func (r HealthReport) Failed() bool {
	return r.Count(HealthError) > 0
}

// Summary is a one-line tally, e.g. "3 ok, 1 warning, 0 errors".
func (r HealthReport) Summary() string {
	return fmt.Sprintf("%d ok, %s, %s",
		r.Count(HealthOK),
		plural(r.Count(HealthWarn), "warning"),
		plural(r.Count(HealthError), "error"),
	)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// ServiceHealth is the body returned by the generation service health endpoint.
type ServiceHealth struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

// Healthy reports whether the service declared itself ok.
func (h ServiceHealth) Healthy() bool {
	return h.Status == "ok"
}
