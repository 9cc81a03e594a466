package render

import (
	"fmt"
	"strings"
	"time"
)

// State is the lifecycle of a single render attempt:
// NotStarted → Running → Succeeded | Failed. Attempts are never retried.
type State int

const (
	NotStarted State = iota
	Running
	Succeeded
	Failed
)

var stateNames = map[State]string{
	NotStarted: "not_started",
	Running:    "running",
	Succeeded:  "succeeded",
	Failed:     "failed",
}

// String returns the state name used in logs and hooks.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Mode decides what a failed attempt means for the whole run.
type Mode int

const (
	// Tolerant failures are logged; the run continues and succeeds.
	Tolerant Mode = iota
	// Fatal failures are returned from [Renderer.Run] and end the run with
	// an error. The other attempt still runs.
	Fatal
)

// String returns "tolerant" or "fatal".
func (m Mode) String() string {
	switch m {
	case Tolerant:
		return "tolerant"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses "tolerant" or "fatal" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tolerant":
		return Tolerant, nil
	case "fatal":
		return Fatal, nil
	default:
		return Tolerant, fmt.Errorf("invalid render mode %q (must be 'tolerant' or 'fatal')", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Outcome records how one render attempt ended.
type Outcome struct {
	Name     string        // Backend name ("graphviz", "dot")
	Mode     Mode          // Error-handling mode the attempt ran under
	State    State         // Final state
	Output   string        // Image path (set even when the attempt failed)
	Err      error         // Failure cause when State == Failed
	Duration time.Duration // Wall time spent in the backend
}

// Report holds the outcome of both render paths for one run.
type Report struct {
	Paths     Paths
	InProcess Outcome
	External  Outcome
}

// Outcomes returns the in-process and external outcomes in run order.
func (r Report) Outcomes() []Outcome {
	return []Outcome{r.InProcess, r.External}
}
