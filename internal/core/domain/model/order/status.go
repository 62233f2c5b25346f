package order

import (
	"fmt"
	"strings"

	"posrelay/internal/pkg/errs"
)

// Status represents the kitchen workflow state of an order.
//
// State transitions:
//
//	New <──> Preparing <──> Ready
//	 ^                        │
//	 └────────────────────────┘
//
// Every valid status may move to every other valid status. There is no terminal
// state: a Ready order can be sent back to Preparing when the kitchen reopens it.
// Only membership in the set is enforced.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is assigned when the waiter submits the order.
	New

	// Preparing means the kitchen has picked the order up.
	Preparing

	// Ready means the order can be served.
	Ready
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		New:       "new",
		Preparing: "preparing",
		Ready:     "ready",
	}
}

func getValidStatuses() map[string]Status {
	return map[string]Status{
		"new":       New,
		"preparing": Preparing,
		"ready":     Ready,
	}
}

// Statuses lists the valid statuses in workflow order.
func Statuses() []Status {
	return []Status{New, Preparing, Ready}
}

// ParseStatus converts the wire name of a status. Surrounding whitespace is ignored.
//
// Returns:
//   - ValueIsRequiredError when s is blank
//   - ValueIsInvalidError when s names no known status
func ParseStatus(s string) (Status, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return Unknown, errs.NewValueIsRequiredError("status")
	}

	status, ok := getValidStatuses()[name]
	if !ok {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%q is not one of %s", name, strings.Join(statusNames(), ", ")),
		)
	}
	return status, nil
}

// Validate checks if the Status value is one of New, Preparing or Ready.
func (s Status) Validate() error {
	if s != New && s != Preparing && s != Ready {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ValidateTransition checks that the order may move from s to next.
// Any valid status may follow any valid status.
func (s Status) ValidateTransition(next Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return next.Validate()
}

// String returns the wire name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func statusNames() []string {
	names := make([]string, 0, len(Statuses()))
	for _, s := range Statuses() {
		names = append(names, s.String())
	}
	return names
}
