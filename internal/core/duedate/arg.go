package duedate

import "time"

// ArgState says what the caller asked to happen to a task's due date.
type ArgState int

const (
	// NotSupplied leaves the due date unchanged.
	NotSupplied ArgState = iota
	// Empty clears the due date.
	Empty
	// Value parses the token and sets the due date.
	Value
)

// Arg is a due-date argument as given on the command line.
type Arg struct {
	State ArgState
	Token string
}

// Omitted returns an Arg for a due date that was not given at all.
func Omitted() Arg { return Arg{State: NotSupplied} }

// FromToken returns an Arg for a due date that was given, possibly empty.
func FromToken(token string) Arg {
	if token == "" {
		return Arg{State: Empty}
	}
	return Arg{State: Value, Token: token}
}

// Resolve turns the argument into the new due date. The boolean is false when
// the due date should be left untouched. A nil time with true clears it.
func (a Arg) Resolve(now time.Time) (*time.Time, bool, error) {
	switch a.State {
	case NotSupplied:
		return nil, false, nil
	case Empty:
		return nil, true, nil
	case Value:
		t, err := Parse(a.Token, now)
		if err != nil {
			return nil, false, err
		}
		return &t, true, nil
	default:
		panic("duedate: unknown argument state")
	}
}
