package domain

import (
	"fmt"
	"time"
)

// Action is a requested lifecycle change
type Action string

const (
	ActionCheckIn    Action = "check_in"
	ActionComplete   Action = "complete"
	ActionCancel     Action = "cancel"
	ActionMarkMissed Action = "mark_missed" // issued by the missed scanner only
)

var transitions = map[Action]struct {
	from []BookingStatus
	to   BookingStatus
}{
	ActionCheckIn:    {from: []BookingStatus{StatusConfirmed}, to: StatusCheckedIn},
	ActionComplete:   {from: []BookingStatus{StatusConfirmed, StatusCheckedIn}, to: StatusCompleted},
	ActionCancel:     {from: []BookingStatus{StatusPending, StatusConfirmed, StatusCheckedIn}, to: StatusCancelled},
	ActionMarkMissed: {from: []BookingStatus{StatusPending, StatusConfirmed}, to: StatusMissed},
}

// ParseAction converts an external string into an Action
func ParseAction(s string) (Action, error) {
	action := Action(s)
	if _, ok := transitions[action]; !ok {
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidInput, s)
	}
	return action, nil
}

// NextStatus returns the status reached by applying action to current.
// Terminal statuses accept no action.
func NextStatus(current BookingStatus, action Action) (BookingStatus, error) {
	rule, ok := transitions[action]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidInput, action)
	}
	if current.IsTerminal() {
		return "", fmt.Errorf("%w: booking is %s", ErrInvalidTransition, current)
	}
	for _, from := range rule.from {
		if current == from {
			return rule.to, nil
		}
	}
	return "", fmt.Errorf("%w: cannot %s a %s booking", ErrInvalidTransition, action, current)
}

// CanReschedule returns true if the booking time may still be moved
func CanReschedule(status BookingStatus) bool {
	return status == StatusPending || status == StatusConfirmed || status == StatusMissed
}

// IsOverdue returns true if the booking started more than grace ago, nobody checked in
// and it is still waiting to be served
func IsOverdue(b *Booking, now time.Time, grace time.Duration) bool {
	if b.CheckedIn {
		return false
	}
	for _, excluded := range MissedCandidateExcluded {
		if b.Status == excluded {
			return false
		}
	}
	return b.StartTime.Before(now.Add(-grace))
}
