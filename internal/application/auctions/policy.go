package auctions

import (
	"errors"
	"fmt"

	"remate/internal/domain"
)

var ErrIllegalTransition = errors.New("illegal auction status transition")

// Action names a lifecycle step an operator can take on an auction.
type Action string

const (
	ActionStart   Action = "start"
	ActionFinish  Action = "finish"
	ActionCancel  Action = "cancel"
	ActionRestore Action = "restore"
)

type edge struct {
	from []domain.AuctionStatus
	to   domain.AuctionStatus
}

var policy = map[Action]edge{
	ActionStart:   {from: []domain.AuctionStatus{domain.AuctionPending}, to: domain.AuctionInProgress},
	ActionFinish:  {from: []domain.AuctionStatus{domain.AuctionInProgress}, to: domain.AuctionFinished},
	ActionCancel:  {from: []domain.AuctionStatus{domain.AuctionPending, domain.AuctionInProgress}, to: domain.AuctionCancelled},
	ActionRestore: {from: []domain.AuctionStatus{domain.AuctionCancelled}, to: domain.AuctionPending},
}

// TransitionError reports an action the current status does not allow.
type TransitionError struct {
	Action Action
	From   domain.AuctionStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s an auction that is %s", e.Action, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}

func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := policy[a]; !ok {
		return "", domain.Invalid("action", fmt.Sprintf("unknown action %q", s))
	}
	return a, nil
}

// Next returns the status reached by applying a to an auction in from.
func Next(from domain.AuctionStatus, a Action) (domain.AuctionStatus, error) {
	e, ok := policy[a]
	if !ok {
		return "", domain.Invalid("action", fmt.Sprintf("unknown action %q", a))
	}
	for _, s := range e.from {
		if s == from {
			return e.to, nil
		}
	}
	return "", &TransitionError{Action: a, From: from}
}

// CanTransition reports whether some action moves an auction from one
// status to the other.
func CanTransition(from, to domain.AuctionStatus) bool {
	for a := range policy {
		if next, err := Next(from, a); err == nil && next == to {
			return true
		}
	}
	return false
}
