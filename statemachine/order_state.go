package statemachine

import (
	"errors"
	"time"

	"canteen-api/models"
)

// CancelWindow is the grace period after placement during which a customer
// may self-cancel a Pending order.
const CancelWindow = 60 * time.Second

var (
	// ErrTerminalState is returned for any transition attempted out of
	// Cancelled or Settled.
	ErrTerminalState = errors.New("order is in a terminal state")
	// ErrInvalidTransition is returned for a transition the state machine
	// does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "staff", "customer"
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Staff confirm or cancel a pending order
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: "staff"},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "staff"},
	// Customer may cancel a pending order (window enforced separately)
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "customer"},
	// Staff deliver or cancel a confirmed order
	{From: models.StatusConfirmed, To: models.StatusDelivered, Actor: "staff"},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: "staff"},
	// Settlement closes a delivered order's bill
	{From: models.StatusDelivered, To: models.StatusSettled, Actor: "staff"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// IsTerminal reports whether no transition may ever leave the status.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusCancelled || status == models.StatusSettled
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another.
// Terminal states are reported distinctly from merely-illegal transitions.
func CanTransition(from, to models.OrderStatus, actor string) error {
	if IsTerminal(from) {
		return ErrTerminalState
	}
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return ErrInvalidTransition
}

// ActorFor maps a user role onto the state machine's actor label.
func ActorFor(role models.UserRole) string {
	if role.IsStaff() {
		return "staff"
	}
	return "customer"
}

// CancellableAt reports whether a customer self-cancel is still allowed at
// time now for an order placed at placedAt with the given status. It is a
// pure query: callers use it to drive a live countdown without mutating
// anything. The window is evaluated against now on every call, never cached.
func CancellableAt(status models.OrderStatus, placedAt, now time.Time) bool {
	return status == models.StatusPending && now.Sub(placedAt) < CancelWindow
}

// CancelSecondsLeft returns the whole seconds remaining in the cancellation
// window, clamped at zero.
func CancelSecondsLeft(status models.OrderStatus, placedAt, now time.Time) int {
	if !CancellableAt(status, placedAt, now) {
		return 0
	}
	left := CancelWindow - now.Sub(placedAt)
	return int(left / time.Second)
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
