package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// transitionTable is the complete map of legal lifecycle transitions.
// PENDING is the only initial state; CLOSED and CANCELED are terminal.
var transitionTable = map[BiddingStatus][]BiddingStatus{
	StatusPending:  {StatusOngoing, StatusCanceled},
	StatusOngoing:  {StatusClosed, StatusCanceled},
	StatusClosed:   {},
	StatusCanceled: {},
}

// CanTransition reports whether the given lifecycle change is legal for the
// actor role. Only ADMIN or BUYER actors may invoke any transition. This is a
// pure predicate; it may run unsynchronized.
func CanTransition(current, target BiddingStatus, role Role) bool {
	if !Authorize(role) {
		return false
	}
	for _, allowed := range transitionTable[current] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Transition moves the notice to the target status and returns the
// StatusHistory entry the host must append to its audit trail. The history
// log is append-only and is the sole audit trail of lifecycle changes.
//
// A request not in the transition table, or from a role other than
// ADMIN/BUYER, fails with ErrIllegalTransition and leaves the notice
// unchanged.
func Transition(notice *BiddingNotice, target BiddingStatus, role Role, reason string) (*StatusHistory, error) {
	if !ValidBiddingStatus(target) {
		return nil, fmt.Errorf("%w: unknown target status %q", ErrIllegalTransition, target)
	}
	if !Authorize(role) {
		return nil, fmt.Errorf("%w: role %s may not change bidding status", ErrIllegalTransition, role)
	}
	if !CanTransition(notice.Status, target, role) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, notice.Status, target)
	}

	entry := &StatusHistory{
		ID:         uuid.NewString(),
		BiddingID:  notice.ID,
		FromStatus: notice.Status,
		ToStatus:   target,
		Reason:     reason,
		Actor:      role,
		Timestamp:  time.Now(),
	}
	notice.Status = target
	return entry, nil
}

// CanEditCore reports whether the notice's general fields (description,
// supplier list, general edits) are still mutable. Once CLOSED or CANCELED
// the notice is immutable except for selection and contract/order bookkeeping.
func CanEditCore(status BiddingStatus) bool {
	return status == StatusPending || status == StatusOngoing
}

// CanEditPricing reports whether the bid method and initial pricing are
// still mutable. Pricing locks as soon as the notice leaves PENDING.
func CanEditPricing(status BiddingStatus) bool {
	return status == StatusPending
}
