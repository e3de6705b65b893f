package core

import "errors"

// Engine error kinds. Every operation either returns the updated entity or
// one of these wrapped with call-site context; match with errors.Is.
// Validation always happens before mutation, so a failed call leaves all
// entities unchanged.
var (
	// ErrIllegalTransition: the requested lifecycle change is not in the
	// transition table, or the actor role may not drive transitions.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrInvalidLifecycleState: the action was attempted outside its
	// required status set (e.g. evaluating a PENDING notice).
	ErrInvalidLifecycleState = errors.New("invalid lifecycle state")

	// ErrDuplicateParticipation: the supplier already has a participation
	// for this notice.
	ErrDuplicateParticipation = errors.New("duplicate participation")

	// ErrInvalidProposal: non-positive price or quantity on an OPEN_PRICE
	// submission.
	ErrInvalidProposal = errors.New("invalid proposal")

	// ErrInvalidScoreRange: an evaluation criterion is outside its range.
	ErrInvalidScoreRange = errors.New("score out of range")

	// ErrNoEvaluatedParticipations: automatic selection found nothing to rank.
	ErrNoEvaluatedParticipations = errors.New("no evaluated participations")

	// ErrEvaluationRequired: manual selection targeted an unevaluated
	// participation; evaluate first, then re-invoke selection.
	ErrEvaluationRequired = errors.New("evaluation required before selection")

	// ErrWinnerAlreadySelected: a winner exists and the caller did not
	// confirm the overwrite.
	ErrWinnerAlreadySelected = errors.New("winner already selected")

	// ErrForbidden: the actor role is not authorized for the action.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound: the referenced participation does not belong to the notice.
	ErrNotFound = errors.New("not found")
)
