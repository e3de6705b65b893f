package core

import "fmt"

// HasExistingWinner reports whether a winner is already recorded on the
// notice. Callers use this to decide whether to ask for overwrite
// confirmation before re-running selection.
func HasExistingWinner(notice *BiddingNotice) bool {
	return notice.SelectedParticipationID != ""
}

// selectionPreconditions validates the shared requirements of both selection
// modes: the notice must be CLOSED and have at least one participation, and
// any existing winner must be explicitly confirmed for overwrite.
func selectionPreconditions(notice *BiddingNotice, participations []*Participation, confirmOverwrite bool) error {
	if notice.Status != StatusClosed {
		return fmt.Errorf("%w: winner selection requires CLOSED, bidding %s is %s", ErrInvalidLifecycleState, notice.ID, notice.Status)
	}
	if len(participations) == 0 {
		return fmt.Errorf("%w: bidding %s has no participations", ErrInvalidLifecycleState, notice.ID)
	}
	if HasExistingWinner(notice) && !confirmOverwrite {
		return fmt.Errorf("%w: bidding %s already has winner %s, confirm overwrite to re-select", ErrWinnerAlreadySelected, notice.ID, notice.SelectedParticipationID)
	}
	return nil
}

// SelectWinnerAuto picks the evaluated participation with the highest score,
// ties broken by earliest submission, and marks it as the selected bidder
// through SetSelectedWinner. Re-running with confirmOverwrite true is allowed
// and re-ranks from the current evaluations; without confirmation an existing
// winner fails with ErrWinnerAlreadySelected. Fails with
// ErrNoEvaluatedParticipations when nothing has been evaluated yet.
func SelectWinnerAuto(notice *BiddingNotice, participations []*Participation, confirmOverwrite bool) (*SelectionResult, error) {
	if err := selectionPreconditions(notice, participations, confirmOverwrite); err != nil {
		return nil, err
	}

	ranking := RankParticipations(participations)
	if len(ranking.Ranked) == 0 {
		return nil, fmt.Errorf("%w: bidding %s", ErrNoEvaluatedParticipations, notice.ID)
	}

	winner := ranking.Ranked[0]
	if err := SetSelectedWinner(notice, participations, winner.ID); err != nil {
		return nil, err
	}

	result := &SelectionResult{
		Winner:         winner,
		Ranked:         ranking.Ranked,
		UnevaluatedIDs: ranking.UnevaluatedIDs,
	}
	if len(ranking.Ranked) > 1 {
		result.RunnerUp = ranking.Ranked[1]
	}
	return result, nil
}

// SelectWinnerManual marks the caller-chosen participation as the selected
// bidder. The target must already be evaluated; otherwise the call fails with
// ErrEvaluationRequired and the caller flow evaluates first, then re-invokes
// selection. The overwrite confirmation rule matches SelectWinnerAuto.
func SelectWinnerManual(notice *BiddingNotice, participations []*Participation, participationID string, confirmOverwrite bool) (*SelectionResult, error) {
	if err := selectionPreconditions(notice, participations, confirmOverwrite); err != nil {
		return nil, err
	}

	target := findParticipation(participations, participationID)
	if target == nil {
		return nil, fmt.Errorf("%w: participation %s for bidding %s", ErrNotFound, participationID, notice.ID)
	}
	if !target.IsEvaluated {
		return nil, fmt.Errorf("%w: participation %s is not evaluated yet", ErrEvaluationRequired, participationID)
	}

	if err := SetSelectedWinner(notice, participations, target.ID); err != nil {
		return nil, err
	}

	ranking := RankParticipations(participations)
	result := &SelectionResult{
		Winner:         target,
		Ranked:         ranking.Ranked,
		UnevaluatedIDs: ranking.UnevaluatedIDs,
	}
	// Runner-up is the best-ranked participation other than the chosen one.
	for _, p := range ranking.Ranked {
		if p.ID != target.ID {
			result.RunnerUp = p
			break
		}
	}
	return result, nil
}
