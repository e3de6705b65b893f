// Package engine is the processing facade hosts embed: it serializes
// mutating operations per bidding notice, orchestrates the core components,
// and emits signed selection records for the audit trail. All operations are
// synchronous in-memory transformations; persistence of the mutated entities
// and of returned status history entries is the host's responsibility.
package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/cloudx-io/openbidding/bidapi"
	"github.com/cloudx-io/openbidding/core"
)

// Engine coordinates the bidding lifecycle components behind a per-notice
// single-writer lock and holds the signing key for selection records.
type Engine struct {
	signer *SigningKeyManager
	locks  *noticeLocks
}

// New creates an Engine with a fresh record-signing key pair.
func New() (*Engine, error) {
	signer, err := NewSigningKeyManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signing key manager: %w", err)
	}
	log.Printf("INFO: SigningKeyManager initialized")
	return &Engine{
		signer: signer,
		locks:  newNoticeLocks(),
	}, nil
}

// Signer exposes the record-signing key manager, chiefly so hosts can export
// the public key for offline record validation.
func (e *Engine) Signer() *SigningKeyManager {
	return e.signer
}

// Transition validates and applies a lifecycle change, returning the
// StatusHistory entry the host must append to its audit log.
func (e *Engine) Transition(notice *core.BiddingNotice, target core.BiddingStatus, role core.Role, reason string) (*core.StatusHistory, error) {
	defer e.locks.lock(notice.ID)()

	entry, err := core.Transition(notice, target, role, reason)
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: Bidding %s transitioned %s -> %s by %s", notice.ID, entry.FromStatus, entry.ToStatus, role)
	return entry, nil
}

// SubmitParticipation records a supplier proposal against the notice after
// eligibility checks. The returned participation must be persisted by the
// host together with the unchanged notice.
func (e *Engine) SubmitParticipation(notice *core.BiddingNotice, role core.Role, supplier core.SupplierInfo, proposal core.Proposal, existing []*core.Participation) (*core.Participation, error) {
	defer e.locks.lock(notice.ID)()

	p, err := core.Submit(notice, role, supplier, proposal, existing)
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: Supplier %s submitted participation %s for bidding %s (total %.2f)", supplier.ID, p.ID, notice.ID, p.TotalAmount)
	return p, nil
}

// EvaluateParticipation scores one participation. The actor must pass the
// evaluation gate (buyer-side role, ONGOING/CLOSED notice, participations
// present); otherwise the call fails with ErrForbidden before any scoring.
func (e *Engine) EvaluateParticipation(notice *core.BiddingNotice, participations []*core.Participation, participationID string, role core.Role, evaluatorID string, criteria core.EvaluationCriteria, comments string) (*core.Evaluation, error) {
	defer e.locks.lock(notice.ID)()

	if !core.CanEvaluateParticipation(notice, role, participations) {
		return nil, fmt.Errorf("%w: role %s may not evaluate bidding %s in status %s", core.ErrForbidden, role, notice.ID, notice.Status)
	}

	target := findByID(participations, participationID)
	if target == nil {
		return nil, fmt.Errorf("%w: participation %s for bidding %s", core.ErrNotFound, participationID, notice.ID)
	}

	evaluation, err := core.Evaluate(notice, target, evaluatorID, criteria, comments)
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: Participation %s evaluated by %s: weighted total %.2f (grade %s)",
		participationID, evaluatorID, evaluation.WeightedTotalScore, core.GradeFor(evaluation.WeightedTotalScore))
	return evaluation, nil
}

// ProcessSelection runs winner selection end to end: gate check, automatic or
// manual selection, and signed record generation. Mirrors the request/response
// envelope convention of the boundary layer rather than returning an error;
// a failed selection leaves all entities unchanged.
func (e *Engine) ProcessSelection(req bidapi.SelectionRequest) bidapi.SelectionResponse {
	startTime := time.Now()
	defer e.locks.lock(req.Notice.ID)()

	log.Printf("INFO: Processing %s selection for bidding %s with %d participations", req.Mode, req.Notice.ID, len(req.Participations))

	if !core.CanSelectWinner(req.Notice, req.Role, req.Participations) {
		return selectionFailure(fmt.Sprintf("Winner selection not permitted for role %s on bidding %s (status %s, %d participations)",
			req.Role, req.Notice.ID, req.Notice.Status, len(req.Participations)), startTime)
	}

	var result *core.SelectionResult
	var err error
	switch req.Mode {
	case bidapi.SelectionModeAuto:
		result, err = core.SelectWinnerAuto(req.Notice, req.Participations, req.ConfirmOverwrite)
	case bidapi.SelectionModeManual:
		result, err = core.SelectWinnerManual(req.Notice, req.Participations, req.ParticipationID, req.ConfirmOverwrite)
	default:
		err = fmt.Errorf("unknown selection mode: %q", req.Mode)
	}
	if err != nil {
		log.Printf("INFO: Selection failed for bidding %s: %v", req.Notice.ID, err)
		return selectionFailure(fmt.Sprintf("Selection failed: %v", err), startTime)
	}

	record, err := GenerateSelectionRecord(e.signer, req.Notice, req.Participations, req.Mode, result)
	processingTime := time.Since(startTime).Milliseconds()

	log.Printf("INFO: Selection complete: winner=%s (%.2f), runner-up=%s (%.2f), processing=%dms",
		participationLabel(result.Winner), participationScore(result.Winner),
		participationLabel(result.RunnerUp), participationScore(result.RunnerUp),
		processingTime)

	if err != nil {
		log.Printf("ERROR: Selection record signing failed: %v", err)
		return bidapi.SelectionResponse{
			Type:           "selection_response",
			Success:        false,
			Message:        fmt.Sprintf("Selection record signing failed: %v", err),
			ProcessingTime: processingTime,
		}
	}

	return bidapi.SelectionResponse{
		Type:           "selection_response",
		Success:        true,
		Message:        fmt.Sprintf("Selected winner among %d participations", len(req.Participations)),
		Winner:         result.Winner,
		RunnerUp:       result.RunnerUp,
		UnevaluatedIDs: result.UnevaluatedIDs,
		Record:         record,
		ProcessingTime: processingTime,
	}
}

// Gates recomputes every downstream predicate for one decision point.
// Read-only; runs without the per-notice lock.
func (e *Engine) Gates(notice *core.BiddingNotice, role core.Role, participations []*core.Participation) core.Gates {
	return core.GateSet(notice, role, participations)
}

func selectionFailure(message string, startTime time.Time) bidapi.SelectionResponse {
	return bidapi.SelectionResponse{
		Type:           "selection_response",
		Success:        false,
		Message:        message,
		ProcessingTime: time.Since(startTime).Milliseconds(),
	}
}

func findByID(participations []*core.Participation, id string) *core.Participation {
	for _, p := range participations {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func participationLabel(p *core.Participation) string {
	if p == nil {
		return "none"
	}
	return p.ID
}

func participationScore(p *core.Participation) float64 {
	if p == nil || p.EvaluationScore == nil {
		return 0.0
	}
	return *p.EvaluationScore
}
