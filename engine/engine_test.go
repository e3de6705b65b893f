package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/cloudx-io/openbidding/bidapi"
	"github.com/cloudx-io/openbidding/core"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New()
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return e
}

func scoreOf(v float64) *float64 {
	return &v
}

func closedNoticeWithScores(t *testing.T) (*core.BiddingNotice, []*core.Participation) {
	t.Helper()
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	notice := &core.BiddingNotice{
		ID:        "bid-1",
		BidNumber: "BN-2024-001",
		Status:    core.StatusClosed,
		Method:    core.MethodOpenPrice,
	}
	participations := []*core.Participation{
		{
			ID: "part-1", BiddingID: "bid-1", SupplierID: "sup-1",
			TotalAmount: 9900, SubmittedAt: base,
			IsEvaluated: true, EvaluationScore: scoreOf(85),
		},
		{
			ID: "part-2", BiddingID: "bid-1", SupplierID: "sup-2",
			TotalAmount: 10450, SubmittedAt: base.Add(time.Hour),
			IsEvaluated: true, EvaluationScore: scoreOf(92),
		},
	}
	return notice, participations
}

func TestEngine_FullBiddingFlow(t *testing.T) {
	e := newTestEngine(t)

	notice := &core.BiddingNotice{
		ID:        "bid-1",
		BidNumber: "BN-2024-001",
		Status:    core.StatusPending,
		Method:    core.MethodOpenPrice,
	}

	entry, err := e.Transition(notice, core.StatusOngoing, core.RoleBuyer, "published")
	assert.NoError(t, err)
	check.Equal(t, core.StatusOngoing, notice.Status)
	check.Equal(t, core.StatusPending, entry.FromStatus)

	var participations []*core.Participation
	p1, err := e.SubmitParticipation(notice, core.RoleSupplier, core.SupplierInfo{ID: "sup-1", CompanyName: "Acme"}, core.Proposal{UnitPrice: 900, Quantity: 10}, participations)
	assert.NoError(t, err)
	participations = append(participations, p1)

	p2, err := e.SubmitParticipation(notice, core.RoleSupplier, core.SupplierInfo{ID: "sup-2", CompanyName: "Globex"}, core.Proposal{UnitPrice: 950, Quantity: 10}, participations)
	assert.NoError(t, err)
	participations = append(participations, p2)

	_, err = e.EvaluateParticipation(notice, participations, p1.ID, core.RoleBuyer, "buyer-7", core.EvaluationCriteria{PriceScore: 28, QualityScore: 30, DeliveryScore: 15, ReliabilityScore: 8}, "")
	assert.NoError(t, err)
	_, err = e.EvaluateParticipation(notice, participations, p2.ID, core.RoleBuyer, "buyer-7", core.EvaluationCriteria{PriceScore: 25, QualityScore: 38, DeliveryScore: 18, ReliabilityScore: 9}, "")
	assert.NoError(t, err)

	_, err = e.Transition(notice, core.StatusClosed, core.RoleAdmin, "deadline reached")
	assert.NoError(t, err)

	response := e.ProcessSelection(bidapi.SelectionRequest{
		Notice:         notice,
		Participations: participations,
		Role:           core.RoleBuyer,
		Mode:           bidapi.SelectionModeAuto,
	})
	check.True(t, response.Success)
	assert.NotNil(t, response.Winner)
	check.Equal(t, p2.ID, response.Winner.ID) // weighted 27.2 vs 24.2
	check.NotEqual(t, 0, len(response.Record))
	check.GreaterThanOrEqual(t, response.ProcessingTime, int64(0))

	gates := e.Gates(notice, core.RoleBuyer, participations)
	check.True(t, gates.CanCreateContract)
	check.True(t, gates.CanCreateOrder)
}

func TestEngine_EvaluateForbiddenForSupplier(t *testing.T) {
	e := newTestEngine(t)
	notice, participations := closedNoticeWithScores(t)

	_, err := e.EvaluateParticipation(notice, participations, "part-1", core.RoleSupplier, "sup-1", core.EvaluationCriteria{}, "")
	check.True(t, errors.Is(err, core.ErrForbidden))
}

func TestEngine_EvaluateUnknownParticipation(t *testing.T) {
	e := newTestEngine(t)
	notice, participations := closedNoticeWithScores(t)

	_, err := e.EvaluateParticipation(notice, participations, "missing", core.RoleBuyer, "buyer-7", core.EvaluationCriteria{}, "")
	check.True(t, errors.Is(err, core.ErrNotFound))
}

func TestProcessSelection_SupplierRejected(t *testing.T) {
	e := newTestEngine(t)
	notice, participations := closedNoticeWithScores(t)

	response := e.ProcessSelection(bidapi.SelectionRequest{
		Notice:         notice,
		Participations: participations,
		Role:           core.RoleSupplier,
		Mode:           bidapi.SelectionModeAuto,
	})
	check.False(t, response.Success)
	check.Nil(t, response.Winner)
	check.Equal(t, "", notice.SelectedParticipationID)
}

func TestProcessSelection_ManualMode(t *testing.T) {
	e := newTestEngine(t)
	notice, participations := closedNoticeWithScores(t)

	response := e.ProcessSelection(bidapi.SelectionRequest{
		Notice:          notice,
		Participations:  participations,
		Role:            core.RoleAdmin,
		Mode:            bidapi.SelectionModeManual,
		ParticipationID: "part-1",
	})
	check.True(t, response.Success)
	assert.NotNil(t, response.Winner)
	check.Equal(t, "part-1", response.Winner.ID)
	check.Equal(t, "part-1", notice.SelectedParticipationID)
}

func TestProcessSelection_UnknownModeFails(t *testing.T) {
	e := newTestEngine(t)
	notice, participations := closedNoticeWithScores(t)

	response := e.ProcessSelection(bidapi.SelectionRequest{
		Notice:         notice,
		Participations: participations,
		Role:           core.RoleBuyer,
		Mode:           bidapi.SelectionMode("random"),
	})
	check.False(t, response.Success)
	check.Equal(t, "", notice.SelectedParticipationID)
}

func TestProcessSelection_ConcurrentAutoSelectionsKeepOneWinner(t *testing.T) {
	e := newTestEngine(t)
	notice, participations := closedNoticeWithScores(t)

	// Racing selections on the same notice are serialized by the engine;
	// the single-winner invariant must hold afterwards.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.ProcessSelection(bidapi.SelectionRequest{
				Notice:           notice,
				Participations:   participations,
				Role:             core.RoleBuyer,
				Mode:             bidapi.SelectionModeAuto,
				ConfirmOverwrite: true,
			})
		}()
	}
	wg.Wait()

	winners := 0
	for _, p := range participations {
		if p.IsSelectedBidder {
			winners++
		}
	}
	check.Equal(t, 1, winners)
	check.Equal(t, "part-2", notice.SelectedParticipationID)
}

func TestNoticeLocks_DistinctNoticesIndependent(t *testing.T) {
	locks := newNoticeLocks()

	unlockA := locks.lock("bid-a")
	// A second notice must not block on the first one's lock.
	done := make(chan struct{})
	go func() {
		unlockB := locks.lock("bid-b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on a different notice blocked")
	}
	unlockA()
}
