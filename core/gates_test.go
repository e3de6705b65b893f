package core

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

func TestAuthorize(t *testing.T) {
	check.True(t, Authorize(RoleAdmin))
	check.True(t, Authorize(RoleBuyer))
	check.False(t, Authorize(RoleSupplier))
	check.False(t, Authorize(Role("")))
}

func TestCanManage(t *testing.T) {
	pending := &BiddingNotice{ID: "bid-1", Status: StatusPending}
	closed := &BiddingNotice{ID: "bid-2", Status: StatusClosed}

	// Creation is open to buyer-side roles regardless of any notice.
	check.True(t, CanManage(ManageModeCreate, nil, RoleAdmin))
	check.True(t, CanManage(ManageModeCreate, nil, RoleBuyer))
	check.False(t, CanManage(ManageModeCreate, nil, RoleSupplier))

	check.True(t, CanManage(ManageModeEdit, pending, RoleBuyer))
	check.False(t, CanManage(ManageModeEdit, closed, RoleBuyer))
	check.False(t, CanManage(ManageModeEdit, pending, RoleSupplier))
	check.False(t, CanManage(ManageModeEdit, nil, RoleBuyer))
}

func TestCanSelectWinner(t *testing.T) {
	notice := &BiddingNotice{ID: "bid-1", Status: StatusClosed}
	participations := []*Participation{{ID: "part-1", BiddingID: "bid-1"}}

	check.True(t, CanSelectWinner(notice, RoleBuyer, participations))
	check.True(t, CanSelectWinner(notice, RoleAdmin, participations))
	check.False(t, CanSelectWinner(notice, RoleSupplier, participations))
	check.False(t, CanSelectWinner(notice, RoleBuyer, nil))

	notice.Status = StatusOngoing
	check.False(t, CanSelectWinner(notice, RoleBuyer, participations))
}

func TestCanCreateContractDraft_OnlyOnce(t *testing.T) {
	notice := &BiddingNotice{ID: "bid-1", Status: StatusClosed}

	// No winner selected yet
	check.False(t, CanCreateContractDraft(notice, RoleBuyer))

	notice.SelectedParticipationID = "part-2"
	check.True(t, CanCreateContractDraft(notice, RoleBuyer))
	check.True(t, CanCreateContractDraft(notice, RoleAdmin))
	check.False(t, CanCreateContractDraft(notice, RoleSupplier))

	// Host records contract creation; the gate must close.
	notice.HasContract = true
	check.False(t, CanCreateContractDraft(notice, RoleBuyer))
}

func TestCanCreateOrder_MirrorsContractGate(t *testing.T) {
	notice := &BiddingNotice{
		ID:                      "bid-1",
		Status:                  StatusClosed,
		SelectedParticipationID: "part-2",
		HasContract:             true, // contract existing does not close the order gate
	}

	check.True(t, CanCreateOrder(notice, RoleBuyer))

	notice.HasOrder = true
	check.False(t, CanCreateOrder(notice, RoleBuyer))
}

func TestCanCreateGates_RequireClosed(t *testing.T) {
	for _, status := range []BiddingStatus{StatusPending, StatusOngoing, StatusCanceled} {
		notice := &BiddingNotice{ID: "bid-1", Status: status, SelectedParticipationID: "part-1"}
		check.False(t, CanCreateContractDraft(notice, RoleBuyer))
		check.False(t, CanCreateOrder(notice, RoleBuyer))
	}
}

func TestCanEvaluateParticipation(t *testing.T) {
	participations := []*Participation{{ID: "part-1", BiddingID: "bid-1"}}

	for _, status := range []BiddingStatus{StatusOngoing, StatusClosed} {
		notice := &BiddingNotice{ID: "bid-1", Status: status}
		check.True(t, CanEvaluateParticipation(notice, RoleBuyer, participations))
		check.False(t, CanEvaluateParticipation(notice, RoleSupplier, participations))
		check.False(t, CanEvaluateParticipation(notice, RoleBuyer, nil))
	}

	for _, status := range []BiddingStatus{StatusPending, StatusCanceled} {
		notice := &BiddingNotice{ID: "bid-1", Status: status}
		check.False(t, CanEvaluateParticipation(notice, RoleBuyer, participations))
	}
}

func TestCanDelete(t *testing.T) {
	notice := &BiddingNotice{ID: "bid-1", Status: StatusPending}

	check.True(t, CanDelete(notice, RoleAdmin, nil))
	check.False(t, CanDelete(notice, RoleSupplier, nil))

	// Bound notices are not deletable
	check.False(t, CanDelete(notice, RoleAdmin, []*Participation{{ID: "part-1"}}))
	notice.HasContract = true
	check.False(t, CanDelete(notice, RoleAdmin, nil))

	closed := &BiddingNotice{ID: "bid-2", Status: StatusClosed}
	check.False(t, CanDelete(closed, RoleAdmin, nil))
}

// Scenario: closed bidding with two scored participations; auto-selection
// opens the contract gate, creating a contract closes it again.
func TestGateSet_TracksSelectionLifecycle(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	notice := closedNotice()
	participations := []*Participation{
		evaluatedParticipation("part-1", 85, base),
		evaluatedParticipation("part-2", 92, base.Add(time.Hour)),
	}

	gates := GateSet(notice, RoleBuyer, participations)
	check.True(t, gates.CanSelectWinner)
	check.True(t, gates.CanEvaluate)
	check.False(t, gates.CanCreateContract)
	check.False(t, gates.CanCreateOrder)
	check.False(t, gates.HasExistingWinner)
	check.False(t, gates.CanEdit)

	result, err := SelectWinnerAuto(notice, participations, false)
	assert.NoError(t, err)
	check.Equal(t, "part-2", result.Winner.ID)

	// Gates must be recomputed after every mutation, never cached.
	gates = GateSet(notice, RoleBuyer, participations)
	check.True(t, gates.CanCreateContract)
	check.True(t, gates.CanCreateOrder)
	check.True(t, gates.HasExistingWinner)

	notice.HasContract = true
	gates = GateSet(notice, RoleBuyer, participations)
	check.False(t, gates.CanCreateContract)
	check.True(t, gates.CanCreateOrder)
}
