package core

import (
	"errors"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

var allStatuses = []BiddingStatus{StatusPending, StatusOngoing, StatusClosed, StatusCanceled}

func TestCanTransition_Table(t *testing.T) {
	cases := []struct {
		from    BiddingStatus
		to      BiddingStatus
		allowed bool
	}{
		{StatusPending, StatusOngoing, true},
		{StatusPending, StatusCanceled, true},
		{StatusPending, StatusClosed, false},
		{StatusOngoing, StatusClosed, true},
		{StatusOngoing, StatusCanceled, true},
		{StatusOngoing, StatusPending, false},
		{StatusClosed, StatusPending, false},
		{StatusClosed, StatusOngoing, false},
		{StatusClosed, StatusCanceled, false},
		{StatusCanceled, StatusPending, false},
		{StatusCanceled, StatusOngoing, false},
		{StatusCanceled, StatusClosed, false},
	}

	for _, tc := range cases {
		check.Equal(t, tc.allowed, CanTransition(tc.from, tc.to, RoleBuyer))
		check.Equal(t, tc.allowed, CanTransition(tc.from, tc.to, RoleAdmin))
		// Suppliers and unauthenticated actors are always rejected
		check.False(t, CanTransition(tc.from, tc.to, RoleSupplier))
		check.False(t, CanTransition(tc.from, tc.to, Role("")))
	}
}

func TestCanTransition_NoSelfTransitions(t *testing.T) {
	for _, s := range allStatuses {
		check.False(t, CanTransition(s, s, RoleAdmin))
	}
}

func TestCanTransition_TerminalStatesHaveNoExits(t *testing.T) {
	for _, target := range allStatuses {
		check.False(t, CanTransition(StatusClosed, target, RoleAdmin))
		check.False(t, CanTransition(StatusCanceled, target, RoleAdmin))
	}
}

func TestTransition_FullLifecycle(t *testing.T) {
	notice := &BiddingNotice{ID: "bid-1", Status: StatusPending}

	entry, err := Transition(notice, StatusOngoing, RoleBuyer, "published")
	assert.NoError(t, err)
	assert.NotNil(t, entry)
	check.Equal(t, StatusOngoing, notice.Status)
	check.Equal(t, StatusPending, entry.FromStatus)
	check.Equal(t, StatusOngoing, entry.ToStatus)
	check.Equal(t, RoleBuyer, entry.Actor)
	check.Equal(t, "published", entry.Reason)
	check.Equal(t, "bid-1", entry.BiddingID)
	check.NotEqual(t, "", entry.ID)
	check.False(t, entry.Timestamp.IsZero())

	entry2, err := Transition(notice, StatusClosed, RoleAdmin, "deadline reached")
	assert.NoError(t, err)
	check.Equal(t, StatusClosed, notice.Status)
	check.Equal(t, StatusOngoing, entry2.FromStatus)
	check.NotEqual(t, entry.ID, entry2.ID)
}

func TestTransition_DirectPendingToClosedFails(t *testing.T) {
	notice := &BiddingNotice{ID: "bid-2", Status: StatusPending}

	entry, err := Transition(notice, StatusClosed, RoleBuyer, "")
	check.Nil(t, entry)
	check.True(t, errors.Is(err, ErrIllegalTransition))
	// Failed transition leaves the notice unchanged
	check.Equal(t, StatusPending, notice.Status)
}

func TestTransition_SupplierRejected(t *testing.T) {
	notice := &BiddingNotice{ID: "bid-3", Status: StatusPending}

	_, err := Transition(notice, StatusOngoing, RoleSupplier, "")
	check.True(t, errors.Is(err, ErrIllegalTransition))
	check.Equal(t, StatusPending, notice.Status)
}

func TestTransition_UnknownTargetRejected(t *testing.T) {
	notice := &BiddingNotice{ID: "bid-4", Status: StatusPending}

	_, err := Transition(notice, BiddingStatus("ARCHIVED"), RoleAdmin, "")
	check.True(t, errors.Is(err, ErrIllegalTransition))
}

func TestEditability(t *testing.T) {
	check.True(t, CanEditCore(StatusPending))
	check.True(t, CanEditCore(StatusOngoing))
	check.False(t, CanEditCore(StatusClosed))
	check.False(t, CanEditCore(StatusCanceled))

	check.True(t, CanEditPricing(StatusPending))
	check.False(t, CanEditPricing(StatusOngoing))
	check.False(t, CanEditPricing(StatusClosed))
	check.False(t, CanEditPricing(StatusCanceled))
}
