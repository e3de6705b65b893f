package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// findParticipation returns the participation with the given ID, or nil.
func findParticipation(participations []*Participation, participationID string) *Participation {
	for _, p := range participations {
		if p.ID == participationID {
			return p
		}
	}
	return nil
}

// hasParticipationFrom reports whether the supplier already has a
// participation in the given set.
func hasParticipationFrom(participations []*Participation, supplierID string) bool {
	for _, p := range participations {
		if p.SupplierID == supplierID {
			return true
		}
	}
	return false
}

// CanParticipate reports whether the supplier may submit a proposal right
// now: the actor must be a SUPPLIER, the notice must be ONGOING, the notice
// must be open to all (OPEN_PRICE) or list the supplier as invited, and the
// supplier must not already have a participation.
func CanParticipate(notice *BiddingNotice, role Role, supplier SupplierInfo, existing []*Participation) bool {
	if role != RoleSupplier {
		return false
	}
	if notice.Status != StatusOngoing {
		return false
	}
	if hasParticipationFrom(existing, supplier.ID) {
		return false
	}
	if notice.Method == MethodOpenPrice {
		return true
	}
	return notice.IsInvited(supplier.ID)
}

// Submit creates a new participation for the supplier.
//
// For FIXED_PRICE notices the unit price and quantity are copied from the
// notice and any proposed values are ignored. For OPEN_PRICE notices the
// supplier's values must both be positive (ErrInvalidProposal otherwise).
// Derived amounts always go through ComputeAmounts.
func Submit(notice *BiddingNotice, role Role, supplier SupplierInfo, proposal Proposal, existing []*Participation) (*Participation, error) {
	if role != RoleSupplier {
		return nil, fmt.Errorf("%w: only suppliers may participate, got role %s", ErrForbidden, role)
	}
	if notice.Status != StatusOngoing {
		return nil, fmt.Errorf("%w: bidding %s is %s, participation requires ONGOING", ErrInvalidLifecycleState, notice.ID, notice.Status)
	}
	if hasParticipationFrom(existing, supplier.ID) {
		return nil, fmt.Errorf("%w: supplier %s already submitted for bidding %s", ErrDuplicateParticipation, supplier.ID, notice.ID)
	}
	if notice.Method != MethodOpenPrice && !notice.IsInvited(supplier.ID) {
		return nil, fmt.Errorf("%w: supplier %s is not invited to bidding %s", ErrForbidden, supplier.ID, notice.ID)
	}

	unitPrice := proposal.UnitPrice
	quantity := proposal.Quantity
	if notice.Method == MethodFixedPrice {
		unitPrice = notice.UnitPrice
		quantity = notice.Quantity
	} else if unitPrice <= 0 || quantity <= 0 {
		return nil, fmt.Errorf("%w: unit price %.4f and quantity %.4f must both be positive", ErrInvalidProposal, unitPrice, quantity)
	}

	p := &Participation{
		ID:          uuid.NewString(),
		BiddingID:   notice.ID,
		SupplierID:  supplier.ID,
		CompanyName: supplier.CompanyName,
		Note:        proposal.Note,
		SubmittedAt: time.Now(),
	}
	ApplyAmountsToParticipation(p, unitPrice, quantity)

	return p, nil
}

// SetSelectedWinner marks exactly one participation as the selected bidder:
// the flag is cleared on every other participation of the notice before being
// set on the target, and the notice's back-reference is updated. The call is
// safe to repeat (re-selection) and can never leave two participations
// flagged at once; that is the central invariant of the registry.
func SetSelectedWinner(notice *BiddingNotice, participations []*Participation, participationID string) error {
	target := findParticipation(participations, participationID)
	if target == nil || target.BiddingID != notice.ID {
		return fmt.Errorf("%w: participation %s for bidding %s", ErrNotFound, participationID, notice.ID)
	}

	for _, p := range participations {
		p.IsSelectedBidder = false
	}
	target.IsSelectedBidder = true
	notice.SelectedParticipationID = target.ID
	return nil
}
