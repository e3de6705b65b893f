package core

// Authorize is the single capability check for buyer-side actions. Every
// component consults this instead of re-implementing the ADMIN/BUYER
// allow-list.
func Authorize(role Role) bool {
	return role == RoleAdmin || role == RoleBuyer
}

// ManageMode distinguishes notice creation from notice editing in CanManage.
type ManageMode string

const (
	ManageModeCreate ManageMode = "create"
	ManageModeEdit   ManageMode = "edit"
)

// CanManage reports whether the actor may create a new notice or edit the
// given one. Creation is always open to ADMIN/BUYER; editing additionally
// requires the notice to still be PENDING or ONGOING.
func CanManage(mode ManageMode, notice *BiddingNotice, role Role) bool {
	if !Authorize(role) {
		return false
	}
	if mode == ManageModeCreate {
		return true
	}
	return notice != nil && CanEditCore(notice.Status)
}

// CanSelectWinner reports whether winner selection is currently permitted:
// buyer-side role, CLOSED notice, at least one participation.
func CanSelectWinner(notice *BiddingNotice, role Role, participations []*Participation) bool {
	return Authorize(role) &&
		notice.Status == StatusClosed &&
		len(participations) > 0
}

// CanCreateContractDraft reports whether a contract draft may be created:
// buyer-side role, CLOSED notice, a selected winner, and no contract yet.
// The engine only gates contract creation; the host sets HasContract once
// creation succeeds.
func CanCreateContractDraft(notice *BiddingNotice, role Role) bool {
	return Authorize(role) &&
		notice.Status == StatusClosed &&
		notice.SelectedParticipationID != "" &&
		!notice.HasContract
}

// CanCreateOrder mirrors the contract-draft gate against HasOrder.
func CanCreateOrder(notice *BiddingNotice, role Role) bool {
	return Authorize(role) &&
		notice.Status == StatusClosed &&
		notice.SelectedParticipationID != "" &&
		!notice.HasOrder
}

// CanEvaluateParticipation reports whether evaluation actions are currently
// permitted: buyer-side role, ONGOING or CLOSED notice, participations exist.
func CanEvaluateParticipation(notice *BiddingNotice, role Role, participations []*Participation) bool {
	return Authorize(role) &&
		(notice.Status == StatusOngoing || notice.Status == StatusClosed) &&
		len(participations) > 0
}

// CanDelete reports whether the notice may still be destructively removed:
// only while PENDING or ONGOING, only by ADMIN/BUYER, and only while nothing
// binds it yet (no participations, contract or order).
func CanDelete(notice *BiddingNotice, role Role, participations []*Participation) bool {
	return Authorize(role) &&
		(notice.Status == StatusPending || notice.Status == StatusOngoing) &&
		len(participations) == 0 &&
		!notice.HasContract &&
		!notice.HasOrder
}

// Gates bundles every downstream predicate for one (notice, role, set)
// decision point. Hosts must recompute it after every mutating operation;
// the values must never be cached beyond a single decision, since lifecycle
// state can change between renders.
type Gates struct {
	CanEdit           bool `json:"can_edit"`
	CanDelete         bool `json:"can_delete"`
	CanSelectWinner   bool `json:"can_select_winner"`
	CanCreateContract bool `json:"can_create_contract"`
	CanCreateOrder    bool `json:"can_create_order"`
	CanEvaluate       bool `json:"can_evaluate"`
	HasExistingWinner bool `json:"has_existing_winner"`
}

// GateSet evaluates all downstream gates at once for a single decision point.
func GateSet(notice *BiddingNotice, role Role, participations []*Participation) Gates {
	return Gates{
		CanEdit:           CanManage(ManageModeEdit, notice, role),
		CanDelete:         CanDelete(notice, role, participations),
		CanSelectWinner:   CanSelectWinner(notice, role, participations),
		CanCreateContract: CanCreateContractDraft(notice, role),
		CanCreateOrder:    CanCreateOrder(notice, role),
		CanEvaluate:       CanEvaluateParticipation(notice, role, participations),
		HasExistingWinner: HasExistingWinner(notice),
	}
}
