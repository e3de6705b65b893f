package core

import "time"

// Role identifies the kind of actor invoking an engine operation.
// Roles are supplied by the hosting application's session layer and
// are trusted as-is; the engine performs no authentication.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleBuyer    Role = "BUYER"
	RoleSupplier Role = "SUPPLIER"
)

// ValidRole reports whether r is one of the known actor roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleBuyer, RoleSupplier:
		return true
	default:
		return false
	}
}

// BiddingMethod determines how proposal pricing works for a notice.
type BiddingMethod string

const (
	// MethodFixedPrice locks unit price and quantity at notice creation;
	// participations copy both from the notice.
	MethodFixedPrice BiddingMethod = "FIXED_PRICE"

	// MethodOpenPrice lets each supplier propose its own unit price and quantity.
	MethodOpenPrice BiddingMethod = "OPEN_PRICE"
)

// ValidBiddingMethod reports whether m is a known bidding method.
func ValidBiddingMethod(m BiddingMethod) bool {
	switch m {
	case MethodFixedPrice, MethodOpenPrice:
		return true
	default:
		return false
	}
}

// BiddingStatus is the single source of truth for a notice's lifecycle state.
type BiddingStatus string

const (
	StatusPending  BiddingStatus = "PENDING"
	StatusOngoing  BiddingStatus = "ONGOING"
	StatusClosed   BiddingStatus = "CLOSED"
	StatusCanceled BiddingStatus = "CANCELED"
)

// ValidBiddingStatus reports whether s is a known lifecycle status.
func ValidBiddingStatus(s BiddingStatus) bool {
	switch s {
	case StatusPending, StatusOngoing, StatusClosed, StatusCanceled:
		return true
	default:
		return false
	}
}

// BiddingNotice is a published call for supplier proposals.
// SupplyPrice, VAT and TotalAmount are derived from Quantity and UnitPrice
// and must only ever be written through ComputeAmounts (see amounts.go).
type BiddingNotice struct {
	ID        string        `json:"id"`
	BidNumber string        `json:"bid_number"` // human-readable, immutable once issued
	Status    BiddingStatus `json:"status"`
	Method    BiddingMethod `json:"method"`

	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	SupplyPrice float64 `json:"supply_price"`
	VAT         float64 `json:"vat"`
	TotalAmount float64 `json:"total_amount"`

	// InvitedSupplierIDs restricts who may participate when visibility is
	// limited. An empty list on an OPEN_PRICE notice means open to all.
	InvitedSupplierIDs []string `json:"invited_supplier_ids,omitempty"`

	// SelectedParticipationID references the winning participation.
	// Re-selection overwrites it, never appends.
	SelectedParticipationID string `json:"selected_participation_id,omitempty"`

	HasContract bool `json:"has_contract"`
	HasOrder    bool `json:"has_order"`
}

// IsInvited reports whether the supplier appears in the notice's invite list.
func (n *BiddingNotice) IsInvited(supplierID string) bool {
	for _, id := range n.InvitedSupplierIDs {
		if id == supplierID {
			return true
		}
	}
	return false
}

// Participation is one supplier's proposal against a bidding notice.
// It is never mutated by the supplier after submission; evaluation and
// selection fields are written only by the engine.
type Participation struct {
	ID          string `json:"id"`
	BiddingID   string `json:"bidding_id"`
	SupplierID  string `json:"supplier_id"`
	CompanyName string `json:"company_name"`

	UnitPrice   float64 `json:"unit_price"`
	Quantity    float64 `json:"quantity"`
	SupplyPrice float64 `json:"supply_price"`
	VAT         float64 `json:"vat"`
	TotalAmount float64 `json:"total_amount"`

	Note        string    `json:"note,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"` // set once, immutable

	IsEvaluated     bool     `json:"is_evaluated"`
	EvaluationScore *float64 `json:"evaluation_score,omitempty"` // set only when evaluated

	// IsSelectedBidder is true on at most one participation per notice
	// at any instant.
	IsSelectedBidder bool `json:"is_selected_bidder"`
}

// SupplierInfo identifies the supplier behind a participation request.
// It comes from the host's session collaborator and is trusted as-is.
type SupplierInfo struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
}

// Proposal carries a supplier's proposed terms for an OPEN_PRICE notice.
// FIXED_PRICE submissions ignore the price and quantity fields.
type Proposal struct {
	UnitPrice float64 `json:"unit_price"`
	Quantity  float64 `json:"quantity"`
	Note      string  `json:"note,omitempty"`
}

// Evaluation holds one evaluator's scoring of a participation.
// Re-evaluation overwrites the prior Evaluation; no history is retained.
type Evaluation struct {
	ParticipationID  string  `json:"participation_id"`
	EvaluatorID      string  `json:"evaluator_id"`
	PriceScore       float64 `json:"price_score"`
	QualityScore     float64 `json:"quality_score"`
	DeliveryScore    float64 `json:"delivery_score"`
	ReliabilityScore float64 `json:"reliability_score"`

	// WeightedTotalScore is on a 0-100 scale; the four criterion maxima
	// sum to 100, so the weighted sum is never scaled a second time.
	WeightedTotalScore float64 `json:"weighted_total_score"`

	Comments    string    `json:"comments,omitempty"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// StatusHistory is one entry of the append-only lifecycle audit trail.
// Entries are never mutated or deleted once written.
type StatusHistory struct {
	ID         string        `json:"id"`
	BiddingID  string        `json:"bidding_id"`
	FromStatus BiddingStatus `json:"from_status"`
	ToStatus   BiddingStatus `json:"to_status"`
	Reason     string        `json:"reason,omitempty"`
	Actor      Role          `json:"actor"`
	Timestamp  time.Time     `json:"timestamp"`
}

// RankingResult contains the evaluated participations in selection order.
type RankingResult struct {
	// Ranks maps participation ID to 1-based rank.
	Ranks map[string]int `json:"ranks"`

	// Ranked holds evaluated participations, best score first. Ties on
	// score are broken by earliest submission time.
	Ranked []*Participation `json:"ranked"`

	// UnevaluatedIDs lists participations excluded from ranking because
	// no evaluation exists for them yet.
	UnevaluatedIDs []string `json:"unevaluated_ids"`
}

// SelectionResult contains the complete outcome of a winner selection.
type SelectionResult struct {
	// Winner is the selected participation (never nil on success).
	Winner *Participation

	// RunnerUp is the next-best evaluated participation (nil if none).
	RunnerUp *Participation

	// Ranked is the full evaluated ranking the selection was drawn from.
	Ranked []*Participation

	// UnevaluatedIDs lists participations that took no part in ranking.
	UnevaluatedIDs []string
}
