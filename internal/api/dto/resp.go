package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateChangeResponse represents a rate change request in API responses. The
// percentage and amount deltas are recomputed from the stored rates on every
// read, never cached.
type RateChangeResponse struct {
	ID               string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	LeaseUnitID      string          `json:"lease_unit_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CurrentRate      decimal.Decimal `json:"current_rate" swaggertype:"string" example:"10000.00"`
	ProposedRate     decimal.Decimal `json:"proposed_rate" swaggertype:"string" example:"11000.00"`
	PercentageChange string          `json:"percentage_change" example:"10.00"`
	ChangeAmount     decimal.Decimal `json:"change_amount" swaggertype:"string" example:"1000.00"`
	ChangeType       string          `json:"change_type" example:"MANUAL_ADJUSTMENT"`
	EffectiveDate    time.Time       `json:"effective_date" example:"2026-01-01T00:00:00Z"`
	Reason           string          `json:"reason" example:"Market rate adjustment for renewal"`
	RequestedBy      string          `json:"requested_by" example:"550e8400-e29b-41d4-a716-446655440000"`
	Status           string          `json:"status" example:"PENDING"`
	ApprovalStep     string          `json:"approval_step" example:"RECOMMENDING"`
	RecommendedBy    string          `json:"recommended_by,omitempty"`
	RecommendRemarks string          `json:"recommend_remarks,omitempty"`
	ApprovedBy       string          `json:"approved_by,omitempty"`
	ApprovalRemarks  string          `json:"approval_remarks,omitempty"`
	RejectedBy       string          `json:"rejected_by,omitempty"`
	RejectionReason  string          `json:"rejection_reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at" example:"2025-07-17T21:20:48Z"`
	UpdatedAt        time.Time       `json:"updated_at" example:"2025-07-17T21:20:48Z"`
}

// RateHistoryResponse represents one applied entry of the rate ledger.
type RateHistoryResponse struct {
	ID               string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	LeaseUnitID      string          `json:"lease_unit_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	LeaseID          string          `json:"lease_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	RequestID        string          `json:"request_id,omitempty"`
	PreviousRate     decimal.Decimal `json:"previous_rate" swaggertype:"string" example:"10000.00"`
	NewRate          decimal.Decimal `json:"new_rate" swaggertype:"string" example:"11000.00"`
	PercentageChange string          `json:"percentage_change" example:"10.00"`
	ChangeAmount     decimal.Decimal `json:"change_amount" swaggertype:"string" example:"1000.00"`
	ChangeType       string          `json:"change_type" example:"STANDARD_INCREASE"`
	EffectiveDate    time.Time       `json:"effective_date" example:"2026-01-01T00:00:00Z"`
	Reason           string          `json:"reason" example:"Standard increase of 5% per lease policy"`
	IsAutoApplied    bool            `json:"is_auto_applied" example:"false"`
	CreatedAt        time.Time       `json:"created_at" example:"2025-07-17T21:20:48Z"`
}

// LeaseUnitResponse represents a lease-unit with its effective rate and rent.
type LeaseUnitResponse struct {
	ID           string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	LeaseID      string          `json:"lease_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UnitID       string          `json:"unit_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	AreaSqm      decimal.Decimal `json:"area_sqm" swaggertype:"string" example:"120.50"`
	CurrentRate  decimal.Decimal `json:"current_rate" swaggertype:"string" example:"10000.00"`
	CurrentRent  decimal.Decimal `json:"current_rent" swaggertype:"string" example:"1205000.00"`
	RentOverride string          `json:"rent_override,omitempty" example:"950000.00"`
	CreatedAt    time.Time       `json:"created_at" example:"2025-07-17T21:20:48Z"`
	UpdatedAt    time.Time       `json:"updated_at" example:"2025-07-17T21:20:48Z"`
}
