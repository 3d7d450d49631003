package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateRateChangeRequest struct {
	LeaseUnitID   string          `json:"lease_unit_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	ProposedRate  decimal.Decimal `json:"proposed_rate" binding:"required" swaggertype:"string" example:"11000.00"`
	ChangeType    string          `json:"change_type" binding:"required" example:"MANUAL_ADJUSTMENT"`
	EffectiveDate time.Time       `json:"effective_date" binding:"required" example:"2026-01-01T00:00:00Z"`
	Reason        string          `json:"reason" binding:"required" example:"Market rate adjustment for renewal"`
}

type RecommendRequest struct {
	Remarks string `json:"remarks" example:"Within budget guidance"`
}

type ApproveRequest struct {
	Remarks string `json:"remarks" example:"Approved per Q3 revenue plan"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required" example:"Budget not approved"`
	Step   string `json:"step" binding:"required" example:"RECOMMENDING"`
}
