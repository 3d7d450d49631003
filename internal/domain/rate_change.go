package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestStatus string

const (
	StatusPending     RequestStatus = "PENDING"
	StatusRecommended RequestStatus = "RECOMMENDED"
	StatusApproved    RequestStatus = "APPROVED"
	StatusRejected    RequestStatus = "REJECTED"
)

// IsTerminal reports whether the status admits no further transitions.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type ApprovalStep string

const (
	StepRecommending ApprovalStep = "RECOMMENDING"
	StepFinal        ApprovalStep = "FINAL"
)

type ChangeType string

const (
	ChangeStandardIncrease ChangeType = "STANDARD_INCREASE"
	ChangeManualAdjustment ChangeType = "MANUAL_ADJUSTMENT"
	ChangeRenewalIncrease  ChangeType = "RENEWAL_INCREASE"
	ChangeOverrideRequest  ChangeType = "OVERRIDE_REQUEST"
)

// ValidChangeTypes contains every change type a request may carry.
var ValidChangeTypes = []ChangeType{
	ChangeStandardIncrease,
	ChangeManualAdjustment,
	ChangeRenewalIncrease,
	ChangeOverrideRequest,
}

func IsValidChangeType(t string) bool {
	for _, ct := range ValidChangeTypes {
		if ChangeType(t) == ct {
			return true
		}
	}
	return false
}

// RateChangeRequest is an in-flight rate proposal for a lease-unit. At most
// one request per lease-unit may be unresolved (PENDING or RECOMMENDED).
type RateChangeRequest struct {
	ID               string          `gorm:"primaryKey;type:uuid" json:"id"`
	LeaseUnitID      string          `gorm:"type:uuid;not null" json:"lease_unit_id"`
	CurrentRate      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"current_rate"`
	ProposedRate     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"proposed_rate"`
	ChangeType       ChangeType      `gorm:"type:text;not null" json:"change_type"`
	EffectiveDate    time.Time       `gorm:"type:date;not null" json:"effective_date"`
	Reason           string          `gorm:"type:text;not null" json:"reason"`
	RequestedBy      string          `gorm:"type:uuid;not null" json:"requested_by"`
	Status           RequestStatus   `gorm:"type:text;not null;default:'PENDING'" json:"status"`
	ApprovalStep     ApprovalStep    `gorm:"type:text;not null;default:'RECOMMENDING'" json:"approval_step"`
	RecommendedBy    string          `gorm:"type:uuid" json:"recommended_by,omitempty"`
	RecommendRemarks string          `gorm:"type:text" json:"recommend_remarks,omitempty"`
	ApprovedBy       string          `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovalRemarks  string          `gorm:"type:text" json:"approval_remarks,omitempty"`
	RejectedBy       string          `gorm:"type:uuid" json:"rejected_by,omitempty"`
	RejectionReason  string          `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt        time.Time       `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	LeaseUnit        *LeaseUnit      `gorm:"foreignKey:LeaseUnitID" json:"-"`
}

func (RateChangeRequest) TableName() string {
	return "rate_change_requests"
}

// CurrentGate reports which approval gate an unresolved request is waiting on.
func (r *RateChangeRequest) CurrentGate() ApprovalStep {
	if r.Status == StatusRecommended {
		return StepFinal
	}
	return StepRecommending
}

type RateChangeRequestFilter struct {
	LeaseUnitID   string        `json:"lease_unit_id"`
	LeaseID       string        `json:"lease_id"`
	Status        RequestStatus `json:"status"`
	ChangeType    ChangeType    `json:"change_type"`
	RequestedBy   string        `json:"requested_by"`
	EffectiveFrom time.Time     `json:"effective_from"`
	EffectiveTo   time.Time     `json:"effective_to"`
	Page          int           `json:"page"`
	PageSize      int           `json:"page_size"`
	Limit         int           `json:"limit"`
	Offset        int           `json:"offset"`
}
