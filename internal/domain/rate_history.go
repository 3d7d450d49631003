package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateHistory is one row of the append-only rate ledger. Entries are never
// updated or deleted; per lease-unit the chain must stay contiguous, each
// entry's PreviousRate equal to the prior entry's NewRate.
type RateHistory struct {
	ID            string          `gorm:"primaryKey;type:uuid" json:"id"`
	LeaseUnitID   string          `gorm:"type:uuid;not null" json:"lease_unit_id"`
	RequestID     *string         `gorm:"type:uuid" json:"request_id,omitempty"`
	PreviousRate  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"previous_rate"`
	NewRate       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"new_rate"`
	ChangeType    ChangeType      `gorm:"type:text;not null" json:"change_type"`
	EffectiveDate time.Time       `gorm:"type:date;not null" json:"effective_date"`
	Reason        string          `gorm:"type:text;not null" json:"reason"`
	IsAutoApplied bool            `gorm:"not null;default:false" json:"is_auto_applied"`
	CreatedAt     time.Time       `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	LeaseUnit     *LeaseUnit      `gorm:"foreignKey:LeaseUnitID" json:"-"`
}

func (RateHistory) TableName() string {
	return "rate_history"
}
