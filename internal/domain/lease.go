package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Lease struct {
	ID                         string          `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PropertyID                 string          `gorm:"type:uuid;not null" json:"property_id"`
	TenantName                 string          `gorm:"type:text;not null" json:"tenant_name"`
	CommencementDate           time.Time       `gorm:"type:date;not null" json:"commencement_date"`
	ExpiryDate                 time.Time       `gorm:"type:date;not null" json:"expiry_date"`
	TotalRentAmount            decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_rent_amount"`
	AutoIncreaseEnabled        bool            `gorm:"not null;default:false" json:"auto_increase_enabled"`
	StandardIncreasePercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"standard_increase_percentage"`
	IncreaseIntervalYears      int             `gorm:"not null;default:1" json:"increase_interval_years"`
	CreatedAt                  time.Time       `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt                  time.Time       `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Lease) TableName() string {
	return "leases"
}

// LeaseUnit ties a lease to one physical unit it covers. Each lease-unit
// carries its own rate; current_rate is only ever written by the rate change
// service when an approved or automatic change is applied.
type LeaseUnit struct {
	ID           string           `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	LeaseID      string           `gorm:"type:uuid;not null" json:"lease_id"`
	UnitID       string           `gorm:"type:uuid;not null" json:"unit_id"`
	AreaSqm      decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"area_sqm"`
	CurrentRate  decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"current_rate"`
	CurrentRent  decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"current_rent"`
	RentOverride *decimal.Decimal `gorm:"type:decimal(14,2)" json:"rent_override,omitempty"`
	CreatedAt    time.Time        `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Lease        *Lease           `gorm:"foreignKey:LeaseID" json:"-"`
}

func (LeaseUnit) TableName() string {
	return "lease_units"
}

// ComputeRent derives the rent for a given rate: rate x area, unless the unit
// carries a manual absolute override.
func (lu *LeaseUnit) ComputeRent(rate decimal.Decimal) decimal.Decimal {
	if lu.RentOverride != nil {
		return *lu.RentOverride
	}
	return rate.Mul(lu.AreaSqm).Round(2)
}
