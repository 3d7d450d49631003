package postgres

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/propstack/lease-rate-api/internal/domain"
)

type LeaseUnitRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewLeaseUnitRepository(writerDB, readerDB *gorm.DB) *LeaseUnitRepository {
	return &LeaseUnitRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *LeaseUnitRepository) GetByID(ctx context.Context, id string) (*domain.LeaseUnit, error) {
	var unit domain.LeaseUnit
	if err := r.readerDB.WithContext(ctx).First(&unit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

// GetByIDForUpdate reads through the writer with a row lock. Callers use it
// inside Atomic so that concurrent request creation and rate application for
// the same lease-unit serialize on this row.
func (r *LeaseUnitRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.LeaseUnit, error) {
	var unit domain.LeaseUnit
	err := r.writerDB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&unit, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *LeaseUnitRepository) ListByLease(ctx context.Context, leaseID string) ([]domain.LeaseUnit, error) {
	var units []domain.LeaseUnit
	err := r.readerDB.WithContext(ctx).
		Where("lease_id = ?", leaseID).
		Order("created_at ASC").
		Find(&units).Error
	if err != nil {
		return nil, err
	}
	return units, nil
}

func (r *LeaseUnitRepository) ApplyRate(ctx context.Context, leaseUnitID string, rate, rent decimal.Decimal) error {
	return r.writerDB.WithContext(ctx).
		Model(&domain.LeaseUnit{}).
		Where("id = ?", leaseUnitID).
		Updates(map[string]any{
			"current_rate": rate,
			"current_rent": rent,
			"updated_at":   gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

func (r *LeaseUnitRepository) SumRentByLease(ctx context.Context, leaseID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.writerDB.WithContext(ctx).
		Model(&domain.LeaseUnit{}).
		Where("lease_id = ?", leaseID).
		Select("COALESCE(SUM(current_rent), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
