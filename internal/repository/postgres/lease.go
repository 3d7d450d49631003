package postgres

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/propstack/lease-rate-api/internal/domain"
)

type LeaseRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewLeaseRepository(writerDB, readerDB *gorm.DB) *LeaseRepository {
	return &LeaseRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *LeaseRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Lease, error) {
	var lease domain.Lease
	err := r.writerDB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&lease, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

func (r *LeaseRepository) UpdateTotalRent(ctx context.Context, leaseID string, total decimal.Decimal) error {
	return r.writerDB.WithContext(ctx).
		Model(&domain.Lease{}).
		Where("id = ?", leaseID).
		Updates(map[string]any{
			"total_rent_amount": total,
			"updated_at":        gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

func (r *LeaseRepository) ListAutoIncreaseEnabled(ctx context.Context) ([]domain.Lease, error) {
	var leases []domain.Lease
	err := r.readerDB.WithContext(ctx).
		Where("auto_increase_enabled = ?", true).
		Order("commencement_date ASC").
		Find(&leases).Error
	if err != nil {
		return nil, err
	}
	return leases, nil
}
