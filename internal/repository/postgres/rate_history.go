package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propstack/lease-rate-api/internal/domain"
)

// RateHistoryRepository appends to and reads from the rate ledger. There is
// deliberately no Update or Delete method; entries are immutable once written.
type RateHistoryRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewRateHistoryRepository(writerDB, readerDB *gorm.DB) *RateHistoryRepository {
	return &RateHistoryRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *RateHistoryRepository) Append(ctx context.Context, entry *domain.RateHistory) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	return r.writerDB.WithContext(ctx).Create(entry).Error
}

func (r *RateHistoryRepository) ListByLeaseUnit(ctx context.Context, leaseUnitID string) ([]domain.RateHistory, error) {
	var entries []domain.RateHistory
	err := r.readerDB.WithContext(ctx).
		Where("lease_unit_id = ?", leaseUnitID).
		Order("effective_date ASC, created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *RateHistoryRepository) Latest(ctx context.Context, leaseUnitID string) (*domain.RateHistory, error) {
	var entry domain.RateHistory
	err := r.writerDB.WithContext(ctx).
		Where("lease_unit_id = ?", leaseUnitID).
		Order("effective_date DESC, created_at DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *RateHistoryRepository) LatestAutoApplied(ctx context.Context, leaseUnitID string) (*domain.RateHistory, error) {
	var entry domain.RateHistory
	err := r.readerDB.WithContext(ctx).
		Where("lease_unit_id = ? AND is_auto_applied = ?", leaseUnitID, true).
		Order("effective_date DESC, created_at DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
