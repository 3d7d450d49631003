package postgres

import (
	"errors"

	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/propstack/lease-rate-api/internal/domain"
)

type RateRequestRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewRateRequestRepository(writerDB, readerDB *gorm.DB) *RateRequestRepository {
	return &RateRequestRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *RateRequestRepository) Create(ctx context.Context, req *domain.RateChangeRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	return r.writerDB.WithContext(ctx).Create(req).Error
}

func (r *RateRequestRepository) GetByID(ctx context.Context, id string) (*domain.RateChangeRequest, error) {
	var req domain.RateChangeRequest
	if err := r.readerDB.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RateRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.RateChangeRequest, error) {
	var req domain.RateChangeRequest
	err := r.writerDB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetOpenByLeaseUnit reads through the writer so that, inside Atomic, the
// check runs against the transaction's snapshot under the lease-unit row lock.
// A partial unique index on (lease_unit_id) for unresolved statuses backs the
// same invariant at the schema level.
func (r *RateRequestRepository) GetOpenByLeaseUnit(ctx context.Context, leaseUnitID string) (*domain.RateChangeRequest, error) {
	var req domain.RateChangeRequest
	err := r.writerDB.WithContext(ctx).
		Where("lease_unit_id = ? AND status IN ?", leaseUnitID,
			[]domain.RequestStatus{domain.StatusPending, domain.StatusRecommended}).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RateRequestRepository) Update(ctx context.Context, req *domain.RateChangeRequest) error {
	return r.writerDB.WithContext(ctx).Save(req).Error
}

func (r *RateRequestRepository) List(ctx context.Context, filter domain.RateChangeRequestFilter) ([]domain.RateChangeRequest, error) {
	var reqs []domain.RateChangeRequest

	db := r.readerDB.WithContext(ctx).Model(&domain.RateChangeRequest{})

	if filter.LeaseUnitID != "" {
		db = db.Where("lease_unit_id = ?", filter.LeaseUnitID)
	}
	if filter.LeaseID != "" {
		db = db.Where("lease_unit_id IN (?)",
			r.readerDB.Model(&domain.LeaseUnit{}).Select("id").Where("lease_id = ?", filter.LeaseID))
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.ChangeType != "" {
		db = db.Where("change_type = ?", filter.ChangeType)
	}
	if filter.RequestedBy != "" {
		db = db.Where("requested_by = ?", filter.RequestedBy)
	}
	if !filter.EffectiveFrom.IsZero() {
		db = db.Where("effective_date >= ?", filter.EffectiveFrom)
	}
	if !filter.EffectiveTo.IsZero() {
		db = db.Where("effective_date <= ?", filter.EffectiveTo)
	}

	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		db = db.Offset(filter.Offset)
	}

	db = db.Order("created_at DESC")

	if err := db.Find(&reqs).Error; err != nil {
		return nil, err
	}

	return reqs, nil
}
