package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/propstack/lease-rate-api/internal/config"
	"github.com/propstack/lease-rate-api/internal/repository"
)

type postgresRepository struct {
	writerDB        *gorm.DB
	readerDB        *gorm.DB
	leaseRepo       repository.LeaseRepository
	leaseUnitRepo   repository.LeaseUnitRepository
	rateRequestRepo repository.RateRequestRepository
	rateHistoryRepo repository.RateHistoryRepository
}

func NewPostgresRepository(dbConnections *config.DatabaseConnections) repository.Repository {
	return newRepository(dbConnections.Writer, dbConnections.Reader)
}

func newRepository(writerDB, readerDB *gorm.DB) *postgresRepository {
	return &postgresRepository{
		writerDB:        writerDB,
		readerDB:        readerDB,
		leaseRepo:       NewLeaseRepository(writerDB, readerDB),
		leaseUnitRepo:   NewLeaseUnitRepository(writerDB, readerDB),
		rateRequestRepo: NewRateRequestRepository(writerDB, readerDB),
		rateHistoryRepo: NewRateHistoryRepository(writerDB, readerDB),
	}
}

func (r *postgresRepository) Lease() repository.LeaseRepository {
	return r.leaseRepo
}

func (r *postgresRepository) LeaseUnit() repository.LeaseUnitRepository {
	return r.leaseUnitRepo
}

func (r *postgresRepository) RateRequest() repository.RateRequestRepository {
	return r.rateRequestRepo
}

func (r *postgresRepository) RateHistory() repository.RateHistoryRepository {
	return r.rateHistoryRepo
}

// Atomic runs fn in a single writer transaction. The repository handed to fn
// routes reads and writes through the transaction, so row locks taken with
// the ForUpdate variants hold until commit or rollback.
func (r *postgresRepository) Atomic(ctx context.Context, fn func(repository.Repository) error) error {
	return r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepository(tx, tx))
	})
}
