package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/propstack/lease-rate-api/internal/domain"
)

//go:generate mockery --name LeaseRepository --output ../mocks
type LeaseRepository interface {
	// GetByIDForUpdate locks the lease row for the duration of the enclosing
	// transaction. Used while recomputing the aggregate rent total.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Lease, error)
	UpdateTotalRent(ctx context.Context, leaseID string, total decimal.Decimal) error
	// ListAutoIncreaseEnabled returns leases whose standard increase policy is
	// switched on, for the increase scheduler's due scan.
	ListAutoIncreaseEnabled(ctx context.Context) ([]domain.Lease, error)
}

//go:generate mockery --name LeaseUnitRepository --output ../mocks
type LeaseUnitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.LeaseUnit, error)
	// GetByIDForUpdate locks the lease-unit row, serializing check-then-insert
	// of requests and rate application per lease-unit.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.LeaseUnit, error)
	ListByLease(ctx context.Context, leaseID string) ([]domain.LeaseUnit, error)
	// ApplyRate is the single mutator of current_rate/current_rent. Only the
	// rate change service's atomic apply path calls it.
	ApplyRate(ctx context.Context, leaseUnitID string, rate, rent decimal.Decimal) error
	SumRentByLease(ctx context.Context, leaseID string) (decimal.Decimal, error)
}

//go:generate mockery --name RateRequestRepository --output ../mocks
type RateRequestRepository interface {
	Create(ctx context.Context, req *domain.RateChangeRequest) error
	GetByID(ctx context.Context, id string) (*domain.RateChangeRequest, error)
	GetByIDForUpdate(ctx context.Context, id string) (*domain.RateChangeRequest, error)
	// GetOpenByLeaseUnit returns the unresolved (PENDING or RECOMMENDED)
	// request for the lease-unit, or nil when none exists.
	GetOpenByLeaseUnit(ctx context.Context, leaseUnitID string) (*domain.RateChangeRequest, error)
	Update(ctx context.Context, req *domain.RateChangeRequest) error
	List(ctx context.Context, filter domain.RateChangeRequestFilter) ([]domain.RateChangeRequest, error)
}

// RateHistoryRepository exposes append and ordered reads only. The ledger has
// no update or delete path anywhere in the codebase.
//
//go:generate mockery --name RateHistoryRepository --output ../mocks
type RateHistoryRepository interface {
	Append(ctx context.Context, entry *domain.RateHistory) error
	// ListByLeaseUnit returns entries ordered by effective date ascending,
	// creation order breaking ties.
	ListByLeaseUnit(ctx context.Context, leaseUnitID string) ([]domain.RateHistory, error)
	// Latest returns the most recently applied entry for the lease-unit, or
	// nil when the unit has no history yet.
	Latest(ctx context.Context, leaseUnitID string) (*domain.RateHistory, error)
	// LatestAutoApplied returns the newest auto-applied entry, the anchor for
	// computing when the next standard increase falls due.
	LatestAutoApplied(ctx context.Context, leaseUnitID string) (*domain.RateHistory, error)
}

//go:generate mockery --name Repository --output ../mocks
type Repository interface {
	Lease() LeaseRepository
	LeaseUnit() LeaseUnitRepository
	RateRequest() RateRequestRepository
	RateHistory() RateHistoryRepository

	// Atomic runs fn inside one database transaction; every repository call
	// made through the passed Repository joins it. Any error rolls the whole
	// unit of work back.
	Atomic(ctx context.Context, fn func(Repository) error) error
}
