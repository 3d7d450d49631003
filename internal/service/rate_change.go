package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/propstack/lease-rate-api/internal/api/dto"
	"github.com/propstack/lease-rate-api/internal/domain"
	"github.com/propstack/lease-rate-api/internal/repository"
	"github.com/propstack/lease-rate-api/pkg/utils"
)

//go:generate mockery --name RateChangeBroadcaster --output ../mocks
type RateChangeBroadcaster interface {
	BroadcastRateChange(leaseID string, entry *dto.RateHistoryResponse)
}

// RateChangeService orchestrates the rate change approval workflow: request
// creation, the two approval gates, and the atomic application of an approved
// or automatic change to the lease-unit and the rate ledger.
type RateChangeService struct {
	repo        repository.Repository
	broadcaster RateChangeBroadcaster
}

func NewRateChangeService(repo repository.Repository) *RateChangeService {
	return &RateChangeService{repo: repo}
}

// SetBroadcaster sets the applied-change broadcaster
func (s *RateChangeService) SetBroadcaster(broadcaster RateChangeBroadcaster) {
	s.broadcaster = broadcaster
}

// CreateRequest validates and persists a new proposal in PENDING. The current
// rate is snapshotted under a lease-unit row lock so the single-open-request
// check and the insert form one atomic unit.
func (s *RateChangeService) CreateRequest(ctx context.Context, req dto.CreateRateChangeRequest, requestedBy string) (*dto.RateChangeResponse, error) {
	if requestedBy == "" {
		return nil, ErrUnauthorized
	}
	if !req.ProposedRate.IsPositive() {
		return nil, fmt.Errorf("%w: proposed rate must be strictly positive", ErrValidation)
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidation)
	}
	if req.EffectiveDate.IsZero() {
		return nil, fmt.Errorf("%w: effective date is required", ErrValidation)
	}
	if !domain.IsValidChangeType(req.ChangeType) {
		return nil, fmt.Errorf("%w: unknown change type %q", ErrValidation, req.ChangeType)
	}

	var created *domain.RateChangeRequest
	err := s.repo.Atomic(ctx, func(tx repository.Repository) error {
		unit, err := tx.LeaseUnit().GetByIDForUpdate(ctx, req.LeaseUnitID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrLeaseUnitNotFound, req.LeaseUnitID)
			}
			return err
		}

		open, err := tx.RateRequest().GetOpenByLeaseUnit(ctx, unit.ID)
		if err != nil {
			return err
		}
		if open != nil {
			return fmt.Errorf("%w: request %s is %s", ErrOpenRequestExists, open.ID, open.Status)
		}

		if err := checkEffectiveDate(ctx, tx, unit.ID, req.EffectiveDate); err != nil {
			return err
		}

		created = &domain.RateChangeRequest{
			LeaseUnitID:   unit.ID,
			CurrentRate:   unit.CurrentRate,
			ProposedRate:  req.ProposedRate,
			ChangeType:    domain.ChangeType(req.ChangeType),
			EffectiveDate: req.EffectiveDate,
			Reason:        req.Reason,
			RequestedBy:   requestedBy,
			Status:        domain.StatusPending,
			ApprovalStep:  domain.StepRecommending,
		}
		return tx.RateRequest().Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	return dto.FromRateChangeRequest(created), nil
}

// Recommend drives a PENDING request through the recommending gate.
func (s *RateChangeService) Recommend(ctx context.Context, requestID, actorID, remarks string) (*dto.RateChangeResponse, error) {
	if actorID == "" {
		return nil, ErrUnauthorized
	}

	var updated domain.RateChangeRequest
	err := s.repo.Atomic(ctx, func(tx repository.Repository) error {
		req, err := tx.RateRequest().GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrRequestNotFound, requestID)
			}
			return err
		}

		updated, err = domain.Recommend(*req, actorID, remarks)
		if err != nil {
			return err
		}
		return tx.RateRequest().Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	return dto.FromRateChangeRequest(&updated), nil
}

// Approve drives a RECOMMENDED request through the final gate and applies it:
// ledger append, lease-unit rate/rent update, and lease total recompute run in
// one transaction with the status flip. Any failure rolls everything back; a
// ledger entry without the rate applied (or vice versa) is never observable.
func (s *RateChangeService) Approve(ctx context.Context, requestID, actorID, remarks string) (*dto.RateChangeResponse, error) {
	if actorID == "" {
		return nil, ErrUnauthorized
	}

	var (
		updated domain.RateChangeRequest
		entry   *domain.RateHistory
		leaseID string
	)
	err := s.repo.Atomic(ctx, func(tx repository.Repository) error {
		req, err := tx.RateRequest().GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrRequestNotFound, requestID)
			}
			return err
		}

		updated, err = domain.Approve(*req, actorID, remarks)
		if err != nil {
			return err
		}

		unit, err := tx.LeaseUnit().GetByIDForUpdate(ctx, req.LeaseUnitID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrLeaseUnitNotFound, req.LeaseUnitID)
			}
			return err
		}
		leaseID = unit.LeaseID

		entry = &domain.RateHistory{
			LeaseUnitID:   unit.ID,
			RequestID:     &req.ID,
			PreviousRate:  unit.CurrentRate,
			NewRate:       req.ProposedRate,
			ChangeType:    req.ChangeType,
			EffectiveDate: req.EffectiveDate,
			Reason:        req.Reason,
			IsAutoApplied: false,
		}
		if err := s.applyRate(ctx, tx, unit, entry); err != nil {
			return err
		}

		return tx.RateRequest().Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(leaseID, entry)
	return dto.FromRateChangeRequest(&updated), nil
}

// Reject terminates an unresolved request at the gate it is waiting on. The
// lease-unit rate is untouched and no ledger entry is written.
func (s *RateChangeService) Reject(ctx context.Context, requestID, actorID, reason string, step domain.ApprovalStep) (*dto.RateChangeResponse, error) {
	if actorID == "" {
		return nil, ErrUnauthorized
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}

	var updated domain.RateChangeRequest
	err := s.repo.Atomic(ctx, func(tx repository.Repository) error {
		req, err := tx.RateRequest().GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrRequestNotFound, requestID)
			}
			return err
		}

		updated, err = domain.Reject(*req, actorID, reason, step)
		if err != nil {
			return err
		}
		return tx.RateRequest().Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	return dto.FromRateChangeRequest(&updated), nil
}

// ApplyAutomaticIncrease applies a policy-driven standard increase without
// human approval, under the same atomicity contract as Approve. It refuses to
// race a manual proposal: an open request for the lease-unit is a conflict.
func (s *RateChangeService) ApplyAutomaticIncrease(ctx context.Context, leaseUnitID string, newRate decimal.Decimal, effectiveDate time.Time, reason string) (*dto.RateHistoryResponse, error) {
	if !newRate.IsPositive() {
		return nil, fmt.Errorf("%w: new rate must be strictly positive", ErrValidation)
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidation)
	}
	if effectiveDate.IsZero() {
		return nil, fmt.Errorf("%w: effective date is required", ErrValidation)
	}

	var (
		entry   *domain.RateHistory
		leaseID string
	)
	err := s.repo.Atomic(ctx, func(tx repository.Repository) error {
		unit, err := tx.LeaseUnit().GetByIDForUpdate(ctx, leaseUnitID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrLeaseUnitNotFound, leaseUnitID)
			}
			return err
		}
		leaseID = unit.LeaseID

		open, err := tx.RateRequest().GetOpenByLeaseUnit(ctx, unit.ID)
		if err != nil {
			return err
		}
		if open != nil {
			return fmt.Errorf("%w: request %s is %s", ErrOpenRequestExists, open.ID, open.Status)
		}

		entry = &domain.RateHistory{
			LeaseUnitID:   unit.ID,
			PreviousRate:  unit.CurrentRate,
			NewRate:       newRate,
			ChangeType:    domain.ChangeStandardIncrease,
			EffectiveDate: effectiveDate,
			Reason:        reason,
			IsAutoApplied: true,
		}
		return s.applyRate(ctx, tx, unit, entry)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(leaseID, entry)
	return dto.FromRateHistory(entry), nil
}

// checkEffectiveDate rejects an effective date older than the newest ledger
// entry. The ledger reads back ordered by effective date, so a backdated
// entry would break the previous-rate chain between neighbours.
func checkEffectiveDate(ctx context.Context, tx repository.Repository, leaseUnitID string, effectiveDate time.Time) error {
	latest, err := tx.RateHistory().Latest(ctx, leaseUnitID)
	if err != nil {
		return fmt.Errorf("failed to read latest rate history: %w", err)
	}
	if latest != nil && effectiveDate.Before(latest.EffectiveDate) {
		return fmt.Errorf("%w: effective date %s predates the latest applied change effective %s",
			ErrValidation,
			effectiveDate.Format("2006-01-02"), latest.EffectiveDate.Format("2006-01-02"))
	}
	return nil
}

// applyRate is the single code path that writes a ledger entry and mutates a
// lease-unit's current rate. It must only run inside Atomic.
func (s *RateChangeService) applyRate(ctx context.Context, tx repository.Repository, unit *domain.LeaseUnit, entry *domain.RateHistory) error {
	if err := checkEffectiveDate(ctx, tx, unit.ID, entry.EffectiveDate); err != nil {
		return err
	}

	if err := tx.RateHistory().Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append rate history: %w", err)
	}

	newRent := unit.ComputeRent(entry.NewRate)
	if err := tx.LeaseUnit().ApplyRate(ctx, unit.ID, entry.NewRate, newRent); err != nil {
		return fmt.Errorf("failed to apply rate to lease unit: %w", err)
	}

	// The lease row stays locked while its total is recomputed, so two units
	// applying at once cannot interleave their sums.
	if _, err := tx.Lease().GetByIDForUpdate(ctx, unit.LeaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrLeaseNotFound, unit.LeaseID)
		}
		return err
	}
	total, err := tx.LeaseUnit().SumRentByLease(ctx, unit.LeaseID)
	if err != nil {
		return fmt.Errorf("failed to sum lease rents: %w", err)
	}
	if err := tx.Lease().UpdateTotalRent(ctx, unit.LeaseID, total); err != nil {
		return fmt.Errorf("failed to update lease total rent: %w", err)
	}

	return nil
}

func (s *RateChangeService) broadcast(leaseID string, entry *domain.RateHistory) {
	if s.broadcaster != nil && entry != nil {
		resp := dto.FromRateHistory(entry)
		resp.LeaseID = leaseID
		s.broadcaster.BroadcastRateChange(leaseID, resp)
	}
}

func (s *RateChangeService) GetRequest(ctx context.Context, id string) (*dto.RateChangeResponse, error) {
	req, err := s.repo.RateRequest().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRequestNotFound, id)
		}
		return nil, err
	}
	return dto.FromRateChangeRequest(req), nil
}

func (s *RateChangeService) ListRequests(ctx context.Context, filter *domain.RateChangeRequestFilter) ([]dto.RateChangeResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	filter.Limit = filter.PageSize
	filter.Offset = (filter.Page - 1) * filter.PageSize

	reqs, err := s.repo.RateRequest().List(ctx, *filter)
	if err != nil {
		return nil, err
	}
	return dto.FromRateChangeRequests(reqs), nil
}

// History returns the lease-unit's ledger ordered by effective date ascending,
// creation order breaking ties.
func (s *RateChangeService) History(ctx context.Context, leaseUnitID string) ([]dto.RateHistoryResponse, error) {
	if _, err := s.repo.LeaseUnit().GetByID(ctx, leaseUnitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLeaseUnitNotFound, leaseUnitID)
		}
		return nil, err
	}

	entries, err := s.repo.RateHistory().ListByLeaseUnit(ctx, leaseUnitID)
	if err != nil {
		return nil, err
	}
	return dto.FromRateHistories(entries), nil
}

func (s *RateChangeService) GetLeaseUnit(ctx context.Context, id string) (*dto.LeaseUnitResponse, error) {
	unit, err := s.repo.LeaseUnit().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLeaseUnitNotFound, id)
		}
		return nil, err
	}
	return dto.FromLeaseUnit(unit), nil
}

// DueIncrease describes one standard increase the scheduler should enqueue.
type DueIncrease struct {
	LeaseUnitID   string
	NewRate       decimal.Decimal
	EffectiveDate time.Time
	Reason        string
}

// ListDueIncreases scans leases with the standard increase policy enabled and
// returns the units whose next increase falls due at or before asOf. The
// anchor for a unit is its latest auto-applied ledger entry, or the lease's
// commencement date when no automatic increase has ever been applied.
func (s *RateChangeService) ListDueIncreases(ctx context.Context, asOf time.Time) ([]DueIncrease, error) {
	leases, err := s.repo.Lease().ListAutoIncreaseEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto-increase leases: %w", err)
	}

	var due []DueIncrease
	for _, lease := range leases {
		if lease.IncreaseIntervalYears < 1 || !lease.StandardIncreasePercentage.IsPositive() {
			continue
		}

		units, err := s.repo.LeaseUnit().ListByLease(ctx, lease.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list units for lease %s: %w", lease.ID, err)
		}

		for _, unit := range units {
			anchor := lease.CommencementDate
			last, err := s.repo.RateHistory().LatestAutoApplied(ctx, unit.ID)
			if err != nil {
				return nil, err
			}
			if last != nil {
				anchor = last.EffectiveDate
			}

			next := utils.AddYears(anchor, lease.IncreaseIntervalYears)
			if next.After(asOf) {
				continue
			}

			factor := decimal.NewFromInt(1).Add(lease.StandardIncreasePercentage.Div(decimal.NewFromInt(100)))
			due = append(due, DueIncrease{
				LeaseUnitID:   unit.ID,
				NewRate:       unit.CurrentRate.Mul(factor).Round(2),
				EffectiveDate: next,
				Reason:        fmt.Sprintf("Standard increase of %s%% per lease policy", lease.StandardIncreasePercentage.String()),
			})
		}
	}

	return due, nil
}
