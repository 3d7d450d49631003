package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/propstack/lease-rate-api/internal/api/dto"
	"github.com/propstack/lease-rate-api/internal/domain"
	"github.com/propstack/lease-rate-api/internal/mocks"
	"github.com/propstack/lease-rate-api/internal/repository"
)

type RateChangeServiceTestSuite struct {
	suite.Suite
	mockRepo        *mocks.Repository
	mockLease       *mocks.LeaseRepository
	mockLeaseUnit   *mocks.LeaseUnitRepository
	mockRateRequest *mocks.RateRequestRepository
	mockRateHistory *mocks.RateHistoryRepository
	mockBroadcaster *mocks.RateChangeBroadcaster
	service         *RateChangeService
}

func (s *RateChangeServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockLease = new(mocks.LeaseRepository)
	s.mockLeaseUnit = new(mocks.LeaseUnitRepository)
	s.mockRateRequest = new(mocks.RateRequestRepository)
	s.mockRateHistory = new(mocks.RateHistoryRepository)
	s.mockBroadcaster = new(mocks.RateChangeBroadcaster)

	s.mockRepo.On("Lease").Return(s.mockLease)
	s.mockRepo.On("LeaseUnit").Return(s.mockLeaseUnit)
	s.mockRepo.On("RateRequest").Return(s.mockRateRequest)
	s.mockRepo.On("RateHistory").Return(s.mockRateHistory)

	s.service = NewRateChangeService(s.mockRepo)
	s.service.SetBroadcaster(s.mockBroadcaster)
}

func TestRateChangeService(t *testing.T) {
	suite.Run(t, new(RateChangeServiceTestSuite))
}

// passthroughAtomic makes the mocked unit of work run its body against the
// same mock repository, so errors raised inside it propagate like a rollback.
func (s *RateChangeServiceTestSuite) passthroughAtomic() {
	s.mockRepo.On("Atomic", mock.Anything, mock.Anything).Return(
		func(ctx context.Context, fn func(repository.Repository) error) error {
			return fn(s.mockRepo)
		})
}

func (s *RateChangeServiceTestSuite) leaseUnit() *domain.LeaseUnit {
	return &domain.LeaseUnit{
		ID:          "lu1",
		LeaseID:     "lease1",
		UnitID:      "unit1",
		AreaSqm:     decimal.NewFromInt(1),
		CurrentRate: decimal.NewFromInt(10000),
		CurrentRent: decimal.NewFromInt(10000),
	}
}

func (s *RateChangeServiceTestSuite) createReq() dto.CreateRateChangeRequest {
	return dto.CreateRateChangeRequest{
		LeaseUnitID:   "lu1",
		ProposedRate:  decimal.NewFromInt(11000),
		ChangeType:    string(domain.ChangeManualAdjustment),
		EffectiveDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Reason:        "market adjustment",
	}
}

func (s *RateChangeServiceTestSuite) TestCreateRequest_Success() {
	// Arrange
	ctx := context.Background()
	s.passthroughAtomic()
	s.mockLeaseUnit.On("GetByIDForUpdate", ctx, "lu1").Return(s.leaseUnit(), nil)
	s.mockRateRequest.On("GetOpenByLeaseUnit", ctx, "lu1").Return(nil, nil)
	s.mockRateHistory.On("Latest", ctx, "lu1").Return(nil, nil)
	s.mockRateRequest.On("Create", ctx, mock.AnythingOfType("*domain.RateChangeRequest")).Return(nil)

	// Act
	resp, err := s.service.CreateRequest(ctx, s.createReq(), "agent1")

	// Assert
	s.NoError(err)
	s.Equal("PENDING", resp.Status)
	s.Equal("RECOMMENDING", resp.ApprovalStep)
	s.True(resp.CurrentRate.Equal(decimal.NewFromInt(10000)), "current rate snapshotted from lease unit")
	s.Equal("10.00", resp.PercentageChange)
	s.mockRateRequest.AssertExpectations(s.T())
}

func (s *RateChangeServiceTestSuite) TestCreateRequest_ConflictWhenOpenRequestExists() {
	// Arrange
	ctx := context.Background()
	s.passthroughAtomic()
	s.mockLeaseUnit.On("GetByIDForUpdate", ctx, "lu1").Return(s.leaseUnit(), nil)
	s.mockRateRequest.On("GetOpenByLeaseUnit", ctx, "lu1").Return(&domain.RateChangeRequest{
		ID:     "open1",
		Status: domain.StatusPending,
	}, nil)

	// Act
	_, err := s.service.CreateRequest(ctx, s.createReq(), "agent1")

	// Assert
	s.ErrorIs(err, ErrOpenRequestExists)
	s.mockRateRequest.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *RateChangeServiceTestSuite) TestCreateRequest_Validation() {
	ctx := context.Background()

	req := s.createReq()
	req.ProposedRate = decimal.Zero
	_, err := s.service.CreateRequest(ctx, req, "agent1")
	s.ErrorIs(err, ErrValidation)

	req = s.createReq()
	req.ProposedRate = decimal.NewFromInt(-100)
	_, err = s.service.CreateRequest(ctx, req, "agent1")
	s.ErrorIs(err, ErrValidation)

	req = s.createReq()
	req.Reason = ""
	_, err = s.service.CreateRequest(ctx, req, "agent1")
	s.ErrorIs(err, ErrValidation)

	req = s.createReq()
	req.EffectiveDate = time.Time{}
	_, err = s.service.CreateRequest(ctx, req, "agent1")
	s.ErrorIs(err, ErrValidation)

	req = s.createReq()
	req.ChangeType = "SOMETHING_ELSE"
	_, err = s.service.CreateRequest(ctx, req, "agent1")
	s.ErrorIs(err, ErrValidation)
}

func (s *RateChangeServiceTestSuite) TestCreateRequest_BackdatedEffectiveDateRejected() {
	// Arrange: the ledger already holds an entry effective after the proposal.
	ctx := context.Background()
	s.passthroughAtomic()
	s.mockLeaseUnit.On("GetByIDForUpdate", ctx, "lu1").Return(s.leaseUnit(), nil)
	s.mockRateRequest.On("GetOpenByLeaseUnit", ctx, "lu1").Return(nil, nil)
	s.mockRateHistory.On("Latest", ctx, "lu1").Return(&domain.RateHistory{
		LeaseUnitID:   "lu1",
		PreviousRate:  decimal.NewFromInt(10000),
		NewRate:       decimal.NewFromInt(10500),
		EffectiveDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	// Act: proposal effective before the applied entry.
	_, err := s.service.CreateRequest(ctx, s.createReq(), "agent1")

	// Assert
	s.ErrorIs(err, ErrValidation)
	s.mockRateRequest.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *RateChangeServiceTestSuite) TestCreateRequest_Unauthorized() {
	_, err := s.service.CreateRequest(context.Background(), s.createReq(), "")
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *RateChangeServiceTestSuite) TestRecommend_Success() {
	// Arrange
	ctx := context.Background()
	s.passthroughAtomic()
	s.mockRateRequest.On("GetByIDForUpdate", ctx, "req1").Return(&domain.RateChangeRequest{
		ID:           "req1",
		LeaseUnitID:  "lu1",
		CurrentRate:  decimal.NewFromInt(10000),
		ProposedRate: decimal.NewFromInt(11000),
		Status:       domain.StatusPending,
	}, nil)
	s.mockRateRequest.On("Update", ctx, mock.AnythingOfType("*domain.RateChangeRequest")).Return(nil)

	// Act
	resp, err := s.service.Recommend(ctx, "req1", "reviewer1", "fine by me")

	// Assert
	s.NoError(err)
	s.Equal("RECOMMENDED", resp.Status)
	s.Equal("reviewer1", resp.RecommendedBy)
	s.mockRateRequest.AssertExpectations(s.T())
}

func (s *RateChangeServiceTestSuite) TestRecommend_NotFound() {
	ctx := context.Background()
	s.passthroughAtomic()
	s.mockRateRequest.On("GetByIDForUpdate", ctx, "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := s.service.Recommend(ctx, "missing", "reviewer1", "")
	s.ErrorIs(err, ErrRequestNotFound)
}

func (s *RateChangeServiceTestSuite) TestApprove_HappyPath() {
	// Arrange
	ctx := context.Background()
	s.passthroughAtomic()
	s.mockRateRequest.On("GetByIDForUpdate", ctx, "req1").Return(&domain.RateChangeRequest{
		ID:            "req1",
		LeaseUnitID:   "lu1",
		CurrentRate:   decimal.NewFromInt(10000),
		ProposedRate:  decimal.NewFromInt(11000),
		ChangeType:    domain.ChangeManualAdjustment,
		EffectiveDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Reason:        "market adjustment",
		Status:        domain.StatusRecommended,
	}, nil)
	s.mockLeaseUnit.On("GetByIDForUpdate", ctx, "lu1").Return(s.leaseUnit(), nil)
	s.mockRateHistory.On("Latest", ctx, "lu1").Return(nil, nil)

	var appended *domain.RateHistory
	s.mockRateHistory.On("Append", ctx, mock.AnythingOfType("*domain.RateHistory")).
		Run(func(args mock.Arguments) {
			appended = args.Get(1).(*domain.RateHistory)
		}).Return(nil)
	s.mockLeaseUnit.On("ApplyRate", ctx, "lu1",
		mock.AnythingOfType("decimal.Decimal"), mock.AnythingOfType("decimal.Decimal")).Return(nil)
	s.mockLease.On("GetByIDForUpdate", ctx, "lease1").Return(&domain.Lease{ID: "lease1"}, nil)
	s.mockLeaseUnit.On("SumRentByLease", ctx, "lease1").Return(decimal.NewFromInt(11000), nil)
	s.mockLease.On("UpdateTotalRent", ctx, "lease1", decimal.NewFromInt(11000)).Return(nil)
	s.mockRateRequest.On("Update", ctx, mock.AnythingOfType("*domain.RateChangeRequest")).Return(nil)
	s.mockBroadcaster.On("BroadcastRateChange", "lease1", mock.AnythingOfType("*dto.RateHistoryResponse")).Return()

	// Act
	resp, err := s.service.Approve(ctx, "req1", "approver1", "ok")

	// Assert
	s.NoError(err)
	s.Equal("APPROVED", resp.Status)
	s.Equal("FINAL", resp.ApprovalStep)

	s.Require().NotNil(appended)
	s.True(appended.PreviousRate.Equal(decimal.NewFromInt(10000)))
	s.True(appended.NewRate.Equal(decimal.NewFromInt(11000)))
	s.False(appended.IsAutoApplied)
	s.Require().NotNil(appended.RequestID)
	s.Equal("req1", *appended.RequestID)

	s.mockRateHistory.AssertExpectations(s.T())
	s.mockLeaseUnit.AssertExpectations(s.T())
	s.mockLease.AssertExpectations(s.T())
	s.mockBroadcaster.AssertExpectations(s.T())
}

func (s *RateChangeServiceTestSuite) TestApprove_IllegalFromPending() {
	// Arrange: a request that never passed the recommending gate.
	ctx := context.Background()
	s.passthroughAtomic()
	s.mockRateRequest.On("GetByIDForUpdate", ctx, "req1").Return(&domain.RateChangeRequest{
		ID:           "req1",
		LeaseUnitID:  "lu1",
		ProposedRate: decimal.NewFromInt(11000),
		Status:       domain.StatusPending,
	}, nil)

	// Act
	_, err := s.service.Approve(ctx, "req1", "approver1", "")

	// Assert
	s.ErrorIs(err, domain.ErrIllegalTransition)
	s.mockRateHistory.AssertNotCalled(s.T(), "Append", mock.Anything, mock.Anything)
	s.mockLeaseUnit.AssertNotCalled(s.T(), "ApplyRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RateChangeServiceTestSuite) TestApprove_BackdatedEffectiveDateRejected() {
	// Arrange: an entry effective June 2026 was applied while this request,
	// effective January 2026, waited at the final gate. Applying it would break
	// the previous-rate chain when the ledger is read in effective date order.
	ctx := context.Background()
	s.passthroughAtomic()
	s.mockRateRequest.On("GetByIDForUpdate", ctx, "req1").Return(&domain.RateChangeRequest{
		ID:            "req1",
		LeaseUnitID:   "lu1",
		CurrentRate:   decimal.NewFromInt(10000),
		ProposedRate:  decimal.NewFromInt(11000),
		ChangeType:    domain.ChangeManualAdjustment,
		EffectiveDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Reason:        "market adjustment",
		Status:        domain.StatusRecommended,
	}, nil)
	s.mockLeaseUnit.On("GetByIDForUpdate", ctx, "lu1").Return(s.leaseUnit(), nil)
	s.mockRateHistory.On("Latest", ctx, "lu1").Return(&domain.RateHistory{
		LeaseUnitID:   "lu1",
		PreviousRate:  decimal.NewFromInt(10000),
		NewRate:       decimal.NewFromInt(10500),
		EffectiveDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		IsAutoApplied: true,
	}, nil)

	// Act
	_, err := s.service.Approve(ctx, "req1", "approver1", "ok")

	// Assert
	s.ErrorIs(err, ErrValidation)
	s.mockRateHistory.AssertNotCalled(s.T(), "Append", mock.Anything, mock.Anything)
	s.mockLeaseUnit.AssertNotCalled(s.T(), "ApplyRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockBroadcaster.AssertNotCalled(s.T(), "BroadcastRateChange", mock.Anything, mock.Anything)
}

func (s *RateChangeServiceTestSuite) TestApprove_TransactionFailureRollsBack() {
	// Arrange: the unit of work itself fails; nothing must be observable.
	ctx := context.Background()
	txErr := errors.New("transaction failed")
	s.mockRepo.On("Atomic", mock.Anything, mock.Anything).Return(txErr)

	// Act
	_, err := s.service.Approve(ctx, "req1", "approver1", "")

	// Assert
	s.ErrorIs(err, txErr)
	s.mockBroadcaster.AssertNotCalled(s.T(), "BroadcastRateChange", mock.Anything, mock.Anything)
}

func (s *RateChangeServiceTestSuite) TestReject_AtRecommendingGate() {
	// Arrange
	ctx := context.Background()
	s.passthroughAtomic()
	s.mockRateRequest.On("GetByIDForUpdate", ctx, "req1").Return(&domain.RateChangeRequest{
		ID:           "req1",
		LeaseUnitID:  "lu1",
		CurrentRate:  decimal.NewFromInt(10000),
		ProposedRate: decimal.NewFromInt(11000),
		Status:       domain.StatusPending,
	}, nil)
	s.mockRateRequest.On("Update", ctx, mock.AnythingOfType("*domain.RateChangeRequest")).Return(nil)

	// Act
	resp, err := s.service.Reject(ctx, "req1", "reviewer1", "budget not approved", domain.StepRecommending)

	// Assert
	s.NoError(err)
	s.Equal("REJECTED", resp.Status)
	s.Equal("RECOMMENDING", resp.ApprovalStep)
	s.Equal("budget not approved", resp.RejectionReason)

	// No ledger entry and no rate mutation on rejection.
	s.mockRateHistory.AssertNotCalled(s.T(), "Append", mock.Anything, mock.Anything)
	s.mockLeaseUnit.AssertNotCalled(s.T(), "ApplyRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RateChangeServiceTestSuite) TestReject_BlankReason() {
	_, err := s.service.Reject(context.Background(), "req1", "reviewer1", "", domain.StepRecommending)
	s.ErrorIs(err, ErrValidation)
}

func (s *RateChangeServiceTestSuite) TestApplyAutomaticIncrease_Success() {
	// Arrange
	ctx := context.Background()
	s.passthroughAtomic()
	s.mockLeaseUnit.On("GetByIDForUpdate", ctx, "lu1").Return(s.leaseUnit(), nil)
	s.mockRateRequest.On("GetOpenByLeaseUnit", ctx, "lu1").Return(nil, nil)
	s.mockRateHistory.On("Latest", ctx, "lu1").Return(nil, nil)

	var appended *domain.RateHistory
	s.mockRateHistory.On("Append", ctx, mock.AnythingOfType("*domain.RateHistory")).
		Run(func(args mock.Arguments) {
			appended = args.Get(1).(*domain.RateHistory)
		}).Return(nil)
	s.mockLeaseUnit.On("ApplyRate", ctx, "lu1",
		mock.AnythingOfType("decimal.Decimal"), mock.AnythingOfType("decimal.Decimal")).Return(nil)
	s.mockLease.On("GetByIDForUpdate", ctx, "lease1").Return(&domain.Lease{ID: "lease1"}, nil)
	s.mockLeaseUnit.On("SumRentByLease", ctx, "lease1").Return(decimal.NewFromInt(10500), nil)
	s.mockLease.On("UpdateTotalRent", ctx, "lease1", decimal.NewFromInt(10500)).Return(nil)
	s.mockBroadcaster.On("BroadcastRateChange", "lease1", mock.AnythingOfType("*dto.RateHistoryResponse")).Return()

	// Act
	resp, err := s.service.ApplyAutomaticIncrease(ctx, "lu1",
		decimal.NewFromInt(10500), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "Standard increase of 5% per lease policy")

	// Assert
	s.NoError(err)
	s.True(resp.IsAutoApplied)

	// Ledger continuity: previous rate equals the unit's rate before apply.
	s.Require().NotNil(appended)
	s.True(appended.PreviousRate.Equal(decimal.NewFromInt(10000)))
	s.True(appended.NewRate.Equal(decimal.NewFromInt(10500)))
	s.True(appended.IsAutoApplied)
	s.Nil(appended.RequestID)
	s.mockLease.AssertExpectations(s.T())
}

func (s *RateChangeServiceTestSuite) TestApplyAutomaticIncrease_ConflictWithManualRequest() {
	// Arrange
	ctx := context.Background()
	s.passthroughAtomic()
	s.mockLeaseUnit.On("GetByIDForUpdate", ctx, "lu1").Return(s.leaseUnit(), nil)
	s.mockRateRequest.On("GetOpenByLeaseUnit", ctx, "lu1").Return(&domain.RateChangeRequest{
		ID:     "manual1",
		Status: domain.StatusPending,
	}, nil)

	// Act
	_, err := s.service.ApplyAutomaticIncrease(ctx, "lu1",
		decimal.NewFromInt(10500), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "policy increase")

	// Assert
	s.ErrorIs(err, ErrOpenRequestExists)
	s.mockRateHistory.AssertNotCalled(s.T(), "Append", mock.Anything, mock.Anything)
	s.mockLeaseUnit.AssertNotCalled(s.T(), "ApplyRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RateChangeServiceTestSuite) TestListDueIncreases() {
	// Arrange: one lease with a 5% annual policy, anchor at commencement.
	ctx := context.Background()
	commencement := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	s.mockLease.On("ListAutoIncreaseEnabled", ctx).Return([]domain.Lease{{
		ID:                         "lease1",
		CommencementDate:           commencement,
		AutoIncreaseEnabled:        true,
		StandardIncreasePercentage: decimal.NewFromInt(5),
		IncreaseIntervalYears:      1,
	}}, nil)
	s.mockLeaseUnit.On("ListByLease", ctx, "lease1").Return([]domain.LeaseUnit{*s.leaseUnit()}, nil)
	s.mockRateHistory.On("LatestAutoApplied", ctx, "lu1").Return(nil, nil)

	// Act
	due, err := s.service.ListDueIncreases(ctx, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

	// Assert
	s.NoError(err)
	s.Require().Len(due, 1)
	s.Equal("lu1", due[0].LeaseUnitID)
	s.True(due[0].NewRate.Equal(decimal.NewFromInt(10500)))
	s.Equal(commencement.AddDate(1, 0, 0), due[0].EffectiveDate)
}

func (s *RateChangeServiceTestSuite) TestListDueIncreases_NotYetDue() {
	// Arrange: latest auto increase applied less than a year ago.
	ctx := context.Background()
	s.mockLease.On("ListAutoIncreaseEnabled", ctx).Return([]domain.Lease{{
		ID:                         "lease1",
		CommencementDate:           time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		AutoIncreaseEnabled:        true,
		StandardIncreasePercentage: decimal.NewFromInt(5),
		IncreaseIntervalYears:      1,
	}}, nil)
	s.mockLeaseUnit.On("ListByLease", ctx, "lease1").Return([]domain.LeaseUnit{*s.leaseUnit()}, nil)
	s.mockRateHistory.On("LatestAutoApplied", ctx, "lu1").Return(&domain.RateHistory{
		LeaseUnitID:   "lu1",
		EffectiveDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	// Act
	due, err := s.service.ListDueIncreases(ctx, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

	// Assert
	s.NoError(err)
	s.Empty(due)
}
