package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propstack/lease-rate-api/internal/api/dto"
	"github.com/propstack/lease-rate-api/internal/domain"
	"github.com/propstack/lease-rate-api/internal/service"
	contextutils "github.com/propstack/lease-rate-api/internal/utils"
)

type RateChangeHandlerTestSuite struct {
	suite.Suite
	mockService *MockRateChangeService
	handler     *RateChangeHandler
}

type MockRateChangeService struct {
	mock.Mock
}

func (m *MockRateChangeService) CreateRequest(ctx context.Context, req dto.CreateRateChangeRequest, requestedBy string) (*dto.RateChangeResponse, error) {
	args := m.Called(ctx, req, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RateChangeResponse), args.Error(1)
}

func (m *MockRateChangeService) Recommend(ctx context.Context, requestID, actorID, remarks string) (*dto.RateChangeResponse, error) {
	args := m.Called(ctx, requestID, actorID, remarks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RateChangeResponse), args.Error(1)
}

func (m *MockRateChangeService) Approve(ctx context.Context, requestID, actorID, remarks string) (*dto.RateChangeResponse, error) {
	args := m.Called(ctx, requestID, actorID, remarks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RateChangeResponse), args.Error(1)
}

func (m *MockRateChangeService) Reject(ctx context.Context, requestID, actorID, reason string, step domain.ApprovalStep) (*dto.RateChangeResponse, error) {
	args := m.Called(ctx, requestID, actorID, reason, step)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RateChangeResponse), args.Error(1)
}

func (m *MockRateChangeService) GetRequest(ctx context.Context, id string) (*dto.RateChangeResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RateChangeResponse), args.Error(1)
}

func (m *MockRateChangeService) ListRequests(ctx context.Context, filter *domain.RateChangeRequestFilter) ([]dto.RateChangeResponse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]dto.RateChangeResponse), args.Error(1)
}

func (s *RateChangeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockService = new(MockRateChangeService)
	s.handler = NewRateChangeHandler(s.mockService)
}

func TestRateChangeHandler(t *testing.T) {
	suite.Run(t, new(RateChangeHandlerTestSuite))
}

// authedContext builds a test context carrying claims the way JWTAuth does.
func authedContext(w *httptest.ResponseRecorder, actorID string) (*gin.Context, *gin.Engine) {
	c, r := gin.CreateTestContext(w)
	c.Set(string(contextutils.ClaimsKey), jwt.MapClaims{
		"user_id": actorID,
		"roles":   []any{"agent"},
	})
	c.Set(string(contextutils.ActorIDKey), actorID)
	return c, r
}

func (s *RateChangeHandlerTestSuite) TestCreateRequest_Success() {
	// Arrange
	req := dto.CreateRateChangeRequest{
		LeaseUnitID:   "lu1",
		ProposedRate:  decimal.NewFromInt(11000),
		ChangeType:    "MANUAL_ADJUSTMENT",
		EffectiveDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Reason:        "market adjustment",
	}
	expected := &dto.RateChangeResponse{
		ID:               "req1",
		LeaseUnitID:      "lu1",
		Status:           "PENDING",
		PercentageChange: "10.00",
	}

	s.mockService.On("CreateRequest", mock.Anything, mock.MatchedBy(func(r dto.CreateRateChangeRequest) bool {
		return r.LeaseUnitID == req.LeaseUnitID &&
			r.ProposedRate.Equal(req.ProposedRate) &&
			r.ChangeType == req.ChangeType &&
			r.Reason == req.Reason
	}), "agent1").Return(expected, nil)

	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	c, _ := authedContext(w, "agent1")
	c.Request, _ = http.NewRequest(http.MethodPost, "/rate-changes", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	s.handler.CreateRequest(c)

	// Assert
	s.Equal(http.StatusCreated, w.Code)
	var response dto.RateChangeResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal("req1", response.ID)
	s.Equal("PENDING", response.Status)
	s.mockService.AssertExpectations(s.T())
}

func (s *RateChangeHandlerTestSuite) TestCreateRequest_Conflict() {
	// Arrange
	req := dto.CreateRateChangeRequest{
		LeaseUnitID:   "lu1",
		ProposedRate:  decimal.NewFromInt(11000),
		ChangeType:    "MANUAL_ADJUSTMENT",
		EffectiveDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Reason:        "market adjustment",
	}

	s.mockService.On("CreateRequest", mock.Anything, mock.Anything, "agent1").
		Return(nil, fmt.Errorf("%w: request open1 is PENDING", service.ErrOpenRequestExists))

	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	c, _ := authedContext(w, "agent1")
	c.Request, _ = http.NewRequest(http.MethodPost, "/rate-changes", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	s.handler.CreateRequest(c)

	// Assert
	s.Equal(http.StatusConflict, w.Code)
	s.mockService.AssertExpectations(s.T())
}

func (s *RateChangeHandlerTestSuite) TestCreateRequest_MissingAuth() {
	// Arrange
	req := dto.CreateRateChangeRequest{
		LeaseUnitID:   "lu1",
		ProposedRate:  decimal.NewFromInt(11000),
		ChangeType:    "MANUAL_ADJUSTMENT",
		EffectiveDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Reason:        "market adjustment",
	}

	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/rate-changes", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	s.handler.CreateRequest(c)

	// Assert
	s.Equal(http.StatusUnauthorized, w.Code)
	s.mockService.AssertNotCalled(s.T(), "CreateRequest", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RateChangeHandlerTestSuite) TestRecommend_Success() {
	// Arrange
	expected := &dto.RateChangeResponse{
		ID:            "req1",
		Status:        "RECOMMENDED",
		RecommendedBy: "reviewer1",
	}
	s.mockService.On("Recommend", mock.Anything, "req1", "reviewer1", "fine by me").Return(expected, nil)

	body, _ := json.Marshal(dto.RecommendRequest{Remarks: "fine by me"})
	w := httptest.NewRecorder()
	c, _ := authedContext(w, "reviewer1")
	c.Request, _ = http.NewRequest(http.MethodPost, "/rate-changes/req1/recommend", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = []gin.Param{{Key: "id", Value: "req1"}}

	// Act
	s.handler.Recommend(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response dto.RateChangeResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal("RECOMMENDED", response.Status)
	s.mockService.AssertExpectations(s.T())
}

func (s *RateChangeHandlerTestSuite) TestApprove_IllegalTransition() {
	// Arrange
	s.mockService.On("Approve", mock.Anything, "req1", "approver1", "").
		Return(nil, fmt.Errorf("%w: cannot APPROVE a PENDING request", domain.ErrIllegalTransition))

	body, _ := json.Marshal(dto.ApproveRequest{})
	w := httptest.NewRecorder()
	c, _ := authedContext(w, "approver1")
	c.Request, _ = http.NewRequest(http.MethodPost, "/rate-changes/req1/approve", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = []gin.Param{{Key: "id", Value: "req1"}}

	// Act
	s.handler.Approve(c)

	// Assert
	s.Equal(http.StatusConflict, w.Code)
	s.mockService.AssertExpectations(s.T())
}

func (s *RateChangeHandlerTestSuite) TestReject_Success() {
	// Arrange
	expected := &dto.RateChangeResponse{
		ID:              "req1",
		Status:          "REJECTED",
		RejectionReason: "budget not approved",
	}
	s.mockService.On("Reject", mock.Anything, "req1", "reviewer1", "budget not approved", domain.StepRecommending).
		Return(expected, nil)

	body, _ := json.Marshal(dto.RejectRequest{Reason: "budget not approved", Step: "RECOMMENDING"})
	w := httptest.NewRecorder()
	c, _ := authedContext(w, "reviewer1")
	c.Request, _ = http.NewRequest(http.MethodPost, "/rate-changes/req1/reject", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = []gin.Param{{Key: "id", Value: "req1"}}

	// Act
	s.handler.Reject(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response dto.RateChangeResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal("REJECTED", response.Status)
	s.mockService.AssertExpectations(s.T())
}

func (s *RateChangeHandlerTestSuite) TestReject_InvalidStep() {
	// Arrange
	body, _ := json.Marshal(dto.RejectRequest{Reason: "no", Step: "SOMETHING"})
	w := httptest.NewRecorder()
	c, _ := authedContext(w, "reviewer1")
	c.Request, _ = http.NewRequest(http.MethodPost, "/rate-changes/req1/reject", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = []gin.Param{{Key: "id", Value: "req1"}}

	// Act
	s.handler.Reject(c)

	// Assert
	s.Equal(http.StatusBadRequest, w.Code)
	s.mockService.AssertNotCalled(s.T(), "Reject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RateChangeHandlerTestSuite) TestGetRequest_NotFound() {
	// Arrange
	s.mockService.On("GetRequest", mock.Anything, "missing").
		Return(nil, fmt.Errorf("%w: missing", service.ErrRequestNotFound))

	w := httptest.NewRecorder()
	c, _ := authedContext(w, "agent1")
	c.Request, _ = http.NewRequest(http.MethodGet, "/rate-changes/missing", nil)
	c.Params = []gin.Param{{Key: "id", Value: "missing"}}

	// Act
	s.handler.GetRequest(c)

	// Assert
	s.Equal(http.StatusNotFound, w.Code)
	s.mockService.AssertExpectations(s.T())
}

func (s *RateChangeHandlerTestSuite) TestListRequests_Success() {
	// Arrange
	expected := []dto.RateChangeResponse{
		{ID: "req1", Status: "PENDING"},
		{ID: "req2", Status: "APPROVED"},
	}
	s.mockService.On("ListRequests", mock.Anything, mock.MatchedBy(func(f *domain.RateChangeRequestFilter) bool {
		return f.LeaseUnitID == "lu1" && f.Status == "PENDING" && f.Page == 1 && f.PageSize == 10
	})).Return(expected, nil)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, "agent1")
	c.Request, _ = http.NewRequest(http.MethodGet, "/rate-changes?lease_unit_id=lu1&status=PENDING&page=1&page_size=10", nil)

	// Act
	s.handler.ListRequests(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response []dto.RateChangeResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Len(response, 2)
	s.mockService.AssertExpectations(s.T())
}
