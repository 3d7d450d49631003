package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/propstack/lease-rate-api/internal/api/dto"
	"github.com/propstack/lease-rate-api/internal/domain"
	"github.com/propstack/lease-rate-api/internal/service"
	contextutils "github.com/propstack/lease-rate-api/internal/utils"
	"github.com/propstack/lease-rate-api/pkg/utils"
)

//go:generate mockery --name RateChangeService --output ../mocks
type RateChangeService interface {
	CreateRequest(ctx context.Context, req dto.CreateRateChangeRequest, requestedBy string) (*dto.RateChangeResponse, error)
	Recommend(ctx context.Context, requestID, actorID, remarks string) (*dto.RateChangeResponse, error)
	Approve(ctx context.Context, requestID, actorID, remarks string) (*dto.RateChangeResponse, error)
	Reject(ctx context.Context, requestID, actorID, reason string, step domain.ApprovalStep) (*dto.RateChangeResponse, error)
	GetRequest(ctx context.Context, id string) (*dto.RateChangeResponse, error)
	ListRequests(ctx context.Context, filter *domain.RateChangeRequestFilter) ([]dto.RateChangeResponse, error)
}

type RateChangeHandler struct {
	*BaseHandler
	service RateChangeService
}

func NewRateChangeHandler(service RateChangeService) *RateChangeHandler {
	return &RateChangeHandler{service: service}
}

// CreateRequest Propose a rate change for a lease unit
// @Summary Create rate change request
// @Description Propose a new rate for a lease unit. The request starts in PENDING and must pass both approval gates before the rate takes effect.
// @Tags    rate_changes
// @Accept  json
// @Produce json
// @Param   body body dto.CreateRateChangeRequest true "Rate change proposal"
// @Success 201 {object} dto.RateChangeResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /rate-changes [post]
func (h *RateChangeHandler) CreateRequest(c *gin.Context) {
	var req dto.CreateRateChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	ctx := h.RequestCtx(c)
	actorID, err := contextutils.GetActorIDFromContext(ctx)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
		return
	}

	resp, err := h.service.CreateRequest(ctx, req, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Recommend Pass a request through the recommending gate
// @Summary Recommend rate change request
// @Description Move a PENDING request to RECOMMENDED. The lease unit's rate is not touched until final approval.
// @Tags    rate_changes
// @Accept  json
// @Produce json
// @Param   id path string true "Request ID"
// @Param   body body dto.RecommendRequest false "Recommendation remarks"
// @Success 200 {object} dto.RateChangeResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /rate-changes/{id}/recommend [post]
func (h *RateChangeHandler) Recommend(c *gin.Context) {
	var req dto.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	ctx := h.RequestCtx(c)
	actorID, err := contextutils.GetActorIDFromContext(ctx)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
		return
	}

	resp, err := h.service.Recommend(ctx, c.Param("id"), actorID, req.Remarks)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Approve Pass a request through the final gate and apply the rate
// @Summary Approve rate change request
// @Description Move a RECOMMENDED request to APPROVED. The new rate, the ledger entry, and the lease rent totals are applied atomically.
// @Tags    rate_changes
// @Accept  json
// @Produce json
// @Param   id path string true "Request ID"
// @Param   body body dto.ApproveRequest false "Approval remarks"
// @Success 200 {object} dto.RateChangeResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /rate-changes/{id}/approve [post]
func (h *RateChangeHandler) Approve(c *gin.Context) {
	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	ctx := h.RequestCtx(c)
	actorID, err := contextutils.GetActorIDFromContext(ctx)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
		return
	}

	resp, err := h.service.Approve(ctx, c.Param("id"), actorID, req.Remarks)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Reject Reject a request at the gate it is waiting on
// @Summary Reject rate change request
// @Description Reject an unresolved request. The step must name the gate the request is currently at, and a reason is mandatory.
// @Tags    rate_changes
// @Accept  json
// @Produce json
// @Param   id path string true "Request ID"
// @Param   body body dto.RejectRequest true "Rejection reason and gate"
// @Success 200 {object} dto.RateChangeResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /rate-changes/{id}/reject [post]
func (h *RateChangeHandler) Reject(c *gin.Context) {
	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	step := domain.ApprovalStep(req.Step)
	if step != domain.StepRecommending && step != domain.StepFinal {
		c.JSON(http.StatusBadRequest, dto.Error{Error: "step must be RECOMMENDING or FINAL"})
		return
	}

	ctx := h.RequestCtx(c)
	actorID, err := contextutils.GetActorIDFromContext(ctx)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
		return
	}

	resp, err := h.service.Reject(ctx, c.Param("id"), actorID, req.Reason, step)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetRequest Get a rate change request by ID
// @Summary Get rate change request
// @Description Get a rate change request with its recomputed percentage and amount deltas
// @Tags    rate_changes
// @Produce json
// @Param   id path string true "Request ID"
// @Success 200 {object} dto.RateChangeResponse
// @Failure 401 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /rate-changes/{id} [get]
func (h *RateChangeHandler) GetRequest(c *gin.Context) {
	resp, err := h.service.GetRequest(h.RequestCtx(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListRequests List rate change requests with filtering
// @Summary List rate change requests
// @Description Get a paginated list of rate change requests with filtering options
// @Tags    rate_changes
// @Produce json
// @Param   page query int false "Page number"
// @Param   page_size query int false "Page size"
// @Param   lease_unit_id query string false "Filter by lease unit ID"
// @Param   lease_id query string false "Filter by lease ID"
// @Param   status query string false "Filter by status (PENDING, RECOMMENDED, APPROVED, REJECTED)"
// @Param   change_type query string false "Filter by change type"
// @Param   requested_by query string false "Filter by requesting user ID"
// @Param   effective_from query string false "Only requests effective on or after this date (RFC3339 or YYYY-MM-DD)"
// @Param   effective_to query string false "Only requests effective on or before this date (RFC3339 or YYYY-MM-DD)"
// @Success 200 {array} dto.RateChangeResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /rate-changes [get]
func (h *RateChangeHandler) ListRequests(c *gin.Context) {
	filter, err := getRequestFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	resp, err := h.service.ListRequests(h.RequestCtx(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func getRequestFilterFromQuery(c *gin.Context) (*domain.RateChangeRequestFilter, error) {
	filter := &domain.RateChangeRequestFilter{
		LeaseUnitID: c.Query("lease_unit_id"),
		LeaseID:     c.Query("lease_id"),
		Status:      domain.RequestStatus(c.Query("status")),
		ChangeType:  domain.ChangeType(c.Query("change_type")),
		RequestedBy: c.Query("requested_by"),
	}

	// Parse pagination
	if page := c.Query("page"); page != "" {
		if pageNum, err := strconv.Atoi(page); err == nil {
			filter.Page = pageNum
		}
	}
	if pageSize := c.Query("page_size"); pageSize != "" {
		if size, err := strconv.Atoi(pageSize); err == nil {
			filter.PageSize = size
		}
	}

	// Parse effective date window
	if from := c.Query("effective_from"); from != "" {
		t, err := utils.ParseUserDate(from)
		if err != nil {
			return nil, err
		}
		filter.EffectiveFrom = t
	}
	if to := c.Query("effective_to"); to != "" {
		t, err := utils.ParseUserDate(to)
		if err != nil {
			return nil, err
		}
		filter.EffectiveTo = t
	}
	if !filter.EffectiveFrom.IsZero() && !filter.EffectiveTo.IsZero() &&
		filter.EffectiveFrom.After(filter.EffectiveTo) {
		return nil, fmt.Errorf("effective_from must be before effective_to")
	}

	return filter, nil
}

// respondError maps service and state machine errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, domain.ErrReasonRequired):
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, domain.ErrActorRequired):
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
	case errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrLeaseUnitNotFound),
		errors.Is(err, service.ErrLeaseNotFound):
		c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
	case errors.Is(err, service.ErrOpenRequestExists),
		errors.Is(err, domain.ErrIllegalTransition),
		errors.Is(err, domain.ErrWrongGate):
		c.JSON(http.StatusConflict, dto.Error{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
	}
}
