package api

import (
	"context"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/propstack/lease-rate-api/internal/api/dto"
)

//go:generate mockery --name LeaseUnitService --output ../mocks
type LeaseUnitService interface {
	GetLeaseUnit(ctx context.Context, id string) (*dto.LeaseUnitResponse, error)
	History(ctx context.Context, leaseUnitID string) ([]dto.RateHistoryResponse, error)
}

type LeaseUnitHandler struct {
	*BaseHandler
	service LeaseUnitService
}

func NewLeaseUnitHandler(service LeaseUnitService) *LeaseUnitHandler {
	return &LeaseUnitHandler{service: service}
}

// GetLeaseUnit Get a lease unit by ID
// @Summary Get lease unit
// @Description Get a lease unit with its current rate and rent
// @Tags    lease_units
// @Produce json
// @Param   id path string true "Lease unit ID"
// @Success 200 {object} dto.LeaseUnitResponse
// @Failure 401 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /lease-units/{id} [get]
func (h *LeaseUnitHandler) GetLeaseUnit(c *gin.Context) {
	unit, err := h.service.GetLeaseUnit(h.RequestCtx(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, unit)
}

// History Get the full rate ledger of a lease unit
// @Summary Get rate history
// @Description Get the lease unit's rate ledger ordered by effective date, with percentage and amount deltas recomputed from the stored rates
// @Tags    lease_units
// @Produce json
// @Param   id path string true "Lease unit ID"
// @Success 200 {array} dto.RateHistoryResponse
// @Failure 401 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /lease-units/{id}/history [get]
func (h *LeaseUnitHandler) History(c *gin.Context) {
	entries, err := h.service.History(h.RequestCtx(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// ExportHistory Export a lease unit's rate ledger in JSON or CSV format
// @Summary Export rate history
// @Description Export the lease unit's rate ledger in JSON or CSV format
// @Tags    lease_units
// @Produce json,text/csv
// @Param   id path string true "Lease unit ID"
// @Param   format query string false "Export format (json or csv)" default(json)
// @Success 200 {file} file
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /lease-units/{id}/history/export [get]
func (h *LeaseUnitHandler) ExportHistory(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "csv" {
		c.JSON(http.StatusBadRequest, dto.Error{Error: "Invalid format. Must be 'json' or 'csv'"})
		return
	}

	entries, err := h.service.History(h.RequestCtx(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	switch format {
	case "json":
		c.Header("Content-Disposition", "attachment; filename=rate_history.json")
		c.JSON(http.StatusOK, entries)
	case "csv":
		c.Header("Content-Disposition", "attachment; filename=rate_history.csv")
		c.Header("Content-Type", "text/csv")

		writer := csv.NewWriter(c.Writer)
		defer writer.Flush()

		header := []string{
			"ID", "LeaseUnitID", "RequestID", "PreviousRate", "NewRate",
			"PercentageChange", "ChangeAmount", "ChangeType",
			"EffectiveDate", "Reason", "IsAutoApplied", "CreatedAt",
		}
		if err := writer.Write(header); err != nil {
			c.JSON(http.StatusInternalServerError, dto.Error{Error: "Failed to write CSV header"})
			return
		}

		for _, entry := range entries {
			record := []string{
				entry.ID,
				entry.LeaseUnitID,
				entry.RequestID,
				entry.PreviousRate.StringFixed(2),
				entry.NewRate.StringFixed(2),
				entry.PercentageChange,
				entry.ChangeAmount.StringFixed(2),
				entry.ChangeType,
				entry.EffectiveDate.Format(time.RFC3339),
				entry.Reason,
				strconv.FormatBool(entry.IsAutoApplied),
				entry.CreatedAt.Format(time.RFC3339),
			}

			if err := writer.Write(record); err != nil {
				c.JSON(http.StatusInternalServerError, dto.Error{Error: "Failed to write CSV record"})
				return
			}
		}
	}
}
