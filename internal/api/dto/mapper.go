package dto

import (
	"github.com/shopspring/decimal"

	"github.com/propstack/lease-rate-api/internal/domain"
	"github.com/propstack/lease-rate-api/pkg/ratecalc"
)

// PercentageNA is rendered when the previous rate was zero and the percentage
// delta is undefined.
const PercentageNA = "N/A"

func formatPercentage(previous, next decimal.Decimal) string {
	pct, ok := ratecalc.PercentageChange(previous, next)
	if !ok {
		return PercentageNA
	}
	return pct.StringFixed(2)
}

// FromRateChangeRequest converts a RateChangeRequest domain model to its
// response DTO, recomputing the display deltas from the stored rates.
func FromRateChangeRequest(req *domain.RateChangeRequest) *RateChangeResponse {
	return &RateChangeResponse{
		ID:               req.ID,
		LeaseUnitID:      req.LeaseUnitID,
		CurrentRate:      req.CurrentRate,
		ProposedRate:     req.ProposedRate,
		PercentageChange: formatPercentage(req.CurrentRate, req.ProposedRate),
		ChangeAmount:     ratecalc.ChangeAmount(req.CurrentRate, req.ProposedRate),
		ChangeType:       string(req.ChangeType),
		EffectiveDate:    req.EffectiveDate,
		Reason:           req.Reason,
		RequestedBy:      req.RequestedBy,
		Status:           string(req.Status),
		ApprovalStep:     string(req.ApprovalStep),
		RecommendedBy:    req.RecommendedBy,
		RecommendRemarks: req.RecommendRemarks,
		ApprovedBy:       req.ApprovedBy,
		ApprovalRemarks:  req.ApprovalRemarks,
		RejectedBy:       req.RejectedBy,
		RejectionReason:  req.RejectionReason,
		CreatedAt:        req.CreatedAt,
		UpdatedAt:        req.UpdatedAt,
	}
}

func FromRateChangeRequests(reqs []domain.RateChangeRequest) []RateChangeResponse {
	responses := make([]RateChangeResponse, len(reqs))
	for i, req := range reqs {
		responses[i] = *FromRateChangeRequest(&req)
	}
	return responses
}

// FromRateHistory converts a ledger entry to its response DTO. The deltas are
// recomputed from the immutable previous/new rates, so what the API returns is
// always what was shown when the change was approved.
func FromRateHistory(entry *domain.RateHistory) *RateHistoryResponse {
	requestID := ""
	if entry.RequestID != nil {
		requestID = *entry.RequestID
	}

	return &RateHistoryResponse{
		ID:               entry.ID,
		LeaseUnitID:      entry.LeaseUnitID,
		RequestID:        requestID,
		PreviousRate:     entry.PreviousRate,
		NewRate:          entry.NewRate,
		PercentageChange: formatPercentage(entry.PreviousRate, entry.NewRate),
		ChangeAmount:     ratecalc.ChangeAmount(entry.PreviousRate, entry.NewRate),
		ChangeType:       string(entry.ChangeType),
		EffectiveDate:    entry.EffectiveDate,
		Reason:           entry.Reason,
		IsAutoApplied:    entry.IsAutoApplied,
		CreatedAt:        entry.CreatedAt,
	}
}

func FromRateHistories(entries []domain.RateHistory) []RateHistoryResponse {
	responses := make([]RateHistoryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = *FromRateHistory(&entry)
	}
	return responses
}

func FromLeaseUnit(unit *domain.LeaseUnit) *LeaseUnitResponse {
	override := ""
	if unit.RentOverride != nil {
		override = unit.RentOverride.StringFixed(2)
	}

	return &LeaseUnitResponse{
		ID:           unit.ID,
		LeaseID:      unit.LeaseID,
		UnitID:       unit.UnitID,
		AreaSqm:      unit.AreaSqm,
		CurrentRate:  unit.CurrentRate,
		CurrentRent:  unit.CurrentRent,
		RentOverride: override,
		CreatedAt:    unit.CreatedAt,
		UpdatedAt:    unit.UpdatedAt,
	}
}
