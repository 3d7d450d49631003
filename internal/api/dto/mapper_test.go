package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/propstack/lease-rate-api/internal/domain"
)

func TestDisplayedDeltasMatchLedger(t *testing.T) {
	// The deltas shown on a pending proposal must equal the ones recomputed
	// from the ledger entry written when that proposal is approved.
	previous := decimal.NewFromInt(10000)
	proposed := decimal.NewFromFloat(10750)
	effective := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	req := &domain.RateChangeRequest{
		ID:            "req1",
		LeaseUnitID:   "lu1",
		CurrentRate:   previous,
		ProposedRate:  proposed,
		ChangeType:    domain.ChangeManualAdjustment,
		EffectiveDate: effective,
		Reason:        "market adjustment",
		Status:        domain.StatusPending,
		ApprovalStep:  domain.StepRecommending,
	}
	pending := FromRateChangeRequest(req)

	entry := &domain.RateHistory{
		ID:            "h1",
		LeaseUnitID:   "lu1",
		RequestID:     &req.ID,
		PreviousRate:  previous,
		NewRate:       proposed,
		ChangeType:    req.ChangeType,
		EffectiveDate: effective,
		Reason:        req.Reason,
	}
	applied := FromRateHistory(entry)

	assert.Equal(t, "7.50", pending.PercentageChange)
	assert.Equal(t, pending.PercentageChange, applied.PercentageChange)
	assert.True(t, pending.ChangeAmount.Equal(applied.ChangeAmount))
}

func TestFromRateHistory_ZeroPreviousRendersNA(t *testing.T) {
	entry := &domain.RateHistory{
		ID:           "h1",
		LeaseUnitID:  "lu1",
		PreviousRate: decimal.Zero,
		NewRate:      decimal.NewFromInt(500),
	}
	assert.Equal(t, PercentageNA, FromRateHistory(entry).PercentageChange)
}
