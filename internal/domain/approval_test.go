package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(status RequestStatus) RateChangeRequest {
	return RateChangeRequest{
		ID:           "req1",
		LeaseUnitID:  "lu1",
		CurrentRate:  decimal.NewFromInt(10000),
		ProposedRate: decimal.NewFromInt(11000),
		ChangeType:   ChangeManualAdjustment,
		Reason:       "market adjustment",
		RequestedBy:  "agent1",
		Status:       status,
	}
}

func TestRecommend_FromPending(t *testing.T) {
	r, err := Recommend(newRequest(StatusPending), "reviewer1", "looks reasonable")
	require.NoError(t, err)

	assert.Equal(t, StatusRecommended, r.Status)
	assert.Equal(t, StepRecommending, r.ApprovalStep)
	assert.Equal(t, "reviewer1", r.RecommendedBy)
	assert.Equal(t, "looks reasonable", r.RecommendRemarks)
}

func TestRecommend_IllegalFromNonPending(t *testing.T) {
	for _, status := range []RequestStatus{StatusRecommended, StatusApproved, StatusRejected} {
		_, err := Recommend(newRequest(status), "reviewer1", "")
		assert.ErrorIs(t, err, ErrIllegalTransition, "status %s", status)
	}
}

func TestApprove_FromRecommended(t *testing.T) {
	r, err := Approve(newRequest(StatusRecommended), "approver1", "approved")
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, r.Status)
	assert.Equal(t, StepFinal, r.ApprovalStep)
	assert.Equal(t, "approver1", r.ApprovedBy)
}

func TestApprove_IllegalFromPending(t *testing.T) {
	// A request must pass the recommending gate before final approval.
	_, err := Approve(newRequest(StatusPending), "approver1", "")
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestApprove_IllegalFromTerminal(t *testing.T) {
	for _, status := range []RequestStatus{StatusApproved, StatusRejected} {
		_, err := Approve(newRequest(status), "approver1", "")
		assert.ErrorIs(t, err, ErrIllegalTransition, "status %s", status)
	}
}

func TestReject_AtRecommendingGate(t *testing.T) {
	r, err := Reject(newRequest(StatusPending), "reviewer1", "budget not approved", StepRecommending)
	require.NoError(t, err)

	assert.Equal(t, StatusRejected, r.Status)
	assert.Equal(t, StepRecommending, r.ApprovalStep)
	assert.Equal(t, "reviewer1", r.RejectedBy)
	assert.Equal(t, "budget not approved", r.RejectionReason)
}

func TestReject_AtFinalGate(t *testing.T) {
	r, err := Reject(newRequest(StatusRecommended), "approver1", "rate too aggressive", StepFinal)
	require.NoError(t, err)

	assert.Equal(t, StatusRejected, r.Status)
	assert.Equal(t, StepFinal, r.ApprovalStep)
}

func TestReject_WrongGate(t *testing.T) {
	_, err := Reject(newRequest(StatusPending), "approver1", "no", StepFinal)
	assert.ErrorIs(t, err, ErrWrongGate)

	_, err = Reject(newRequest(StatusRecommended), "reviewer1", "no", StepRecommending)
	assert.ErrorIs(t, err, ErrWrongGate)
}

func TestReject_ReasonRequired(t *testing.T) {
	_, err := Reject(newRequest(StatusPending), "reviewer1", "", StepRecommending)
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestReject_IllegalFromTerminal(t *testing.T) {
	for _, status := range []RequestStatus{StatusApproved, StatusRejected} {
		_, err := Reject(newRequest(status), "reviewer1", "reason", StepRecommending)
		assert.ErrorIs(t, err, ErrIllegalTransition, "status %s", status)
	}
}

func TestTransitions_ActorRequired(t *testing.T) {
	_, err := Recommend(newRequest(StatusPending), "", "")
	assert.ErrorIs(t, err, ErrActorRequired)

	_, err = Approve(newRequest(StatusRecommended), "", "")
	assert.ErrorIs(t, err, ErrActorRequired)

	_, err = Reject(newRequest(StatusPending), "", "reason", StepRecommending)
	assert.ErrorIs(t, err, ErrActorRequired)
}

func TestCurrentGate(t *testing.T) {
	pending := newRequest(StatusPending)
	assert.Equal(t, StepRecommending, pending.CurrentGate())

	recommended := newRequest(StatusRecommended)
	assert.Equal(t, StepFinal, recommended.CurrentGate())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusRecommended.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}
