package domain

import (
	"errors"
	"fmt"
)

// Approval state machine errors. The service layer maps these onto its error
// taxonomy; handlers map them onto HTTP statuses.
var (
	ErrIllegalTransition = errors.New("illegal approval transition")
	ErrActorRequired     = errors.New("acting user is required")
	ErrReasonRequired    = errors.New("rejection reason is required")
	ErrWrongGate         = errors.New("rejection step does not match the request's current gate")
)

type approvalAction string

const (
	actionRecommend approvalAction = "RECOMMEND"
	actionApprove   approvalAction = "APPROVE"
	actionReject    approvalAction = "REJECT"
)

// transitions is the single source of truth for legal status moves. Terminal
// statuses have no outgoing edges.
var transitions = map[RequestStatus]map[approvalAction]RequestStatus{
	StatusPending: {
		actionRecommend: StatusRecommended,
		actionReject:    StatusRejected,
	},
	StatusRecommended: {
		actionApprove: StatusApproved,
		actionReject:  StatusRejected,
	},
}

func nextStatus(from RequestStatus, action approvalAction) (RequestStatus, error) {
	if next, ok := transitions[from][action]; ok {
		return next, nil
	}
	return "", fmt.Errorf("%w: cannot %s a %s request", ErrIllegalTransition, action, from)
}

// Recommend moves a PENDING request through the recommending gate. It returns
// the updated request value; the caller is responsible for persisting it.
func Recommend(r RateChangeRequest, actorID, remarks string) (RateChangeRequest, error) {
	if actorID == "" {
		return r, ErrActorRequired
	}

	next, err := nextStatus(r.Status, actionRecommend)
	if err != nil {
		return r, err
	}

	r.Status = next
	r.ApprovalStep = StepRecommending
	r.RecommendedBy = actorID
	r.RecommendRemarks = remarks
	return r, nil
}

// Approve moves a RECOMMENDED request through the final gate. Applying the new
// rate is the service's job; the machine only validates and records the move.
func Approve(r RateChangeRequest, actorID, remarks string) (RateChangeRequest, error) {
	if actorID == "" {
		return r, ErrActorRequired
	}

	next, err := nextStatus(r.Status, actionApprove)
	if err != nil {
		return r, err
	}

	r.Status = next
	r.ApprovalStep = StepFinal
	r.ApprovedBy = actorID
	r.ApprovalRemarks = remarks
	return r, nil
}

// Reject terminates an unresolved request at either gate. The step must name
// the gate the request is actually waiting on, and a reason is mandatory.
func Reject(r RateChangeRequest, actorID, reason string, step ApprovalStep) (RateChangeRequest, error) {
	if actorID == "" {
		return r, ErrActorRequired
	}
	if reason == "" {
		return r, ErrReasonRequired
	}

	next, err := nextStatus(r.Status, actionReject)
	if err != nil {
		return r, err
	}

	if step != r.CurrentGate() {
		return r, fmt.Errorf("%w: request is at %s, got %s", ErrWrongGate, r.CurrentGate(), step)
	}

	r.Status = next
	r.ApprovalStep = step
	r.RejectedBy = actorID
	r.RejectionReason = reason
	return r, nil
}
