package lifecycle

import (
	"fmt"
	"time"

	"ewaste-tracker/internal/domain/request"
	appErrors "ewaste-tracker/pkg/errors"
)

// knownStatuses is the closed set of status tokens. Matching is exact and
// case-sensitive; unrecognized tokens fail validation.
var knownStatuses = map[request.Status]struct{}{
	request.StatusPending:   {},
	request.StatusApproved:  {},
	request.StatusRejected:  {},
	request.StatusScheduled: {},
	request.StatusCompleted: {},
	request.StatusCollected: {},
}

// normalNext is the normal-flow successor table. It documents the intended
// progression and backs AllowedNext for dashboards; enforcement is per
// operation: SCHEDULED is only reached through scheduling, COMPLETED only
// through OTP verification and COLLECTED only through the assignee's own
// status update. Scheduling deliberately does not check the prior status
// (a REJECTED request can still be scheduled), matching the reference
// behavior; that gap is a policy decision, not an oversight here.
var normalNext = map[request.Status][]request.Status{
	request.StatusPending:   {request.StatusApproved, request.StatusRejected},
	request.StatusApproved:  {request.StatusScheduled},
	request.StatusRejected:  {},
	request.StatusScheduled: {request.StatusCompleted, request.StatusCollected},
	request.StatusCompleted: {},
	request.StatusCollected: {},
}

// ParseStatus validates a status token against the enumerated set.
func ParseStatus(token string) (request.Status, error) {
	status := request.Status(token)
	if _, ok := knownStatuses[status]; !ok {
		return "", appErrors.NewAppError(
			appErrors.CodeInvalidState,
			fmt.Sprintf("unknown request status %q", token),
			request.ErrInvalidStatus,
		)
	}
	return status, nil
}

// ParseCondition validates a device condition token.
func ParseCondition(token string) (request.Condition, error) {
	switch c := request.Condition(token); c {
	case request.ConditionWorking, request.ConditionDamaged, request.ConditionDead,
		request.ConditionBroken, request.ConditionForParts:
		return c, nil
	default:
		return "", appErrors.NewAppError(
			appErrors.CodeInvalidInput,
			fmt.Sprintf("invalid device condition %q", token),
			request.ErrInvalidCondition,
		)
	}
}

// AllowedNext returns the normal-flow successors of a status.
func AllowedNext(status request.Status) []request.Status {
	return normalNext[status]
}

// Terminal reports whether a status has no normal-flow successor.
func Terminal(status request.Status) bool {
	return len(normalNext[status]) == 0
}

// Transition applies a validated status change to the request and computes the
// derived fields. The rejection reason is stored whenever the caller supplies
// one; only the dedicated reject path makes it mandatory.
func Transition(req *request.Request, to request.Status, reason *string, now time.Time) error {
	if _, ok := knownStatuses[to]; !ok {
		return appErrors.NewAppError(
			appErrors.CodeInvalidState,
			fmt.Sprintf("unknown request status %q", to),
			request.ErrInvalidStatus,
		)
	}

	req.Status = to

	if reason != nil && *reason != "" {
		req.RejectionReason = reason
	}

	if to == request.StatusCompleted && req.CompletedAt == nil {
		completed := now
		req.CompletedAt = &completed
	}

	req.UpdatedAt = now
	return nil
}

// Qualifying reports whether a status counts toward certificate eligibility.
func Qualifying(status request.Status) bool {
	return status == request.StatusCompleted || status == request.StatusCollected
}
