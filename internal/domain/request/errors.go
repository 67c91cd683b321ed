package request

import "errors"

var (
	ErrRequestNotFound  = errors.New("request not found")
	ErrInvalidStatus    = errors.New("invalid request status")
	ErrInvalidCondition = errors.New("invalid device condition")
	ErrNotAssigned      = errors.New("request is not assigned to this pickup person")
	ErrReasonRequired   = errors.New("rejection reason is required")
)
