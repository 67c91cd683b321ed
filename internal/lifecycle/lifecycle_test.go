package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ewaste-tracker/internal/domain/request"
	appErrors "ewaste-tracker/pkg/errors"
)

func TestParseStatus(t *testing.T) {
	for _, token := range []string{"PENDING", "APPROVED", "REJECTED", "SCHEDULED", "COMPLETED", "COLLECTED"} {
		status, err := ParseStatus(token)
		require.NoError(t, err, token)
		assert.Equal(t, request.Status(token), status)
	}
}

func TestParseStatus_Unknown(t *testing.T) {
	for _, token := range []string{"", "pending", "Approved", "DONE", " COMPLETED"} {
		_, err := ParseStatus(token)
		require.Error(t, err, token)
		assert.Equal(t, appErrors.CodeInvalidState, appErrors.CodeOf(err))
	}
}

func TestParseCondition(t *testing.T) {
	for _, token := range []string{"WORKING", "DAMAGED", "DEAD", "BROKEN", "FOR_PARTS"} {
		condition, err := ParseCondition(token)
		require.NoError(t, err, token)
		assert.Equal(t, request.Condition(token), condition)
	}

	_, err := ParseCondition("working")
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeInvalidInput, appErrors.CodeOf(err))
}

func TestTransition_SetsStatusAndTimestamps(t *testing.T) {
	now := time.Now()
	req := &request.Request{Status: request.StatusPending}

	err := Transition(req, request.StatusApproved, nil, now)
	require.NoError(t, err)

	assert.Equal(t, request.StatusApproved, req.Status)
	assert.Nil(t, req.CompletedAt)
	assert.Equal(t, now, req.UpdatedAt)
}

func TestTransition_StampsCompletedAtOnce(t *testing.T) {
	first := time.Now()
	req := &request.Request{Status: request.StatusScheduled}

	require.NoError(t, Transition(req, request.StatusCompleted, nil, first))
	require.NotNil(t, req.CompletedAt)
	assert.Equal(t, first, *req.CompletedAt)

	// A later transition must not move the completion time.
	later := first.Add(time.Hour)
	require.NoError(t, Transition(req, request.StatusCompleted, nil, later))
	assert.Equal(t, first, *req.CompletedAt)
	assert.Equal(t, later, req.UpdatedAt)
}

func TestTransition_StoresReasonWhenPresent(t *testing.T) {
	reason := "device type not accepted"
	req := &request.Request{Status: request.StatusPending}

	require.NoError(t, Transition(req, request.StatusRejected, &reason, time.Now()))
	require.NotNil(t, req.RejectionReason)
	assert.Equal(t, reason, *req.RejectionReason)

	empty := ""
	other := &request.Request{Status: request.StatusPending}
	require.NoError(t, Transition(other, request.StatusRejected, &empty, time.Now()))
	assert.Nil(t, other.RejectionReason)
}

func TestTransition_UnknownStatus(t *testing.T) {
	req := &request.Request{Status: request.StatusPending}
	err := Transition(req, request.Status("ARCHIVED"), nil, time.Now())
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeInvalidState, appErrors.CodeOf(err))
	assert.Equal(t, request.StatusPending, req.Status)
}

func TestTerminalAndAllowedNext(t *testing.T) {
	assert.False(t, Terminal(request.StatusPending))
	assert.False(t, Terminal(request.StatusApproved))
	assert.False(t, Terminal(request.StatusScheduled))
	assert.True(t, Terminal(request.StatusRejected))
	assert.True(t, Terminal(request.StatusCompleted))
	assert.True(t, Terminal(request.StatusCollected))

	assert.ElementsMatch(t,
		[]request.Status{request.StatusApproved, request.StatusRejected},
		AllowedNext(request.StatusPending))
	assert.ElementsMatch(t,
		[]request.Status{request.StatusCompleted, request.StatusCollected},
		AllowedNext(request.StatusScheduled))
}

func TestQualifying(t *testing.T) {
	assert.True(t, Qualifying(request.StatusCompleted))
	assert.True(t, Qualifying(request.StatusCollected))
	assert.False(t, Qualifying(request.StatusPending))
	assert.False(t, Qualifying(request.StatusApproved))
	assert.False(t, Qualifying(request.StatusScheduled))
	assert.False(t, Qualifying(request.StatusRejected))
}
