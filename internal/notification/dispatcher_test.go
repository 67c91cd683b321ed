package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ewaste-tracker/internal/domain/request"
	"ewaste-tracker/internal/domain/user"
)

type recordedMail struct {
	kind      string
	to        string
	requestID uuid.UUID
	device    string
	code      string
}

type recordingMailer struct {
	mu    sync.Mutex
	sent  []recordedMail
	fail  bool
	done  chan struct{}
	count int
}

func newRecordingMailer(expected int) *recordingMailer {
	return &recordingMailer{done: make(chan struct{}), count: expected}
}

func (m *recordingMailer) record(mail recordedMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, mail)
	if len(m.sent) == m.count {
		close(m.done)
	}
	if m.fail {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (m *recordingMailer) SendOTP(_ context.Context, to, _, code string) error {
	return m.record(recordedMail{kind: "otp", to: to, code: code})
}

func (m *recordingMailer) SendApproval(_ context.Context, to, _ string, requestID uuid.UUID, deviceType string) error {
	return m.record(recordedMail{kind: "approval", to: to, requestID: requestID, device: deviceType})
}

func (m *recordingMailer) SendAssignment(_ context.Context, mail AssignmentMail) error {
	return m.record(recordedMail{kind: "assignment", to: mail.To, requestID: mail.RequestID, device: mail.DeviceType})
}

func (m *recordingMailer) wait(t *testing.T) []recordedMail {
	t.Helper()
	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notifications")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedMail(nil), m.sent...)
}

func testRequest() *request.Request {
	return &request.Request{
		ID:            uuid.New(),
		DeviceType:    "Laptop",
		PickupAddress: "12 MG Road, Pune",
		Status:        request.StatusApproved,
	}
}

func testCustomer() *user.User {
	return &user.User{ID: uuid.New(), Name: "Asha Rao", Email: "asha@example.com"}
}

func TestDispatcher_DeliversApproval(t *testing.T) {
	mailer := newRecordingMailer(1)
	dispatcher := NewDispatcher(mailer, 2, 8, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dispatcher.Start(ctx)

	req := testRequest()
	customer := testCustomer()
	dispatcher.ApprovalIssued(req, customer)

	sent := mailer.wait(t)
	require.Len(t, sent, 1)
	assert.Equal(t, "approval", sent[0].kind)
	assert.Equal(t, customer.Email, sent[0].to)
	assert.Equal(t, req.ID, sent[0].requestID)
	assert.Equal(t, req.DeviceType, sent[0].device)
}

func TestDispatcher_DeliversAssignmentAndCode(t *testing.T) {
	mailer := newRecordingMailer(2)
	dispatcher := NewDispatcher(mailer, 1, 8, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dispatcher.Start(ctx)

	req := testRequest()
	customer := testCustomer()
	assignee := &user.User{ID: uuid.New(), Name: "Ravi Kumar", Email: "ravi@example.com"}

	dispatcher.AssignmentCreated(req, assignee, customer)
	dispatcher.VerificationCode(req, customer, "123456")

	sent := mailer.wait(t)
	require.Len(t, sent, 2)
	assert.Equal(t, "assignment", sent[0].kind)
	assert.Equal(t, assignee.Email, sent[0].to)
	assert.Equal(t, "otp", sent[1].kind)
	assert.Equal(t, "123456", sent[1].code)
}

func TestDispatcher_DeliveryFailureDoesNotPanic(t *testing.T) {
	mailer := newRecordingMailer(1)
	mailer.fail = true
	dispatcher := NewDispatcher(mailer, 1, 8, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dispatcher.Start(ctx)

	dispatcher.ApprovalIssued(testRequest(), testCustomer())
	sent := mailer.wait(t)
	assert.Len(t, sent, 1)
}

func TestDispatcher_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	mailer := newRecordingMailer(1)
	// No workers started, so the queue never drains.
	dispatcher := NewDispatcher(mailer, 1, 1, time.Second)

	req := testRequest()
	customer := testCustomer()

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			dispatcher.ApprovalIssued(req, customer)
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}
}
