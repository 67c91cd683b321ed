package notification

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ewaste-tracker/internal/domain/request"
	"ewaste-tracker/internal/domain/user"
	"ewaste-tracker/internal/logger"
)

// readableTimeLayout matches the human-readable schedule format used in
// assignment mail ("02 Jan 2006, 03:04 PM").
const readableTimeLayout = "02 Jan 2006, 03:04 PM"

// Notifier is the fire-and-forget notification surface used by the lifecycle
// services. Calls return immediately; delivery happens on worker goroutines
// after the state change has already been persisted, and a failed or dropped
// send is logged, never surfaced to the caller.
type Notifier interface {
	ApprovalIssued(req *request.Request, customer *user.User)
	AssignmentCreated(req *request.Request, assignee *user.User, customer *user.User)
	VerificationCode(req *request.Request, customer *user.User, code string)
}

type job struct {
	name string
	send func(ctx context.Context) error
}

// Dispatcher runs a pool of workers draining a buffered job queue. Each send
// is bounded by a timeout so a slow SMTP peer can never stall the queue for
// long, and enqueueing never blocks the state-changing call.
type Dispatcher struct {
	mailer  Mailer
	jobs    chan job
	workers int
	timeout time.Duration
}

func NewDispatcher(mailer Mailer, workers, queueSize int, timeout time.Duration) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 16
	}
	return &Dispatcher{
		mailer:  mailer,
		jobs:    make(chan job, queueSize),
		workers: workers,
		timeout: timeout,
	}
}

// Start launches the worker goroutines. They exit when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		go d.worker(ctx, i)
	}
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	for {
		select {
		case j := <-d.jobs:
			sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
			if err := j.send(sendCtx); err != nil {
				logger.Warn("Notification delivery failed",
					zap.String("notification", j.name),
					zap.Int("worker", id),
					zap.Error(err),
				)
			}
			cancel()
		case <-ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) enqueue(j job) {
	select {
	case d.jobs <- j:
	default:
		logger.Warn("Notification queue full, dropping",
			zap.String("notification", j.name),
		)
	}
}

func (d *Dispatcher) ApprovalIssued(req *request.Request, customer *user.User) {
	to, name := customer.Email, customer.Name
	requestID, deviceType := req.ID, req.DeviceType

	d.enqueue(job{
		name: "approval",
		send: func(ctx context.Context) error {
			return d.mailer.SendApproval(ctx, to, name, requestID, deviceType)
		},
	})
}

func (d *Dispatcher) AssignmentCreated(req *request.Request, assignee *user.User, customer *user.User) {
	scheduledAt := "N/A"
	if req.ScheduledPickupAt != nil {
		scheduledAt = req.ScheduledPickupAt.Local().Format(readableTimeLayout)
	}

	mail := AssignmentMail{
		To:            assignee.Email,
		Name:          assignee.Name,
		RequestID:     req.ID,
		DeviceType:    req.DeviceType,
		CustomerName:  customer.Name,
		CustomerPhone: customer.PhoneNumber,
		PickupAddress: req.PickupAddress,
		ScheduledAt:   scheduledAt,
	}

	d.enqueue(job{
		name: "assignment",
		send: func(ctx context.Context) error {
			return d.mailer.SendAssignment(ctx, mail)
		},
	})
}

func (d *Dispatcher) VerificationCode(req *request.Request, customer *user.User, code string) {
	to, name := customer.Email, customer.Name

	d.enqueue(job{
		name: "otp",
		send: func(ctx context.Context) error {
			return d.mailer.SendOTP(ctx, to, name, code)
		},
	})
}
