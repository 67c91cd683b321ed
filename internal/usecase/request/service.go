package request

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ewaste-tracker/internal/document"
	"ewaste-tracker/internal/domain/pickup"
	domainRequest "ewaste-tracker/internal/domain/request"
	domainUser "ewaste-tracker/internal/domain/user"
	"ewaste-tracker/internal/lifecycle"
	"ewaste-tracker/internal/logger"
	"ewaste-tracker/internal/notification"
	appErrors "ewaste-tracker/pkg/errors"
	"ewaste-tracker/pkg/utils"
)

// Service implements the request lifecycle and scheduling use cases. Each
// operation is a single load-modify-persist against the durable store;
// notifications fire only after the state change is saved.
type Service struct {
	requestRepo domainRequest.Repository
	userRepo    domainUser.Repository
	pickupRepo  pickup.Repository
	notifier    notification.Notifier
	renderer    document.Renderer
}

func NewService(
	requestRepo domainRequest.Repository,
	userRepo domainUser.Repository,
	pickupRepo pickup.Repository,
	notifier notification.Notifier,
	renderer document.Renderer,
) *Service {
	return &Service{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		pickupRepo:  pickupRepo,
		notifier:    notifier,
		renderer:    renderer,
	}
}

// Submit creates a new collection request in PENDING.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, req *SubmitRequest) (*RequestResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	condition, err := lifecycle.ParseCondition(req.Condition)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.NewAppError(appErrors.CodeNotFound, "User not found", err)
		}
		return nil, err
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	now := time.Now()
	entity := &domainRequest.Request{
		UserID:        userID,
		DeviceType:    utils.SanitizeString(req.DeviceType),
		Brand:         utils.SanitizeString(req.Brand),
		Model:         utils.SanitizeString(req.Model),
		Condition:     condition,
		Quantity:      quantity,
		PickupAddress: utils.SanitizeString(req.PickupAddress),
		Remarks:       req.Remarks,
		ImageURLs:     req.ImageURLs,
		Status:        domainRequest.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.requestRepo.Create(ctx, entity); err != nil {
		return nil, err
	}

	logger.Info("Collection request submitted",
		zap.String("request_id", entity.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("device_type", entity.DeviceType),
	)

	return ToRequestResponse(entity), nil
}

// ListForUser returns the user's requests, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*RequestResponse, error) {
	reqs, err := s.requestRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToRequestResponses(reqs), nil
}

// ListAll returns every request, optionally filtered by status. An
// unrecognized status token is ignored and the full list returned, matching
// the admin listing's historical behavior.
func (s *Service) ListAll(ctx context.Context, statusToken string) ([]*RequestResponse, error) {
	var filter *domainRequest.Status
	if statusToken != "" {
		if status, err := lifecycle.ParseStatus(statusToken); err == nil {
			filter = &status
		}
	}

	reqs, err := s.requestRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToRequestResponses(reqs), nil
}

// Get returns a single request by id.
func (s *Service) Get(ctx context.Context, requestID uuid.UUID) (*RequestResponse, error) {
	entity, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return ToRequestResponse(entity), nil
}

// SetStatus applies a status change by token. The new status is persisted
// first; an APPROVED transition then fires the approval notification
// best-effort, so the status change holds regardless of mail outcome.
func (s *Service) SetStatus(ctx context.Context, requestID uuid.UUID, req *UpdateStatusRequest) (*RequestResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	status, err := lifecycle.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	entity, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.Transition(entity, status, req.RejectionReason, time.Now()); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Update(ctx, entity); err != nil {
		return nil, err
	}

	logger.Info("Request status updated",
		zap.String("request_id", entity.ID.String()),
		zap.String("status", string(status)),
	)

	if status == domainRequest.StatusApproved {
		s.notifyApproval(ctx, entity)
	}

	return ToRequestResponse(entity), nil
}

// Reject moves a request to REJECTED with a mandatory reason. This is the
// only path that requires one; the generic status update stores a reason
// opportunistically when present.
func (s *Service) Reject(ctx context.Context, requestID uuid.UUID, req *RejectRequest) (*RequestResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation,
			"Rejection reason must be between 5 and 500 characters", err)
	}

	entity, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	reason := req.RejectionReason
	if err := lifecycle.Transition(entity, domainRequest.StatusRejected, &reason, time.Now()); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Update(ctx, entity); err != nil {
		return nil, err
	}

	logger.Info("Request rejected",
		zap.String("request_id", entity.ID.String()),
	)

	return ToRequestResponse(entity), nil
}

// Schedule records a pickup time and, when a pickup person is supplied, binds
// the assignee and forces the status to SCHEDULED. A date-only call persists
// the time without touching the status. Scheduling does not check the prior
// status; see the lifecycle transition table for the rationale.
func (s *Service) Schedule(ctx context.Context, requestID uuid.UUID, req *ScheduleRequest) (*RequestResponse, error) {
	entity, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if req.PickupDate != nil {
		pickupAt, err := time.Parse(time.RFC3339, *req.PickupDate)
		if err != nil {
			return nil, appErrors.NewAppError(appErrors.CodeInvalidInput,
				"Pickup date must be a valid RFC 3339 timestamp", err)
		}
		entity.ScheduledPickupAt = &pickupAt
	}

	if req.PickupPersonID == nil {
		// Date-only save; status unchanged.
		entity.UpdatedAt = now
		if err := s.requestRepo.Update(ctx, entity); err != nil {
			return nil, err
		}
		return ToRequestResponse(entity), nil
	}

	person, err := s.pickupRepo.GetByID(ctx, *req.PickupPersonID)
	if err != nil {
		if errors.Is(err, pickup.ErrPersonNotFound) {
			return nil, appErrors.NewAppError(appErrors.CodeNotFound, "Pickup person not found", err)
		}
		return nil, err
	}

	entity.AssignedPickupPersonID = &person.ID
	if err := lifecycle.Transition(entity, domainRequest.StatusScheduled, nil, now); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Update(ctx, entity); err != nil {
		return nil, err
	}

	logger.Info("Pickup scheduled",
		zap.String("request_id", entity.ID.String()),
		zap.String("pickup_person_id", person.ID.String()),
	)

	s.notifyAssignment(ctx, entity, person)

	return ToRequestResponse(entity), nil
}

// Report renders a PDF summary of the user's own request. Requests belonging
// to other users are refused.
func (s *Service) Report(ctx context.Context, userID, requestID uuid.UUID) ([]byte, error) {
	entity, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if entity.UserID != userID {
		return nil, appErrors.NewAppError(appErrors.CodeUnauthorized,
			"Access denied: this request belongs to another user", nil)
	}

	return s.renderer.RequestReport(entity)
}

// GlobalStats returns request counts grouped by status.
func (s *Service) GlobalStats(ctx context.Context) ([]StatusCountResponse, error) {
	counts, err := s.requestRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return toStatusCounts(counts), nil
}

// UserStats returns the user's request counts grouped by status.
func (s *Service) UserStats(ctx context.Context, userID uuid.UUID) ([]StatusCountResponse, error) {
	counts, err := s.requestRepo.CountByUserByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toStatusCounts(counts), nil
}

// DeviceTypeStats returns request counts grouped by device type, with empty
// device types bucketed as "Unknown".
func (s *Service) DeviceTypeStats(ctx context.Context) ([]DeviceTypeCountResponse, error) {
	counts, err := s.requestRepo.CountByDeviceType(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]DeviceTypeCountResponse, 0, len(counts))
	for _, c := range counts {
		deviceType := c.DeviceType
		if deviceType == "" {
			deviceType = "Unknown"
		}
		responses = append(responses, DeviceTypeCountResponse{DeviceType: deviceType, Count: c.Count})
	}
	return responses, nil
}

func (s *Service) loadRequest(ctx context.Context, requestID uuid.UUID) (*domainRequest.Request, error) {
	entity, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domainRequest.ErrRequestNotFound) {
			return nil, appErrors.NewAppError(appErrors.CodeNotFound, "Request not found", err)
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service) notifyApproval(ctx context.Context, entity *domainRequest.Request) {
	customer, err := s.userRepo.GetByID(ctx, entity.UserID)
	if err != nil || customer.Email == "" {
		logger.Warn("Approval notification skipped, customer unavailable",
			zap.String("request_id", entity.ID.String()),
			zap.Error(err),
		)
		return
	}
	s.notifier.ApprovalIssued(entity, customer)
}

func (s *Service) notifyAssignment(ctx context.Context, entity *domainRequest.Request, person *pickup.Person) {
	assignee, err := s.userRepo.GetByID(ctx, person.UserID)
	if err != nil {
		logger.Warn("Assignment notification skipped, assignee account unavailable",
			zap.String("request_id", entity.ID.String()),
			zap.Error(err),
		)
		return
	}

	customer, err := s.userRepo.GetByID(ctx, entity.UserID)
	if err != nil {
		logger.Warn("Assignment notification skipped, customer unavailable",
			zap.String("request_id", entity.ID.String()),
			zap.Error(err),
		)
		return
	}

	s.notifier.AssignmentCreated(entity, assignee, customer)
}

func toStatusCounts(counts []domainRequest.StatusCount) []StatusCountResponse {
	responses := make([]StatusCountResponse, 0, len(counts))
	for _, c := range counts {
		responses = append(responses, StatusCountResponse{Status: string(c.Status), Count: c.Count})
	}
	return responses
}
