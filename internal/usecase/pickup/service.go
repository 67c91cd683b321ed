package pickup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainPickup "ewaste-tracker/internal/domain/pickup"
	domainRequest "ewaste-tracker/internal/domain/request"
	domainUser "ewaste-tracker/internal/domain/user"
	"ewaste-tracker/internal/lifecycle"
	"ewaste-tracker/internal/logger"
	"ewaste-tracker/internal/notification"
	"ewaste-tracker/internal/otp"
	requestUsecase "ewaste-tracker/internal/usecase/request"
	appErrors "ewaste-tracker/pkg/errors"
	"ewaste-tracker/pkg/utils"
)

// Service implements the pickup person's field operations: assigned jobs,
// the in-person OTP verification flow and the COLLECTED status update.
type Service struct {
	requestRepo domainRequest.Repository
	userRepo    domainUser.Repository
	pickupRepo  domainPickup.Repository
	otpStore    otp.Store
	notifier    notification.Notifier
	maxAttempts int
}

func NewService(
	requestRepo domainRequest.Repository,
	userRepo domainUser.Repository,
	pickupRepo domainPickup.Repository,
	otpStore otp.Store,
	notifier notification.Notifier,
	maxAttempts int,
) *Service {
	if maxAttempts < 1 {
		maxAttempts = 5
	}
	return &Service{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		pickupRepo:  pickupRepo,
		otpStore:    otpStore,
		notifier:    notifier,
		maxAttempts: maxAttempts,
	}
}

// AssignedRequests returns the requests currently assigned to the pickup
// person behind the given account.
func (s *Service) AssignedRequests(ctx context.Context, userID uuid.UUID) ([]*requestUsecase.RequestResponse, error) {
	person, err := s.personForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	reqs, err := s.requestRepo.ListByAssignee(ctx, person.ID)
	if err != nil {
		return nil, err
	}
	return requestUsecase.ToRequestResponses(reqs), nil
}

// UpdateStatus lets a pickup person mark one of their own jobs COLLECTED.
// Any other target status is rejected, and jobs assigned to someone else
// fail with an authorization error.
func (s *Service) UpdateStatus(ctx context.Context, userID, requestID uuid.UUID, req *UpdateStatusRequest) (*requestUsecase.RequestResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	status, err := lifecycle.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if status != domainRequest.StatusCollected {
		return nil, appErrors.NewAppError(appErrors.CodeInvalidInput,
			"Invalid status update. Only 'COLLECTED' is allowed.", nil)
	}

	person, err := s.personForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entity, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if entity.AssignedPickupPersonID == nil || *entity.AssignedPickupPersonID != person.ID {
		return nil, appErrors.NewAppError(appErrors.CodeUnauthorized,
			"Access denied: this request is not assigned to you", domainRequest.ErrNotAssigned)
	}

	if err := lifecycle.Transition(entity, domainRequest.StatusCollected, nil, time.Now()); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Update(ctx, entity); err != nil {
		return nil, err
	}

	logger.Info("Request marked collected",
		zap.String("request_id", entity.ID.String()),
		zap.String("pickup_person_id", person.ID.String()),
	)

	return requestUsecase.ToRequestResponse(entity), nil
}

// InitiateVerification issues a fresh 6-digit code for the request,
// overwriting any previous one, and mails it to the customer. Reissuing is
// deliberately not idempotent.
func (s *Service) InitiateVerification(ctx context.Context, requestID uuid.UUID) error {
	entity, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return err
	}

	customer, err := s.userRepo.GetByID(ctx, entity.UserID)
	if err != nil || customer.Email == "" {
		return appErrors.NewAppError(appErrors.CodeNotFound,
			"Customer contact address not found", err)
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return err
	}

	s.otpStore.Put(requestID, code)
	s.notifier.VerificationCode(entity, customer, code)

	logger.Info("Verification initiated",
		zap.String("request_id", requestID.String()),
	)

	return nil
}

// CompleteVerification checks the submitted code against the stored one.
// On success the request is persisted as COMPLETED with a completion time
// before the code is discarded, making the code single-use. Too many wrong
// submissions invalidate the code outright.
func (s *Service) CompleteVerification(ctx context.Context, requestID uuid.UUID, req *CompleteVerificationRequest) (*requestUsecase.RequestResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeInvalidOTP, "Invalid OTP", err)
	}

	stored, found := s.otpStore.Get(requestID)
	if !found || stored != req.OTP {
		if found {
			if attempts := s.otpStore.FailedAttempt(requestID); attempts >= s.maxAttempts {
				s.otpStore.Delete(requestID)
				logger.Warn("Verification code invalidated after repeated failures",
					zap.String("request_id", requestID.String()),
					zap.Int("attempts", attempts),
				)
			}
		}
		return nil, appErrors.NewAppError(appErrors.CodeInvalidOTP, "Invalid OTP", appErrors.ErrInvalidOTP)
	}

	entity, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.Transition(entity, domainRequest.StatusCompleted, nil, time.Now()); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Update(ctx, entity); err != nil {
		return nil, err
	}

	// The code is consumed unconditionally once the completion is durable.
	s.otpStore.Delete(requestID)

	logger.Info("Request verified and completed",
		zap.String("request_id", entity.ID.String()),
	)

	return requestUsecase.ToRequestResponse(entity), nil
}

// Route returns the stops for the pickup person's SCHEDULED jobs with
// placeholder coordinates derived from the request id.
func (s *Service) Route(ctx context.Context, userID uuid.UUID) (*RouteResponse, error) {
	person, err := s.personForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	reqs, err := s.requestRepo.ListByAssignee(ctx, person.ID)
	if err != nil {
		return nil, err
	}

	stops := make([]RouteStop, 0, len(reqs))
	for _, entity := range reqs {
		if entity.Status != domainRequest.StatusScheduled {
			continue
		}
		stops = append(stops, s.routeStop(ctx, entity))
	}

	return &RouteResponse{Stops: stops, TotalStops: len(stops)}, nil
}

// List returns every pickup person profile.
func (s *Service) List(ctx context.Context) ([]*PersonResponse, error) {
	persons, err := s.pickupRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*PersonResponse, 0, len(persons))
	for _, person := range persons {
		resp := ToPersonResponse(person)
		if account, err := s.userRepo.GetByID(ctx, person.UserID); err == nil {
			resp.Name = account.Name
			resp.Email = account.Email
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// SetAvailability toggles the pickup person's availability flag.
func (s *Service) SetAvailability(ctx context.Context, userID uuid.UUID, available bool) error {
	person, err := s.personForUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.pickupRepo.SetAvailability(ctx, person.ID, available)
}

func (s *Service) personForUser(ctx context.Context, userID uuid.UUID) (*domainPickup.Person, error) {
	person, err := s.pickupRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainPickup.ErrProfileNotFound) || errors.Is(err, domainPickup.ErrPersonNotFound) {
			return nil, appErrors.NewAppError(appErrors.CodeNotFound,
				"Pickup person profile not found", err)
		}
		return nil, err
	}
	return person, nil
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

func (s *Service) routeStop(ctx context.Context, entity *domainRequest.Request) RouteStop {
	customerName := "Customer"
	if customer, err := s.userRepo.GetByID(ctx, entity.UserID); err == nil && customer.Name != "" {
		customerName = customer.Name
	}

	device := strings.TrimSpace(fmt.Sprintf("%s - %s %s", entity.DeviceType, entity.Brand, entity.Model))

	scheduled := "N/A"
	if entity.ScheduledPickupAt != nil {
		scheduled = entity.ScheduledPickupAt.Format(time.RFC3339)
	}

	return RouteStop{
		RequestID:     entity.ID,
		Address:       entity.PickupAddress,
		Customer:      customerName,
		Device:        device,
		ScheduledTime: scheduled,
		Coordinates:   placeholderCoordinates(entity.ID),
		Status:        "UPCOMING",
	}
}

// placeholderCoordinates spreads stops around a fixed base point using the
// request id. A stand-in until real geocoding exists.
func placeholderCoordinates(requestID uuid.UUID) Coordinates {
	const baseLat, baseLng = 40.7128, -74.0060
	offset := float64(requestID[0]%100) * 0.01
	return Coordinates{Lat: baseLat + offset, Lng: baseLng + offset}
}
