package certificate

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"ewaste-tracker/internal/document"
	domainRequest "ewaste-tracker/internal/domain/request"
	domainUser "ewaste-tracker/internal/domain/user"
	"ewaste-tracker/internal/logger"
	appErrors "ewaste-tracker/pkg/errors"
)

// RequiredSubmissions is the qualifying-request threshold for a certificate.
const RequiredSubmissions = 10

type EligibilityResponse struct {
	TotalQualified int64  `json:"totalQualified"`
	Required       int64  `json:"required"`
	IsEligible     bool   `json:"isEligible"`
	RecipientName  string `json:"recipientName"`
}

// Service gates certificate issuance on the count of COMPLETED plus COLLECTED
// requests for a user.
type Service struct {
	userRepo    domainUser.Repository
	requestRepo domainRequest.Repository
	renderer    document.Renderer
}

func NewService(userRepo domainUser.Repository, requestRepo domainRequest.Repository, renderer document.Renderer) *Service {
	return &Service{
		userRepo:    userRepo,
		requestRepo: requestRepo,
		renderer:    renderer,
	}
}

// Eligibility reports the user's qualifying count against the threshold.
func (s *Service) Eligibility(ctx context.Context, email string) (*EligibilityResponse, error) {
	account, qualified, err := s.qualifiedCount(ctx, email)
	if err != nil {
		return nil, err
	}

	return &EligibilityResponse{
		TotalQualified: qualified,
		Required:       RequiredSubmissions,
		IsEligible:     qualified >= RequiredSubmissions,
		RecipientName:  account.Name,
	}, nil
}

// Generate re-runs the eligibility count and renders the certificate when the
// user qualifies. The count is repeated here so a direct download cannot skip
// the gate.
func (s *Service) Generate(ctx context.Context, email string) ([]byte, error) {
	account, qualified, err := s.qualifiedCount(ctx, email)
	if err != nil {
		return nil, err
	}

	if qualified < RequiredSubmissions {
		return nil, &appErrors.NotQualifiedError{
			Qualified: qualified,
			Required:  RequiredSubmissions,
		}
	}

	logger.Info("Certificate generated",
		zap.String("user_id", account.ID.String()),
		zap.Int64("qualified", qualified),
	)

	return s.renderer.Certificate(account)
}

func (s *Service) qualifiedCount(ctx context.Context, email string) (*domainUser.User, int64, error) {
	account, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, 0, appErrors.NewAppError(appErrors.CodeNotFound, "User not found", err)
		}
		return nil, 0, err
	}

	completed, err := s.requestRepo.CountByUserAndStatus(ctx, account.ID, domainRequest.StatusCompleted)
	if err != nil {
		return nil, 0, err
	}
	collected, err := s.requestRepo.CountByUserAndStatus(ctx, account.ID, domainRequest.StatusCollected)
	if err != nil {
		return nil, 0, err
	}

	return account, completed + collected, nil
}
