package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ewaste-tracker/internal/config"
	domainPickup "ewaste-tracker/internal/domain/pickup"
	domainUser "ewaste-tracker/internal/domain/user"
	"ewaste-tracker/internal/logger"
	appErrors "ewaste-tracker/pkg/errors"
	"ewaste-tracker/pkg/utils"
)

// Service implements account use cases: self-service registration and login,
// profile management, and the admin-side user and pickup-person operations.
type Service struct {
	userRepo   domainUser.Repository
	pickupRepo domainPickup.Repository
	config     *config.Config
}

func NewService(userRepo domainUser.Repository, pickupRepo domainPickup.Repository, cfg *config.Config) *Service {
	return &Service{
		userRepo:   userRepo,
		pickupRepo: pickupRepo,
		config:     cfg,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	account, err := s.createAccount(ctx, req.Name, req.Email, req.Password,
		req.PhoneNumber, req.Address, domainUser.RoleUser)
	if err != nil {
		return nil, err
	}

	return s.authResponse(account)
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	account, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(account.PasswordHashed, req.Password) {
		logger.Warn("Failed login attempt",
			zap.String("email", account.Email),
		)
		return nil, appErrors.ErrInvalidCredentials
	}
	if !account.IsActive {
		return nil, appErrors.ErrUserInactive
	}

	return s.authResponse(account)
}

// RegisterPickupPerson creates a pickup person account plus its profile.
// Admin-only at the routing layer.
func (s *Service) RegisterPickupPerson(ctx context.Context, req *RegisterPickupPersonRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	account, err := s.createAccount(ctx, req.Name, req.Email, req.Password,
		req.PhoneNumber, req.Address, domainUser.RolePickupPerson)
	if err != nil {
		return nil, err
	}

	person := &domainPickup.Person{
		UserID:        account.ID,
		VehicleNumber: req.VehicleNumber,
		Available:     true,
		CreatedAt:     time.Now(),
	}
	if err := s.pickupRepo.Create(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to create pickup person profile: %w", err)
	}

	logger.Info("Pickup person registered",
		zap.String("user_id", account.ID.String()),
		zap.String("vehicle_number", req.VehicleNumber),
	)

	return ToUserResponse(account), nil
}

func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	account, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(account), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	account, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = utils.SanitizeString(*req.Name)
	}
	if req.PhoneNumber != nil {
		account.PhoneNumber = utils.SanitizePhone(*req.PhoneNumber)
	}
	if req.Address != nil {
		account.Address = utils.SanitizeString(*req.Address)
	}
	account.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return ToUserResponse(account), nil
}

// Admin operations

func (s *Service) ListUsers(ctx context.Context) ([]*UserResponse, error) {
	accounts, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*UserResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, ToUserResponse(account))
	}
	return responses, nil
}

func (s *Service) SetUserActive(ctx context.Context, userID uuid.UUID, active bool) error {
	account, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}

	account.IsActive = active
	account.UpdatedAt = time.Now()
	return s.userRepo.Update(ctx, account)
}

func (s *Service) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

func (s *Service) createAccount(ctx context.Context, name, email, password, phone, address string, role domainUser.Role) (*domainUser.User, error) {
	email = utils.SanitizeEmail(email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		logger.Warn("Registration attempt with existing email",
			zap.String("email", email),
		)
		return nil, appErrors.ErrUserAlreadyExists
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	account := &domainUser.User{
		Name:           utils.SanitizeString(name),
		Email:          email,
		PasswordHashed: hashed,
		PhoneNumber:    utils.SanitizePhone(phone),
		Address:        utils.SanitizeString(address),
		Role:           role,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.userRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) authResponse(account *domainUser.User) (*AuthResponse, error) {
	expiry := time.Duration(s.config.JWT.ExpiryHours) * time.Hour
	token, err := utils.GenerateToken(account.ID, account.Email, string(account.Role),
		s.config.JWT.Secret, expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		Token: token,
		User:  ToUserResponse(account),
	}, nil
}

func (s *Service) loadUser(ctx context.Context, userID uuid.UUID) (*domainUser.User, error) {
	account, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.NewAppError(appErrors.CodeNotFound, "User not found", err)
		}
		return nil, err
	}
	return account, nil
}
