package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ewaste-tracker/internal/config"
	domainPickup "ewaste-tracker/internal/domain/pickup"
	domainUser "ewaste-tracker/internal/domain/user"
	appErrors "ewaste-tracker/pkg/errors"
	"ewaste-tracker/pkg/utils"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*domainUser.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domainUser.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*domainUser.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (f *fakeUserRepo) GetAll(_ context.Context) ([]*domainUser.User, error) {
	var out []*domainUser.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *domainUser.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return domainUser.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, userID uuid.UUID) error {
	if _, ok := f.users[userID]; !ok {
		return domainUser.ErrUserNotFound
	}
	delete(f.users, userID)
	return nil
}

type fakePickupRepo struct {
	persons []*domainPickup.Person
}

func (f *fakePickupRepo) Create(_ context.Context, person *domainPickup.Person) error {
	if person.ID == uuid.Nil {
		person.ID = uuid.New()
	}
	f.persons = append(f.persons, person)
	return nil
}

func (f *fakePickupRepo) GetByID(_ context.Context, _ uuid.UUID) (*domainPickup.Person, error) {
	return nil, domainPickup.ErrPersonNotFound
}

func (f *fakePickupRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*domainPickup.Person, error) {
	for _, p := range f.persons {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, domainPickup.ErrProfileNotFound
}

func (f *fakePickupRepo) List(_ context.Context) ([]*domainPickup.Person, error) {
	return f.persons, nil
}

func (f *fakePickupRepo) SetAvailability(_ context.Context, _ uuid.UUID, _ bool) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
	}
}

func TestRegister_CreatesActiveUserWithHashedPassword(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewService(userRepo, &fakePickupRepo{}, testConfig())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Asha Rao",
		Email:    "Asha@Example.com",
		Password: "Str0ngPass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "user", resp.User.Role)
	assert.True(t, resp.User.IsActive)
	assert.Equal(t, "asha@example.com", resp.User.Email, "email is normalized")

	stored := userRepo.users[resp.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "Str0ngPass", stored.PasswordHashed)
	assert.True(t, utils.CheckPassword(stored.PasswordHashed, "Str0ngPass"))
}

func TestRegister_RejectsWeakPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo(), &fakePickupRepo{}, testConfig())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "short",
	})
	require.Error(t, err)
	assert.Equal(t, "WEAK_PASSWORD", appErrors.CodeOf(err))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo(), &fakePickupRepo{}, testConfig())

	req := &RegisterRequest{Name: "Asha Rao", Email: "asha@example.com", Password: "Str0ngPass"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc := NewService(newFakeUserRepo(), &fakePickupRepo{}, testConfig())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name: "Asha Rao", Email: "asha@example.com", Password: "Str0ngPass",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email: "asha@example.com", Password: "Str0ngPass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	claims, err := utils.ValidateToken(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo(), &fakePickupRepo{}, testConfig())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name: "Asha Rao", Email: "asha@example.com", Password: "Str0ngPass",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email: "asha@example.com", Password: "WrongPass1",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email: "nobody@example.com", Password: "Str0ngPass",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewService(userRepo, &fakePickupRepo{}, testConfig())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name: "Asha Rao", Email: "asha@example.com", Password: "Str0ngPass",
	})
	require.NoError(t, err)

	userRepo.users[resp.User.ID].IsActive = false

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email: "asha@example.com", Password: "Str0ngPass",
	})
	assert.ErrorIs(t, err, appErrors.ErrUserInactive)
}

func TestRegisterPickupPerson_CreatesProfile(t *testing.T) {
	pickupRepo := &fakePickupRepo{}
	svc := NewService(newFakeUserRepo(), pickupRepo, testConfig())

	resp, err := svc.RegisterPickupPerson(context.Background(), &RegisterPickupPersonRequest{
		Name:          "Ravi Kumar",
		Email:         "ravi@example.com",
		Password:      "Str0ngPass",
		VehicleNumber: "MH12AB1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "pickup_person", resp.Role)

	require.Len(t, pickupRepo.persons, 1)
	person := pickupRepo.persons[0]
	assert.Equal(t, resp.ID, person.UserID)
	assert.Equal(t, "MH12AB1234", person.VehicleNumber)
	assert.True(t, person.Available)
}
