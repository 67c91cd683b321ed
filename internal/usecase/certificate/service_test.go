package certificate

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainRequest "ewaste-tracker/internal/domain/request"
	domainUser "ewaste-tracker/internal/domain/user"
	appErrors "ewaste-tracker/pkg/errors"
)

type fakeUserRepo struct {
	account *domainUser.User
}

func (f *fakeUserRepo) Create(_ context.Context, _ *domainUser.User) error { return nil }

func (f *fakeUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*domainUser.User, error) {
	if f.account != nil && f.account.ID == userID {
		return f.account, nil
	}
	return nil, domainUser.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	if f.account != nil && f.account.Email == email {
		return f.account, nil
	}
	return nil, domainUser.ErrUserNotFound
}

func (f *fakeUserRepo) GetAll(_ context.Context) ([]*domainUser.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(_ context.Context, _ *domainUser.User) error   { return nil }
func (f *fakeUserRepo) Delete(_ context.Context, _ uuid.UUID) error          { return nil }

// countingRequestRepo serves only the status counts the certificate gate reads.
type countingRequestRepo struct {
	completed int64
	collected int64
}

func (f *countingRequestRepo) Create(_ context.Context, _ *domainRequest.Request) error { return nil }

func (f *countingRequestRepo) GetByID(_ context.Context, _ uuid.UUID) (*domainRequest.Request, error) {
	return nil, domainRequest.ErrRequestNotFound
}

func (f *countingRequestRepo) Update(_ context.Context, _ *domainRequest.Request) error { return nil }

func (f *countingRequestRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]*domainRequest.Request, error) {
	return nil, nil
}

func (f *countingRequestRepo) ListByAssignee(_ context.Context, _ uuid.UUID) ([]*domainRequest.Request, error) {
	return nil, nil
}

func (f *countingRequestRepo) ListAll(_ context.Context, _ *domainRequest.Status) ([]*domainRequest.Request, error) {
	return nil, nil
}

func (f *countingRequestRepo) CountByUserAndStatus(_ context.Context, _ uuid.UUID, status domainRequest.Status) (int64, error) {
	switch status {
	case domainRequest.StatusCompleted:
		return f.completed, nil
	case domainRequest.StatusCollected:
		return f.collected, nil
	}
	return 0, nil
}

func (f *countingRequestRepo) CountByStatus(_ context.Context) ([]domainRequest.StatusCount, error) {
	return nil, nil
}

func (f *countingRequestRepo) CountByUserByStatus(_ context.Context, _ uuid.UUID) ([]domainRequest.StatusCount, error) {
	return nil, nil
}

func (f *countingRequestRepo) CountByDeviceType(_ context.Context) ([]domainRequest.DeviceTypeCount, error) {
	return nil, nil
}

type fakeRenderer struct {
	certificates int
}

func (f *fakeRenderer) RequestReport(_ *domainRequest.Request) ([]byte, error) {
	return []byte("%PDF-report"), nil
}

func (f *fakeRenderer) Certificate(_ *domainUser.User) ([]byte, error) {
	f.certificates++
	return []byte("%PDF-certificate"), nil
}

func newTestService(completed, collected int64) (*Service, *fakeRenderer, *domainUser.User) {
	account := &domainUser.User{
		ID:    uuid.New(),
		Name:  "Asha Rao",
		Email: "asha@example.com",
	}
	renderer := &fakeRenderer{}
	svc := NewService(&fakeUserRepo{account: account},
		&countingRequestRepo{completed: completed, collected: collected}, renderer)
	return svc, renderer, account
}

func TestEligibility_BelowThreshold(t *testing.T) {
	svc, _, account := newTestService(5, 4)

	resp, err := svc.Eligibility(context.Background(), account.Email)
	require.NoError(t, err)

	assert.Equal(t, int64(9), resp.TotalQualified)
	assert.Equal(t, int64(RequiredSubmissions), resp.Required)
	assert.False(t, resp.IsEligible)
	assert.Equal(t, account.Name, resp.RecipientName)
}

func TestEligibility_AtThreshold(t *testing.T) {
	svc, _, account := newTestService(6, 4)

	resp, err := svc.Eligibility(context.Background(), account.Email)
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.TotalQualified)
	assert.True(t, resp.IsEligible)
}

func TestEligibility_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService(0, 0)

	_, err := svc.Eligibility(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeNotFound, appErrors.CodeOf(err))
}

func TestGenerate_RefusedBelowThreshold(t *testing.T) {
	svc, renderer, account := newTestService(9, 0)

	_, err := svc.Generate(context.Background(), account.Email)
	require.Error(t, err)

	var notQualified *appErrors.NotQualifiedError
	require.True(t, errors.As(err, &notQualified))
	assert.Equal(t, int64(9), notQualified.Qualified)
	assert.Equal(t, int64(RequiredSubmissions), notQualified.Required)
	assert.Zero(t, renderer.certificates, "no certificate is rendered below the threshold")
}

func TestGenerate_RendersWhenQualified(t *testing.T) {
	svc, renderer, account := newTestService(7, 3)

	pdf, err := svc.Generate(context.Background(), account.Email)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, 1, renderer.certificates)
}
