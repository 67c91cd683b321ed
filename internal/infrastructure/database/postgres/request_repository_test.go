package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ewaste-tracker/internal/domain/request"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{})
	require.NoError(t, err)

	return &DB{DB: gormDB}, mock
}

func TestRequestRepository_GetByID(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRequestRepository(db)

	requestID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "device_type", "condition", "quantity",
		"pickup_address", "image_urls", "status", "created_at", "updated_at",
	}).AddRow(
		requestID, userID, "Laptop", "DEAD", 2,
		"12 MG Road, Pune", "front.jpg,back.jpg", "PENDING", now, now,
	)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ewaste_requests"`)).
		WillReturnRows(rows)

	entity, err := repo.GetByID(context.Background(), requestID)
	require.NoError(t, err)

	assert.Equal(t, requestID, entity.ID)
	assert.Equal(t, userID, entity.UserID)
	assert.Equal(t, request.StatusPending, entity.Status)
	assert.Equal(t, request.ConditionDead, entity.Condition)
	assert.Equal(t, []string{"front.jpg", "back.jpg"}, entity.ImageURLs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRequestRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ewaste_requests"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, request.ErrRequestNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_Update(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRequestRepository(db)

	entity := &request.Request{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		DeviceType:    "Laptop",
		Condition:     request.ConditionWorking,
		Quantity:      1,
		PickupAddress: "12 MG Road, Pune",
		Status:        request.StatusApproved,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "ewaste_requests" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	before := time.Now()
	require.NoError(t, repo.Update(context.Background(), entity))
	assert.False(t, entity.UpdatedAt.Before(before), "update refreshes updated_at")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_Update_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRequestRepository(db)

	entity := &request.Request{ID: uuid.New(), Status: request.StatusApproved}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "ewaste_requests" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), entity)
	require.Error(t, err)
	assert.True(t, errors.Is(err, request.ErrRequestNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_ListAll_StatusFilter(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRequestRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "device_type", "condition", "quantity",
		"pickup_address", "status", "created_at", "updated_at",
	}).AddRow(
		uuid.New(), uuid.New(), "Phone", "WORKING", 1,
		"12 MG Road, Pune", "PENDING", now, now,
	)

	mock.ExpectQuery(`SELECT \* FROM "ewaste_requests" WHERE status = .+`).
		WillReturnRows(rows)

	status := request.StatusPending
	list, err := repo.ListAll(context.Background(), &status)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, request.StatusPending, list[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_CountByUserAndStatus(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRequestRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "ewaste_requests"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountByUserAndStatus(context.Background(), uuid.New(), request.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_CountByStatus(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRequestRepository(db)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("PENDING", 3).
		AddRow("COMPLETED", 12)

	mock.ExpectQuery(`SELECT status, count\(\*\) as count FROM "ewaste_requests"`).
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, request.StatusPending, counts[0].Status)
	assert.Equal(t, int64(3), counts[0].Count)
	assert.Equal(t, request.StatusCompleted, counts[1].Status)
	assert.Equal(t, int64(12), counts[1].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
