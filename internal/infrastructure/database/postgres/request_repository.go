package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ewaste-tracker/internal/domain/request"
	"ewaste-tracker/internal/infrastructure/database/postgres/models"
)

type RequestRepository struct {
	db *DB
}

func NewRequestRepository(db *DB) request.Repository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, req *request.Request) error {
	req.ID = uuid.New()
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	if req.Status == "" {
		req.Status = request.StatusPending
	}

	dbModel := toRequestModel(req)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.ID = dbModel.ID
	req.CreatedAt = dbModel.CreatedAt
	req.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, requestID uuid.UUID) (*request.Request, error) {
	var dbModel models.RequestModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", requestID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, request.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return toRequestEntity(&dbModel), nil
}

// Update persists the full request row. The write is a conditional
// single-row UPDATE, so a concurrently deleted request surfaces as not found
// rather than silently succeeding.
func (r *RequestRepository) Update(ctx context.Context, req *request.Request) error {
	req.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.RequestModel{}).
		Where("id = ?", req.ID).
		Updates(map[string]interface{}{
			"device_type":               req.DeviceType,
			"brand":                     req.Brand,
			"model":                     req.Model,
			"condition":                 string(req.Condition),
			"quantity":                  req.Quantity,
			"pickup_address":            req.PickupAddress,
			"remarks":                   req.Remarks,
			"image_urls":                joinImageURLs(req.ImageURLs),
			"status":                    string(req.Status),
			"rejection_reason":          req.RejectionReason,
			"admin_remarks":             req.AdminRemarks,
			"scheduled_pickup_at":       req.ScheduledPickupAt,
			"completed_at":              req.CompletedAt,
			"assigned_pickup_person_id": req.AssignedPickupPersonID,
			"updated_at":                req.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return request.ErrRequestNotFound
	}

	return nil
}

func (r *RequestRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*request.Request, error) {
	var dbModels []models.RequestModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list requests by user: %w", err)
	}

	return toRequestEntities(dbModels), nil
}

func (r *RequestRepository) ListByAssignee(ctx context.Context, pickupPersonID uuid.UUID) ([]*request.Request, error) {
	var dbModels []models.RequestModel
	err := r.db.DB.WithContext(ctx).
		Where("assigned_pickup_person_id = ?", pickupPersonID).
		Order("scheduled_pickup_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list requests by assignee: %w", err)
	}

	return toRequestEntities(dbModels), nil
}

func (r *RequestRepository) ListAll(ctx context.Context, status *request.Status) ([]*request.Request, error) {
	query := r.db.DB.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var dbModels []models.RequestModel
	if err := query.Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	return toRequestEntities(dbModels), nil
}

func (r *RequestRepository) CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status request.Status) (int64, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.RequestModel{}).
		Where("user_id = ? AND status = ?", userID, string(status)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}
	return count, nil
}

func (r *RequestRepository) CountByStatus(ctx context.Context) ([]request.StatusCount, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.DB.WithContext(ctx).
		Model(&models.RequestModel{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count requests by status: %w", err)
	}

	counts := make([]request.StatusCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, request.StatusCount{Status: request.Status(row.Status), Count: row.Count})
	}
	return counts, nil
}

func (r *RequestRepository) CountByUserByStatus(ctx context.Context, userID uuid.UUID) ([]request.StatusCount, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.DB.WithContext(ctx).
		Model(&models.RequestModel{}).
		Select("status, count(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count user requests by status: %w", err)
	}

	counts := make([]request.StatusCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, request.StatusCount{Status: request.Status(row.Status), Count: row.Count})
	}
	return counts, nil
}

func (r *RequestRepository) CountByDeviceType(ctx context.Context) ([]request.DeviceTypeCount, error) {
	var rows []struct {
		DeviceType string
		Count      int64
	}
	err := r.db.DB.WithContext(ctx).
		Model(&models.RequestModel{}).
		Select("device_type, count(*) as count").
		Group("device_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count requests by device type: %w", err)
	}

	counts := make([]request.DeviceTypeCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, request.DeviceTypeCount{DeviceType: row.DeviceType, Count: row.Count})
	}
	return counts, nil
}

func toRequestModel(req *request.Request) *models.RequestModel {
	return &models.RequestModel{
		ID:                     req.ID,
		UserID:                 req.UserID,
		DeviceType:             req.DeviceType,
		Brand:                  req.Brand,
		Model:                  req.Model,
		Condition:              string(req.Condition),
		Quantity:               req.Quantity,
		PickupAddress:          req.PickupAddress,
		Remarks:                req.Remarks,
		ImageURLs:              joinImageURLs(req.ImageURLs),
		Status:                 string(req.Status),
		RejectionReason:        req.RejectionReason,
		AdminRemarks:           req.AdminRemarks,
		ScheduledPickupAt:      req.ScheduledPickupAt,
		CompletedAt:            req.CompletedAt,
		AssignedPickupPersonID: req.AssignedPickupPersonID,
		CreatedAt:              req.CreatedAt,
		UpdatedAt:              req.UpdatedAt,
	}
}

func toRequestEntity(dbModel *models.RequestModel) *request.Request {
	return &request.Request{
		ID:                     dbModel.ID,
		UserID:                 dbModel.UserID,
		DeviceType:             dbModel.DeviceType,
		Brand:                  dbModel.Brand,
		Model:                  dbModel.Model,
		Condition:              request.Condition(dbModel.Condition),
		Quantity:               dbModel.Quantity,
		PickupAddress:          dbModel.PickupAddress,
		Remarks:                dbModel.Remarks,
		ImageURLs:              splitImageURLs(dbModel.ImageURLs),
		Status:                 request.Status(dbModel.Status),
		RejectionReason:        dbModel.RejectionReason,
		AdminRemarks:           dbModel.AdminRemarks,
		ScheduledPickupAt:      dbModel.ScheduledPickupAt,
		CompletedAt:            dbModel.CompletedAt,
		AssignedPickupPersonID: dbModel.AssignedPickupPersonID,
		CreatedAt:              dbModel.CreatedAt,
		UpdatedAt:              dbModel.UpdatedAt,
	}
}

func toRequestEntities(dbModels []models.RequestModel) []*request.Request {
	entities := make([]*request.Request, 0, len(dbModels))
	for i := range dbModels {
		entities = append(entities, toRequestEntity(&dbModels[i]))
	}
	return entities
}

func joinImageURLs(urls []string) string {
	return strings.Join(urls, ",")
}

func splitImageURLs(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
