package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ewaste-tracker/internal/domain/pickup"
	"ewaste-tracker/internal/infrastructure/database/postgres/models"
)

type PickupRepository struct {
	db *DB
}

func NewPickupRepository(db *DB) pickup.Repository {
	return &PickupRepository{db: db}
}

func (r *PickupRepository) Create(ctx context.Context, person *pickup.Person) error {
	person.ID = uuid.New()
	person.CreatedAt = time.Now()

	dbModel := toPickupPersonModel(person)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create pickup person: %w", err)
	}

	person.ID = dbModel.ID
	return nil
}

func (r *PickupRepository) GetByID(ctx context.Context, personID uuid.UUID) (*pickup.Person, error) {
	var dbModel models.PickupPersonModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", personID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pickup.ErrPersonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pickup person: %w", err)
	}

	return toPickupPersonEntity(&dbModel), nil
}

func (r *PickupRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*pickup.Person, error) {
	var dbModel models.PickupPersonModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pickup.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pickup person by user: %w", err)
	}

	return toPickupPersonEntity(&dbModel), nil
}

func (r *PickupRepository) List(ctx context.Context) ([]*pickup.Person, error) {
	var dbModels []models.PickupPersonModel
	err := r.db.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pickup persons: %w", err)
	}

	entities := make([]*pickup.Person, 0, len(dbModels))
	for i := range dbModels {
		entities = append(entities, toPickupPersonEntity(&dbModels[i]))
	}
	return entities, nil
}

func (r *PickupRepository) SetAvailability(ctx context.Context, personID uuid.UUID, available bool) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.PickupPersonModel{}).
		Where("id = ?", personID).
		Update("available", available)

	if result.Error != nil {
		return fmt.Errorf("failed to set availability: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pickup.ErrPersonNotFound
	}

	return nil
}

func toPickupPersonModel(person *pickup.Person) *models.PickupPersonModel {
	return &models.PickupPersonModel{
		ID:            person.ID,
		UserID:        person.UserID,
		VehicleNumber: person.VehicleNumber,
		Available:     person.Available,
		CreatedAt:     person.CreatedAt,
	}
}

func toPickupPersonEntity(dbModel *models.PickupPersonModel) *pickup.Person {
	return &pickup.Person{
		ID:            dbModel.ID,
		UserID:        dbModel.UserID,
		VehicleNumber: dbModel.VehicleNumber,
		Available:     dbModel.Available,
		CreatedAt:     dbModel.CreatedAt,
	}
}
