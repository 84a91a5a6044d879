package property

import (
	"context"
	"errors"

	"gorm.io/gorm"

	propertydomain "listings-api/internal/domain/property"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, propertyID string) (*propertydomain.Property, error) {
	var prop propertydomain.Property
	if err := r.db.WithContext(ctx).
		Where("id = ?", propertyID).
		First(&prop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, propertydomain.ErrPropertyNotFound
		}
		return nil, err
	}
	return &prop, nil
}

func (r *PostgresRepository) OwnerID(ctx context.Context, propertyID string) (string, error) {
	var ownerID string
	err := r.db.WithContext(ctx).
		Model(&propertydomain.Property{}).
		Select("owner_id").
		Where("id = ?", propertyID).
		First(&ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", propertydomain.ErrPropertyNotFound
		}
		return "", err
	}
	return ownerID, nil
}
