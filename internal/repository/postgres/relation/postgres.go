package relation

import (
	"context"

	"gorm.io/gorm"

	proposaldomain "listings-api/internal/domain/proposal"
	visitdomain "listings-api/internal/domain/visit"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) UserHasVisitWithOwner(ctx context.Context, userID, ownerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&visitdomain.Visit{}).
		Joins("JOIN properties ON properties.id = visits.property_id").
		Where("visits.requester_id = ? AND properties.owner_id = ?", userID, ownerID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRepository) UserHasProposalWithOwner(ctx context.Context, userID, ownerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&proposaldomain.Proposal{}).
		Joins("JOIN properties ON properties.id = proposals.property_id").
		Where("proposals.requester_id = ? AND properties.owner_id = ?", userID, ownerID).
		Count(&count).Error
	return count > 0, err
}
