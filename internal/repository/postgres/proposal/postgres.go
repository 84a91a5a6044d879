package proposal

import (
	"context"
	"errors"

	"gorm.io/gorm"

	proposaldomain "listings-api/internal/domain/proposal"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *proposaldomain.Proposal) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, proposalID string) (*proposaldomain.Proposal, error) {
	var p proposaldomain.Proposal
	if err := r.db.WithContext(ctx).
		Where("id = ?", proposalID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, proposaldomain.ErrProposalNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *proposaldomain.Proposal) error {
	return r.db.WithContext(ctx).
		Model(&proposaldomain.Proposal{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"status":           p.Status,
			"response_message": p.ResponseMessage,
			"response_date":    p.ResponseDate,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, proposalID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&proposaldomain.Proposal{}, "id = ?", proposalID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListByRequester(ctx context.Context, requesterID string, filter proposaldomain.ListFilter) ([]proposaldomain.Proposal, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&proposaldomain.Proposal{}).
		Where("requester_id = ?", requesterID)

	return r.list(applyStatus(query, filter), filter)
}

func (r *PostgresRepository) ListByProperty(ctx context.Context, propertyID string, filter proposaldomain.ListFilter) ([]proposaldomain.Proposal, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&proposaldomain.Proposal{}).
		Where("property_id = ?", propertyID)

	return r.list(applyStatus(query, filter), filter)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, filter proposaldomain.ListFilter) ([]proposaldomain.Proposal, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&proposaldomain.Proposal{}).
		Joins("JOIN properties ON properties.id = proposals.property_id").
		Where("properties.owner_id = ?", ownerID)

	return r.list(applyStatus(query, filter), filter)
}

func (r *PostgresRepository) HasPending(ctx context.Context, requesterID, propertyID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&proposaldomain.Proposal{}).
		Where("requester_id = ? AND property_id = ? AND status = ?", requesterID, propertyID, proposaldomain.StatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRepository) list(query *gorm.DB, filter proposaldomain.ListFilter) ([]proposaldomain.Proposal, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at desc")
	if filter.Size > 0 {
		query = query.Limit(filter.Size).Offset(filter.Offset())
	}

	var proposals []proposaldomain.Proposal
	if err := query.Find(&proposals).Error; err != nil {
		return nil, 0, err
	}

	return proposals, total, nil
}

func applyStatus(query *gorm.DB, filter proposaldomain.ListFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}
