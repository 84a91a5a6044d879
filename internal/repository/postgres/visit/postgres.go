package visit

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	visitdomain "listings-api/internal/domain/visit"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, v *visitdomain.Visit) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, visitID string) (*visitdomain.Visit, error) {
	var v visitdomain.Visit
	if err := r.db.WithContext(ctx).
		Where("id = ?", visitID).
		First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, visitdomain.ErrVisitNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *PostgresRepository) Update(ctx context.Context, v *visitdomain.Visit) error {
	return r.db.WithContext(ctx).
		Model(&visitdomain.Visit{}).
		Where("id = ?", v.ID).
		Updates(map[string]interface{}{
			"visit_date":          v.VisitDate,
			"is_completed":        v.IsCompleted,
			"is_cancelled":        v.IsCancelled,
			"notes":               v.Notes,
			"cancellation_reason": v.CancellationReason,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, visitID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&visitdomain.Visit{}, "id = ?", visitID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListByRequester(ctx context.Context, requesterID string, filter visitdomain.ListFilter) ([]visitdomain.Visit, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&visitdomain.Visit{}).
		Where("requester_id = ?", requesterID)

	return r.list(applyFlags(query, filter), filter)
}

func (r *PostgresRepository) ListByProperty(ctx context.Context, propertyID string, filter visitdomain.ListFilter) ([]visitdomain.Visit, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&visitdomain.Visit{}).
		Where("property_id = ?", propertyID)

	return r.list(applyFlags(query, filter), filter)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, filter visitdomain.ListFilter) ([]visitdomain.Visit, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&visitdomain.Visit{}).
		Joins("JOIN properties ON properties.id = visits.property_id").
		Where("properties.owner_id = ?", ownerID)

	return r.list(applyFlags(query, filter), filter)
}

func (r *PostgresRepository) UpcomingByRequester(ctx context.Context, requesterID string, after time.Time) ([]visitdomain.Visit, error) {
	var visits []visitdomain.Visit
	err := r.db.WithContext(ctx).
		Where("requester_id = ? AND visit_date > ? AND is_cancelled = false", requesterID, after).
		Order("visit_date asc").
		Find(&visits).Error
	return visits, err
}

func (r *PostgresRepository) HasConflict(ctx context.Context, propertyID string, date time.Time, excludeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&visitdomain.Visit{}).
		Where("property_id = ? AND visit_date = ? AND is_cancelled = false", propertyID, date).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRepository) list(query *gorm.DB, filter visitdomain.ListFilter) ([]visitdomain.Visit, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("visit_date asc")
	if filter.Size > 0 {
		query = query.Limit(filter.Size).Offset(filter.Offset())
	}

	var visits []visitdomain.Visit
	if err := query.Find(&visits).Error; err != nil {
		return nil, 0, err
	}

	return visits, total, nil
}

func applyFlags(query *gorm.DB, filter visitdomain.ListFilter) *gorm.DB {
	if !filter.IncludeCancelled {
		query = query.Where("is_cancelled = false")
	}
	if !filter.IncludeCompleted {
		query = query.Where("is_completed = false")
	}
	return query
}
