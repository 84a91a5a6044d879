package visit

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, v *Visit) error
	GetByID(ctx context.Context, visitID string) (*Visit, error)
	Update(ctx context.Context, v *Visit) error
	Delete(ctx context.Context, visitID string) (bool, error)

	ListByRequester(ctx context.Context, requesterID string, filter ListFilter) ([]Visit, int64, error)
	ListByProperty(ctx context.Context, propertyID string, filter ListFilter) ([]Visit, int64, error)
	// ListByOwner returns visits on any property owned by ownerID.
	ListByOwner(ctx context.Context, ownerID string, filter ListFilter) ([]Visit, int64, error)
	UpcomingByRequester(ctx context.Context, requesterID string, after time.Time) ([]Visit, error)

	// HasConflict reports whether another visit (excluding excludeID) is
	// scheduled on the property at exactly the same timestamp.
	HasConflict(ctx context.Context, propertyID string, date time.Time, excludeID string) (bool, error)
}
