package property

import "context"

type Repository interface {
	GetByID(ctx context.Context, propertyID string) (*Property, error)
	OwnerID(ctx context.Context, propertyID string) (string, error)
}
