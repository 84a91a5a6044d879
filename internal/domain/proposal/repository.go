package proposal

import "context"

type Repository interface {
	Create(ctx context.Context, p *Proposal) error
	GetByID(ctx context.Context, proposalID string) (*Proposal, error)
	Update(ctx context.Context, p *Proposal) error
	Delete(ctx context.Context, proposalID string) (bool, error)

	ListByRequester(ctx context.Context, requesterID string, filter ListFilter) ([]Proposal, int64, error)
	ListByProperty(ctx context.Context, propertyID string, filter ListFilter) ([]Proposal, int64, error)
	// ListByOwner returns proposals on any property owned by ownerID.
	ListByOwner(ctx context.Context, ownerID string, filter ListFilter) ([]Proposal, int64, error)

	// HasPending reports whether the requester already has a pending
	// proposal on the property.
	HasPending(ctx context.Context, requesterID, propertyID string) (bool, error)
}
