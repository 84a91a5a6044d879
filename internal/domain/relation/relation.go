// Package relation answers the identity service's reverse-direction
// question: does a user have any visit or proposal on a property owned by a
// given owner? The identity service calls this before releasing contact
// details to that owner.
package relation

import "context"

type Relation struct {
	HasVisit    bool
	HasProposal bool
}

func (r Relation) HasRelation() bool {
	return r.HasVisit || r.HasProposal
}

type Repository interface {
	UserHasVisitWithOwner(ctx context.Context, userID, ownerID string) (bool, error)
	UserHasProposalWithOwner(ctx context.Context, userID, ownerID string) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Check(ctx context.Context, userID, ownerID string) (Relation, error) {
	hasVisit, err := s.repo.UserHasVisitWithOwner(ctx, userID, ownerID)
	if err != nil {
		return Relation{}, err
	}

	hasProposal, err := s.repo.UserHasProposalWithOwner(ctx, userID, ownerID)
	if err != nil {
		return Relation{}, err
	}

	return Relation{HasVisit: hasVisit, HasProposal: hasProposal}, nil
}
