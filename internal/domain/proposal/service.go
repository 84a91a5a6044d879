package proposal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"listings-api/internal/domain/property"
)

type Service struct {
	repo       Repository
	properties property.Repository
}

func NewService(repo Repository, properties property.Repository) *Service {
	return &Service{repo: repo, properties: properties}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Proposal, error) {
	if err := validateValue(input.Value); err != nil {
		return nil, err
	}
	message, err := trimmedText(input.Message, maxMessageLen, ErrMessageTooLong)
	if err != nil {
		return nil, err
	}

	ownerID, err := s.properties.OwnerID(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if ownerID == input.RequesterID {
		return nil, ErrOwnProperty
	}

	pending, err := s.repo.HasPending(ctx, input.RequesterID, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrDuplicatePending
	}

	now := time.Now().UTC()
	p := &Proposal{
		ID:          uuid.NewString(),
		PropertyID:  input.PropertyID,
		RequesterID: input.RequesterID,
		Value:       input.Value,
		Status:      StatusPending,
		Message:     message,
		ExpiresAt:   now.Add(validityWindow),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Get returns a proposal to its requester or to the owner of the referenced
// property. Everyone else is denied.
func (s *Service) Get(ctx context.Context, proposalID, subjectID string) (*Proposal, error) {
	p, err := s.repo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	if p.RequesterID != subjectID {
		ownerID, err := s.properties.OwnerID(ctx, p.PropertyID)
		if err != nil {
			return nil, err
		}
		if ownerID != subjectID {
			return nil, ErrProposalAccessDenied
		}
	}

	return p, nil
}

func (s *Service) ListByRequester(ctx context.Context, requesterID string, filter ListFilter) ([]Proposal, int64, error) {
	return s.repo.ListByRequester(ctx, requesterID, filter)
}

func (s *Service) ListByProperty(ctx context.Context, propertyID, subjectID string, filter ListFilter) ([]Proposal, int64, error) {
	ownerID, err := s.properties.OwnerID(ctx, propertyID)
	if err != nil {
		return nil, 0, err
	}
	if ownerID != subjectID {
		return nil, 0, ErrProposalAccessDenied
	}

	return s.repo.ListByProperty(ctx, propertyID, filter)
}

// ListReceived returns proposals made on any property the subject owns.
func (s *Service) ListReceived(ctx context.Context, ownerID string, filter ListFilter) ([]Proposal, int64, error) {
	return s.repo.ListByOwner(ctx, ownerID, filter)
}

func (s *Service) Accept(ctx context.Context, proposalID, subjectID string, responseMessage *string) (*Proposal, error) {
	return s.respond(ctx, proposalID, subjectID, responseMessage, StatusAccepted)
}

func (s *Service) Reject(ctx context.Context, proposalID, subjectID string, responseMessage *string) (*Proposal, error) {
	return s.respond(ctx, proposalID, subjectID, responseMessage, StatusRejected)
}

// respond moves a pending, unexpired proposal to accepted or rejected. Only
// the resolved owner of the referenced property may respond; expiry is
// evaluated here, against the server clock, not by any background job.
func (s *Service) respond(ctx context.Context, proposalID, subjectID string, responseMessage *string, target Status) (*Proposal, error) {
	p, err := s.repo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	ownerID, err := s.properties.OwnerID(ctx, p.PropertyID)
	if err != nil {
		return nil, err
	}
	if ownerID != subjectID {
		return nil, ErrNotPropertyOwner
	}

	if !p.Pending() {
		return nil, ErrProposalNotPending
	}
	now := time.Now().UTC()
	if p.Expired(now) {
		return nil, ErrProposalExpired
	}

	trimmed, err := trimmedText(responseMessage, maxResponseLen, ErrResponseTooLong)
	if err != nil {
		return nil, err
	}

	p.Status = target
	p.ResponseMessage = trimmed
	p.ResponseDate = &now

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Withdraw(ctx context.Context, proposalID, requesterID string) (*Proposal, error) {
	p, err := s.repo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if p.RequesterID != requesterID {
		return nil, ErrNotProposalRequester
	}
	if !p.Pending() {
		return nil, ErrProposalNotPending
	}

	now := time.Now().UTC()
	p.Status = StatusWithdrawn
	p.ResponseDate = &now

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Delete hard-removes a proposal in any status. Requester only.
func (s *Service) Delete(ctx context.Context, proposalID, requesterID string) error {
	p, err := s.repo.GetByID(ctx, proposalID)
	if err != nil {
		return err
	}
	if p.RequesterID != requesterID {
		return ErrNotProposalRequester
	}

	deleted, err := s.repo.Delete(ctx, proposalID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProposalNotFound
	}
	return nil
}

func validateValue(value decimal.Decimal) error {
	if !value.IsPositive() {
		return ErrValueNotPositive
	}
	if value.GreaterThan(maxValue) {
		return ErrValueTooHigh
	}
	return nil
}

func trimmedText(value *string, maxLen int, tooLong error) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if len(trimmed) > maxLen {
		return nil, tooLong
	}
	if trimmed == "" {
		return nil, nil
	}
	return &trimmed, nil
}
