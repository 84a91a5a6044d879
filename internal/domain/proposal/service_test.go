package proposal

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listings-api/internal/domain/property"
)

type fakeRepo struct {
	proposals map[string]*Proposal
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{proposals: make(map[string]*Proposal)}
}

func (r *fakeRepo) Create(ctx context.Context, p *Proposal) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	stored := *p
	r.proposals[p.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, proposalID string) (*Proposal, error) {
	p, ok := r.proposals[proposalID]
	if !ok {
		return nil, ErrProposalNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepo) Update(ctx context.Context, p *Proposal) error {
	stored, ok := r.proposals[p.ID]
	if !ok {
		return ErrProposalNotFound
	}
	stored.Status = p.Status
	stored.ResponseMessage = p.ResponseMessage
	stored.ResponseDate = p.ResponseDate
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, proposalID string) (bool, error) {
	if _, ok := r.proposals[proposalID]; !ok {
		return false, nil
	}
	delete(r.proposals, proposalID)
	return true, nil
}

func (r *fakeRepo) ListByRequester(ctx context.Context, requesterID string, filter ListFilter) ([]Proposal, int64, error) {
	result := make([]Proposal, 0)
	for _, p := range r.proposals {
		if p.RequesterID != requesterID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (r *fakeRepo) ListByProperty(ctx context.Context, propertyID string, filter ListFilter) ([]Proposal, int64, error) {
	result := make([]Proposal, 0)
	for _, p := range r.proposals {
		if p.PropertyID == propertyID {
			result = append(result, *p)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeRepo) ListByOwner(ctx context.Context, ownerID string, filter ListFilter) ([]Proposal, int64, error) {
	return nil, 0, nil
}

func (r *fakeRepo) HasPending(ctx context.Context, requesterID, propertyID string) (bool, error) {
	for _, p := range r.proposals {
		if p.RequesterID == requesterID && p.PropertyID == propertyID && p.Pending() {
			return true, nil
		}
	}
	return false, nil
}

type fakeProperties struct {
	owners map[string]string
}

func (p *fakeProperties) GetByID(ctx context.Context, propertyID string) (*property.Property, error) {
	ownerID, ok := p.owners[propertyID]
	if !ok {
		return nil, property.ErrPropertyNotFound
	}
	return &property.Property{ID: propertyID, OwnerID: ownerID}, nil
}

func (p *fakeProperties) OwnerID(ctx context.Context, propertyID string) (string, error) {
	ownerID, ok := p.owners[propertyID]
	if !ok {
		return "", property.ErrPropertyNotFound
	}
	return ownerID, nil
}

const (
	propertyID  = "9b1f4a10-2c3d-4e5f-8a6b-0c1d2e3f0001"
	ownerID     = "9b1f4a10-2c3d-4e5f-8a6b-0c1d2e3f0002"
	requesterID = "9b1f4a10-2c3d-4e5f-8a6b-0c1d2e3f0003"
	strangerID  = "9b1f4a10-2c3d-4e5f-8a6b-0c1d2e3f0004"
)

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	properties := &fakeProperties{owners: map[string]string{propertyID: ownerID}}
	return NewService(repo, properties), repo
}

func strPtr(s string) *string { return &s }

func createProposal(t *testing.T, s *Service) *Proposal {
	t.Helper()
	p, err := s.Create(context.Background(), CreateInput{
		PropertyID:  propertyID,
		RequesterID: requesterID,
		Value:       decimal.RequireFromString("350000.00"),
	})
	require.NoError(t, err)
	return p
}

func TestCreateRejectsOwnProperty(t *testing.T) {
	s, _ := newTestService()

	_, err := s.Create(context.Background(), CreateInput{
		PropertyID:  propertyID,
		RequesterID: ownerID,
		Value:       decimal.RequireFromString("100000"),
	})
	require.ErrorIs(t, err, ErrOwnProperty)
}

func TestCreateRejectsNonPositiveValue(t *testing.T) {
	s, _ := newTestService()

	for _, raw := range []string{"0", "-1", "-0.01"} {
		_, err := s.Create(context.Background(), CreateInput{
			PropertyID:  propertyID,
			RequesterID: requesterID,
			Value:       decimal.RequireFromString(raw),
		})
		require.ErrorIs(t, err, ErrValueNotPositive, "value %s", raw)
	}
}

func TestCreateRejectsValueAboveCap(t *testing.T) {
	s, _ := newTestService()

	_, err := s.Create(context.Background(), CreateInput{
		PropertyID:  propertyID,
		RequesterID: requesterID,
		Value:       decimal.RequireFromString("100000000.00"),
	})
	require.ErrorIs(t, err, ErrValueTooHigh)
}

func TestCreateRejectsDuplicatePending(t *testing.T) {
	s, _ := newTestService()
	createProposal(t, s)

	_, err := s.Create(context.Background(), CreateInput{
		PropertyID:  propertyID,
		RequesterID: requesterID,
		Value:       decimal.RequireFromString("360000.00"),
	})
	require.ErrorIs(t, err, ErrDuplicatePending)
}

func TestCreateAllowedAfterPreviousResolved(t *testing.T) {
	s, _ := newTestService()
	p := createProposal(t, s)

	_, err := s.Withdraw(context.Background(), p.ID, requesterID)
	require.NoError(t, err)

	_, err = s.Create(context.Background(), CreateInput{
		PropertyID:  propertyID,
		RequesterID: requesterID,
		Value:       decimal.RequireFromString("360000.00"),
	})
	require.NoError(t, err)
}

func TestCreateSetsValidityWindow(t *testing.T) {
	s, _ := newTestService()

	before := time.Now().UTC()
	p := createProposal(t, s)
	after := time.Now().UTC()

	assert.Equal(t, StatusPending, p.Status)
	assert.False(t, p.ExpiresAt.Before(before.Add(validityWindow)))
	assert.False(t, p.ExpiresAt.After(after.Add(validityWindow)))
}

func TestAcceptByNonOwnerIsForbidden(t *testing.T) {
	s, _ := newTestService()
	p := createProposal(t, s)

	_, err := s.Accept(context.Background(), p.ID, requesterID, nil)
	require.ErrorIs(t, err, ErrNotPropertyOwner)

	_, err = s.Reject(context.Background(), p.ID, strangerID, nil)
	require.ErrorIs(t, err, ErrNotPropertyOwner)
}

func TestAcceptRecordsResponse(t *testing.T) {
	s, repo := newTestService()
	p := createProposal(t, s)

	accepted, err := s.Accept(context.Background(), p.ID, ownerID, strPtr("  deal  "))
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, accepted.Status)
	require.NotNil(t, accepted.ResponseMessage)
	assert.Equal(t, "deal", *accepted.ResponseMessage)
	require.NotNil(t, accepted.ResponseDate)

	stored := repo.proposals[p.ID]
	assert.Equal(t, StatusAccepted, stored.Status)
}

func TestAcceptExpiredProposal(t *testing.T) {
	s, repo := newTestService()
	p := createProposal(t, s)

	stale := time.Now().UTC().Add(-time.Hour)
	repo.proposals[p.ID].ExpiresAt = stale

	_, err := s.Accept(context.Background(), p.ID, ownerID, nil)
	require.ErrorIs(t, err, ErrProposalExpired)

	// Lazy expiry: the row itself is untouched until someone transitions it.
	assert.Equal(t, StatusPending, repo.proposals[p.ID].Status)
}

func TestRespondToResolvedProposal(t *testing.T) {
	s, _ := newTestService()
	p := createProposal(t, s)

	_, err := s.Reject(context.Background(), p.ID, ownerID, nil)
	require.NoError(t, err)

	_, err = s.Accept(context.Background(), p.ID, ownerID, nil)
	require.ErrorIs(t, err, ErrProposalNotPending)
}

func TestWithdrawAfterAcceptIsRejected(t *testing.T) {
	s, _ := newTestService()
	p := createProposal(t, s)

	_, err := s.Accept(context.Background(), p.ID, ownerID, nil)
	require.NoError(t, err)

	_, err = s.Withdraw(context.Background(), p.ID, requesterID)
	require.ErrorIs(t, err, ErrProposalNotPending)
}

func TestWithdrawByNonRequesterIsForbidden(t *testing.T) {
	s, _ := newTestService()
	p := createProposal(t, s)

	_, err := s.Withdraw(context.Background(), p.ID, ownerID)
	require.ErrorIs(t, err, ErrNotProposalRequester)
}

func TestWithdrawExpiredProposalStillWorks(t *testing.T) {
	s, repo := newTestService()
	p := createProposal(t, s)
	repo.proposals[p.ID].ExpiresAt = time.Now().UTC().Add(-time.Hour)

	withdrawn, err := s.Withdraw(context.Background(), p.ID, requesterID)
	require.NoError(t, err)
	assert.Equal(t, StatusWithdrawn, withdrawn.Status)
	require.NotNil(t, withdrawn.ResponseDate)
}

func TestGetVisibility(t *testing.T) {
	s, _ := newTestService()
	p := createProposal(t, s)

	_, err := s.Get(context.Background(), p.ID, requesterID)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), p.ID, ownerID)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), p.ID, strangerID)
	require.ErrorIs(t, err, ErrProposalAccessDenied)
}

func TestListByPropertyRequiresOwnership(t *testing.T) {
	s, _ := newTestService()
	createProposal(t, s)

	_, _, err := s.ListByProperty(context.Background(), propertyID, requesterID, ListFilter{Page: 1, Size: 10})
	require.ErrorIs(t, err, ErrProposalAccessDenied)

	proposals, total, err := s.ListByProperty(context.Background(), propertyID, ownerID, ListFilter{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, proposals, 1)
}

func TestListByRequesterFiltersStatus(t *testing.T) {
	s, _ := newTestService()
	p := createProposal(t, s)
	_, err := s.Reject(context.Background(), p.ID, ownerID, nil)
	require.NoError(t, err)

	rejected := StatusRejected
	proposals, total, err := s.ListByRequester(context.Background(), requesterID, ListFilter{Page: 1, Size: 10, Status: &rejected})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, proposals, 1)
	assert.Equal(t, StatusRejected, proposals[0].Status)

	pending := StatusPending
	_, total, err = s.ListByRequester(context.Background(), requesterID, ListFilter{Page: 1, Size: 10, Status: &pending})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestDeleteAllowedInAnyStatus(t *testing.T) {
	s, repo := newTestService()
	p := createProposal(t, s)

	_, err := s.Accept(context.Background(), p.ID, ownerID, nil)
	require.NoError(t, err)

	require.ErrorIs(t, s.Delete(context.Background(), p.ID, ownerID), ErrNotProposalRequester)

	require.NoError(t, s.Delete(context.Background(), p.ID, requesterID))
	assert.Empty(t, repo.proposals)
}

func TestCreateMessageTooLong(t *testing.T) {
	s, _ := newTestService()

	long := make([]byte, maxMessageLen+1)
	for i := range long {
		long[i] = 'a'
	}

	_, err := s.Create(context.Background(), CreateInput{
		PropertyID:  propertyID,
		RequesterID: requesterID,
		Value:       decimal.RequireFromString("100000"),
		Message:     strPtr(string(long)),
	})
	require.ErrorIs(t, err, ErrMessageTooLong)
}
