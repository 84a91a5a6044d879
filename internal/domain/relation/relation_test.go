package relation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	hasVisit    bool
	hasProposal bool
	err         error
}

func (r *fakeRepo) UserHasVisitWithOwner(ctx context.Context, userID, ownerID string) (bool, error) {
	return r.hasVisit, r.err
}

func (r *fakeRepo) UserHasProposalWithOwner(ctx context.Context, userID, ownerID string) (bool, error) {
	return r.hasProposal, r.err
}

func TestCheck(t *testing.T) {
	cases := []struct {
		name        string
		hasVisit    bool
		hasProposal bool
		want        bool
	}{
		{"no relation", false, false, false},
		{"visit only", true, false, true},
		{"proposal only", false, true, true},
		{"both", true, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewService(&fakeRepo{hasVisit: tc.hasVisit, hasProposal: tc.hasProposal})

			rel, err := s.Check(context.Background(), "user-1", "owner-1")
			require.NoError(t, err)
			assert.Equal(t, tc.hasVisit, rel.HasVisit)
			assert.Equal(t, tc.hasProposal, rel.HasProposal)
			assert.Equal(t, tc.want, rel.HasRelation())
		})
	}
}

func TestCheckPropagatesRepositoryError(t *testing.T) {
	repoErr := errors.New("connection reset")
	s := NewService(&fakeRepo{err: repoErr})

	_, err := s.Check(context.Background(), "user-1", "owner-1")
	require.ErrorIs(t, err, repoErr)
}
