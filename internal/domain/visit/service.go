package visit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"listings-api/internal/domain/property"
)

type Service struct {
	repo       Repository
	properties property.Repository
}

func NewService(repo Repository, properties property.Repository) *Service {
	return &Service{repo: repo, properties: properties}
}

func (s *Service) Schedule(ctx context.Context, input ScheduleInput) (*Visit, error) {
	now := time.Now().UTC()
	if err := validateVisitDate(input.VisitDate, now); err != nil {
		return nil, err
	}
	notes, err := trimmedText(input.Notes, maxNotesLen, ErrNotesTooLong)
	if err != nil {
		return nil, err
	}

	if _, err := s.properties.OwnerID(ctx, input.PropertyID); err != nil {
		return nil, err
	}

	v := &Visit{
		ID:          uuid.NewString(),
		PropertyID:  input.PropertyID,
		RequesterID: input.RequesterID,
		VisitDate:   input.VisitDate.UTC(),
		Notes:       notes,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

// Get returns a visit to its requester or to the owner of the visited
// property. Everyone else is denied.
func (s *Service) Get(ctx context.Context, visitID, subjectID string) (*Visit, error) {
	v, err := s.repo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}

	if v.RequesterID != subjectID {
		ownerID, err := s.properties.OwnerID(ctx, v.PropertyID)
		if err != nil {
			return nil, err
		}
		if ownerID != subjectID {
			return nil, ErrVisitAccessDenied
		}
	}

	return v, nil
}

func (s *Service) ListByRequester(ctx context.Context, requesterID string, filter ListFilter) ([]Visit, int64, error) {
	return s.repo.ListByRequester(ctx, requesterID, filter)
}

func (s *Service) ListByProperty(ctx context.Context, propertyID, subjectID string, filter ListFilter) ([]Visit, int64, error) {
	ownerID, err := s.properties.OwnerID(ctx, propertyID)
	if err != nil {
		return nil, 0, err
	}
	if ownerID != subjectID {
		return nil, 0, ErrVisitAccessDenied
	}

	return s.repo.ListByProperty(ctx, propertyID, filter)
}

// ListReceived returns visits scheduled on any property the subject owns.
func (s *Service) ListReceived(ctx context.Context, ownerID string, filter ListFilter) ([]Visit, int64, error) {
	return s.repo.ListByOwner(ctx, ownerID, filter)
}

func (s *Service) Upcoming(ctx context.Context, requesterID string) ([]Visit, error) {
	return s.repo.UpcomingByRequester(ctx, requesterID, time.Now().UTC())
}

// Update reschedules a visit and/or replaces its notes. Only the requester
// may update, and only while the visit is still scheduled.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*Visit, error) {
	v, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if v.RequesterID != input.RequesterID {
		return nil, ErrNotVisitRequester
	}
	if err := requireScheduled(v); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if input.VisitDate != nil && !input.VisitDate.Equal(v.VisitDate) {
		newDate := input.VisitDate.UTC()
		if err := validateVisitDate(newDate, now); err != nil {
			return nil, err
		}

		conflict, err := s.repo.HasConflict(ctx, v.PropertyID, newDate, v.ID)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, ErrVisitConflict
		}

		v.VisitDate = newDate
	}

	if input.Notes != nil {
		notes, err := trimmedText(input.Notes, maxNotesLen, ErrNotesTooLong)
		if err != nil {
			return nil, err
		}
		v.Notes = notes
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *Service) Complete(ctx context.Context, visitID, requesterID string, notes *string) (*Visit, error) {
	v, err := s.repo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if v.RequesterID != requesterID {
		return nil, ErrNotVisitRequester
	}
	if err := requireScheduled(v); err != nil {
		return nil, err
	}

	trimmed, err := trimmedText(notes, maxNotesLen, ErrNotesTooLong)
	if err != nil {
		return nil, err
	}

	v.IsCompleted = true
	if trimmed != nil {
		v.Notes = trimmed
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *Service) Cancel(ctx context.Context, visitID, requesterID string, reason *string) (*Visit, error) {
	v, err := s.repo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if v.RequesterID != requesterID {
		return nil, ErrNotVisitRequester
	}
	if err := requireScheduled(v); err != nil {
		return nil, err
	}

	trimmed, err := trimmedText(reason, maxReasonLen, ErrReasonTooLong)
	if err != nil {
		return nil, err
	}

	v.IsCancelled = true
	v.CancellationReason = trimmed

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

// Delete hard-removes a visit in any state.
func (s *Service) Delete(ctx context.Context, visitID, requesterID string) error {
	v, err := s.repo.GetByID(ctx, visitID)
	if err != nil {
		return err
	}
	if v.RequesterID != requesterID {
		return ErrNotVisitRequester
	}

	deleted, err := s.repo.Delete(ctx, visitID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrVisitNotFound
	}
	return nil
}

func requireScheduled(v *Visit) error {
	if v.IsCompleted {
		return ErrVisitCompleted
	}
	if v.IsCancelled {
		return ErrVisitCancelled
	}
	return nil
}

func validateVisitDate(date, now time.Time) error {
	if !date.After(now) {
		return ErrVisitDateInPast
	}
	if date.After(now.Add(maxFutureAhead)) {
		return ErrVisitDateTooFar
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
