package visit

import "time"

const (
	maxNotesLen  = 500
	maxReasonLen = 200

	// Visits must be booked for the future, but no more than ~6 months out.
	maxFutureAhead = 180 * 24 * time.Hour
)

type Visit struct {
	ID                 string    `gorm:"type:uuid;primaryKey"`
	PropertyID         string    `gorm:"type:uuid;index;not null"`
	RequesterID        string    `gorm:"type:uuid;index;not null"`
	VisitDate          time.Time `gorm:"index;not null"`
	IsCompleted        bool      `gorm:"not null;default:false"`
	IsCancelled        bool      `gorm:"not null;default:false"`
	Notes              *string   `gorm:"size:500"`
	CancellationReason *string   `gorm:"size:200"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

// Terminal reports whether the visit reached a final state. Completed and
// cancelled are mutually exclusive and neither can be left.
func (v *Visit) Terminal() bool {
	return v.IsCompleted || v.IsCancelled
}

func (v *Visit) Upcoming(now time.Time) bool {
	return v.VisitDate.After(now) && !v.Terminal()
}

type ScheduleInput struct {
	PropertyID  string
	RequesterID string
	VisitDate   time.Time
	Notes       *string
}

type UpdateInput struct {
	ID          string
	RequesterID string
	VisitDate   *time.Time
	Notes       *string
}

type ListFilter struct {
	Page             int
	Size             int
	IncludeCancelled bool
	IncludeCompleted bool
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Size
}
