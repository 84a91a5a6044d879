package proposal

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusPending, StatusAccepted, StatusRejected, StatusWithdrawn:
		return Status(value), true
	}
	return "", false
}

const (
	maxMessageLen  = 1000
	maxResponseLen = 500

	// A pending proposal stays actionable for 30 days after creation.
	validityWindow = 30 * 24 * time.Hour
)

// maxValue caps a proposal at 99,999,999.99 to fit the numeric(12,2) column.
var maxValue = decimal.RequireFromString("99999999.99")

type Proposal struct {
	ID              string          `gorm:"type:uuid;primaryKey"`
	PropertyID      string          `gorm:"type:uuid;index;not null"`
	RequesterID     string          `gorm:"type:uuid;index;not null"`
	Value           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status          Status          `gorm:"size:20;index;not null;default:pending"`
	Message         *string         `gorm:"size:1000"`
	ResponseMessage *string         `gorm:"size:500"`
	ResponseDate    *time.Time
	ExpiresAt       time.Time `gorm:"not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (p *Proposal) Pending() bool {
	return p.Status == StatusPending
}

// Expired reports whether a still-pending proposal is past its validity
// window. Expiry is only ever checked at transition time; the stored status
// stays "pending" until someone attempts a transition.
func (p *Proposal) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

type CreateInput struct {
	PropertyID  string
	RequesterID string
	Value       decimal.Decimal
	Message     *string
}

type ListFilter struct {
	Page   int
	Size   int
	Status *Status
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Size
}
