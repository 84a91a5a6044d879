package property

import "time"

// Property is a read-only reference used to resolve ownership for
// authorization and to decorate listing responses. Its CRUD surface lives
// elsewhere; this service never mutates it.
type Property struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	OwnerID   string    `gorm:"type:uuid;index;not null"`
	Title     string    `gorm:"not null"`
	City      string    `gorm:"not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
