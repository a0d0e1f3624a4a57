package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Appointment is an appointment fact counted in daily stats
type Appointment struct {
	ID             uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID              `gorm:"type:uuid;not null;index" json:"organization_id"`
	ScheduledAt    time.Time              `gorm:"not null;index" json:"scheduled_at"`
	Status         enum.AppointmentStatus `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	CustomerName   string                 `gorm:"size:255" json:"customer_name,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	DeletedAt      gorm.DeletedAt         `gorm:"index" json:"-"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new appointment
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}
