package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization represents a business (salon/clinic/store) whose cash drawer
// is settled once per day. Settlement dates are interpreted in the
// organization's timezone, and all monetary values are in its currency.
type Organization struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	Currency  string         `gorm:"size:10;default:'TWD'" json:"currency"`
	Timezone  string         `gorm:"size:64;default:'Asia/Taipei'" json:"timezone"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Owner   User                     `gorm:"foreignKey:OwnerID" json:"-"`
	Members []OrganizationMembership `gorm:"foreignKey:OrganizationID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new organization
func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Organization model
func (Organization) TableName() string {
	return "organizations"
}

// Location resolves the organization's timezone, falling back to UTC when
// the stored zone name is unknown to the host.
func (o *Organization) Location() *time.Location {
	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// OrganizationMembership represents a user's membership in an organization
type OrganizationMembership struct {
	OrganizationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"organization_id"`
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role           string    `gorm:"size:50;default:'member'" json:"role"` // owner, admin, member
	CreatedAt      time.Time `json:"created_at"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	User         User         `gorm:"foreignKey:UserID" json:"-"`
}

// TableName returns the table name for the OrganizationMembership model
func (OrganizationMembership) TableName() string {
	return "organization_memberships"
}
