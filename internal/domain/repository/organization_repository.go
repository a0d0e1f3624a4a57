package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/entity"
)

// OrganizationRepository defines the interface for organization data operations
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Organization, error)
	IsMember(ctx context.Context, organizationID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, membership *entity.OrganizationMembership) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
