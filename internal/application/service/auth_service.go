package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/entity"
	"github.com/salonkit/settlement-api/internal/domain/repository"
	"github.com/salonkit/settlement-api/pkg/apperror"
	"github.com/salonkit/settlement-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	orgRepo    repository.OrganizationRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	orgRepo repository.OrganizationRepository,
	jwtManager *utils.JWTManager,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		orgRepo:    orgRepo,
		jwtManager: jwtManager,
	}
}

// RegisterInput represents the registration input
type RegisterInput struct {
	Name             string
	Email            string
	Password         string
	OrganizationName string
	Currency         string
	Timezone         string
}

// RegisterOutput represents the registration output
type RegisterOutput struct {
	User         *entity.User
	Organization *entity.Organization
}

// Register creates a user together with their organization. The registrant
// becomes the organization's owner.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	slug := utils.Slugify(input.OrganizationName)
	if slug == "" {
		return nil, apperror.NewBadRequestError("Organization name is required")
	}
	existingOrg, err := s.orgRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existingOrg != nil {
		return nil, apperror.NewConflictError("Organization name already taken")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     "owner",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	org := &entity.Organization{
		Name:     input.OrganizationName,
		Slug:     slug,
		Currency: input.Currency,
		Timezone: input.Timezone,
		OwnerID:  user.ID,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	if err := s.orgRepo.AddMember(ctx, &entity.OrganizationMembership{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           "owner",
	}); err != nil {
		return nil, err
	}

	return &RegisterOutput{User: user, Organization: org}, nil
}

// LoginInput represents the login input
type LoginInput struct {
	Email            string
	Password         string
	OrganizationSlug string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	Organization *entity.Organization
	AccessToken  string
	RefreshToken string
}

// Login authenticates a user against one organization and returns tokens
// scoped to it
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	org, err := s.orgRepo.GetBySlug(ctx, input.OrganizationSlug)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apperror.NewNotFoundError("Organization")
	}

	member, err := s.orgRepo.IsMember(ctx, org.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperror.ErrForbidden
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, org.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		Organization: org,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string, organizationID uuid.UUID) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}

	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apperror.NewNotFoundError("Organization")
	}

	member, err := s.orgRepo.IsMember(ctx, org.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperror.ErrForbidden
	}

	newAccessToken, err := s.jwtManager.GenerateAccessToken(user.ID, org.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		Organization: org,
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}
