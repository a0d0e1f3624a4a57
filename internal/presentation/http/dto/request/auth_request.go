package request

// LoginRequest represents a login request
type LoginRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=6"`
	OrganizationSlug string `json:"organization_slug" binding:"required"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name             string `json:"name" binding:"required,min=2,max=255"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8"`
	PasswordConfirm  string `json:"password_confirm" binding:"required,eqfield=Password"`
	OrganizationName string `json:"organization_name" binding:"required,min=2,max=255"`
	Currency         string `json:"currency"`
	Timezone         string `json:"timezone"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
