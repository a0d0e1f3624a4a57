package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/presentation/http/dto/response"
)

// OrganizationMiddleware rejects requests whose token carries no
// organization. Tokens are issued per organization at login, so membership
// was already verified there; handlers read the organization from the gin
// context and pass it down explicitly.
func OrganizationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		organizationIDVal, exists := c.Get("organization_id")
		if !exists {
			response.Unauthorized(c, "Organization context required")
			c.Abort()
			return
		}

		organizationID, ok := organizationIDVal.(uuid.UUID)
		if !ok || organizationID == uuid.Nil {
			response.Unauthorized(c, "Invalid organization context")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetOrganizationID retrieves the organization ID from gin context
func GetOrganizationID(c *gin.Context) uuid.UUID {
	organizationIDVal, exists := c.Get("organization_id")
	if !exists {
		return uuid.Nil
	}
	organizationID, ok := organizationIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return organizationID
}
