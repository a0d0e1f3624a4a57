package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetOrganizationID extracts the organization ID from the Gin context
func GetOrganizationID(c *gin.Context) *uuid.UUID {
	organizationIDVal, exists := c.Get("organization_id")
	if !exists {
		return nil
	}
	organizationID, ok := organizationIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &organizationID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// parseDate parses a YYYY-MM-DD query or body value
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// parseTimestamp parses an RFC 3339 timestamp
func parseTimestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}
