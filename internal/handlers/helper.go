package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey       = "user_id"
	requestStartKey = "request_start"

	// UserIDHeader carries the caller identity; authentication is handled upstream.
	UserIDHeader  = "X-User-ID"
	AnonymousUser = "anonymous"
)

// UserIdentity stores the caller id from UserIDHeader in the gin context,
// falling back to AnonymousUser.
func UserIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			userID = AnonymousUser
		}
		c.Set(userIDKey, userID)
		c.Set(requestStartKey, time.Now())
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	if userID := c.GetString(userIDKey); userID != "" {
		return userID
	}
	return AnonymousUser
}

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := c.Param(param)
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "form-builder-service",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
