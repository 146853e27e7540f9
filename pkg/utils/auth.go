package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linskybing/projectsign/pkg/types"
)

var GetUserIDFromContext = func(c *gin.Context) (uint, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return 0, errors.New("user claims not found in context")
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return 0, errors.New("invalid user claims type")
	}

	return claims.UserID, nil
}

var GetUserNameFromContext = func(c *gin.Context) (string, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return "", errors.New("user claims not found in context")
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return "", errors.New("invalid user claims type")
	}

	return claims.Username, nil
}

// ClientIP prefers the first X-Forwarded-For hop, then X-Real-IP.
func ClientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// ActorFromContext builds the request actor. The user id is 0 when the
// request carries no claims.
func ActorFromContext(c *gin.Context) types.Actor {
	uid, _ := GetUserIDFromContext(c)
	return types.Actor{
		UserID:    uid,
		IP:        ClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
	}
}

// ParseUUIDParam reads a path parameter that must be a UUID.
func ParseUUIDParam(c *gin.Context, name string) (string, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
