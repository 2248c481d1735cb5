package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"chatwarden/internal/shared/errors"
)

// ParseUintParam parses a numeric ID from a Gin route parameter.
// entityName is used in error messages (e.g. "bot", "chat").
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + entityName + " ID")
	}
	return uint(id), nil
}

// ParseUintQuery parses an optional numeric query parameter, returning zero
// when absent.
func ParseUintQuery(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.NewValidationError("invalid " + name + " parameter")
	}
	return uint(v), nil
}
