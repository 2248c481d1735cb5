package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "chatwarden/internal/shared/errors"
)

func recordedContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestErrorResponseWithError_MapsAppError(t *testing.T) {
	c, w := recordedContext()

	ErrorResponseWithError(c, apperrors.NewNotFoundError("bot not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "bot not found")
}

func TestErrorResponseWithError_MasksUnknownErrors(t *testing.T) {
	c, w := recordedContext()

	ErrorResponseWithError(c, errors.New("pq: duplicate key value"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "duplicate key",
		"internal error details must not reach the client")
	assert.Contains(t, w.Body.String(), string(apperrors.ErrorTypeInternal))
}

func TestCreatedResponse(t *testing.T) {
	c, w := recordedContext()

	CreatedResponse(c, map[string]string{"name": "guard"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "guard")
}
