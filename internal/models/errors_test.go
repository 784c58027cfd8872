package models

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respondWith(t *testing.T, status int, err error) (int, ErrorResponse, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return RespondWithError(c, status, err)
	})

	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
	require.NoError(t, reqErr)
	raw, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body, string(raw)
}

func TestRespondWithError_ClientErrorKeepsTaxonomy(t *testing.T) {
	status, body, _ := respondWith(t, fiber.StatusConflict, NewDuplicateInviteError())

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, CodeDuplicateInvite, body.Code)
	assert.Equal(t, "Invite already sent to this user", body.Error)
}

func TestRespondWithError_InternalHidesCause(t *testing.T) {
	cause := errors.New(`pq: password authentication failed for user "tapcard"`)
	status, body, raw := respondWith(t, fiber.StatusInternalServerError, NewInternalError(cause))

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, CodeInternal, body.Code)
	assert.Equal(t, "Internal server error", body.Error)
	assert.Empty(t, body.Details)
	assert.NotContains(t, raw, "pq:")
	assert.NotContains(t, raw, "authentication")
}

func TestRespondWithError_InternalHidesPlainError(t *testing.T) {
	// Unhandled errors reach the responder unwrapped via the fiber ErrorHandler.
	cause := errors.New("dial tcp 10.0.0.3:5432: connect: connection refused")
	status, body, raw := respondWith(t, fiber.StatusInternalServerError, cause)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body.Error)
	assert.NotContains(t, raw, "10.0.0.3")
}
