//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/shipyard-labs/delivery-track/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_Login_Flow(t *testing.T) {
	client := newTestClient(t)
	user := registerCustomer(t, client)

	resp, err := client.POST("/sessions", map[string]string{
		"email":    user.Email,
		"password": user.Password,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, user.Email, result.User.Email)
	assert.Equal(t, "customer", result.User.Role)
}

func TestSessions_Login_WrongPassword(t *testing.T) {
	client := newTestClient(t)
	user := registerCustomer(t, client)

	resp, err := client.POST("/sessions", map[string]string{
		"email":    user.Email,
		"password": "wrongpassword",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", errorMessage(t, resp))
}

func TestSessions_Login_UnknownEmail(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.POST("/sessions", map[string]string{
		"email":    testutil.RandomEmail(),
		"password": "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", errorMessage(t, resp))
}

func TestSessions_SeededSaleAccount(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.POST("/sessions", map[string]string{
		"email":    "sale@example.com",
		"password": "password",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "sale", result.User.Role)
}
