//go:build integration

package integration

import (
	"net/http"
	"strings"
	"testing"

	"github.com/shipyard-labs/delivery-track/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_Register(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail()

	resp, err := client.POST("/users", map[string]string{
		"name":     "Alice Example",
		"email":    email,
		"password": "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	result := decodeBodyMap(t, resp)
	assert.NotEmpty(t, result["id"])
	assert.Equal(t, "Alice Example", result["name"])
	assert.Equal(t, email, result["email"])
	assert.Equal(t, "customer", result["role"])
	assert.NotContains(t, result, "password")
}

func TestUsers_Register_DuplicateEmail(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail()

	body := map[string]string{
		"name":     "First Registration",
		"email":    email,
		"password": "password123",
	}

	resp, err := client.POST("/users", body)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = client.POST("/users", body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User with same email already exists", errorMessage(t, resp))
}

func TestUsers_Register_EmailCaseInsensitive(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail()

	resp, err := client.POST("/users", map[string]string{
		"name":     "Lower Case",
		"email":    email,
		"password": "password123",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = client.POST("/users", map[string]string{
		"name":     "Upper Case",
		"email":    strings.ToUpper(email),
		"password": "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User with same email already exists", errorMessage(t, resp))
}

func TestUsers_Register_Validation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{
			name: "missing name",
			body: map[string]string{"email": testutil.RandomEmail(), "password": "password123"},
		},
		{
			name: "invalid email",
			body: map[string]string{"name": "Bad Email", "email": "not-an-email", "password": "password123"},
		},
		{
			name: "short password",
			body: map[string]string{"name": "Short Pass", "email": testutil.RandomEmail(), "password": "123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t)
			resp, err := client.POST("/users", tt.body)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var result struct {
				Message string `json:"message"`
				Issues  []struct {
					Field   string `json:"field"`
					Message string `json:"message"`
				} `json:"issues"`
			}
			testutil.DecodeJSON(t, resp, &result)
			assert.Equal(t, "validation error", result.Message)
			assert.NotEmpty(t, result.Issues)
		})
	}
}
