//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shipyard-labs/delivery-track/internal/testutil"
	"github.com/stretchr/testify/require"
)

// errorMessage decodes an error response body and returns its message.
func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var result struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Message
}

type registeredUser struct {
	ID       string
	Name     string
	Email    string
	Password string
}

// registerCustomer creates a fresh customer account through the API.
func registerCustomer(t *testing.T, client *testutil.Client) registeredUser {
	t.Helper()

	user := registeredUser{
		Name:     "Test Customer",
		Email:    testutil.RandomEmail(),
		Password: "password123",
	}

	resp, err := client.POST("/users", map[string]string{
		"name":     user.Name,
		"email":    user.Email,
		"password": user.Password,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		ID string `json:"id"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.NotEmpty(t, result.ID)
	user.ID = result.ID
	return user
}

// createDelivery creates a delivery for userID as the sale client and returns
// its ID. The creation endpoint returns an empty body, so the ID is looked up
// in the delivery list by a unique description.
func createDelivery(t *testing.T, saleClient *testutil.Client, userID string) string {
	t.Helper()

	description := "order " + uuid.NewString()
	resp, err := saleClient.POST("/deliveries", map[string]string{
		"user_id":     userID,
		"description": description,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = saleClient.GET("/deliveries")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var deliveries []struct {
		ID          string `json:"id"`
		Description string `json:"description"`
	}
	testutil.DecodeJSON(t, resp, &deliveries)
	for _, d := range deliveries {
		if d.Description == description {
			return d.ID
		}
	}
	t.Fatalf("created delivery %q not found in list", description)
	return ""
}

// setStatus moves a delivery to the given status as the sale client.
func setStatus(t *testing.T, saleClient *testutil.Client, deliveryID, status string) {
	t.Helper()

	resp, err := saleClient.PATCH("/deliveries/"+deliveryID+"/status", map[string]string{
		"status": status,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// decodeBodyMap reads the response body into a generic map so tests can assert
// on the presence or absence of keys.
func decodeBodyMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	body := testutil.ReadBody(t, resp)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	return result
}
