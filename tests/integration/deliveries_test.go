//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shipyard-labs/delivery-track/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveries_Create_And_List(t *testing.T) {
	client := newTestClient(t)
	customer := registerCustomer(t, client)

	saleClient := newTestClient(t)
	saleClient.LoginAsSale(t)

	description := "order " + uuid.NewString()
	resp, err := saleClient.POST("/deliveries", map[string]string{
		"user_id":     customer.ID,
		"description": description,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = saleClient.GET("/deliveries")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var deliveries []struct {
		ID          string `json:"id"`
		UserID      string `json:"user_id"`
		Description string `json:"description"`
		Status      string `json:"status"`
		User        struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	testutil.DecodeJSON(t, resp, &deliveries)

	var found bool
	for _, d := range deliveries {
		if d.Description != description {
			continue
		}
		found = true
		assert.Equal(t, customer.ID, d.UserID)
		assert.Equal(t, "processing", d.Status)
		assert.Equal(t, customer.Name, d.User.Name)
		assert.Equal(t, customer.Email, d.User.Email)
	}
	assert.True(t, found, "created delivery should appear in the list")
}

func TestDeliveries_Create_UnknownUser(t *testing.T) {
	saleClient := newTestClient(t)
	saleClient.LoginAsSale(t)

	// A foreign key violation surfaces as an internal error, which the API
	// contract does not enumerate.
	resp, err := saleClient.WithoutValidation().POST("/deliveries", map[string]string{
		"user_id":     uuid.NewString(),
		"description": "order for nobody",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()
}

func TestDeliveries_RequireSaleRole(t *testing.T) {
	client := newTestClient(t)
	customer := registerCustomer(t, client)
	client.LoginAs(t, customer.Email, customer.Password)

	resp, err := client.POST("/deliveries", map[string]string{
		"user_id":     customer.ID,
		"description": "self-created order",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", errorMessage(t, resp))

	resp, err = client.GET("/deliveries")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestDeliveries_RequireToken(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/deliveries")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "JWT token not found", errorMessage(t, resp))

	client.Token = "not-a-valid-token"
	resp, err = client.GET("/deliveries")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid JWT token", errorMessage(t, resp))
}

func TestDeliveries_UpdateStatus(t *testing.T) {
	client := newTestClient(t)
	customer := registerCustomer(t, client)

	saleClient := newTestClient(t)
	saleClient.LoginAsSale(t)
	deliveryID := createDelivery(t, saleClient, customer.ID)

	setStatus(t, saleClient, deliveryID, "shipped")

	resp, err := saleClient.GET("/delivery-logs/" + deliveryID + "/show")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var details struct {
		Status string `json:"status"`
		Logs   []struct {
			Description string `json:"description"`
		} `json:"logs"`
	}
	testutil.DecodeJSON(t, resp, &details)
	assert.Equal(t, "shipped", details.Status)
	require.Len(t, details.Logs, 1)
	assert.Equal(t, "shipped", details.Logs[0].Description)
}

func TestDeliveries_UpdateStatus_UnknownDelivery(t *testing.T) {
	saleClient := newTestClient(t)
	saleClient.LoginAsSale(t)

	resp, err := saleClient.PATCH("/deliveries/"+uuid.NewString()+"/status", map[string]string{
		"status": "shipped",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "delivery not found", errorMessage(t, resp))
}

func TestDeliveries_UpdateStatus_InvalidStatus(t *testing.T) {
	client := newTestClient(t)
	customer := registerCustomer(t, client)

	saleClient := newTestClient(t)
	saleClient.LoginAsSale(t)
	deliveryID := createDelivery(t, saleClient, customer.ID)

	resp, err := saleClient.PATCH("/deliveries/"+deliveryID+"/status", map[string]string{
		"status": "teleported",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
