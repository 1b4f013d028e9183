package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopease/models"
)

func TestCreateOrder(t *testing.T) {
	router, db, _ := newTestEnv(t)

	paidAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	recorder := doRequest(t, router, http.MethodPost, "/api/orders", "", gin.H{
		"userId":      3,
		"totalPrice":  59.97,
		"isPaid":      true,
		"paidAt":      paidAt,
		"isDelivered": false,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var order models.Order
	require.NoError(t, db.First(&order).Error)
	assert.Equal(t, uint(3), order.UserID)
	assert.Equal(t, 59.97, order.TotalPrice)
	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	assert.False(t, order.IsDelivered)
	assert.Nil(t, order.DeliveredAt)
}

func TestCreateOrderRequiresUserID(t *testing.T) {
	router, _, _ := newTestEnv(t)

	recorder := doRequest(t, router, http.MethodPost, "/api/orders", "", gin.H{
		"totalPrice": 10.0,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

// Repeated submission of the same checkout intentionally creates duplicate
// receipts; there is no idempotency key.
func TestCreateOrderNoDeduplication(t *testing.T) {
	router, db, _ := newTestEnv(t)

	for i := 0; i < 2; i++ {
		recorder := doRequest(t, router, http.MethodPost, "/api/orders", "", gin.H{
			"userId":     3,
			"totalPrice": 10.0,
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestListOrdersOwnOnly(t *testing.T) {
	router, db, _ := newTestEnv(t)

	aliceToken := registerUser(t, router, "alice", "alice@x.com", "pw123")
	registerUser(t, router, "bob", "bob@x.com", "pw456")

	var alice models.User
	require.NoError(t, db.First(&alice, "email = ?", "alice@x.com").Error)
	var bob models.User
	require.NoError(t, db.First(&bob, "email = ?", "bob@x.com").Error)

	for _, order := range []gin.H{
		{"userId": alice.ID, "totalPrice": 10.0},
		{"userId": bob.ID, "totalPrice": 20.0},
	} {
		recorder := doRequest(t, router, http.MethodPost, "/api/orders", "", order)
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	recorder := doRequest(t, router, http.MethodGet, "/api/orders", aliceToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var orders []models.Order
	decodeBody(t, recorder, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, alice.ID, orders[0].UserID)
	assert.Equal(t, 10.0, orders[0].TotalPrice)
}
