package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopease/models"
)

func TestSearchRequiresParameter(t *testing.T) {
	router, _, _ := newTestEnv(t)

	recorder := doRequest(t, router, http.MethodGet, "/api/products/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSearchByNameAndDescription(t *testing.T) {
	router, _, _ := newTestEnv(t)

	createProduct(t, router, "Red Bicycle", 120)
	createProduct(t, router, "Blue Bicycle", 130)
	createProduct(t, router, "Helmet", 25)

	byName := doRequest(t, router, http.MethodGet, "/api/products/search?productName=Bicycle", "", nil)
	require.Equal(t, http.StatusOK, byName.Code)
	var products []models.Product
	decodeBody(t, byName, &products)
	assert.Len(t, products, 2)

	byDescription := doRequest(t, router, http.MethodGet, "/api/products/search?description=Helmet", "", nil)
	require.Equal(t, http.StatusOK, byDescription.Code)
	decodeBody(t, byDescription, &products)
	assert.Len(t, products, 1)

	both := doRequest(t, router, http.MethodGet, "/api/products/search?productName=Bicycle&description=Red", "", nil)
	require.Equal(t, http.StatusOK, both.Code)
	decodeBody(t, both, &products)
	assert.Len(t, products, 1)
}

func TestProductCRUD(t *testing.T) {
	router, _, _ := newTestEnv(t)

	productID := createProduct(t, router, "Gadget", 19.99)
	path := fmt.Sprintf("/api/products/%d", productID)

	get := doRequest(t, router, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, get.Code)
	var product models.Product
	decodeBody(t, get, &product)
	assert.Equal(t, "Gadget", product.Name)

	update := doRequest(t, router, http.MethodPut, path, "", gin.H{
		"name":  "Gadget v2",
		"price": 24.99,
	})
	require.Equal(t, http.StatusOK, update.Code)

	get = doRequest(t, router, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, get.Code)
	decodeBody(t, get, &product)
	assert.Equal(t, "Gadget v2", product.Name)
	assert.Equal(t, 24.99, product.Price)

	del := doRequest(t, router, http.MethodDelete, path, "", nil)
	require.Equal(t, http.StatusOK, del.Code)

	missing := doRequest(t, router, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestProductNotFoundPaths(t *testing.T) {
	router, _, _ := newTestEnv(t)

	assert.Equal(t, http.StatusNotFound,
		doRequest(t, router, http.MethodGet, "/api/products/999", "", nil).Code)
	assert.Equal(t, http.StatusNotFound,
		doRequest(t, router, http.MethodPut, "/api/products/999", "", gin.H{"name": "x"}).Code)
	assert.Equal(t, http.StatusNotFound,
		doRequest(t, router, http.MethodDelete, "/api/products/999", "", nil).Code)
}

func TestListProductsByCategory(t *testing.T) {
	router, _, _ := newTestEnv(t)

	create := doRequest(t, router, http.MethodPost, "/api/products", "", gin.H{
		"name":       "Gadget",
		"price":      19.99,
		"categoryId": 3,
	})
	require.Equal(t, http.StatusCreated, create.Code)
	createProduct(t, router, "Uncategorized", 1)

	recorder := doRequest(t, router, http.MethodGet, "/api/products/category/3", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var products []models.Product
	decodeBody(t, recorder, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Gadget", products[0].Name)
}

// A product mutation must drop the cached list so the next read sees the
// change.
func TestProductCacheInvalidation(t *testing.T) {
	router, _, mr := newTestEnv(t)

	createProduct(t, router, "Gadget", 19.99)

	list := doRequest(t, router, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.True(t, mr.Exists("products"))

	createProduct(t, router, "Widget", 5.00)
	assert.False(t, mr.Exists("products"))

	list = doRequest(t, router, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, list.Code)
	var products []models.Product
	decodeBody(t, list, &products)
	assert.Len(t, products, 2)
}

func TestCategoryCRUD(t *testing.T) {
	router, _, _ := newTestEnv(t)

	create := doRequest(t, router, http.MethodPost, "/api/categories", "", gin.H{
		"categoryName": "Bikes",
		"description":  "Two wheels",
	})
	require.Equal(t, http.StatusCreated, create.Code)

	var created struct {
		Category models.Category `json:"category"`
	}
	decodeBody(t, create, &created)
	require.NotZero(t, created.Category.ID)
	path := fmt.Sprintf("/api/categories/%d", created.Category.ID)

	get := doRequest(t, router, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, get.Code)

	update := doRequest(t, router, http.MethodPut, path, "", gin.H{
		"categoryName": "Bicycles",
	})
	require.Equal(t, http.StatusOK, update.Code)

	del := doRequest(t, router, http.MethodDelete, path, "", nil)
	require.Equal(t, http.StatusOK, del.Code)

	missing := doRequest(t, router, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
