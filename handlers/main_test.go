package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopease/models"
	"shopease/routers"
)

var testJWTSecret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.WishlistItem{},
		&models.Order{},
	))

	return db
}

// newTestEnv spins up the full router against an in-memory database and a
// miniredis instance.
func newTestEnv(t *testing.T) (*gin.Engine, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()

	db := newTestDB(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	router := routers.SetupRouters(db, rdb, testJWTSecret)
	require.NotNil(t, router)

	return router, db, mr
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), target))
}

func signUp(t *testing.T, router *gin.Engine, username, email, password string) {
	t.Helper()
	recorder := doRequest(t, router, http.MethodPost, "/api/signup", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
}

func signIn(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()
	recorder := doRequest(t, router, http.MethodPost, "/api/signin", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, recorder, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func registerUser(t *testing.T, router *gin.Engine, username, email, password string) string {
	t.Helper()
	signUp(t, router, username, email, password)
	return signIn(t, router, email, password)
}

func createProduct(t *testing.T, router *gin.Engine, name string, price float64) uint {
	t.Helper()
	recorder := doRequest(t, router, http.MethodPost, "/api/products", "", gin.H{
		"name":         name,
		"description":  fmt.Sprintf("%s description", name),
		"price":        price,
		"countInStock": 10,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var body struct {
		Product models.Product `json:"product"`
	}
	decodeBody(t, recorder, &body)
	require.NotZero(t, body.Product.ID)
	return body.Product.ID
}
