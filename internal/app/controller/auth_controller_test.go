package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/internal/app/service"
	"github.com/ibumus/warung-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthControllerTest(t *testing.T) (*AuthController, *gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	notificationRepo := repository.NewNotificationRepository(testDB)
	notificationService := service.NewNotificationService(notificationRepo)
	authService := service.NewAuthService(
		userRepo,
		notificationRepo,
		notificationService,
		"test-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
	authController := NewAuthController(authService, 15*time.Minute)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return authController, router, testDB
}

func registerTestUser(t *testing.T, router *gin.Engine, email string) map[string]interface{} {
	t.Helper()

	reqBody := RegisterRequest{
		Email:    email,
		Password: "rahasia123",
		FullName: "Budi Santoso",
		Phone:    "081234567890",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestAuthController_Register_Success(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)
	router.POST("/auth/register", controller.Register)

	response := registerTestUser(t, router, "budi@example.com")

	user := response["user"].(map[string]interface{})
	assert.Equal(t, "budi@example.com", user["email"])
	assert.Equal(t, "customer", user["role"])

	tokens := response["tokens"].(map[string]interface{})
	assert.NotEmpty(t, tokens["access_token"])
	assert.NotEmpty(t, tokens["refresh_token"])
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)
	router.POST("/auth/register", controller.Register)

	registerTestUser(t, router, "budi@example.com")

	reqBody := RegisterRequest{
		Email:    "budi@example.com",
		Password: "rahasia123",
		FullName: "Budi Kedua",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email sudah terdaftar")
}

func TestAuthController_Register_Validation(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)
	router.POST("/auth/register", controller.Register)

	tests := []struct {
		name string
		body RegisterRequest
	}{
		{
			name: "Missing email",
			body: RegisterRequest{Password: "rahasia123", FullName: "Budi"},
		},
		{
			name: "Invalid email",
			body: RegisterRequest{Email: "not-an-email", Password: "rahasia123", FullName: "Budi"},
		},
		{
			name: "Short password",
			body: RegisterRequest{Email: "budi@example.com", Password: "pendek", FullName: "Budi"},
		},
		{
			name: "Missing name",
			body: RegisterRequest{Email: "budi@example.com", Password: "rahasia123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonBody, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(jsonBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthController_Login_Success(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)
	router.POST("/auth/register", controller.Register)
	router.POST("/auth/login", controller.Login)

	registerTestUser(t, router, "budi@example.com")

	reqBody := LoginRequest{Email: "budi@example.com", Password: "rahasia123"}
	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	tokens := response["tokens"].(map[string]interface{})
	assert.NotEmpty(t, tokens["access_token"])
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)
	router.POST("/auth/register", controller.Register)
	router.POST("/auth/login", controller.Login)

	registerTestUser(t, router, "budi@example.com")

	reqBody := LoginRequest{Email: "budi@example.com", Password: "salah-total"}
	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Email atau password salah")
}

func TestAuthController_Me(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)
	router.POST("/auth/register", controller.Register)
	registerTestUser(t, router, "budi@example.com")

	router.GET("/auth/me", func(c *gin.Context) {
		setUserIDInContext(c, 1)
		controller.Me(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "budi@example.com")
}

func TestAuthController_UpdateMe(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)
	router.POST("/auth/register", controller.Register)
	registerTestUser(t, router, "budi@example.com")

	router.PATCH("/auth/me", func(c *gin.Context) {
		setUserIDInContext(c, 1)
		controller.UpdateMe(c)
	})

	reqBody := UpdateProfileRequest{FullName: "Budi Santoso Baru"}
	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPatch, "/auth/me", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Budi Santoso Baru")
}
