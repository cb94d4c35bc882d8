package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/internal/app/service"
	"github.com/ibumus/warung-backend/internal/db"
	"github.com/ibumus/warung-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartControllerTest(t *testing.T) (*CartController, *gin.Engine, *gorm.DB, *model.User, *model.MenuItem) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	menuRepo := repository.NewMenuItemRepository(testDB)
	cartService := service.NewCartService(cartRepo, menuRepo)
	cartController := NewCartController(cartService)

	user := &model.User{
		Email:        "pelanggan@example.com",
		PasswordHash: "hash",
		FullName:     "Budi Santoso",
		Role:         model.RoleCustomer,
	}
	testDB.Create(user)

	category := &model.Category{Name: "Makanan Utama"}
	testDB.Create(category)

	menuItem := &model.MenuItem{
		CategoryID:  category.ID,
		Name:        "Nasi Goreng Spesial",
		Price:       25000,
		IsAvailable: true,
	}
	testDB.Create(menuItem)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return cartController, router, testDB, user, menuItem
}

func setUserIDInContext(c *gin.Context, userID uint) {
	c.Set(middleware.UserIDKey, userID)
}

func setAdminInContext(c *gin.Context, userID uint) {
	c.Set(middleware.UserIDKey, userID)
	c.Set(middleware.UserRoleKey, model.RoleAdmin)
}

func TestCartController_AddItem_Success(t *testing.T) {
	controller, router, _, user, menuItem := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddItem(c)
	})

	reqBody := AddCartItemRequest{MenuItemID: menuItem.ID, Quantity: 2}
	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	item := response["item"].(map[string]interface{})
	assert.Equal(t, float64(2), item["quantity"])
}

func TestCartController_AddItem_MenuItemNotFound(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddItem(c)
	})

	reqBody := AddCartItemRequest{MenuItemID: 9999, Quantity: 1}
	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Menu tidak ditemukan")
}

func TestCartController_AddItem_Unavailable(t *testing.T) {
	controller, router, testDB, user, menuItem := setupCartControllerTest(t)

	testDB.Model(menuItem).Update("is_available", false)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddItem(c)
	})

	reqBody := AddCartItemRequest{MenuItemID: menuItem.ID, Quantity: 1}
	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Menu sedang tidak tersedia")
}

func TestCartController_AddItem_Unauthorized(t *testing.T) {
	controller, router, _, _, menuItem := setupCartControllerTest(t)

	router.POST("/cart", controller.AddItem)

	reqBody := AddCartItemRequest{MenuItemID: menuItem.ID, Quantity: 1}
	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartController_GetCart(t *testing.T) {
	controller, router, testDB, user, menuItem := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, MenuItemID: menuItem.ID, Quantity: 3})

	router.GET("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
	assert.Equal(t, float64(75000), response["total"])
}

func TestCartController_UpdateItem(t *testing.T) {
	controller, router, testDB, user, menuItem := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartItem := &model.CartItem{UserID: user.ID, MenuItemID: menuItem.ID, Quantity: 1}
	cartRepo.Create(cartItem)

	router.PATCH("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateItem(c)
	})

	reqBody := UpdateCartItemRequest{Quantity: 4}
	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPatch, "/cart/1", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	item := response["item"].(map[string]interface{})
	assert.Equal(t, float64(4), item["quantity"])
}

func TestCartController_RemoveItem_NotFound(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.DELETE("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.RemoveItem(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/cart/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Item keranjang tidak ditemukan")
}

func TestCartController_ClearCart(t *testing.T) {
	controller, router, testDB, user, menuItem := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, MenuItemID: menuItem.ID, Quantity: 1})

	router.DELETE("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.ClearCart(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	items, err := cartRepo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 0)
}
