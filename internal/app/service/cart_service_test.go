package service

import (
	"testing"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, *gorm.DB, *model.User, *model.MenuItem) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	menuRepo := repository.NewMenuItemRepository(testDB)
	cartService := NewCartService(cartRepo, menuRepo)

	user := &model.User{
		Email:        "pelanggan@example.com",
		PasswordHash: "hash",
		FullName:     "Siti Aminah",
		Role:         model.RoleCustomer,
	}
	testDB.Create(user)

	category := &model.Category{Name: "Minuman"}
	testDB.Create(category)

	menuItem := &model.MenuItem{
		CategoryID:  category.ID,
		Name:        "Es Teh Manis",
		Price:       5000,
		IsAvailable: true,
	}
	testDB.Create(menuItem)

	return cartService, testDB, user, menuItem
}

func TestCartService_AddItem_NewLine(t *testing.T) {
	cartService, _, user, menuItem := setupCartServiceTest(t)

	item, err := cartService.AddItem(user.ID, menuItem.ID, 2)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, 2, item.Quantity)

	items, total, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, float64(10000), total)
}

func TestCartService_AddItem_BumpsExistingQuantity(t *testing.T) {
	cartService, _, user, menuItem := setupCartServiceTest(t)

	first, err := cartService.AddItem(user.ID, menuItem.ID, 1)
	require.NoError(t, err)

	second, err := cartService.AddItem(user.ID, menuItem.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 4, second.Quantity)

	items, _, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	cartService, _, user, menuItem := setupCartServiceTest(t)

	_, err := cartService.AddItem(user.ID, menuItem.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_AddItem_UnavailableMenuItem(t *testing.T) {
	cartService, testDB, user, menuItem := setupCartServiceTest(t)

	testDB.Model(menuItem).Update("is_available", false)

	_, err := cartService.AddItem(user.ID, menuItem.ID, 1)
	assert.ErrorIs(t, err, ErrMenuItemUnavailable)
}

func TestCartService_AddItem_MenuItemNotFound(t *testing.T) {
	cartService, _, user, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem(user.ID, 9999, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	cartService, _, user, menuItem := setupCartServiceTest(t)

	item, err := cartService.AddItem(user.ID, menuItem.ID, 1)
	require.NoError(t, err)

	updated, err := cartService.UpdateQuantity(user.ID, item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	_, err = cartService.UpdateQuantity(user.ID, item.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_UpdateQuantity_OwnershipCheck(t *testing.T) {
	cartService, testDB, user, menuItem := setupCartServiceTest(t)

	item, err := cartService.AddItem(user.ID, menuItem.ID, 1)
	require.NoError(t, err)

	other := &model.User{Email: "lain@example.com", PasswordHash: "hash", Role: model.RoleCustomer}
	testDB.Create(other)

	_, err = cartService.UpdateQuantity(other.ID, item.ID, 2)
	assert.ErrorIs(t, err, ErrNotCartItemOwner)
}

func TestCartService_RemoveItem(t *testing.T) {
	cartService, testDB, user, menuItem := setupCartServiceTest(t)

	item, err := cartService.AddItem(user.ID, menuItem.ID, 1)
	require.NoError(t, err)

	other := &model.User{Email: "lain@example.com", PasswordHash: "hash", Role: model.RoleCustomer}
	testDB.Create(other)
	assert.ErrorIs(t, cartService.RemoveItem(other.ID, item.ID), ErrNotCartItemOwner)

	require.NoError(t, cartService.RemoveItem(user.ID, item.ID))
	assert.ErrorIs(t, cartService.RemoveItem(user.ID, item.ID), ErrCartItemNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	cartService, testDB, user, menuItem := setupCartServiceTest(t)

	second := &model.MenuItem{CategoryID: menuItem.CategoryID, Name: "Es Jeruk", Price: 6000, IsAvailable: true}
	testDB.Create(second)

	_, err := cartService.AddItem(user.ID, menuItem.ID, 1)
	require.NoError(t, err)
	_, err = cartService.AddItem(user.ID, second.ID, 2)
	require.NoError(t, err)

	require.NoError(t, cartService.ClearCart(user.ID))

	items, total, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 0)
	assert.Equal(t, float64(0), total)
}
