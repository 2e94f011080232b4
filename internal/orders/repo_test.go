package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/silverempire/commerce-backend/pkg/db/models"
	"github.com/silverempire/commerce-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	customers := `
CREATE TABLE IF NOT EXISTS customers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL UNIQUE,
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  customer_id INTEGER,
  status TEXT NOT NULL DEFAULT 'pending',
  total_amount NUMERIC NOT NULL DEFAULT 0,
  shipping_address TEXT,
  shipping_city TEXT,
  shipping_postal_code TEXT,
  shipping_country TEXT,
  shipping_cost NUMERIC NOT NULL DEFAULT 0,
  is_deleted INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL,
  product_id INTEGER,
  variation_id INTEGER,
  quantity INTEGER NOT NULL DEFAULT 1,
  unit_price NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(customers).Error)
	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func newCustomer(t *testing.T, db *gorm.DB, email string) *models.Customer {
	t.Helper()

	customer := &models.Customer{Email: email, FirstName: "Test", LastName: "Customer"}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func newOrder(customerID int64, status string, total string, created time.Time) *models.Order {
	return &models.Order{
		CustomerID:  &customerID,
		Status:      status,
		TotalAmount: decimal.RequireFromString(total),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestRepositoryCreateOrderPersistsItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	customer := newCustomer(t, db, "persist@example.com")
	productID := int64(1)
	variationID := int64(10)

	order := newOrder(customer.ID, models.OrderStatusPending, "40.03", time.Now().UTC())
	order.ShippingCost = decimal.RequireFromString("5.00")
	order.Items = []models.OrderItem{
		{ProductID: &productID, Quantity: 3, UnitPrice: decimal.RequireFromString("10.01")},
		{ProductID: &productID, VariationID: &variationID, Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
	}

	require.NoError(t, repo.CreateOrder(context.Background(), order))
	require.NotZero(t, order.ID)

	found, err := repo.FindOrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
	assert.Equal(t, "40.03", found.TotalAmount.StringFixed(2))
	assert.Equal(t, "10.01", found.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, order.ID, found.Items[0].OrderID)
	require.NotNil(t, found.Customer)
	assert.Equal(t, "persist@example.com", found.Customer.Email)
}

func TestRepositoryCreateOrderRollsBackWithTx(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	customer := newCustomer(t, db, "rollback@example.com")
	productID := int64(1)

	tx := db.Begin()
	require.NoError(t, tx.Error)

	order := newOrder(customer.ID, models.OrderStatusPending, "10.00", time.Now().UTC())
	order.Items = []models.OrderItem{
		{ProductID: &productID, Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")},
	}
	require.NoError(t, repo.WithTx(tx).CreateOrder(context.Background(), order))
	require.NoError(t, tx.Rollback().Error)

	_, err := repo.FindOrderByID(context.Background(), order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount, "rolled-back order must leave no item rows")
}

func TestRepositoryListOrdersScoping(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	alice := newCustomer(t, db, "alice@example.com")
	bob := newCustomer(t, db, "bob@example.com")

	now := time.Now().UTC()
	older := newOrder(alice.ID, models.OrderStatusPaid, "15.00", now.Add(-time.Hour))
	newer := newOrder(alice.ID, models.OrderStatusPending, "25.00", now)
	foreign := newOrder(bob.ID, models.OrderStatusPending, "35.00", now)
	deleted := newOrder(alice.ID, models.OrderStatusPending, "45.00", now)
	deleted.IsDeleted = true
	for _, o := range []*models.Order{older, newer, foreign, deleted} {
		require.NoError(t, repo.CreateOrder(context.Background(), o))
	}

	list, err := repo.ListOrders(context.Background(), ListFilter{
		CustomerID: &alice.ID,
		Page:       pagination.Params{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID, "newest first")
	assert.Equal(t, older.ID, list[1].ID)

	paid, err := repo.ListOrders(context.Background(), ListFilter{
		CustomerID: &alice.ID,
		Status:     models.OrderStatusPaid,
		Page:       pagination.Params{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, older.ID, paid[0].ID)
}
