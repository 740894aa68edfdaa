//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/spicehouse/storefront-api/internal/domains/ordering/domain"
	"github.com/spicehouse/storefront-api/internal/domains/ordering/ports"
	"github.com/spicehouse/storefront-api/internal/platform/migrations"
)

func setupLedgerPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newPlacement(t *testing.T, name, phone string) domain.Placement {
	placement, err := domain.NewPlacement(name, phone,
		[]domain.LineItem{{Name: "Butter Chicken", Price: 360, Quantity: 2}}, 720)
	require.NoError(t, err)
	return placement
}

func TestRepository_PlaceOrderAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupLedgerPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	placed, err := repo.PlaceOrder(ctx, newPlacement(t, "Asha", "555-0100"))
	require.NoError(t, err)
	assert.NotZero(t, placed.Order.Entity.ID)
	assert.Equal(t, placed.Customer.Entity.ID, placed.Order.Entity.CustomerID)
	assert.Equal(t, domain.StatusPending, placed.Order.Entity.Status)

	fetched, err := repo.GetOrderByID(ctx, placed.Order.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.Order.Entity.ID, fetched.Order.Entity.ID)
	assert.Equal(t, "Butter Chicken", fetched.Order.Entity.Items[0].Name)
	assert.Equal(t, "555-0100", fetched.Customer.Entity.Phone)
}

func TestRepository_PlaceOrderReusesCustomer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupLedgerPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	first, err := repo.PlaceOrder(ctx, newPlacement(t, "Asha", "555-0100"))
	require.NoError(t, err)
	second, err := repo.PlaceOrder(ctx, newPlacement(t, "Asha Rao", "555-0100"))
	require.NoError(t, err)

	assert.Equal(t, first.Customer.Entity.ID, second.Customer.Entity.ID)
	assert.Equal(t, "Asha Rao", second.Customer.Entity.Name)

	var count int64
	require.NoError(t, db.Table("customers").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_FindOrdersByPhoneNewestFirst(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupLedgerPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		placed, err := repo.PlaceOrder(ctx, newPlacement(t, "Asha", "555-0100"))
		require.NoError(t, err)
		ids = append(ids, placed.Order.Entity.ID)
		time.Sleep(10 * time.Millisecond)
	}

	orders, err := repo.FindOrdersByPhone(ctx, "555-0100")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, ids[2], orders[0].Entity.ID)
	assert.Equal(t, ids[0], orders[2].Entity.ID)

	_, err = repo.FindOrdersByPhone(ctx, "555-9999")
	assert.ErrorIs(t, err, ports.ErrCustomerNotFound)
}

func TestRepository_UpdateOrderStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupLedgerPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	placed, err := repo.PlaceOrder(ctx, newPlacement(t, "Asha", "555-0100"))
	require.NoError(t, err)

	pickup := time.Now().UTC().Truncate(time.Millisecond)
	updated, err := repo.UpdateOrderStatus(ctx, placed.Order.Entity.ID, domain.StatusCompleted, &pickup)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Entity.Status)
	require.NotNil(t, updated.Entity.PickupTime)
	assert.WithinDuration(t, pickup, *updated.Entity.PickupTime, time.Second)

	_, err = repo.UpdateOrderStatus(ctx, 9999, domain.StatusCancelled, nil)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
