//go:build integration

package pgx

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/spicehouse/storefront-api/internal/domains/catalog/domain"
	"github.com/spicehouse/storefront-api/internal/domains/catalog/ports"
)

func setupCatalogPostgresContainer(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("catalog_test"),
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

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, pool))

	cleanup := func() {
		pool.Close()
		pgContainer.Terminate(ctx)
	}
	return pool, cleanup
}

func newItem(t *testing.T, name string, category domain.Category, price float64) *domain.MenuItem {
	item, err := domain.NewMenuItem(name, "test dish", price, category, "")
	require.NoError(t, err)
	return item
}

func TestRepository_CreateAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	pool, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, newItem(t, "Samosa", domain.CategoryAppetizers, 60))
	require.NoError(t, err)
	assert.NotZero(t, created.Entity.ID)
	assert.Equal(t, domain.DefaultImage, created.Entity.ImageURL)
	assert.True(t, created.Entity.Available)

	fetched, err := repo.GetByID(ctx, created.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Samosa", fetched.Entity.Name)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListFiltersByCategory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	pool, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(pool)
	ctx := context.Background()

	_, err := repo.Create(ctx, newItem(t, "Samosa", domain.CategoryAppetizers, 60))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newItem(t, "Mango Lassi", domain.CategoryDrinks, 90))
	require.NoError(t, err)

	drinks, err := repo.List(ctx, domain.CategoryDrinks)
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.Equal(t, "Mango Lassi", drinks[0].Entity.Name)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	pool, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, newItem(t, "Samosa", domain.CategoryAppetizers, 60))
	require.NoError(t, err)

	edited := *created.Entity
	edited.Price = 65
	edited.Available = false
	updated, err := repo.Update(ctx, &edited)
	require.NoError(t, err)
	assert.Equal(t, 65.0, updated.Entity.Price)
	assert.False(t, updated.Entity.Available)

	require.NoError(t, repo.Delete(ctx, created.Entity.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.Entity.ID), ports.ErrNotFound)
}
