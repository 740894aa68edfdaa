package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spicehouse/storefront-api/internal/domains/catalog/adapters/memory"
	"github.com/spicehouse/storefront-api/internal/domains/catalog/application/types"
	"github.com/spicehouse/storefront-api/internal/domains/catalog/domain"
	"github.com/spicehouse/storefront-api/internal/domains/catalog/ports"
)

func TestCreateMenuItem_Defaults(t *testing.T) {
	svc := NewService(memory.NewRepository())

	created, err := svc.CreateMenuItem(context.Background(), types.MenuItemInput{
		Name:     "Samosa",
		Price:    60,
		Category: "Appetizers",
	})
	require.NoError(t, err)
	require.Equal(t, domain.DefaultImage, created.Entity.ImageURL)
	require.True(t, created.Entity.Available)
}

func TestCreateMenuItem_Validation(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	_, err := svc.CreateMenuItem(ctx, types.MenuItemInput{Price: 60, Category: "Appetizers"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = svc.CreateMenuItem(ctx, types.MenuItemInput{Name: "Samosa", Price: -1, Category: "Appetizers"})
	require.ErrorIs(t, err, domain.ErrNegativePrice)

	_, err = svc.CreateMenuItem(ctx, types.MenuItemInput{Name: "Samosa", Price: 60, Category: "Snacks"})
	require.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestUpdateMenuItem_PreservesAvailabilityWhenOmitted(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	unavailable := false
	created, err := svc.CreateMenuItem(ctx, types.MenuItemInput{
		Name:      "Samosa",
		Price:     60,
		Category:  "Appetizers",
		Available: &unavailable,
	})
	require.NoError(t, err)
	require.False(t, created.Entity.Available)

	updated, err := svc.UpdateMenuItem(ctx, created.Entity.ID, types.MenuItemInput{
		Name:     "Samosa",
		Price:    65,
		Category: "Appetizers",
	})
	require.NoError(t, err)
	require.Equal(t, 65.0, updated.Entity.Price)
	require.False(t, updated.Entity.Available)
}

func TestListMenu_CategoryFilter(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	_, err := svc.CreateMenuItem(ctx, types.MenuItemInput{Name: "Samosa", Price: 60, Category: "Appetizers"})
	require.NoError(t, err)
	_, err = svc.CreateMenuItem(ctx, types.MenuItemInput{Name: "Mango Lassi", Price: 90, Category: "Drinks"})
	require.NoError(t, err)

	drinks, err := svc.ListMenu(ctx, "Drinks")
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	require.Equal(t, "Mango Lassi", drinks[0].Entity.Name)

	all, err := svc.ListMenu(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = svc.ListMenu(ctx, "Snacks")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteMenuItem_NotFound(t *testing.T) {
	svc := NewService(memory.NewRepository())
	require.ErrorIs(t, svc.DeleteMenuItem(context.Background(), 42), ports.ErrNotFound)
}
