package storefrontserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuItemPayload(name, category string, price float64) map[string]any {
	return map[string]any{
		"name":        name,
		"description": "test dish",
		"price":       price,
		"category":    category,
	}
}

func TestCreateMenuItem_AppliesDefaults(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(t, http.MethodPost, "/menu-items", menuItemPayload("Samosa", "Appetizers", 60))
	require.Equal(t, http.StatusCreated, rec.Code)

	var item struct {
		ID        int64  `json:"id"`
		ImageURL  string `json:"imageUrl"`
		Available bool   `json:"available"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.NotZero(t, item.ID)
	assert.Equal(t, "default-food.jpg", item.ImageURL)
	assert.True(t, item.Available)
}

func TestCreateMenuItem_RejectsUnknownCategory(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(t, http.MethodPost, "/menu-items", menuItemPayload("Samosa", "Snacks", 60))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMenuItems_FiltersByCategory(t *testing.T) {
	server := newTestServer(t)

	require.Equal(t, http.StatusCreated, server.do(t, http.MethodPost, "/menu-items", menuItemPayload("Samosa", "Appetizers", 60)).Code)
	require.Equal(t, http.StatusCreated, server.do(t, http.MethodPost, "/menu-items", menuItemPayload("Mango Lassi", "Drinks", 90)).Code)

	rec := server.do(t, http.MethodGet, "/menu-items?category=Drinks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Mango Lassi", items[0].Name)

	rec = server.do(t, http.MethodGet, "/menu-items", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestUpdateMenuItem_RoundTrip(t *testing.T) {
	server := newTestServer(t)

	created := server.do(t, http.MethodPost, "/menu-items", menuItemPayload("Samosa", "Appetizers", 60))
	require.Equal(t, http.StatusCreated, created.Code)
	var item struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &item))

	payload := menuItemPayload("Samosa", "Appetizers", 65)
	payload["available"] = false
	rec := server.do(t, http.MethodPut, fmt.Sprintf("/menu-items/%d", item.ID), payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated struct {
		Price     float64 `json:"price"`
		Available bool    `json:"available"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 65.0, updated.Price)
	assert.False(t, updated.Available)
}

func TestDeleteMenuItem(t *testing.T) {
	server := newTestServer(t)

	created := server.do(t, http.MethodPost, "/menu-items", menuItemPayload("Samosa", "Appetizers", 60))
	require.Equal(t, http.StatusCreated, created.Code)
	var item struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &item))

	path := fmt.Sprintf("/menu-items/%d", item.ID)
	require.Equal(t, http.StatusNoContent, server.do(t, http.MethodDelete, path, nil).Code)
	require.Equal(t, http.StatusNotFound, server.do(t, http.MethodGet, path, nil).Code)
	require.Equal(t, http.StatusNotFound, server.do(t, http.MethodDelete, path, nil).Code)
}
