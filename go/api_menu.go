package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	menuhttpmapper "github.com/spicehouse/storefront-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/spicehouse/storefront-api/internal/domains/catalog/ports"
)

// MenuAPI wires HTTP transport with the menu catalog service.
type MenuAPI struct {
	service catalogports.Service
}

// NewMenuAPI creates a MenuAPI backed by the provided service.
func NewMenuAPI(service catalogports.Service) MenuAPI {
	return MenuAPI{service: service}
}

// Get /menu-items
// List the menu, optionally filtered by ?category=
func (api *MenuAPI) ListMenuItems(c *gin.Context) {
	result, err := api.service.ListMenu(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondMenuServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, menuhttpmapper.FromProjectionList(result))
}

// Post /menu-items
// Add a menu item
func (api *MenuAPI) CreateMenuItem(c *gin.Context) {
	var payload menuhttpmapper.MenuItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.CreateMenuItem(c.Request.Context(), menuhttpmapper.ToMenuItemInput(payload))
	if err != nil {
		respondMenuServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, menuhttpmapper.FromProjection(created))
}

// Get /menu-items/:itemId
// Find a menu item by ID
func (api *MenuAPI) GetMenuItemById(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	result, err := api.service.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		respondMenuServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, menuhttpmapper.FromProjection(result))
}

// Put /menu-items/:itemId
// Update a menu item
func (api *MenuAPI) UpdateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	var payload menuhttpmapper.MenuItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateMenuItem(c.Request.Context(), id, menuhttpmapper.ToMenuItemInput(payload))
	if err != nil {
		respondMenuServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, menuhttpmapper.FromProjection(updated))
}

// Delete /menu-items/:itemId
// Remove a menu item
func (api *MenuAPI) DeleteMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	if err := api.service.DeleteMenuItem(c.Request.Context(), id); err != nil {
		respondMenuServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
