package storefrontserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/spicehouse/storefront-api/internal/domains/ordering/adapters/http/mapper"
	types "github.com/spicehouse/storefront-api/internal/domains/ordering/application/types"
	orderingports "github.com/spicehouse/storefront-api/internal/domains/ordering/ports"
	apierrors "github.com/spicehouse/storefront-api/internal/shared/errors"
)

// OrdersAPI wires HTTP transport with the ordering bounded context service
// and workflows.
type OrdersAPI struct {
	service   orderingports.Service
	workflows orderingports.WorkflowOrchestrator
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service orderingports.Service, workflows orderingports.WorkflowOrchestrator) OrdersAPI {
	return OrdersAPI{service: service, workflows: workflows}
}

// Post /orders
// Place a new order
func (api *OrdersAPI) PlaceOrder(c *gin.Context) {
	var payload orderhttpmapper.PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	placed, err := api.placeOrder(c.Request.Context(), orderhttpmapper.ToPlaceOrderInput(payload))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromPlacement(placed))
}

func (api *OrdersAPI) placeOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlacementProjection, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Get /orders/phone/:phoneNumber
// List a customer's orders, newest first
func (api *OrdersAPI) GetOrdersByPhone(c *gin.Context) {
	phone := c.Param("phoneNumber")
	result, err := api.service.FindOrdersByPhone(c.Request.Context(), types.PhoneQuery{Phone: phone})
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrderProjectionList(result))
}

// Get /orders/:orderId
// Find an order by ID
func (api *OrdersAPI) GetOrderById(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	result, err := api.service.GetOrderByID(c.Request.Context(), types.OrderIdentifier{ID: id})
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	response := struct {
		Order    orderhttpmapper.Order     `json:"order"`
		Customer *orderhttpmapper.Customer `json:"customer,omitempty"`
	}{
		Order:    orderhttpmapper.FromOrderProjection(result.Order),
		Customer: orderhttpmapper.FromCustomerProjection(result.Customer),
	}
	c.JSON(http.StatusOK, response)
}

// Put /orders/:orderId
// Update an order's status
func (api *OrdersAPI) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload orderhttpmapper.UpdateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateOrderStatus(c.Request.Context(), types.UpdateStatusInput{ID: id, Status: payload.Status})
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrderProjection(updated))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("invalid "+name+" parameter"))
		return 0, false
	}
	return id, true
}
