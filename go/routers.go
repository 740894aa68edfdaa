package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the storefront routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc returns 501 Not Implemented for unwired routes.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the handlers per API surface.
type ApiHandleFunctions struct {
	OrdersAPI OrdersAPI
	MenuAPI   MenuAPI
	StatusAPI StatusAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"PlaceOrder",
			http.MethodPost,
			"/orders",
			handleFunctions.OrdersAPI.PlaceOrder,
		},
		{
			"GetOrdersByPhone",
			http.MethodGet,
			"/orders/phone/:phoneNumber",
			handleFunctions.OrdersAPI.GetOrdersByPhone,
		},
		{
			"GetOrderById",
			http.MethodGet,
			"/orders/:orderId",
			handleFunctions.OrdersAPI.GetOrderById,
		},
		{
			"UpdateOrderStatus",
			http.MethodPut,
			"/orders/:orderId",
			handleFunctions.OrdersAPI.UpdateOrderStatus,
		},
		{
			"ListMenuItems",
			http.MethodGet,
			"/menu-items",
			handleFunctions.MenuAPI.ListMenuItems,
		},
		{
			"CreateMenuItem",
			http.MethodPost,
			"/menu-items",
			handleFunctions.MenuAPI.CreateMenuItem,
		},
		{
			"GetMenuItemById",
			http.MethodGet,
			"/menu-items/:itemId",
			handleFunctions.MenuAPI.GetMenuItemById,
		},
		{
			"UpdateMenuItem",
			http.MethodPut,
			"/menu-items/:itemId",
			handleFunctions.MenuAPI.UpdateMenuItem,
		},
		{
			"DeleteMenuItem",
			http.MethodDelete,
			"/menu-items/:itemId",
			handleFunctions.MenuAPI.DeleteMenuItem,
		},
		{
			"Index",
			http.MethodGet,
			"/",
			handleFunctions.StatusAPI.Index,
		},
		{
			"GetStatus",
			http.MethodGet,
			"/status",
			handleFunctions.StatusAPI.GetStatus,
		},
	}
}
