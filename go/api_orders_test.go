package storefrontserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/spicehouse/storefront-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/spicehouse/storefront-api/internal/domains/catalog/application"
	orderingavailability "github.com/spicehouse/storefront-api/internal/domains/ordering/adapters/availability"
	orderingmemory "github.com/spicehouse/storefront-api/internal/domains/ordering/adapters/memory"
	orderingapp "github.com/spicehouse/storefront-api/internal/domains/ordering/application"
	"github.com/spicehouse/storefront-api/internal/platform/availability"
)

type testServer struct {
	router     *gin.Engine
	ledgerGate *availability.Gate
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogGate := availability.NewGate()
	catalogGate.MarkReady()
	ledgerGate := availability.NewGate()
	ledgerGate.MarkReady()

	orderService := orderingapp.NewService(
		orderingmemory.NewRepository(),
		orderingavailability.NewProbe(ledgerGate),
	)
	catalogService := catalogapp.NewService(catalogmemory.NewRepository())

	handlers := ApiHandleFunctions{
		OrdersAPI: NewOrdersAPI(orderService, nil),
		MenuAPI:   NewMenuAPI(catalogService),
		StatusAPI: NewStatusAPI(catalogGate, ledgerGate),
	}
	return &testServer{
		router:     NewRouterWithGinEngine(gin.New(), handlers),
		ledgerGate: ledgerGate,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(raw)
	} else {
		payload = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func validOrderPayload() map[string]any {
	return map[string]any{
		"customerName": "Asha",
		"phoneNumber":  "555-0100",
		"items": []map[string]any{
			{"name": "Butter Chicken", "price": 360, "quantity": 2},
		},
		"totalAmount": 720,
	}
}

func TestPlaceOrder_Created(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(t, http.MethodPost, "/orders", validOrderPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	var response struct {
		Message string `json:"message"`
		Order   struct {
			ID          int64   `json:"id"`
			Status      string  `json:"status"`
			TotalAmount float64 `json:"totalAmount"`
		} `json:"order"`
		Customer struct {
			Name        string `json:"name"`
			PhoneNumber string `json:"phoneNumber"`
		} `json:"customer"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Order placed successfully", response.Message)
	assert.Equal(t, "pending", response.Order.Status)
	assert.Equal(t, 720.0, response.Order.TotalAmount)
	assert.Equal(t, "Asha", response.Customer.Name)
	assert.Equal(t, "555-0100", response.Customer.PhoneNumber)
}

func TestPlaceOrder_MissingFields(t *testing.T) {
	server := newTestServer(t)

	payload := validOrderPayload()
	delete(payload, "phoneNumber")
	rec := server.do(t, http.MethodPost, "/orders", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceOrder_TotalMismatch(t *testing.T) {
	server := newTestServer(t)

	payload := validOrderPayload()
	payload["totalAmount"] = 100
	rec := server.do(t, http.MethodPost, "/orders", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceOrder_LedgerUnavailable(t *testing.T) {
	server := newTestServer(t)
	server.ledgerGate.MarkFailed(fmt.Errorf("connection refused"))

	rec := server.do(t, http.MethodPost, "/orders", validOrderPayload())
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "Service Unavailable", problem.Title)
	assert.NotEmpty(t, problem.Detail)
}

func TestGetOrdersByPhone_NewestFirst(t *testing.T) {
	server := newTestServer(t)

	for i := 0; i < 2; i++ {
		rec := server.do(t, http.MethodPost, "/orders", validOrderPayload())
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := server.do(t, http.MethodGet, "/orders/phone/555-0100", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	assert.Greater(t, orders[0].ID, orders[1].ID)
}

func TestGetOrdersByPhone_UnknownPhone(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(t, http.MethodGet, "/orders/phone/555-9999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrderById_InvalidID(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(t, http.MethodGet, "/orders/not-a-number", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderById_NotFound(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(t, http.MethodGet, "/orders/42", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrderStatus_CompletesOrder(t *testing.T) {
	server := newTestServer(t)

	created := server.do(t, http.MethodPost, "/orders", validOrderPayload())
	require.Equal(t, http.StatusCreated, created.Code)
	var placement struct {
		Order struct {
			ID int64 `json:"id"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &placement))

	rec := server.do(t, http.MethodPut, fmt.Sprintf("/orders/%d", placement.Order.ID), map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated struct {
		Status     string  `json:"status"`
		PickupTime *string `json:"pickupTime"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "completed", updated.Status)
	assert.NotNil(t, updated.PickupTime)
}

func TestUpdateOrderStatus_DeniedTransition(t *testing.T) {
	server := newTestServer(t)

	created := server.do(t, http.MethodPost, "/orders", validOrderPayload())
	require.Equal(t, http.StatusCreated, created.Code)
	var placement struct {
		Order struct {
			ID int64 `json:"id"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &placement))

	path := fmt.Sprintf("/orders/%d", placement.Order.ID)
	rec := server.do(t, http.MethodPut, path, map[string]any{"status": "cancelled"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = server.do(t, http.MethodPut, path, map[string]any{"status": "pending"})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestStatus_ReportsDegradedMode(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(t, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status struct {
		Message          string `json:"message"`
		CatalogAvailable bool   `json:"catalogAvailable"`
		LedgerAvailable  bool   `json:"ledgerAvailable"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.CatalogAvailable)
	assert.True(t, status.LedgerAvailable)

	server.ledgerGate.MarkFailed(fmt.Errorf("connection refused"))
	rec = server.do(t, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.LedgerAvailable)
	assert.Contains(t, status.Message, "degraded")
}
