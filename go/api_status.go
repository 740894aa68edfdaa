package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spicehouse/storefront-api/internal/platform/availability"
)

// StatusAPI reports storefront availability so the frontend can show a
// degraded-mode banner instead of failing order submissions blindly.
type StatusAPI struct {
	catalog *availability.Gate
	ledger  *availability.Gate
}

// NewStatusAPI creates a StatusAPI over the two backing-store gates.
func NewStatusAPI(catalog, ledger *availability.Gate) StatusAPI {
	return StatusAPI{catalog: catalog, ledger: ledger}
}

type statusResponse struct {
	Message          string `json:"message"`
	CatalogAvailable bool   `json:"catalogAvailable"`
	LedgerAvailable  bool   `json:"ledgerAvailable"`
}

// Get /
// Storefront landing probe
func (api *StatusAPI) Index(c *gin.Context) {
	c.JSON(http.StatusOK, api.buildStatus())
}

// Get /status
// Availability of the catalog and order stores
func (api *StatusAPI) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, api.buildStatus())
}

func (api *StatusAPI) buildStatus() statusResponse {
	response := statusResponse{
		Message:          "Storefront API is running",
		CatalogAvailable: api.catalog != nil && api.catalog.Ready(),
		LedgerAvailable:  api.ledger != nil && api.ledger.Ready(),
	}
	if !response.LedgerAvailable {
		response.Message = "Storefront API is running in degraded mode: ordering is unavailable"
	}
	return response
}
