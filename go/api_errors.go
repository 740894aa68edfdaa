package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/spicehouse/storefront-api/internal/domains/catalog/application"
	catalogports "github.com/spicehouse/storefront-api/internal/domains/catalog/ports"
	orderingapp "github.com/spicehouse/storefront-api/internal/domains/ordering/application"
	orderingports "github.com/spicehouse/storefront-api/internal/domains/ordering/ports"
	apierrors "github.com/spicehouse/storefront-api/internal/shared/errors"
)

// orderingUnavailableDetail tells callers what to do while the ledger is down.
const orderingUnavailableDetail = "Ordering is temporarily unavailable while we reconnect to the order system. The menu is still browsable; please try again shortly."

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError preserves simple call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

// respondOrderServiceError translates ordering application errors.
func respondOrderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orderingapp.ErrLedgerUnavailable):
		respondProblem(c, apierrors.NewUnavailableProblem("ordering", orderingUnavailableDetail))
	case errors.Is(err, orderingapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, orderingapp.ErrTransitionDenied):
		respondProblem(c, apierrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, orderingports.ErrCustomerNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("customer", c.Param("phoneNumber")))
	case errors.Is(err, orderingports.ErrNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("order", c.Param("orderId")))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

// respondMenuServiceError translates catalog application errors.
func respondMenuServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalogapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, catalogports.ErrNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("menu item", c.Param("itemId")))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}
