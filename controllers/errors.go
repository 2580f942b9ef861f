package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mouakos/ecommerce-api/services"
)

// handleServiceError maps service failures to HTTP responses. Ownership
// failures surface as 404 so resource existence is not leaked.
func handleServiceError(ctx *gin.Context, err error) {
	var stockErr *services.InsufficientStockError
	var transitionErr *services.InvalidStatusTransitionError

	switch {
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCartItemNotFound),
		errors.Is(err, services.ErrAddressNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrNotOwner):
		sendErrorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrEmptyCart):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	case errors.As(err, &stockErr):
		ctx.JSON(http.StatusConflict, gin.H{
			"message":   stockErr.Error(),
			"productId": stockErr.ProductID,
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
	case errors.As(err, &transitionErr):
		sendErrorResponse(ctx, http.StatusConflict, transitionErr.Error())
	default:
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
	}
}
