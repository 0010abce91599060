package controllers

import (
	"errors"
	"log"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps the service error taxonomy onto HTTP. Unknown
// errors are logged and surface as a generic 500.
func handleServiceError(c *gin.Context, err error, notFoundMsg string) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		resp.ValidationFailed(c, verr.Fields)
		return
	}

	var serr *services.InvalidStateError
	if errors.As(err, &serr) {
		resp.BadRequest(c, serr.Reason)
		return
	}

	if errors.Is(err, services.ErrEmptyCart) {
		resp.BadRequest(c, "Cart is empty")
		return
	}
	if errors.Is(err, services.ErrOrderCreation) {
		resp.ServerError(c, "Failed to place order")
		return
	}
	if services.IsNotFound(err) {
		resp.NotFound(c, notFoundMsg)
		return
	}

	log.Printf("internal error: %v", err)
	resp.ServerError(c, "Something went wrong")
}
