package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cynq/cynq-backend/internal/http/response"
	"github.com/cynq/cynq-backend/internal/pkg/ctxutil"
	"github.com/cynq/cynq-backend/internal/services"
)

// callerID reads the authenticated user from the request context. The
// auth middleware guarantees it is set on protected routes.
func callerID(c *gin.Context) uuid.UUID {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		return uuid.Nil
	}
	return rd.UserID
}

// respondServiceError maps service sentinels onto HTTP statuses.
// Everything unclassified becomes an opaque 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrNotAuthenticated):
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, services.ErrValidation):
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, services.ErrConflict):
		response.RespondError(c, http.StatusConflict, "conflict", err)
	case errors.Is(err, services.ErrUpstream):
		response.RespondError(c, http.StatusBadGateway, "upstream_error", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "internal_error",
			errors.New("internal server error"))
	}
}
