package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"friendgraph-api/services"
	"friendgraph-api/utils"
	"github.com/gin-gonic/gin"
)

// statusClientClosedRequest is reported when the client went away before the
// response was ready. Nothing is written to the connection.
const statusClientClosedRequest = 499

// respondError writes the error body for a service error. Internal errors are
// logged here with the request id and reach the client only as the generic message.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(c.Request.Context().Err(), context.Canceled):
		logger.DebugContext(c.Request.Context(), "request cancelled by client",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString("request_id"),
		)
		c.AbortWithStatus(statusClientClosedRequest)
	case errors.Is(err, services.ErrInvalidArgument):
		utils.SendError(c, http.StatusBadRequest, services.Message(err))
	case errors.Is(err, services.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, services.Message(err))
	case errors.Is(err, services.ErrConflict):
		utils.SendError(c, http.StatusNotAcceptable, services.Message(err))
	default:
		logger.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString("request_id"),
			"error", err,
		)
		utils.SendInternalError(c)
	}
}

// targetID reads and validates the :user_id path parameter.
func targetID(c *gin.Context) (string, bool) {
	id := c.Param("user_id")
	if !utils.IsValidAccountID(id) {
		utils.SendError(c, http.StatusBadRequest, "Invalid account id!")
		return "", false
	}
	return id, true
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
