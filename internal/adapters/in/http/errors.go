package http

import (
	"errors"
	"log/slog"
	"net/http"

	"posrelay/internal/generated/servers"
	"posrelay/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorResponse maps an application error to a status code and body.
// Client errors carry the full error text as details; server errors do not.
func errorResponse(err error) (int, servers.Error) {
	var (
		notFound   *errs.ObjectNotFoundError
		required   *errs.ValueIsRequiredError
		invalid    *errs.ValueIsInvalidError
		outOfRange *errs.ValueIsOutOfRangeError
	)

	switch {
	case errors.Is(err, errInvalidJSON):
		return http.StatusBadRequest, withDetails("Invalid JSON", err)
	case errors.As(err, &notFound):
		return http.StatusNotFound, servers.Error{Error: "Order not found"}
	case errors.As(err, &required):
		return http.StatusBadRequest, withDetails(requiredMessage(required.ParamName), err)
	case errors.As(err, &invalid):
		return http.StatusBadRequest, withDetails("Invalid "+invalid.ParamName, err)
	case errors.As(err, &outOfRange):
		return http.StatusBadRequest, withDetails("Invalid "+outOfRange.ParamName, err)
	default:
		return http.StatusInternalServerError, servers.Error{Error: "Internal server error"}
	}
}

func requiredMessage(param string) string {
	switch param {
	case "items":
		return "Order must include at least one item"
	case "status":
		return "Missing status"
	default:
		return "Missing " + param
	}
}

func withDetails(msg string, err error) servers.Error {
	details := err.Error()
	return servers.Error{Error: msg, Details: &details}
}

func (s *Server) respondError(ctx echo.Context, err error) error {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
	}
	return ctx.JSON(status, body)
}

// logAttrsError is a helper for handlers that log without responding.
func logAttrsError(logger *slog.Logger, ctx echo.Context, msg string, err error) {
	logger.ErrorContext(ctx.Request().Context(), msg, "path", ctx.Path(), "error", err)
}
