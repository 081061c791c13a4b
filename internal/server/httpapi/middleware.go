package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dmitrijs2005/gophdiary/internal/common"
)

const maxImportSize = "10M"

func (s *Server) setupMiddleware() {
	e := s.echo

	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info(c.Request().Context(), "request",
				"method", v.Method, "uri", v.URI, "status", v.Status,
				"latency", v.Latency, "request_id", v.RequestID)
			return nil
		},
	}))

	e.Use(middleware.Recover())
}

func importBodyLimit() echo.MiddlewareFunc {
	return middleware.BodyLimit(maxImportSize)
}

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps the diary error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrFormat), errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrNotFound), errors.Is(err, common.ErrNothingToExport):
		return http.StatusNotFound
	case errors.Is(err, common.ErrRetrieval), errors.Is(err, common.ErrSave), errors.Is(err, common.ErrDelete):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, msg := statusFor(err), err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code, msg = he.Code, fmt.Sprint(he.Message)
	}

	if code >= 500 {
		s.logger.Error(c.Request().Context(), "request failed",
			"uri", c.Request().RequestURI, "status", code, "error", err,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID))
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errorResponse{Error: msg})
}
