package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

// RequestIDKey stores the request id in echo and request contexts
const RequestIDKey contextKey = "request_id"

// RequestIDHeader is read from the client and echoed in the response
const RequestIDHeader = "X-Request-ID"

// RequestID reuses a client supplied X-Request-ID or generates one
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(RequestIDHeader)
			if id == "" || len(id) > 128 {
				id = uuid.New().String()
			}

			c.Set(string(RequestIDKey), id)
			ctx := context.WithValue(c.Request().Context(), RequestIDKey, id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(RequestIDHeader, id)

			return next(c)
		}
	}
}

// GetRequestID retrieves the request id from the context
func GetRequestID(ctx context.Context) string {
	if val, ok := ctx.Value(RequestIDKey).(string); ok {
		return val
	}
	return ""
}
