package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader is the header carrying the request correlation ID.
const RequestIDHeader = "X-Request-ID"

const requestIDContextKey = "request_id"

// RequestID assigns a correlation ID to each request. An incoming
// X-Request-ID header is preserved; otherwise a new UUID is generated.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set(requestIDContextKey, rid)
			c.Response().Header().Set(RequestIDHeader, rid)
			return next(c)
		}
	}
}

// RequestIDFromContext returns the correlation ID assigned by RequestID,
// or "" when the middleware did not run.
func RequestIDFromContext(c echo.Context) string {
	rid, _ := c.Get(requestIDContextKey).(string)
	return rid
}
