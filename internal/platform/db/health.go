package db

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// poolStats is the connection-pool summary reported by the health
// endpoint. The directory is loaded once at startup, so this is mostly a
// reachability signal rather than a capacity dashboard.
type poolStats struct {
	TotalConns int32 `json:"total_conns"`
	IdleConns  int32 `json:"idle_conns"`
	MaxConns   int32 `json:"max_conns"`
}

// healthResponse maps a ping result and pool snapshot to the status code
// and body of the health endpoint.
func healthResponse(pingErr error, stats poolStats) (int, map[string]interface{}) {
	if pingErr != nil {
		return http.StatusServiceUnavailable, map[string]interface{}{
			"status": "unhealthy",
			"error":  pingErr.Error(),
			"pool":   stats,
		}
	}
	return http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"pool":   stats,
	}
}

// HealthHandler serves GET /health/db when a database pool is configured.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
		defer cancel()

		stat := pool.Stat()
		stats := poolStats{
			TotalConns: stat.TotalConns(),
			IdleConns:  stat.IdleConns(),
			MaxConns:   stat.MaxConns(),
		}

		code, body := healthResponse(pool.Ping(ctx), stats)
		return c.JSON(code, body)
	}
}
