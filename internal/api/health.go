package api

import "github.com/gin-gonic/gin"

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe (depends on the query backend being reachable).
type HealthHandler struct {
	backendPing func() error // nil when the backend has no cheap connectivity check
}

// NewHealthHandler constructs a HealthHandler with the provided ping function.
//
// Parameters:
//   - backendPing (func() error): Checks whether the query backend is
//     reachable. For the Postgres executor this is db.Ping; the remote
//     executor passes nil and readiness reduces to liveness.
//
// Returns:
//   - *HealthHandler: A new handler instance.
func NewHealthHandler(backendPing func() error) *HealthHandler {
	return &HealthHandler{backendPing: backendPing}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: Returns 200 OK if the backend ping succeeds, 503 otherwise.
//
// Parameters:
//   - r (*gin.Engine): The Gin router to register routes on.
func (h *HealthHandler) Register(r *gin.Engine) {
	// Liveness probe (just checks if the service is up)
	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Readiness probe (checks the query backend)
	// @Summary      Readiness probe
	// @Description  Returns ready if the service dependencies are reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		if h.backendPing != nil && h.backendPing() != nil {
			c.JSON(503, gin.H{"status": "degraded"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
}
