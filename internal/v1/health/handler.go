package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tablehost/internal/v1/roommgr"
)

// Handler serves the liveness and readiness probes.
type Handler struct {
	rooms *roommgr.Manager
}

// NewHandler creates a health check handler backed by the room manager.
func NewHandler(rooms *roommgr.Manager) *Handler {
	return &Handler{rooms: rooms}
}

// LivenessResponse is the liveness probe response.
type LivenessResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ReadinessResponse is the readiness probe response.
type ReadinessResponse struct {
	Status          string `json:"status"`
	Timestamp       string `json:"timestamp"`
	RoomCount       int    `json:"roomCount"`
	ConnectionCount int    `json:"connectionCount"`
}

// Liveness handles GET /health/live. Returns 200 if the process is alive;
// it does not depend on any in-memory state.
func (h *Handler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, LivenessResponse{
		Status:    "alive",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Readiness handles GET /health/ready. The process has no external
// dependencies to probe, so readiness reduces to "the room table is
// reachable" plus a snapshot of current load.
func (h *Handler) Readiness(c *gin.Context) {
	roomCount := 0
	connCount := 0
	if h.rooms != nil {
		roomCount = h.rooms.RoomCount()
		connCount = h.rooms.ConnectionCount()
	}

	c.JSON(http.StatusOK, ReadinessResponse{
		Status:          "ready",
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		RoomCount:       roomCount,
		ConnectionCount: connCount,
	})
}
