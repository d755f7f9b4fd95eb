package handlers

import (
	"net/http"
	"strconv"

	"dlccontrol/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	snapshotSourceAPI = "api"
	maxSnapshotLimit  = 1000

	errTakeSnapshot  = "failed to take snapshot"
	errListSnapshots = "failed to load snapshots"
)

// @Summary      Take a parameter snapshot
// @Description  Reads all parameters and stores them in the snapshot history.
// @Tags         snapshots
// @Produce      json
// @Success      201  {object}  models.Snapshot
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/snapshots [post]
// @Security     BearerAuth
func (h *Handler) takeSnapshot(c *gin.Context) {
	snap, err := h.services.Snapshots.Take(c.Request.Context(), snapshotSourceAPI)
	if err != nil {
		if snap.ID == "" {
			h.respondError(c, errTakeSnapshot, "snapshot_take_failed", err)
			return
		}
		// Stored, but the audit event was lost.
		h.log.Warnw("snapshot_event_failed", "id", snap.ID, "err", err)
	}
	c.JSON(http.StatusCreated, snap)
}

// @Summary      List parameter snapshots
// @Description  Newest first.
// @Tags         snapshots
// @Produce      json
// @Param        from   query     string  false  "Start of range"  example(2025-08-01)
// @Param        to     query     string  false  "End of range; date-only is treated as end of day"
// @Param        limit  query     int     false  "Maximum number of snapshots (default 100, max 1000)"
// @Success      200    {object}  map[string]interface{}  "count, snapshots"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /api/v1/snapshots [get]
// @Security     BearerAuth
func (h *Handler) listSnapshots(c *gin.Context) {
	from, to, ok := queryRange(c)
	if !ok {
		return
	}
	limit := 0
	if qs := c.Query("limit"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil || n <= 0 || n > maxSnapshotLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "'limit' must be between 1 and 1000"})
			return
		}
		limit = n
	}
	snaps, err := h.services.Snapshots.List(c.Request.Context(), service.SnapshotFilter{From: from, To: to, Limit: limit})
	if err != nil {
		h.respondError(c, errListSnapshots, "snapshot_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(snaps),
		"snapshots": snaps,
	})
}
