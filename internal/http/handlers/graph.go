package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
	"github.com/yungbote/advisorgraph-backend/internal/http/middleware"
	"github.com/yungbote/advisorgraph-backend/internal/http/response"
	"github.com/yungbote/advisorgraph-backend/internal/platform/apierr"
	"github.com/yungbote/advisorgraph-backend/internal/platform/logger"
	"github.com/yungbote/advisorgraph-backend/internal/services"
)

type GraphHandler struct {
	log      *logger.Logger
	graph    *services.GraphService
	sessions *services.SessionManager
}

func NewGraphHandler(log *logger.Logger, graph *services.GraphService, sessions *services.SessionManager) *GraphHandler {
	return &GraphHandler{
		log:      log.With("handler", "GraphHandler"),
		graph:    graph,
		sessions: sessions,
	}
}

func (h *GraphHandler) session(c *gin.Context) (*services.Session, bool) {
	id := middleware.SessionID(c)
	if id == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "missing_session", nil)
		return nil, false
	}
	return h.sessions.GetOrCreate(id), true
}

func respondServiceErr(c *gin.Context, fallbackCode string, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondError(c, http.StatusInternalServerError, fallbackCode, err)
}

// GET /api/graph
func (h *GraphHandler) GetGraph(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	response.RespondOK(c, sess.LatestResult())
}

// POST /api/graph/filters/apply
func (h *GraphHandler) ApplyFilters(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var patch graphmodel.FilterPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_filter_patch", err)
		return
	}
	res, err := h.graph.ApplyFilters(c.Request.Context(), sess, patch)
	if err != nil {
		respondServiceErr(c, "apply_filters_failed", err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/graph/filters/regions
func (h *GraphHandler) ChangeRegions(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var body struct {
		Regions []string `json:"regions"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_regions", err)
		return
	}
	res, err := h.graph.ChangeRegions(c.Request.Context(), sess, body.Regions)
	if err != nil {
		respondServiceErr(c, "change_regions_failed", err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/graph/filters/reset
func (h *GraphHandler) ResetFilters(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	cleared := h.graph.ResetFilters(sess)
	response.RespondOK(c, gin.H{
		"applied": cleared,
		"gate":    services.InitialGateState(),
	})
}

// POST /api/graph/validate
func (h *GraphHandler) Validate(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	report, err := h.graph.ValidateLast(sess)
	if err != nil {
		respondServiceErr(c, "validate_failed", err)
		return
	}
	response.RespondOK(c, report)
}

// POST /api/graph/repair
func (h *GraphHandler) Repair(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	snap, report, err := h.graph.RepairLast(sess)
	if err != nil {
		respondServiceErr(c, "repair_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"snapshot": snap,
		"report":   report,
	})
}
