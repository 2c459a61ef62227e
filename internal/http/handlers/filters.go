package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/advisorgraph-backend/internal/http/middleware"
	"github.com/yungbote/advisorgraph-backend/internal/http/response"
	"github.com/yungbote/advisorgraph-backend/internal/platform/logger"
	"github.com/yungbote/advisorgraph-backend/internal/services"
)

type FilterHandler struct {
	log      *logger.Logger
	options  *services.FilterOptionsService
	sessions *services.SessionManager
}

func NewFilterHandler(log *logger.Logger, options *services.FilterOptionsService, sessions *services.SessionManager) *FilterHandler {
	return &FilterHandler{
		log:      log.With("handler", "FilterHandler"),
		options:  options,
		sessions: sessions,
	}
}

// GET /api/graph/filters
func (h *FilterHandler) GetFilters(c *gin.Context) {
	id := middleware.SessionID(c)
	if id == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "missing_session", nil)
		return
	}
	sess := h.sessions.GetOrCreate(id)
	response.RespondOK(c, gin.H{
		"current": sess.Filters.Current(),
		"applied": sess.Filters.Applied(),
	})
}

// GET /api/graph/filters/options
func (h *FilterHandler) GetFilterOptions(c *gin.Context) {
	id := middleware.SessionID(c)
	if id == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "missing_session", nil)
		return
	}
	sess := h.sessions.GetOrCreate(id)
	regions := sess.Filters.Current().Regions

	opts, err := h.options.Options(c.Request.Context(), regions)
	if err != nil {
		respondServiceErr(c, "filter_options_failed", err)
		return
	}
	response.RespondOK(c, opts)
}
