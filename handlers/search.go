package handlers

import (
	"net/http"

	"placewise/models"
	"placewise/services/search"
	"placewise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchHandler exposes the conversational POI search service over HTTP.
type SearchHandler struct {
	svc search.SearchService
}

func NewSearchHandler(svc search.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Search handles POST /api/search.
func (h *SearchHandler) Search(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid search request", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.SearchResponse{
			Success: false,
			Error:   &models.SearchErrorPayload{Code: search.CodeValidation, Message: err.Error()},
		})
		return
	}

	// Fall back to the IP-derived location when the client sent none.
	if req.Location == nil {
		if loc, exists := c.Get("userLocation"); exists {
			if point, ok := loc.(*models.GeoPoint); ok {
				req.Location = point
			}
		}
	}

	resp := h.svc.Search(c.Request.Context(), req)
	status := http.StatusOK
	if !resp.Success {
		switch {
		case resp.Error != nil && resp.Error.Code == search.CodeValidation:
			status = http.StatusBadRequest
		case resp.Error != nil && resp.Error.Code == search.CodeUpstream:
			status = http.StatusBadGateway
		default:
			status = http.StatusInternalServerError
		}
	}
	c.JSON(status, resp)
}

// ResetSession handles POST /api/search/reset.
func (h *SearchHandler) ResetSession(c *gin.Context) {
	var req struct {
		SessionID string `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reset request", err.Error())
		return
	}
	if err := h.svc.ResetSession(c.Request.Context(), req.SessionID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to reset session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Status handles GET /api/health.
func (h *SearchHandler) Status(c *gin.Context) {
	status := h.svc.GetServiceStatus(c.Request.Context())
	code := http.StatusOK
	if !status.Ready {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
