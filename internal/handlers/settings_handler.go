package handlers

import (
	"net/http"

	"github.com/campus-hq/portal-service/internal/services"
	"github.com/campus-hq/portal-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	BaseHandler
	settingsService services.SettingsService
}

func NewSettingsHandler(settingsService services.SettingsService, logger utils.Logger) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler:     NewBaseHandler(logger),
		settingsService: settingsService,
	}
}

func (h *SettingsHandler) GetAds(c *gin.Context) {
	settings, err := h.settingsService.GetAds(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

type setAdsRequest struct {
	Enabled bool `json:"enabled"`
}

// SetAds flips the portal-wide ads toggle. The write is an upsert, so
// the first call creates the settings row.
func (h *SettingsHandler) SetAds(c *gin.Context) {
	var req setAdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	settings, err := h.settingsService.SetAds(c.Request.Context(), req.Enabled)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
