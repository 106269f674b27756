package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "meridian/internal/errors"
	"meridian/internal/services"
)

// ToolsHandler exposes the admin extraction tools.
type ToolsHandler struct {
	toolsService services.ToolsServicer
	auditService services.AuditServicer
}

// NewToolsHandler creates a new ToolsHandler.
func NewToolsHandler(toolsService services.ToolsServicer, auditService services.AuditServicer) *ToolsHandler {
	return &ToolsHandler{toolsService: toolsService, auditService: auditService}
}

// ExtractLogoRequest carries the page to scrape for a logo.
type ExtractLogoRequest struct {
	PageURL string `json:"page_url" binding:"required,url"`
}

// ExtractEpisodeRequest carries the episode page to scrape.
type ExtractEpisodeRequest struct {
	EpisodeURL string `json:"episode_url" binding:"required,url"`
}

// VectorizeRequest carries the raster image to convert to SVG.
type VectorizeRequest struct {
	ImageURL string `json:"image_url" binding:"required,url"`
}

// ExtractLogo scrapes a logo off a page
// @Summary     Extract a logo
// @Description Fetch a company page and return the best logo candidate URL.
// @Tags        tools
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExtractLogoRequest true "Page to scrape"
// @Success     200 {object} map[string]string "Logo URL"
// @Failure     422 {object} ErrorResponse "No logo found"
// @Failure     502 {object} ErrorResponse "Page could not be fetched"
// @Router      /admin/tools/extract-logo [post]
func (h *ToolsHandler) ExtractLogo(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExtractLogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	logoURL, err := h.toolsService.ExtractLogo(c.Request.Context(), req.PageURL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "EXTRACT_LOGO", "tool", "", c.ClientIP(),
		map[string]interface{}{"page_url": req.PageURL})

	c.JSON(http.StatusOK, gin.H{"logo_url": logoURL})
}

// ExtractEpisode scrapes an episode page
// @Summary     Extract episode details
// @Description Fetch a podcast episode page and return its title, publish date, and transcript.
// @Tags        tools
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExtractEpisodeRequest true "Episode page to scrape"
// @Success     200 {object} extract.Episode "Episode details"
// @Failure     422 {object} ErrorResponse "Page could not be parsed"
// @Failure     502 {object} ErrorResponse "Page could not be fetched"
// @Router      /admin/tools/extract-episode [post]
func (h *ToolsHandler) ExtractEpisode(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExtractEpisodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	episode, err := h.toolsService.ExtractEpisode(c.Request.Context(), req.EpisodeURL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "EXTRACT_EPISODE", "tool", "", c.ClientIP(),
		map[string]interface{}{"episode_url": req.EpisodeURL})

	c.JSON(http.StatusOK, gin.H{"episode": episode})
}

// Vectorize converts a raster logo to SVG
// @Summary     Vectorize a logo
// @Description Convert a raster logo image into SVG via the vectorization provider.
// @Tags        tools
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body VectorizeRequest true "Image to convert"
// @Success     200 {object} map[string]string "SVG markup"
// @Failure     502 {object} ErrorResponse "Provider unavailable"
// @Router      /admin/tools/vectorize [post]
func (h *ToolsHandler) Vectorize(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req VectorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	svg, err := h.toolsService.VectorizeLogo(c.Request.Context(), req.ImageURL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "VECTORIZE_LOGO", "tool", "", c.ClientIP(),
		map[string]interface{}{"image_url": req.ImageURL})

	c.JSON(http.StatusOK, gin.H{"svg": svg})
}
