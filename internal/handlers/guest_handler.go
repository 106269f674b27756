package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "meridian/internal/errors"
	"meridian/internal/pagination"
	"meridian/internal/services"
)

// GuestHandler handles podcast guest requests: the public episode list
// plus the admin management surface.
type GuestHandler struct {
	guestService services.GuestServicer
	toolsService services.ToolsServicer
	auditService services.AuditServicer
}

// NewGuestHandler creates a new GuestHandler.
func NewGuestHandler(guestService services.GuestServicer, toolsService services.ToolsServicer, auditService services.AuditServicer) *GuestHandler {
	return &GuestHandler{guestService: guestService, toolsService: toolsService, auditService: auditService}
}

// CreateGuestRequest represents the payload for recording a guest.
type CreateGuestRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Firm        string `json:"firm" binding:"max=255"`
	Title       string `json:"title" binding:"max=100"`
	LinkedInURL string `json:"linkedin_url" binding:"omitempty,url"`
	EpisodeURL  string `json:"episode_url" binding:"omitempty,url"`
	EpisodeSlug string `json:"episode_slug" binding:"omitempty,max=100,slug"`
	PhotoURL    string `json:"photo_url" binding:"omitempty,url"`
}

// UpdateGuestRequest represents the payload for updating a guest.
type UpdateGuestRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Firm        *string `json:"firm" binding:"omitempty,max=255"`
	Title       *string `json:"title" binding:"omitempty,max=100"`
	LinkedInURL *string `json:"linkedin_url" binding:"omitempty,url"`
	EpisodeURL  *string `json:"episode_url" binding:"omitempty,url"`
	EpisodeSlug *string `json:"episode_slug" binding:"omitempty,max=100,slug"`
	PhotoURL    *string `json:"photo_url" binding:"omitempty,url"`
}

// ListPublished lists guests with published episodes
// @Summary     List podcast episodes
// @Description List guests whose episode has been published, newest first.
// @Tags        podcast
// @Produce     json
// @Success     200 {object} map[string]interface{} "Published guests"
// @Router      /podcast [get]
func (h *GuestHandler) ListPublished(c *gin.Context) {
	guests, err := h.guestService.ListPublishedGuests()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"guests": guests})
}

// Create records a podcast guest
// @Summary     Create a guest
// @Description Record a podcast guest, optionally with their episode link.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGuestRequest true "Guest details"
// @Success     201 {object} models.Guest "Guest created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /admin/guests [post]
func (h *GuestHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	guest, err := h.guestService.CreateGuest(req.Name, req.Firm, req.Title, req.LinkedInURL, req.EpisodeURL, req.EpisodeSlug, req.PhotoURL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_GUEST", "guest", guest.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"guest": guest})
}

// List lists all guests for the admin
// @Summary     List guests (admin)
// @Description List all guests regardless of publication state.
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Guest] "Guests"
// @Router      /admin/guests [get]
func (h *GuestHandler) List(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.guestService.ListGuests(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Update edits a guest's details
// @Summary     Update a guest
// @Description Apply partial updates to a podcast guest.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Guest ID"
// @Param       request body UpdateGuestRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated guest"
// @Failure     404 {object} ErrorResponse "Guest not found"
// @Router      /admin/guests/{id} [put]
func (h *GuestHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	guestID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	guest, err := h.guestService.UpdateGuest(guestID, services.GuestUpdateFields{
		Name:        req.Name,
		Firm:        req.Firm,
		Title:       req.Title,
		LinkedInURL: req.LinkedInURL,
		EpisodeURL:  req.EpisodeURL,
		EpisodeSlug: req.EpisodeSlug,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_GUEST", "guest", guestID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"guest": guest})
}

// SyncEpisode scrapes the guest's episode page
// @Summary     Sync episode details
// @Description Fetch the guest's episode page and store the publish date scraped from it.
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Guest ID"
// @Success     200 {object} map[string]interface{} "Guest with scraped episode details"
// @Failure     404 {object} ErrorResponse "Guest not found"
// @Failure     422 {object} ErrorResponse "Page could not be parsed"
// @Failure     502 {object} ErrorResponse "Page could not be fetched"
// @Router      /admin/guests/{id}/sync-episode [post]
func (h *GuestHandler) SyncEpisode(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	guestID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	guest, err := h.guestService.GetGuestByID(guestID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if guest.EpisodeURL == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Guest has no episode URL"))
		return
	}

	episode, err := h.toolsService.ExtractEpisode(c.Request.Context(), guest.EpisodeURL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	updated, err := h.guestService.UpdateGuestEpisode(guestID, episode)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SYNC_EPISODE", "guest", guestID, c.ClientIP(),
		map[string]interface{}{"episode_url": guest.EpisodeURL})

	c.JSON(http.StatusOK, gin.H{"guest": updated, "episode": episode})
}

// Delete removes a guest
// @Summary     Delete a guest
// @Description Soft-delete a podcast guest.
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Guest ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /admin/guests/{id} [delete]
func (h *GuestHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	guestID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.guestService.DeleteGuest(guestID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_GUEST", "guest", guestID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"message": "Guest deleted"})
}
