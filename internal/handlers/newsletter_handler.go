package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "meridian/internal/errors"
	"meridian/internal/pagination"
	"meridian/internal/services"
)

// NewsletterHandler handles newsletter signup requests.
type NewsletterHandler struct {
	newsletterService services.NewsletterServicer
}

// NewNewsletterHandler creates a new NewsletterHandler.
func NewNewsletterHandler(newsletterService services.NewsletterServicer) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// SubscribeRequest represents the signup payload.
type SubscribeRequest struct {
	Email  string `json:"email" binding:"required,email,max=255"`
	Source string `json:"source" binding:"max=100"`
}

// UnsubscribeRequest represents the unsubscribe payload.
type UnsubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe signs an email up for the newsletter
// @Summary     Subscribe to the newsletter
// @Description Record the signup, push it to the mailing-list provider, and send a welcome email.
// @Tags        newsletter
// @Accept      json
// @Produce     json
// @Param       request body SubscribeRequest true "Email and optional source"
// @Success     201 {object} models.Subscriber "Subscribed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Provider unavailable"
// @Router      /newsletter/subscribe [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sub, err := h.newsletterService.Subscribe(c.Request.Context(), req.Email, req.Source)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"subscriber": sub})
}

// Unsubscribe removes an email from the newsletter
// @Summary     Unsubscribe from the newsletter
// @Description Mark the subscriber as unsubscribed and remove them from the provider list.
// @Tags        newsletter
// @Accept      json
// @Produce     json
// @Param       request body UnsubscribeRequest true "Email to remove"
// @Success     200 {object} map[string]string "Unsubscribed"
// @Failure     404 {object} ErrorResponse "Not a subscriber"
// @Router      /newsletter/unsubscribe [post]
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.newsletterService.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed"})
}

// ListSubscribers lists subscribers for the admin
// @Summary     List subscribers (admin)
// @Description List newsletter subscribers, newest first.
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Subscriber] "Subscribers"
// @Router      /admin/subscribers [get]
func (h *NewsletterHandler) ListSubscribers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.newsletterService.ListSubscribers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
