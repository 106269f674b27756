package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "meridian/internal/errors"
	"meridian/internal/services"
)

// FounderHandler handles founder management for portfolio companies.
type FounderHandler struct {
	founderService services.FounderServicer
	auditService   services.AuditServicer
}

// NewFounderHandler creates a new FounderHandler.
func NewFounderHandler(founderService services.FounderServicer, auditService services.AuditServicer) *FounderHandler {
	return &FounderHandler{founderService: founderService, auditService: auditService}
}

// AddFounderRequest represents the payload for attaching a founder.
type AddFounderRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Email       string `json:"email" binding:"omitempty,email"`
	Title       string `json:"title" binding:"max=100"`
	LinkedInURL string `json:"linkedin_url" binding:"omitempty,url"`
	Bio         string `json:"bio" binding:"max=2000"`
	PhotoURL    string `json:"photo_url" binding:"omitempty,url"`
}

// UpdateFounderRequest represents the payload for updating a founder.
type UpdateFounderRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Title       *string `json:"title" binding:"omitempty,max=100"`
	LinkedInURL *string `json:"linkedin_url" binding:"omitempty,url"`
	Bio         *string `json:"bio" binding:"omitempty,max=2000"`
	PhotoURL    *string `json:"photo_url" binding:"omitempty,url"`
}

// Add attaches a founder to a company
// @Summary     Add a founder
// @Description Attach a founder to a portfolio company.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Company ID"
// @Param       request body AddFounderRequest true "Founder details"
// @Success     201 {object} models.Founder "Founder added"
// @Failure     404 {object} ErrorResponse "Company not found"
// @Router      /admin/companies/{id}/founders [post]
func (h *FounderHandler) Add(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	companyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddFounderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	founder, err := h.founderService.AddFounder(companyID, req.Name, req.Email, req.Title, req.LinkedInURL, req.Bio, req.PhotoURL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ADD_FOUNDER", "founder", founder.ID, c.ClientIP(),
		map[string]interface{}{"company_id": companyID, "name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"founder": founder})
}

// List lists a company's founders
// @Summary     List founders
// @Description List the founders attached to a company.
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Company ID"
// @Success     200 {object} map[string]interface{} "Founders"
// @Router      /admin/companies/{id}/founders [get]
func (h *FounderHandler) List(c *gin.Context) {
	companyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	founders, err := h.founderService.GetCompanyFounders(companyID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"founders": founders})
}

// Update edits a founder
// @Summary     Update a founder
// @Description Apply the provided fields to a founder.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Founder ID"
// @Param       request body UpdateFounderRequest true "Fields to update"
// @Success     200 {object} models.Founder "Founder updated"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /admin/founders/{id} [put]
func (h *FounderHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	founderID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateFounderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	founder, err := h.founderService.UpdateFounder(founderID, services.FounderUpdateFields{
		Name:        req.Name,
		Email:       req.Email,
		Title:       req.Title,
		LinkedInURL: req.LinkedInURL,
		Bio:         req.Bio,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_FOUNDER", "founder", founderID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"founder": founder})
}

// Delete removes a founder
// @Summary     Delete a founder
// @Description Soft-delete a founder.
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Founder ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /admin/founders/{id} [delete]
func (h *FounderHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	founderID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.founderService.DeleteFounder(founderID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_FOUNDER", "founder", founderID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"message": "Founder deleted"})
}
