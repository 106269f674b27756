package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "meridian/internal/errors"
	"meridian/internal/models"
	"meridian/internal/pagination"
	"meridian/internal/services"
)

// CompanyHandler handles portfolio-company requests: the public
// portfolio endpoints plus the admin intake and management surface.
type CompanyHandler struct {
	companyService services.CompanyServicer
	auditService   services.AuditServicer
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService services.CompanyServicer, auditService services.AuditServicer) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, auditService: auditService}
}

// ValidateStepRequest carries one wizard page of intake-form fields.
type ValidateStepRequest struct {
	Step   int            `json:"step" binding:"min=0,max=1"`
	Fields map[string]any `json:"fields" binding:"required"`
}

// AdminListQuery holds the admin list filters.
type AdminListQuery struct {
	pagination.PageRequest
	Status string `form:"status" binding:"omitempty,company_status"`
	Fund   string `form:"fund" binding:"omitempty,fund_name"`
	Stage  string `form:"stage" binding:"omitempty,stage"`
}

// SetLogoRequest carries the logo URL to store on a company.
type SetLogoRequest struct {
	LogoURL string `json:"logo_url" binding:"required,url"`
}

// ListPublic lists the public portfolio
// @Summary     List portfolio companies
// @Description List active and exited portfolio companies for the public site.
// @Tags        portfolio
// @Produce     json
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size"
// @Param       sort      query string false "Sort column (name, investment_date, created_at)"
// @Success     200 {object} pagination.PageResponse[models.Company] "Companies"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /portfolio [get]
func (h *CompanyHandler) ListPublic(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.companyService.ListPublicCompanies(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBySlug returns one public company page
// @Summary     Get a portfolio company
// @Description Get a publicly visible company by slug, with founders.
// @Tags        portfolio
// @Produce     json
// @Param       slug path string true "Company slug"
// @Success     200 {object} models.Company "Company"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /portfolio/{slug} [get]
func (h *CompanyHandler) GetBySlug(c *gin.Context) {
	company, err := h.companyService.GetCompanyBySlug(c.Param("slug"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

// ValidateStep validates one intake wizard page
// @Summary     Validate an intake step
// @Description Validate one page of the company intake form without saving. Returns the per-field error map; an empty map means the step is clean.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ValidateStepRequest true "Step number and field values"
// @Success     200 {object} map[string]interface{} "Per-field validation result"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Validation failure"
// @Router      /admin/companies/validate-step [post]
func (h *CompanyHandler) ValidateStep(c *gin.Context) {
	var req ValidateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fieldErrs, err := h.companyService.ValidateStep(req.Step, req.Fields)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": len(fieldErrs) == 0, "fields": fieldErrs})
}

// Create persists a new portfolio company
// @Summary     Create a portfolio company
// @Description Run the full intake form through validation and persist the company. On validation failure the per-field errors are returned.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body map[string]interface{} true "Intake form fields"
// @Success     201 {object} models.Company "Company created"
// @Failure     409 {object} ErrorResponse "Slug already in use"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /admin/companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var input map[string]any
	if err := c.ShouldBindJSON(&input); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	company, fieldErrs, err := h.companyService.CreateCompany(input)
	if err != nil {
		if errors.Is(err, apperrors.ErrFormInvalid) {
			respondWithFieldErrors(c, fieldErrs)
			return
		}
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_COMPANY", "company", company.ID, c.ClientIP(),
		map[string]interface{}{"name": company.Name, "slug": company.Slug})

	c.JSON(http.StatusCreated, gin.H{"company": company})
}

// Update overwrites a portfolio company
// @Summary     Update a portfolio company
// @Description Validate the full intake form against an existing company and overwrite it.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                 true "Company ID"
// @Param       request body map[string]interface{} true "Intake form fields"
// @Success     200 {object} models.Company "Company updated"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Slug already in use"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /admin/companies/{id} [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var input map[string]any
	if err := c.ShouldBindJSON(&input); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	company, fieldErrs, err := h.companyService.UpdateCompany(id, input)
	if err != nil {
		if errors.Is(err, apperrors.ErrFormInvalid) {
			respondWithFieldErrors(c, fieldErrs)
			return
		}
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_COMPANY", "company", company.ID, c.ClientIP(),
		map[string]interface{}{"name": company.Name, "slug": company.Slug})

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// List lists companies for the admin
// @Summary     List companies (admin)
// @Description List all companies regardless of status, with optional status, fund, and stage filters.
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size"
// @Param       status    query string false "Filter by status"
// @Param       fund      query string false "Filter by fund"
// @Param       stage     query string false "Filter by stage"
// @Success     200 {object} pagination.PageResponse[models.Company] "Companies"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /admin/companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	var query AdminListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.CompanyFilter
	if query.Status != "" {
		status := models.CompanyStatus(query.Status)
		filter.Status = &status
	}
	if query.Fund != "" {
		fund := models.Fund(query.Fund)
		filter.Fund = &fund
	}
	if query.Stage != "" {
		stage := models.Stage(query.Stage)
		filter.Stage = &stage
	}

	result, err := h.companyService.ListCompanies(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get returns one company for the admin
// @Summary     Get a company (admin)
// @Description Get any company by ID, including hidden statuses.
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Company ID"
// @Success     200 {object} models.Company "Company"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /admin/companies/{id} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	company, err := h.companyService.GetCompanyByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

// Delete removes a company
// @Summary     Delete a company
// @Description Soft-delete a company and its founders.
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Company ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /admin/companies/{id} [delete]
func (h *CompanyHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.companyService.DeleteCompany(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_COMPANY", "company", id, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}

// SetLogo stores a logo URL on a company
// @Summary     Set a company logo
// @Description Store the logo URL produced by the extraction tools.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Company ID"
// @Param       request body SetLogoRequest true "Logo URL"
// @Success     200 {object} models.Company "Company updated"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /admin/companies/{id}/logo [put]
func (h *CompanyHandler) SetLogo(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetLogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	company, err := h.companyService.SetLogoURL(id, req.LogoURL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SET_COMPANY_LOGO", "company", id, c.ClientIP(),
		map[string]interface{}{"logo_url": req.LogoURL})

	c.JSON(http.StatusOK, gin.H{"company": company})
}
