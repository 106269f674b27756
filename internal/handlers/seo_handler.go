package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "meridian/internal/errors"
	"meridian/internal/models"
	"meridian/internal/pagination"
	"meridian/internal/seo"
	"meridian/internal/services"
)

// SEOHandler serves the crawl surface: sitemap.xml and robots.txt.
type SEOHandler struct {
	companyService services.CompanyServicer
	guestService   services.GuestServicer
	baseURL        string
}

// NewSEOHandler creates a new SEOHandler.
func NewSEOHandler(companyService services.CompanyServicer, guestService services.GuestServicer, baseURL string) *SEOHandler {
	return &SEOHandler{companyService: companyService, guestService: guestService, baseURL: baseURL}
}

// Sitemap serves sitemap.xml
// @Summary     Sitemap
// @Description XML sitemap covering the static pages, visible portfolio companies, and published episodes.
// @Tags        seo
// @Produce     xml
// @Success     200 {string} string "Sitemap XML"
// @Router      /sitemap.xml [get]
func (h *SEOHandler) Sitemap(c *gin.Context) {
	companies, err := h.allVisibleCompanies()
	if err != nil {
		respondWithError(c, err)
		return
	}
	guests, err := h.guestService.ListPublishedGuests()
	if err != nil {
		respondWithError(c, err)
		return
	}

	out, err := seo.Sitemap(h.baseURL, companies, guests)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", out)
}

// Robots serves robots.txt
// @Summary     Robots
// @Description robots.txt keeping the admin and API out of the index.
// @Tags        seo
// @Produce     plain
// @Success     200 {string} string "robots.txt"
// @Router      /robots.txt [get]
func (h *SEOHandler) Robots(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", seo.Robots(h.baseURL))
}

// allVisibleCompanies pages through the public list so the sitemap
// covers every visible company, not just the first page.
func (h *SEOHandler) allVisibleCompanies() ([]models.Company, error) {
	var all []models.Company
	page := 1
	for {
		result, err := h.companyService.ListPublicCompanies(pagination.PageRequest{Page: page, PageSize: 100})
		if err != nil {
			return nil, err
		}
		all = append(all, result.Data...)
		if page >= result.TotalPages {
			return all, nil
		}
		page++
	}
}
