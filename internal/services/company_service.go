package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "meridian/internal/errors"
	"meridian/internal/forms"
	"meridian/internal/metrics"
	"meridian/internal/models"
	"meridian/internal/pagination"
)

// companySortColumns are the columns the admin list may sort on.
var companySortColumns = map[string]bool{
	"name":            true,
	"investment_date": true,
	"created_at":      true,
}

// companyService handles portfolio-company business logic.
type companyService struct {
	db *gorm.DB
}

// NewCompanyService creates a new CompanyServicer.
func NewCompanyService(db *gorm.DB) CompanyServicer {
	return &companyService{db: db}
}

// CreateCompany runs the intake form through full validation and, when
// it passes, persists the company. On validation failure the per-field
// error map is returned together with ErrFormInvalid.
func (s *companyService) CreateCompany(input map[string]any) (*models.Company, map[string][]string, error) {
	rec, fieldErrs, err := forms.Validate(input)
	if err != nil {
		metrics.RecordFormValidation("fault")
		return nil, nil, apperrors.Wrap(apperrors.ErrFormFailed, err)
	}
	if !fieldErrs.Empty() {
		metrics.RecordFormValidation("invalid")
		return nil, fieldErrs, apperrors.ErrFormInvalid
	}
	metrics.RecordFormValidation("valid")

	company, err := recordToCompany(rec)
	if err != nil {
		return nil, nil, err
	}

	if taken, err := s.slugTaken(company.Slug, ""); err != nil {
		return nil, nil, err
	} else if taken {
		return nil, nil, apperrors.ErrDuplicateSlug
	}

	if err := s.db.Create(company).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return company, nil, nil
}

// UpdateCompany validates the full form against the existing row and
// overwrites it. The record keeps its identity, logo, and founders.
func (s *companyService) UpdateCompany(id string, input map[string]any) (*models.Company, map[string][]string, error) {
	existing, err := s.GetCompanyByID(id)
	if err != nil {
		return nil, nil, err
	}

	// The presence of an id tells normalization this is an existing
	// record, so its status is honored instead of forced to active.
	payload := make(map[string]any, len(input)+1)
	for k, v := range input {
		payload[k] = v
	}
	payload["id"] = existing.ID

	rec, fieldErrs, err := forms.Validate(payload)
	if err != nil {
		metrics.RecordFormValidation("fault")
		return nil, nil, apperrors.Wrap(apperrors.ErrFormFailed, err)
	}
	if !fieldErrs.Empty() {
		metrics.RecordFormValidation("invalid")
		return nil, fieldErrs, apperrors.ErrFormInvalid
	}
	metrics.RecordFormValidation("valid")

	updated, err := recordToCompany(rec)
	if err != nil {
		return nil, nil, err
	}

	if taken, err := s.slugTaken(updated.Slug, existing.ID); err != nil {
		return nil, nil, err
	} else if taken {
		return nil, nil, apperrors.ErrDuplicateSlug
	}

	updated.Base = existing.Base
	updated.LogoURL = existing.LogoURL
	if err := s.db.Save(updated).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return updated, nil, nil
}

// ValidateStep checks a single wizard page without persisting anything.
// It backs the per-step "Next" button on the intake form.
func (s *companyService) ValidateStep(step int, input map[string]any) (map[string][]string, error) {
	_, fieldErrs, err := forms.ValidateStep(forms.Step(step), input)
	if err != nil {
		metrics.RecordFormValidation("fault")
		return nil, apperrors.Wrap(apperrors.ErrFormFailed, err)
	}
	if !fieldErrs.Empty() {
		metrics.RecordFormValidation("invalid")
		return fieldErrs, nil
	}
	metrics.RecordFormValidation("valid")
	return map[string][]string{}, nil
}

// GetCompanyByID retrieves a company with its founders.
func (s *companyService) GetCompanyByID(id string) (*models.Company, error) {
	var company models.Company
	if err := s.db.Preload("Founders").Where("id = ?", id).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &company, nil
}

// GetCompanyBySlug retrieves a publicly visible company by slug.
// Companies that are dead or acquihired are not shown on the site.
func (s *companyService) GetCompanyBySlug(slug string) (*models.Company, error) {
	var company models.Company
	err := s.db.Preload("Founders").
		Where("slug = ? AND status IN ?", slug, publicStatuses()).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &company, nil
}

// ListPublicCompanies lists active and exited companies for the site.
func (s *companyService) ListPublicCompanies(page pagination.PageRequest) (*pagination.PageResponse[models.Company], error) {
	page.Defaults()

	base := s.db.Model(&models.Company{}).Where("status IN ?", publicStatuses())

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var companies []models.Company
	order := page.OrderBy(companySortColumns, "investment_date") + " DESC"
	if err := base.Order(order).Scopes(pagination.Paginate(page)).Find(&companies).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(companies, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ListCompanies lists all companies for the admin, with optional filters.
func (s *companyService) ListCompanies(page pagination.PageRequest, filter CompanyFilter) (*pagination.PageResponse[models.Company], error) {
	page.Defaults()

	base := s.db.Model(&models.Company{})
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.Fund != nil {
		base = base.Where("fund = ?", *filter.Fund)
	}
	if filter.Stage != nil {
		base = base.Where("stage_at_investment = ?", *filter.Stage)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var companies []models.Company
	order := page.OrderBy(companySortColumns, "created_at") + " DESC"
	if err := base.Order(order).Scopes(pagination.Paginate(page)).Find(&companies).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(companies, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteCompany soft-deletes a company and its founders.
func (s *companyService) DeleteCompany(id string) error {
	company, err := s.GetCompanyByID(id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", company.ID).Delete(&models.Founder{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(company).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// SetLogoURL stores the logo produced by the extraction tools.
func (s *companyService) SetLogoURL(id, logoURL string) (*models.Company, error) {
	company, err := s.GetCompanyByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(company).Update("logo_url", logoURL).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	company.LogoURL = logoURL
	return company, nil
}

func (s *companyService) slugTaken(slug, excludeID string) (bool, error) {
	q := s.db.Model(&models.Company{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

func publicStatuses() []models.CompanyStatus {
	return []models.CompanyStatus{models.CompanyActive, models.CompanyExited}
}

// recordToCompany maps a validated form record onto the model. The
// date reparse cannot fail on a record the validator accepted, but the
// error is still propagated rather than swallowed.
func recordToCompany(rec *forms.Record) (*models.Company, error) {
	investedAt, err := time.Parse("2006-01-02", rec.InvestmentDate)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &models.Company{
		Name:               rec.Name,
		Slug:               rec.Slug,
		Tagline:            rec.Tagline,
		DescriptionRaw:     rec.DescriptionRaw,
		WebsiteURL:         rec.WebsiteURL,
		InvestmentDate:     investedAt,
		InvestmentAmount:   rec.InvestmentAmount,
		Instrument:         models.Instrument(rec.Instrument),
		StageAtInvestment:  models.Stage(rec.StageAtInvestment),
		RoundSizeUSD:       rec.RoundSizeUSD,
		Fund:               models.Fund(rec.Fund),
		ReasonForInvesting: rec.ReasonForInvesting,
		CountryOfIncorp:    rec.CountryOfIncorp,
		IncorporationType:  models.IncorporationType(rec.IncorporationType),
		ConversionCapUSD:   rec.ConversionCapUSD,
		DiscountPercent:    rec.DiscountPercent,
		PostMoneyValuation: rec.PostMoneyValuation,
		HasProRataRights:   rec.HasProRataRights,
		FounderEmail:       rec.FounderEmail,
		Status:             models.CompanyStatus(rec.Status),
	}, nil
}
