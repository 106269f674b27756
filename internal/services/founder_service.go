package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "meridian/internal/errors"
	"meridian/internal/models"
)

// founderService handles founder management for portfolio companies.
type founderService struct {
	db *gorm.DB
}

// NewFounderService creates a new FounderServicer.
func NewFounderService(db *gorm.DB) FounderServicer {
	return &founderService{db: db}
}

// AddFounder attaches a founder to a company.
func (s *founderService) AddFounder(companyID, name, email, title, linkedInURL, bio, photoURL string) (*models.Founder, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "founder name is required")
	}

	var company models.Company
	if err := s.db.Where("id = ?", companyID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	founder := &models.Founder{
		CompanyID:   company.ID,
		Name:        name,
		Email:       email,
		Title:       title,
		LinkedInURL: linkedInURL,
		Bio:         bio,
		PhotoURL:    photoURL,
	}
	if err := s.db.Create(founder).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return founder, nil
}

// GetCompanyFounders lists a company's founders.
func (s *founderService) GetCompanyFounders(companyID string) ([]models.Founder, error) {
	var founders []models.Founder
	if err := s.db.Where("company_id = ?", companyID).Order("created_at ASC").Find(&founders).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return founders, nil
}

// UpdateFounder applies the non-nil fields to an existing founder.
func (s *founderService) UpdateFounder(founderID string, fields FounderUpdateFields) (*models.Founder, error) {
	var founder models.Founder
	if err := s.db.Where("id = ?", founderID).First(&founder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFounderNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.Email != nil {
		updates["email"] = *fields.Email
	}
	if fields.Title != nil {
		updates["title"] = *fields.Title
	}
	if fields.LinkedInURL != nil {
		updates["linked_in_url"] = *fields.LinkedInURL
	}
	if fields.Bio != nil {
		updates["bio"] = *fields.Bio
	}
	if fields.PhotoURL != nil {
		updates["photo_url"] = *fields.PhotoURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(&founder).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", founder.ID).First(&founder).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &founder, nil
}

// DeleteFounder soft-deletes a founder.
func (s *founderService) DeleteFounder(founderID string) error {
	result := s.db.Where("id = ?", founderID).Delete(&models.Founder{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrFounderNotFound
	}
	return nil
}
