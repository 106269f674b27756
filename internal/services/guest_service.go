package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "meridian/internal/errors"
	"meridian/internal/extract"
	"meridian/internal/models"
	"meridian/internal/pagination"
)

// guestService handles podcast guest management.
type guestService struct {
	db *gorm.DB
}

// NewGuestService creates a new GuestServicer.
func NewGuestService(db *gorm.DB) GuestServicer {
	return &guestService{db: db}
}

// CreateGuest records a podcast guest.
func (s *guestService) CreateGuest(name, firm, title, linkedInURL, episodeURL, episodeSlug, photoURL string) (*models.Guest, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "guest name is required")
	}

	guest := &models.Guest{
		Name:        name,
		Firm:        firm,
		Title:       title,
		LinkedInURL: linkedInURL,
		EpisodeURL:  episodeURL,
		EpisodeSlug: episodeSlug,
		PhotoURL:    photoURL,
	}
	if err := s.db.Create(guest).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return guest, nil
}

// GetGuestByID retrieves a guest by ID.
func (s *guestService) GetGuestByID(id string) (*models.Guest, error) {
	var guest models.Guest
	if err := s.db.Where("id = ?", id).First(&guest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGuestNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &guest, nil
}

// ListGuests lists all guests for the admin.
func (s *guestService) ListGuests(page pagination.PageRequest) (*pagination.PageResponse[models.Guest], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Guest{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var guests []models.Guest
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&guests).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(guests, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ListPublishedGuests lists guests whose episode has gone out, newest
// episode first. Used for the public podcast page and the sitemap.
func (s *guestService) ListPublishedGuests() ([]models.Guest, error) {
	var guests []models.Guest
	err := s.db.
		Where("episode_slug <> '' AND episode_published_at IS NOT NULL").
		Order("episode_published_at DESC").
		Find(&guests).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return guests, nil
}

// UpdateGuest applies the non-nil fields to an existing guest.
func (s *guestService) UpdateGuest(id string, fields GuestUpdateFields) (*models.Guest, error) {
	var guest models.Guest
	if err := s.db.Where("id = ?", id).First(&guest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGuestNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.Firm != nil {
		updates["firm"] = *fields.Firm
	}
	if fields.Title != nil {
		updates["title"] = *fields.Title
	}
	if fields.LinkedInURL != nil {
		updates["linked_in_url"] = *fields.LinkedInURL
	}
	if fields.EpisodeURL != nil {
		updates["episode_url"] = *fields.EpisodeURL
	}
	if fields.EpisodeSlug != nil {
		updates["episode_slug"] = *fields.EpisodeSlug
	}
	if fields.PhotoURL != nil {
		updates["photo_url"] = *fields.PhotoURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(&guest).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", guest.ID).First(&guest).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &guest, nil
}

// UpdateGuestEpisode stores the details scraped from an episode page.
func (s *guestService) UpdateGuestEpisode(id string, episode *extract.Episode) (*models.Guest, error) {
	guest, err := s.GetGuestByID(id)
	if err != nil {
		return nil, err
	}

	if episode.PublishedAt != nil {
		if err := s.db.Model(guest).Update("episode_published_at", *episode.PublishedAt).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		guest.EpisodePublishedAt = episode.PublishedAt
	}
	return guest, nil
}

// DeleteGuest soft-deletes a guest.
func (s *guestService) DeleteGuest(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Guest{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrGuestNotFound
	}
	return nil
}
