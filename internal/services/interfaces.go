package services

import (
	"context"

	"meridian/internal/extract"
	"meridian/internal/models"
	"meridian/internal/pagination"
)

// CompanyFilter holds optional filter parameters for listing companies.
type CompanyFilter struct {
	Status *models.CompanyStatus
	Fund   *models.Fund
	Stage  *models.Stage
}

// CompanyServicer defines the contract for portfolio-company business logic.
// Create and Update take the raw field map from the intake form; the
// validation engine decides whether it becomes a company.
type CompanyServicer interface {
	CreateCompany(input map[string]any) (*models.Company, map[string][]string, error)
	UpdateCompany(id string, input map[string]any) (*models.Company, map[string][]string, error)
	ValidateStep(step int, input map[string]any) (map[string][]string, error)
	GetCompanyByID(id string) (*models.Company, error)
	GetCompanyBySlug(slug string) (*models.Company, error)
	ListPublicCompanies(page pagination.PageRequest) (*pagination.PageResponse[models.Company], error)
	ListCompanies(page pagination.PageRequest, filter CompanyFilter) (*pagination.PageResponse[models.Company], error)
	DeleteCompany(id string) error
	SetLogoURL(id, logoURL string) (*models.Company, error)
}

// FounderServicer defines the contract for founder management.
type FounderServicer interface {
	AddFounder(companyID, name, email, title, linkedInURL, bio, photoURL string) (*models.Founder, error)
	GetCompanyFounders(companyID string) ([]models.Founder, error)
	UpdateFounder(founderID string, fields FounderUpdateFields) (*models.Founder, error)
	DeleteFounder(founderID string) error
}

// FounderUpdateFields holds optional updates for a founder. Nil fields
// are left untouched.
type FounderUpdateFields struct {
	Name        *string
	Email       *string
	Title       *string
	LinkedInURL *string
	Bio         *string
	PhotoURL    *string
}

// GuestServicer defines the contract for podcast guest management.
type GuestServicer interface {
	CreateGuest(name, firm, title, linkedInURL, episodeURL, episodeSlug, photoURL string) (*models.Guest, error)
	GetGuestByID(id string) (*models.Guest, error)
	ListGuests(page pagination.PageRequest) (*pagination.PageResponse[models.Guest], error)
	ListPublishedGuests() ([]models.Guest, error)
	UpdateGuest(id string, fields GuestUpdateFields) (*models.Guest, error)
	UpdateGuestEpisode(id string, episode *extract.Episode) (*models.Guest, error)
	DeleteGuest(id string) error
}

// GuestUpdateFields holds optional updates for a guest. Nil fields are
// left untouched.
type GuestUpdateFields struct {
	Name        *string
	Firm        *string
	Title       *string
	LinkedInURL *string
	EpisodeURL  *string
	EpisodeSlug *string
	PhotoURL    *string
}

// NewsletterServicer defines the contract for newsletter subscriptions.
type NewsletterServicer interface {
	Subscribe(ctx context.Context, email, source string) (*models.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error
	ListSubscribers(page pagination.PageRequest) (*pagination.PageResponse[models.Subscriber], error)
}

// AuthSession carries the token pair handed out after a successful
// sign-in, plus where the frontend should send the user.
type AuthSession struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	RedirectTo   string      `json:"redirect_to"`
	Role         models.Role `json:"role"`
}

// AuthServicer defines the contract for portal authentication.
type AuthServicer interface {
	RequestMagicLink(ctx context.Context, email string) error
	VerifyMagicLink(ctx context.Context, token string) (*AuthSession, error)
	PasswordLogin(ctx context.Context, email, password string) (*AuthSession, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthSession, error)
	GetUserByID(id string) (*models.User, error)
}

// ToolsServicer defines the contract for the admin extraction tools.
type ToolsServicer interface {
	ExtractLogo(ctx context.Context, pageURL string) (string, error)
	ExtractEpisode(ctx context.Context, episodeURL string) (*extract.Episode, error)
	VectorizeLogo(ctx context.Context, imageURL string) (string, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
