package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "meridian/internal/errors"
	"meridian/internal/mail"
	"meridian/internal/metrics"
	"meridian/internal/middleware"
	"meridian/internal/models"
	"meridian/internal/tokens"
)

// authService handles portal sign-in. The primary flow is passwordless:
// a magic link is emailed, and redeeming it once yields a JWT pair.
// Admins may also sign in with a password as a fallback.
type authService struct {
	db      *gorm.DB
	store   *tokens.Store
	sender  mail.Sender
	baseURL string
}

// NewAuthService creates a new AuthServicer.
func NewAuthService(db *gorm.DB, store *tokens.Store, sender mail.Sender, baseURL string) AuthServicer {
	return &authService{db: db, store: store, sender: sender, baseURL: baseURL}
}

// RequestMagicLink issues a sign-in link for a known, active user.
// Unknown addresses return success without sending anything so the
// endpoint cannot be used to probe which emails have portal access.
func (s *authService) RequestMagicLink(ctx context.Context, email string) error {
	if email == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "email is required")
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !user.IsActive {
		return nil
	}

	token, err := s.store.Issue(ctx, user.Email)
	if err != nil {
		if errors.Is(err, tokens.ErrRateLimited) {
			return apperrors.ErrTooManyLinks
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	subject, htmlBody, textBody := mail.MagicLinkEmail(s.baseURL, token)
	if err := s.sender.Send(ctx, user.Email, subject, htmlBody, textBody); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	metrics.RecordMagicLinkIssued()
	return nil
}

// VerifyMagicLink redeems a sign-in token and returns a session. The
// token works exactly once; anything unknown, expired, or reused maps
// to the same invalid-token error.
func (s *authService) VerifyMagicLink(ctx context.Context, token string) (*AuthSession, error) {
	email, err := s.store.Consume(ctx, token)
	if err != nil {
		metrics.RecordMagicLinkVerified(false)
		if errors.Is(err, tokens.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		metrics.RecordMagicLinkVerified(false)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !user.IsActive {
		metrics.RecordMagicLinkVerified(false)
		return nil, apperrors.ErrUserInactive
	}

	session, err := s.openSession(&user)
	if err != nil {
		metrics.RecordMagicLinkVerified(false)
		return nil, err
	}
	metrics.RecordMagicLinkVerified(true)
	return session, nil
}

// PasswordLogin is the admin fallback for when email is unavailable.
// Magic-link-only users carry no password hash and always fail here.
func (s *authService) PasswordLogin(ctx context.Context, email, password string) (*AuthSession, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !user.IsActive || user.Password == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return s.openSession(&user)
}

// Refresh rotates the token pair. The presented refresh token must
// match the stored hash, so stolen-then-rotated tokens stop working.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthSession, error) {
	claims, err := middleware.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefresh
	}

	var user models.User
	if err := s.db.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefresh
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}
	if user.RefreshTokenHash == "" || user.RefreshTokenHash != middleware.HashToken(refreshToken) {
		return nil, apperrors.ErrInvalidRefresh
	}

	return s.openSession(&user)
}

// GetUserByID retrieves a portal user.
func (s *authService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// openSession mints a token pair, stores the refresh hash, and stamps
// the login time. Admins land on the dashboard, LPs on the portal.
func (s *authService) openSession(user *models.User) (*AuthSession, error) {
	accessToken, err := middleware.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	refreshToken, err := middleware.GenerateRefreshToken(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"refresh_token_hash": middleware.HashToken(refreshToken),
		"last_login_at":      now,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	redirect := "/portal"
	if user.Role == models.RoleAdmin {
		redirect = "/admin"
	}
	return &AuthSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		RedirectTo:   redirect,
		Role:         user.Role,
	}, nil
}
