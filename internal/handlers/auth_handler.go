package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "meridian/internal/errors"
	"meridian/internal/services"
)

// AuthHandler handles portal sign-in requests.
type AuthHandler struct {
	authService services.AuthServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService services.AuthServicer) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// MagicLinkRequest represents the sign-in link request payload.
type MagicLinkRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// VerifyRequest represents the token redemption payload.
type VerifyRequest struct {
	Token string `json:"token" binding:"required,len=64,hexadecimal"`
}

// PasswordLoginRequest represents the admin password fallback payload.
type PasswordLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the token refresh payload.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SessionResponse represents a successful sign-in.
type SessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	RedirectTo   string `json:"redirect_to"`
	Role         string `json:"role"`
}

// RequestMagicLink emails a one-time sign-in link
// @Summary     Request a sign-in link
// @Description Email a one-time sign-in link to a portal user. Always returns 200 so the endpoint cannot be used to probe for accounts.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body MagicLinkRequest true "Email to send the link to"
// @Success     200 {object} map[string]string "Link sent if the account exists"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     429 {object} ErrorResponse "Too many links requested"
// @Router      /auth/magic-link [post]
func (h *AuthHandler) RequestMagicLink(c *gin.Context) {
	var req MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.authService.RequestMagicLink(c.Request.Context(), req.Email); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If that address has portal access, a sign-in link is on its way."})
}

// VerifyMagicLink redeems a sign-in token
// @Summary     Redeem a sign-in link
// @Description Exchange a one-time token for a JWT session. Tokens are single use and expire after 15 minutes.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body VerifyRequest true "Token from the emailed link"
// @Success     200 {object} SessionResponse "Session created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid or expired token"
// @Router      /auth/verify [post]
func (h *AuthHandler) VerifyMagicLink(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	session, err := h.authService.VerifyMagicLink(c.Request.Context(), req.Token)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// PasswordLogin is the admin password fallback
// @Summary     Password login
// @Description Sign in with email and password. Only admins carry passwords; LPs always use magic links.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body PasswordLoginRequest true "Credentials"
// @Success     200 {object} SessionResponse "Session created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Router      /auth/login [post]
func (h *AuthHandler) PasswordLogin(c *gin.Context) {
	var req PasswordLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	session, err := h.authService.PasswordLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// Refresh rotates the JWT pair
// @Summary     Refresh session
// @Description Exchange a valid refresh token for a fresh JWT pair. The old refresh token stops working.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RefreshRequest true "Refresh token"
// @Success     200 {object} SessionResponse "Session refreshed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid or expired refresh token"
// @Router      /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	session, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetProfile returns the signed-in user
// @Summary     Get profile
// @Description Get the authenticated user's profile.
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /me [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":            user.ID,
			"email":         user.Email,
			"role":          user.Role,
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
			"last_login_at": user.LastLoginAt,
		},
	})
}
