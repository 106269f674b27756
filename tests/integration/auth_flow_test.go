package integration

import (
	"fmt"
	"net/http"
	"testing"

	"meridian/internal/models"
	"meridian/internal/testutil"
)

func TestMagicLinkSignInFlow(t *testing.T) {
	app := setupApp(t)
	testutil.CreateTestUserWithEmail(t, app.DB, "lp@fund.example.com", models.RoleLP)

	// Request a link.
	rec := app.request("POST", "/api/v1/auth/magic-link", `{"email":"lp@fund.example.com"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("magic-link request failed: %d %s", rec.Code, rec.Body.String())
	}
	token := app.Mail.last(t).magicToken(t)

	// Redeem it.
	rec = app.request("POST", "/api/v1/auth/verify", fmt.Sprintf(`{"token":%q}`, token), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("verify failed: %d %s", rec.Code, rec.Body.String())
	}
	session := parseJSON(t, rec)
	if session["redirect_to"] != "/portal" {
		t.Errorf("expected LP redirect /portal, got %v", session["redirect_to"])
	}
	access, ok := session["access_token"].(string)
	if !ok || access == "" {
		t.Fatal("expected an access token in the session")
	}

	// The session works against protected routes.
	rec = app.request("GET", "/api/v1/profile", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile fetch failed: %d %s", rec.Code, rec.Body.String())
	}

	// The link is single-use.
	rec = app.request("POST", "/api/v1/auth/verify", fmt.Sprintf(`{"token":%q}`, token), "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 on token reuse, got %d", rec.Code)
	}
}

func TestMagicLinkDoesNotRevealAccounts(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/auth/magic-link", `{"email":"stranger@example.com"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown address, got %d", rec.Code)
	}
	if app.Mail.count() != 0 {
		t.Errorf("expected no mail for unknown address, got %d messages", app.Mail.count())
	}
}

func TestAdminPasswordLoginAndRefresh(t *testing.T) {
	app := setupApp(t)
	admin := testutil.CreateTestAdmin(t, app.DB)

	rec := app.request("POST", "/api/v1/auth/login",
		fmt.Sprintf(`{"email":%q,"password":"password123"}`, admin.Email), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("password login failed: %d %s", rec.Code, rec.Body.String())
	}
	session := parseJSON(t, rec)
	if session["redirect_to"] != "/admin" {
		t.Errorf("expected admin redirect /admin, got %v", session["redirect_to"])
	}

	refresh := session["refresh_token"].(string)
	rec = app.request("POST", "/api/v1/auth/refresh", fmt.Sprintf(`{"refresh_token":%q}`, refresh), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
	}

	// Rotation invalidates the old refresh token.
	rec = app.request("POST", "/api/v1/auth/refresh", fmt.Sprintf(`{"refresh_token":%q}`, refresh), "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for rotated-out refresh token, got %d", rec.Code)
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/admin/companies", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", rec.Code)
	}

	lpTok, _ := app.lpToken(t)
	rec = app.request("GET", "/api/v1/admin/companies", "", lpTok)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for LP on admin route, got %d", rec.Code)
	}

	adminTok, _ := app.adminToken(t)
	rec = app.request("GET", "/api/v1/admin/companies", "", adminTok)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d %s", rec.Code, rec.Body.String())
	}
}
