package integration

import (
	"net/http"
	"strings"
	"testing"

	"meridian/internal/models"
)

func TestNewsletterSubscribeFlow(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/newsletter/subscribe",
		`{"email":"reader@example.com","source":"homepage"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("subscribe failed: %d %s", rec.Code, rec.Body.String())
	}

	// The signup is recorded locally.
	var sub models.Subscriber
	if err := app.DB.Where("email = ?", "reader@example.com").First(&sub).Error; err != nil {
		t.Fatalf("subscriber not persisted: %v", err)
	}
	if sub.Source != "homepage" {
		t.Errorf("expected source homepage, got %q", sub.Source)
	}

	// A welcome email went out.
	msg := app.Mail.last(t)
	if msg.To != "reader@example.com" {
		t.Errorf("welcome mail went to %q", msg.To)
	}
	if !strings.Contains(msg.Subject, "newsletter") {
		t.Errorf("unexpected welcome subject %q", msg.Subject)
	}

	// Unsubscribe sticks locally.
	rec = app.request("POST", "/api/v1/newsletter/unsubscribe", `{"email":"reader@example.com"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unsubscribe failed: %d %s", rec.Code, rec.Body.String())
	}
	if err := app.DB.Where("email = ?", "reader@example.com").First(&sub).Error; err != nil {
		t.Fatalf("subscriber lookup failed: %v", err)
	}
	if sub.UnsubscribedAt == nil {
		t.Error("expected unsubscribed_at to be set")
	}
}

func TestSubscriberListRequiresAdmin(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/newsletter/subscribe", `{"email":"reader@example.com"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("subscribe failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/admin/subscribers", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", rec.Code)
	}

	adminTok, _ := app.adminToken(t)
	rec = app.request("GET", "/api/v1/admin/subscribers", "", adminTok)
	if rec.Code != http.StatusOK {
		t.Fatalf("subscriber list failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	data, ok := result["data"].([]interface{})
	if !ok || len(data) != 1 {
		t.Errorf("expected one subscriber in the list, got %v", result["data"])
	}
}
