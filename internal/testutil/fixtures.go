package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"meridian/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active LP user with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("lp%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email, models.RoleLP)
}

// CreateTestAdmin creates an active admin with a bcrypt password hash
// so both the magic-link and password flows can be exercised.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("admin%d@test.com", nextID())
	user := CreateTestUserWithEmail(t, db, email, models.RoleAdmin)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Model(user).Update("password", string(hash)).Error; err != nil {
		t.Fatalf("failed to set admin password: %v", err)
	}
	user.Password = string(hash)
	return user
}

// CreateTestUserWithEmail creates an active user with the given email and role.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCompany persists an active SAFE-backed company with a
// unique slug and sensible terms.
func CreateTestCompany(t *testing.T, db *gorm.DB) *models.Company {
	t.Helper()

	n := nextID()
	cap := 10_000_000.0
	discount := 20.0
	company := &models.Company{
		Name:               fmt.Sprintf("Test Company %d", n),
		Slug:               fmt.Sprintf("test-company-%d", n),
		Tagline:            "Infrastructure for everything",
		DescriptionRaw:     "A longer description of what the company does.",
		WebsiteURL:         "https://example.com",
		InvestmentDate:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		InvestmentAmount:   250_000,
		Instrument:         models.InstrumentSafePost,
		StageAtInvestment:  models.StageSeed,
		RoundSizeUSD:       2_000_000,
		Fund:               models.FundI,
		ReasonForInvesting: "Strong team, growing market.",
		CountryOfIncorp:    "US",
		IncorporationType:  models.IncorpCCorp,
		ConversionCapUSD:   &cap,
		DiscountPercent:    &discount,
		HasProRataRights:   true,
		FounderEmail:       fmt.Sprintf("founder%d@test.com", n),
		Status:             models.CompanyActive,
	}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("failed to create test company: %v", err)
	}
	return company
}

// CreateTestGuest persists a podcast guest with a published episode.
func CreateTestGuest(t *testing.T, db *gorm.DB) *models.Guest {
	t.Helper()

	n := nextID()
	published := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	guest := &models.Guest{
		Name:               fmt.Sprintf("Guest %d", n),
		Firm:               "Benchmark Test Partners",
		Title:              "General Partner",
		EpisodeSlug:        fmt.Sprintf("episode-%d", n),
		EpisodePublishedAt: &published,
	}
	if err := db.Create(guest).Error; err != nil {
		t.Fatalf("failed to create test guest: %v", err)
	}
	return guest
}

// CreateTestSubscriber persists an active newsletter subscriber.
func CreateTestSubscriber(t *testing.T, db *gorm.DB) *models.Subscriber {
	t.Helper()

	sub := &models.Subscriber{
		Email:        fmt.Sprintf("reader%d@test.com", nextID()),
		Source:       "homepage",
		SubscribedAt: time.Now(),
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create test subscriber: %v", err)
	}
	return sub
}

// ValidCompanyInput returns a complete intake-form payload that passes
// full validation, with a unique slug. Callers mutate it per test.
func ValidCompanyInput() map[string]any {
	n := nextID()
	return map[string]any{
		"name":                 fmt.Sprintf("Acme %d", n),
		"slug":                 fmt.Sprintf("acme-%d", n),
		"tagline":              "Rockets for small business",
		"description_raw":      "Acme builds rockets.",
		"website_url":          "https://acme.example.com",
		"country_of_incorp":    "US",
		"incorporation_type":   "c_corp",
		"investment_date":      "2024-05-01",
		"investment_amount":    250000,
		"instrument":           "safe_post",
		"stage_at_investment":  "seed",
		"round_size_usd":       2000000,
		"fund":                 "fund_i",
		"reason_for_investing": "Category-defining team.",
		"conversion_cap_usd":   10000000,
		"discount_percent":     20,
		"has_pro_rata_rights":  true,
		"founder_email":        fmt.Sprintf("founder%d@acme.example.com", n),
	}
}
