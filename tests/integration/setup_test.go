package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"meridian/internal/clients/audience"
	"meridian/internal/clients/vectorizer"
	"meridian/internal/extract"
	"meridian/internal/forms"
	"meridian/internal/handlers"
	"meridian/internal/logger"
	"meridian/internal/middleware"
	"meridian/internal/models"
	"meridian/internal/services"
	"meridian/internal/testutil"
	"meridian/internal/tokens"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Mail   *mailbox
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	forms.Register()
}

// sentMail is one captured outbound message.
type sentMail struct {
	To      string
	Subject string
	Text    string
}

// mailbox is a mail.Sender that records messages instead of sending.
type mailbox struct {
	mu       sync.Mutex
	messages []sentMail
}

func (m *mailbox) Send(_ context.Context, to, subject, _, textBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, sentMail{To: to, Subject: subject, Text: textBody})
	return nil
}

// last returns the most recent message, failing the test if none exist.
func (m *mailbox) last(t *testing.T) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.messages) == 0 {
		t.Fatal("no mail was sent")
	}
	return m.messages[len(m.messages)-1]
}

func (m *mailbox) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

// magicToken pulls the token out of a sign-in link email.
func (m sentMail) magicToken(t *testing.T) string {
	t.Helper()
	i := strings.Index(m.Text, "token=")
	if i < 0 {
		t.Fatalf("no token in mail body: %s", m.Text)
	}
	return strings.Fields(m.Text[i+len("token="):])[0]
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Company{},
		&models.Founder{},
		&models.Guest{},
		&models.Subscriber{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by isolated in-memory
// SQLite, an embedded redis, and stubbed external providers.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tokenStore := tokens.NewStore(rdb)

	mbox := &mailbox{}

	// One stub stands in for both SaaS providers: the mailing list only
	// checks the status code, the vectorizer reads the body as SVG.
	providerSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<svg/>"))
	}))
	t.Cleanup(providerSrv.Close)
	audienceClient := audience.NewClient(providerSrv.URL, "test-key", "list-1", providerSrv.Client())
	vectorizerClient := vectorizer.NewClient(providerSrv.URL, "test-key", providerSrv.Client())

	const baseURL = "https://meridian.example.com"

	// Services
	companyService := services.NewCompanyService(db)
	founderService := services.NewFounderService(db)
	guestService := services.NewGuestService(db)
	newsletterService := services.NewNewsletterService(db, audienceClient, mbox, baseURL)
	authService := services.NewAuthService(db, tokenStore, mbox, baseURL)
	toolsService := services.NewToolsService(extract.NewFetcher(nil), vectorizerClient)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	companyHandler := handlers.NewCompanyHandler(companyService, auditService)
	founderHandler := handlers.NewFounderHandler(founderService, auditService)
	guestHandler := handlers.NewGuestHandler(guestService, toolsService, auditService)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService)
	toolsHandler := handlers.NewToolsHandler(toolsService, auditService)
	seoHandler := handlers.NewSEOHandler(companyService, guestService, baseURL)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	router.GET("/sitemap.xml", seoHandler.Sitemap)
	router.GET("/robots.txt", seoHandler.Robots)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/magic-link", authHandler.RequestMagicLink)
	auth.POST("/verify", authHandler.VerifyMagicLink)
	auth.POST("/login", authHandler.PasswordLogin)
	auth.POST("/refresh", authHandler.Refresh)

	v1.GET("/portfolio", companyHandler.ListPublic)
	v1.GET("/portfolio/:slug", companyHandler.GetBySlug)
	v1.GET("/podcast", guestHandler.ListPublished)

	newsletter := v1.Group("/newsletter")
	newsletter.POST("/subscribe", newsletterHandler.Subscribe)
	newsletter.POST("/unsubscribe", newsletterHandler.Unsubscribe)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())
	protected.GET("/profile", authHandler.GetProfile)

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))

	companies := admin.Group("/companies")
	companies.POST("", companyHandler.Create)
	companies.GET("", companyHandler.List)
	companies.POST("/validate-step", companyHandler.ValidateStep)
	companies.GET("/:id", companyHandler.Get)
	companies.PUT("/:id", companyHandler.Update)
	companies.DELETE("/:id", companyHandler.Delete)
	companies.PUT("/:id/logo", companyHandler.SetLogo)
	companies.POST("/:id/founders", founderHandler.Add)
	companies.GET("/:id/founders", founderHandler.List)

	guests := admin.Group("/guests")
	guests.POST("", guestHandler.Create)
	guests.GET("", guestHandler.List)
	guests.PUT("/:id", guestHandler.Update)
	guests.POST("/:id/sync-episode", guestHandler.SyncEpisode)
	guests.DELETE("/:id", guestHandler.Delete)

	admin.GET("/subscribers", newsletterHandler.ListSubscribers)

	tools := admin.Group("/tools")
	tools.POST("/extract-logo", toolsHandler.ExtractLogo)
	tools.POST("/extract-episode", toolsHandler.ExtractEpisode)
	tools.POST("/vectorize", toolsHandler.Vectorize)

	return &testApp{DB: db, Router: router, Mail: mbox}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// adminToken creates an admin user and mints an access token for them.
func (app *testApp) adminToken(t *testing.T) (string, *models.User) {
	t.Helper()
	admin := testutil.CreateTestAdmin(t, app.DB)
	token, err := middleware.GenerateAccessToken(admin)
	if err != nil {
		t.Fatalf("failed to mint access token: %v", err)
	}
	return token, admin
}

// lpToken creates an LP user and mints an access token for them.
func (app *testApp) lpToken(t *testing.T) (string, *models.User) {
	t.Helper()
	user := testutil.CreateTestUser(t, app.DB)
	token, err := middleware.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to mint access token: %v", err)
	}
	return token, user
}

// jsonBody marshals a payload map into a request body.
func jsonBody(t *testing.T, payload map[string]any) string {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return string(b)
}
