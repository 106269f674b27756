package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "meridian/internal/errors"
	"meridian/internal/models"
	"meridian/internal/pagination"
	"meridian/internal/services"
)

// --- mock company service ---

type mockCompanyService struct {
	createCompanyFn       func(input map[string]any) (*models.Company, map[string][]string, error)
	updateCompanyFn       func(id string, input map[string]any) (*models.Company, map[string][]string, error)
	validateStepFn        func(step int, input map[string]any) (map[string][]string, error)
	getCompanyByIDFn      func(id string) (*models.Company, error)
	getCompanyBySlugFn    func(slug string) (*models.Company, error)
	listPublicCompaniesFn func(page pagination.PageRequest) (*pagination.PageResponse[models.Company], error)
	listCompaniesFn       func(page pagination.PageRequest, filter services.CompanyFilter) (*pagination.PageResponse[models.Company], error)
	deleteCompanyFn       func(id string) error
	setLogoURLFn          func(id, logoURL string) (*models.Company, error)
}

func (m *mockCompanyService) CreateCompany(input map[string]any) (*models.Company, map[string][]string, error) {
	if m.createCompanyFn != nil {
		return m.createCompanyFn(input)
	}
	return &models.Company{}, nil, nil
}

func (m *mockCompanyService) UpdateCompany(id string, input map[string]any) (*models.Company, map[string][]string, error) {
	if m.updateCompanyFn != nil {
		return m.updateCompanyFn(id, input)
	}
	return &models.Company{}, nil, nil
}

func (m *mockCompanyService) ValidateStep(step int, input map[string]any) (map[string][]string, error) {
	if m.validateStepFn != nil {
		return m.validateStepFn(step, input)
	}
	return map[string][]string{}, nil
}

func (m *mockCompanyService) GetCompanyByID(id string) (*models.Company, error) {
	if m.getCompanyByIDFn != nil {
		return m.getCompanyByIDFn(id)
	}
	return &models.Company{}, nil
}

func (m *mockCompanyService) GetCompanyBySlug(slug string) (*models.Company, error) {
	if m.getCompanyBySlugFn != nil {
		return m.getCompanyBySlugFn(slug)
	}
	return &models.Company{}, nil
}

func (m *mockCompanyService) ListPublicCompanies(page pagination.PageRequest) (*pagination.PageResponse[models.Company], error) {
	if m.listPublicCompaniesFn != nil {
		return m.listPublicCompaniesFn(page)
	}
	resp := pagination.NewPageResponse([]models.Company{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockCompanyService) ListCompanies(page pagination.PageRequest, filter services.CompanyFilter) (*pagination.PageResponse[models.Company], error) {
	if m.listCompaniesFn != nil {
		return m.listCompaniesFn(page, filter)
	}
	resp := pagination.NewPageResponse([]models.Company{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockCompanyService) DeleteCompany(id string) error {
	if m.deleteCompanyFn != nil {
		return m.deleteCompanyFn(id)
	}
	return nil
}

func (m *mockCompanyService) SetLogoURL(id, logoURL string) (*models.Company, error) {
	if m.setLogoURLFn != nil {
		return m.setLogoURLFn(id, logoURL)
	}
	return &models.Company{}, nil
}

var _ services.CompanyServicer = (*mockCompanyService)(nil)

func setupCompanyRouter(handler *CompanyHandler) *gin.Engine {
	r := gin.New()
	r.GET("/portfolio", handler.ListPublic)
	r.GET("/portfolio/:slug", handler.GetBySlug)

	admin := r.Group("/admin", injectUser(testUserID))
	admin.POST("/companies", handler.Create)
	admin.POST("/companies/validate-step", handler.ValidateStep)
	admin.GET("/companies", handler.List)
	admin.GET("/companies/:id", handler.Get)
	admin.PUT("/companies/:id", handler.Update)
	admin.DELETE("/companies/:id", handler.Delete)
	admin.PUT("/companies/:id/logo", handler.SetLogo)
	return r
}

func TestCompanyHandler_Create(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockCompanyService{
			createCompanyFn: func(input map[string]any) (*models.Company, map[string][]string, error) {
				return &models.Company{
					Base: models.Base{ID: testUserID},
					Name: input["name"].(string),
					Slug: "acme",
				}, nil, nil
			},
		}
		r := setupCompanyRouter(NewCompanyHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/admin/companies", `{"name":"Acme","slug":"acme"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		company := result["company"].(map[string]interface{})
		if company["name"] != "Acme" {
			t.Errorf("expected Acme, got %v", company["name"])
		}
	})

	t.Run("returns 422 with field errors", func(t *testing.T) {
		svc := &mockCompanyService{
			createCompanyFn: func(_ map[string]any) (*models.Company, map[string][]string, error) {
				return nil, map[string][]string{"slug": {"must contain only lowercase letters, numbers, and hyphens"}}, apperrors.ErrFormInvalid
			},
		}
		r := setupCompanyRouter(NewCompanyHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/admin/companies", `{"slug":"Not A Slug"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		fields := result["fields"].(map[string]interface{})
		if _, ok := fields["slug"]; !ok {
			t.Error("expected slug field error in response")
		}
	})

	t.Run("returns 409 on duplicate slug", func(t *testing.T) {
		svc := &mockCompanyService{
			createCompanyFn: func(_ map[string]any) (*models.Company, map[string][]string, error) {
				return nil, nil, apperrors.ErrDuplicateSlug
			},
		}
		r := setupCompanyRouter(NewCompanyHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/admin/companies", `{"slug":"acme"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestCompanyHandler_ValidateStep(t *testing.T) {
	t.Run("clean step reports valid", func(t *testing.T) {
		r := setupCompanyRouter(NewCompanyHandler(&mockCompanyService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/admin/companies/validate-step", `{"step":0,"fields":{"name":"Acme"}}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["valid"] != true {
			t.Errorf("expected valid=true, got %v", result["valid"])
		}
	})

	t.Run("dirty step reports field errors", func(t *testing.T) {
		svc := &mockCompanyService{
			validateStepFn: func(step int, _ map[string]any) (map[string][]string, error) {
				return map[string][]string{"name": {"is required"}}, nil
			},
		}
		r := setupCompanyRouter(NewCompanyHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/admin/companies/validate-step", `{"step":1,"fields":{}}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["valid"] != false {
			t.Errorf("expected valid=false, got %v", result["valid"])
		}
	})

	t.Run("out-of-range step is rejected at binding", func(t *testing.T) {
		r := setupCompanyRouter(NewCompanyHandler(&mockCompanyService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/admin/companies/validate-step", `{"step":5,"fields":{"name":"Acme"}}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCompanyHandler_PathIDs(t *testing.T) {
	t.Run("malformed uuid returns 400", func(t *testing.T) {
		r := setupCompanyRouter(NewCompanyHandler(&mockCompanyService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/admin/companies/not-a-uuid", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown company returns 404", func(t *testing.T) {
		svc := &mockCompanyService{
			getCompanyByIDFn: func(_ string) (*models.Company, error) {
				return nil, apperrors.ErrCompanyNotFound
			},
		}
		r := setupCompanyRouter(NewCompanyHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/admin/companies/"+testUserID, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestCompanyHandler_List(t *testing.T) {
	t.Run("passes status filter to service", func(t *testing.T) {
		var gotFilter services.CompanyFilter
		svc := &mockCompanyService{
			listCompaniesFn: func(_ pagination.PageRequest, filter services.CompanyFilter) (*pagination.PageResponse[models.Company], error) {
				gotFilter = filter
				resp := pagination.NewPageResponse([]models.Company{}, 1, 20, 0)
				return &resp, nil
			},
		}
		r := setupCompanyRouter(NewCompanyHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/admin/companies?status=exited", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.Status == nil || *gotFilter.Status != models.CompanyExited {
			t.Errorf("expected exited filter, got %v", gotFilter.Status)
		}
	})

	t.Run("rejects unknown status value", func(t *testing.T) {
		r := setupCompanyRouter(NewCompanyHandler(&mockCompanyService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/admin/companies?status=thriving", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCompanyHandler_GetBySlug(t *testing.T) {
	t.Run("hidden company returns 404", func(t *testing.T) {
		svc := &mockCompanyService{
			getCompanyBySlugFn: func(_ string) (*models.Company, error) {
				return nil, apperrors.ErrCompanyNotFound
			},
		}
		r := setupCompanyRouter(NewCompanyHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/portfolio/hooli", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
