package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taxcredit/internal/middleware"
	"taxcredit/internal/model"
	"taxcredit/internal/service"

	"github.com/gin-gonic/gin"
)

const testCompanyID = "5b0e1c84-0c1f-4b1c-9c55-8d7a0f0f0a01"

type stubCompanyService struct {
	created bool
	actor   string
}

func (s *stubCompanyService) RegisterCompany(_ context.Context, actor string, req service.RegisterCompanyRequest) (service.CompanyResponse, bool, error) {
	s.actor = actor
	return service.CompanyResponse{ID: testCompanyID, Name: req.Name}, s.created, nil
}

func (s *stubCompanyService) GetCompany(_ context.Context, id string) (service.CompanyResponse, error) {
	if id != testCompanyID {
		return service.CompanyResponse{}, service.ErrCompanyNotFound
	}
	return service.CompanyResponse{ID: id}, nil
}

func (s *stubCompanyService) ListCompanies(_ context.Context, search string, page, limit int) ([]service.CompanyResponse, int64, error) {
	return []service.CompanyResponse{{ID: testCompanyID}}, 41, nil
}

type stubAssessmentService struct {
	ranYear int
}

func (s *stubAssessmentService) RunAssessment(_ context.Context, actor, companyID string, taxYear int) (service.AssessmentResponse, error) {
	if taxYear < 2000 {
		return service.AssessmentResponse{}, service.ErrInvalidInput
	}
	s.ranYear = taxYear
	return service.AssessmentResponse{ID: "a1", CompanyID: companyID, TaxYear: taxYear, TotalCredit: 60_000_000, EligibleCount: 2}, nil
}

func (s *stubAssessmentService) RunBatch(_ context.Context, actor string, req service.BatchAssessmentRequest) (service.BatchAssessmentResponse, error) {
	return service.BatchAssessmentResponse{Succeeded: len(req.Targets)}, nil
}

func (s *stubAssessmentService) Preview(_ context.Context, req service.PreviewRequest) (service.AssessmentResponse, error) {
	return service.AssessmentResponse{TaxYear: req.TaxYear, CompanyName: req.Company.Name}, nil
}

func (s *stubAssessmentService) GetAssessment(_ context.Context, id string) (service.AssessmentResponse, error) {
	return service.AssessmentResponse{}, service.ErrAssessmentNotFound
}

func (s *stubAssessmentService) ListAssessments(_ context.Context, companyID string, taxYear, page, limit int) ([]service.AssessmentResponse, int64, error) {
	return nil, 0, nil
}

type stubAuditService struct{}

func (stubAuditService) GetAuditLogs(_ context.Context, action string, page, limit int) ([]service.AuditLogResponse, int64, error) {
	return []service.AuditLogResponse{{Action: model.ActionRunAssessment}}, 1, nil
}

type testEnv struct {
	router      *gin.Engine
	companies   *stubCompanyService
	assessments *stubAssessmentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", "handler-test-secret")
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		router:      gin.New(),
		companies:   &stubCompanyService{created: true},
		assessments: &stubAssessmentService{},
	}
	api := env.router.Group("")
	NewCompanyHandler(env.companies).RegisterRoutes(api)
	NewAssessmentHandler(env.assessments).RegisterRoutes(api)
	NewAuditHandler(stubAuditService{}).RegisterRoutes(api)
	return env
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := middleware.IssueToken(middleware.GetJWTSecret(), "user-42", role, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken err=%v", err)
	}
	return tok
}

func (env *testEnv) do(t *testing.T, method, path, role string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, role))
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestRegisterCompanyStatus(t *testing.T) {
	env := newTestEnv(t)
	body := service.RegisterCompanyRequest{
		RegistrationNumber: "1234567890",
		Name:               "Hanbit",
		Size:               "small_medium",
		Industry:           "manufacturing",
	}

	if w := env.do(t, http.MethodPost, "/api/companies", middleware.RoleAccountant, body); w.Code != http.StatusCreated {
		t.Fatalf("created status=%d, want 201 (%s)", w.Code, w.Body.String())
	}
	if env.companies.actor != "user-42" {
		t.Fatalf("actor=%q, want token subject", env.companies.actor)
	}

	env.companies.created = false
	if w := env.do(t, http.MethodPost, "/api/companies", middleware.RoleAccountant, body); w.Code != http.StatusOK {
		t.Fatalf("existing status=%d, want 200", w.Code)
	}
}

func TestRoutesStatusCodes(t *testing.T) {
	env := newTestEnv(t)
	validCompany := map[string]interface{}{
		"registration_number": "1234567890", "name": "A", "size": "small_medium", "industry": "it",
	}

	tests := []struct {
		name   string
		method string
		path   string
		role   string
		body   interface{}
		want   int
	}{
		{"no token", http.MethodGet, "/api/companies", "", nil, http.StatusUnauthorized},
		{"viewer cannot register", http.MethodPost, "/api/companies", middleware.RoleViewer, validCompany, http.StatusForbidden},
		{"bad enum", http.MethodPost, "/api/companies", middleware.RoleAdmin, map[string]interface{}{
			"registration_number": "1234567890", "name": "A", "size": "giant", "industry": "it",
		}, http.StatusBadRequest},
		{"malformed json", http.MethodPost, "/api/companies", middleware.RoleAdmin, "{", http.StatusBadRequest},
		{"viewer lists", http.MethodGet, "/api/companies?page=2&limit=20", middleware.RoleViewer, nil, http.StatusOK},
		{"company not found", http.MethodGet, "/api/companies/" + "00000000-0000-0000-0000-000000000000", middleware.RoleViewer, nil, http.StatusNotFound},
		{"run assessment", http.MethodPost, "/api/companies/" + testCompanyID + "/years/2024/assessments", middleware.RoleAccountant, nil, http.StatusCreated},
		{"non-numeric year", http.MethodPost, "/api/companies/" + testCompanyID + "/years/abc/assessments", middleware.RoleAccountant, nil, http.StatusBadRequest},
		{"service rejects year", http.MethodPost, "/api/companies/" + testCompanyID + "/years/1990/assessments", middleware.RoleAccountant, nil, http.StatusBadRequest},
		{"viewer cannot run", http.MethodPost, "/api/companies/" + testCompanyID + "/years/2024/assessments", middleware.RoleViewer, nil, http.StatusForbidden},
		{"assessment not found", http.MethodGet, "/api/assessments/" + testCompanyID, middleware.RoleViewer, nil, http.StatusNotFound},
		{"viewer previews", http.MethodPost, "/api/assessments/preview", middleware.RoleViewer, map[string]interface{}{
			"company": validCompany, "tax_year": 2024,
		}, http.StatusOK},
		{"empty batch", http.MethodPost, "/api/assessments/batch", middleware.RoleAdmin, map[string]interface{}{"targets": []interface{}{}}, http.StatusBadRequest},
		{"batch", http.MethodPost, "/api/assessments/batch", middleware.RoleAdmin, map[string]interface{}{
			"targets": []map[string]interface{}{{"company_id": testCompanyID, "tax_year": 2024}},
		}, http.StatusOK},
		{"bad tax_year filter", http.MethodGet, "/api/companies/" + testCompanyID + "/assessments?tax_year=x", middleware.RoleViewer, nil, http.StatusBadRequest},
		{"accountant cannot read audit", http.MethodGet, "/api/audit-logs", middleware.RoleAccountant, nil, http.StatusForbidden},
		{"admin reads audit", http.MethodGet, "/api/audit-logs", middleware.RoleAdmin, nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.path, tt.role, tt.body)
			if w.Code != tt.want {
				t.Fatalf("%s %s status=%d, want %d (%s)", tt.method, tt.path, w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestListCompaniesPagination(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/companies?page=2&limit=20", middleware.RoleViewer, nil)

	var body struct {
		Status string `json:"status"`
		Meta   struct {
			Page       int   `json:"page"`
			Total      int64 `json:"total"`
			TotalPages int64 `json:"total_pages"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Unmarshal err=%v", err)
	}
	if body.Status != "success" || body.Meta.Page != 2 || body.Meta.Total != 41 || body.Meta.TotalPages != 3 {
		t.Fatalf("body=%+v, want page 2 of 3", body)
	}
}

func TestRunAssessmentPassesYear(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/companies/"+testCompanyID+"/years/2023/assessments", middleware.RoleAdmin, nil)
	if w.Code != http.StatusCreated || env.assessments.ranYear != 2023 {
		t.Fatalf("status=%d year=%d, want 201 and 2023", w.Code, env.assessments.ranYear)
	}
}
