package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"taxcredit/internal/engine"
	"taxcredit/internal/model"
	"taxcredit/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type RegisterCompanyRequest struct {
	RegistrationNumber string `json:"registration_number" binding:"required"`
	Name               string `json:"name" binding:"required"`
	CEOName            string `json:"ceo_name"`
	Size               string `json:"size" binding:"required,oneof=small_medium mid_size large"`
	Industry           string `json:"industry" binding:"required,oneof=manufacturing mining construction wholesale retail service it other"`
	Location           string `json:"location"`
	IsCapitalRegion    bool   `json:"is_capital_region"`
}

type CompanyResponse struct {
	ID                 string `json:"id"`
	RegistrationNumber string `json:"registration_number"`
	Name               string `json:"name"`
	CEOName            string `json:"ceo_name"`
	Size               string `json:"size"`
	Industry           string `json:"industry"`
	Location           string `json:"location"`
	IsCapitalRegion    bool   `json:"is_capital_region"`
	CreatedAt          string `json:"created_at"`
}

// --- Interface ---

type CompanyService interface {
	// RegisterCompany is idempotent on the registration number: a repeat
	// registration returns the stored company with created=false.
	RegisterCompany(ctx context.Context, actor string, req RegisterCompanyRequest) (CompanyResponse, bool, error)
	GetCompany(ctx context.Context, id string) (CompanyResponse, error)
	ListCompanies(ctx context.Context, search string, page, limit int) ([]CompanyResponse, int64, error)
}

type companyService struct {
	companyRepo repository.CompanyRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewCompanyService(
	companyRepo repository.CompanyRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) CompanyService {
	return &companyService{
		companyRepo: companyRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

// --- Implementation ---

func (s *companyService) RegisterCompany(ctx context.Context, actor string, req RegisterCompanyRequest) (CompanyResponse, bool, error) {
	regNo, err := NormalizeRegistrationNumber(req.RegistrationNumber)
	if err != nil {
		return CompanyResponse{}, false, err
	}
	if !engine.Size(req.Size).Valid() {
		return CompanyResponse{}, false, invalidf("unknown size %q", req.Size)
	}
	if !engine.Industry(req.Industry).Valid() {
		return CompanyResponse{}, false, invalidf("unknown industry %q", req.Industry)
	}
	if strings.TrimSpace(req.Name) == "" {
		return CompanyResponse{}, false, invalidf("name is required")
	}

	company := model.Company{
		RegistrationNumber: regNo,
		Name:               strings.TrimSpace(req.Name),
		CEOName:            strings.TrimSpace(req.CEOName),
		Size:               req.Size,
		Industry:           req.Industry,
		Location:           strings.TrimSpace(req.Location),
		IsCapitalRegion:    req.IsCapitalRegion,
	}

	var created bool
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.companyRepo.CreateIfAbsent(txCtx, &company)
		if createErr != nil {
			return fmt.Errorf("failed to register company: %w", createErr)
		}
		if !created {
			return nil
		}
		return writeAudit(txCtx, s.auditRepo, actor, model.ActionRegisterCompany, company.ID.String(), company.Name, req)
	})
	if err != nil {
		return CompanyResponse{}, false, err
	}

	return toCompanyResponse(company), created, nil
}

func (s *companyService) GetCompany(ctx context.Context, id string) (CompanyResponse, error) {
	company, err := s.findCompany(ctx, id)
	if err != nil {
		return CompanyResponse{}, err
	}
	return toCompanyResponse(*company), nil
}

func (s *companyService) ListCompanies(ctx context.Context, search string, page, limit int) ([]CompanyResponse, int64, error) {
	companies, total, err := s.companyRepo.List(ctx, strings.TrimSpace(search), page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch companies: %w", err)
	}

	res := make([]CompanyResponse, 0, len(companies))
	for _, c := range companies {
		res = append(res, toCompanyResponse(c))
	}
	return res, total, nil
}

func (s *companyService) findCompany(ctx context.Context, id string) (*model.Company, error) {
	return findCompany(ctx, s.companyRepo, id)
}

// --- Helpers ---

// NormalizeRegistrationNumber strips separators from a business registration
// number and requires exactly 10 digits.
func NormalizeRegistrationNumber(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
		default:
			return "", invalidf("registration number contains %q", r)
		}
	}
	if b.Len() != 10 {
		return "", invalidf("registration number must have 10 digits")
	}
	return b.String(), nil
}

func findCompany(ctx context.Context, repo repository.CompanyRepository, id string) (*model.Company, error) {
	companyID, err := uuid.Parse(id)
	if err != nil {
		return nil, invalidf("invalid company id")
	}
	company, err := repo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to fetch company: %w", err)
	}
	return company, nil
}

func toCompanyProfile(c model.Company) engine.CompanyProfile {
	return engine.CompanyProfile{
		ID:                 c.ID.String(),
		RegistrationNumber: c.RegistrationNumber,
		Name:               c.Name,
		CEOName:            c.CEOName,
		Size:               engine.Size(c.Size),
		Industry:           engine.Industry(c.Industry),
		Location:           c.Location,
		IsCapitalRegion:    c.IsCapitalRegion,
	}
}

func toCompanyResponse(c model.Company) CompanyResponse {
	return CompanyResponse{
		ID:                 c.ID.String(),
		RegistrationNumber: c.RegistrationNumber,
		Name:               c.Name,
		CEOName:            c.CEOName,
		Size:               c.Size,
		Industry:           c.Industry,
		Location:           c.Location,
		IsCapitalRegion:    c.IsCapitalRegion,
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
	}
}
