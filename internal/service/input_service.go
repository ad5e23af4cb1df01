package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taxcredit/internal/engine"
	"taxcredit/internal/model"
	"taxcredit/internal/repository"
)

const (
	minTaxYear = 2000
	maxTaxYear = 2100
)

// --- DTOs ---

// EmploymentRequest carries year-over-year figures; increases may be negative.
type EmploymentRequest struct {
	TotalEmployees    int64 `json:"total_employees" binding:"gte=0"`
	EmployeeIncrease  int64 `json:"employee_increase"`
	YouthEmployees    int64 `json:"youth_employees" binding:"gte=0"`
	DisabledEmployees int64 `json:"disabled_employees" binding:"gte=0"`
	CareerBreakWomen  int64 `json:"career_break_women" binding:"gte=0"`
	TotalPayroll      int64 `json:"total_payroll" binding:"gte=0"`
	InsurancePaid     int64 `json:"insurance_paid" binding:"gte=0"`
}

type InvestmentItemPayload struct {
	FacilityType string `json:"facility_type" binding:"required"`
	Amount       int64  `json:"amount" binding:"gte=0"`
	Description  string `json:"description"`
}

type InvestmentsRequest struct {
	Items []InvestmentItemPayload `json:"items" binding:"dive"`
}

type RndItemPayload struct {
	Category    string `json:"category" binding:"required"`
	Expense     int64  `json:"expense" binding:"gte=0"`
	Description string `json:"description"`
}

type RndRequest struct {
	Items []RndItemPayload `json:"items" binding:"dive"`
}

type OtherRequest struct {
	StartupDate               string `json:"startup_date"` // YYYY-MM-DD, optional
	IsYouthStartup            bool   `json:"is_youth_startup"`
	FounderAge                int    `json:"founder_age" binding:"gte=0"`
	RelocationCompleted       bool   `json:"relocation_completed"`
	SocialEnterpriseCertified bool   `json:"social_enterprise_certified"`
	SocialEnterpriseType      string `json:"social_enterprise_type"`
	DonationAmount            int64  `json:"donation_amount" binding:"gte=0"`
	DonationType              string `json:"donation_type"`
	BusinessIncome            int64  `json:"business_income"`
	CalculatedTax             int64  `json:"calculated_tax" binding:"gte=0"`
	VehicleCount              int64  `json:"vehicle_count" binding:"gte=0"`
	VehicleDepreciation       int64  `json:"vehicle_depreciation" binding:"gte=0"`
	VehicleRental             int64  `json:"vehicle_rental" binding:"gte=0"`
	VehicleFuel               int64  `json:"vehicle_fuel" binding:"gte=0"`
}

type YearInputsResponse struct {
	CompanyID   string                  `json:"company_id"`
	TaxYear     int                     `json:"tax_year"`
	Employment  *EmploymentRequest      `json:"employment"`
	Investments []InvestmentItemPayload `json:"investments"`
	Rnd         []RndItemPayload        `json:"rnd"`
	Other       *OtherRequest           `json:"other"`
}

// --- Interface ---

type InputService interface {
	GetInputs(ctx context.Context, companyID string, taxYear int) (YearInputsResponse, error)
	SaveEmployment(ctx context.Context, actor, companyID string, taxYear int, req EmploymentRequest) (YearInputsResponse, error)
	SaveInvestments(ctx context.Context, actor, companyID string, taxYear int, req InvestmentsRequest) (YearInputsResponse, error)
	SaveRnd(ctx context.Context, actor, companyID string, taxYear int, req RndRequest) (YearInputsResponse, error)
	SaveOther(ctx context.Context, actor, companyID string, taxYear int, req OtherRequest) (YearInputsResponse, error)
}

type inputService struct {
	companyRepo repository.CompanyRepository
	inputRepo   repository.InputRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewInputService(
	companyRepo repository.CompanyRepository,
	inputRepo repository.InputRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) InputService {
	return &inputService{
		companyRepo: companyRepo,
		inputRepo:   inputRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

// --- Implementation ---

func (s *inputService) GetInputs(ctx context.Context, companyID string, taxYear int) (YearInputsResponse, error) {
	company, err := s.target(ctx, companyID, taxYear)
	if err != nil {
		return YearInputsResponse{}, err
	}
	return s.load(ctx, company, taxYear)
}

func (s *inputService) SaveEmployment(ctx context.Context, actor, companyID string, taxYear int, req EmploymentRequest) (YearInputsResponse, error) {
	company, err := s.target(ctx, companyID, taxYear)
	if err != nil {
		return YearInputsResponse{}, err
	}

	data := model.EmploymentData{
		CompanyID:         company.ID,
		TaxYear:           taxYear,
		TotalEmployees:    req.TotalEmployees,
		EmployeeIncrease:  req.EmployeeIncrease,
		YouthEmployees:    req.YouthEmployees,
		DisabledEmployees: req.DisabledEmployees,
		CareerBreakWomen:  req.CareerBreakWomen,
		TotalPayroll:      req.TotalPayroll,
		InsurancePaid:     req.InsurancePaid,
	}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.inputRepo.UpsertEmployment(txCtx, &data); err != nil {
			return fmt.Errorf("failed to save employment data: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, actor, model.ActionSaveEmployment, company.ID.String(), company.Name, yearDetails(taxYear, req))
	})
	if err != nil {
		return YearInputsResponse{}, err
	}
	return s.load(ctx, company, taxYear)
}

func (s *inputService) SaveInvestments(ctx context.Context, actor, companyID string, taxYear int, req InvestmentsRequest) (YearInputsResponse, error) {
	company, err := s.target(ctx, companyID, taxYear)
	if err != nil {
		return YearInputsResponse{}, err
	}

	items := make([]model.InvestmentItem, 0, len(req.Items))
	for _, it := range req.Items {
		if err := validateInvestmentItem(it); err != nil {
			return YearInputsResponse{}, err
		}
		items = append(items, model.InvestmentItem{
			CompanyID:    company.ID,
			TaxYear:      taxYear,
			FacilityType: strings.TrimSpace(it.FacilityType),
			Amount:       it.Amount,
			Description:  it.Description,
		})
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.inputRepo.ReplaceInvestments(txCtx, company.ID, taxYear, items); err != nil {
			return fmt.Errorf("failed to save investment items: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, actor, model.ActionSaveInvestments, company.ID.String(), company.Name, yearDetails(taxYear, req))
	})
	if err != nil {
		return YearInputsResponse{}, err
	}
	return s.load(ctx, company, taxYear)
}

func (s *inputService) SaveRnd(ctx context.Context, actor, companyID string, taxYear int, req RndRequest) (YearInputsResponse, error) {
	company, err := s.target(ctx, companyID, taxYear)
	if err != nil {
		return YearInputsResponse{}, err
	}

	items := make([]model.RndItem, 0, len(req.Items))
	for _, it := range req.Items {
		if err := validateRndItem(it); err != nil {
			return YearInputsResponse{}, err
		}
		items = append(items, model.RndItem{
			CompanyID:   company.ID,
			TaxYear:     taxYear,
			Category:    strings.TrimSpace(it.Category),
			Expense:     it.Expense,
			Description: it.Description,
		})
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.inputRepo.ReplaceRnd(txCtx, company.ID, taxYear, items); err != nil {
			return fmt.Errorf("failed to save R&D items: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, actor, model.ActionSaveRnd, company.ID.String(), company.Name, yearDetails(taxYear, req))
	})
	if err != nil {
		return YearInputsResponse{}, err
	}
	return s.load(ctx, company, taxYear)
}

func (s *inputService) SaveOther(ctx context.Context, actor, companyID string, taxYear int, req OtherRequest) (YearInputsResponse, error) {
	company, err := s.target(ctx, companyID, taxYear)
	if err != nil {
		return YearInputsResponse{}, err
	}

	startup, err := parseOptionalDate(req.StartupDate)
	if err != nil {
		return YearInputsResponse{}, err
	}
	if err := validateOther(req); err != nil {
		return YearInputsResponse{}, err
	}

	data := model.OtherData{
		CompanyID:                 company.ID,
		TaxYear:                   taxYear,
		StartupDate:               startup,
		IsYouthStartup:            req.IsYouthStartup,
		FounderAge:                req.FounderAge,
		RelocationCompleted:       req.RelocationCompleted,
		SocialEnterpriseCertified: req.SocialEnterpriseCertified,
		SocialEnterpriseType:      engine.NormalizeTag(req.SocialEnterpriseType),
		DonationAmount:            req.DonationAmount,
		DonationType:              engine.NormalizeTag(req.DonationType),
		BusinessIncome:            req.BusinessIncome,
		CalculatedTax:             req.CalculatedTax,
		VehicleCount:              req.VehicleCount,
		VehicleDepreciation:       req.VehicleDepreciation,
		VehicleRental:             req.VehicleRental,
		VehicleFuel:               req.VehicleFuel,
	}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.inputRepo.UpsertOther(txCtx, &data); err != nil {
			return fmt.Errorf("failed to save other data: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, actor, model.ActionSaveOther, company.ID.String(), company.Name, yearDetails(taxYear, req))
	})
	if err != nil {
		return YearInputsResponse{}, err
	}
	return s.load(ctx, company, taxYear)
}

func (s *inputService) target(ctx context.Context, companyID string, taxYear int) (*model.Company, error) {
	if err := ValidateTaxYear(taxYear); err != nil {
		return nil, err
	}
	return findCompany(ctx, s.companyRepo, companyID)
}

func (s *inputService) load(ctx context.Context, company *model.Company, taxYear int) (YearInputsResponse, error) {
	inputs, err := s.inputRepo.LoadYear(ctx, company.ID, taxYear)
	if err != nil {
		return YearInputsResponse{}, fmt.Errorf("failed to load inputs: %w", err)
	}
	return toYearInputsResponse(company.ID.String(), taxYear, inputs), nil
}

// --- Helpers ---

// ValidateTaxYear rejects years outside the supported range.
func ValidateTaxYear(year int) error {
	if year < minTaxYear || year > maxTaxYear {
		return invalidf("tax year must be between %d and %d", minTaxYear, maxTaxYear)
	}
	return nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, invalidf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return &t, nil
}

func validateInvestmentItem(it InvestmentItemPayload) error {
	if strings.TrimSpace(it.FacilityType) == "" {
		return invalidf("facility_type is required")
	}
	if !engine.ValidFacilityType(it.FacilityType) {
		return invalidf("unknown facility_type %q", it.FacilityType)
	}
	return nil
}

func validateRndItem(it RndItemPayload) error {
	if strings.TrimSpace(it.Category) == "" {
		return invalidf("category is required")
	}
	if !engine.ValidRndCategory(it.Category) {
		return invalidf("unknown R&D category %q", it.Category)
	}
	return nil
}

// validateOther checks the free-text type fields. Both may be empty.
func validateOther(req OtherRequest) error {
	if !engine.ValidSocialEnterpriseType(req.SocialEnterpriseType) {
		return invalidf("social_enterprise_type must be %s or %s",
			engine.SocialEnterpriseTypeSocialEnterprise, engine.SocialEnterpriseTypeCooperative)
	}
	if !engine.ValidDonationType(req.DonationType) {
		return invalidf("donation_type must be %s or %s", engine.DonationTypeStatutory, engine.DonationTypeDesignated)
	}
	return nil
}

func yearDetails(taxYear int, payload interface{}) map[string]interface{} {
	return map[string]interface{}{"tax_year": taxYear, "payload": payload}
}

func toEmploymentBundle(req EmploymentRequest) *engine.EmploymentBundle {
	return &engine.EmploymentBundle{
		TotalEmployees:    req.TotalEmployees,
		EmployeeIncrease:  req.EmployeeIncrease,
		YouthEmployees:    req.YouthEmployees,
		DisabledEmployees: req.DisabledEmployees,
		CareerBreakWomen:  req.CareerBreakWomen,
		TotalPayroll:      req.TotalPayroll,
		InsurancePaid:     req.InsurancePaid,
	}
}

func toOtherBundle(req OtherRequest) (*engine.OtherBundle, error) {
	startup, err := parseOptionalDate(req.StartupDate)
	if err != nil {
		return nil, err
	}
	if err := validateOther(req); err != nil {
		return nil, err
	}
	return &engine.OtherBundle{
		StartupDate:               startup,
		IsYouthStartup:            req.IsYouthStartup,
		FounderAge:                req.FounderAge,
		RelocationCompleted:       req.RelocationCompleted,
		SocialEnterpriseCertified: req.SocialEnterpriseCertified,
		SocialEnterpriseType:      req.SocialEnterpriseType,
		DonationAmount:            req.DonationAmount,
		DonationType:              req.DonationType,
		BusinessIncome:            req.BusinessIncome,
		CalculatedTax:             req.CalculatedTax,
		VehicleCount:              req.VehicleCount,
		VehicleDepreciation:       req.VehicleDepreciation,
		VehicleRental:             req.VehicleRental,
		VehicleFuel:               req.VehicleFuel,
	}, nil
}

func toYearInputsResponse(companyID string, taxYear int, in repository.YearInputs) YearInputsResponse {
	resp := YearInputsResponse{
		CompanyID:   companyID,
		TaxYear:     taxYear,
		Investments: make([]InvestmentItemPayload, 0, len(in.Investments)),
		Rnd:         make([]RndItemPayload, 0, len(in.Rnd)),
	}
	if e := in.Employment; e != nil {
		resp.Employment = &EmploymentRequest{
			TotalEmployees:    e.TotalEmployees,
			EmployeeIncrease:  e.EmployeeIncrease,
			YouthEmployees:    e.YouthEmployees,
			DisabledEmployees: e.DisabledEmployees,
			CareerBreakWomen:  e.CareerBreakWomen,
			TotalPayroll:      e.TotalPayroll,
			InsurancePaid:     e.InsurancePaid,
		}
	}
	for _, it := range in.Investments {
		resp.Investments = append(resp.Investments, InvestmentItemPayload{FacilityType: it.FacilityType, Amount: it.Amount, Description: it.Description})
	}
	for _, it := range in.Rnd {
		resp.Rnd = append(resp.Rnd, RndItemPayload{Category: it.Category, Expense: it.Expense, Description: it.Description})
	}
	if o := in.Other; o != nil {
		other := &OtherRequest{
			IsYouthStartup:            o.IsYouthStartup,
			FounderAge:                o.FounderAge,
			RelocationCompleted:       o.RelocationCompleted,
			SocialEnterpriseCertified: o.SocialEnterpriseCertified,
			SocialEnterpriseType:      o.SocialEnterpriseType,
			DonationAmount:            o.DonationAmount,
			DonationType:              o.DonationType,
			BusinessIncome:            o.BusinessIncome,
			CalculatedTax:             o.CalculatedTax,
			VehicleCount:              o.VehicleCount,
			VehicleDepreciation:       o.VehicleDepreciation,
			VehicleRental:             o.VehicleRental,
			VehicleFuel:               o.VehicleFuel,
		}
		if o.StartupDate != nil {
			other.StartupDate = o.StartupDate.Format("2006-01-02")
		}
		resp.Other = other
	}
	return resp
}

// toEvaluationContext assembles the engine input from stored rows.
func toEvaluationContext(company model.Company, taxYear int, in repository.YearInputs) engine.EvaluationContext {
	ec := engine.EvaluationContext{
		Company: toCompanyProfile(company),
		TaxYear: taxYear,
	}
	if e := in.Employment; e != nil {
		ec.Employment = &engine.EmploymentBundle{
			TotalEmployees:    e.TotalEmployees,
			EmployeeIncrease:  e.EmployeeIncrease,
			YouthEmployees:    e.YouthEmployees,
			DisabledEmployees: e.DisabledEmployees,
			CareerBreakWomen:  e.CareerBreakWomen,
			TotalPayroll:      e.TotalPayroll,
			InsurancePaid:     e.InsurancePaid,
		}
	}
	for _, it := range in.Investments {
		ec.Investments = append(ec.Investments, engine.InvestmentItem{FacilityType: it.FacilityType, Amount: it.Amount})
	}
	for _, it := range in.Rnd {
		ec.Rnd = append(ec.Rnd, engine.RndItem{Category: it.Category, Expense: it.Expense})
	}
	if o := in.Other; o != nil {
		ec.Other = &engine.OtherBundle{
			StartupDate:               o.StartupDate,
			IsYouthStartup:            o.IsYouthStartup,
			FounderAge:                o.FounderAge,
			RelocationCompleted:       o.RelocationCompleted,
			SocialEnterpriseCertified: o.SocialEnterpriseCertified,
			SocialEnterpriseType:      o.SocialEnterpriseType,
			DonationAmount:            o.DonationAmount,
			DonationType:              o.DonationType,
			BusinessIncome:            o.BusinessIncome,
			CalculatedTax:             o.CalculatedTax,
			VehicleCount:              o.VehicleCount,
			VehicleDepreciation:       o.VehicleDepreciation,
			VehicleRental:             o.VehicleRental,
			VehicleFuel:               o.VehicleFuel,
		}
	}
	return ec
}
