package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"taxcredit/internal/engine"
	"taxcredit/internal/model"
	"taxcredit/internal/platform/logger"
	"taxcredit/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventAssessmentCompleted is published after an assessment is stored.
const EventAssessmentCompleted = "assessment.completed"

// EventPublisher pushes realtime events to connected clients.
type EventPublisher interface {
	Publish(eventType string, payload interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}

// --- DTOs ---

type AssessmentResultResponse struct {
	RuleID       int             `json:"rule_id"`
	RuleName     string          `json:"rule_name"`
	Category     string          `json:"category"`
	Eligible     bool            `json:"eligible"`
	CreditAmount int64           `json:"credit_amount"`
	Reasons      string          `json:"reasons"`
	Details      json.RawMessage `json:"details"`
}

type AssessmentResponse struct {
	ID            string                     `json:"id,omitempty"`
	CompanyID     string                     `json:"company_id"`
	CompanyName   string                     `json:"company_name"`
	TaxYear       int                        `json:"tax_year"`
	TotalCredit   int64                      `json:"total_credit"`
	EligibleCount int                        `json:"eligible_count"`
	Results       []AssessmentResultResponse `json:"results,omitempty"`
	CreatedAt     string                     `json:"created_at,omitempty"`
}

// PreviewRequest evaluates the catalog against inline data without storing it.
type PreviewRequest struct {
	Company     RegisterCompanyRequest  `json:"company" binding:"required"`
	TaxYear     int                     `json:"tax_year" binding:"required"`
	Employment  *EmploymentRequest      `json:"employment"`
	Investments []InvestmentItemPayload `json:"investments" binding:"dive"`
	Rnd         []RndItemPayload        `json:"rnd" binding:"dive"`
	Other       *OtherRequest           `json:"other"`
}

type BatchTarget struct {
	CompanyID string `json:"company_id" binding:"required"`
	TaxYear   int    `json:"tax_year" binding:"required"`
}

type BatchAssessmentRequest struct {
	Targets []BatchTarget `json:"targets" binding:"required,min=1,max=200,dive"`
}

type BatchItemResponse struct {
	CompanyID     string `json:"company_id"`
	TaxYear       int    `json:"tax_year"`
	AssessmentID  string `json:"assessment_id,omitempty"`
	TotalCredit   int64  `json:"total_credit"`
	EligibleCount int    `json:"eligible_count"`
	Error         string `json:"error,omitempty"`
}

type BatchAssessmentResponse struct {
	Items     []BatchItemResponse `json:"items"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

// --- Interface ---

type AssessmentService interface {
	RunAssessment(ctx context.Context, actor, companyID string, taxYear int) (AssessmentResponse, error)
	RunBatch(ctx context.Context, actor string, req BatchAssessmentRequest) (BatchAssessmentResponse, error)
	Preview(ctx context.Context, req PreviewRequest) (AssessmentResponse, error)
	GetAssessment(ctx context.Context, id string) (AssessmentResponse, error)
	ListAssessments(ctx context.Context, companyID string, taxYear, page, limit int) ([]AssessmentResponse, int64, error)
}

type assessmentService struct {
	catalog          []engine.RuleDefinition
	companyRepo      repository.CompanyRepository
	inputRepo        repository.InputRepository
	assessmentRepo   repository.AssessmentRepository
	auditRepo        repository.AuditRepository
	txManager        repository.TransactionManager
	publisher        EventPublisher
	log              *logger.Logger
	batchConcurrency int
}

func NewAssessmentService(
	catalog []engine.RuleDefinition,
	companyRepo repository.CompanyRepository,
	inputRepo repository.InputRepository,
	assessmentRepo repository.AssessmentRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	publisher EventPublisher,
	log *logger.Logger,
	batchConcurrency int,
) AssessmentService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if batchConcurrency <= 0 {
		batchConcurrency = 1
	}
	rules := make([]engine.RuleDefinition, len(catalog))
	copy(rules, catalog)
	return &assessmentService{
		catalog:          rules,
		companyRepo:      companyRepo,
		inputRepo:        inputRepo,
		assessmentRepo:   assessmentRepo,
		auditRepo:        auditRepo,
		txManager:        txManager,
		publisher:        publisher,
		log:              log.With("service", "assessment"),
		batchConcurrency: batchConcurrency,
	}
}

// --- Implementation ---

func (s *assessmentService) RunAssessment(ctx context.Context, actor, companyID string, taxYear int) (AssessmentResponse, error) {
	if err := ValidateTaxYear(taxYear); err != nil {
		return AssessmentResponse{}, err
	}
	company, err := findCompany(ctx, s.companyRepo, companyID)
	if err != nil {
		return AssessmentResponse{}, err
	}

	inputs, err := s.inputRepo.LoadYear(ctx, company.ID, taxYear)
	if err != nil {
		return AssessmentResponse{}, fmt.Errorf("failed to load inputs: %w", err)
	}

	result := engine.RunAssessment(s.catalog, toEvaluationContext(*company, taxYear, inputs))

	session, err := toSessionModel(company.ID, taxYear, result)
	if err != nil {
		return AssessmentResponse{}, err
	}
	if parsed, parseErr := uuid.Parse(actor); parseErr == nil {
		session.RunBy = &parsed
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.assessmentRepo.Create(txCtx, &session); err != nil {
			return fmt.Errorf("failed to store assessment: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, actor, model.ActionRunAssessment, session.ID.String(), company.Name, map[string]interface{}{
			"company_id":     company.ID.String(),
			"tax_year":       taxYear,
			"total_credit":   result.TotalCredit,
			"eligible_count": result.EligibleCount,
		})
	})
	if err != nil {
		return AssessmentResponse{}, err
	}

	s.log.Info("assessment completed",
		"assessment_id", session.ID.String(),
		"company_id", company.ID.String(),
		"tax_year", taxYear,
		"total_credit", result.TotalCredit,
		"eligible_count", result.EligibleCount,
	)

	resp := toAssessmentResponse(session, company.Name)
	s.publisher.Publish(EventAssessmentCompleted, AssessmentResponse{
		ID:            resp.ID,
		CompanyID:     resp.CompanyID,
		CompanyName:   resp.CompanyName,
		TaxYear:       resp.TaxYear,
		TotalCredit:   resp.TotalCredit,
		EligibleCount: resp.EligibleCount,
		CreatedAt:     resp.CreatedAt,
	})
	return resp, nil
}

// RunBatch assesses every target with bounded concurrency. A failing target
// is reported in its item and does not stop the others.
func (s *assessmentService) RunBatch(ctx context.Context, actor string, req BatchAssessmentRequest) (BatchAssessmentResponse, error) {
	items := make([]BatchItemResponse, len(req.Targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, target := range req.Targets {
		i, target := i, target
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			item := BatchItemResponse{CompanyID: target.CompanyID, TaxYear: target.TaxYear}
			res, err := s.RunAssessment(gctx, actor, target.CompanyID, target.TaxYear)
			if err != nil {
				item.Error = err.Error()
				s.log.Warn("batch assessment item failed", "company_id", target.CompanyID, "tax_year", target.TaxYear, "error", err)
			} else {
				item.AssessmentID = res.ID
				item.TotalCredit = res.TotalCredit
				item.EligibleCount = res.EligibleCount
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchAssessmentResponse{}, fmt.Errorf("batch assessment interrupted: %w", err)
	}

	resp := BatchAssessmentResponse{Items: items}
	for _, it := range items {
		if it.Error == "" {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}

	if err := writeAudit(ctx, s.auditRepo, actor, model.ActionRunBatchAssessment, "", "batch", map[string]int{
		"targets":   len(req.Targets),
		"succeeded": resp.Succeeded,
		"failed":    resp.Failed,
	}); err != nil {
		s.log.Warn("failed to audit batch assessment", "error", err)
	}
	return resp, nil
}

func (s *assessmentService) Preview(ctx context.Context, req PreviewRequest) (AssessmentResponse, error) {
	if err := ValidateTaxYear(req.TaxYear); err != nil {
		return AssessmentResponse{}, err
	}
	if !engine.Size(req.Company.Size).Valid() {
		return AssessmentResponse{}, invalidf("unknown size %q", req.Company.Size)
	}
	if !engine.Industry(req.Company.Industry).Valid() {
		return AssessmentResponse{}, invalidf("unknown industry %q", req.Company.Industry)
	}

	ec := engine.EvaluationContext{
		Company: engine.CompanyProfile{
			RegistrationNumber: req.Company.RegistrationNumber,
			Name:               req.Company.Name,
			CEOName:            req.Company.CEOName,
			Size:               engine.Size(req.Company.Size),
			Industry:           engine.Industry(req.Company.Industry),
			Location:           req.Company.Location,
			IsCapitalRegion:    req.Company.IsCapitalRegion,
		},
		TaxYear: req.TaxYear,
	}
	if req.Employment != nil {
		ec.Employment = toEmploymentBundle(*req.Employment)
	}
	for _, it := range req.Investments {
		if err := validateInvestmentItem(it); err != nil {
			return AssessmentResponse{}, err
		}
		ec.Investments = append(ec.Investments, engine.InvestmentItem{FacilityType: it.FacilityType, Amount: it.Amount})
	}
	for _, it := range req.Rnd {
		if err := validateRndItem(it); err != nil {
			return AssessmentResponse{}, err
		}
		ec.Rnd = append(ec.Rnd, engine.RndItem{Category: it.Category, Expense: it.Expense})
	}
	if req.Other != nil {
		other, err := toOtherBundle(*req.Other)
		if err != nil {
			return AssessmentResponse{}, err
		}
		ec.Other = other
	}

	result := engine.RunAssessment(s.catalog, ec)
	resp := AssessmentResponse{
		CompanyName:   req.Company.Name,
		TaxYear:       req.TaxYear,
		TotalCredit:   result.TotalCredit,
		EligibleCount: result.EligibleCount,
		Results:       make([]AssessmentResultResponse, 0, len(result.Outcomes)),
	}
	for _, out := range result.Outcomes {
		details, err := json.Marshal(out.Details)
		if err != nil {
			return AssessmentResponse{}, fmt.Errorf("failed to encode details for rule %d: %w", out.RuleID, err)
		}
		resp.Results = append(resp.Results, AssessmentResultResponse{
			RuleID:       out.RuleID,
			RuleName:     out.RuleName,
			Category:     string(out.Category),
			Eligible:     out.Eligible,
			CreditAmount: out.CreditAmount,
			Reasons:      out.Reasons,
			Details:      details,
		})
	}
	return resp, nil
}

func (s *assessmentService) GetAssessment(ctx context.Context, id string) (AssessmentResponse, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return AssessmentResponse{}, invalidf("invalid assessment id")
	}
	session, err := s.assessmentRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssessmentResponse{}, ErrAssessmentNotFound
		}
		return AssessmentResponse{}, fmt.Errorf("failed to fetch assessment: %w", err)
	}

	name := ""
	if session.Company != nil {
		name = session.Company.Name
	}
	return toAssessmentResponse(*session, name), nil
}

func (s *assessmentService) ListAssessments(ctx context.Context, companyID string, taxYear, page, limit int) ([]AssessmentResponse, int64, error) {
	company, err := findCompany(ctx, s.companyRepo, companyID)
	if err != nil {
		return nil, 0, err
	}
	if taxYear != 0 {
		if err := ValidateTaxYear(taxYear); err != nil {
			return nil, 0, err
		}
	}

	sessions, total, err := s.assessmentRepo.ListByCompany(ctx, company.ID, taxYear, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch assessments: %w", err)
	}

	res := make([]AssessmentResponse, 0, len(sessions))
	for _, sess := range sessions {
		res = append(res, toAssessmentResponse(sess, company.Name))
	}
	return res, total, nil
}

// --- Helpers ---

func toSessionModel(companyID uuid.UUID, taxYear int, result engine.Assessment) (model.AssessmentSession, error) {
	session := model.AssessmentSession{
		ID:            uuid.New(),
		CompanyID:     companyID,
		TaxYear:       taxYear,
		TotalCredit:   result.TotalCredit,
		EligibleCount: result.EligibleCount,
		Results:       make([]model.AssessmentResult, 0, len(result.Outcomes)),
	}
	for _, out := range result.Outcomes {
		details, err := json.Marshal(out.Details)
		if err != nil {
			return model.AssessmentSession{}, fmt.Errorf("failed to encode details for rule %d: %w", out.RuleID, err)
		}
		session.Results = append(session.Results, model.AssessmentResult{
			SessionID:    session.ID,
			RuleID:       out.RuleID,
			RuleName:     out.RuleName,
			Category:     string(out.Category),
			Eligible:     out.Eligible,
			CreditAmount: out.CreditAmount,
			Reasons:      out.Reasons,
			Details:      datatypes.JSON(details),
		})
	}
	return session, nil
}

func toAssessmentResponse(s model.AssessmentSession, companyName string) AssessmentResponse {
	resp := AssessmentResponse{
		ID:            s.ID.String(),
		CompanyID:     s.CompanyID.String(),
		CompanyName:   companyName,
		TaxYear:       s.TaxYear,
		TotalCredit:   s.TotalCredit,
		EligibleCount: s.EligibleCount,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}
	if len(s.Results) > 0 {
		resp.Results = make([]AssessmentResultResponse, 0, len(s.Results))
		for _, r := range s.Results {
			details := json.RawMessage(r.Details)
			if len(details) == 0 {
				details = json.RawMessage("{}")
			}
			resp.Results = append(resp.Results, AssessmentResultResponse{
				RuleID:       r.RuleID,
				RuleName:     r.RuleName,
				Category:     r.Category,
				Eligible:     r.Eligible,
				CreditAmount: r.CreditAmount,
				Reasons:      r.Reasons,
				Details:      details,
			})
		}
	}
	return resp
}
