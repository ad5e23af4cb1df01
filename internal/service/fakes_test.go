package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"taxcredit/internal/model"
	"taxcredit/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeCompanyRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]model.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{byID: map[uuid.UUID]model.Company{}}
}

func (r *fakeCompanyRepo) CreateIfAbsent(_ context.Context, company *model.Company) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.RegistrationNumber == company.RegistrationNumber {
			*company = c
			return false, nil
		}
	}
	company.ID = uuid.New()
	company.CreatedAt = time.Now()
	r.byID[company.ID] = *company
	return true, nil
}

func (r *fakeCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeCompanyRepo) FindByRegistrationNumber(_ context.Context, regNo string) (*model.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.RegistrationNumber == regNo {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCompanyRepo) List(_ context.Context, search string, page, limit int) ([]model.Company, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Company
	for _, c := range r.byID {
		if search == "" || strings.Contains(c.Name, search) || strings.Contains(c.RegistrationNumber, search) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

type yearKey struct {
	company uuid.UUID
	year    int
}

type fakeInputRepo struct {
	mu     sync.Mutex
	inputs map[yearKey]repository.YearInputs
}

func newFakeInputRepo() *fakeInputRepo {
	return &fakeInputRepo{inputs: map[yearKey]repository.YearInputs{}}
}

func (r *fakeInputRepo) UpsertEmployment(_ context.Context, data *model.EmploymentData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := yearKey{data.CompanyID, data.TaxYear}
	in := r.inputs[k]
	cp := *data
	in.Employment = &cp
	r.inputs[k] = in
	return nil
}

func (r *fakeInputRepo) UpsertOther(_ context.Context, data *model.OtherData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := yearKey{data.CompanyID, data.TaxYear}
	in := r.inputs[k]
	cp := *data
	in.Other = &cp
	r.inputs[k] = in
	return nil
}

func (r *fakeInputRepo) ReplaceInvestments(_ context.Context, companyID uuid.UUID, taxYear int, items []model.InvestmentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := yearKey{companyID, taxYear}
	in := r.inputs[k]
	in.Investments = append([]model.InvestmentItem(nil), items...)
	r.inputs[k] = in
	return nil
}

func (r *fakeInputRepo) ReplaceRnd(_ context.Context, companyID uuid.UUID, taxYear int, items []model.RndItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := yearKey{companyID, taxYear}
	in := r.inputs[k]
	in.Rnd = append([]model.RndItem(nil), items...)
	r.inputs[k] = in
	return nil
}

func (r *fakeInputRepo) LoadYear(_ context.Context, companyID uuid.UUID, taxYear int) (repository.YearInputs, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inputs[yearKey{companyID, taxYear}], nil
}

type fakeRuleRepo struct {
	mu    sync.Mutex
	rules map[int]model.CreditRule
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: map[int]model.CreditRule{}}
}

func (r *fakeRuleRepo) UpsertAll(_ context.Context, rules []model.CreditRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rule := range rules {
		r.rules[rule.ID] = rule
	}
	return nil
}

func (r *fakeRuleRepo) List(_ context.Context) ([]model.CreditRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.CreditRule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRuleRepo) FindByID(_ context.Context, id int) (*model.CreditRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &rule, nil
}

type fakeAssessmentRepo struct {
	mu        sync.Mutex
	companies *fakeCompanyRepo
	sessions  []model.AssessmentSession
}

func (r *fakeAssessmentRepo) Create(_ context.Context, session *model.AssessmentSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session.CreatedAt = time.Now()
	r.sessions = append(r.sessions, *session)
	return nil
}

func (r *fakeAssessmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AssessmentSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ID == id {
			if c, err := r.companies.FindByID(ctx, s.CompanyID); err == nil {
				s.Company = c
			}
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAssessmentRepo) ListByCompany(_ context.Context, companyID uuid.UUID, taxYear int, page, limit int) ([]model.AssessmentSession, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.AssessmentSession
	for i := len(r.sessions) - 1; i >= 0; i-- {
		s := r.sessions[i]
		if s.CompanyID != companyID || (taxYear > 0 && s.TaxYear != taxYear) {
			continue
		}
		s.Results = nil
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAssessmentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []model.AuditLog
}

func (r *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, action string, page, limit int) ([]model.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.AuditLog
	for _, e := range r.entries {
		if action == "" || e.Action == action {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAuditRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type publishedEvent struct {
	Type    string
	Payload interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{eventType, payload})
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// fixture wires every service over the fakes.
type fixture struct {
	companies   *fakeCompanyRepo
	inputs      *fakeInputRepo
	rules       *fakeRuleRepo
	assessments *fakeAssessmentRepo
	audit       *fakeAuditRepo
	publisher   *fakePublisher

	companySvc    CompanyService
	inputSvc      InputService
	ruleSvc       RuleService
	assessmentSvc AssessmentService
}

func newFixture() *fixture {
	f := &fixture{
		companies: newFakeCompanyRepo(),
		inputs:    newFakeInputRepo(),
		rules:     newFakeRuleRepo(),
		audit:     &fakeAuditRepo{},
		publisher: &fakePublisher{},
	}
	f.assessments = &fakeAssessmentRepo{companies: f.companies}
	f.companySvc = NewCompanyService(f.companies, f.audit, fakeTx{})
	f.inputSvc = NewInputService(f.companies, f.inputs, f.audit, fakeTx{})
	f.ruleSvc = NewRuleService(f.rules, f.audit, fakeTx{})
	return f
}

// withCatalog syncs the catalog and builds the assessment service over it.
func (f *fixture) withCatalog(concurrency int) *fixture {
	catalog, err := f.ruleSvc.SyncCatalog(context.Background())
	if err != nil {
		panic(err)
	}
	f.assessmentSvc = NewAssessmentService(catalog, f.companies, f.inputs, f.assessments, f.audit, fakeTx{}, f.publisher, nil, concurrency)
	return f
}

func (f *fixture) register(regNo, name, size, industry string, capital bool) CompanyResponse {
	res, _, err := f.companySvc.RegisterCompany(context.Background(), "", RegisterCompanyRequest{
		RegistrationNumber: regNo,
		Name:               name,
		Size:               size,
		Industry:           industry,
		IsCapitalRegion:    capital,
	})
	if err != nil {
		panic(err)
	}
	return res
}
