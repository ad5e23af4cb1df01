package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"taxcredit/internal/engine"
	"taxcredit/internal/model"

	"github.com/google/uuid"
)

func seedEmployment(t *testing.T, f *fixture, companyID string, year int) {
	t.Helper()
	_, err := f.inputSvc.SaveEmployment(context.Background(), "", companyID, year, EmploymentRequest{
		TotalEmployees:   40,
		EmployeeIncrease: 3,
		YouthEmployees:   2,
	})
	if err != nil {
		t.Fatalf("SaveEmployment err=%v", err)
	}
}

func TestRunAssessmentPersistsAndPublishes(t *testing.T) {
	f := newFixture().withCatalog(2)
	ctx := context.Background()
	c := f.register("1234567890", "Hanbit Precision", "small_medium", "manufacturing", false)
	seedEmployment(t, f, c.ID, 2024)

	actor := uuid.NewString()
	res, err := f.assessmentSvc.RunAssessment(ctx, actor, c.ID, 2024)
	if err != nil {
		t.Fatalf("RunAssessment err=%v", err)
	}

	if len(res.Results) != engine.RuleCount {
		t.Fatalf("len(Results)=%d, want %d", len(res.Results), engine.RuleCount)
	}
	// 3 x 12,000,000 + 2 x 12,000,000
	if res.TotalCredit != 60_000_000 || res.EligibleCount != 2 {
		t.Fatalf("total=%d eligible=%d, want 60000000 and 2", res.TotalCredit, res.EligibleCount)
	}
	var sum int64
	for _, r := range res.Results {
		if !r.Eligible && r.CreditAmount != 0 {
			t.Fatalf("rule %d ineligible with credit %d", r.RuleID, r.CreditAmount)
		}
		if r.Eligible {
			sum += r.CreditAmount
		}
		if !json.Valid(r.Details) {
			t.Fatalf("rule %d details not valid JSON: %s", r.RuleID, r.Details)
		}
	}
	if sum != res.TotalCredit {
		t.Fatalf("sum of eligible credits=%d, want %d", sum, res.TotalCredit)
	}

	if f.assessments.count() != 1 {
		t.Fatalf("stored sessions=%d, want 1", f.assessments.count())
	}
	stored := f.assessments.sessions[0]
	if stored.RunBy == nil || stored.RunBy.String() != actor {
		t.Fatalf("RunBy=%v, want %s", stored.RunBy, actor)
	}

	if f.publisher.count() != 1 || f.publisher.events[0].Type != EventAssessmentCompleted {
		t.Fatalf("published=%+v, want one %s", f.publisher.events, EventAssessmentCompleted)
	}
	actions := f.audit.actions()
	if actions[len(actions)-1] != model.ActionRunAssessment {
		t.Fatalf("last audit action=%q, want %s", actions[len(actions)-1], model.ActionRunAssessment)
	}

	got, err := f.assessmentSvc.GetAssessment(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetAssessment err=%v", err)
	}
	if got.CompanyName != "Hanbit Precision" || got.TotalCredit != res.TotalCredit || len(got.Results) != engine.RuleCount {
		t.Fatalf("GetAssessment=%+v, want stored session", got)
	}
}

func TestRunAssessmentMatchesEngine(t *testing.T) {
	f := newFixture().withCatalog(1)
	ctx := context.Background()
	c := f.register("5555555555", "Mirror Co", "mid_size", "it", true)
	seedEmployment(t, f, c.ID, 2024)

	res, err := f.assessmentSvc.RunAssessment(ctx, "", c.ID, 2024)
	if err != nil {
		t.Fatalf("RunAssessment err=%v", err)
	}

	company, _ := f.companies.FindByID(ctx, uuid.MustParse(c.ID))
	inputs, _ := f.inputs.LoadYear(ctx, company.ID, 2024)
	want := engine.RunAssessment(engine.Catalog(), toEvaluationContext(*company, 2024, inputs))

	if res.TotalCredit != want.TotalCredit || res.EligibleCount != want.EligibleCount {
		t.Fatalf("service=(%d,%d), engine=(%d,%d)", res.TotalCredit, res.EligibleCount, want.TotalCredit, want.EligibleCount)
	}
	for i, out := range want.Outcomes {
		if res.Results[i].RuleID != out.RuleID || res.Results[i].CreditAmount != out.CreditAmount {
			t.Fatalf("result[%d]=%+v, engine=%+v", i, res.Results[i], out)
		}
	}
}

func TestRunAssessmentErrors(t *testing.T) {
	f := newFixture().withCatalog(1)
	ctx := context.Background()
	c := f.register("1234567890", "Err Co", "large", "retail", false)

	tests := []struct {
		name    string
		company string
		year    int
		want    error
	}{
		{"bad year", c.ID, 1800, ErrInvalidInput},
		{"bad id", "nope", 2024, ErrInvalidInput},
		{"unknown company", uuid.NewString(), 2024, ErrCompanyNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.assessmentSvc.RunAssessment(ctx, "", tt.company, tt.year); !errors.Is(err, tt.want) {
				t.Fatalf("err=%v, want %v", err, tt.want)
			}
		})
	}
	if f.assessments.count() != 0 || f.publisher.count() != 0 {
		t.Fatalf("failed runs stored %d sessions and published %d events", f.assessments.count(), f.publisher.count())
	}

	if _, err := f.assessmentSvc.GetAssessment(ctx, uuid.NewString()); !errors.Is(err, ErrAssessmentNotFound) {
		t.Fatalf("GetAssessment(unknown) err=%v, want ErrAssessmentNotFound", err)
	}
}

func TestRunAssessmentWithNoInputs(t *testing.T) {
	f := newFixture().withCatalog(1)
	c := f.register("1234567890", "Blank Co", "small_medium", "service", false)

	res, err := f.assessmentSvc.RunAssessment(context.Background(), "", c.ID, 2024)
	if err != nil {
		t.Fatalf("RunAssessment err=%v", err)
	}
	if res.TotalCredit != 0 || res.EligibleCount != 0 || len(res.Results) != engine.RuleCount {
		t.Fatalf("res=%+v, want 19 ineligible results", res)
	}
}

func TestPreviewDoesNotPersist(t *testing.T) {
	f := newFixture().withCatalog(1)
	req := PreviewRequest{
		Company: RegisterCompanyRequest{
			RegistrationNumber: "9999999999",
			Name:               "Preview Co",
			Size:               "small_medium",
			Industry:           "manufacturing",
		},
		TaxYear:    2024,
		Employment: &EmploymentRequest{EmployeeIncrease: 1},
		Investments: []InvestmentItemPayload{
			{FacilityType: "Smart Factory line", Amount: 200_000_000},
		},
		Other: &OtherRequest{DonationAmount: 10_000_000, DonationType: "statutory", BusinessIncome: 100_000_000},
	}

	res, err := f.assessmentSvc.Preview(context.Background(), req)
	if err != nil {
		t.Fatalf("Preview err=%v", err)
	}
	byRule := map[int]AssessmentResultResponse{}
	for _, r := range res.Results {
		byRule[r.RuleID] = r
	}
	if r := byRule[engine.RuleEmploymentIncrease]; !r.Eligible || r.CreditAmount != 12_000_000 {
		t.Fatalf("rule 1=%+v, want 12000000", r)
	}
	if r := byRule[engine.RuleSmartFactory]; !r.Eligible || r.CreditAmount != 30_000_000 {
		t.Fatalf("smart factory=%+v, want 30000000", r)
	}
	if r := byRule[engine.RuleDonation]; !r.Eligible || r.CreditAmount != 1_500_000 {
		t.Fatalf("donation=%+v, want 1500000", r)
	}
	if res.ID != "" {
		t.Fatalf("preview ID=%q, want empty", res.ID)
	}
	if f.assessments.count() != 0 || f.publisher.count() != 0 {
		t.Fatalf("preview stored %d sessions and published %d events", f.assessments.count(), f.publisher.count())
	}

	req.Other.DonationType = "Statutory"
	res, err = f.assessmentSvc.Preview(context.Background(), req)
	if err != nil {
		t.Fatalf("Preview(Statutory) err=%v", err)
	}
	for _, r := range res.Results {
		if r.RuleID == engine.RuleDonation && r.CreditAmount != 1_500_000 {
			t.Fatalf("donation(Statutory)=%+v, want 1500000", r)
		}
	}

	req.Other.DonationType = "political"
	if _, err := f.assessmentSvc.Preview(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Preview(bad donation type) err=%v, want ErrInvalidInput", err)
	}
	req.Other.DonationType = "statutory"

	req.Other.StartupDate = "bad"
	if _, err := f.assessmentSvc.Preview(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Preview(bad date) err=%v, want ErrInvalidInput", err)
	}
}

func TestRunBatch(t *testing.T) {
	f := newFixture().withCatalog(3)
	ctx := context.Background()

	var targets []BatchTarget
	for i, regNo := range []string{"1000000001", "1000000002", "1000000003", "1000000004"} {
		c := f.register(regNo, "Batch "+regNo, "small_medium", "manufacturing", i%2 == 0)
		seedEmployment(t, f, c.ID, 2024)
		targets = append(targets, BatchTarget{CompanyID: c.ID, TaxYear: 2024})
	}
	targets = append(targets, BatchTarget{CompanyID: uuid.NewString(), TaxYear: 2024})

	res, err := f.assessmentSvc.RunBatch(ctx, "ops", BatchAssessmentRequest{Targets: targets})
	if err != nil {
		t.Fatalf("RunBatch err=%v", err)
	}
	if res.Succeeded != 4 || res.Failed != 1 {
		t.Fatalf("succeeded=%d failed=%d, want 4 and 1", res.Succeeded, res.Failed)
	}
	for i, item := range res.Items {
		if item.CompanyID != targets[i].CompanyID {
			t.Fatalf("items[%d].CompanyID=%s, want input order", i, item.CompanyID)
		}
	}
	if res.Items[4].Error == "" || res.Items[4].AssessmentID != "" {
		t.Fatalf("unknown target item=%+v, want error", res.Items[4])
	}
	// capital region: 3 x 11,000,000 + 2 x 12,000,000
	if res.Items[0].TotalCredit != 57_000_000 {
		t.Fatalf("items[0].TotalCredit=%d, want 57000000", res.Items[0].TotalCredit)
	}
	if f.assessments.count() != 4 || f.publisher.count() != 4 {
		t.Fatalf("sessions=%d events=%d, want 4 and 4", f.assessments.count(), f.publisher.count())
	}
	actions := f.audit.actions()
	if actions[len(actions)-1] != model.ActionRunBatchAssessment {
		t.Fatalf("last audit action=%q, want %s", actions[len(actions)-1], model.ActionRunBatchAssessment)
	}
}

func TestListAssessments(t *testing.T) {
	f := newFixture().withCatalog(1)
	ctx := context.Background()
	c := f.register("1234567890", "List Co", "large", "it", false)

	for _, year := range []int{2023, 2024, 2024} {
		if _, err := f.assessmentSvc.RunAssessment(ctx, "", c.ID, year); err != nil {
			t.Fatalf("RunAssessment(%d) err=%v", year, err)
		}
	}

	all, total, err := f.assessmentSvc.ListAssessments(ctx, c.ID, 0, 1, 20)
	if err != nil || total != 3 || len(all) != 3 {
		t.Fatalf("ListAssessments(all)=(%d,%d,%v), want 3", len(all), total, err)
	}
	only, total, err := f.assessmentSvc.ListAssessments(ctx, c.ID, 2024, 1, 20)
	if err != nil || total != 2 {
		t.Fatalf("ListAssessments(2024)=(%d,%v), want 2", total, err)
	}
	for _, s := range only {
		if s.TaxYear != 2024 || s.Results != nil {
			t.Fatalf("summary=%+v, want 2024 without results", s)
		}
	}
}
