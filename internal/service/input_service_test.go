package service

import (
	"context"
	"errors"
	"testing"

	"taxcredit/internal/engine"
	"taxcredit/internal/model"
)

func TestSaveAndLoadInputs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := f.register("1111111111", "Inputs Co", "small_medium", "manufacturing", false)

	if _, err := f.inputSvc.SaveEmployment(ctx, "u", c.ID, 2024, EmploymentRequest{EmployeeIncrease: 3, YouthEmployees: 2}); err != nil {
		t.Fatalf("SaveEmployment err=%v", err)
	}
	if _, err := f.inputSvc.SaveInvestments(ctx, "u", c.ID, 2024, InvestmentsRequest{Items: []InvestmentItemPayload{
		{FacilityType: "automation", Amount: 50_000_000},
	}}); err != nil {
		t.Fatalf("SaveInvestments err=%v", err)
	}
	if _, err := f.inputSvc.SaveRnd(ctx, "u", c.ID, 2024, RndRequest{Items: []RndItemPayload{
		{Category: "general", Expense: 10_000_000},
	}}); err != nil {
		t.Fatalf("SaveRnd err=%v", err)
	}
	if _, err := f.inputSvc.SaveOther(ctx, "u", c.ID, 2024, OtherRequest{StartupDate: "2021-03-01", CalculatedTax: 5_000_000}); err != nil {
		t.Fatalf("SaveOther err=%v", err)
	}

	got, err := f.inputSvc.GetInputs(ctx, c.ID, 2024)
	if err != nil {
		t.Fatalf("GetInputs err=%v", err)
	}
	if got.Employment == nil || got.Employment.EmployeeIncrease != 3 {
		t.Fatalf("Employment=%+v, want increase 3", got.Employment)
	}
	if len(got.Investments) != 1 || got.Investments[0].Amount != 50_000_000 {
		t.Fatalf("Investments=%+v", got.Investments)
	}
	if len(got.Rnd) != 1 || got.Rnd[0].Category != "general" {
		t.Fatalf("Rnd=%+v", got.Rnd)
	}
	if got.Other == nil || got.Other.StartupDate != "2021-03-01" {
		t.Fatalf("Other=%+v, want startup 2021-03-01", got.Other)
	}

	empty, err := f.inputSvc.GetInputs(ctx, c.ID, 2023)
	if err != nil {
		t.Fatalf("GetInputs(2023) err=%v", err)
	}
	if empty.Employment != nil || empty.Other != nil || len(empty.Investments) != 0 {
		t.Fatalf("GetInputs(2023)=%+v, want empty", empty)
	}

	want := []string{model.ActionSaveEmployment, model.ActionSaveInvestments, model.ActionSaveRnd, model.ActionSaveOther}
	got2 := f.audit.actions()[1:]
	if len(got2) != len(want) {
		t.Fatalf("audit actions=%v, want %v", got2, want)
	}
	for i := range want {
		if got2[i] != want[i] {
			t.Fatalf("audit actions=%v, want %v", got2, want)
		}
	}
}

func TestSaveInputsValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := f.register("1111111111", "Inputs Co", "small_medium", "manufacturing", false)

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"bad year", func() error {
			_, err := f.inputSvc.SaveEmployment(ctx, "", c.ID, 1999, EmploymentRequest{})
			return err
		}, ErrInvalidInput},
		{"bad startup date", func() error {
			_, err := f.inputSvc.SaveOther(ctx, "", c.ID, 2024, OtherRequest{StartupDate: "03/01/2021"})
			return err
		}, ErrInvalidInput},
		{"blank facility", func() error {
			_, err := f.inputSvc.SaveInvestments(ctx, "", c.ID, 2024, InvestmentsRequest{Items: []InvestmentItemPayload{{FacilityType: " "}}})
			return err
		}, ErrInvalidInput},
		{"unknown facility", func() error {
			_, err := f.inputSvc.SaveInvestments(ctx, "", c.ID, 2024, InvestmentsRequest{Items: []InvestmentItemPayload{{FacilityType: "automaton", Amount: 1}}})
			return err
		}, ErrInvalidInput},
		{"unknown R&D category", func() error {
			_, err := f.inputSvc.SaveRnd(ctx, "", c.ID, 2024, RndRequest{Items: []RndItemPayload{{Category: "marketing", Expense: 1}}})
			return err
		}, ErrInvalidInput},
		{"unknown social enterprise type", func() error {
			_, err := f.inputSvc.SaveOther(ctx, "", c.ID, 2024, OtherRequest{SocialEnterpriseCertified: true, SocialEnterpriseType: "charity"})
			return err
		}, ErrInvalidInput},
		{"unknown donation type", func() error {
			_, err := f.inputSvc.SaveOther(ctx, "", c.ID, 2024, OtherRequest{DonationAmount: 1, DonationType: "political"})
			return err
		}, ErrInvalidInput},
		{"unknown company", func() error {
			_, err := f.inputSvc.SaveRnd(ctx, "", "00000000-0000-0000-0000-000000000000", 2024, RndRequest{})
			return err
		}, ErrCompanyNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Fatalf("err=%v, want %v", err, tt.want)
			}
		})
	}
}

func TestSaveOtherNormalizesTypes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := f.register("1111111111", "Inputs Co", "small_medium", "service", false)

	got, err := f.inputSvc.SaveOther(ctx, "u", c.ID, 2024, OtherRequest{
		SocialEnterpriseCertified: true,
		SocialEnterpriseType:      "Social Enterprise",
		DonationAmount:            40_000_000,
		DonationType:              "Statutory",
		BusinessIncome:            50_000_000,
	})
	if err != nil {
		t.Fatalf("SaveOther err=%v", err)
	}
	if got.Other == nil || got.Other.SocialEnterpriseType != engine.SocialEnterpriseTypeSocialEnterprise || got.Other.DonationType != engine.DonationTypeStatutory {
		t.Fatalf("Other=%+v, want normalized types", got.Other)
	}
	if _, err := f.inputSvc.SaveInvestments(ctx, "u", c.ID, 2024, InvestmentsRequest{Items: []InvestmentItemPayload{
		{FacilityType: "info-system", Amount: 20_000_000},
	}}); err != nil {
		t.Fatalf("SaveInvestments(info-system) err=%v", err)
	}
}
