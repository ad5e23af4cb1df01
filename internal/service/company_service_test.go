package service

import (
	"context"
	"errors"
	"testing"

	"taxcredit/internal/model"

	"github.com/google/uuid"
)

func TestNormalizeRegistrationNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"123-45-67890", "1234567890", false},
		{"1234567890", "1234567890", false},
		{" 123 45 67890 ", "1234567890", false},
		{"123-45-6789", "", true},
		{"123-45-678901", "", true},
		{"123-45-6789a", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeRegistrationNumber(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("NormalizeRegistrationNumber(%q) err=%v, want ErrInvalidInput", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("NormalizeRegistrationNumber(%q)=(%q,%v), want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestRegisterCompanyIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := RegisterCompanyRequest{
		RegistrationNumber: "123-45-67890",
		Name:               "Hanbit Precision",
		Size:               "small_medium",
		Industry:           "manufacturing",
	}

	first, created, err := f.companySvc.RegisterCompany(ctx, "user-1", req)
	if err != nil || !created {
		t.Fatalf("first RegisterCompany=(created=%v, err=%v), want created", created, err)
	}
	if first.RegistrationNumber != "1234567890" {
		t.Fatalf("RegistrationNumber=%q, want normalized", first.RegistrationNumber)
	}

	req.RegistrationNumber = "1234567890"
	req.Name = "Renamed"
	second, created, err := f.companySvc.RegisterCompany(ctx, "user-1", req)
	if err != nil || created {
		t.Fatalf("second RegisterCompany=(created=%v, err=%v), want existing", created, err)
	}
	if second.ID != first.ID || second.Name != "Hanbit Precision" {
		t.Fatalf("second=%+v, want the stored company %s", second, first.ID)
	}

	if got := f.audit.actions(); len(got) != 1 || got[0] != model.ActionRegisterCompany {
		t.Fatalf("audit actions=%v, want one %s", got, model.ActionRegisterCompany)
	}
}

func TestRegisterCompanyValidation(t *testing.T) {
	f := newFixture()
	base := RegisterCompanyRequest{RegistrationNumber: "1234567890", Name: "A", Size: "small_medium", Industry: "it"}

	tests := []struct {
		name   string
		mutate func(r *RegisterCompanyRequest)
	}{
		{"bad size", func(r *RegisterCompanyRequest) { r.Size = "huge" }},
		{"bad industry", func(r *RegisterCompanyRequest) { r.Industry = "farming" }},
		{"blank name", func(r *RegisterCompanyRequest) { r.Name = "  " }},
		{"short registration", func(r *RegisterCompanyRequest) { r.RegistrationNumber = "12" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, _, err := f.companySvc.RegisterCompany(context.Background(), "", req)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("RegisterCompany err=%v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestGetCompanyErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.companySvc.GetCompany(ctx, "not-a-uuid"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("GetCompany(bad id) err=%v, want ErrInvalidInput", err)
	}
	if _, err := f.companySvc.GetCompany(ctx, uuid.NewString()); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("GetCompany(unknown) err=%v, want ErrCompanyNotFound", err)
	}

	c := f.register("2222222222", "Found", "large", "retail", false)
	got, err := f.companySvc.GetCompany(ctx, c.ID)
	if err != nil || got.Name != "Found" {
		t.Fatalf("GetCompany=(%+v,%v), want Found", got, err)
	}
}
