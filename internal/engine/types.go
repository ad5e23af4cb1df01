// Package engine evaluates the fixed catalog of tax-credit rules against one
// company and tax year. Everything here is pure: no I/O, no shared mutable
// state, safe to call from any number of goroutines.
package engine

import "time"

// Size is the enterprise size classification, the primary rate-table axis.
type Size string

const (
	SizeSmallMedium Size = "small_medium"
	SizeMidSize     Size = "mid_size"
	SizeLarge       Size = "large"
)

// Valid reports whether s is one of the enumerated size classes.
func (s Size) Valid() bool {
	switch s {
	case SizeSmallMedium, SizeMidSize, SizeLarge:
		return true
	}
	return false
}

// Industry classification
type Industry string

const (
	IndustryManufacturing Industry = "manufacturing"
	IndustryMining        Industry = "mining"
	IndustryConstruction  Industry = "construction"
	IndustryWholesale     Industry = "wholesale"
	IndustryRetail        Industry = "retail"
	IndustryService       Industry = "service"
	IndustryIT            Industry = "it"
	IndustryOther         Industry = "other"
)

func (i Industry) Valid() bool {
	switch i {
	case IndustryManufacturing, IndustryMining, IndustryConstruction, IndustryWholesale,
		IndustryRetail, IndustryService, IndustryIT, IndustryOther:
		return true
	}
	return false
}

// Category groups rules by the input bundle they read.
type Category string

const (
	CategoryEmployment Category = "employment"
	CategorySME        Category = "sme"
	CategoryInvestment Category = "investment"
	CategoryRnd        Category = "rnd"
	CategoryOther      Category = "other"
)

// RuleDefinition is a static catalog entry. Requirements and CreditFormula are
// display text only; evaluation is keyed on ID.
type RuleDefinition struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	LegalBasis    string   `json:"legal_basis"`
	Requirements  string   `json:"requirements"`
	CreditFormula string   `json:"credit_formula"`
}

// CompanyProfile is the read-only company record an assessment runs against.
type CompanyProfile struct {
	ID                 string   `json:"id"`
	RegistrationNumber string   `json:"registration_number"`
	Name               string   `json:"name"`
	CEOName            string   `json:"ceo_name"`
	Size               Size     `json:"size"`
	Industry           Industry `json:"industry"`
	Location           string   `json:"location"`
	IsCapitalRegion    bool     `json:"is_capital_region"`
}

// EmploymentBundle carries year-over-year headcount deltas. The caller is
// responsible for computing increases against the prior year.
type EmploymentBundle struct {
	TotalEmployees    int64 `json:"total_employees"`
	EmployeeIncrease  int64 `json:"employee_increase"`
	YouthEmployees    int64 `json:"youth_employees"`
	DisabledEmployees int64 `json:"disabled_employees"`
	CareerBreakWomen  int64 `json:"career_break_women"`
	TotalPayroll      int64 `json:"total_payroll"`
	InsurancePaid     int64 `json:"insurance_paid"`
}

type InvestmentItem struct {
	FacilityType string `json:"facility_type"`
	Amount       int64  `json:"amount"`
}

type RndItem struct {
	Category string `json:"category"`
	Expense  int64  `json:"expense"`
}

// OtherBundle holds the free-form inputs used by the reduction, donation and
// vehicle rules.
type OtherBundle struct {
	StartupDate               *time.Time `json:"startup_date,omitempty"`
	IsYouthStartup            bool       `json:"is_youth_startup"`
	FounderAge                int        `json:"founder_age"`
	RelocationCompleted       bool       `json:"relocation_completed"`
	SocialEnterpriseCertified bool       `json:"social_enterprise_certified"`
	SocialEnterpriseType      string     `json:"social_enterprise_type"`
	DonationAmount            int64      `json:"donation_amount"`
	DonationType              string     `json:"donation_type"`
	BusinessIncome            int64      `json:"business_income"`
	CalculatedTax             int64      `json:"calculated_tax"`
	VehicleCount              int64      `json:"vehicle_count"`
	VehicleDepreciation       int64      `json:"vehicle_depreciation"`
	VehicleRental             int64      `json:"vehicle_rental"`
	VehicleFuel               int64      `json:"vehicle_fuel"`
}

// EvaluationContext is built fresh for every assessment run. Nil bundles are
// treated as all-zero.
type EvaluationContext struct {
	Company     CompanyProfile    `json:"company"`
	TaxYear     int               `json:"tax_year"`
	Employment  *EmploymentBundle `json:"employment,omitempty"`
	Investments []InvestmentItem  `json:"investments,omitempty"`
	Rnd         []RndItem         `json:"rnd,omitempty"`
	Other       *OtherBundle      `json:"other,omitempty"`
}

func (ec EvaluationContext) employment() EmploymentBundle {
	if ec.Employment == nil {
		return EmploymentBundle{}
	}
	return *ec.Employment
}

func (ec EvaluationContext) other() OtherBundle {
	if ec.Other == nil {
		return OtherBundle{}
	}
	return *ec.Other
}

// Details holds the named sub-calculations of one rule.
type Details map[string]interface{}

// Outcome is the result of evaluating one rule. CreditAmount is zero whenever
// Eligible is false.
type Outcome struct {
	RuleID       int      `json:"rule_id"`
	RuleName     string   `json:"rule_name"`
	Category     Category `json:"category"`
	Eligible     bool     `json:"eligible"`
	CreditAmount int64    `json:"credit_amount"`
	Reasons      string   `json:"reasons"`
	Details      Details  `json:"details"`
}

// Assessment is the aggregate of one run over the full catalog.
type Assessment struct {
	Outcomes      []Outcome `json:"outcomes"`
	TotalCredit   int64     `json:"total_credit"`
	EligibleCount int       `json:"eligible_count"`
}
