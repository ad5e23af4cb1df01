package model

import (
	"time"

	"github.com/google/uuid"
)

// EmploymentData holds one company's headcount figures for a tax year.
// Increase fields are year-over-year deltas supplied by the client.
type EmploymentData struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_employment_company_year" json:"company_id"`
	TaxYear           int       `gorm:"not null;uniqueIndex:idx_employment_company_year" json:"tax_year"`
	TotalEmployees    int64     `gorm:"not null;default:0" json:"total_employees"`
	EmployeeIncrease  int64     `gorm:"not null;default:0" json:"employee_increase"`
	YouthEmployees    int64     `gorm:"not null;default:0" json:"youth_employees"`
	DisabledEmployees int64     `gorm:"not null;default:0" json:"disabled_employees"`
	CareerBreakWomen  int64     `gorm:"not null;default:0" json:"career_break_women"`
	TotalPayroll      int64     `gorm:"type:bigint;not null;default:0" json:"total_payroll"`
	InsurancePaid     int64     `gorm:"type:bigint;not null;default:0" json:"insurance_paid"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// InvestmentItem is one facility investment line for a tax year.
type InvestmentItem struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index:idx_investment_company_year" json:"company_id"`
	TaxYear      int       `gorm:"not null;index:idx_investment_company_year" json:"tax_year"`
	FacilityType string    `gorm:"type:varchar(100);not null" json:"facility_type"`
	Amount       int64     `gorm:"type:bigint;not null;default:0" json:"amount"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// RndItem is one R&D expense line for a tax year.
type RndItem struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index:idx_rnd_company_year" json:"company_id"`
	TaxYear     int       `gorm:"not null;index:idx_rnd_company_year" json:"tax_year"`
	Category    string    `gorm:"type:varchar(50);not null" json:"category"` // general, new_growth_engine, design, new_technology
	Expense     int64     `gorm:"type:bigint;not null;default:0" json:"expense"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// OtherData holds the inputs for the reduction, donation and vehicle rules.
type OtherData struct {
	ID                        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID                 uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_other_company_year" json:"company_id"`
	TaxYear                   int        `gorm:"not null;uniqueIndex:idx_other_company_year" json:"tax_year"`
	StartupDate               *time.Time `gorm:"type:date" json:"startup_date"`
	IsYouthStartup            bool       `gorm:"default:false" json:"is_youth_startup"`
	FounderAge                int        `gorm:"default:0" json:"founder_age"`
	RelocationCompleted       bool       `gorm:"default:false" json:"relocation_completed"`
	SocialEnterpriseCertified bool       `gorm:"default:false" json:"social_enterprise_certified"`
	SocialEnterpriseType      string     `gorm:"type:varchar(30)" json:"social_enterprise_type"`
	DonationAmount            int64      `gorm:"type:bigint;default:0" json:"donation_amount"`
	DonationType              string     `gorm:"type:varchar(30)" json:"donation_type"`
	BusinessIncome            int64      `gorm:"type:bigint;default:0" json:"business_income"`
	CalculatedTax             int64      `gorm:"type:bigint;default:0" json:"calculated_tax"`
	VehicleCount              int64      `gorm:"default:0" json:"vehicle_count"`
	VehicleDepreciation       int64      `gorm:"type:bigint;default:0" json:"vehicle_depreciation"`
	VehicleRental             int64      `gorm:"type:bigint;default:0" json:"vehicle_rental"`
	VehicleFuel               int64      `gorm:"type:bigint;default:0" json:"vehicle_fuel"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`
}
