package repository

import (
	"context"
	"errors"

	"taxcredit/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// YearInputs is every stored bundle for one company and tax year. Employment
// and Other are nil when nothing was saved.
type YearInputs struct {
	Employment  *model.EmploymentData
	Investments []model.InvestmentItem
	Rnd         []model.RndItem
	Other       *model.OtherData
}

type InputRepository interface {
	UpsertEmployment(ctx context.Context, data *model.EmploymentData) error
	UpsertOther(ctx context.Context, data *model.OtherData) error
	ReplaceInvestments(ctx context.Context, companyID uuid.UUID, taxYear int, items []model.InvestmentItem) error
	ReplaceRnd(ctx context.Context, companyID uuid.UUID, taxYear int, items []model.RndItem) error
	LoadYear(ctx context.Context, companyID uuid.UUID, taxYear int) (YearInputs, error)
}

type inputRepository struct {
	db *gorm.DB
}

func NewInputRepository(db *gorm.DB) InputRepository {
	return &inputRepository{db: db}
}

var companyYearColumns = []clause.Column{{Name: "company_id"}, {Name: "tax_year"}}

func (r *inputRepository) UpsertEmployment(ctx context.Context, data *model.EmploymentData) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns: companyYearColumns,
		DoUpdates: clause.AssignmentColumns([]string{
			"total_employees", "employee_increase", "youth_employees", "disabled_employees",
			"career_break_women", "total_payroll", "insurance_paid", "updated_at",
		}),
	}).Create(data).Error
}

func (r *inputRepository) UpsertOther(ctx context.Context, data *model.OtherData) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns: companyYearColumns,
		DoUpdates: clause.AssignmentColumns([]string{
			"startup_date", "is_youth_startup", "founder_age", "relocation_completed",
			"social_enterprise_certified", "social_enterprise_type", "donation_amount", "donation_type",
			"business_income", "calculated_tax", "vehicle_count", "vehicle_depreciation",
			"vehicle_rental", "vehicle_fuel", "updated_at",
		}),
	}).Create(data).Error
}

func (r *inputRepository) ReplaceInvestments(ctx context.Context, companyID uuid.UUID, taxYear int, items []model.InvestmentItem) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("company_id = ? AND tax_year = ?", companyID, taxYear).Delete(&model.InvestmentItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.Create(&items).Error
}

func (r *inputRepository) ReplaceRnd(ctx context.Context, companyID uuid.UUID, taxYear int, items []model.RndItem) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("company_id = ? AND tax_year = ?", companyID, taxYear).Delete(&model.RndItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.Create(&items).Error
}

func (r *inputRepository) LoadYear(ctx context.Context, companyID uuid.UUID, taxYear int) (YearInputs, error) {
	db := GetDB(ctx, r.db)
	var out YearInputs

	var emp model.EmploymentData
	err := db.Where("company_id = ? AND tax_year = ?", companyID, taxYear).First(&emp).Error
	switch {
	case err == nil:
		out.Employment = &emp
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return YearInputs{}, err
	}

	var other model.OtherData
	err = db.Where("company_id = ? AND tax_year = ?", companyID, taxYear).First(&other).Error
	switch {
	case err == nil:
		out.Other = &other
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return YearInputs{}, err
	}

	if err := db.Where("company_id = ? AND tax_year = ?", companyID, taxYear).Order("created_at ASC").Find(&out.Investments).Error; err != nil {
		return YearInputs{}, err
	}
	if err := db.Where("company_id = ? AND tax_year = ?", companyID, taxYear).Order("created_at ASC").Find(&out.Rnd).Error; err != nil {
		return YearInputs{}, err
	}

	return out, nil
}
