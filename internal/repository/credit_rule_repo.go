package repository

import (
	"context"

	"taxcredit/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreditRuleRepository interface {
	UpsertAll(ctx context.Context, rules []model.CreditRule) error
	List(ctx context.Context) ([]model.CreditRule, error)
	FindByID(ctx context.Context, id int) (*model.CreditRule, error)
}

type creditRuleRepository struct {
	db *gorm.DB
}

func NewCreditRuleRepository(db *gorm.DB) CreditRuleRepository {
	return &creditRuleRepository{db: db}
}

func (r *creditRuleRepository) UpsertAll(ctx context.Context, rules []model.CreditRule) error {
	if len(rules) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "category", "legal_basis", "requirements", "credit_formula", "updated_at"}),
	}).Create(&rules).Error
}

func (r *creditRuleRepository) List(ctx context.Context) ([]model.CreditRule, error) {
	var rules []model.CreditRule
	if err := GetDB(ctx, r.db).Order("id ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *creditRuleRepository) FindByID(ctx context.Context, id int) (*model.CreditRule, error) {
	var rule model.CreditRule
	if err := GetDB(ctx, r.db).First(&rule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}
