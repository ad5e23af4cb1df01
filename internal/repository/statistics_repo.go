package repository

import (
	"context"
	"fmt"

	"taxcredit/internal/model"

	"gorm.io/gorm"
)

// latestSessions selects the newest session per company for a tax year.
const latestSessions = `
	SELECT DISTINCT ON (company_id) id, company_id, total_credit
	FROM assessment_sessions
	WHERE tax_year = ?
	ORDER BY company_id, created_at DESC`

type StatisticsRepository interface {
	GetYearTotals(ctx context.Context, taxYear int) (companies int, total int64, err error)
	GetCategoryTotals(ctx context.Context, taxYear int) ([]model.CategoryTotal, error)
	GetTopRules(ctx context.Context, taxYear int, limit int) ([]model.RuleRanking, error)
	GetTopCompanies(ctx context.Context, taxYear int, limit int) ([]model.CompanyRanking, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) GetYearTotals(ctx context.Context, taxYear int) (int, int64, error) {
	var result struct {
		Companies int
		Total     int64
	}
	err := GetDB(ctx, r.db).
		Raw("SELECT COUNT(*) AS companies, COALESCE(SUM(total_credit), 0) AS total FROM ("+latestSessions+") latest", taxYear).
		Scan(&result).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query year totals: %w", err)
	}
	return result.Companies, result.Total, nil
}

func (r *statisticsRepository) GetCategoryTotals(ctx context.Context, taxYear int) ([]model.CategoryTotal, error) {
	var totals []model.CategoryTotal
	err := GetDB(ctx, r.db).
		Raw(`SELECT ar.category AS category, COUNT(*) AS eligible_count, COALESCE(SUM(ar.credit_amount), 0) AS total_credit
			FROM assessment_results ar
			JOIN (`+latestSessions+`) latest ON latest.id = ar.session_id
			WHERE ar.eligible
			GROUP BY ar.category
			ORDER BY total_credit DESC`, taxYear).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	return totals, nil
}

func (r *statisticsRepository) GetTopRules(ctx context.Context, taxYear int, limit int) ([]model.RuleRanking, error) {
	var rankings []model.RuleRanking
	err := GetDB(ctx, r.db).
		Raw(`SELECT ar.rule_id AS rule_id, MAX(ar.rule_name) AS rule_name, COUNT(*) AS eligible_count, COALESCE(SUM(ar.credit_amount), 0) AS total_credit
			FROM assessment_results ar
			JOIN (`+latestSessions+`) latest ON latest.id = ar.session_id
			WHERE ar.eligible
			GROUP BY ar.rule_id
			ORDER BY eligible_count DESC, total_credit DESC
			LIMIT ?`, taxYear, limit).
		Scan(&rankings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query top rules: %w", err)
	}
	return rankings, nil
}

func (r *statisticsRepository) GetTopCompanies(ctx context.Context, taxYear int, limit int) ([]model.CompanyRanking, error) {
	var rankings []model.CompanyRanking
	err := GetDB(ctx, r.db).
		Raw(`SELECT CAST(c.id AS TEXT) AS company_id, c.name AS company_name, latest.total_credit AS total_credit
			FROM (`+latestSessions+`) latest
			JOIN companies c ON c.id = latest.company_id
			ORDER BY latest.total_credit DESC
			LIMIT ?`, taxYear, limit).
		Scan(&rankings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query top companies: %w", err)
	}
	return rankings, nil
}
