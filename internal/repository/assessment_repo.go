package repository

import (
	"context"

	"taxcredit/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssessmentRepository interface {
	// Create inserts the session and its results in one statement batch.
	Create(ctx context.Context, session *model.AssessmentSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AssessmentSession, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, taxYear int, page, limit int) ([]model.AssessmentSession, int64, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(ctx context.Context, session *model.AssessmentSession) error {
	return GetDB(ctx, r.db).Omit("Company").Create(session).Error
}

func (r *assessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AssessmentSession, error) {
	var session model.AssessmentSession
	err := GetDB(ctx, r.db).
		Preload("Company").
		Preload("Results", func(db *gorm.DB) *gorm.DB { return db.Order("rule_id ASC") }).
		First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListByCompany returns session summaries without results, newest first.
// taxYear 0 lists every year.
func (r *assessmentRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, taxYear int, page, limit int) ([]model.AssessmentSession, int64, error) {
	var sessions []model.AssessmentSession
	var total int64

	query := GetDB(ctx, r.db).Model(&model.AssessmentSession{}).Where("company_id = ?", companyID)
	if taxYear > 0 {
		query = query.Where("tax_year = ?", taxYear)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&sessions).Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}
