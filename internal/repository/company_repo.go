package repository

import (
	"context"

	"taxcredit/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompanyRepository interface {
	// CreateIfAbsent inserts company unless its registration number exists.
	// It reports whether a row was inserted; company is always left holding
	// the stored record.
	CreateIfAbsent(ctx context.Context, company *model.Company) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
	FindByRegistrationNumber(ctx context.Context, regNo string) (*model.Company, error)
	List(ctx context.Context, search string, page, limit int) ([]model.Company, int64, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) CreateIfAbsent(ctx context.Context, company *model.Company) (bool, error) {
	res := GetDB(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "registration_number"}}, DoNothing: true}).
		Create(company)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	existing, err := r.FindByRegistrationNumber(ctx, company.RegistrationNumber)
	if err != nil {
		return false, err
	}
	*company = *existing
	return false, nil
}

func (r *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var company model.Company
	if err := GetDB(ctx, r.db).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindByRegistrationNumber(ctx context.Context, regNo string) (*model.Company, error) {
	var company model.Company
	if err := GetDB(ctx, r.db).First(&company, "registration_number = ?", regNo).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context, search string, page, limit int) ([]model.Company, int64, error) {
	var companies []model.Company
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Company{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR registration_number ILIKE ? OR ceo_name ILIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&companies).Error; err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}
