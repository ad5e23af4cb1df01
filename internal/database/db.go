package database

import (
	"taxcredit/internal/model"
	"taxcredit/internal/platform/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Models lists every table the service owns, in migration order.
func Models() []interface{} {
	return []interface{}{
		&model.Company{},
		&model.EmploymentData{},
		&model.InvestmentItem{},
		&model.RndItem{},
		&model.OtherData{},
		&model.CreditRule{},
		&model.AssessmentSession{},
		&model.AssessmentResult{},
		&model.AuditLog{},
	}
}

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		log.Warn("failed to auto-migrate models", "error", err)
	}

	return db, nil
}
