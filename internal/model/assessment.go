package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AssessmentSession is the summary row of one assessment run.
type AssessmentSession struct {
	ID            uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID     uuid.UUID          `gorm:"type:uuid;not null;index:idx_session_company_year" json:"company_id"`
	Company       *Company           `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	TaxYear       int                `gorm:"not null;index:idx_session_company_year" json:"tax_year"`
	TotalCredit   int64              `gorm:"type:bigint;not null;default:0" json:"total_credit"`
	EligibleCount int                `gorm:"not null;default:0" json:"eligible_count"`
	RunBy         *uuid.UUID         `gorm:"type:uuid" json:"run_by"`
	Results       []AssessmentResult `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"results"`
	CreatedAt     time.Time          `gorm:"index" json:"created_at"`
}

// AssessmentResult is one rule outcome within a session, persisted verbatim.
type AssessmentResult struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"session_id"`
	RuleID       int            `gorm:"not null;index" json:"rule_id"`
	RuleName     string         `gorm:"type:varchar(255)" json:"rule_name"`
	Category     string         `gorm:"type:varchar(20);index" json:"category"`
	Eligible     bool           `gorm:"not null;default:false" json:"eligible"`
	CreditAmount int64          `gorm:"type:bigint;not null;default:0" json:"credit_amount"`
	Reasons      string         `gorm:"type:text" json:"reasons"`
	Details      datatypes.JSON `gorm:"type:jsonb" json:"details"`
	CreatedAt    time.Time      `json:"created_at"`
}
