package model

import "time"

// CreditRule mirrors the in-process rule catalog so results can be joined to
// rule metadata. Rows are upserted at startup and never edited through the API.
type CreditRule struct {
	ID            int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Category      string    `gorm:"type:varchar(20);not null;index" json:"category"` // employment, sme, investment, rnd, other
	LegalBasis    string    `gorm:"type:text" json:"legal_basis"`
	Requirements  string    `gorm:"type:text" json:"requirements"`
	CreditFormula string    `gorm:"type:text" json:"credit_formula"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
