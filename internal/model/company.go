package model

import (
	"time"

	"github.com/google/uuid"
)

// Company is a registered business. RegistrationNumber is unique; registering
// the same number twice returns the existing row.
type Company struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RegistrationNumber string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"registration_number"`
	Name               string    `gorm:"type:varchar(255);not null" json:"name"`
	CEOName            string    `gorm:"column:ceo_name;type:varchar(100)" json:"ceo_name"`
	Size               string    `gorm:"type:varchar(20);not null;index" json:"size"`     // small_medium, mid_size, large
	Industry           string    `gorm:"type:varchar(30);not null;index" json:"industry"` // manufacturing, mining, ...
	Location           string    `gorm:"type:text" json:"location"`
	IsCapitalRegion    bool      `gorm:"default:false" json:"is_capital_region"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
