package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionRegisterCompany    = "REGISTER_COMPANY"
	ActionSaveEmployment     = "SAVE_EMPLOYMENT_DATA"
	ActionSaveInvestments    = "SAVE_INVESTMENT_ITEMS"
	ActionSaveRnd            = "SAVE_RND_ITEMS"
	ActionSaveOther          = "SAVE_OTHER_DATA"
	ActionRunAssessment      = "RUN_ASSESSMENT"
	ActionSyncRuleCatalog    = "SYNC_RULE_CATALOG"
	ActionRunBatchAssessment = "RUN_BATCH_ASSESSMENT"
)

// AuditLog tracks who changed what and when. Actor is the token subject and
// may be empty for system actions such as the startup catalog sync.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Actor      string     `gorm:"type:varchar(255)" json:"actor"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
