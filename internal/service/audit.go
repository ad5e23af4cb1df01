package service

import (
	"context"
	"encoding/json"
	"fmt"

	"taxcredit/internal/model"
	"taxcredit/internal/repository"

	"github.com/google/uuid"
)

// writeAudit records an audit entry. Call it inside the same transaction as
// the change it describes.
func writeAudit(ctx context.Context, repo repository.AuditRepository, actor, action, entityID, entityName string, details interface{}) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}

	entry := &model.AuditLog{
		Actor:      actor,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(detailsJSON),
	}
	if parsed, err := uuid.Parse(actor); err == nil {
		entry.UserID = &parsed
	}

	if err := repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
