package service

import (
	"context"
	"fmt"

	"taxcredit/internal/engine"
	"taxcredit/internal/model"
	"taxcredit/internal/repository"
)

type RuleResponse struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	LegalBasis    string `json:"legal_basis"`
	Requirements  string `json:"requirements"`
	CreditFormula string `json:"credit_formula"`
}

type RuleService interface {
	// SyncCatalog writes the built-in catalog to the database and returns the
	// stored catalog in id order. Called once at startup.
	SyncCatalog(ctx context.Context) ([]engine.RuleDefinition, error)
	ListRules(ctx context.Context) ([]RuleResponse, error)
}

type ruleService struct {
	ruleRepo  repository.CreditRuleRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewRuleService(
	ruleRepo repository.CreditRuleRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) RuleService {
	return &ruleService{ruleRepo: ruleRepo, auditRepo: auditRepo, txManager: txManager}
}

func (s *ruleService) SyncCatalog(ctx context.Context) ([]engine.RuleDefinition, error) {
	builtin := engine.Catalog()
	rows := make([]model.CreditRule, 0, len(builtin))
	for _, r := range builtin {
		rows = append(rows, model.CreditRule{
			ID:            r.ID,
			Name:          r.Name,
			Category:      string(r.Category),
			LegalBasis:    r.LegalBasis,
			Requirements:  r.Requirements,
			CreditFormula: r.CreditFormula,
		})
	}

	var stored []model.CreditRule
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.ruleRepo.UpsertAll(txCtx, rows); err != nil {
			return fmt.Errorf("failed to upsert rule catalog: %w", err)
		}
		var err error
		if stored, err = s.ruleRepo.List(txCtx); err != nil {
			return fmt.Errorf("failed to load rule catalog: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, "", model.ActionSyncRuleCatalog, "", "credit_rules", map[string]int{"rules": len(stored)})
	})
	if err != nil {
		return nil, err
	}

	defs := make([]engine.RuleDefinition, 0, len(stored))
	for _, r := range stored {
		defs = append(defs, toRuleDefinition(r))
	}
	return defs, nil
}

func (s *ruleService) ListRules(ctx context.Context) ([]RuleResponse, error) {
	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rules: %w", err)
	}
	res := make([]RuleResponse, 0, len(rules))
	for _, r := range rules {
		res = append(res, RuleResponse{
			ID:            r.ID,
			Name:          r.Name,
			Category:      r.Category,
			LegalBasis:    r.LegalBasis,
			Requirements:  r.Requirements,
			CreditFormula: r.CreditFormula,
		})
	}
	return res, nil
}

func toRuleDefinition(r model.CreditRule) engine.RuleDefinition {
	return engine.RuleDefinition{
		ID:            r.ID,
		Name:          r.Name,
		Category:      engine.Category(r.Category),
		LegalBasis:    r.LegalBasis,
		Requirements:  r.Requirements,
		CreditFormula: r.CreditFormula,
	}
}
