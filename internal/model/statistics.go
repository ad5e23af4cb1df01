package model

// StatisticsResponse summarises the latest assessment of every company for
// one tax year.
type StatisticsResponse struct {
	TaxYear           int              `json:"tax_year"`
	CompaniesAssessed int              `json:"companies_assessed"`
	TotalCredit       int64            `json:"total_credit"`
	ByCategory        []CategoryTotal  `json:"by_category"`
	TopRules          []RuleRanking    `json:"top_rules"`
	TopCompanies      []CompanyRanking `json:"top_companies"`
}

// CategoryTotal is the credit summed over one rule category.
type CategoryTotal struct {
	Category      string `json:"category"`
	EligibleCount int    `json:"eligible_count"`
	TotalCredit   int64  `json:"total_credit"`
}

// RuleRanking ranks rules by how often they applied.
type RuleRanking struct {
	RuleID        int    `json:"rule_id"`
	RuleName      string `json:"rule_name"`
	EligibleCount int    `json:"eligible_count"`
	TotalCredit   int64  `json:"total_credit"`
}

// CompanyRanking ranks companies by total credit.
type CompanyRanking struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	TotalCredit int64  `json:"total_credit"`
}
