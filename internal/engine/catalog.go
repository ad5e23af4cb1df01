package engine

const (
	RuleEmploymentIncrease = iota + 1
	RuleYouthEmployment
	RuleDisabledEmployment
	RuleCareerBreakWomen
	RuleSocialInsurance
	RuleSMESpecialReduction
	RuleStartupSME
	RuleManufacturingRelocation
	RuleSocialEnterprise
	RuleYouthStartup
	RuleProductivityFacility
	RuleEnergyFacility
	RuleSafetyFacility
	RuleSmartFactory
	RuleRndGeneral
	RuleRndDesign
	RuleRndNewTechnology
	RuleDonation
	RuleBusinessVehicle
)

// RuleCount is the size of the closed catalog.
const RuleCount = RuleBusinessVehicle

const rstaBasis = "Restriction of Special Taxation Act"

var catalog = []RuleDefinition{
	{
		ID:            RuleEmploymentIncrease,
		Name:          "Employment increase credit",
		Category:      CategoryEmployment,
		LegalBasis:    rstaBasis + " Art. 29-7",
		Requirements:  "Full-time headcount increased compared with the prior tax year",
		CreditFormula: "Headcount increase x per-head amount by size and capital region (4.5M-12M won)",
	},
	{
		ID:            RuleYouthEmployment,
		Name:          "Youth employment credit",
		Category:      CategoryEmployment,
		LegalBasis:    rstaBasis + " Art. 29-7 (1) 1",
		Requirements:  "Increase in full-time employees aged 15-34",
		CreditFormula: "Youth hires x 12M (SME) / 10M (mid-size) / 5M (large) won",
	},
	{
		ID:            RuleDisabledEmployment,
		Name:          "Disabled employment credit",
		Category:      CategoryEmployment,
		LegalBasis:    rstaBasis + " Art. 29-8",
		Requirements:  "Increase in full-time employees with a registered disability",
		CreditFormula: "Disabled hires x 9.6M won",
	},
	{
		ID:            RuleCareerBreakWomen,
		Name:          "Career-break women re-employment credit",
		Category:      CategoryEmployment,
		LegalBasis:    rstaBasis + " Art. 29-3",
		Requirements:  "Re-employment of women who left work for childbirth or childcare; benefit limited to 2 years",
		CreditFormula: "Re-employed women x 11M won",
	},
	{
		ID:            RuleSocialInsurance,
		Name:          "Social insurance contribution credit",
		Category:      CategoryEmployment,
		LegalBasis:    rstaBasis + " Art. 30-4",
		Requirements:  "Small-medium enterprise with a headcount increase",
		CreditFormula: "Employer contributions x 25%, capped at 1M won x (headcount increase + youth hires)",
	},
	{
		ID:            RuleSMESpecialReduction,
		Name:          "SME special tax reduction",
		Category:      CategorySME,
		LegalBasis:    rstaBasis + " Art. 7",
		Requirements:  "Small-medium enterprise",
		CreditFormula: "Tax liability x 10% (manufacturing, mining, construction, wholesale, retail) or 5%",
	},
	{
		ID:            RuleStartupSME,
		Name:          "Startup SME tax reduction",
		Category:      CategorySME,
		LegalBasis:    rstaBasis + " Art. 6",
		Requirements:  "Within 5 years of business startup",
		CreditFormula: "Tax liability x 100% (youth founder) or 50%",
	},
	{
		ID:            RuleManufacturingRelocation,
		Name:          "Factory relocation out of the capital region",
		Category:      CategorySME,
		LegalBasis:    rstaBasis + " Art. 63",
		Requirements:  "Manufacturer that completed relocation from the capital region",
		CreditFormula: "Tax liability x 100%",
	},
	{
		ID:            RuleSocialEnterprise,
		Name:          "Social enterprise tax reduction",
		Category:      CategorySME,
		LegalBasis:    rstaBasis + " Art. 85-6",
		Requirements:  "Certified social enterprise or social cooperative",
		CreditFormula: "Tax liability x 100% (social enterprise) or 50%",
	},
	{
		ID:            RuleYouthStartup,
		Name:          "Youth startup tax reduction",
		Category:      CategorySME,
		LegalBasis:    rstaBasis + " Art. 6 (1)",
		Requirements:  "Founder aged 34 or younger, within 5 years of startup",
		CreditFormula: "Tax liability x 100%, capped at 200M won",
	},
	{
		ID:            RuleProductivityFacility,
		Name:          "Productivity facility investment credit",
		Category:      CategoryInvestment,
		LegalBasis:    rstaBasis + " Art. 24",
		Requirements:  "Investment of at least 10M won in automation, information systems or measurement equipment",
		CreditFormula: "Investment x 10% (SME) / 5% (mid-size) / 3% (large)",
	},
	{
		ID:            RuleEnergyFacility,
		Name:          "Energy saving and environmental facility credit",
		Category:      CategoryInvestment,
		LegalBasis:    rstaBasis + " Art. 24",
		Requirements:  "Investment of at least 10M won in energy-saving, greenhouse-gas or environmental equipment",
		CreditFormula: "Investment x 10% (SME) / 5% (mid-size) / 3% (large)",
	},
	{
		ID:            RuleSafetyFacility,
		Name:          "Safety facility investment credit",
		Category:      CategoryInvestment,
		LegalBasis:    rstaBasis + " Art. 24",
		Requirements:  "Investment of at least 10M won in fire prevention, protective gear or workplace improvement",
		CreditFormula: "Investment x 10% (SME) / 7% (mid-size) / 3% (large)",
	},
	{
		ID:            RuleSmartFactory,
		Name:          "Smart factory investment credit",
		Category:      CategoryInvestment,
		LegalBasis:    rstaBasis + " Art. 24",
		Requirements:  "Smart factory investment of at least 100M won",
		CreditFormula: "Investment x 15% (SME) / 10% (mid-size) / 5% (large)",
	},
	{
		ID:            RuleRndGeneral,
		Name:          "R&D expense credit (general and new growth engine)",
		Category:      CategoryRnd,
		LegalBasis:    rstaBasis + " Art. 10",
		Requirements:  "General or new-growth-engine R&D expenses of at least 1M won",
		CreditFormula: "General 25/15/5%, new growth engine 30/20/10% by size, per item",
	},
	{
		ID:            RuleRndDesign,
		Name:          "Design R&D expense credit",
		Category:      CategoryRnd,
		LegalBasis:    rstaBasis + " Art. 10",
		Requirements:  "Design development expenses of at least 1M won",
		CreditFormula: "Expense x 25% (SME) / 15% (mid-size) / 5% (large)",
	},
	{
		ID:            RuleRndNewTechnology,
		Name:          "New technology R&D credit (data, AI, IoT)",
		Category:      CategoryRnd,
		LegalBasis:    rstaBasis + " Art. 10 (1) 1",
		Requirements:  "New technology R&D expenses of at least 1M won",
		CreditFormula: "Expense x 30% (SME) / 20% (mid-size) / 10% (large)",
	},
	{
		ID:            RuleDonation,
		Name:          "Donation credit",
		Category:      CategoryOther,
		LegalBasis:    "Income Tax Act Art. 59-4",
		Requirements:  "Donations within the income-based limit",
		CreditFormula: "min(donation, income x 100% statutory / 30% other) x 15%",
	},
	{
		ID:            RuleBusinessVehicle,
		Name:          "Business vehicle expense limit",
		Category:      CategoryOther,
		LegalBasis:    "Corporate Tax Act Art. 27-2",
		Requirements:  "Depreciation up to 8M and rental up to 12M won per vehicle are deductible",
		CreditFormula: "Deduction ceiling check only; no credit",
	},
}

// Catalog returns a copy of the rule catalog in id order.
func Catalog() []RuleDefinition {
	out := make([]RuleDefinition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id int) (RuleDefinition, bool) {
	if id < 1 || id > len(catalog) {
		return RuleDefinition{}, false
	}
	return catalog[id-1], true
}
