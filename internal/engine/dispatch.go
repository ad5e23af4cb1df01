package engine

type evaluator func(ec EvaluationContext) Outcome

// evaluators is closed over ids 1..19. Anything else falls through to the
// unimplemented outcome in Evaluate.
var evaluators = map[int]evaluator{
	RuleEmploymentIncrease:      evalEmploymentIncrease,
	RuleYouthEmployment:         evalYouthEmployment,
	RuleDisabledEmployment:      evalDisabledEmployment,
	RuleCareerBreakWomen:        evalCareerBreakWomen,
	RuleSocialInsurance:         evalSocialInsurance,
	RuleSMESpecialReduction:     evalSMESpecialReduction,
	RuleStartupSME:              evalStartupSME,
	RuleManufacturingRelocation: evalManufacturingRelocation,
	RuleSocialEnterprise:        evalSocialEnterprise,
	RuleYouthStartup:            evalYouthStartup,
	RuleProductivityFacility:    evalProductivityFacility,
	RuleEnergyFacility:          evalEnergyFacility,
	RuleSafetyFacility:          evalSafetyFacility,
	RuleSmartFactory:            evalSmartFactory,
	RuleRndGeneral:              evalRndGeneral,
	RuleRndDesign:               evalRndDesign,
	RuleRndNewTechnology:        evalRndNewTechnology,
	RuleDonation:                evalDonation,
	RuleBusinessVehicle:         evalBusinessVehicle,
}

// UnimplementedReason is reported for rule ids outside the catalog.
const UnimplementedReason = "unimplemented rule"

// Evaluate runs the evaluator registered for rule.ID. Unknown ids return an
// ineligible outcome rather than an error.
func Evaluate(rule RuleDefinition, ec EvaluationContext) Outcome {
	fn, ok := evaluators[rule.ID]
	var out Outcome
	if ok {
		out = fn(ec)
	} else {
		out = ineligible(UnimplementedReason, nil)
	}
	if !out.Eligible {
		out.CreditAmount = 0
	}
	out.RuleID = rule.ID
	out.RuleName = rule.Name
	out.Category = rule.Category
	return out
}

// RunAssessment evaluates every rule in catalog order and sums the credit of
// the eligible ones. All rules are always evaluated.
func RunAssessment(rules []RuleDefinition, ec EvaluationContext) Assessment {
	res := Assessment{Outcomes: make([]Outcome, 0, len(rules))}
	for _, rule := range rules {
		out := Evaluate(rule, ec)
		if out.Eligible {
			res.TotalCredit += out.CreditAmount
			res.EligibleCount++
		}
		res.Outcomes = append(res.Outcomes, out)
	}
	return res
}
