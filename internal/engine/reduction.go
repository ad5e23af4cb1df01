package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	SocialEnterpriseTypeSocialEnterprise = "social_enterprise"
	SocialEnterpriseTypeCooperative      = "cooperative"
)

const (
	startupWindowYears           = 5
	youthFounderMaxAge           = 34
	youthStartupCap        int64 = 200_000_000
	estimatedTaxPercentage       = 10
)

// industries that get the higher SME special reduction rate
var smeHighRateIndustries = map[Industry]bool{
	IndustryManufacturing: true,
	IndustryMining:        true,
	IndustryConstruction:  true,
	IndustryWholesale:     true,
	IndustryRetail:        true,
}

// taxLiability returns the caller-supplied calculated tax, or 10% of business
// income when none was supplied. The fallback is an approximation, not a tax
// computation.
func taxLiability(o OtherBundle) (int64, bool) {
	if o.CalculatedTax > 0 {
		return o.CalculatedTax, false
	}
	return applyRate(o.BusinessIncome, pct(estimatedTaxPercentage)), true
}

func liabilityDetails(amount int64, estimated bool, rate decimal.Decimal) Details {
	return Details{
		"tax_liability":           amount,
		"tax_liability_estimated": estimated,
		"rate":                    rate.String(),
	}
}

// startupYears reports how many years lie between the startup date and the tax
// year, and whether that falls inside the 5-year window.
func startupYears(ec EvaluationContext) (int, bool) {
	o := ec.other()
	if o.StartupDate == nil {
		return 0, false
	}
	years := ec.TaxYear - o.StartupDate.Year()
	return years, years >= 0 && years <= startupWindowYears
}

func evalSMESpecialReduction(ec EvaluationContext) Outcome {
	if ec.Company.Size != SizeSmallMedium {
		return ineligible("Only small-medium enterprises qualify", Details{"size": string(ec.Company.Size)})
	}
	liability, estimated := taxLiability(ec.other())
	if liability <= 0 {
		return ineligible("No tax liability or business income supplied", nil)
	}

	rate := pct(5)
	if smeHighRateIndustries[ec.Company.Industry] {
		rate = pct(10)
	}
	credit := applyRate(liability, rate)
	details := liabilityDetails(liability, estimated, rate)
	details["industry"] = string(ec.Company.Industry)
	return eligible(credit,
		fmt.Sprintf("SME in %s industry: %s x %s", ec.Company.Industry, won(liability), rateString(rate)),
		details)
}

func evalStartupSME(ec EvaluationContext) Outcome {
	o := ec.other()
	if o.StartupDate == nil {
		return ineligible("Startup date not supplied", nil)
	}
	years, ok := startupYears(ec)
	if !ok {
		return ineligible(fmt.Sprintf("%d years since startup, outside the %d-year window", years, startupWindowYears),
			Details{"years_since_startup": years})
	}
	liability, estimated := taxLiability(o)
	if liability <= 0 {
		return ineligible("No tax liability or business income supplied", nil)
	}

	rate := pct(50)
	if o.IsYouthStartup {
		rate = pct(100)
	}
	credit := applyRate(liability, rate)
	details := liabilityDetails(liability, estimated, rate)
	details["years_since_startup"] = years
	details["youth_startup"] = o.IsYouthStartup
	return eligible(credit,
		fmt.Sprintf("Startup within %d years (year %d): %s x %s", startupWindowYears, years, won(liability), rateString(rate)),
		details)
}

func evalManufacturingRelocation(ec EvaluationContext) Outcome {
	o := ec.other()
	if !o.RelocationCompleted {
		return ineligible("Relocation not completed", nil)
	}
	if ec.Company.Industry != IndustryManufacturing {
		return ineligible("Only manufacturers qualify", Details{"industry": string(ec.Company.Industry)})
	}
	if ec.Company.IsCapitalRegion {
		return ineligible("Company is still located in the capital region", nil)
	}
	liability, estimated := taxLiability(o)
	if liability <= 0 {
		return ineligible("No tax liability or business income supplied", nil)
	}

	rate := pct(100)
	credit := applyRate(liability, rate)
	return eligible(credit,
		fmt.Sprintf("Factory relocated out of the capital region: %s x %s", won(liability), rateString(rate)),
		liabilityDetails(liability, estimated, rate))
}

func evalSocialEnterprise(ec EvaluationContext) Outcome {
	o := ec.other()
	if !o.SocialEnterpriseCertified {
		return ineligible("Not a certified social enterprise", nil)
	}
	liability, estimated := taxLiability(o)
	if liability <= 0 {
		return ineligible("No tax liability or business income supplied", nil)
	}

	kind := SocialEnterpriseTypeCooperative
	rate := pct(50)
	if NormalizeTag(o.SocialEnterpriseType) == SocialEnterpriseTypeSocialEnterprise {
		kind = SocialEnterpriseTypeSocialEnterprise
		rate = pct(100)
	}
	credit := applyRate(liability, rate)
	details := liabilityDetails(liability, estimated, rate)
	details["certification_type"] = kind
	return eligible(credit,
		fmt.Sprintf("Certified %s: %s x %s", kind, won(liability), rateString(rate)),
		details)
}

func evalYouthStartup(ec EvaluationContext) Outcome {
	o := ec.other()
	if o.FounderAge <= 0 || o.FounderAge > youthFounderMaxAge {
		return ineligible(fmt.Sprintf("Founder age must be %d or younger", youthFounderMaxAge),
			Details{"founder_age": o.FounderAge})
	}
	if o.StartupDate == nil {
		return ineligible("Startup date not supplied", nil)
	}
	years, ok := startupYears(ec)
	if !ok {
		return ineligible(fmt.Sprintf("%d years since startup, outside the %d-year window", years, startupWindowYears),
			Details{"years_since_startup": years})
	}
	liability, estimated := taxLiability(o)
	if liability <= 0 {
		return ineligible("No tax liability or business income supplied", nil)
	}

	rate := pct(100)
	raw := applyRate(liability, rate)
	credit := minInt64(raw, youthStartupCap)
	details := liabilityDetails(liability, estimated, rate)
	details["founder_age"] = o.FounderAge
	details["years_since_startup"] = years
	details["cap"] = youthStartupCap
	details["capped"] = raw > youthStartupCap
	return eligible(credit,
		fmt.Sprintf("Founder aged %d, startup year %d: %s x %s, cap %s", o.FounderAge, years, won(liability), rateString(rate), won(youthStartupCap)),
		details)
}
