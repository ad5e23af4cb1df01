package engine

import "fmt"

type regionRate struct {
	nonCapital int64
	capital    int64
}

// per-head employment increase amounts by size and capital region
var employmentIncreaseRates = map[Size]regionRate{
	SizeSmallMedium: {nonCapital: 12_000_000, capital: 11_000_000},
	SizeMidSize:     {nonCapital: 10_000_000, capital: 9_000_000},
	SizeLarge:       {nonCapital: 5_000_000, capital: 4_500_000},
}

var youthEmploymentRates = map[Size]int64{
	SizeSmallMedium: 12_000_000,
	SizeMidSize:     10_000_000,
	SizeLarge:       5_000_000,
}

const (
	disabledPerHead         int64 = 9_600_000
	careerBreakPerHead      int64 = 11_000_000
	careerBreakMaxYears           = 2
	insuranceCapPerHead     int64 = 1_000_000
	insuranceRatePercentage       = 25
)

func evalEmploymentIncrease(ec EvaluationContext) Outcome {
	emp := ec.employment()
	if emp.EmployeeIncrease <= 0 {
		return ineligible("No increase in full-time employees", nil)
	}

	rates, ok := employmentIncreaseRates[ec.Company.Size]
	if !ok {
		rates = employmentIncreaseRates[SizeLarge]
	}
	perHead := rates.nonCapital
	region := "non-capital region"
	if ec.Company.IsCapitalRegion {
		perHead = rates.capital
		region = "capital region"
	}

	credit := perHead * emp.EmployeeIncrease
	return eligible(credit,
		fmt.Sprintf("Headcount increased by %s (%s, %s): %s per head", count(emp.EmployeeIncrease), ec.Company.Size, region, won(perHead)),
		Details{
			"employee_increase": emp.EmployeeIncrease,
			"per_head_amount":   perHead,
			"capital_region":    ec.Company.IsCapitalRegion,
			"size":              string(ec.Company.Size),
		})
}

func evalYouthEmployment(ec EvaluationContext) Outcome {
	emp := ec.employment()
	if emp.YouthEmployees <= 0 {
		return ineligible("No youth employees hired", nil)
	}

	perHead, ok := youthEmploymentRates[ec.Company.Size]
	if !ok {
		perHead = youthEmploymentRates[SizeLarge]
	}
	credit := perHead * emp.YouthEmployees
	return eligible(credit,
		fmt.Sprintf("%s youth employees hired: %s per head", count(emp.YouthEmployees), won(perHead)),
		Details{
			"youth_employees": emp.YouthEmployees,
			"per_head_amount": perHead,
			"size":            string(ec.Company.Size),
		})
}

func evalDisabledEmployment(ec EvaluationContext) Outcome {
	emp := ec.employment()
	if emp.DisabledEmployees <= 0 {
		return ineligible("No disabled employees hired", nil)
	}

	credit := disabledPerHead * emp.DisabledEmployees
	return eligible(credit,
		fmt.Sprintf("%s disabled employees hired: %s per head", count(emp.DisabledEmployees), won(disabledPerHead)),
		Details{
			"disabled_employees": emp.DisabledEmployees,
			"per_head_amount":    disabledPerHead,
		})
}

func evalCareerBreakWomen(ec EvaluationContext) Outcome {
	emp := ec.employment()
	if emp.CareerBreakWomen <= 0 {
		return ineligible("No career-break women re-employed", nil)
	}

	credit := careerBreakPerHead * emp.CareerBreakWomen
	// max_benefit_years is informational; multi-year usage is tracked by the caller.
	return eligible(credit,
		fmt.Sprintf("%s career-break women re-employed: %s per head (up to %d years)", count(emp.CareerBreakWomen), won(careerBreakPerHead), careerBreakMaxYears),
		Details{
			"career_break_women": emp.CareerBreakWomen,
			"per_head_amount":    careerBreakPerHead,
			"max_benefit_years":  careerBreakMaxYears,
		})
}

func evalSocialInsurance(ec EvaluationContext) Outcome {
	if ec.Company.Size != SizeSmallMedium {
		return ineligible("Only small-medium enterprises qualify", Details{"size": string(ec.Company.Size)})
	}
	emp := ec.employment()
	if emp.InsurancePaid <= 0 {
		return ineligible("No employer social insurance contributions", nil)
	}
	heads := emp.EmployeeIncrease + emp.YouthEmployees
	if heads <= 0 {
		return ineligible("No headcount increase to support the credit", nil)
	}

	rate := pct(insuranceRatePercentage)
	raw := applyRate(emp.InsurancePaid, rate)
	limit := insuranceCapPerHead * heads
	credit := minInt64(raw, limit)
	return eligible(credit,
		fmt.Sprintf("Contributions %s x %s = %s, limit %s", won(emp.InsurancePaid), rateString(rate), won(raw), won(limit)),
		Details{
			"insurance_paid": emp.InsurancePaid,
			"rate":           rate.String(),
			"raw_credit":     raw,
			"limit_heads":    heads,
			"limit":          limit,
			"capped":         raw > limit,
		})
}
