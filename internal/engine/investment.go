package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Facility types accepted by the investment rules.
const (
	FacilityAutomation           = "automation"
	FacilityInformationSystem    = "information_system"
	FacilityMeasurement          = "measurement"
	FacilityEnergySaving         = "energy_saving"
	FacilityGreenhouseGas        = "greenhouse_gas"
	FacilityEnvironmental        = "environmental"
	FacilityFirePrevention       = "fire_prevention"
	FacilityProtectiveGear       = "protective_gear"
	FacilityWorkplaceImprovement = "workplace_improvement"
	FacilitySmartFactory         = "smart_factory"
)

const (
	minFacilityInvestment     int64 = 10_000_000
	minSmartFactoryInvestment int64 = 100_000_000
)

// sizeRates is a rate table keyed by size. Any size outside the table,
// including large, takes the fallback rate.
type sizeRates struct {
	smallMedium decimal.Decimal
	midSize     decimal.Decimal
	fallback    decimal.Decimal
}

func (r sizeRates) forSize(s Size) decimal.Decimal {
	switch s {
	case SizeSmallMedium:
		return r.smallMedium
	case SizeMidSize:
		return r.midSize
	default:
		return r.fallback
	}
}

var (
	productivityRates = sizeRates{smallMedium: pct(10), midSize: pct(5), fallback: pct(3)}
	energyRates       = sizeRates{smallMedium: pct(10), midSize: pct(5), fallback: pct(3)}
	safetyRates       = sizeRates{smallMedium: pct(10), midSize: pct(7), fallback: pct(3)}
	smartFactoryRates = sizeRates{smallMedium: pct(15), midSize: pct(10), fallback: pct(5)}
)

type facilityRule struct {
	label   string
	match   func(facilityType string) bool
	minimum int64
	rates   sizeRates
}

func whitelist(types ...string) func(string) bool {
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return func(facilityType string) bool {
		return set[canonicalFacility(facilityType)]
	}
}

func isSmartFactory(facilityType string) bool {
	return strings.Contains(NormalizeTag(facilityType), FacilitySmartFactory)
}

var (
	productivityFacility = facilityRule{
		label:   "productivity facility",
		match:   whitelist(FacilityAutomation, FacilityInformationSystem, FacilityMeasurement),
		minimum: minFacilityInvestment,
		rates:   productivityRates,
	}
	energyFacility = facilityRule{
		label:   "energy/environment facility",
		match:   whitelist(FacilityEnergySaving, FacilityGreenhouseGas, FacilityEnvironmental),
		minimum: minFacilityInvestment,
		rates:   energyRates,
	}
	safetyFacility = facilityRule{
		label:   "safety facility",
		match:   whitelist(FacilityFirePrevention, FacilityProtectiveGear, FacilityWorkplaceImprovement),
		minimum: minFacilityInvestment,
		rates:   safetyRates,
	}
	smartFactoryFacility = facilityRule{
		label:   "smart factory",
		match:   isSmartFactory,
		minimum: minSmartFactoryInvestment,
		rates:   smartFactoryRates,
	}
)

func (r facilityRule) evaluate(ec EvaluationContext) Outcome {
	var total int64
	matched := 0
	for _, item := range ec.Investments {
		if item.Amount <= 0 || !r.match(item.FacilityType) {
			continue
		}
		total += item.Amount
		matched++
	}
	if total < r.minimum {
		return ineligible(
			fmt.Sprintf("Qualifying %s investment %s is below the %s minimum", r.label, won(total), won(r.minimum)),
			Details{"total_investment": total, "minimum": r.minimum, "matched_items": matched})
	}

	rate := r.rates.forSize(ec.Company.Size)
	credit := applyRate(total, rate)
	return eligible(credit,
		fmt.Sprintf("%s investment %s x %s", strings.ToUpper(r.label[:1])+r.label[1:], won(total), rateString(rate)),
		Details{
			"total_investment": total,
			"matched_items":    matched,
			"minimum":          r.minimum,
			"rate":             rate.String(),
			"size":             string(ec.Company.Size),
		})
}

func evalProductivityFacility(ec EvaluationContext) Outcome { return productivityFacility.evaluate(ec) }
func evalEnergyFacility(ec EvaluationContext) Outcome       { return energyFacility.evaluate(ec) }
func evalSafetyFacility(ec EvaluationContext) Outcome       { return safetyFacility.evaluate(ec) }
func evalSmartFactory(ec EvaluationContext) Outcome         { return smartFactoryFacility.evaluate(ec) }
