package engine

import "fmt"

// DonationTypeStatutory donations may be deducted up to 100% of business
// income; every other type is limited to 30%.
const DonationTypeStatutory = "statutory"

const (
	donationCreditPercentage         = 15
	statutoryDonationLimitPercentage = 100
	otherDonationLimitPercentage     = 30

	vehicleDepreciationCapPerVehicle int64 = 8_000_000
	vehicleRentalCapPerVehicle       int64 = 12_000_000
)

func evalDonation(ec EvaluationContext) Outcome {
	o := ec.other()
	if o.DonationAmount <= 0 {
		return ineligible("No donations supplied", nil)
	}

	limitRate := pct(otherDonationLimitPercentage)
	if NormalizeTag(o.DonationType) == DonationTypeStatutory {
		limitRate = pct(statutoryDonationLimitPercentage)
	}
	limit := applyRate(o.BusinessIncome, limitRate)
	eligibleAmount := minInt64(o.DonationAmount, limit)
	details := Details{
		"donation_amount": o.DonationAmount,
		"donation_type":   o.DonationType,
		"business_income": o.BusinessIncome,
		"limit_rate":      limitRate.String(),
		"limit":           limit,
		"eligible_amount": eligibleAmount,
	}
	if eligibleAmount <= 0 {
		return ineligible("Donation limit is zero without business income", details)
	}

	rate := pct(donationCreditPercentage)
	credit := applyRate(eligibleAmount, rate)
	details["rate"] = rate.String()
	return eligible(credit,
		fmt.Sprintf("Deductible donation %s (limit %s) x %s", won(eligibleAmount), won(limit), rateString(rate)),
		details)
}

// evalBusinessVehicle checks deduction ceilings for business vehicles. It never
// produces a credit; eligibility only signals that some expense is deductible.
func evalBusinessVehicle(ec EvaluationContext) Outcome {
	o := ec.other()
	if o.VehicleCount <= 0 {
		return ineligible("No business vehicles supplied", nil)
	}
	if o.VehicleDepreciation <= 0 && o.VehicleRental <= 0 && o.VehicleFuel <= 0 {
		return ineligible("No vehicle expenses supplied", Details{"vehicle_count": o.VehicleCount})
	}

	depreciation := maxInt64(o.VehicleDepreciation, 0)
	rental := maxInt64(o.VehicleRental, 0)
	fuel := maxInt64(o.VehicleFuel, 0)

	depreciationLimit := vehicleDepreciationCapPerVehicle * o.VehicleCount
	rentalLimit := vehicleRentalCapPerVehicle * o.VehicleCount
	depreciationEligible := minInt64(depreciation, depreciationLimit)
	rentalEligible := minInt64(rental, rentalLimit)
	depreciationExcess := depreciation - depreciationEligible
	rentalExcess := rental - rentalEligible
	totalEligible := depreciationEligible + rentalEligible + fuel

	out := eligible(0,
		fmt.Sprintf("%s vehicles: deductible %s, over limit %s", count(o.VehicleCount), won(totalEligible), won(depreciationExcess+rentalExcess)),
		Details{
			"vehicle_count":         o.VehicleCount,
			"depreciation":          depreciation,
			"depreciation_limit":    depreciationLimit,
			"depreciation_eligible": depreciationEligible,
			"depreciation_excess":   depreciationExcess,
			"rental":                rental,
			"rental_limit":          rentalLimit,
			"rental_eligible":       rentalEligible,
			"rental_excess":         rentalExcess,
			"fuel_eligible":         fuel,
			"total_eligible":        totalEligible,
			"total_excess":          depreciationExcess + rentalExcess,
		})
	out.CreditAmount = 0
	return out
}
