package engine

import "fmt"

// R&D expense categories.
const (
	RndGeneral         = "general"
	RndNewGrowthEngine = "new_growth_engine"
	RndDesign          = "design"
	RndNewTechnology   = "new_technology"
)

const minRndExpense int64 = 1_000_000

var (
	rndGeneralRates       = sizeRates{smallMedium: pct(25), midSize: pct(15), fallback: pct(5)}
	rndNewGrowthRates     = sizeRates{smallMedium: pct(30), midSize: pct(20), fallback: pct(10)}
	rndDesignRates        = sizeRates{smallMedium: pct(25), midSize: pct(15), fallback: pct(5)}
	rndNewTechnologyRates = sizeRates{smallMedium: pct(30), midSize: pct(20), fallback: pct(10)}
)

// evalRndGeneral prices each line item at its own category rate, since a list
// may mix general and new-growth-engine expenses.
func evalRndGeneral(ec EvaluationContext) Outcome {
	var totalExpense, credit, generalExpense, newGrowthExpense int64
	for _, item := range ec.Rnd {
		if item.Expense <= 0 {
			continue
		}
		switch NormalizeTag(item.Category) {
		case RndGeneral:
			generalExpense += item.Expense
			credit += applyRate(item.Expense, rndGeneralRates.forSize(ec.Company.Size))
		case RndNewGrowthEngine:
			newGrowthExpense += item.Expense
			credit += applyRate(item.Expense, rndNewGrowthRates.forSize(ec.Company.Size))
		default:
			continue
		}
		totalExpense += item.Expense
	}
	if totalExpense < minRndExpense {
		return ineligible(
			fmt.Sprintf("General/new-growth R&D expense %s is below the %s minimum", won(totalExpense), won(minRndExpense)),
			Details{"total_expense": totalExpense, "minimum": minRndExpense})
	}

	return eligible(credit,
		fmt.Sprintf("R&D expense %s (general %s at %s, new growth %s at %s)",
			won(totalExpense),
			won(generalExpense), rateString(rndGeneralRates.forSize(ec.Company.Size)),
			won(newGrowthExpense), rateString(rndNewGrowthRates.forSize(ec.Company.Size))),
		Details{
			"total_expense":      totalExpense,
			"general_expense":    generalExpense,
			"general_rate":       rndGeneralRates.forSize(ec.Company.Size).String(),
			"new_growth_expense": newGrowthExpense,
			"new_growth_rate":    rndNewGrowthRates.forSize(ec.Company.Size).String(),
			"size":               string(ec.Company.Size),
		})
}

func evalSingleRndCategory(ec EvaluationContext, category, label string, rates sizeRates) Outcome {
	var total int64
	for _, item := range ec.Rnd {
		if item.Expense > 0 && NormalizeTag(item.Category) == category {
			total += item.Expense
		}
	}
	if total < minRndExpense {
		return ineligible(
			fmt.Sprintf("%s expense %s is below the %s minimum", label, won(total), won(minRndExpense)),
			Details{"total_expense": total, "minimum": minRndExpense})
	}

	rate := rates.forSize(ec.Company.Size)
	return eligible(applyRate(total, rate),
		fmt.Sprintf("%s expense %s x %s", label, won(total), rateString(rate)),
		Details{
			"total_expense": total,
			"rate":          rate.String(),
			"size":          string(ec.Company.Size),
		})
}

func evalRndDesign(ec EvaluationContext) Outcome {
	return evalSingleRndCategory(ec, RndDesign, "Design R&D", rndDesignRates)
}

func evalRndNewTechnology(ec EvaluationContext) Outcome {
	return evalSingleRndCategory(ec, RndNewTechnology, "New technology R&D", rndNewTechnologyRates)
}
