package utils

import "math"

// MonthlyPayment computes the equated monthly installment for an
// amortizing loan: P*r*(1+r)^n / ((1+r)^n - 1), where r is the monthly
// rate and n the number of months. A zero rate degenerates to straight
// division.
func MonthlyPayment(principal, annualRatePercent float64, months int) float64 {
	if months <= 0 || principal <= 0 {
		return 0
	}

	r := annualRatePercent / 12 / 100
	if r == 0 {
		return principal / float64(months)
	}

	factor := math.Pow(1+r, float64(months))
	return principal * r * factor / (factor - 1)
}

// TotalPayable is the sum of all installments for a plan.
func TotalPayable(principal, annualRatePercent float64, months int) float64 {
	return MonthlyPayment(principal, annualRatePercent, months) * float64(months)
}
