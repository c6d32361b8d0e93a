package domain

import "github.com/shopspring/decimal"

// RemainingBalance = allowance - total expense. May go negative when a trip overspends.
func RemainingBalance(allowance, totalExpense decimal.Decimal) decimal.Decimal {
	return allowance.Sub(totalExpense).Round(2)
}

// SettlementDifference = returned - remaining. Positive means the driver returned more than expected.
func SettlementDifference(returned, remaining decimal.Decimal) decimal.Decimal {
	return returned.Sub(remaining).Round(2)
}
