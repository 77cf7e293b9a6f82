package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado tras un ingreso (método del Anexo 2 / PLE 13.1).
// nuevoCosto = ((stock * costo) + (cantIngreso * costoIngreso)) / (stock + cantIngreso)
func WeightedAverageCost(stock, cost, inQty, inCost decimal.Decimal) decimal.Decimal {
	sum := stock.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stock.Mul(cost).Add(inQty.Mul(inCost))
	return num.DivRound(sum, 6)
}
