package inventory

import "github.com/shopspring/decimal"

// AverageCost implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((SaldoPrevio * CostoActual) + (CantEntrada * CostoEntrada)) / (SaldoPrevio + CantEntrada)
//
// SaldoPrevio es el saldo global del repuesto en TODAS las ubicaciones ANTES de
// aplicar la entrada; debe leerse en la misma transacción que acredita la
// recepción, de lo contrario la cantidad entrante se contaría dos veces.
// Si el saldo previo es <= 0, el promedio pasa a ser el costo de la entrada.
func AverageCost(priorQty int64, priorCost decimal.Decimal, inQty int64, inCost decimal.Decimal) decimal.Decimal {
	if priorQty <= 0 {
		return inCost
	}
	prior := decimal.NewFromInt(priorQty)
	in := decimal.NewFromInt(inQty)
	num := prior.Mul(priorCost).Add(in.Mul(inCost))
	return num.Div(prior.Add(in))
}
