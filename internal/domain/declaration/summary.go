// Package declaration calcula el resumen mensual de IGV (PDT 621) a partir de
// los comprobantes importados.
package declaration

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/pkg/sunat"
)

// BaseCurrency moneda en la que se declara. Los comprobantes en otra moneda se
// cuentan aparte y no entran en los importes.
const BaseCurrency = "PEN"

// Summary resumen del periodo.
type Summary struct {
	Period             string
	SalesBase          decimal.Decimal
	SalesIGV           decimal.Decimal
	SalesExonerated    decimal.Decimal
	SalesUnaffected    decimal.Decimal
	PurchasesBase      decimal.Decimal
	PurchasesIGV       decimal.Decimal
	PreviousCredit     decimal.Decimal
	IGVPayable         decimal.Decimal
	CreditCarryforward decimal.Decimal
	SalesCount         int
	PurchasesCount     int
	ForeignCurrency    int
}

// ParsePeriod valida un periodo YYYY-MM y devuelve el rango [desde, hasta).
func ParsePeriod(period string) (from, to time.Time, err error) {
	from, err = time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("periodo inválido %q (formato YYYY-MM)", period)
	}
	return from, from.AddDate(0, 1, 0), nil
}

// Summarize agrega ventas y compras del periodo. Las notas de crédito restan y
// las notas de débito suman. previousCredit es el saldo a favor del periodo anterior.
//
//	igv_payable         = max(0, igv_ventas - igv_compras - saldo_anterior)
//	credit_carryforward = max(0, -(igv_ventas - igv_compras - saldo_anterior))
func Summarize(period string, comprobantes []*entity.Comprobante, previousCredit decimal.Decimal) Summary {
	s := Summary{Period: period, PreviousCredit: previousCredit}
	for _, c := range comprobantes {
		if c == nil {
			continue
		}
		if c.Currency != "" && c.Currency != BaseCurrency {
			s.ForeignCurrency++
			continue
		}
		sign := sign(c.DocumentType)
		base := c.BaseAmount.Mul(sign)
		igv := c.IGVAmount.Mul(sign)
		switch c.Direction {
		case entity.DirectionVenta:
			s.SalesBase = s.SalesBase.Add(base)
			s.SalesIGV = s.SalesIGV.Add(igv)
			s.SalesExonerated = s.SalesExonerated.Add(c.ExoneratedAmount.Mul(sign))
			s.SalesUnaffected = s.SalesUnaffected.Add(c.UnaffectedAmount.Mul(sign))
			s.SalesCount++
		case entity.DirectionCompra:
			s.PurchasesBase = s.PurchasesBase.Add(base)
			s.PurchasesIGV = s.PurchasesIGV.Add(igv)
			s.PurchasesCount++
		}
	}

	balance := s.SalesIGV.Sub(s.PurchasesIGV).Sub(previousCredit)
	if balance.IsPositive() {
		s.IGVPayable = balance.Round(2)
		s.CreditCarryforward = decimal.Zero
	} else {
		s.IGVPayable = decimal.Zero
		s.CreditCarryforward = balance.Neg().Round(2)
	}
	return s
}

func sign(docType string) decimal.Decimal {
	if docType == sunat.DocTypeNotaCredito {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}
