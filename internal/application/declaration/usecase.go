// Package declaration expone el resumen mensual de IGV de una empresa.
package declaration

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/declaration"
	"github.com/contaperu/contaperu-api/internal/domain/repository"
)

// UseCase resumen del periodo a partir de los comprobantes importados.
type UseCase struct {
	comprobantes repository.ComprobanteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(comprobantes repository.ComprobanteRepository) *UseCase {
	return &UseCase{comprobantes: comprobantes}
}

// Summary resumen de period (YYYY-MM). previousCredit es el saldo a favor
// arrastrado del periodo anterior.
func (uc *UseCase) Summary(ctx context.Context, companyID, period string, previousCredit decimal.Decimal) (*dto.DeclarationResponse, error) {
	if _, _, err := declaration.ParsePeriod(period); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if previousCredit.IsNegative() {
		return nil, fmt.Errorf("%w: el saldo a favor anterior no puede ser negativo", domain.ErrInvalidInput)
	}
	list, err := uc.comprobantes.ListByPeriod(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	s := declaration.Summarize(period, list, previousCredit)
	return &dto.DeclarationResponse{
		Period:             s.Period,
		SalesBase:          s.SalesBase,
		SalesIGV:           s.SalesIGV,
		SalesExonerated:    s.SalesExonerated,
		SalesUnaffected:    s.SalesUnaffected,
		PurchasesBase:      s.PurchasesBase,
		PurchasesIGV:       s.PurchasesIGV,
		PreviousCredit:     s.PreviousCredit,
		IGVPayable:         s.IGVPayable,
		CreditCarryforward: s.CreditCarryforward,
		SalesCount:         s.SalesCount,
		PurchasesCount:     s.PurchasesCount,
		ForeignCurrency:    s.ForeignCurrency,
	}, nil
}
