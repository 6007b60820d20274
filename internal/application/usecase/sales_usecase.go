package usecase

import (
	"github.com/jhoicas/petstore-sync/internal/application/dto"
	"github.com/jhoicas/petstore-sync/internal/domain/sales"
)

// SalesUseCase cálculo de totales de ventas y devoluciones.
type SalesUseCase struct{}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase() *SalesUseCase {
	return &SalesUseCase{}
}

// Totals calcula el desglose de una venta; con Devolucion=true devuelve la
// nota crédito (montos negados).
func (uc *SalesUseCase) Totals(in dto.SaleTotalsRequest) (*dto.SaleTotalsResponse, error) {
	lines := make([]sales.Line, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, sales.Line{Price: l.Price, Quantity: l.Quantity})
	}
	t, err := sales.Calculate(lines, in.Discount)
	if err != nil {
		return nil, err
	}
	if in.CreditNote {
		t = sales.CreditNote(t)
	}
	return &dto.SaleTotalsResponse{
		Subtotal: t.Subtotal,
		Discount: t.Discount,
		IVA:      t.IVA,
		Total:    t.Total,
	}, nil
}
