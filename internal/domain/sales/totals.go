package sales

import (
	"github.com/jhoicas/petstore-sync/internal/domain"
	"github.com/shopspring/decimal"
)

// IVARate tarifa de IVA aplicada a las ventas de la tienda (19%, Colombia).
var IVARate = decimal.NewFromFloat(0.19)

// Line renglón de una venta o devolución.
type Line struct {
	Price    decimal.Decimal
	Quantity int
}

// Totals desglose monetario de una venta.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	IVA      decimal.Decimal
	Total    decimal.Decimal
}

// Calculate calcula los totales de una venta: subtotal de renglones, menos
// descuento, más IVA sobre la base gravable. Redondeo a 2 decimales al final
// de cada componente, nunca por renglón.
func Calculate(lines []Line, discount decimal.Decimal) (*Totals, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	subtotal := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 || l.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	if discount.IsNegative() || discount.GreaterThan(subtotal) {
		return nil, domain.ErrInvalidInput
	}
	base := subtotal.Sub(discount)
	iva := base.Mul(IVARate).Round(2)
	return &Totals{
		Subtotal: subtotal.Round(2),
		Discount: discount.Round(2),
		IVA:      iva,
		Total:    base.Round(2).Add(iva),
	}, nil
}

// CreditNote devuelve los totales negados de una venta, para registrar una
// devolución como nota crédito.
func CreditNote(t *Totals) *Totals {
	return &Totals{
		Subtotal: t.Subtotal.Neg(),
		Discount: t.Discount.Neg(),
		IVA:      t.IVA.Neg(),
		Total:    t.Total.Neg(),
	}
}
