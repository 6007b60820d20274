package dto

import "github.com/shopspring/decimal"

// SaleLineRequest renglón de venta para el cálculo de totales.
type SaleLineRequest struct {
	Price    decimal.Decimal `json:"precio" validate:"required"`
	Quantity int             `json:"cantidad" validate:"required,min=1"`
}

// SaleTotalsRequest entrada del cálculo de totales de venta o devolución.
type SaleTotalsRequest struct {
	Lines      []SaleLineRequest `json:"renglones" validate:"required,min=1,dive"`
	Discount   decimal.Decimal   `json:"descuento"`
	CreditNote bool              `json:"devolucion"` // true = nota crédito (montos negados)
}

// SaleTotalsResponse desglose calculado.
type SaleTotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"descuento"`
	IVA      decimal.Decimal `json:"iva"`
	Total    decimal.Decimal `json:"total"`
}
