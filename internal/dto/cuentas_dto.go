package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegistrarPagoRequest struct {
	Monto decimal.Decimal `json:"monto" binding:"required"`
}

// CuentaResponse serves both receivables and payables. Estado is derived at
// read time: an unpaid account past its due date reports "vencida".
type CuentaResponse struct {
	ID               string          `json:"id"`
	FacturaID        string          `json:"factura_id"`
	NCF              string          `json:"ncf,omitempty"`
	Contraparte      string          `json:"contraparte"`
	MontoTotal       decimal.Decimal `json:"monto_total"`
	MontoPagado      decimal.Decimal `json:"monto_pagado"`
	MontoPendiente   decimal.Decimal `json:"monto_pendiente"`
	FechaEmision     time.Time       `json:"fecha_emision"`
	FechaVencimiento time.Time       `json:"fecha_vencimiento"`
	Estado           string          `json:"estado"`
}
