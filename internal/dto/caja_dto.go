package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AbrirTurnoRequest struct {
	MontoInicial decimal.Decimal `json:"monto_inicial" binding:"required"`
}

type CerrarTurnoRequest struct {
	MontoEfectivo decimal.Decimal `json:"monto_efectivo" binding:"required"`
	MontoTarjeta  decimal.Decimal `json:"monto_tarjeta" binding:"required"`
	MontoTotal    decimal.Decimal `json:"monto_total" binding:"required"`
	Observaciones string          `json:"observaciones"`
}

type MovimientoCajaRequest struct {
	Tipo        string          `json:"tipo" binding:"required,oneof=venta gasto ingreso_manual egreso_manual"`
	MetodoPago  string          `json:"metodo_pago" binding:"required,oneof=efectivo tarjeta transferencia"`
	Descripcion string          `json:"descripcion" binding:"required"`
	Monto       decimal.Decimal `json:"monto" binding:"required"`
	FacturaID   *string         `json:"factura_id" binding:"omitempty,uuid"`
}

type MovimientoCajaResponse struct {
	ID          string          `json:"id"`
	Tipo        string          `json:"tipo"`
	MetodoPago  string          `json:"metodo_pago"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	FacturaID   *string         `json:"factura_id,omitempty"`
	Fecha       time.Time       `json:"fecha"`
}

type TurnoResponse struct {
	ID            string          `json:"id"`
	Estado        string          `json:"estado"`
	Cajero        string          `json:"cajero"`
	MontoInicial  decimal.Decimal `json:"monto_inicial"`
	FechaApertura time.Time       `json:"fecha_apertura"`
}

// EstadisticasTurno captures invoice activity of a shift. The close flow
// computes it against paid sale invoices before flipping the shift state.
type EstadisticasTurno struct {
	FacturasEmitidas int64           `json:"facturas_emitidas"`
	TotalFacturado   decimal.Decimal `json:"total_facturado"`
	UltimaFactura    *string         `json:"ultima_factura,omitempty"`
}

type CerrarTurnoResponse struct {
	ID            string            `json:"id"`
	Estado        string            `json:"estado"`
	FechaCierre   time.Time         `json:"fecha_cierre"`
	MontoInicial  decimal.Decimal   `json:"monto_inicial"`
	MontoEfectivo decimal.Decimal   `json:"monto_efectivo"`
	MontoTarjeta  decimal.Decimal   `json:"monto_tarjeta"`
	MontoTotal    decimal.Decimal   `json:"monto_total"`
	Estadisticas  EstadisticasTurno `json:"estadisticas"`
}

type EstadoCajaResponse struct {
	Abierta       bool                     `json:"abierta"`
	TurnoID       *string                  `json:"turno_id,omitempty"`
	Cajero        *string                  `json:"cajero,omitempty"`
	FechaApertura *time.Time               `json:"fecha_apertura,omitempty"`
	MontoInicial  *decimal.Decimal         `json:"monto_inicial,omitempty"`
	Movimientos   []MovimientoCajaResponse `json:"movimientos"`
	Estadisticas  EstadisticasTurno        `json:"estadisticas"`
}
