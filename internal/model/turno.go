package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TurnoAbierto = "abierta"
	TurnoCerrado = "cerrada"
)

// Turno represents the lifecycle of a cash register shift.
// Estado: "abierta" | "cerrada"
// At most one turno may be "abierta" at any time; a partial unique index on
// turnos(estado) WHERE estado = 'abierta' enforces this in storage, so the
// check-then-insert in the service is only a fast path.
type Turno struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Estado       string          `gorm:"type:varchar(20);not null;default:'abierta'"`
	Cajero       string          `gorm:"not null"`
	MontoInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Montos declarados al cierre, por método de pago
	MontoFinalEfectivo *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MontoFinalTarjeta  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MontoFinalTotal    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Observaciones      *string
	FechaApertura      time.Time `gorm:"autoCreateTime"`
	FechaCierre        *time.Time

	Movimientos []MovimientoCaja `gorm:"foreignKey:TurnoID"`
}

func (Turno) TableName() string { return "turnos" }

// MovimientoCaja is an immutable event in the cash register ledger.
// Tipo: "venta" | "gasto" | "ingreso_manual" | "egreso_manual"
// Movements are NEVER modified or deleted once created. A movement tied to a
// factura is unique per (turno, factura); movements tied to compra facturas
// are excluded from the estado-actual view.
type MovimientoCaja struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TurnoID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	FacturaID   *uuid.UUID      `gorm:"type:uuid"`
	Tipo        string          `gorm:"type:varchar(20);not null"`
	MetodoPago  string          `gorm:"type:varchar(20);not null"`
	Descripcion string          `gorm:"not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time
}

func (MovimientoCaja) TableName() string { return "movimientos_caja" }
