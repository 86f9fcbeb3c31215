package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CuentaPendiente = "pendiente"
	CuentaParcial   = "parcial"
	CuentaPagada    = "pagada"
)

// CuentaPorCobrar tracks an outstanding receivable created by a credit sale.
// Estado transitions pendiente -> parcial -> pagada as payments accumulate.
type CuentaPorCobrar struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FacturaID        uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	ClienteID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	MontoTotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoPagado      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FechaEmision     time.Time       `gorm:"not null"`
	FechaVencimiento time.Time       `gorm:"not null"`
	Estado           string          `gorm:"type:varchar(10);not null;default:'pendiente'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
	Factura *Factura `gorm:"foreignKey:FacturaID"`
}

func (CuentaPorCobrar) TableName() string { return "cuentas_por_cobrar" }

// CuentaPorPagar mirrors CuentaPorCobrar for credit purchases.
type CuentaPorPagar struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FacturaID        uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	ProveedorID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	MontoTotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoPagado      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FechaEmision     time.Time       `gorm:"not null"`
	FechaVencimiento time.Time       `gorm:"not null"`
	Estado           string          `gorm:"type:varchar(10);not null;default:'pendiente'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
	Factura   *Factura   `gorm:"foreignKey:FacturaID"`
}

func (CuentaPorPagar) TableName() string { return "cuentas_por_pagar" }
