package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de factura. PENDIENTE es el estado inicial; PAGADA y CANCELADA son
// terminales. Una factura a crédito permanece PENDIENTE hasta que el pago se
// registre vía cuentas por cobrar/pagar.
const (
	FacturaPendiente = "PENDIENTE"
	FacturaPagada    = "PAGADA"
	FacturaCancelada = "CANCELADA"
)

const (
	FacturaTipoVenta  = "venta"
	FacturaTipoCompra = "compra"
)

// Factura is a sale ("venta") or purchase ("compra") invoice.
// Invariant: Total = Subtotal + ItbisTotal - Descuento.
// ClienteID references clientes for ventas and proveedores for compras.
type Factura struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo      string    `gorm:"type:varchar(10);not null"` // "venta" | "compra"
	Estado    string    `gorm:"type:varchar(20);not null;default:'PENDIENTE'"`

	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ItbisTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Descuento  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	MetodoPago string `gorm:"type:varchar(20);not null"` // efectivo | tarjeta | transferencia | credito
	// FechaVencimiento is required iff MetodoPago = "credito"
	FechaVencimiento *time.Time

	// NCF is the fiscal document number: {B01|B02}{YYMMDD}{secuencia:010d}
	NCF                string  `gorm:"type:varchar(19);uniqueIndex;not null"`
	CodigoAutorizacion *string `gorm:"type:varchar(10)"`

	TurnoID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time

	Detalles []DetalleFactura `gorm:"foreignKey:FacturaID"`
}

func (Factura) TableName() string { return "facturas" }

// DetalleFactura is one line of a factura. Created atomically with its
// factura, never mutated afterwards.
type DetalleFactura struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FacturaID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad   int             `gorm:"not null"`
	Precio     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Itbis      bool            `gorm:"not null;default:false"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (DetalleFactura) TableName() string { return "detalle_factura" }

// NCFSecuencia backs the per-day, per-tipo document number counter.
// Secuencia is incremented atomically inside the invoice transaction; the
// generator additionally serializes reservations with a process-wide mutex.
type NCFSecuencia struct {
	Tipo      string `gorm:"type:varchar(3);primaryKey"`
	Fecha     string `gorm:"type:varchar(6);primaryKey"` // YYMMDD
	Secuencia int64  `gorm:"not null"`
}

func (NCFSecuencia) TableName() string { return "ncf_secuencias" }
