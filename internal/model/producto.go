package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog item. StockActual is mutated transactionally with
// invoice creation: decremented by venta lines, incremented by compra lines.
// Estado: "activo" | "inactivo" — inactive products cannot be invoiced.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo      string    `gorm:"uniqueIndex;not null"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	PrecioCosto decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrecioVenta decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// TasaItbis is the tax percentage applied when a line has the itbis flag
	TasaItbis   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:18"`
	StockActual int             `gorm:"not null;default:0"`
	StockMinimo int             `gorm:"not null;default:5"`
	StockMaximo int             `gorm:"not null;default:0"`
	Estado      string          `gorm:"type:varchar(10);not null;default:'activo'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Producto) TableName() string { return "productos" }
