package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MovStockEntrada = "Entrada"
	MovStockSalida  = "Salida"
	MovStockAjuste  = "Ajuste"
)

// MovimientoStock is the inventory audit trail. Every stock mutation
// (invoice lines, manual adjustments, reversals) appends one row here.
type MovimientoStock struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Tipo        string    `gorm:"type:varchar(10);not null"`
	Cantidad    int       `gorm:"not null"`
	Responsable string    `gorm:"not null"`
	Motivo      string
	FacturaID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (MovimientoStock) TableName() string { return "movimientos" }
