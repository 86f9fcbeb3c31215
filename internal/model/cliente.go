package model

import (
	"time"

	"github.com/google/uuid"
)

// CedulaConsumidorFinal identifies the walk-in customer record. Sales with
// no named customer resolve (or lazily create) the row with this cedula.
const CedulaConsumidorFinal = "9999999999"

type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Cedula    string    `gorm:"uniqueIndex;not null"`
	Telefono  string
	Direccion string
	Correo    string
	Tipo      string `gorm:"type:varchar(20);not null;default:'regular'"`
	Estado    string `gorm:"type:varchar(10);not null;default:'activo'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
