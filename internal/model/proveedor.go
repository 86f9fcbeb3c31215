package model

import (
	"time"

	"github.com/google/uuid"
)

type Proveedor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	RNCCedula string    `gorm:"column:rnc_cedula;uniqueIndex;not null"`
	Telefono  string
	Direccion string
	Email     string
	Estado    string `gorm:"type:varchar(10);not null;default:'activo'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Proveedor) TableName() string { return "proveedores" }
