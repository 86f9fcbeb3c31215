package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RolAdmin  = "admin"
	RolCajero = "cajero"
)

type Usuario struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username       string    `gorm:"uniqueIndex;not null"`
	PasswordHash   string    `gorm:"not null"`
	NombreCompleto string
	Rol            string `gorm:"type:varchar(10);not null;default:'cajero'"`
	Activo         bool   `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Usuario) TableName() string { return "usuarios" }
