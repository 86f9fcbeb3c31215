package model

import (
	"time"

	"github.com/google/uuid"
)

// Impresora is the printer the agent routes tickets to. At most one row is
// kept active; saving a new configuration replaces the previous one.
type Impresora struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Tipo      string
	Modelo    string
	IP        string
	Ubicacion string
	Activa    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Impresora) TableName() string { return "impresoras" }
