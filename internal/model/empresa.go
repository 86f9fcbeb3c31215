package model

import (
	"time"

	"github.com/google/uuid"
)

// Empresa holds the business identity printed on tickets and PDFs.
// The table holds a single row; Get falls back to defaults when empty.
type Empresa struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null"`
	RNC          string
	Telefono     string
	Direccion    string
	MensajeLegal string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Empresa) TableName() string { return "empresa" }
