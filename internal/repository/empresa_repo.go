package repository

import (
	"context"
	"errors"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"

	"gorm.io/gorm"
)

type EmpresaRepository interface {
	Get(ctx context.Context) (*model.Empresa, error)
	Guardar(ctx context.Context, e *model.Empresa) error
}

type empresaRepo struct{ db *gorm.DB }

func NewEmpresaRepository(db *gorm.DB) EmpresaRepository { return &empresaRepo{db: db} }

func (r *empresaRepo) Get(ctx context.Context) (*model.Empresa, error) {
	var e model.Empresa
	err := r.db.WithContext(ctx).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.Empresa{Nombre: "MINI MARKET"}, nil
	}
	return &e, err
}

func (r *empresaRepo) Guardar(ctx context.Context, e *model.Empresa) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Empresa
		err := tx.First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(e).Error
		}
		if err != nil {
			return err
		}
		e.ID = existing.ID
		return tx.Save(e).Error
	})
}
