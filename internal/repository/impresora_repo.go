package repository

import (
	"context"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"

	"gorm.io/gorm"
)

type ImpresoraRepository interface {
	// Guardar replaces the stored printer configuration with the given one.
	Guardar(ctx context.Context, i *model.Impresora) error
	FindActiva(ctx context.Context) (*model.Impresora, error)
}

type impresoraRepo struct{ db *gorm.DB }

func NewImpresoraRepository(db *gorm.DB) ImpresoraRepository { return &impresoraRepo{db: db} }

func (r *impresoraRepo) Guardar(ctx context.Context, i *model.Impresora) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Impresora{}).Error; err != nil {
			return err
		}
		i.Activa = true
		return tx.Create(i).Error
	})
}

func (r *impresoraRepo) FindActiva(ctx context.Context) (*model.Impresora, error) {
	var i model.Impresora
	err := r.db.WithContext(ctx).Where("activa = true").First(&i).Error
	return &i, err
}
