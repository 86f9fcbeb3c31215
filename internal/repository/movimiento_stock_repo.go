package repository

import (
	"context"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovimientoStockRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, m *model.MovimientoStock) error
	List(ctx context.Context, productoID *uuid.UUID, limit int) ([]model.MovimientoStock, error)
}

type movimientoStockRepo struct{ db *gorm.DB }

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

func (r *movimientoStockRepo) CreateTx(ctx context.Context, tx *gorm.DB, m *model.MovimientoStock) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *movimientoStockRepo) List(ctx context.Context, productoID *uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	var movs []model.MovimientoStock
	q := r.db.WithContext(ctx).Preload("Producto")
	if productoID != nil {
		q = q.Where("producto_id = ?", *productoID)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	err := q.Order("created_at DESC").Limit(limit).Find(&movs).Error
	return movs, err
}
