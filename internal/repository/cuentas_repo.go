package repository

import (
	"context"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CuentasRepository interface {
	CreateCobrarTx(ctx context.Context, tx *gorm.DB, c *model.CuentaPorCobrar) error
	CreatePagarTx(ctx context.Context, tx *gorm.DB, c *model.CuentaPorPagar) error
	FindCobrarByID(ctx context.Context, id uuid.UUID) (*model.CuentaPorCobrar, error)
	FindPagarByID(ctx context.Context, id uuid.UUID) (*model.CuentaPorPagar, error)
	UpdateCobrar(ctx context.Context, c *model.CuentaPorCobrar) error
	UpdatePagar(ctx context.Context, c *model.CuentaPorPagar) error
	ListCobrar(ctx context.Context, estado string) ([]model.CuentaPorCobrar, error)
	ListPagar(ctx context.Context, estado string) ([]model.CuentaPorPagar, error)
}

type cuentasRepo struct{ db *gorm.DB }

func NewCuentasRepository(db *gorm.DB) CuentasRepository { return &cuentasRepo{db: db} }

func (r *cuentasRepo) CreateCobrarTx(ctx context.Context, tx *gorm.DB, c *model.CuentaPorCobrar) error {
	return tx.WithContext(ctx).Create(c).Error
}

func (r *cuentasRepo) CreatePagarTx(ctx context.Context, tx *gorm.DB, c *model.CuentaPorPagar) error {
	return tx.WithContext(ctx).Create(c).Error
}

func (r *cuentasRepo) FindCobrarByID(ctx context.Context, id uuid.UUID) (*model.CuentaPorCobrar, error) {
	var c model.CuentaPorCobrar
	err := r.db.WithContext(ctx).Preload("Cliente").Preload("Factura").First(&c, id).Error
	return &c, err
}

func (r *cuentasRepo) FindPagarByID(ctx context.Context, id uuid.UUID) (*model.CuentaPorPagar, error) {
	var c model.CuentaPorPagar
	err := r.db.WithContext(ctx).Preload("Proveedor").Preload("Factura").First(&c, id).Error
	return &c, err
}

func (r *cuentasRepo) UpdateCobrar(ctx context.Context, c *model.CuentaPorCobrar) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cuentasRepo) UpdatePagar(ctx context.Context, c *model.CuentaPorPagar) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cuentasRepo) ListCobrar(ctx context.Context, estado string) ([]model.CuentaPorCobrar, error) {
	var cuentas []model.CuentaPorCobrar
	q := r.db.WithContext(ctx).Preload("Cliente").Preload("Factura")
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	err := q.Order("fecha_vencimiento ASC").Find(&cuentas).Error
	return cuentas, err
}

func (r *cuentasRepo) ListPagar(ctx context.Context, estado string) ([]model.CuentaPorPagar, error) {
	var cuentas []model.CuentaPorPagar
	q := r.db.WithContext(ctx).Preload("Proveedor").Preload("Factura")
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	err := q.Order("fecha_vencimiento ASC").Find(&cuentas).Error
	return cuentas, err
}
