package repository

import (
	"context"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FacturaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, f *model.Factura) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error)
	UpdateEstadoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error
	SetPagadaTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, codigoAutorizacion *string) error
	List(ctx context.Context, fecha string, tipo string) ([]model.Factura, error)
	// NextNCF atomically reserves the next sequence value for the
	// (tipo, fecha) pair. Must run inside the invoice transaction.
	NextNCF(ctx context.Context, tx *gorm.DB, tipo, fecha string) (int64, error)
	DB() *gorm.DB
}

type facturaRepo struct{ db *gorm.DB }

func NewFacturaRepository(db *gorm.DB) FacturaRepository { return &facturaRepo{db: db} }

func (r *facturaRepo) DB() *gorm.DB { return r.db }

func (r *facturaRepo) Create(ctx context.Context, tx *gorm.DB, f *model.Factura) error {
	return tx.WithContext(ctx).Create(f).Error
}

func (r *facturaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).Preload("Detalles.Producto").First(&f, id).Error
	return &f, err
}

func (r *facturaRepo) UpdateEstadoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.WithContext(ctx).Model(&model.Factura{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *facturaRepo) SetPagadaTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, codigoAutorizacion *string) error {
	updates := map[string]any{"estado": model.FacturaPagada}
	if codigoAutorizacion != nil {
		updates["codigo_autorizacion"] = *codigoAutorizacion
	}
	return tx.WithContext(ctx).Model(&model.Factura{}).Where("id = ?", id).Updates(updates).Error
}

func (r *facturaRepo) List(ctx context.Context, fecha string, tipo string) ([]model.Factura, error) {
	var facturas []model.Factura
	q := r.db.WithContext(ctx).Model(&model.Factura{})
	if fecha != "" {
		q = q.Where("DATE(created_at) = ?", fecha)
	}
	if tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	err := q.Order("created_at DESC").Find(&facturas).Error
	return facturas, err
}

func (r *facturaRepo) NextNCF(ctx context.Context, tx *gorm.DB, tipo, fecha string) (int64, error) {
	seq := model.NCFSecuencia{Tipo: tipo, Fecha: fecha, Secuencia: 1}
	err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tipo"}, {Name: "fecha"}},
		DoUpdates: clause.Assignments(map[string]any{"secuencia": gorm.Expr("ncf_secuencias.secuencia + 1")}),
	}).Create(&seq).Error
	if err != nil {
		return 0, err
	}
	var current model.NCFSecuencia
	err = tx.WithContext(ctx).
		Where("tipo = ? AND fecha = ?", tipo, fecha).
		First(&current).Error
	return current.Secuencia, err
}
