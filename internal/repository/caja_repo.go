package repository

import (
	"context"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/dto"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TurnoRepository interface {
	CreateTurno(ctx context.Context, t *model.Turno) error
	FindTurnoAbierto(ctx context.Context) (*model.Turno, error)
	FindTurnoByID(ctx context.Context, id uuid.UUID) (*model.Turno, error)
	UpdateTurno(ctx context.Context, t *model.Turno) error
	CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error
	CreateMovimientoTx(ctx context.Context, tx *gorm.DB, m *model.MovimientoCaja) error
	// ListMovimientosVisibles returns the shift's movements excluding those
	// linked to purchase invoices, which never touch the drawer.
	ListMovimientosVisibles(ctx context.Context, turnoID uuid.UUID) ([]model.MovimientoCaja, error)
	FindMovimientoPorFactura(ctx context.Context, turnoID, facturaID uuid.UUID) (*model.MovimientoCaja, error)
	EstadisticasTurno(ctx context.Context, turnoID uuid.UUID) (*dto.EstadisticasTurno, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type turnoRepo struct{ db *gorm.DB }

func NewTurnoRepository(db *gorm.DB) TurnoRepository { return &turnoRepo{db: db} }

func (r *turnoRepo) DB() *gorm.DB { return r.db }

func (r *turnoRepo) CreateTurno(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *turnoRepo) FindTurnoAbierto(ctx context.Context) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).Where("estado = 'abierta'").First(&t).Error
	return &t, err
}

func (r *turnoRepo) FindTurnoByID(ctx context.Context, id uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *turnoRepo) UpdateTurno(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *turnoRepo) CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *turnoRepo) CreateMovimientoTx(ctx context.Context, tx *gorm.DB, m *model.MovimientoCaja) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *turnoRepo) ListMovimientosVisibles(ctx context.Context, turnoID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).
		Joins("LEFT JOIN facturas ON facturas.id = movimientos_caja.factura_id").
		Where("movimientos_caja.turno_id = ?", turnoID).
		Where("facturas.id IS NULL OR facturas.tipo <> 'compra'").
		Order("movimientos_caja.created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *turnoRepo) FindMovimientoPorFactura(ctx context.Context, turnoID, facturaID uuid.UUID) (*model.MovimientoCaja, error) {
	var m model.MovimientoCaja
	err := r.db.WithContext(ctx).
		Where("turno_id = ? AND factura_id = ?", turnoID, facturaID).
		First(&m).Error
	return &m, err
}

func (r *turnoRepo) EstadisticasTurno(ctx context.Context, turnoID uuid.UUID) (*dto.EstadisticasTurno, error) {
	var row struct {
		Emitidas int64
		Total    decimal.NullDecimal
		Ultima   *string
	}
	err := r.db.WithContext(ctx).Model(&model.Factura{}).
		Select("COUNT(*) AS emitidas, SUM(total) AS total, MAX(ncf) AS ultima").
		Where("turno_id = ? AND tipo = 'venta' AND estado = ?", turnoID, model.FacturaPagada).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	stats := &dto.EstadisticasTurno{
		FacturasEmitidas: row.Emitidas,
		TotalFacturado:   decimal.Zero,
		UltimaFactura:    row.Ultima,
	}
	if row.Total.Valid {
		stats.TotalFacturado = row.Total.Decimal
	}
	return stats, nil
}
