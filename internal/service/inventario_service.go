package service

import (
	"context"
	"errors"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/apierror"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/dto"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventarioService interface {
	AjustarStock(ctx context.Context, responsable string, req dto.AjusteStockRequest) (*dto.MovimientoStockResponse, error)
	ListarMovimientos(ctx context.Context, productoID *uuid.UUID, limit int) ([]dto.MovimientoStockResponse, error)
	Alertas(ctx context.Context) ([]dto.AlertaStockResponse, error)
}

type inventarioService struct {
	productoRepo repository.ProductoRepository
	stockRepo    repository.MovimientoStockRepository
}

func NewInventarioService(productoRepo repository.ProductoRepository, stockRepo repository.MovimientoStockRepository) InventarioService {
	return &inventarioService{productoRepo: productoRepo, stockRepo: stockRepo}
}

func (s *inventarioService) AjustarStock(ctx context.Context, responsable string, req dto.AjusteStockRequest) (*dto.MovimientoStockResponse, error) {
	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, apierror.E(apierror.KindValidation, "producto_id inválido")
	}
	p, err := s.productoRepo.FindByID(ctx, pid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Ef(apierror.KindNotFound, "producto %s no encontrado", pid)
		}
		return nil, err
	}

	delta := req.Cantidad
	if req.Tipo == model.MovStockSalida {
		delta = -req.Cantidad
		if p.StockActual < req.Cantidad {
			return nil, apierror.Ef(apierror.KindConflict,
				"stock insuficiente para %s: disponible %d", p.Nombre, p.StockActual)
		}
	}

	var mov model.MovimientoStock
	txErr := runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		if err := s.productoRepo.UpdateStockTx(ctx, tx, pid, delta); err != nil {
			return err
		}
		mov = model.MovimientoStock{
			ProductoID:  pid,
			Tipo:        req.Tipo,
			Cantidad:    req.Cantidad,
			Responsable: responsable,
			Motivo:      req.Motivo,
		}
		return s.stockRepo.CreateTx(ctx, tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := movimientoStockToResponse(&mov)
	resp.Producto = p.Nombre
	return resp, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, productoID *uuid.UUID, limit int) ([]dto.MovimientoStockResponse, error) {
	movs, err := s.stockRepo.List(ctx, productoID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoStockResponse, 0, len(movs))
	for i := range movs {
		resp := movimientoStockToResponse(&movs[i])
		if movs[i].Producto != nil {
			resp.Producto = movs[i].Producto.Nombre
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *inventarioService) Alertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	productos, err := s.productoRepo.ListBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertaStockResponse, 0, len(productos))
	for _, p := range productos {
		out = append(out, dto.AlertaStockResponse{
			ProductoID:  p.ID.String(),
			Codigo:      p.Codigo,
			Nombre:      p.Nombre,
			StockActual: p.StockActual,
			StockMinimo: p.StockMinimo,
		})
	}
	return out, nil
}

func movimientoStockToResponse(m *model.MovimientoStock) *dto.MovimientoStockResponse {
	var facturaID *string
	if m.FacturaID != nil {
		fid := m.FacturaID.String()
		facturaID = &fid
	}
	return &dto.MovimientoStockResponse{
		ID:          m.ID.String(),
		ProductoID:  m.ProductoID.String(),
		Tipo:        m.Tipo,
		Cantidad:    m.Cantidad,
		Responsable: m.Responsable,
		Motivo:      m.Motivo,
		FacturaID:   facturaID,
		Fecha:       m.CreatedAt,
	}
}
