package service

import (
	"context"
	"errors"
	"time"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/apierror"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/dto"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/repository"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CajaService interface {
	Abrir(ctx context.Context, cajero string, req dto.AbrirTurnoRequest) (*dto.TurnoResponse, error)
	Cerrar(ctx context.Context, req dto.CerrarTurnoRequest) (*dto.CerrarTurnoResponse, error)
	RegistrarMovimiento(ctx context.Context, req dto.MovimientoCajaRequest) (*dto.MovimientoCajaResponse, error)
	EstadoActual(ctx context.Context) (*dto.EstadoCajaResponse, error)
	// TurnoAbierto returns the open shift or a conflict error when the
	// register is closed. Used by invoicing to attach sales to a shift.
	TurnoAbierto(ctx context.Context) (*model.Turno, error)
}

type cajaService struct {
	repo        repository.TurnoRepository
	facturaRepo repository.FacturaRepository
	dispatcher  *worker.Dispatcher
}

func NewCajaService(repo repository.TurnoRepository, facturaRepo repository.FacturaRepository, dispatcher *worker.Dispatcher) CajaService {
	return &cajaService{repo: repo, facturaRepo: facturaRepo, dispatcher: dispatcher}
}

func (s *cajaService) TurnoAbierto(ctx context.Context) (*model.Turno, error) {
	t, err := s.repo.FindTurnoAbierto(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.E(apierror.KindConflict, "no hay un turno de caja abierto")
		}
		return nil, err
	}
	return t, nil
}

func (s *cajaService) Abrir(ctx context.Context, cajero string, req dto.AbrirTurnoRequest) (*dto.TurnoResponse, error) {
	if req.MontoInicial.IsNegative() {
		return nil, apierror.E(apierror.KindValidation, "el monto inicial no puede ser negativo")
	}

	turno := model.Turno{
		Estado:       model.TurnoAbierto,
		Cajero:       cajero,
		MontoInicial: req.MontoInicial,
	}
	// The partial unique index on turnos(estado) decides races between
	// concurrent openers; the loser gets a duplicate key error.
	if err := s.repo.CreateTurno(ctx, &turno); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.E(apierror.KindConflict, "ya existe un turno abierto")
		}
		return nil, err
	}

	return &dto.TurnoResponse{
		ID:            turno.ID.String(),
		Estado:        turno.Estado,
		Cajero:        turno.Cajero,
		MontoInicial:  turno.MontoInicial,
		FechaApertura: turno.FechaApertura,
	}, nil
}

func (s *cajaService) Cerrar(ctx context.Context, req dto.CerrarTurnoRequest) (*dto.CerrarTurnoResponse, error) {
	turno, err := s.TurnoAbierto(ctx)
	if err != nil {
		return nil, err
	}

	// Stats must be captured while the shift is still open so the close
	// report reflects exactly what this shift invoiced.
	stats, err := s.repo.EstadisticasTurno(ctx, turno.ID)
	if err != nil {
		return nil, err
	}

	ahora := time.Now()
	turno.Estado = model.TurnoCerrado
	turno.FechaCierre = &ahora
	turno.MontoFinalEfectivo = &req.MontoEfectivo
	turno.MontoFinalTarjeta = &req.MontoTarjeta
	turno.MontoFinalTotal = &req.MontoTotal
	if req.Observaciones != "" {
		turno.Observaciones = &req.Observaciones
	}
	if err := s.repo.UpdateTurno(ctx, turno); err != nil {
		return nil, err
	}

	// Fire and forget: the closing report email must never fail the close.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReporteCierre(ctx, worker.ReporteCierrePayload{
			TurnoID:        turno.ID.String(),
			Cajero:         turno.Cajero,
			MontoInicial:   turno.MontoInicial.StringFixed(2),
			MontoEfectivo:  req.MontoEfectivo.StringFixed(2),
			MontoTarjeta:   req.MontoTarjeta.StringFixed(2),
			MontoTotal:     req.MontoTotal.StringFixed(2),
			Facturas:       stats.FacturasEmitidas,
			TotalFacturado: stats.TotalFacturado.StringFixed(2),
			FechaCierre:    ahora.Format(time.RFC3339),
		})
	}

	return &dto.CerrarTurnoResponse{
		ID:            turno.ID.String(),
		Estado:        turno.Estado,
		FechaCierre:   ahora,
		MontoInicial:  turno.MontoInicial,
		MontoEfectivo: req.MontoEfectivo,
		MontoTarjeta:  req.MontoTarjeta,
		MontoTotal:    req.MontoTotal,
		Estadisticas:  *stats,
	}, nil
}

func (s *cajaService) RegistrarMovimiento(ctx context.Context, req dto.MovimientoCajaRequest) (*dto.MovimientoCajaResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, apierror.E(apierror.KindValidation, "el monto debe ser mayor que cero")
	}

	turno, err := s.TurnoAbierto(ctx)
	if err != nil {
		return nil, err
	}

	var facturaID *uuid.UUID
	if req.FacturaID != nil {
		fid, err := uuid.Parse(*req.FacturaID)
		if err != nil {
			return nil, apierror.E(apierror.KindValidation, "factura_id inválido")
		}
		factura, err := s.facturaRepo.FindByID(ctx, fid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.Ef(apierror.KindNotFound, "factura %s no encontrada", fid)
			}
			return nil, err
		}
		// The gasto of a compra is written by the invoice flow itself; the
		// manual endpoint only takes venta references.
		if factura.Tipo == model.FacturaTipoCompra {
			return nil, apierror.E(apierror.KindValidation, "una factura de compra no admite movimientos manuales de caja")
		}
		if _, err := s.repo.FindMovimientoPorFactura(ctx, turno.ID, fid); err == nil {
			return nil, apierror.Ef(apierror.KindConflict, "la factura %s ya tiene un movimiento en este turno", fid)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		facturaID = &fid
	}

	mov := model.MovimientoCaja{
		TurnoID:     turno.ID,
		FacturaID:   facturaID,
		Tipo:        req.Tipo,
		MetodoPago:  req.MetodoPago,
		Descripcion: req.Descripcion,
		Monto:       req.Monto,
	}
	if err := s.repo.CreateMovimiento(ctx, &mov); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.E(apierror.KindConflict, "la factura ya tiene un movimiento en este turno")
		}
		return nil, err
	}

	return movimientoToResponse(&mov), nil
}

func (s *cajaService) EstadoActual(ctx context.Context) (*dto.EstadoCajaResponse, error) {
	turno, err := s.repo.FindTurnoAbierto(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.EstadoCajaResponse{
				Abierta:     false,
				Movimientos: []dto.MovimientoCajaResponse{},
			}, nil
		}
		return nil, err
	}

	movs, err := s.repo.ListMovimientosVisibles(ctx, turno.ID)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.EstadisticasTurno(ctx, turno.ID)
	if err != nil {
		return nil, err
	}

	movimientos := make([]dto.MovimientoCajaResponse, 0, len(movs))
	for i := range movs {
		movimientos = append(movimientos, *movimientoToResponse(&movs[i]))
	}

	id := turno.ID.String()
	return &dto.EstadoCajaResponse{
		Abierta:       true,
		TurnoID:       &id,
		Cajero:        &turno.Cajero,
		FechaApertura: &turno.FechaApertura,
		MontoInicial:  &turno.MontoInicial,
		Movimientos:   movimientos,
		Estadisticas:  *stats,
	}, nil
}

func movimientoToResponse(m *model.MovimientoCaja) *dto.MovimientoCajaResponse {
	var facturaID *string
	if m.FacturaID != nil {
		fid := m.FacturaID.String()
		facturaID = &fid
	}
	return &dto.MovimientoCajaResponse{
		ID:          m.ID.String(),
		Tipo:        m.Tipo,
		MetodoPago:  m.MetodoPago,
		Descripcion: m.Descripcion,
		Monto:       m.Monto,
		FacturaID:   facturaID,
		Fecha:       m.CreatedAt,
	}
}
