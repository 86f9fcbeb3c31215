package service

import (
	"context"
	"errors"
	"time"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/apierror"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/dto"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CuentasService interface {
	ListarPorCobrar(ctx context.Context, estado string) ([]dto.CuentaResponse, error)
	ListarPorPagar(ctx context.Context, estado string) ([]dto.CuentaResponse, error)
	RegistrarPagoCobrar(ctx context.Context, id uuid.UUID, req dto.RegistrarPagoRequest) (*dto.CuentaResponse, error)
	RegistrarPagoPagar(ctx context.Context, id uuid.UUID, req dto.RegistrarPagoRequest) (*dto.CuentaResponse, error)
}

type cuentasService struct {
	repo        repository.CuentasRepository
	facturaRepo repository.FacturaRepository
}

func NewCuentasService(repo repository.CuentasRepository, facturaRepo repository.FacturaRepository) CuentasService {
	return &cuentasService{repo: repo, facturaRepo: facturaRepo}
}

func (s *cuentasService) ListarPorCobrar(ctx context.Context, estado string) ([]dto.CuentaResponse, error) {
	cuentas, err := s.repo.ListCobrar(ctx, estado)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CuentaResponse, 0, len(cuentas))
	for i := range cuentas {
		out = append(out, *cobrarToResponse(&cuentas[i]))
	}
	return out, nil
}

func (s *cuentasService) ListarPorPagar(ctx context.Context, estado string) ([]dto.CuentaResponse, error) {
	cuentas, err := s.repo.ListPagar(ctx, estado)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CuentaResponse, 0, len(cuentas))
	for i := range cuentas {
		out = append(out, *pagarToResponse(&cuentas[i]))
	}
	return out, nil
}

func (s *cuentasService) RegistrarPagoCobrar(ctx context.Context, id uuid.UUID, req dto.RegistrarPagoRequest) (*dto.CuentaResponse, error) {
	cuenta, err := s.repo.FindCobrarByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Ef(apierror.KindNotFound, "cuenta por cobrar %s no encontrada", id)
		}
		return nil, err
	}

	pagado, estado, err := aplicarPago(cuenta.MontoTotal, cuenta.MontoPagado, req.Monto)
	if err != nil {
		return nil, err
	}
	cuenta.MontoPagado = pagado
	cuenta.Estado = estado

	txErr := runTx(ctx, s.facturaRepo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateCobrar(ctx, cuenta); err != nil {
			return err
		}
		// A fully paid receivable settles its invoice.
		if estado == model.CuentaPagada {
			return s.facturaRepo.UpdateEstadoTx(ctx, tx, cuenta.FacturaID, model.FacturaPagada)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return cobrarToResponse(cuenta), nil
}

func (s *cuentasService) RegistrarPagoPagar(ctx context.Context, id uuid.UUID, req dto.RegistrarPagoRequest) (*dto.CuentaResponse, error) {
	cuenta, err := s.repo.FindPagarByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Ef(apierror.KindNotFound, "cuenta por pagar %s no encontrada", id)
		}
		return nil, err
	}

	pagado, estado, err := aplicarPago(cuenta.MontoTotal, cuenta.MontoPagado, req.Monto)
	if err != nil {
		return nil, err
	}
	cuenta.MontoPagado = pagado
	cuenta.Estado = estado

	txErr := runTx(ctx, s.facturaRepo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdatePagar(ctx, cuenta); err != nil {
			return err
		}
		if estado == model.CuentaPagada {
			return s.facturaRepo.UpdateEstadoTx(ctx, tx, cuenta.FacturaID, model.FacturaPagada)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return pagarToResponse(cuenta), nil
}

// aplicarPago validates an abono and returns the new accumulated amount and
// the resulting estado.
func aplicarPago(total, pagado, abono decimal.Decimal) (decimal.Decimal, string, error) {
	if !abono.IsPositive() {
		return pagado, "", apierror.E(apierror.KindValidation, "el monto del pago debe ser mayor que cero")
	}
	pendiente := total.Sub(pagado)
	if abono.GreaterThan(pendiente) {
		return pagado, "", apierror.Ef(apierror.KindValidation,
			"el pago %s excede el pendiente %s", abono.StringFixed(2), pendiente.StringFixed(2))
	}
	nuevo := pagado.Add(abono)
	estado := model.CuentaParcial
	if nuevo.Equal(total) {
		estado = model.CuentaPagada
	}
	return nuevo, estado, nil
}

// estadoDerivado reports "vencida" for unpaid accounts past their due date.
func estadoDerivado(estado string, vencimiento time.Time) string {
	if estado != model.CuentaPagada && time.Now().After(vencimiento) {
		return "vencida"
	}
	return estado
}

func cobrarToResponse(c *model.CuentaPorCobrar) *dto.CuentaResponse {
	nombre := ""
	if c.Cliente != nil {
		nombre = c.Cliente.Nombre
	}
	ncf := ""
	if c.Factura != nil {
		ncf = c.Factura.NCF
	}
	return &dto.CuentaResponse{
		ID:               c.ID.String(),
		FacturaID:        c.FacturaID.String(),
		NCF:              ncf,
		Contraparte:      nombre,
		MontoTotal:       c.MontoTotal,
		MontoPagado:      c.MontoPagado,
		MontoPendiente:   c.MontoTotal.Sub(c.MontoPagado),
		FechaEmision:     c.FechaEmision,
		FechaVencimiento: c.FechaVencimiento,
		Estado:           estadoDerivado(c.Estado, c.FechaVencimiento),
	}
}

func pagarToResponse(c *model.CuentaPorPagar) *dto.CuentaResponse {
	nombre := ""
	if c.Proveedor != nil {
		nombre = c.Proveedor.Nombre
	}
	ncf := ""
	if c.Factura != nil {
		ncf = c.Factura.NCF
	}
	return &dto.CuentaResponse{
		ID:               c.ID.String(),
		FacturaID:        c.FacturaID.String(),
		NCF:              ncf,
		Contraparte:      nombre,
		MontoTotal:       c.MontoTotal,
		MontoPagado:      c.MontoPagado,
		MontoPendiente:   c.MontoTotal.Sub(c.MontoPagado),
		FechaEmision:     c.FechaEmision,
		FechaVencimiento: c.FechaVencimiento,
		Estado:           estadoDerivado(c.Estado, c.FechaVencimiento),
	}
}
