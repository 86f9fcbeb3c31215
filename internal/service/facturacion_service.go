package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/apierror"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/dto"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/infra"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CardTerminal charges a card on the physical terminal. A declined charge is
// a non-approved result, not an error; errors mean the exchange itself failed.
type CardTerminal interface {
	Cobrar(monto decimal.Decimal) (*infra.ResultadoCobro, error)
}

// TicketPrinter delivers rendered ticket text to the named printer.
type TicketPrinter interface {
	Imprimir(ctx context.Context, texto, impresora string) error
}

// toleranciaTotales is the allowed drift between the client-declared total
// and the server-side recomputation.
var toleranciaTotales = decimal.NewFromFloat(0.01)

type FacturacionService interface {
	CrearFactura(ctx context.Context, cajero string, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error)
	ObtenerFactura(ctx context.Context, id uuid.UUID) (*dto.FacturaDetalleResponse, error)
	ListarFacturas(ctx context.Context, fecha, tipo string) ([]dto.FacturaDetalleResponse, error)
	// GenerarPDF returns the rendered document and a suggested file name.
	GenerarPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	ReimprimirTicket(ctx context.Context, id uuid.UUID) error
}

type facturacionService struct {
	repo          repository.FacturaRepository
	productoRepo  repository.ProductoRepository
	clienteRepo   repository.ClienteRepository
	proveedorRepo repository.ProveedorRepository
	cuentasRepo   repository.CuentasRepository
	stockRepo     repository.MovimientoStockRepository
	turnoRepo     repository.TurnoRepository
	empresaRepo   repository.EmpresaRepository
	impresoraRepo repository.ImpresoraRepository
	caja          CajaService
	ncf           *NCFGenerator
	terminal      CardTerminal
	printer       TicketPrinter
}

func NewFacturacionService(
	repo repository.FacturaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	proveedorRepo repository.ProveedorRepository,
	cuentasRepo repository.CuentasRepository,
	stockRepo repository.MovimientoStockRepository,
	turnoRepo repository.TurnoRepository,
	empresaRepo repository.EmpresaRepository,
	impresoraRepo repository.ImpresoraRepository,
	caja CajaService,
	ncf *NCFGenerator,
	terminal CardTerminal,
	printer TicketPrinter,
) FacturacionService {
	return &facturacionService{
		repo:          repo,
		productoRepo:  productoRepo,
		clienteRepo:   clienteRepo,
		proveedorRepo: proveedorRepo,
		cuentasRepo:   cuentasRepo,
		stockRepo:     stockRepo,
		turnoRepo:     turnoRepo,
		empresaRepo:   empresaRepo,
		impresoraRepo: impresoraRepo,
		caja:          caja,
		ncf:           ncf,
		terminal:      terminal,
		printer:       printer,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

type lineaResuelta struct {
	producto *model.Producto
	cantidad int
	precio   decimal.Decimal
	itbis    bool
}

type contraparte struct {
	id        uuid.UUID
	nombre    string
	documento string
}

// ── CrearFactura ──────────────────────────────────────────────────────────────
// The flow is split around the card terminal so no database transaction is
// held open during the (up to 15s) serial exchange:
//   1. Pre-flight: open shift, party and product resolution, totals check.
//   2. TX1: reserve NCF, create factura + detalles, mutate stock with audit
//      rows, create the receivable/payable for credit, and for methods that
//      resolve immediately mark PAGADA and write the cash movement.
//   3. Card payments: charge the terminal AFTER TX1 commits. Approval leads
//      to TX2 (PAGADA + auth code + cash movement); a decline, timeout or
//      serial failure leads to a compensating transaction that reverses every
//      stock mutation and marks the factura CANCELADA.
//   4. Ticket printing is best-effort after everything is persisted.

func (s *facturacionService) CrearFactura(ctx context.Context, cajero string, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error) {
	turno, err := s.caja.TurnoAbierto(ctx)
	if err != nil {
		return nil, err
	}

	tipo := model.FacturaTipoVenta
	if req.EsProveedor {
		tipo = model.FacturaTipoCompra
	}

	var vencimiento *time.Time
	if req.MetodoPago == "credito" {
		if req.FechaVencimiento == nil || *req.FechaVencimiento == "" {
			return nil, apierror.E(apierror.KindValidation, "una factura a crédito requiere fecha de vencimiento")
		}
		fv, err := time.Parse("2006-01-02", *req.FechaVencimiento)
		if err != nil {
			return nil, apierror.E(apierror.KindValidation, "fecha_vencimiento inválida, use YYYY-MM-DD")
		}
		vencimiento = &fv
	}

	parte, err := s.resolverContraparte(ctx, tipo, req.ClienteID)
	if err != nil {
		return nil, err
	}

	// El tipo de NCF lo decide la contraparte: con RNC/cédula propia lleva
	// crédito fiscal, el consumidor final lleva consumo.
	ncfTipo := NCFTipoCreditoFiscal
	if parte.documento == "" || parte.documento == model.CedulaConsumidorFinal {
		ncfTipo = NCFTipoConsumo
	}

	lineas, err := s.resolverLineas(ctx, tipo, req.Detalles)
	if err != nil {
		return nil, err
	}

	subtotal, itbisTotal, total, err := s.validarTotales(req, lineas)
	if err != nil {
		return nil, err
	}

	// Methods without an external collaborator resolve inside TX1.
	resuelveInmediato := req.MetodoPago == "efectivo" || req.MetodoPago == "transferencia"

	ahora := time.Now()
	factura := model.Factura{
		ClienteID:        parte.id,
		Tipo:             tipo,
		Estado:           model.FacturaPendiente,
		Subtotal:         subtotal,
		ItbisTotal:       itbisTotal,
		Descuento:        req.Descuento,
		Total:            total,
		MetodoPago:       req.MetodoPago,
		FechaVencimiento: vencimiento,
		TurnoID:          turno.ID,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ncf, err := s.ncf.Reservar(ctx, tx, ncfTipo, ahora)
		if err != nil {
			return err
		}
		factura.NCF = ncf
		if resuelveInmediato {
			factura.Estado = model.FacturaPagada
		}

		for _, l := range lineas {
			factura.Detalles = append(factura.Detalles, model.DetalleFactura{
				ProductoID: l.producto.ID,
				Cantidad:   l.cantidad,
				Precio:     l.precio,
				Itbis:      l.itbis,
			})
		}
		if err := s.repo.Create(ctx, tx, &factura); err != nil {
			return err
		}

		if err := s.aplicarStock(ctx, tx, cajero, &factura, lineas, false); err != nil {
			return err
		}

		if req.MetodoPago == "credito" {
			if err := s.crearCuenta(ctx, tx, &factura, parte, ahora, *vencimiento); err != nil {
				return err
			}
		}

		if resuelveInmediato {
			if err := s.crearMovimientoCaja(ctx, tx, turno.ID, &factura); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := &dto.FacturaResponse{
		FacturaID: factura.ID.String(),
		NCF:       factura.NCF,
		Estado:    factura.Estado,
	}

	if req.MetodoPago == "tarjeta" {
		if err := s.cobrarConTarjeta(ctx, cajero, turno.ID, &factura, lineas); err != nil {
			return nil, err
		}
		resp.Estado = factura.Estado
		resp.CodigoAutorizacion = factura.CodigoAutorizacion
	}

	resp.Warning = s.imprimirTicket(ctx, &factura, parte)
	return resp, nil
}

func (s *facturacionService) resolverContraparte(ctx context.Context, tipo, clienteID string) (*contraparte, error) {
	if tipo == model.FacturaTipoCompra {
		pid, err := uuid.Parse(clienteID)
		if err != nil {
			return nil, apierror.E(apierror.KindValidation, "cliente_id inválido para una compra")
		}
		p, err := s.proveedorRepo.FindByID(ctx, pid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.Ef(apierror.KindNotFound, "proveedor %s no encontrado", pid)
			}
			return nil, err
		}
		return &contraparte{id: p.ID, nombre: p.Nombre, documento: p.RNCCedula}, nil
	}

	if clienteID == "cf" {
		c, err := s.clienteRepo.ResolverConsumidorFinal(ctx)
		if err != nil {
			return nil, err
		}
		return &contraparte{id: c.ID, nombre: c.Nombre, documento: c.Cedula}, nil
	}

	cid, err := uuid.Parse(clienteID)
	if err != nil {
		return nil, apierror.E(apierror.KindValidation, "cliente_id inválido")
	}
	c, err := s.clienteRepo.FindByID(ctx, cid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Ef(apierror.KindNotFound, "cliente %s no encontrado", cid)
		}
		return nil, err
	}
	return &contraparte{id: c.ID, nombre: c.Nombre, documento: c.Cedula}, nil
}

// resolverLineas resolves each line's product (by UUID or catalog code) and
// checks stock availability for sales, all before any transaction opens.
func (s *facturacionService) resolverLineas(ctx context.Context, tipo string, detalles []dto.DetalleFacturaRequest) ([]lineaResuelta, error) {
	lineas := make([]lineaResuelta, 0, len(detalles))
	for _, d := range detalles {
		var p *model.Producto
		var err error
		if pid, parseErr := uuid.Parse(d.ProductoID); parseErr == nil {
			p, err = s.productoRepo.FindByID(ctx, pid)
		} else {
			p, err = s.productoRepo.FindByCodigo(ctx, d.ProductoID)
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.Ef(apierror.KindNotFound, "producto %s no encontrado", d.ProductoID)
			}
			return nil, err
		}
		if p.Estado != "activo" {
			return nil, apierror.Ef(apierror.KindValidation, "el producto %s está inactivo", p.Nombre)
		}
		if !d.Precio.IsPositive() {
			return nil, apierror.Ef(apierror.KindValidation, "precio inválido para %s", p.Nombre)
		}
		if tipo == model.FacturaTipoVenta && p.StockActual < d.Cantidad {
			return nil, apierror.Ef(apierror.KindConflict,
				"stock insuficiente para %s: disponible %d, solicitado %d", p.Nombre, p.StockActual, d.Cantidad)
		}
		lineas = append(lineas, lineaResuelta{producto: p, cantidad: d.Cantidad, precio: d.Precio, itbis: d.Itbis})
	}
	return lineas, nil
}

// validarTotales recomputes totals server-side and rejects the request when
// the client-declared total drifts beyond a cent.
func (s *facturacionService) validarTotales(req dto.CrearFacturaRequest, lineas []lineaResuelta) (subtotal, itbis, total decimal.Decimal, err error) {
	subtotal = decimal.Zero
	itbis = decimal.Zero
	for _, l := range lineas {
		importe := l.precio.Mul(decimal.NewFromInt(int64(l.cantidad)))
		subtotal = subtotal.Add(importe)
		if l.itbis {
			tasa := l.producto.TasaItbis.Div(decimal.NewFromInt(100))
			itbis = itbis.Add(importe.Mul(tasa))
		}
	}
	if req.Descuento.IsNegative() {
		return subtotal, itbis, total, apierror.E(apierror.KindValidation, "el descuento no puede ser negativo")
	}
	subtotal = subtotal.Round(2)
	itbis = itbis.Round(2)
	total = subtotal.Add(itbis).Sub(req.Descuento)
	if !total.IsPositive() {
		return subtotal, itbis, total, apierror.E(apierror.KindValidation, "el total debe ser mayor que cero")
	}
	if total.Sub(req.Total).Abs().GreaterThan(toleranciaTotales) {
		return subtotal, itbis, total, apierror.Ef(apierror.KindValidation,
			"el total declarado %s no coincide con el calculado %s", req.Total.StringFixed(2), total.StringFixed(2))
	}
	return subtotal, itbis, total, nil
}

// aplicarStock mutates stock for every line and appends the audit movement.
// With reverso=true the deltas are inverted to undo a declined card payment.
func (s *facturacionService) aplicarStock(ctx context.Context, tx *gorm.DB, cajero string, f *model.Factura, lineas []lineaResuelta, reverso bool) error {
	for _, l := range lineas {
		delta := -l.cantidad
		tipoMov := model.MovStockSalida
		motivo := fmt.Sprintf("Venta - Factura #%s", f.NCF)
		if f.Tipo == model.FacturaTipoCompra {
			delta = l.cantidad
			tipoMov = model.MovStockEntrada
			motivo = fmt.Sprintf("Compra de mercancía - Factura #%s", f.NCF)
		}
		if reverso {
			delta = -delta
			if tipoMov == model.MovStockSalida {
				tipoMov = model.MovStockEntrada
			} else {
				tipoMov = model.MovStockSalida
			}
			motivo = fmt.Sprintf("Reverso por pago declinado - Factura #%s", f.NCF)
		}

		if err := s.productoRepo.UpdateStockTx(ctx, tx, l.producto.ID, delta); err != nil {
			return fmt.Errorf("actualizar stock de %s: %w", l.producto.Nombre, err)
		}

		fid := f.ID
		mov := &model.MovimientoStock{
			ProductoID:  l.producto.ID,
			Tipo:        tipoMov,
			Cantidad:    l.cantidad,
			Responsable: cajero,
			Motivo:      motivo,
			FacturaID:   &fid,
		}
		if err := s.stockRepo.CreateTx(ctx, tx, mov); err != nil {
			return err
		}
	}
	return nil
}

func (s *facturacionService) crearCuenta(ctx context.Context, tx *gorm.DB, f *model.Factura, parte *contraparte, emision time.Time, vencimiento time.Time) error {
	if f.Tipo == model.FacturaTipoCompra {
		return s.cuentasRepo.CreatePagarTx(ctx, tx, &model.CuentaPorPagar{
			FacturaID:        f.ID,
			ProveedorID:      parte.id,
			MontoTotal:       f.Total,
			MontoPagado:      decimal.Zero,
			FechaEmision:     emision,
			FechaVencimiento: vencimiento,
			Estado:           model.CuentaPendiente,
		})
	}
	return s.cuentasRepo.CreateCobrarTx(ctx, tx, &model.CuentaPorCobrar{
		FacturaID:        f.ID,
		ClienteID:        parte.id,
		MontoTotal:       f.Total,
		MontoPagado:      decimal.Zero,
		FechaEmision:     emision,
		FechaVencimiento: vencimiento,
		Estado:           model.CuentaPendiente,
	})
}

// crearMovimientoCaja registers the invoice total in the shift ledger. A
// compra lands as "gasto", a venta as "venta".
func (s *facturacionService) crearMovimientoCaja(ctx context.Context, tx *gorm.DB, turnoID uuid.UUID, f *model.Factura) error {
	fid := f.ID
	tipoMov := "venta"
	descripcion := fmt.Sprintf("Venta - Factura #%s", f.NCF)
	if f.Tipo == model.FacturaTipoCompra {
		tipoMov = "gasto"
		descripcion = fmt.Sprintf("Compra - Factura #%s", f.NCF)
	}
	return s.turnoRepo.CreateMovimientoTx(ctx, tx, &model.MovimientoCaja{
		TurnoID:     turnoID,
		FacturaID:   &fid,
		Tipo:        tipoMov,
		MetodoPago:  f.MetodoPago,
		Descripcion: descripcion,
		Monto:       f.Total,
	})
}

// cobrarConTarjeta drives the terminal exchange for an already-committed
// PENDIENTE factura and settles it one way or the other.
func (s *facturacionService) cobrarConTarjeta(ctx context.Context, cajero string, turnoID uuid.UUID, f *model.Factura, lineas []lineaResuelta) error {
	resultado, err := s.terminal.Cobrar(f.Total)
	if err != nil {
		if revErr := s.revertirFactura(ctx, cajero, f, lineas); revErr != nil {
			return fmt.Errorf("revertir factura %s tras fallo del terminal: %w", f.NCF, revErr)
		}
		// A timeout or serial failure counts as a decline for the client.
		return apierror.Ef(apierror.KindPaymentDeclined, "pago rechazado: terminal no disponible (%v)", err)
	}
	if !resultado.Aprobado {
		if revErr := s.revertirFactura(ctx, cajero, f, lineas); revErr != nil {
			return fmt.Errorf("revertir factura %s tras rechazo: %w", f.NCF, revErr)
		}
		return apierror.Ef(apierror.KindPaymentDeclined, "pago rechazado: %s", resultado.Mensaje)
	}

	codigo := resultado.CodigoAutorizacion
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.SetPagadaTx(ctx, tx, f.ID, &codigo); err != nil {
			return err
		}
		f.Estado = model.FacturaPagada
		f.CodigoAutorizacion = &codigo
		return s.crearMovimientoCaja(ctx, tx, turnoID, f)
	})
	return txErr
}

// revertirFactura undoes the stock mutations of TX1 with compensating audit
// rows and marks the factura CANCELADA. The factura and its original stock
// movements remain on record.
func (s *facturacionService) revertirFactura(ctx context.Context, cajero string, f *model.Factura, lineas []lineaResuelta) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.aplicarStock(ctx, tx, cajero, f, lineas, true); err != nil {
			return err
		}
		if err := s.repo.UpdateEstadoTx(ctx, tx, f.ID, model.FacturaCancelada); err != nil {
			return err
		}
		f.Estado = model.FacturaCancelada
		return nil
	})
}

// imprimirTicket is best-effort: a POS must finish the sale even with the
// printer down, so failures surface as a warning on the response.
func (s *facturacionService) imprimirTicket(ctx context.Context, f *model.Factura, parte *contraparte) string {
	if s.printer == nil {
		return ""
	}
	impresora, err := s.impresoraRepo.FindActiva(ctx)
	if err != nil {
		return "no hay impresora activa configurada"
	}
	empresa, err := s.empresaRepo.Get(ctx)
	if err != nil {
		return fmt.Sprintf("no se pudo cargar la configuración de empresa: %v", err)
	}

	// Reload with detalles and product names for the ticket body.
	completa, err := s.repo.FindByID(ctx, f.ID)
	if err != nil {
		completa = f
	}

	texto := infra.BuildTicket(empresa, completa, parte.nombre, parte.documento, time.Now())
	if err := s.printer.Imprimir(ctx, texto, impresora.Nombre); err != nil {
		return fmt.Sprintf("la factura se registró pero no se pudo imprimir: %v", err)
	}
	return ""
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *facturacionService) ObtenerFactura(ctx context.Context, id uuid.UUID) (*dto.FacturaDetalleResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Ef(apierror.KindNotFound, "factura %s no encontrada", id)
		}
		return nil, err
	}
	return facturaToDetalle(f), nil
}

func (s *facturacionService) ListarFacturas(ctx context.Context, fecha, tipo string) ([]dto.FacturaDetalleResponse, error) {
	facturas, err := s.repo.List(ctx, fecha, tipo)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FacturaDetalleResponse, 0, len(facturas))
	for i := range facturas {
		out = append(out, *facturaToDetalle(&facturas[i]))
	}
	return out, nil
}

func (s *facturacionService) GenerarPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apierror.Ef(apierror.KindNotFound, "factura %s no encontrada", id)
		}
		return nil, "", err
	}

	parte, err := s.cargarContraparte(ctx, f)
	if err != nil {
		return nil, "", err
	}
	empresa, err := s.empresaRepo.Get(ctx)
	if err != nil {
		return nil, "", err
	}

	pdf, err := infra.GenerarFacturaPDF(empresa, f, parte.nombre, parte.documento)
	if err != nil {
		return nil, "", apierror.Ef(apierror.KindInternal, "generar PDF: %v", err)
	}
	return pdf, fmt.Sprintf("factura_%s.pdf", f.NCF), nil
}

func (s *facturacionService) ReimprimirTicket(ctx context.Context, id uuid.UUID) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.Ef(apierror.KindNotFound, "factura %s no encontrada", id)
		}
		return err
	}
	parte, err := s.cargarContraparte(ctx, f)
	if err != nil {
		return err
	}
	if warning := s.imprimirTicket(ctx, f, parte); warning != "" {
		return apierror.E(apierror.KindIntegration, warning)
	}
	return nil
}

// cargarContraparte resolves the stored party of a persisted factura.
func (s *facturacionService) cargarContraparte(ctx context.Context, f *model.Factura) (*contraparte, error) {
	if f.Tipo == model.FacturaTipoCompra {
		p, err := s.proveedorRepo.FindByID(ctx, f.ClienteID)
		if err != nil {
			return nil, err
		}
		return &contraparte{id: p.ID, nombre: p.Nombre, documento: p.RNCCedula}, nil
	}
	c, err := s.clienteRepo.FindByID(ctx, f.ClienteID)
	if err != nil {
		return nil, err
	}
	return &contraparte{id: c.ID, nombre: c.Nombre, documento: c.Cedula}, nil
}

func facturaToDetalle(f *model.Factura) *dto.FacturaDetalleResponse {
	detalles := make([]dto.DetalleFacturaResponse, 0, len(f.Detalles))
	for _, d := range f.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		detalles = append(detalles, dto.DetalleFacturaResponse{
			ProductoID: d.ProductoID.String(),
			Producto:   nombre,
			Cantidad:   d.Cantidad,
			Precio:     d.Precio,
			Itbis:      d.Itbis,
		})
	}
	return &dto.FacturaDetalleResponse{
		ID:                 f.ID.String(),
		NCF:                f.NCF,
		Tipo:               f.Tipo,
		Estado:             f.Estado,
		MetodoPago:         f.MetodoPago,
		Subtotal:           f.Subtotal,
		ItbisTotal:         f.ItbisTotal,
		Descuento:          f.Descuento,
		Total:              f.Total,
		CodigoAutorizacion: f.CodigoAutorizacion,
		Fecha:              f.CreatedAt,
		Detalles:           detalles,
	}
}
