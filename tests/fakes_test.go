package tests

import (
	"context"
	"strings"
	"time"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/dto"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/infra"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory fakes for every repository interface. They mimic the constraints
// the real schema enforces (unique open turno, unique movement per factura,
// unique catalog codes) by returning gorm.ErrDuplicatedKey, so services see
// the same error surface as against Postgres. DB() returns nil, which makes
// runTx call the closure directly.

// ── TurnoRepository ──────────────────────────────────────────────────────────

type fakeTurnoRepo struct {
	turnos      map[uuid.UUID]*model.Turno
	movimientos []model.MovimientoCaja
	facturas    *fakeFacturaRepo
}

func newFakeTurnoRepo(facturas *fakeFacturaRepo) *fakeTurnoRepo {
	return &fakeTurnoRepo{turnos: make(map[uuid.UUID]*model.Turno), facturas: facturas}
}

func (r *fakeTurnoRepo) DB() *gorm.DB { return nil }

func (r *fakeTurnoRepo) CreateTurno(_ context.Context, t *model.Turno) error {
	for _, existing := range r.turnos {
		if existing.Estado == model.TurnoAbierto {
			return gorm.ErrDuplicatedKey
		}
	}
	t.ID = uuid.New()
	t.FechaApertura = time.Now()
	r.turnos[t.ID] = t
	return nil
}

func (r *fakeTurnoRepo) FindTurnoAbierto(_ context.Context) (*model.Turno, error) {
	for _, t := range r.turnos {
		if t.Estado == model.TurnoAbierto {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTurnoRepo) FindTurnoByID(_ context.Context, id uuid.UUID) (*model.Turno, error) {
	t, ok := r.turnos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTurnoRepo) UpdateTurno(_ context.Context, t *model.Turno) error {
	r.turnos[t.ID] = t
	return nil
}

func (r *fakeTurnoRepo) createMov(m *model.MovimientoCaja) error {
	if m.FacturaID != nil {
		for _, existing := range r.movimientos {
			if existing.TurnoID == m.TurnoID && existing.FacturaID != nil && *existing.FacturaID == *m.FacturaID {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *fakeTurnoRepo) CreateMovimiento(_ context.Context, m *model.MovimientoCaja) error {
	return r.createMov(m)
}

func (r *fakeTurnoRepo) CreateMovimientoTx(_ context.Context, _ *gorm.DB, m *model.MovimientoCaja) error {
	return r.createMov(m)
}

func (r *fakeTurnoRepo) ListMovimientosVisibles(_ context.Context, turnoID uuid.UUID) ([]model.MovimientoCaja, error) {
	var out []model.MovimientoCaja
	for _, m := range r.movimientos {
		if m.TurnoID != turnoID {
			continue
		}
		if m.FacturaID != nil && r.facturas != nil {
			if f, ok := r.facturas.facturas[*m.FacturaID]; ok && f.Tipo == model.FacturaTipoCompra {
				continue
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeTurnoRepo) FindMovimientoPorFactura(_ context.Context, turnoID, facturaID uuid.UUID) (*model.MovimientoCaja, error) {
	for i := range r.movimientos {
		m := &r.movimientos[i]
		if m.TurnoID == turnoID && m.FacturaID != nil && *m.FacturaID == facturaID {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTurnoRepo) EstadisticasTurno(_ context.Context, turnoID uuid.UUID) (*dto.EstadisticasTurno, error) {
	stats := &dto.EstadisticasTurno{TotalFacturado: decimal.Zero}
	for _, f := range r.facturas.facturas {
		if f.TurnoID != turnoID || f.Tipo != model.FacturaTipoVenta || f.Estado != model.FacturaPagada {
			continue
		}
		stats.FacturasEmitidas++
		stats.TotalFacturado = stats.TotalFacturado.Add(f.Total)
		if stats.UltimaFactura == nil || f.NCF > *stats.UltimaFactura {
			ncf := f.NCF
			stats.UltimaFactura = &ncf
		}
	}
	return stats, nil
}

var _ repository.TurnoRepository = (*fakeTurnoRepo)(nil)

// ── FacturaRepository ────────────────────────────────────────────────────────

type fakeFacturaRepo struct {
	facturas   map[uuid.UUID]*model.Factura
	secuencias map[string]int64
}

func newFakeFacturaRepo() *fakeFacturaRepo {
	return &fakeFacturaRepo{
		facturas:   make(map[uuid.UUID]*model.Factura),
		secuencias: make(map[string]int64),
	}
}

func (r *fakeFacturaRepo) DB() *gorm.DB { return nil }

func (r *fakeFacturaRepo) Create(_ context.Context, _ *gorm.DB, f *model.Factura) error {
	f.ID = uuid.New()
	f.CreatedAt = time.Now()
	for i := range f.Detalles {
		f.Detalles[i].ID = uuid.New()
		f.Detalles[i].FacturaID = f.ID
	}
	r.facturas[f.ID] = f
	return nil
}

func (r *fakeFacturaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Factura, error) {
	f, ok := r.facturas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *fakeFacturaRepo) UpdateEstadoTx(_ context.Context, _ *gorm.DB, id uuid.UUID, estado string) error {
	f, ok := r.facturas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.Estado = estado
	return nil
}

func (r *fakeFacturaRepo) SetPagadaTx(_ context.Context, _ *gorm.DB, id uuid.UUID, codigo *string) error {
	f, ok := r.facturas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.Estado = model.FacturaPagada
	if codigo != nil {
		f.CodigoAutorizacion = codigo
	}
	return nil
}

func (r *fakeFacturaRepo) List(_ context.Context, fecha, tipo string) ([]model.Factura, error) {
	var out []model.Factura
	for _, f := range r.facturas {
		if tipo != "" && f.Tipo != tipo {
			continue
		}
		if fecha != "" && f.CreatedAt.Format("2006-01-02") != fecha {
			continue
		}
		out = append(out, *f)
	}
	return out, nil
}

func (r *fakeFacturaRepo) NextNCF(_ context.Context, _ *gorm.DB, tipo, fecha string) (int64, error) {
	key := tipo + fecha
	r.secuencias[key]++
	return r.secuencias[key], nil
}

var _ repository.FacturaRepository = (*fakeFacturaRepo)(nil)

// ── ProductoRepository ───────────────────────────────────────────────────────

type fakeProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newFakeProductoRepo() *fakeProductoRepo {
	return &fakeProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *fakeProductoRepo) DB() *gorm.DB { return nil }

func (r *fakeProductoRepo) Create(_ context.Context, p *model.Producto) error {
	for _, existing := range r.productos {
		if existing.Codigo == p.Codigo {
			return gorm.ErrDuplicatedKey
		}
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *fakeProductoRepo) FindByIDTx(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.Codigo == codigo {
			copia := *p
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) List(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductoRepo) Buscar(_ context.Context, q string) ([]model.Producto, error) {
	var out []model.Producto
	lq := strings.ToLower(q)
	for _, p := range r.productos {
		if p.Estado != "activo" {
			continue
		}
		if strings.Contains(strings.ToLower(p.Codigo), lq) || strings.Contains(strings.ToLower(p.Nombre), lq) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductoRepo) UpdateStockTx(_ context.Context, _ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockActual += delta
	return nil
}

func (r *fakeProductoRepo) ListBajoStock(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Estado == "activo" && p.StockActual <= p.StockMinimo {
			out = append(out, *p)
		}
	}
	return out, nil
}

var _ repository.ProductoRepository = (*fakeProductoRepo)(nil)

// ── ClienteRepository ────────────────────────────────────────────────────────

type fakeClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newFakeClienteRepo() *fakeClienteRepo {
	return &fakeClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *fakeClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	for _, existing := range r.clientes {
		if existing.Cedula == c.Cedula {
			return gorm.ErrDuplicatedKey
		}
	}
	c.ID = uuid.New()
	r.clientes[c.ID] = c
	return nil
}

func (r *fakeClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeClienteRepo) FindByCedula(_ context.Context, cedula string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Cedula == cedula {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *fakeClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeClienteRepo) ResolverConsumidorFinal(ctx context.Context) (*model.Cliente, error) {
	if c, err := r.FindByCedula(ctx, model.CedulaConsumidorFinal); err == nil {
		return c, nil
	}
	c := &model.Cliente{Nombre: "CONSUMIDOR FINAL", Cedula: model.CedulaConsumidorFinal, Tipo: "generico"}
	if err := r.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

var _ repository.ClienteRepository = (*fakeClienteRepo)(nil)

// ── ProveedorRepository ──────────────────────────────────────────────────────

type fakeProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newFakeProveedorRepo() *fakeProveedorRepo {
	return &fakeProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *fakeProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	for _, existing := range r.proveedores {
		if existing.RNCCedula == p.RNCCedula {
			return gorm.ErrDuplicatedKey
		}
	}
	p.ID = uuid.New()
	r.proveedores[p.ID] = p
	return nil
}

func (r *fakeProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *fakeProveedorRepo) List(_ context.Context) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		out = append(out, *p)
	}
	return out, nil
}

var _ repository.ProveedorRepository = (*fakeProveedorRepo)(nil)

// ── CuentasRepository ────────────────────────────────────────────────────────

type fakeCuentasRepo struct {
	cobrar map[uuid.UUID]*model.CuentaPorCobrar
	pagar  map[uuid.UUID]*model.CuentaPorPagar
}

func newFakeCuentasRepo() *fakeCuentasRepo {
	return &fakeCuentasRepo{
		cobrar: make(map[uuid.UUID]*model.CuentaPorCobrar),
		pagar:  make(map[uuid.UUID]*model.CuentaPorPagar),
	}
}

func (r *fakeCuentasRepo) CreateCobrarTx(_ context.Context, _ *gorm.DB, c *model.CuentaPorCobrar) error {
	c.ID = uuid.New()
	r.cobrar[c.ID] = c
	return nil
}

func (r *fakeCuentasRepo) CreatePagarTx(_ context.Context, _ *gorm.DB, c *model.CuentaPorPagar) error {
	c.ID = uuid.New()
	r.pagar[c.ID] = c
	return nil
}

func (r *fakeCuentasRepo) FindCobrarByID(_ context.Context, id uuid.UUID) (*model.CuentaPorCobrar, error) {
	c, ok := r.cobrar[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCuentasRepo) FindPagarByID(_ context.Context, id uuid.UUID) (*model.CuentaPorPagar, error) {
	c, ok := r.pagar[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCuentasRepo) UpdateCobrar(_ context.Context, c *model.CuentaPorCobrar) error {
	r.cobrar[c.ID] = c
	return nil
}

func (r *fakeCuentasRepo) UpdatePagar(_ context.Context, c *model.CuentaPorPagar) error {
	r.pagar[c.ID] = c
	return nil
}

func (r *fakeCuentasRepo) ListCobrar(_ context.Context, estado string) ([]model.CuentaPorCobrar, error) {
	var out []model.CuentaPorCobrar
	for _, c := range r.cobrar {
		if estado == "" || c.Estado == estado {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCuentasRepo) ListPagar(_ context.Context, estado string) ([]model.CuentaPorPagar, error) {
	var out []model.CuentaPorPagar
	for _, c := range r.pagar {
		if estado == "" || c.Estado == estado {
			out = append(out, *c)
		}
	}
	return out, nil
}

var _ repository.CuentasRepository = (*fakeCuentasRepo)(nil)

// ── MovimientoStockRepository ────────────────────────────────────────────────

type fakeStockRepo struct {
	movimientos []model.MovimientoStock
}

func (r *fakeStockRepo) CreateTx(_ context.Context, _ *gorm.DB, m *model.MovimientoStock) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *fakeStockRepo) List(_ context.Context, productoID *uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if productoID != nil && m.ProductoID != *productoID {
			continue
		}
		out = append(out, m)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ repository.MovimientoStockRepository = (*fakeStockRepo)(nil)

// ── UsuarioRepository ────────────────────────────────────────────────────────

type fakeUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *fakeUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	for _, existing := range r.usuarios {
		if existing.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	u.ID = uuid.New()
	r.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

var _ repository.UsuarioRepository = (*fakeUsuarioRepo)(nil)

// ── ImpresoraRepository / EmpresaRepository ──────────────────────────────────

type fakeImpresoraRepo struct {
	activa *model.Impresora
}

func (r *fakeImpresoraRepo) Guardar(_ context.Context, i *model.Impresora) error {
	i.ID = uuid.New()
	i.Activa = true
	r.activa = i
	return nil
}

func (r *fakeImpresoraRepo) FindActiva(_ context.Context) (*model.Impresora, error) {
	if r.activa == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.activa, nil
}

var _ repository.ImpresoraRepository = (*fakeImpresoraRepo)(nil)

type fakeEmpresaRepo struct {
	empresa *model.Empresa
}

func (r *fakeEmpresaRepo) Get(_ context.Context) (*model.Empresa, error) {
	if r.empresa == nil {
		return &model.Empresa{Nombre: "MINI MARKET"}, nil
	}
	return r.empresa, nil
}

func (r *fakeEmpresaRepo) Guardar(_ context.Context, e *model.Empresa) error {
	r.empresa = e
	return nil
}

var _ repository.EmpresaRepository = (*fakeEmpresaRepo)(nil)

// ── Terminal y impresora físicos ─────────────────────────────────────────────

type fakeTerminal struct {
	aprobado bool
	codigo   string
	mensaje  string
	err      error
	cobros   []decimal.Decimal
}

func (t *fakeTerminal) Cobrar(monto decimal.Decimal) (*infra.ResultadoCobro, error) {
	t.cobros = append(t.cobros, monto)
	if t.err != nil {
		return nil, t.err
	}
	return &infra.ResultadoCobro{
		Aprobado:           t.aprobado,
		CodigoAutorizacion: t.codigo,
		Mensaje:            t.mensaje,
	}, nil
}

type fakePrinter struct {
	err      error
	impresos []string
}

func (p *fakePrinter) Imprimir(_ context.Context, texto, _ string) error {
	if p.err != nil {
		return p.err
	}
	p.impresos = append(p.impresos, texto)
	return nil
}
