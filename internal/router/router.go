package router

import (
	"time"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/config"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/handler"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/infra"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/middleware"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/repository"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/service"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New builds the gin engine with all routes and middleware wired.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware. Order matters: request id first so every log
	// line and error carries it.
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// Infra clients
	agente := infra.NewAgenteImpresion(cfg.AgenteImpresionURL, cfg.AgenteImpresionToken)
	terminal := infra.NewVerifoneTerminal(cfg.VerifonePuerto, cfg.VerifoneBaudios, time.Duration(cfg.VerifoneTimeoutSegs)*time.Second)

	// Repositories
	turnoRepo := repository.NewTurnoRepository(db)
	facturaRepo := repository.NewFacturaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	cuentasRepo := repository.NewCuentasRepository(db)
	stockRepo := repository.NewMovimientoStockRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	impresoraRepo := repository.NewImpresoraRepository(db)
	empresaRepo := repository.NewEmpresaRepository(db)

	// Services
	ncfGen := service.NewNCFGenerator(facturaRepo)
	cajaSvc := service.NewCajaService(turnoRepo, facturaRepo, dispatcher)
	facturacionSvc := service.NewFacturacionService(
		facturaRepo, productoRepo, clienteRepo, proveedorRepo,
		cuentasRepo, stockRepo, turnoRepo, empresaRepo, impresoraRepo,
		cajaSvc, ncfGen, terminal, agente,
	)
	productoSvc := service.NewProductoService(productoRepo)
	inventarioSvc := service.NewInventarioService(productoRepo, stockRepo)
	cuentasSvc := service.NewCuentasService(cuentasRepo, facturaRepo)
	catalogoSvc := service.NewCatalogoService(clienteRepo, proveedorRepo, impresoraRepo, empresaRepo)
	authSvc := service.NewAuthService(usuarioRepo, cfg)

	// Handlers
	cajaH := handler.NewCajaHandler(cajaSvc)
	facturaH := handler.NewFacturaHandler(facturacionSvc)
	productoH := handler.NewProductoHandler(productoSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	cuentasH := handler.NewCuentasHandler(cuentasSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	authH := handler.NewAuthHandler(authSvc)

	// Public endpoints
	r.GET("/health", handler.Health(db, rdb, agente))
	r.GET("/v1/precio/:codigo", productoH.ConsultarPrecio)

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Authenticated API
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))

	cualquiera := middleware.RequireRole(model.RolAdmin, model.RolCajero)
	soloAdmin := middleware.RequireRole(model.RolAdmin)

	caja := v1.Group("/caja", cualquiera)
	{
		caja.POST("/abrir", cajaH.Abrir)
		caja.POST("/cerrar", cajaH.Cerrar)
		caja.GET("/estado-actual", cajaH.EstadoActual)
		caja.POST("/movimientos", cajaH.RegistrarMovimiento)
	}

	facturas := v1.Group("/facturas", cualquiera)
	{
		facturas.POST("", facturaH.Crear)
		facturas.GET("", facturaH.Listar)
		facturas.GET("/:id", facturaH.Obtener)
		facturas.GET("/:id/pdf", facturaH.PDF)
		facturas.POST("/:id/imprimir", facturaH.Imprimir)
	}

	productos := v1.Group("/productos")
	{
		productos.GET("", cualquiera, productoH.Listar)
		productos.GET("/:id", cualquiera, productoH.Obtener)
		productos.POST("", soloAdmin, productoH.Crear)
		productos.PUT("/:id", soloAdmin, productoH.Actualizar)
	}

	clientes := v1.Group("/clientes", cualquiera)
	{
		clientes.GET("", catalogoH.ListarClientes)
		clientes.POST("", catalogoH.CrearCliente)
		clientes.PUT("/:id", catalogoH.ActualizarCliente)
	}

	proveedores := v1.Group("/proveedores", soloAdmin)
	{
		proveedores.GET("", catalogoH.ListarProveedores)
		proveedores.POST("", catalogoH.CrearProveedor)
		proveedores.PUT("/:id", catalogoH.ActualizarProveedor)
	}

	cuentas := v1.Group("/cuentas", soloAdmin)
	{
		cuentas.GET("/cobrar", cuentasH.ListarPorCobrar)
		cuentas.POST("/cobrar/:id/pagos", cuentasH.PagarCobrar)
		cuentas.GET("/pagar", cuentasH.ListarPorPagar)
		cuentas.POST("/pagar/:id/pagos", cuentasH.PagarPagar)
	}

	inventario := v1.Group("/inventario", soloAdmin)
	{
		inventario.POST("/ajustes", inventarioH.Ajustar)
		inventario.GET("/movimientos", inventarioH.Movimientos)
		inventario.GET("/alertas", inventarioH.Alertas)
	}

	usuarios := v1.Group("/usuarios", soloAdmin)
	{
		usuarios.POST("", authH.CrearUsuario)
		usuarios.GET("", authH.ListarUsuarios)
		usuarios.DELETE("/:id", authH.DesactivarUsuario)
	}

	impresoras := v1.Group("/impresoras", soloAdmin)
	{
		impresoras.POST("", catalogoH.GuardarImpresora)
		impresoras.GET("/activa", catalogoH.ImpresoraActiva)
	}

	empresa := v1.Group("/empresa")
	{
		empresa.GET("", cualquiera, catalogoH.ObtenerEmpresa)
		empresa.PUT("", soloAdmin, catalogoH.GuardarEmpresa)
	}

	return r
}
