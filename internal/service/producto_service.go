package service

import (
	"context"
	"errors"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/apierror"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/dto"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context) ([]dto.ProductoResponse, error)
	Buscar(ctx context.Context, q string) ([]dto.ProductoResponse, error)
	// ConsultarPrecio serves the public price-check kiosk by catalog code.
	ConsultarPrecio(ctx context.Context, codigo string) (*dto.PrecioResponse, error)
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if !req.PrecioVenta.IsPositive() {
		return nil, apierror.E(apierror.KindValidation, "el precio de venta debe ser mayor que cero")
	}
	tasa := req.TasaItbis
	if tasa.IsZero() {
		tasa = decimal.NewFromInt(18)
	}
	p := model.Producto{
		Codigo:      req.Codigo,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		PrecioCosto: req.PrecioCosto,
		PrecioVenta: req.PrecioVenta,
		TasaItbis:   tasa,
		StockActual: req.StockActual,
		StockMinimo: req.StockMinimo,
		StockMaximo: req.StockMaximo,
		Estado:      "activo",
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Ef(apierror.KindConflict, "ya existe un producto con código %s", req.Codigo)
		}
		return nil, err
	}
	return productoToResponse(&p), nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Ef(apierror.KindNotFound, "producto %s no encontrado", id)
		}
		return nil, err
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.PrecioCosto != nil {
		p.PrecioCosto = *req.PrecioCosto
	}
	if req.PrecioVenta != nil {
		if !req.PrecioVenta.IsPositive() {
			return nil, apierror.E(apierror.KindValidation, "el precio de venta debe ser mayor que cero")
		}
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.TasaItbis != nil {
		p.TasaItbis = *req.TasaItbis
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}
	if req.StockMaximo != nil {
		p.StockMaximo = *req.StockMaximo
	}
	if req.Estado != nil {
		p.Estado = *req.Estado
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Ef(apierror.KindNotFound, "producto %s no encontrado", id)
		}
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, *productoToResponse(&productos[i]))
	}
	return out, nil
}

func (s *productoService) Buscar(ctx context.Context, q string) ([]dto.ProductoResponse, error) {
	if q == "" {
		return []dto.ProductoResponse{}, nil
	}
	productos, err := s.repo.Buscar(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, *productoToResponse(&productos[i]))
	}
	return out, nil
}

func (s *productoService) ConsultarPrecio(ctx context.Context, codigo string) (*dto.PrecioResponse, error) {
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Ef(apierror.KindNotFound, "producto con código %s no encontrado", codigo)
		}
		return nil, err
	}
	return &dto.PrecioResponse{
		Codigo:      p.Codigo,
		Nombre:      p.Nombre,
		PrecioVenta: p.PrecioVenta,
	}, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:          p.ID.String(),
		Codigo:      p.Codigo,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		PrecioCosto: p.PrecioCosto,
		PrecioVenta: p.PrecioVenta,
		TasaItbis:   p.TasaItbis,
		StockActual: p.StockActual,
		StockMinimo: p.StockMinimo,
		StockMaximo: p.StockMaximo,
		Estado:      p.Estado,
		CreatedAt:   p.CreatedAt,
	}
}
