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

// Thin CRUD over the party catalogs plus the printer and business settings.

type CatalogoService interface {
	CrearCliente(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	ActualizarCliente(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	ListarClientes(ctx context.Context) ([]dto.ClienteResponse, error)
	CrearProveedor(ctx context.Context, req dto.ProveedorRequest) (*dto.ProveedorResponse, error)
	ActualizarProveedor(ctx context.Context, id uuid.UUID, req dto.ProveedorRequest) (*dto.ProveedorResponse, error)
	ListarProveedores(ctx context.Context) ([]dto.ProveedorResponse, error)
	GuardarImpresora(ctx context.Context, req dto.ImpresoraRequest) (*dto.ImpresoraResponse, error)
	ImpresoraActiva(ctx context.Context) (*dto.ImpresoraResponse, error)
	ObtenerEmpresa(ctx context.Context) (*dto.EmpresaResponse, error)
	GuardarEmpresa(ctx context.Context, req dto.EmpresaRequest) (*dto.EmpresaResponse, error)
}

type catalogoService struct {
	clienteRepo   repository.ClienteRepository
	proveedorRepo repository.ProveedorRepository
	impresoraRepo repository.ImpresoraRepository
	empresaRepo   repository.EmpresaRepository
}

func NewCatalogoService(
	clienteRepo repository.ClienteRepository,
	proveedorRepo repository.ProveedorRepository,
	impresoraRepo repository.ImpresoraRepository,
	empresaRepo repository.EmpresaRepository,
) CatalogoService {
	return &catalogoService{
		clienteRepo:   clienteRepo,
		proveedorRepo: proveedorRepo,
		impresoraRepo: impresoraRepo,
		empresaRepo:   empresaRepo,
	}
}

func (s *catalogoService) CrearCliente(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	tipo := req.Tipo
	if tipo == "" {
		tipo = "regular"
	}
	c := model.Cliente{
		Nombre:    req.Nombre,
		Cedula:    req.Cedula,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
		Correo:    req.Correo,
		Tipo:      tipo,
		Estado:    "activo",
	}
	if err := s.clienteRepo.Create(ctx, &c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Ef(apierror.KindConflict, "ya existe un cliente con cédula %s", req.Cedula)
		}
		return nil, err
	}
	return clienteToResponse(&c), nil
}

func (s *catalogoService) ActualizarCliente(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.clienteRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Ef(apierror.KindNotFound, "cliente %s no encontrado", id)
		}
		return nil, err
	}
	if c.Cedula == model.CedulaConsumidorFinal && req.Cedula != model.CedulaConsumidorFinal {
		return nil, apierror.E(apierror.KindValidation, "el consumidor final no puede cambiar de cédula")
	}
	c.Nombre = req.Nombre
	c.Cedula = req.Cedula
	c.Telefono = req.Telefono
	c.Direccion = req.Direccion
	c.Correo = req.Correo
	if req.Tipo != "" {
		c.Tipo = req.Tipo
	}
	if err := s.clienteRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *catalogoService) ListarClientes(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.clienteRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out, nil
}

func (s *catalogoService) CrearProveedor(ctx context.Context, req dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	p := model.Proveedor{
		Nombre:    req.Nombre,
		RNCCedula: req.RNCCedula,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
		Email:     req.Email,
		Estado:    "activo",
	}
	if err := s.proveedorRepo.Create(ctx, &p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Ef(apierror.KindConflict, "ya existe un proveedor con RNC %s", req.RNCCedula)
		}
		return nil, err
	}
	return proveedorToResponse(&p), nil
}

func (s *catalogoService) ActualizarProveedor(ctx context.Context, id uuid.UUID, req dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.proveedorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Ef(apierror.KindNotFound, "proveedor %s no encontrado", id)
		}
		return nil, err
	}
	p.Nombre = req.Nombre
	p.RNCCedula = req.RNCCedula
	p.Telefono = req.Telefono
	p.Direccion = req.Direccion
	p.Email = req.Email
	if err := s.proveedorRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *catalogoService) ListarProveedores(ctx context.Context) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.proveedorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		out = append(out, *proveedorToResponse(&proveedores[i]))
	}
	return out, nil
}

func (s *catalogoService) GuardarImpresora(ctx context.Context, req dto.ImpresoraRequest) (*dto.ImpresoraResponse, error) {
	i := model.Impresora{
		Nombre:    req.Nombre,
		Tipo:      req.Tipo,
		Modelo:    req.Modelo,
		IP:        req.IP,
		Ubicacion: req.Ubicacion,
	}
	if err := s.impresoraRepo.Guardar(ctx, &i); err != nil {
		return nil, err
	}
	return impresoraToResponse(&i), nil
}

func (s *catalogoService) ImpresoraActiva(ctx context.Context) (*dto.ImpresoraResponse, error) {
	i, err := s.impresoraRepo.FindActiva(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.E(apierror.KindNotFound, "no hay impresora configurada")
		}
		return nil, err
	}
	return impresoraToResponse(i), nil
}

func (s *catalogoService) ObtenerEmpresa(ctx context.Context) (*dto.EmpresaResponse, error) {
	e, err := s.empresaRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return empresaToResponse(e), nil
}

func (s *catalogoService) GuardarEmpresa(ctx context.Context, req dto.EmpresaRequest) (*dto.EmpresaResponse, error) {
	e := model.Empresa{
		Nombre:       req.Nombre,
		RNC:          req.RNC,
		Telefono:     req.Telefono,
		Direccion:    req.Direccion,
		MensajeLegal: req.MensajeLegal,
	}
	if err := s.empresaRepo.Guardar(ctx, &e); err != nil {
		return nil, err
	}
	return empresaToResponse(&e), nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID.String(),
		Nombre:    c.Nombre,
		Cedula:    c.Cedula,
		Telefono:  c.Telefono,
		Direccion: c.Direccion,
		Correo:    c.Correo,
		Tipo:      c.Tipo,
		Estado:    c.Estado,
	}
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:        p.ID.String(),
		Nombre:    p.Nombre,
		RNCCedula: p.RNCCedula,
		Telefono:  p.Telefono,
		Direccion: p.Direccion,
		Email:     p.Email,
		Estado:    p.Estado,
	}
}

func impresoraToResponse(i *model.Impresora) *dto.ImpresoraResponse {
	return &dto.ImpresoraResponse{
		ID:        i.ID.String(),
		Nombre:    i.Nombre,
		Tipo:      i.Tipo,
		Modelo:    i.Modelo,
		IP:        i.IP,
		Ubicacion: i.Ubicacion,
		Activa:    i.Activa,
	}
}

func empresaToResponse(e *model.Empresa) *dto.EmpresaResponse {
	return &dto.EmpresaResponse{
		Nombre:       e.Nombre,
		RNC:          e.RNC,
		Telefono:     e.Telefono,
		Direccion:    e.Direccion,
		MensajeLegal: e.MensajeLegal,
	}
}
