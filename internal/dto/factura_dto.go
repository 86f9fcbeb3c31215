package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetalleFacturaRequest references a product either by its UUID or by its
// catalog code; resolution happens before the invoice transaction opens.
type DetalleFacturaRequest struct {
	ProductoID string          `json:"producto_id" binding:"required"`
	Cantidad   int             `json:"cantidad" binding:"required,min=1"`
	Precio     decimal.Decimal `json:"precio" binding:"required"`
	Itbis      bool            `json:"itbis"`
}

type CrearFacturaRequest struct {
	// ClienteID is a party UUID, or "cf" for the walk-in customer on sales.
	ClienteID        string                  `json:"cliente_id" binding:"required"`
	EsProveedor      bool                    `json:"es_proveedor"`
	MetodoPago       string                  `json:"metodo_pago" binding:"required,oneof=efectivo tarjeta transferencia credito"`
	Total            decimal.Decimal         `json:"total" binding:"required"`
	ItbisTotal       decimal.Decimal         `json:"itbis_total"`
	Descuento        decimal.Decimal         `json:"descuento"`
	FechaVencimiento *string                 `json:"fecha_vencimiento"`
	Detalles         []DetalleFacturaRequest `json:"detalles" binding:"required,min=1,dive"`
}

type FacturaResponse struct {
	FacturaID          string  `json:"factura_id"`
	NCF                string  `json:"ncf"`
	Estado             string  `json:"estado"`
	CodigoAutorizacion *string `json:"codigo_autorizacion,omitempty"`
	Warning            string  `json:"warning,omitempty"`
}

type DetalleFacturaResponse struct {
	ProductoID string          `json:"producto_id"`
	Producto   string          `json:"producto"`
	Cantidad   int             `json:"cantidad"`
	Precio     decimal.Decimal `json:"precio"`
	Itbis      bool            `json:"itbis"`
}

type FacturaDetalleResponse struct {
	ID                 string                   `json:"id"`
	NCF                string                   `json:"ncf"`
	Tipo               string                   `json:"tipo"`
	Estado             string                   `json:"estado"`
	MetodoPago         string                   `json:"metodo_pago"`
	Subtotal           decimal.Decimal          `json:"subtotal"`
	ItbisTotal         decimal.Decimal          `json:"itbis_total"`
	Descuento          decimal.Decimal          `json:"descuento"`
	Total              decimal.Decimal          `json:"total"`
	CodigoAutorizacion *string                  `json:"codigo_autorizacion,omitempty"`
	Fecha              time.Time                `json:"fecha"`
	Detalles           []DetalleFacturaResponse `json:"detalles"`
}
