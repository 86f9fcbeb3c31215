package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CrearProductoRequest struct {
	Codigo      string          `json:"codigo" binding:"required"`
	Nombre      string          `json:"nombre" binding:"required"`
	Descripcion *string         `json:"descripcion"`
	PrecioCosto decimal.Decimal `json:"precio_costo"`
	PrecioVenta decimal.Decimal `json:"precio_venta" binding:"required"`
	TasaItbis   decimal.Decimal `json:"tasa_itbis"`
	StockActual int             `json:"stock_actual" binding:"min=0"`
	StockMinimo int             `json:"stock_minimo" binding:"min=0"`
	StockMaximo int             `json:"stock_maximo" binding:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"`
	Descripcion *string          `json:"descripcion"`
	PrecioCosto *decimal.Decimal `json:"precio_costo"`
	PrecioVenta *decimal.Decimal `json:"precio_venta"`
	TasaItbis   *decimal.Decimal `json:"tasa_itbis"`
	StockMinimo *int             `json:"stock_minimo"`
	StockMaximo *int             `json:"stock_maximo"`
	Estado      *string          `json:"estado" binding:"omitempty,oneof=activo inactivo"`
}

type ProductoResponse struct {
	ID          string          `json:"id"`
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion,omitempty"`
	PrecioCosto decimal.Decimal `json:"precio_costo"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	TasaItbis   decimal.Decimal `json:"tasa_itbis"`
	StockActual int             `json:"stock_actual"`
	StockMinimo int             `json:"stock_minimo"`
	StockMaximo int             `json:"stock_maximo"`
	Estado      string          `json:"estado"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PrecioResponse is the public price-check payload for the verifier kiosk.
type PrecioResponse struct {
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
}
