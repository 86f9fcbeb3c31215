package dto

import "time"

type AjusteStockRequest struct {
	ProductoID string `json:"producto_id" binding:"required"`
	Tipo       string `json:"tipo" binding:"required,oneof=Entrada Salida Ajuste"`
	Cantidad   int    `json:"cantidad" binding:"required,min=1"`
	Motivo     string `json:"motivo" binding:"required"`
}

type MovimientoStockResponse struct {
	ID          string    `json:"id"`
	ProductoID  string    `json:"producto_id"`
	Producto    string    `json:"producto"`
	Tipo        string    `json:"tipo"`
	Cantidad    int       `json:"cantidad"`
	Responsable string    `json:"responsable"`
	Motivo      string    `json:"motivo"`
	FacturaID   *string   `json:"factura_id,omitempty"`
	Fecha       time.Time `json:"fecha"`
}

type AlertaStockResponse struct {
	ProductoID  string `json:"producto_id"`
	Codigo      string `json:"codigo"`
	Nombre      string `json:"nombre"`
	StockActual int    `json:"stock_actual"`
	StockMinimo int    `json:"stock_minimo"`
}
