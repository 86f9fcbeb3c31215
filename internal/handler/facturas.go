package handler

import (
	"net/http"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/dto"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/middleware"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/service"

	"github.com/gin-gonic/gin"
)

type FacturaHandler struct{ svc service.FacturacionService }

func NewFacturaHandler(svc service.FacturacionService) *FacturaHandler {
	return &FacturaHandler{svc: svc}
}

// Crear registers a sale or purchase invoice end to end: NCF assignment,
// stock mutation, payment resolution and best-effort ticket printing.
func (h *FacturaHandler) Crear(c *gin.Context) {
	var req dto.CrearFacturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.CrearFactura(c.Request.Context(), claims.Username, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FacturaHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerFactura(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar returns invoices filtered by ?fecha=YYYY-MM-DD and ?tipo=venta|compra.
func (h *FacturaHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarFacturas(c.Request.Context(), c.Query("fecha"), c.Query("tipo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PDF streams the invoice document inline.
func (h *FacturaHandler) PDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	pdf, nombre, err := h.svc.GenerarPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+nombre+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Imprimir re-sends the ticket of an existing invoice to the printing agent.
func (h *FacturaHandler) Imprimir(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.ReimprimirTicket(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
