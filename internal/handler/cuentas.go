package handler

import (
	"net/http"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/dto"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/service"

	"github.com/gin-gonic/gin"
)

type CuentasHandler struct{ svc service.CuentasService }

func NewCuentasHandler(svc service.CuentasService) *CuentasHandler {
	return &CuentasHandler{svc: svc}
}

// ListarPorCobrar returns receivables, optionally filtered by ?estado=.
func (h *CuentasHandler) ListarPorCobrar(c *gin.Context) {
	resp, err := h.svc.ListarPorCobrar(c.Request.Context(), c.Query("estado"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuentasHandler) ListarPorPagar(c *gin.Context) {
	resp, err := h.svc.ListarPorPagar(c.Request.Context(), c.Query("estado"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuentasHandler) PagarCobrar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPagoCobrar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuentasHandler) PagarPagar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPagoPagar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
