package tests

import (
	"strings"
	"testing"
	"time"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/infra"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticketFixture() (*model.Empresa, *model.Factura) {
	empresa := &model.Empresa{
		Nombre:       "MINI MARKET EL SOL",
		RNC:          "131999888",
		Telefono:     "809-555-0101",
		Direccion:    "Av. Duarte #45, Santiago",
		MensajeLegal: "Conserve este ticket",
	}
	factura := &model.Factura{
		Tipo:       model.FacturaTipoVenta,
		Estado:     model.FacturaPagada,
		NCF:        "B012608150000000001",
		Subtotal:   decimal.NewFromInt(20),
		ItbisTotal: decimal.NewFromFloat(3.60),
		Total:      decimal.NewFromFloat(23.60),
		MetodoPago: "efectivo",
		CreatedAt:  time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC),
		Detalles: []model.DetalleFactura{
			{
				Cantidad: 2,
				Precio:   decimal.NewFromInt(10),
				Itbis:    true,
				Producto: &model.Producto{Nombre: "Refresco 2L"},
			},
		},
	}
	return empresa, factura
}

func TestTicketVenta(t *testing.T) {
	empresa, factura := ticketFixture()

	texto := infra.BuildTicket(empresa, factura, "CONSUMIDOR FINAL", "9999999999", time.Now())
	lineas := strings.Split(texto, "\n")

	assert.Equal(t, "MINI MARKET EL SOL", lineas[0])
	assert.Contains(t, texto, "** FACTURA DE VENTA **")
	assert.Contains(t, texto, "FACTURA: B012608150000000001")
	assert.Contains(t, texto, "CLIENTE: CONSUMIDOR FINAL")
	assert.Contains(t, texto, "FECHA: 15/08/2026 14:30:00")
	assert.Contains(t, texto, "FORMA DE PAGO: EFECTIVO")
	assert.Contains(t, texto, "(ITBIS incluido)")
	assert.Contains(t, texto, "¡GRACIAS POR SU COMPRA!")
	assert.Contains(t, texto, "Conserve este ticket")

	// Línea de producto con columnas fijas de 40 caracteres
	var lineaItem string
	for _, l := range lineas {
		if strings.HasPrefix(l, "Refresco 2L") {
			lineaItem = l
			break
		}
	}
	require.NotEmpty(t, lineaItem)
	assert.Equal(t, "Refresco 2L              2      10.00    20.00", lineaItem)

	// Totales alineados a la derecha
	assert.Contains(t, texto, "ITBIS: 3.60")
	assert.Contains(t, texto, "TOTAL: 23.60")
}

func TestTicketCompra(t *testing.T) {
	empresa, factura := ticketFixture()
	factura.Tipo = model.FacturaTipoCompra
	factura.NCF = "B022608150000000001"

	texto := infra.BuildTicket(empresa, factura, "Distribuidora Norte", "131111111", time.Now())

	assert.Contains(t, texto, "** COMPRA A PROVEEDOR **")
	assert.Contains(t, texto, "DOCUMENTO: B022608150000000001")
	assert.Contains(t, texto, "PROVEEDOR: Distribuidora Norte")
	assert.Contains(t, texto, "¡COMPRA REGISTRADA EXITOSAMENTE!")
	assert.NotContains(t, texto, "GRACIAS POR SU COMPRA")
}

func TestTicketTruncaNombresLargos(t *testing.T) {
	empresa, factura := ticketFixture()
	factura.Detalles[0].Producto.Nombre = "Nombre de producto exageradamente largo"

	texto := infra.BuildTicket(empresa, factura, "CONSUMIDOR FINAL", "9999999999", time.Now())

	assert.Contains(t, texto, "Nombre de producto exa ")
	assert.NotContains(t, texto, "exageradamente")
}
