package infra

import (
	"fmt"
	"strings"
	"time"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"

	"github.com/shopspring/decimal"
)

const anchoTicket = 40

// BuildTicket renders the plain-text receipt sent to the printing agent.
// The layout targets a 40 column thermal printer.
func BuildTicket(empresa *model.Empresa, f *model.Factura, contraparte, documento string, ahora time.Time) string {
	esCompra := f.Tipo == "compra"

	lines := []string{
		empresa.Nombre,
		fmt.Sprintf("RNC: %s", empresa.RNC),
		fmt.Sprintf("Tel: %s", empresa.Telefono),
		empresa.Direccion,
		separador(),
	}

	if esCompra {
		lines = append(lines,
			centrar("** COMPRA A PROVEEDOR **"),
			fmt.Sprintf("DOCUMENTO: %s", f.NCF),
			fmt.Sprintf("FECHA: %s", f.CreatedAt.Format("02/01/2006 15:04:05")),
			fmt.Sprintf("PROVEEDOR: %s", contraparte),
			fmt.Sprintf("RNC: %s", documento),
		)
	} else {
		lines = append(lines,
			centrar("** FACTURA DE VENTA **"),
			fmt.Sprintf("FACTURA: %s", f.NCF),
			fmt.Sprintf("FECHA: %s", f.CreatedAt.Format("02/01/2006 15:04:05")),
			fmt.Sprintf("CLIENTE: %s", contraparte),
			fmt.Sprintf("DOC: %s", documento),
		)
	}

	lines = append(lines,
		separador(),
		"PRODUCTO                CANT   PRECIO   TOTAL",
		separador(),
	)

	for _, d := range f.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		if len(nombre) > 22 {
			nombre = nombre[:22]
		}
		totalItem := d.Precio.Mul(decimal.NewFromInt(int64(d.Cantidad)))
		lines = append(lines, fmt.Sprintf("%-22s %3d   %8s %8s",
			nombre, d.Cantidad, d.Precio.StringFixed(2), totalItem.StringFixed(2)))
		if d.Itbis {
			lines = append(lines, "  (ITBIS incluido)")
		}
	}

	subtotal := f.Total.Sub(f.ItbisTotal)
	lines = append(lines,
		separador(),
		derecha(fmt.Sprintf("SUBTOTAL: %s", subtotal.StringFixed(2)), 45),
		derecha(fmt.Sprintf("ITBIS: %s", f.ItbisTotal.StringFixed(2)), anchoTicket),
		derecha(fmt.Sprintf("TOTAL: %s", f.Total.StringFixed(2)), anchoTicket),
		separador(),
		fmt.Sprintf("FORMA DE PAGO: %s", strings.ToUpper(f.MetodoPago)),
		separador(),
	)

	if esCompra {
		lines = append(lines, "¡COMPRA REGISTRADA EXITOSAMENTE!", "Stock actualizado")
	} else {
		lines = append(lines, "¡GRACIAS POR SU COMPRA!", empresa.MensajeLegal)
	}
	lines = append(lines, ahora.Format("Impreso: 02/01/2006 15:04:05"))

	return strings.Join(lines, "\n")
}

func separador() string { return strings.Repeat("-", anchoTicket) }

func centrar(s string) string {
	if len(s) >= anchoTicket {
		return s
	}
	pad := (anchoTicket - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func derecha(s string, ancho int) string {
	if len(s) >= ancho {
		return s
	}
	return strings.Repeat(" ", ancho-len(s)) + s
}
