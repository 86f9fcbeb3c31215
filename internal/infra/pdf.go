package infra

// pdf.go generates printable invoice documents with go-pdf/fpdf. The PDF is
// returned in memory so the handler can stream it without touching disk.

import (
	"bytes"
	"fmt"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerarFacturaPDF renders an A4 invoice document for a persisted Factura.
// contraparte and documento identify the customer or supplier as stored at
// invoice time.
func GenerarFacturaPDF(empresa *model.Empresa, f *model.Factura, contraparte, documento string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, empresa.Nombre, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("RNC: %s  Tel: %s", empresa.RNC, empresa.Telefono), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, empresa.Direccion, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	titulo := "FACTURA DE VENTA"
	etiqueta := "Cliente"
	if f.Tipo == "compra" {
		titulo = "FACTURA DE COMPRA"
		etiqueta = "Proveedor"
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, titulo, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Invoice info ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("NCF: %s", f.NCF), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, f.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%s: %s (%s)", etiqueta, contraparte, documento), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // product
	col2 := contentW * 0.12 // qty
	col3 := contentW * 0.21 // price
	col4 := contentW * 0.21 // line total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Precio", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Importe", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, d := range f.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		if len(nombre) > 40 {
			nombre = nombre[:39] + "…"
		}
		importe := d.Precio.Mul(decimal.NewFromInt(int64(d.Cantidad)))
		pdf.CellFormat(col1, 6, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", d.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+d.Precio.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+importe.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(col1+col2+col3, 5, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "$"+f.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2+col3, 5, "ITBIS:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "$"+f.ItbisTotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !f.Descuento.IsZero() {
		pdf.CellFormat(col1+col2+col3, 5, "Descuento:", "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, "-$"+f.Descuento.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 7, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "$"+f.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Forma de pago: %s", f.MetodoPago), "", 1, "L", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 4, empresa.MensajeLegal, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}
