package worker

// email_worker.go
// Sends the shift closing report to the configured administrator address.
// Enqueued fire-and-forget by the close flow; a dead SMTP server never
// blocks or fails a shift close.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/infra"

	"github.com/rs/zerolog/log"
)

// ReporteCierreWorker emails shift closing summaries.
type ReporteCierreWorker struct {
	mailer *infra.Mailer
	to     string
}

func NewReporteCierreWorker(mailer *infra.Mailer, to string) *ReporteCierreWorker {
	return &ReporteCierreWorker{mailer: mailer, to: to}
}

func (w *ReporteCierreWorker) Process(_ context.Context, raw json.RawMessage) error {
	var p ReporteCierrePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Error().Err(err).Msg("reporte_cierre: invalid payload")
		return nil // malformed payloads are not retryable
	}
	if w.to == "" {
		log.Warn().Msg("reporte_cierre: no destination address configured, skipping")
		return nil
	}

	subject := fmt.Sprintf("Cierre de caja %s", p.FechaCierre)
	body := fmt.Sprintf(
		"Cierre de turno %s\n\nCajero: %s\nMonto inicial: %s\nEfectivo declarado: %s\nTarjeta declarada: %s\nTotal declarado: %s\n\nFacturas emitidas: %d\nTotal facturado: %s\nFecha de cierre: %s\n",
		p.TurnoID, p.Cajero, p.MontoInicial, p.MontoEfectivo, p.MontoTarjeta, p.MontoTotal,
		p.Facturas, p.TotalFacturado, p.FechaCierre,
	)

	if err := w.mailer.Send(w.to, subject, body, nil, ""); err != nil {
		log.Error().Err(err).Str("to", w.to).Msg("reporte_cierre: failed to send email")
		return err
	}
	log.Info().Str("to", w.to).Str("turno", p.TurnoID).Msg("reporte_cierre: sent")
	return nil
}
