package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/apierror"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/repository"

	"gorm.io/gorm"
)

// NCF document type prefixes per DGII numbering. The prefix depends on the
// counterparty, not on the invoice kind: a party identified with an RNC or
// cédula gets crédito fiscal, the walk-in consumidor final gets consumo.
const (
	NCFTipoCreditoFiscal = "B01"
	NCFTipoConsumo       = "B02"
)

// maxSecuenciaNCF bounds the zero-padded tail at ten digits.
const maxSecuenciaNCF = 9_999_999_999

// NCFGenerator produces document numbers of the form {tipo}{YYMMDD}{secuencia},
// with the sequence zero-padded to ten digits and scoped per tipo and day.
// A process-level mutex serializes reservations; the database sequence row
// keeps numbers unique across processes.
type NCFGenerator struct {
	mu   sync.Mutex
	repo repository.FacturaRepository
}

func NewNCFGenerator(repo repository.FacturaRepository) *NCFGenerator {
	return &NCFGenerator{repo: repo}
}

// Reservar allocates the next NCF inside the caller's transaction. Rolling
// back the transaction releases the reservation, so an aborted invoice can
// leave a gap but never a duplicate.
func (g *NCFGenerator) Reservar(ctx context.Context, tx *gorm.DB, tipo string, ahora time.Time) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	fecha := ahora.Format("060102")
	seq, err := g.repo.NextNCF(ctx, tx, tipo, fecha)
	if err != nil {
		return "", fmt.Errorf("reservar ncf: %w", err)
	}
	if seq > maxSecuenciaNCF {
		return "", apierror.Ef(apierror.KindInternal, "secuencia NCF agotada para %s %s", tipo, fecha)
	}
	return fmt.Sprintf("%s%s%010d", tipo, fecha, seq), nil
}
