package tests

import (
	"context"
	"testing"
	"time"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/apierror"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/dto"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"
	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCuentasFixture(t *testing.T) (*fakeCuentasRepo, *fakeFacturaRepo, service.CuentasService) {
	t.Helper()
	cuentas := newFakeCuentasRepo()
	facturas := newFakeFacturaRepo()
	return cuentas, facturas, service.NewCuentasService(cuentas, facturas)
}

func seedCobrar(t *testing.T, cuentas *fakeCuentasRepo, facturas *fakeFacturaRepo, total int64, vencimiento time.Time) *model.CuentaPorCobrar {
	t.Helper()
	f := &model.Factura{
		ClienteID:  uuid.New(),
		Tipo:       model.FacturaTipoVenta,
		Estado:     model.FacturaPendiente,
		NCF:        "B012608150000000077",
		Total:      decimal.NewFromInt(total),
		MetodoPago: "credito",
		TurnoID:    uuid.New(),
	}
	require.NoError(t, facturas.Create(context.Background(), nil, f))
	c := &model.CuentaPorCobrar{
		FacturaID:        f.ID,
		ClienteID:        f.ClienteID,
		MontoTotal:       decimal.NewFromInt(total),
		MontoPagado:      decimal.Zero,
		FechaEmision:     time.Now(),
		FechaVencimiento: vencimiento,
		Estado:           model.CuentaPendiente,
	}
	require.NoError(t, cuentas.CreateCobrarTx(context.Background(), nil, c))
	return c
}

func TestPagoParcial(t *testing.T) {
	cuentas, facturas, svc := newCuentasFixture(t)
	c := seedCobrar(t, cuentas, facturas, 1000, time.Now().Add(30*24*time.Hour))

	resp, err := svc.RegistrarPagoCobrar(context.Background(), c.ID, dto.RegistrarPagoRequest{
		Monto: decimal.NewFromInt(400),
	})

	require.NoError(t, err)
	assert.Equal(t, model.CuentaParcial, resp.Estado)
	assert.True(t, decimal.NewFromInt(400).Equal(resp.MontoPagado))
	assert.True(t, decimal.NewFromInt(600).Equal(resp.MontoPendiente))

	// La factura sigue pendiente hasta saldar
	f := facturas.facturas[c.FacturaID]
	assert.Equal(t, model.FacturaPendiente, f.Estado)
}

func TestPagoCompletoSaldaFactura(t *testing.T) {
	cuentas, facturas, svc := newCuentasFixture(t)
	c := seedCobrar(t, cuentas, facturas, 1000, time.Now().Add(30*24*time.Hour))

	_, err := svc.RegistrarPagoCobrar(context.Background(), c.ID, dto.RegistrarPagoRequest{Monto: decimal.NewFromInt(600)})
	require.NoError(t, err)
	resp, err := svc.RegistrarPagoCobrar(context.Background(), c.ID, dto.RegistrarPagoRequest{Monto: decimal.NewFromInt(400)})
	require.NoError(t, err)

	assert.Equal(t, model.CuentaPagada, resp.Estado)
	assert.True(t, resp.MontoPendiente.IsZero())

	f := facturas.facturas[c.FacturaID]
	assert.Equal(t, model.FacturaPagada, f.Estado)
}

func TestPagoExcedePendiente(t *testing.T) {
	cuentas, facturas, svc := newCuentasFixture(t)
	c := seedCobrar(t, cuentas, facturas, 500, time.Now().Add(30*24*time.Hour))

	_, err := svc.RegistrarPagoCobrar(context.Background(), c.ID, dto.RegistrarPagoRequest{
		Monto: decimal.NewFromInt(501),
	})

	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
	assert.True(t, cuentas.cobrar[c.ID].MontoPagado.IsZero())
}

func TestPagoMontoNoPositivo(t *testing.T) {
	cuentas, facturas, svc := newCuentasFixture(t)
	c := seedCobrar(t, cuentas, facturas, 500, time.Now().Add(30*24*time.Hour))

	_, err := svc.RegistrarPagoCobrar(context.Background(), c.ID, dto.RegistrarPagoRequest{Monto: decimal.Zero})

	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestCuentaInexistente(t *testing.T) {
	_, _, svc := newCuentasFixture(t)

	_, err := svc.RegistrarPagoCobrar(context.Background(), uuid.New(), dto.RegistrarPagoRequest{
		Monto: decimal.NewFromInt(100),
	})

	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestEstadoVencidaDerivado(t *testing.T) {
	cuentas, facturas, svc := newCuentasFixture(t)
	seedCobrar(t, cuentas, facturas, 800, time.Now().Add(-48*time.Hour))

	lista, err := svc.ListarPorCobrar(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, lista, 1)
	// El estado almacenado sigue "pendiente": vencida se deriva al leer
	assert.Equal(t, "vencida", lista[0].Estado)
}

func TestPagoCuentaPorPagar(t *testing.T) {
	cuentas, facturas, svc := newCuentasFixture(t)
	f := &model.Factura{
		ClienteID:  uuid.New(),
		Tipo:       model.FacturaTipoCompra,
		Estado:     model.FacturaPendiente,
		NCF:        "B022608150000000044",
		Total:      decimal.NewFromInt(2500),
		MetodoPago: "credito",
		TurnoID:    uuid.New(),
	}
	require.NoError(t, facturas.Create(context.Background(), nil, f))
	c := &model.CuentaPorPagar{
		FacturaID:        f.ID,
		ProveedorID:      f.ClienteID,
		MontoTotal:       decimal.NewFromInt(2500),
		MontoPagado:      decimal.Zero,
		FechaEmision:     time.Now(),
		FechaVencimiento: time.Now().Add(15 * 24 * time.Hour),
		Estado:           model.CuentaPendiente,
	}
	require.NoError(t, cuentas.CreatePagarTx(context.Background(), nil, c))

	resp, err := svc.RegistrarPagoPagar(context.Background(), c.ID, dto.RegistrarPagoRequest{
		Monto: decimal.NewFromInt(2500),
	})

	require.NoError(t, err)
	assert.Equal(t, model.CuentaPagada, resp.Estado)
	assert.Equal(t, model.FacturaPagada, facturas.facturas[f.ID].Estado)
}
