package document_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/almacen-api/internal/application/document"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newShipmentFixture() (*memStore, *document.ShipmentUseCase) {
	s := newMemStore()
	seedResource(s, resHarina, "Harina de trigo")
	seedResource(s, resAzucar, "Azúcar refinada")
	seedUnit(s, unitKilo, "kg")
	seedUnit(s, unitLitro, "lt")
	seedClient(s, cliPanader, "Panadería La Espiga")
	uc := document.NewShipmentUseCase(&memTxRunner{s}, &memShipmentRepo{s})
	return s, uc
}

func setBalance(s *memStore, resourceID, unitID string, qty int64) {
	s.balances[balanceKey{resourceID, unitID}] = decimal.NewFromInt(qty)
}

func createShipment(t *testing.T, uc *document.ShipmentUseCase, number string, lines ...dto.DocumentLineRequest) *dto.ShipmentDocumentResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), dto.CreateShipmentDocumentRequest{
		Number:   number,
		ClientID: cliPanader,
		Date:     yesterday(),
		Lines:    lines,
	})
	require.NoError(t, err, "crear un despacho válido no debe fallar")
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestShipmentCreate_NoTocaBalance(t *testing.T) {
	s, uc := newShipmentFixture()
	setBalance(s, resHarina, unitKilo, 100)

	out := createShipment(t, uc, "DES-001", line(resHarina, unitKilo, 30))

	assert.Equal(t, "CREATED", out.State, "el despacho nace en estado CREATED")
	assert.True(t, balanceOf(s, resHarina, unitKilo).Equal(decimal.NewFromInt(100)),
		"crear el despacho no debe descontar stock")
}

func TestShipmentCreate_SinLineas_RetornaErrEmptyDocument(t *testing.T) {
	_, uc := newShipmentFixture()

	_, err := uc.Create(context.Background(), dto.CreateShipmentDocumentRequest{
		Number: "DES-001", ClientID: cliPanader, Date: yesterday(),
	})
	assert.ErrorIs(t, err, domain.ErrEmptyDocument,
		"un despacho debe llevar al menos una línea")
}

func TestShipmentCreate_ClienteArchivado_RetornaErrArchivedEntity(t *testing.T) {
	s, uc := newShipmentFixture()
	seedArchivedClient(s, "cli-viejo", "Cliente Archivado")

	_, err := uc.Create(context.Background(), dto.CreateShipmentDocumentRequest{
		Number: "DES-001", ClientID: "cli-viejo", Date: yesterday(),
		Lines: []dto.DocumentLineRequest{line(resHarina, unitKilo, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrArchivedEntity)
}

func TestShipmentCreate_RecursoArchivado_RetornaErrArchivedEntity(t *testing.T) {
	s, uc := newShipmentFixture()
	seedArchivedResource(s, "res-viejo", "Recurso Archivado")

	_, err := uc.Create(context.Background(), dto.CreateShipmentDocumentRequest{
		Number: "DES-001", ClientID: cliPanader, Date: yesterday(),
		Lines: []dto.DocumentLineRequest{line("res-viejo", unitKilo, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrArchivedEntity)
}

func TestShipmentCreate_RecursoInexistente_RetornaErrNotFound(t *testing.T) {
	_, uc := newShipmentFixture()

	_, err := uc.Create(context.Background(), dto.CreateShipmentDocumentRequest{
		Number: "DES-001", ClientID: cliPanader, Date: yesterday(),
		Lines: []dto.DocumentLineRequest{line("no-existe", unitKilo, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShipmentCreate_NumeroDuplicado_RetornaErrDuplicate(t *testing.T) {
	s, uc := newShipmentFixture()
	setBalance(s, resHarina, unitKilo, 100)
	createShipment(t, uc, "DES-001", line(resHarina, unitKilo, 10))

	_, err := uc.Create(context.Background(), dto.CreateShipmentDocumentRequest{
		Number: "DES-001", ClientID: cliPanader, Date: yesterday(),
		Lines: []dto.DocumentLineRequest{line(resHarina, unitKilo, 5)},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Sign
// ──────────────────────────────────────────────────────────────────────────────

func TestShipmentSign_DescuentaBalanceYCambiaEstado(t *testing.T) {
	s, uc := newShipmentFixture()
	setBalance(s, resHarina, unitKilo, 100)
	created := createShipment(t, uc, "DES-001", line(resHarina, unitKilo, 30))

	signed, err := uc.Sign(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, "SIGNED", signed.State)
	assert.True(t, balanceOf(s, resHarina, unitKilo).Equal(decimal.NewFromInt(70)),
		"firmar debe descontar las 30 unidades del balance")
}

func TestShipmentSign_StockInsuficiente_NoMutaNada(t *testing.T) {
	s, uc := newShipmentFixture()
	setBalance(s, resHarina, unitKilo, 100)
	setBalance(s, resAzucar, unitKilo, 5)
	created := createShipment(t, uc, "DES-001",
		line(resHarina, unitKilo, 30),
		line(resAzucar, unitKilo, 10), // no alcanza
	)

	_, err := uc.Sign(context.Background(), created.ID)
	require.Error(t, err)
	assert.True(t, domain.IsInsufficientStock(err))

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Azúcar refinada", stockErr.ResourceName)
	assert.True(t, stockErr.Available.Equal(decimal.NewFromInt(5)))
	assert.True(t, stockErr.Required.Equal(decimal.NewFromInt(10)))

	// Atómico: la harina (que sí alcanzaba) no debe haberse descontado.
	assert.True(t, balanceOf(s, resHarina, unitKilo).Equal(decimal.NewFromInt(100)),
		"la firma fallida no debe descontar ninguna línea")
	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "CREATED", got.State, "el documento debe seguir en CREATED")
}

func TestShipmentSign_YaFirmado_RetornaErrAlreadySigned(t *testing.T) {
	s, uc := newShipmentFixture()
	setBalance(s, resHarina, unitKilo, 100)
	created := createShipment(t, uc, "DES-001", line(resHarina, unitKilo, 30))
	ctx := context.Background()

	_, err := uc.Sign(ctx, created.ID)
	require.NoError(t, err)

	_, err = uc.Sign(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadySigned, "firmar dos veces debe fallar")
	assert.True(t, balanceOf(s, resHarina, unitKilo).Equal(decimal.NewFromInt(70)),
		"la segunda firma no debe descontar de nuevo")
}

func TestShipmentSign_NoExiste_RetornaErrNotFound(t *testing.T) {
	_, uc := newShipmentFixture()
	_, err := uc.Sign(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update
// ──────────────────────────────────────────────────────────────────────────────

func TestShipmentUpdate_EnCreated_ReemplazaLineas(t *testing.T) {
	s, uc := newShipmentFixture()
	setBalance(s, resHarina, unitKilo, 100)
	created := createShipment(t, uc, "DES-001", line(resHarina, unitKilo, 30))

	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateShipmentDocumentRequest{
		Number: "DES-001", ClientID: cliPanader, Date: yesterday(),
		Lines: []dto.DocumentLineRequest{line(resHarina, unitKilo, 50)},
	})
	require.NoError(t, err)
	require.Len(t, updated.Lines, 1)
	assert.True(t, updated.Lines[0].Quantity.Equal(decimal.NewFromInt(50)))
	assert.True(t, balanceOf(s, resHarina, unitKilo).Equal(decimal.NewFromInt(100)),
		"editar un borrador no debe tocar el balance")
}

func TestShipmentUpdate_Firmado_RetornaErrDocumentSigned(t *testing.T) {
	s, uc := newShipmentFixture()
	setBalance(s, resHarina, unitKilo, 100)
	created := createShipment(t, uc, "DES-001", line(resHarina, unitKilo, 30))
	ctx := context.Background()

	_, err := uc.Sign(ctx, created.ID)
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, dto.UpdateShipmentDocumentRequest{
		Number: "DES-001", ClientID: cliPanader, Date: yesterday(),
		Lines: []dto.DocumentLineRequest{line(resHarina, unitKilo, 5)},
	})
	assert.ErrorIs(t, err, domain.ErrDocumentSigned,
		"un documento firmado no admite edición")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Revoke
// ──────────────────────────────────────────────────────────────────────────────

func TestShipmentRevoke_DevuelveStockYCancela(t *testing.T) {
	s, uc := newShipmentFixture()
	setBalance(s, resHarina, unitKilo, 100)
	created := createShipment(t, uc, "DES-001", line(resHarina, unitKilo, 30))
	ctx := context.Background()

	_, err := uc.Sign(ctx, created.ID)
	require.NoError(t, err)

	revoked, err := uc.Revoke(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "CANCELED", revoked.State)
	assert.True(t, balanceOf(s, resHarina, unitKilo).Equal(decimal.NewFromInt(100)),
		"revocar debe devolver las 30 unidades al balance")
}

func TestShipmentRevoke_SinFirmar_RetornaErrInvalidState(t *testing.T) {
	s, uc := newShipmentFixture()
	setBalance(s, resHarina, unitKilo, 100)
	created := createShipment(t, uc, "DES-001", line(resHarina, unitKilo, 30))

	_, err := uc.Revoke(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState,
		"solo un documento firmado puede revocarse")
}

func TestShipmentSign_Cancelado_RetornaErrInvalidState(t *testing.T) {
	s, uc := newShipmentFixture()
	setBalance(s, resHarina, unitKilo, 100)
	created := createShipment(t, uc, "DES-001", line(resHarina, unitKilo, 30))
	ctx := context.Background()

	_, err := uc.Sign(ctx, created.ID)
	require.NoError(t, err)
	_, err = uc.Revoke(ctx, created.ID)
	require.NoError(t, err)

	_, err = uc.Sign(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState,
		"CANCELED es terminal: el documento no vuelve a firmarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo completo ingreso → despacho
// ──────────────────────────────────────────────────────────────────────────────

// El recorrido de punta a punta del libro de balances: entra mercancía por un
// ingreso, sale por la firma de un despacho, regresa con la revocación y el
// documento cancelado queda inerte.
func TestCicloCompleto_IngresoDespachoFirmaRevocacion(t *testing.T) {
	s := newMemStore()
	seedResource(s, resHarina, "Harina de trigo")
	seedUnit(s, unitKilo, "kg")
	seedClient(s, cliPanader, "Panadería La Espiga")
	incomeUC := document.NewIncomeUseCase(&memTxRunner{s}, &memIncomeRepo{s})
	shipmentUC := document.NewShipmentUseCase(&memTxRunner{s}, &memShipmentRepo{s})
	ctx := context.Background()

	// Ingreso de 100 kg de harina.
	_, err := incomeUC.Create(ctx, dto.CreateIncomeDocumentRequest{
		Number: "ING-001", Date: yesterday(),
		Lines: []dto.DocumentLineRequest{line(resHarina, unitKilo, 100)},
	})
	require.NoError(t, err)
	require.True(t, balanceOf(s, resHarina, unitKilo).Equal(decimal.NewFromInt(100)))

	// Despacho de 30 kg: crear no descuenta.
	shipment, err := shipmentUC.Create(ctx, dto.CreateShipmentDocumentRequest{
		Number: "DES-001", ClientID: cliPanader, Date: yesterday(),
		Lines: []dto.DocumentLineRequest{line(resHarina, unitKilo, 30)},
	})
	require.NoError(t, err)
	require.True(t, balanceOf(s, resHarina, unitKilo).Equal(decimal.NewFromInt(100)),
		"el balance no cambia hasta la firma")

	// Firma: quedan 70.
	_, err = shipmentUC.Sign(ctx, shipment.ID)
	require.NoError(t, err)
	require.True(t, balanceOf(s, resHarina, unitKilo).Equal(decimal.NewFromInt(70)))

	// Revocación: vuelven los 100.
	_, err = shipmentUC.Revoke(ctx, shipment.ID)
	require.NoError(t, err)
	require.True(t, balanceOf(s, resHarina, unitKilo).Equal(decimal.NewFromInt(100)))

	// El documento cancelado es terminal.
	_, err = shipmentUC.Sign(ctx, shipment.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.True(t, balanceOf(s, resHarina, unitKilo).Equal(decimal.NewFromInt(100)),
		"el intento de firma sobre un cancelado no toca el balance")
}
