package sales

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstore/pos-api/internal/application/dto"
	"github.com/techstore/pos-api/internal/domain"
	"github.com/techstore/pos-api/internal/domain/entity"
	"github.com/techstore/pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un "almacén" compartido y un TxRunner que serializa las
// transacciones con un mutex (equivalente al bloqueo de fila de PostgreSQL) y
// restaura el estado completo si el callback falla (equivalente al rollback).
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu         sync.Mutex
	products   map[int64]*entity.Product
	sales      []*entity.Sale
	items      []*entity.SaleItem
	seqs       map[time.Time]int64
	nextSaleID int64
	nextItemID int64
}

func newFakeStore(products ...*entity.Product) *fakeStore {
	s := &fakeStore{
		products: make(map[int64]*entity.Product),
		seqs:     make(map[time.Time]int64),
	}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

type fakeTxRunner struct {
	store *fakeStore
	// beginHook se ejecuta con el lock tomado, antes del callback. Permite
	// inyectar fallos de infraestructura.
	beginHook func() error
}

func (r *fakeTxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	seqRepo repository.InvoiceSequenceRepository,
) error) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.beginHook != nil {
		if err := r.beginHook(); err != nil {
			return err
		}
	}

	// Snapshot para el rollback
	prodSnap := make(map[int64]*entity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		prodSnap[id] = &cp
	}
	seqSnap := make(map[time.Time]int64, len(s.seqs))
	for d, v := range s.seqs {
		seqSnap[d] = v
	}
	salesLen, itemsLen := len(s.sales), len(s.items)
	saleIDSnap, itemIDSnap := s.nextSaleID, s.nextItemID

	err := fn(&fakeProductRepo{s}, &fakeSaleRepo{s}, &fakeSeqRepo{s})
	if err != nil {
		s.products = prodSnap
		s.seqs = seqSnap
		s.sales = s.sales[:salesLen]
		s.items = s.items[:itemsLen]
		s.nextSaleID, s.nextItemID = saleIDSnap, itemIDSnap
	}
	return err
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { panic("no usado en ventas") }
func (r *fakeProductRepo) Update(p *entity.Product) error { panic("no usado en ventas") }
func (r *fakeProductRepo) Delete(id int64) error          { panic("no usado en ventas") }
func (r *fakeProductRepo) List() ([]*entity.Product, error) {
	panic("no usado en ventas")
}

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) DecrementStock(id, quantity int64) (bool, error) {
	p, ok := r.s.products[id]
	if !ok || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	return true, nil
}

type fakeSaleRepo struct{ s *fakeStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	r.s.nextSaleID++
	sale.ID = r.s.nextSaleID
	cp := *sale
	r.s.sales = append(r.s.sales, &cp)
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	r.s.nextItemID++
	item.ID = r.s.nextItemID
	cp := *item
	r.s.items = append(r.s.items, &cp)
	return nil
}

func (r *fakeSaleRepo) GetByID(id int64) (*entity.Sale, error)    { panic("no usado") }
func (r *fakeSaleRepo) List() ([]*entity.Sale, error)             { panic("no usado") }
func (r *fakeSaleRepo) ListItemsBySaleIDs(ids []int64) ([]*entity.SaleItem, error) {
	panic("no usado")
}

type fakeSeqRepo struct{ s *fakeStore }

func (r *fakeSeqRepo) Next(day time.Time) (int64, error) {
	r.s.seqs[day]++
	return r.s.seqs[day], nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func product(id int64, name, priceStr string, stock int64) *entity.Product {
	return &entity.Product{
		ID:       id,
		Name:     name,
		Category: entity.CategoryPhones,
		Price:    price(priceStr),
		Stock:    stock,
	}
}

var testNow = time.Date(2026, 9, 1, 15, 4, 5, 0, time.UTC)

func newTestUseCase(store *fakeStore) *CreateSaleUseCase {
	uc := NewCreateSaleUseCase(&fakeTxRunner{store: store})
	uc.now = func() time.Time { return testNow }
	return uc
}

func cart(servedBy string, lines ...dto.SaleLineRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{ServedBy: servedBy, Items: lines}
}

func line(productID, qty int64) dto.SaleLineRequest {
	return dto.SaleLineRequest{ProductID: productID, Quantity: qty}
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta exitosa: totales exactos, snapshot de precios, stock y consecutivo
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_VentaMultilinea_TotalesExactos(t *testing.T) {
	store := newFakeStore(
		product(1, "iPhone 15 Pro", "999.99", 25),
		product(2, "Gaming PC RTX 4080", "2499.99", 8),
	)
	uc := newTestUseCase(store)

	resp, err := uc.Create(context.Background(), cart("Ana",
		line(1, 2),
		line(2, 1),
	))
	require.NoError(t, err)

	// Total = 2*999.99 + 1*2499.99 = 4499.97, aritmética decimal exacta
	assert.True(t, resp.TotalAmount.Equal(price("4499.97")),
		"total esperado 4499.97, obtenido %s", resp.TotalAmount)

	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].UnitPrice.Equal(price("999.99")))
	assert.True(t, resp.Items[0].TotalPrice.Equal(price("1999.98")))
	assert.True(t, resp.Items[1].TotalPrice.Equal(price("2499.99")))

	// Stock descontado en el almacén
	assert.Equal(t, int64(23), store.products[1].Stock)
	assert.Equal(t, int64(7), store.products[2].Stock)

	// Primera venta del día
	assert.Equal(t, "INV-20260901-0001", resp.InvoiceNumber)
	assert.Equal(t, "Ana", resp.ServedBy)

	// Cabecera y líneas persistidas
	require.Len(t, store.sales, 1)
	require.Len(t, store.items, 2)
	assert.Equal(t, store.sales[0].ID, store.items[0].SaleID)
}

func TestCreate_ConsecutivoIncrementaPorVenta(t *testing.T) {
	store := newFakeStore(product(1, "Pixel 8", "699.99", 20))
	uc := newTestUseCase(store)

	for i, want := range []string{"INV-20260901-0001", "INV-20260901-0002", "INV-20260901-0003"} {
		resp, err := uc.Create(context.Background(), cart("Ana", line(1, 1)))
		require.NoError(t, err, "venta %d", i+1)
		assert.Equal(t, want, resp.InvoiceNumber)
	}
}

// El precio queda congelado en la línea: subir el precio del catálogo después
// de vender no altera la venta registrada.
func TestCreate_SnapshotDePrecio(t *testing.T) {
	store := newFakeStore(product(1, "MacBook Air M3", "1299.99", 15))
	uc := newTestUseCase(store)

	resp, err := uc.Create(context.Background(), cart("Luis", line(1, 1)))
	require.NoError(t, err)

	store.products[1].Price = price("1499.99")

	assert.True(t, store.items[0].UnitPrice.Equal(price("1299.99")),
		"la línea debe conservar el precio vigente al confirmar")
	assert.True(t, resp.Items[0].UnitPrice.Equal(price("1299.99")))
	assert.Equal(t, "MacBook Air M3", store.items[0].ProductName)
}

// Líneas repetidas del mismo producto: se validan contra el stock acumulado.
func TestCreate_LineasDuplicadasDelMismoProducto(t *testing.T) {
	store := newFakeStore(product(1, "Galaxy S24", "849.99", 5))
	uc := newTestUseCase(store)

	resp, err := uc.Create(context.Background(), cart("Ana",
		line(1, 3),
		line(1, 2),
	))
	require.NoError(t, err)
	assert.Equal(t, int64(0), store.products[1].Stock)
	assert.True(t, resp.TotalAmount.Equal(price("4249.95")))

	// Una sexta unidad ya no alcanza
	_, err = uc.Create(context.Background(), cart("Ana",
		line(1, 1),
	))
	var noStock *domain.InsufficientStockError
	require.ErrorAs(t, err, &noStock)
}

// Si el carrito pide más de lo disponible sumando sus propias líneas, falla
// completo aunque cada línea por separado alcanzara.
func TestCreate_DuplicadasSuperanStock_AbortaTodo(t *testing.T) {
	store := newFakeStore(product(1, "Galaxy S24", "849.99", 5))
	uc := newTestUseCase(store)

	_, err := uc.Create(context.Background(), cart("Ana",
		line(1, 3),
		line(1, 3),
	))
	var noStock *domain.InsufficientStockError
	require.ErrorAs(t, err, &noStock)
	assert.Equal(t, int64(2), noStock.Available, "disponible tras la primera línea")
	assert.Equal(t, int64(3), noStock.Requested)

	assert.Equal(t, int64(5), store.products[1].Stock, "el stock no debe cambiar")
	assert.Empty(t, store.sales)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: la primera línea que falla aborta sin efectos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_StockInsuficienteEnSegundaLinea_SinEfectos(t *testing.T) {
	store := newFakeStore(
		product(1, "iPhone 15 Pro", "999.99", 25),
		product(2, "Dell XPS 15", "1599.99", 2),
	)
	uc := newTestUseCase(store)

	_, err := uc.Create(context.Background(), cart("Ana",
		line(1, 1),
		line(2, 5),
	))

	var noStock *domain.InsufficientStockError
	require.ErrorAs(t, err, &noStock)
	assert.Equal(t, int64(2), noStock.ProductID)
	assert.Equal(t, int64(2), noStock.Available)
	assert.Equal(t, int64(5), noStock.Requested)
	assert.Equal(t, "Dell XPS 15", noStock.ProductName)

	// Ningún efecto: ni stock de la línea 1, ni venta, ni consecutivo
	assert.Equal(t, int64(25), store.products[1].Stock)
	assert.Equal(t, int64(2), store.products[2].Stock)
	assert.Empty(t, store.sales)
	assert.Empty(t, store.items)
	assert.Empty(t, store.seqs, "el consecutivo no debe consumirse")
}

func TestCreate_ProductoInexistente_SinEfectos(t *testing.T) {
	store := newFakeStore(product(1, "iPhone 15 Pro", "999.99", 25))
	uc := newTestUseCase(store)

	_, err := uc.Create(context.Background(), cart("Ana",
		line(1, 1),
		line(999, 1),
	))

	var notFound *domain.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(999), notFound.ProductID)

	assert.Equal(t, int64(25), store.products[1].Stock)
	assert.Empty(t, store.sales)
}

// El consecutivo descartado por un rollback se reutiliza en la siguiente
// venta confirmada: no quedan huecos por ventas fallidas.
func TestCreate_RollbackNoDejaHuecosEnElConsecutivo(t *testing.T) {
	store := newFakeStore(product(1, "Pixel 8", "699.99", 3))
	uc := newTestUseCase(store)

	_, err := uc.Create(context.Background(), cart("Ana", line(1, 10)))
	require.Error(t, err)

	resp, err := uc.Create(context.Background(), cart("Ana", line(1, 1)))
	require.NoError(t, err)
	assert.Equal(t, "INV-20260901-0001", resp.InvoiceNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CarritoVacio(t *testing.T) {
	store := newFakeStore(product(1, "iPhone 15 Pro", "999.99", 25))
	uc := newTestUseCase(store)

	_, err := uc.Create(context.Background(), cart("Ana"))
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, store.sales)
}

func TestCreate_ServedByVacio(t *testing.T) {
	store := newFakeStore(product(1, "iPhone 15 Pro", "999.99", 25))
	uc := newTestUseCase(store)

	_, err := uc.Create(context.Background(), cart("   ", line(1, 1)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_CantidadInvalida(t *testing.T) {
	store := newFakeStore(product(1, "iPhone 15 Pro", "999.99", 25))
	uc := newTestUseCase(store)

	for _, qty := range []int64{0, -1} {
		_, err := uc.Create(context.Background(), cart("Ana", line(1, qty)))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d", qty)
	}
	assert.Equal(t, int64(25), store.products[1].Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: dos cajas compiten por la última unidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_UltimaUnidadConcurrente_SoloUnaGana(t *testing.T) {
	store := newFakeStore(product(1, "Gaming PC RTX 4080", "2499.99", 1))
	uc := newTestUseCase(store)

	const cashiers = 2
	errs := make([]error, cashiers)
	var wg sync.WaitGroup
	wg.Add(cashiers)
	for i := 0; i < cashiers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Create(context.Background(), cart("Caja",
				line(1, 1),
			))
		}(i)
	}
	wg.Wait()

	var okCount, stockErrCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		default:
			var noStock *domain.InsufficientStockError
			require.ErrorAs(t, err, &noStock)
			assert.Equal(t, int64(0), noStock.Available)
			stockErrCount++
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una caja debe ganar la unidad")
	assert.Equal(t, 1, stockErrCount, "la otra debe recibir stock insuficiente")
	assert.Equal(t, int64(0), store.products[1].Stock)
	require.Len(t, store.sales, 1)
}

// Muchas ventas concurrentes: el stock nunca queda negativo y los números de
// factura no se repiten.
func TestCreate_VentasConcurrentes_SinSobreventa(t *testing.T) {
	store := newFakeStore(product(1, "Galaxy S24", "849.99", 10))
	uc := newTestUseCase(store)

	const attempts = 25
	invoices := make([]string, attempts)
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			resp, err := uc.Create(context.Background(), cart("Caja",
				line(1, 1),
			))
			errs[i] = err
			if err == nil {
				invoices[i] = resp.InvoiceNumber
			}
		}(i)
	}
	wg.Wait()

	var sold int
	seen := make(map[string]bool)
	for i, err := range errs {
		if err == nil {
			sold++
			assert.False(t, seen[invoices[i]], "número de factura repetido: %s", invoices[i])
			seen[invoices[i]] = true
		}
	}
	assert.Equal(t, 10, sold, "se venden exactamente las unidades disponibles")
	assert.Equal(t, int64(0), store.products[1].Stock)
	assert.GreaterOrEqual(t, store.products[1].Stock, int64(0), "el stock nunca es negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallo de infraestructura: error distinto a los de negocio
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_FalloDeInfraestructura_NoEsErrorDeNegocio(t *testing.T) {
	store := newFakeStore(product(1, "iPhone 15 Pro", "999.99", 25))
	runner := &fakeTxRunner{
		store:     store,
		beginHook: func() error { return assert.AnError },
	}
	uc := NewCreateSaleUseCase(runner)
	uc.now = func() time.Time { return testNow }

	_, err := uc.Create(context.Background(), cart("Ana", line(1, 1)))
	require.Error(t, err)

	var noStock *domain.InsufficientStockError
	var notFound *domain.ProductNotFoundError
	assert.False(t, errors.As(err, &noStock))
	assert.False(t, errors.As(err, &notFound))
	assert.NotErrorIs(t, err, domain.ErrEmptyCart)
	assert.Equal(t, int64(25), store.products[1].Stock)
}
