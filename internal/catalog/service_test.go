package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

type memoryRepo struct {
	products map[int64]Product
	nextID   int64
	clock    time.Time
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{products: make(map[int64]Product), clock: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
}

func (m *memoryRepo) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	var out []Product
	for _, p := range m.products {
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.SortBy == SortName {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memoryRepo) Get(ctx context.Context, id int64) (Product, error) {
	p, ok := m.products[id]
	if !ok {
		return Product{}, fmt.Errorf("produk #%d: %w", id, shared.ErrNotFound)
	}
	return p, nil
}

func (m *memoryRepo) Create(ctx context.Context, in ProductInput) (Product, error) {
	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	p := Product{ID: m.nextID, Name: in.Name, Price: in.Price, Stock: in.Stock, CreatedAt: m.clock}
	m.products[p.ID] = p
	return p, nil
}

func (m *memoryRepo) Update(ctx context.Context, id int64, in ProductInput) (Product, error) {
	p, ok := m.products[id]
	if !ok {
		return Product{}, fmt.Errorf("produk #%d: %w", id, shared.ErrNotFound)
	}
	p.Name, p.Price, p.Stock = in.Name, in.Price, in.Stock
	m.products[id] = p
	return p, nil
}

func (m *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return fmt.Errorf("produk #%d: %w", id, shared.ErrNotFound)
	}
	delete(m.products, id)
	return nil
}

func TestCreateTrimsNameAndStoresValues(t *testing.T) {
	svc := NewService(newMemoryRepo())

	p, err := svc.Create(context.Background(), ProductInput{Name: "  Kopi  ", Price: decimal.NewFromInt(2000), Stock: 5})
	require.NoError(t, err)
	assert.Equal(t, "Kopi", p.Name)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, 5, p.Stock)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := NewService(newMemoryRepo())
	cases := map[string]ProductInput{
		"blank name":            {Name: "   ", Price: decimal.NewFromInt(1), Stock: 1},
		"negative price":        {Name: "Teh", Price: decimal.NewFromInt(-1), Stock: 1},
		"negative stock":        {Name: "Teh", Price: decimal.NewFromInt(1), Stock: -3},
		"price too large":       {Name: "Teh", Price: decimal.New(1, 20), Stock: 1},
		"price at column limit": {Name: "Teh", Price: decimal.New(1, 12), Stock: 1},
		"three decimals":        {Name: "Teh", Price: decimal.RequireFromString("1.999"), Stock: 1},
		"stock overflow":        {Name: "Teh", Price: decimal.NewFromInt(1), Stock: 3000000000},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), in)
			require.ErrorIs(t, err, shared.ErrValidation)
		})
	}
}

func TestFormParse(t *testing.T) {
	in, err := ProductForm{Name: " Gula ", Price: "14000.50", Stock: "20"}.Parse()
	require.NoError(t, err)
	assert.Equal(t, "Gula", in.Name)
	assert.Equal(t, "14000.5", in.Price.String())
	assert.Equal(t, 20, in.Stock)

	for _, form := range []ProductForm{
		{Name: "", Price: "1", Stock: "1"},
		{Name: "Gula", Price: "", Stock: "1"},
		{Name: "Gula", Price: "abc", Stock: "1"},
		{Name: "Gula", Price: "1", Stock: "1.5"},
		{Name: "Gula", Price: "-5", Stock: "1"},
		{Name: "Gula", Price: "5", Stock: "-1"},
		{Name: "Gula", Price: "1e20", Stock: "1"},
		{Name: "Gula", Price: "1.999", Stock: "1"},
		{Name: "Gula", Price: "5", Stock: "3000000000"},
	} {
		_, err := form.Parse()
		assert.ErrorIs(t, err, shared.ErrValidation, "form %+v", form)
	}
}

func TestValidateAcceptsColumnBounds(t *testing.T) {
	for _, in := range []ProductInput{
		{Name: "Emas", Price: decimal.RequireFromString("999999999999.99"), Stock: 2147483647},
		{Name: "Permen", Price: decimal.RequireFromString("0.50"), Stock: 0},
		{Name: "Permen", Price: decimal.RequireFromString("1.500"), Stock: 1},
	} {
		assert.NoError(t, in.Validate(), "input %+v", in)
	}

	_, err := ProductForm{Name: "Gula", Price: "1.999", Stock: "1"}.Parse()
	assert.Equal(t, "harga maksimal dua angka desimal", shared.UserMessage(err))
	_, err = ProductForm{Name: "Gula", Price: "1e20", Stock: "1"}.Parse()
	assert.Equal(t, "harga terlalu besar", shared.UserMessage(err))
	_, err = ProductForm{Name: "Gula", Price: "5", Stock: "3000000000"}.Parse()
	assert.Equal(t, "stok terlalu besar", shared.UserMessage(err))
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()
	for _, name := range []string{"Kopi Kapal Api", "Gula Pasir", "kopi susu"} {
		_, err := svc.Create(ctx, ProductInput{Name: name, Price: decimal.NewFromInt(1000), Stock: 1})
		require.NoError(t, err)
	}

	found, err := svc.List(ctx, "KOPI")
	require.NoError(t, err)
	require.Len(t, found, 2)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "kopi susu", all[0].Name, "newest first")

	byName, err := svc.ListForSale(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Gula Pasir", byName[0].Name)
}

func TestUpdateAndDeleteMissingProduct(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Update(ctx, 42, ProductInput{Name: "X", Price: decimal.Zero, Stock: 0})
	require.ErrorIs(t, err, shared.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, 42), shared.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, 0), shared.ErrNotFound)
}

func TestUpdateOverwritesFields(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()
	p, err := svc.Create(ctx, ProductInput{Name: "Teh", Price: decimal.NewFromInt(1000), Stock: 3})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, ProductInput{Name: "Teh Botol", Price: decimal.NewFromInt(4000), Stock: 7})
	require.NoError(t, err)
	assert.Equal(t, "Teh Botol", updated.Name)
	assert.Equal(t, 7, updated.Stock)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
