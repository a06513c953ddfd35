package service

import (
	"context"
	"errors"
	"testing"

	producterrors "github.com/abgdnv/product-api/internal/errors"
	"github.com/abgdnv/product-api/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// mockProductStore is a mock implementation of the ProductStore interface
type mockProductStore struct {
	product  *store.Product
	products []store.Product
	found    bool
	findErr  error
	saveErr  error
	delErr   error

	saved   *store.Product
	deleted *store.Product
}

// Simulate saving a product; a new product gets ID 1
func (m *mockProductStore) Save(_ context.Context, p *store.Product) (*store.Product, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	cp := *p
	if cp.ID == 0 {
		cp.ID = 1
	}
	m.saved = &cp
	return &cp, nil
}

// Simulate finding a product by ID
func (m *mockProductStore) FindByID(_ context.Context, _ int64) (*store.Product, bool, error) {
	if m.findErr != nil || !m.found {
		return nil, false, m.findErr
	}
	cp := *m.product
	return &cp, true, nil
}

// Simulate finding all products
func (m *mockProductStore) FindAll(_ context.Context) ([]store.Product, error) {
	return m.products, m.findErr
}

// Simulate deleting a product
func (m *mockProductStore) Delete(_ context.Context, p *store.Product) error {
	m.deleted = p
	return m.delErr
}

func (m *mockProductStore) Count(_ context.Context) (int64, error) {
	return int64(len(m.products)), nil
}

func strPtr(s string) *string { return &s }

func laptop() store.Product {
	return store.Product{
		Name:            "Test Laptop",
		Description:     strPtr("A laptop for testing"),
		Price:           decimal.RequireFromString("999.99"),
		QuantityOfStock: 10,
	}
}

func Test_ProductService_Create(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		input       store.Product
		expectedID  int64
		expectError error
	}{
		{
			name:       "Success - product created",
			mockStore:  &mockProductStore{},
			input:      laptop(),
			expectedID: 1,
		},
		{
			name:       "Success - caller supplied ID is ignored",
			mockStore:  &mockProductStore{},
			input:      func() store.Product { p := laptop(); p.ID = 77; return p }(),
			expectedID: 1,
		},
		{
			name:        "Error - store failure",
			mockStore:   &mockProductStore{saveErr: errors.New("db down")},
			input:       laptop(),
			expectError: errors.New("db down"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := NewService(tc.mockStore, nil)
			// when
			created, err := svc.Create(context.Background(), tc.input)
			// then
			if tc.expectError != nil {
				require.Error(t, err)
				assert.ErrorContains(t, err, tc.expectError.Error())
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedID, created.ID)
			assert.Equal(t, tc.input.Name, created.Name)
			assert.Equal(t, tc.input.Description, created.Description)
			assert.True(t, tc.input.Price.Equal(created.Price))
			assert.Equal(t, tc.input.QuantityOfStock, created.QuantityOfStock)
		})
	}
}

func Test_ProductService_FindByID(t *testing.T) {
	existing := laptop()
	existing.ID = 5
	dbErr := errors.New("connection reset")

	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    *store.Product
		expectError error
	}{
		{
			name:      "Success - product found",
			mockStore: &mockProductStore{product: &existing, found: true},
			expected:  &existing,
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{},
			expectError: producterrors.ErrProductNotFound,
		},
		{
			name:        "Error - store failure",
			mockStore:   &mockProductStore{findErr: dbErr},
			expectError: dbErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(tc.mockStore, nil)

			found, err := svc.FindByID(context.Background(), 5)

			if tc.expectError != nil {
				require.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_ProductService_FindByID_NotFoundCarriesID(t *testing.T) {
	svc := NewService(&mockProductStore{}, nil)

	_, err := svc.FindByID(context.Background(), 99)

	var notFound *producterrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(99), notFound.ID)
	assert.Equal(t, "Product not found with id: 99", err.Error())
}

func Test_ProductService_FindAll(t *testing.T) {
	t.Run("Success - nil from store becomes empty slice", func(t *testing.T) {
		svc := NewService(&mockProductStore{}, nil)

		list, err := svc.FindAll(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("Success - products returned", func(t *testing.T) {
		products := []store.Product{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
		svc := NewService(&mockProductStore{products: products}, nil)

		list, err := svc.FindAll(context.Background())

		require.NoError(t, err)
		assert.Equal(t, products, list)
	})

	t.Run("Error - store failure", func(t *testing.T) {
		dbErr := errors.New("timeout")
		svc := NewService(&mockProductStore{findErr: dbErr}, nil)

		_, err := svc.FindAll(context.Background())

		assert.ErrorIs(t, err, dbErr)
	})
}

func Test_ProductService_Update(t *testing.T) {
	existing := laptop()
	existing.ID = 3

	t.Run("Success - all mutable fields overwritten", func(t *testing.T) {
		mockStore := &mockProductStore{product: &existing, found: true}
		svc := NewService(mockStore, nil)
		values := store.Product{
			ID:              100,
			Name:            "Updated Laptop",
			Description:     nil,
			Price:           decimal.RequireFromString("1299.50"),
			QuantityOfStock: 0,
		}

		updated, err := svc.Update(context.Background(), 3, values)

		require.NoError(t, err)
		assert.Equal(t, int64(3), updated.ID)
		assert.Equal(t, "Updated Laptop", updated.Name)
		assert.Nil(t, updated.Description)
		assert.True(t, values.Price.Equal(updated.Price))
		assert.Equal(t, 0, updated.QuantityOfStock)
		require.NotNil(t, mockStore.saved)
		assert.Equal(t, int64(3), mockStore.saved.ID)
	})

	t.Run("Error - product not found", func(t *testing.T) {
		mockStore := &mockProductStore{}
		svc := NewService(mockStore, nil)

		_, err := svc.Update(context.Background(), 3, laptop())

		var notFound *producterrors.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, int64(3), notFound.ID)
		assert.Nil(t, mockStore.saved)
	})

	t.Run("Error - row deleted before save", func(t *testing.T) {
		mockStore := &mockProductStore{product: &existing, found: true, saveErr: store.ErrConcurrentDelete}
		svc := NewService(mockStore, nil)

		_, err := svc.Update(context.Background(), 3, laptop())

		assert.ErrorIs(t, err, store.ErrConcurrentDelete)
		assert.NotErrorIs(t, err, producterrors.ErrProductNotFound)
	})
}

func Test_ProductService_DeleteByID(t *testing.T) {
	existing := laptop()
	existing.ID = 8

	t.Run("Success - product deleted", func(t *testing.T) {
		mockStore := &mockProductStore{product: &existing, found: true}
		svc := NewService(mockStore, nil)

		err := svc.DeleteByID(context.Background(), 8)

		require.NoError(t, err)
		require.NotNil(t, mockStore.deleted)
		assert.Equal(t, int64(8), mockStore.deleted.ID)
	})

	t.Run("Error - product not found", func(t *testing.T) {
		mockStore := &mockProductStore{}
		svc := NewService(mockStore, nil)

		err := svc.DeleteByID(context.Background(), 8)

		assert.ErrorIs(t, err, producterrors.ErrProductNotFound)
		assert.Nil(t, mockStore.deleted)
	})

	t.Run("Error - store failure", func(t *testing.T) {
		dbErr := errors.New("constraint")
		svc := NewService(&mockProductStore{product: &existing, found: true, delErr: dbErr}, nil)

		err := svc.DeleteByID(context.Background(), 8)

		assert.ErrorIs(t, err, dbErr)
	})
}

func Test_ProductService_CountsOperations(t *testing.T) {
	reader := metricsdk.NewManualReader()
	mp := metricsdk.NewMeterProvider(metricsdk.WithReader(reader))
	svc := NewService(&mockProductStore{}, mp.Meter("test"))

	_, err := svc.Create(context.Background(), laptop())
	require.NoError(t, err)
	_, err = svc.FindByID(context.Background(), 42)
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)

	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	outcomes := map[string]int64{}
	for _, dp := range sum.DataPoints {
		op, _ := dp.Attributes.Value(attribute.Key("operation"))
		outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
		outcomes[op.AsString()+"/"+outcome.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"create/success": 1, "find/not_found": 1}, outcomes)
}
