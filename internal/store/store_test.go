package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func strPtr(s string) *string { return &s }

func newProduct(name string, price string, qty int) *Product {
	return &Product{
		Name:            name,
		Description:     strPtr(name + " description"),
		Price:           decimal.RequireFromString(price),
		QuantityOfStock: qty,
	}
}

func newGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "products.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	s := NewGormStore(db)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func Test_Stores(t *testing.T) {
	stores := map[string]func(t *testing.T) ProductStore{
		"in-memory": func(*testing.T) ProductStore { return NewInMemoryStore() },
		"gorm":      func(t *testing.T) ProductStore { return newGormStore(t) },
	}
	for name, factory := range stores {
		t.Run(name, func(t *testing.T) {
			runStoreTests(t, factory)
		})
	}
}

func runStoreTests(t *testing.T, factory func(t *testing.T) ProductStore) {
	ctx := context.Background()

	t.Run("save assigns id and find returns equal product", func(t *testing.T) {
		s := factory(t)
		toCreate := newProduct("Laptop", "999.99", 10)

		created, err := s.Save(ctx, toCreate)
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		assert.Zero(t, toCreate.ID, "input must not be mutated")

		found, ok, err := s.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "Laptop", found.Name)
		require.NotNil(t, found.Description)
		assert.Equal(t, "Laptop description", *found.Description)
		assert.True(t, decimal.RequireFromString("999.99").Equal(found.Price))
		assert.Equal(t, 10, found.QuantityOfStock)
	})

	t.Run("ids are unique", func(t *testing.T) {
		s := factory(t)
		first, err := s.Save(ctx, newProduct("A", "1.00", 1))
		require.NoError(t, err)
		second, err := s.Save(ctx, newProduct("B", "2.00", 2))
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("nil description stays nil", func(t *testing.T) {
		s := factory(t)
		p := newProduct("No description", "5.00", 0)
		p.Description = nil

		created, err := s.Save(ctx, p)
		require.NoError(t, err)

		found, ok, err := s.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Nil(t, found.Description)
	})

	t.Run("find missing product", func(t *testing.T) {
		s := factory(t)
		found, ok, err := s.FindByID(ctx, 99)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, found)
	})

	t.Run("find all on empty store", func(t *testing.T) {
		s := factory(t)
		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("find all is ordered by id", func(t *testing.T) {
		s := factory(t)
		for _, name := range []string{"A", "B", "C"} {
			_, err := s.Save(ctx, newProduct(name, "1.50", 1))
			require.NoError(t, err)
		}
		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "A", all[0].Name)
		assert.Equal(t, "B", all[1].Name)
		assert.Equal(t, "C", all[2].Name)
		assert.Less(t, all[0].ID, all[1].ID)
		assert.Less(t, all[1].ID, all[2].ID)
	})

	t.Run("save existing overwrites fields", func(t *testing.T) {
		s := factory(t)
		created, err := s.Save(ctx, newProduct("Phone", "100.00", 5))
		require.NoError(t, err)

		created.Name = "Phone Pro"
		created.Description = nil
		created.Price = decimal.RequireFromString("150.25")
		created.QuantityOfStock = 0
		updated, err := s.Save(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)

		found, ok, err := s.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Phone Pro", found.Name)
		assert.Nil(t, found.Description)
		assert.True(t, decimal.RequireFromString("150.25").Equal(found.Price))
		assert.Equal(t, 0, found.QuantityOfStock)

		count, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("save deleted product", func(t *testing.T) {
		s := factory(t)
		created, err := s.Save(ctx, newProduct("Gone", "1.00", 1))
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, created))

		_, err = s.Save(ctx, created)
		assert.ErrorIs(t, err, ErrConcurrentDelete)
	})

	t.Run("delete removes product and decrements count", func(t *testing.T) {
		s := factory(t)
		keep, err := s.Save(ctx, newProduct("Keep", "1.00", 1))
		require.NoError(t, err)
		drop, err := s.Save(ctx, newProduct("Drop", "2.00", 2))
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, drop))

		_, ok, err := s.FindByID(ctx, drop.ID)
		require.NoError(t, err)
		assert.False(t, ok)
		_, ok, err = s.FindByID(ctx, keep.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		count, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("delete missing product is a no-op", func(t *testing.T) {
		s := factory(t)
		assert.NoError(t, s.Delete(ctx, &Product{ID: 42}))
	})
}

func Test_InMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	created, err := s.Save(ctx, newProduct("Mouse", "19.99", 3))
	require.NoError(t, err)

	*created.Description = "changed"
	found, _, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mouse description", *found.Description)
}
