package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// productRecord is the GORM model of the products table.
// Price is kept as text so that SQLite does not coerce it to a float.
type productRecord struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	Name            string          `gorm:"not null"`
	Description     *string         `gorm:"type:text"`
	Price           decimal.Decimal `gorm:"type:text;not null"`
	QuantityOfStock int             `gorm:"not null"`
}

func (productRecord) TableName() string {
	return "products"
}

func (r productRecord) toProduct() Product {
	return Product{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		QuantityOfStock: r.QuantityOfStock,
	}
}

// GormStore implements ProductStore on top of a GORM connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new instance of ProductStore using GORM.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the products table.
func (g *GormStore) Migrate(ctx context.Context) error {
	if err := g.db.WithContext(ctx).AutoMigrate(&productRecord{}); err != nil {
		return fmt.Errorf("failed to migrate products table: %w", err)
	}
	return nil
}

// Save inserts a new product or overwrites an existing one.
func (g *GormStore) Save(ctx context.Context, product *Product) (*Product, error) {
	if product.ID == 0 {
		record := productRecord{
			Name:            product.Name,
			Description:     product.Description,
			Price:           product.Price,
			QuantityOfStock: product.QuantityOfStock,
		}
		if err := g.db.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, fmt.Errorf("failed to create product: %w", err)
		}
		saved := record.toProduct().clone()
		return &saved, nil
	}

	result := g.db.WithContext(ctx).
		Model(&productRecord{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":              product.Name,
			"description":       product.Description,
			"price":             product.Price,
			"quantity_of_stock": product.QuantityOfStock,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrConcurrentDelete
	}
	saved := product.clone()
	return &saved, nil
}

// FindByID retrieves a product by its unique identifier.
func (g *GormStore) FindByID(ctx context.Context, id int64) (*Product, bool, error) {
	var record productRecord
	err := g.db.WithContext(ctx).Where("id = ?", id).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find product by ID: %w", err)
	}
	product := record.toProduct()
	return &product, true, nil
}

// FindAll retrieves all products ordered by ID.
func (g *GormStore) FindAll(ctx context.Context) ([]Product, error) {
	var records []productRecord
	if err := g.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	products := make([]Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.toProduct())
	}
	return products, nil
}

// Delete removes a product by its unique identifier.
func (g *GormStore) Delete(ctx context.Context, product *Product) error {
	if err := g.db.WithContext(ctx).Where("id = ?", product.ID).Delete(&productRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	return nil
}

// Count returns the number of rows in the products table.
func (g *GormStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := g.db.WithContext(ctx).Model(&productRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
