package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	insertProduct = `INSERT INTO products (name, description, price, quantity_of_stock)
VALUES ($1, $2, $3, $4)
RETURNING id, name, description, price, quantity_of_stock`

	updateProduct = `UPDATE products
SET name = $2, description = $3, price = $4, quantity_of_stock = $5
WHERE id = $1
RETURNING id, name, description, price, quantity_of_stock`

	findProductByID = `SELECT id, name, description, price, quantity_of_stock FROM products WHERE id = $1`

	findAllProducts = `SELECT id, name, description, price, quantity_of_stock FROM products ORDER BY id`

	deleteProduct = `DELETE FROM products WHERE id = $1`

	countProducts = `SELECT count(*) FROM products`
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// Save inserts a new product or overwrites an existing one.
func (p *PgStore) Save(ctx context.Context, product *Product) (*Product, error) {
	price := toNumeric(product.Price)
	if product.ID == 0 {
		row := p.db.QueryRow(ctx, insertProduct, product.Name, product.Description, price, product.QuantityOfStock)
		saved, err := scanProduct(row)
		if err != nil {
			return nil, fmt.Errorf("failed to create product: %w", err)
		}
		return saved, nil
	}

	row := p.db.QueryRow(ctx, updateProduct, product.ID, product.Name, product.Description, price, product.QuantityOfStock)
	saved, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConcurrentDelete
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return saved, nil
}

// FindByID retrieves a product by its unique identifier.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*Product, bool, error) {
	product, err := scanProduct(p.db.QueryRow(ctx, findProductByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, true, nil
}

// FindAll retrieves all products ordered by ID.
func (p *PgStore) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := p.db.Query(ctx, findAllProducts)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	return products, nil
}

// Delete removes a product by its unique identifier.
func (p *PgStore) Delete(ctx context.Context, product *Product) error {
	if _, err := p.db.Exec(ctx, deleteProduct, product.ID); err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	return nil
}

// Count returns the number of rows in the products table.
func (p *PgStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := p.db.QueryRow(ctx, countProducts).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var (
		product Product
		price   pgtype.Numeric
	)
	if err := row.Scan(&product.ID, &product.Name, &product.Description, &price, &product.QuantityOfStock); err != nil {
		return nil, err
	}
	if !price.Valid || price.NaN || price.InfinityModifier != pgtype.Finite {
		return nil, fmt.Errorf("invalid price for product %d", product.ID)
	}
	product.Price = decimal.NewFromBigInt(price.Int, price.Exp)
	return &product, nil
}

func toNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}
