package catalog

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product persistence.
// Every lookup except FindByIDUnscoped ignores soft-deleted products.
type ProductRepository interface {
	// Create inserts a new product and assigns its ID.
	// Returns ErrSKUTaken when the SKU is already used.
	Create(ctx context.Context, product *Product) error

	// Update persists changes of an active product, guarded by its version
	Update(ctx context.Context, product *Product) error

	// Deactivate soft-deletes an active product
	Deactivate(ctx context.Context, id string) error

	// FindByID finds an active product by ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByIDUnscoped finds a product by ID regardless of its active flag
	FindByIDUnscoped(ctx context.Context, id string) (*Product, error)

	// FindBySKU finds an active product by normalized SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindAll returns active products matching the filter with the total count
	FindAll(ctx context.Context, filter ProductFilter) ([]*Product, int64, error)

	// FindFeatured returns up to limit active featured products, newest first
	FindFeatured(ctx context.Context, limit int) ([]*Product, error)

	// AdjustStock atomically applies adj and returns the resulting stock.
	// Returns ErrOutOfStock when a subtraction would go below zero.
	AdjustStock(ctx context.Context, id string, adj StockAdjustment) (int, error)

	// DistinctCategories returns the sorted distinct categories of active products
	DistinctCategories(ctx context.Context) ([]string, error)
}

// ProductFilter contains filter options for querying products
type ProductFilter struct {
	Page shared.PageRequest

	// Category is matched case-insensitively as a literal substring
	Category string

	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal

	// Search is a full-text query over name, description and tags
	Search string

	// Sorting
	SortBy    string
	SortOrder string // "asc" or "desc"
}
