package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productSeed struct {
	name     string
	sku      string
	category string
	price    string
	stock    int
	featured bool
	tags     []string
}

func createProduct(t *testing.T, repo *persistence.MongoProductRepository, s productSeed) *catalog.Product {
	t.Helper()
	if s.name == "" {
		s.name = "Product " + s.sku
	}
	if s.category == "" {
		s.category = "Electronics"
	}
	if s.price == "" {
		s.price = "10"
	}
	p, err := catalog.NewProduct(catalog.Details{
		Name:        s.name,
		Description: "Description of " + s.name,
		Price:       decimal.RequireFromString(s.price),
		Category:    s.category,
		SKU:         s.sku,
		Stock:       s.stock,
		IsFeatured:  s.featured,
		Tags:        s.tags,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestMongoProductRepository(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewMongoProductRepository(tdb.Database)
	ctx := context.Background()

	t.Run("sku lookup is case insensitive and sku is unique", func(t *testing.T) {
		tdb.CleanCollections()
		p := createProduct(t, repo, productSeed{sku: "abc-1"})
		assert.Equal(t, "ABC-1", p.SKU)

		for _, sku := range []string{"ABC-1", "abc-1", " Abc-1 "} {
			found, err := repo.FindBySKU(ctx, catalog.NormalizeSKU(sku))
			require.NoError(t, err, sku)
			assert.Equal(t, p.ID, found.ID)
		}

		dup, err := catalog.NewProduct(catalog.Details{
			Name: "Dup", Description: "Dup", Price: decimal.NewFromInt(1), Category: "X", SKU: "ABC-1",
		})
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("price round-trips exactly", func(t *testing.T) {
		tdb.CleanCollections()
		p := createProduct(t, repo, productSeed{sku: "P-1", price: "19.99"})

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, found.Price.Equal(decimal.RequireFromString("19.99")), found.Price.String())
	})

	t.Run("subtracting more than available fails and leaves stock", func(t *testing.T) {
		tdb.CleanCollections()
		p := createProduct(t, repo, productSeed{sku: "S-1", stock: 3})

		_, err := repo.AdjustStock(ctx, p.ID, catalog.StockAdjustment{Quantity: 5, Operation: catalog.StockSubtract})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, found.Stock)

		stock, err := repo.AdjustStock(ctx, p.ID, catalog.StockAdjustment{Quantity: 5, Operation: catalog.StockAdd})
		require.NoError(t, err)
		assert.Equal(t, 8, stock)
	})

	t.Run("adjust stock on a missing product is not found", func(t *testing.T) {
		_, err := repo.AdjustStock(ctx, "65a000000000000000000000", catalog.StockAdjustment{Quantity: 1, Operation: catalog.StockAdd})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("concurrent subtractions never oversell", func(t *testing.T) {
		tdb.CleanCollections()
		p := createProduct(t, repo, productSeed{sku: "C-1", stock: 10})

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
		)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.AdjustStock(ctx, p.ID, catalog.StockAdjustment{Quantity: 1, Operation: catalog.StockSubtract})
				if err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 10, succeeded)
		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, found.Stock)
	})

	t.Run("soft delete", func(t *testing.T) {
		tdb.CleanCollections()
		p := createProduct(t, repo, productSeed{sku: "D-1"})
		require.NoError(t, repo.Deactivate(ctx, p.ID))

		_, err := repo.FindByID(ctx, p.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = repo.FindBySKU(ctx, "D-1")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		raw, err := repo.FindByIDUnscoped(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, raw.IsActive())
	})

	t.Run("filters", func(t *testing.T) {
		tdb.CleanCollections()
		createProduct(t, repo, productSeed{sku: "F-1", name: "Wireless Mouse", category: "Electronics", price: "25", tags: []string{"mouse"}})
		createProduct(t, repo, productSeed{sku: "F-2", name: "Mechanical Keyboard", category: "Electronics", price: "80"})
		createProduct(t, repo, productSeed{sku: "F-3", name: "Cookbook", category: "Books", price: "15"})
		createProduct(t, repo, productSeed{sku: "F-4", name: "Regex (Advanced)", category: "Books.*", price: "40"})

		list := func(f catalog.ProductFilter) []*catalog.Product {
			f.Page = shared.PageRequest{}.Normalize()
			products, _, err := repo.FindAll(ctx, f)
			require.NoError(t, err)
			return products
		}

		assert.Len(t, list(catalog.ProductFilter{Category: "electronics"}), 2)
		assert.Len(t, list(catalog.ProductFilter{Category: "books.*"}), 1, "category input is matched literally")

		min, max := decimal.NewFromInt(20), decimal.NewFromInt(40)
		priced := list(catalog.ProductFilter{MinPrice: &min, MaxPrice: &max})
		assert.Len(t, priced, 2, "bounds are inclusive")

		searched := list(catalog.ProductFilter{Search: "mouse"})
		require.Len(t, searched, 1)
		assert.Equal(t, "F-1", searched[0].SKU)

		byPrice := list(catalog.ProductFilter{SortBy: "price", SortOrder: "asc"})
		require.Len(t, byPrice, 4)
		assert.Equal(t, "F-3", byPrice[0].SKU)
		assert.Equal(t, "F-2", byPrice[3].SKU)

		byUnknown := list(catalog.ProductFilter{SortBy: "password", SortOrder: "sideways"})
		assert.Len(t, byUnknown, 4, "unknown sort falls back to createdAt desc")
		assert.Equal(t, "F-4", byUnknown[0].SKU)
	})

	t.Run("featured and categories", func(t *testing.T) {
		tdb.CleanCollections()
		createProduct(t, repo, productSeed{sku: "G-1", category: "Toys", featured: true})
		createProduct(t, repo, productSeed{sku: "G-2", category: "Books", featured: true})
		createProduct(t, repo, productSeed{sku: "G-3", category: "Books"})
		gone := createProduct(t, repo, productSeed{sku: "G-4", category: "Garden", featured: true})
		require.NoError(t, repo.Deactivate(ctx, gone.ID))

		featured, err := repo.FindFeatured(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, featured, 2)

		limited, err := repo.FindFeatured(ctx, 1)
		require.NoError(t, err)
		require.Len(t, limited, 1)
		assert.Equal(t, "G-2", limited[0].SKU, "newest first")

		categories, err := repo.DistinctCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Books", "Toys"}, categories)
	})
}
