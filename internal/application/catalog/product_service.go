package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/logger"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	msgRequired     = "This field is required"
	msgInvalidPrice = "Price must be a non-negative number"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Create validates and stores a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if req.Price == nil {
		return nil, shared.InvalidField("price", msgRequired)
	}

	product, err := catalog.NewProduct(req.toDetails())
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.log(ctx).Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("sku", product.SKU),
	)
	return s.response(product), nil
}

// List returns a filtered, sorted page of active products
func (s *ProductService) List(ctx context.Context, q ProductListQuery) (shared.Paginated[ProductResponse], error) {
	filter, err := s.buildFilter(q)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	return s.findPage(ctx, filter)
}

// GetByCategory lists active products whose category matches, newest first
func (s *ProductService) GetByCategory(ctx context.Context, category string, page shared.PageRequest) (shared.Paginated[ProductResponse], error) {
	if strings.TrimSpace(category) == "" {
		return shared.Paginated[ProductResponse]{}, shared.InvalidField("category", msgRequired)
	}
	return s.findPage(ctx, catalog.ProductFilter{Page: page.Normalize(), Category: category})
}

// GetByID returns an active product
func (s *ProductService) GetByID(ctx context.Context, id string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.response(product), nil
}

// GetBySKU returns an active product by SKU, ignoring case and surrounding space
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, catalog.NormalizeSKU(sku))
	if err != nil {
		return nil, err
	}
	return s.response(product), nil
}

// Update merges the partial update into the product and persists it
func (s *ProductService) Update(ctx context.Context, id string, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.ApplyUpdate(req.toPatch()); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.log(ctx).Info("Product updated", zap.String("product_id", product.ID))
	return s.response(product), nil
}

// SoftDelete deactivates an active product
func (s *ProductService) SoftDelete(ctx context.Context, id string) error {
	if err := s.productRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.log(ctx).Info("Product deactivated", zap.String("product_id", id))
	return nil
}

// GetFeatured returns up to limit featured products, newest first
func (s *ProductService) GetFeatured(ctx context.Context, limit int) ([]ProductResponse, error) {
	limit = shared.PageRequest{Page: 1, Limit: limit}.Normalize().Limit
	products, err := s.productRepo.FindFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products, s.now()), nil
}

// AdjustStock adds to or subtracts from the stock in one atomic update
func (s *ProductService) AdjustStock(ctx context.Context, id string, req StockRequest) (*StockResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "adjust_stock", "product.id", id)
	defer span.End()

	if req.Quantity == nil {
		return nil, shared.InvalidField("quantity", msgRequired)
	}
	adj, err := catalog.NewStockAdjustment(*req.Quantity, req.Operation)
	if err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span, "stock.delta", adj.Delta())

	stock, err := s.productRepo.AdjustStock(ctx, id, adj)
	if err != nil {
		if shared.IsDomainError(err, shared.CodeInsufficientStock) {
			s.log(ctx).Warn("Stock adjustment rejected",
				zap.String("product_id", id),
				zap.Int("quantity", adj.Quantity),
			)
		} else {
			telemetry.RecordError(span, err)
		}
		return nil, err
	}

	s.log(ctx).Info("Stock adjusted",
		zap.String("product_id", id),
		zap.Int("delta", adj.Delta()),
		zap.Int("stock", stock),
	)
	return &StockResponse{Stock: stock}, nil
}

// ListCategories returns the sorted distinct categories of active products
func (s *ProductService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (s *ProductService) findPage(ctx context.Context, filter catalog.ProductFilter) (shared.Paginated[ProductResponse], error) {
	products, total, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	return shared.NewPaginated(ToProductResponses(products, s.now()), total, filter.Page), nil
}

// buildFilter parses price bounds and collects every malformed parameter
func (s *ProductService) buildFilter(q ProductListQuery) (catalog.ProductFilter, error) {
	filter := catalog.ProductFilter{
		Page:      shared.PageRequest{Page: q.Page, Limit: q.Limit}.Normalize(),
		Category:  q.Category,
		Search:    q.Search,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}

	var violations []shared.Violation
	parse := func(field, raw string) *decimal.Decimal {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			violations = append(violations, shared.Violation{Field: field, Message: msgInvalidPrice})
			return nil
		}
		return &d
	}
	filter.MinPrice = parse("minPrice", q.MinPrice)
	filter.MaxPrice = parse("maxPrice", q.MaxPrice)

	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		violations = append(violations, shared.Violation{
			Field:   "minPrice",
			Message: "Minimum price cannot be greater than maximum price",
		})
	}
	if len(violations) > 0 {
		return catalog.ProductFilter{}, &shared.DomainError{
			Code:       shared.CodeValidation,
			Message:    "Validation error",
			Violations: violations,
		}
	}
	return filter, nil
}

func (s *ProductService) response(p *catalog.Product) *ProductResponse {
	resp := ToProductResponse(p, s.now())
	return &resp
}

func (s *ProductService) log(ctx context.Context) *zap.Logger {
	return logger.FromContextOr(ctx, s.logger)
}
