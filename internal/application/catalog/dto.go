package catalog

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name           string            `json:"name" example:"Wireless Mouse"`
	Description    string            `json:"description" example:"Ergonomic 2.4GHz mouse"`
	Price          *decimal.Decimal  `json:"price" swaggertype:"number" example:"29.99"`
	Category       string            `json:"category" example:"Electronics"`
	Brand          string            `json:"brand,omitempty"`
	SKU            string            `json:"sku" example:"WM-001"`
	Stock          int               `json:"stock"`
	Images         []string          `json:"images,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
	IsFeatured     bool              `json:"isFeatured"`
	Discount       *catalog.Discount `json:"discount,omitempty"`
	Ratings        *catalog.Ratings  `json:"ratings,omitempty"`
}

func (r CreateProductRequest) toDetails() catalog.Details {
	d := catalog.Details{
		Name:           r.Name,
		Description:    r.Description,
		Category:       r.Category,
		Brand:          r.Brand,
		SKU:            r.SKU,
		Stock:          r.Stock,
		Images:         r.Images,
		Specifications: r.Specifications,
		Tags:           r.Tags,
		IsFeatured:     r.IsFeatured,
		Discount:       r.Discount,
	}
	if r.Price != nil {
		d.Price = *r.Price
	}
	if r.Ratings != nil {
		d.Ratings = *r.Ratings
	}
	return d
}

// UpdateProductRequest is a partial product update. Omitted fields are unchanged.
type UpdateProductRequest struct {
	Name           *string            `json:"name,omitempty"`
	Description    *string            `json:"description,omitempty"`
	Price          *decimal.Decimal   `json:"price,omitempty" swaggertype:"number"`
	Category       *string            `json:"category,omitempty"`
	Brand          *string            `json:"brand,omitempty"`
	SKU            *string            `json:"sku,omitempty"`
	Stock          *int               `json:"stock,omitempty"`
	Images         *[]string          `json:"images,omitempty"`
	Specifications *map[string]string `json:"specifications,omitempty"`
	Tags           *[]string          `json:"tags,omitempty"`
	IsFeatured     *bool              `json:"isFeatured,omitempty"`
	Discount       *catalog.Discount  `json:"discount,omitempty"`
	Ratings        *catalog.Ratings   `json:"ratings,omitempty"`
}

func (r UpdateProductRequest) toPatch() catalog.ProductPatch {
	return catalog.ProductPatch{
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		Category:       r.Category,
		Brand:          r.Brand,
		SKU:            r.SKU,
		Stock:          r.Stock,
		Images:         r.Images,
		Specifications: r.Specifications,
		Tags:           r.Tags,
		IsFeatured:     r.IsFeatured,
		Discount:       r.Discount,
		Ratings:        r.Ratings,
	}
}

// ProductListQuery holds the raw list parameters. Prices stay strings so
// malformed values are reported as field violations.
type ProductListQuery struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Category  string `form:"category"`
	MinPrice  string `form:"minPrice"`
	MaxPrice  string `form:"maxPrice"`
	Search    string `form:"search"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

// StockRequest adjusts stock by Quantity. Operation defaults to add.
type StockRequest struct {
	Quantity  *int                   `json:"quantity" example:"5"`
	Operation catalog.StockOperation `json:"operation,omitempty" example:"subtract"`
}

// StockResponse carries the stock after an adjustment
type StockResponse struct {
	Stock int `json:"stock"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price" swaggertype:"number"`
	FinalPrice     decimal.Decimal   `json:"finalPrice" swaggertype:"number"`
	Category       string            `json:"category"`
	Brand          string            `json:"brand,omitempty"`
	SKU            string            `json:"sku"`
	Stock          int               `json:"stock"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
	Tags           []string          `json:"tags"`
	IsActive       bool              `json:"isActive"`
	IsFeatured     bool              `json:"isFeatured"`
	Discount       *catalog.Discount `json:"discount,omitempty"`
	Ratings        catalog.Ratings   `json:"ratings"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// ToProductResponse converts a domain Product, pricing discounts as of now
func ToProductResponse(p *catalog.Product, now time.Time) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		FinalPrice:     p.FinalPrice(now),
		Category:       p.Category,
		Brand:          p.Brand,
		SKU:            p.SKU,
		Stock:          p.Stock,
		Images:         p.Images,
		Specifications: p.Specifications,
		Tags:           p.Tags,
		IsActive:       p.IsActive(),
		IsFeatured:     p.IsFeatured,
		Discount:       p.Discount,
		Ratings:        p.Ratings,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductResponses converts domain products to responses
func ToProductResponses(products []*catalog.Product, now time.Time) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToProductResponse(p, now)
	}
	return out
}
