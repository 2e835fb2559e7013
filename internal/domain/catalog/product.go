package catalog

import (
	"strings"
	"time"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = shared.NotFound("Product not found")
	ErrSKUTaken        = shared.Conflict("Product with this SKU already exists")
	ErrOutOfStock      = shared.NewDomainError(shared.CodeInsufficientStock, "Insufficient stock")
)

var hundred = decimal.NewFromInt(100)

// DiscountType is how a discount value is applied to the price
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount is an optional price reduction, optionally bounded in time
type Discount struct {
	Type      DiscountType    `json:"type" validate:"required,oneof=percentage fixed"`
	Value     decimal.Decimal `json:"value" validate:"gte=0"`
	StartDate *time.Time      `json:"startDate"`
	EndDate   *time.Time      `json:"endDate"`
}

// ActiveAt reports whether the discount window contains t
func (d Discount) ActiveAt(t time.Time) bool {
	if d.StartDate != nil && t.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && t.After(*d.EndDate) {
		return false
	}
	return true
}

// Apply returns price reduced by the discount, never below zero
func (d Discount) Apply(price decimal.Decimal) decimal.Decimal {
	var final decimal.Decimal
	switch d.Type {
	case DiscountPercentage:
		final = price.Sub(price.Mul(d.Value).Div(hundred))
	case DiscountFixed:
		final = price.Sub(d.Value)
	default:
		final = price
	}
	if final.IsNegative() {
		final = decimal.Zero
	}
	return final.Round(2)
}

func (d Discount) violations() []shared.Violation {
	var out []shared.Violation
	if d.Type == DiscountPercentage && d.Value.GreaterThan(hundred) {
		out = append(out, shared.Violation{Field: "discount.value", Message: "Percentage discount cannot exceed 100"})
	}
	if d.StartDate != nil && d.EndDate != nil && d.EndDate.Before(*d.StartDate) {
		out = append(out, shared.Violation{Field: "discount.endDate", Message: "End date must not be before start date"})
	}
	return out
}

// Ratings is the aggregated customer rating
type Ratings struct {
	Average float64 `json:"average" validate:"gte=0,lte=5"`
	Count   int     `json:"count" validate:"gte=0"`
}

// Details holds the product fields that clients may set
type Details struct {
	Name           string            `json:"name" validate:"required,min=1,max=100"`
	Description    string            `json:"description" validate:"required,min=1,max=2000"`
	Price          decimal.Decimal   `json:"price" validate:"gte=0"`
	Category       string            `json:"category" validate:"required"`
	Brand          string            `json:"brand"`
	SKU            string            `json:"sku" validate:"required"`
	Stock          int               `json:"stock" validate:"gte=0"`
	Images         []string          `json:"images" validate:"omitempty,dive,imageurl"`
	Specifications map[string]string `json:"specifications"`
	Tags           []string          `json:"tags"`
	IsFeatured     bool              `json:"isFeatured"`
	Discount       *Discount         `json:"discount" validate:"omitempty"`
	Ratings        Ratings           `json:"ratings"`
}

func (d *Details) normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	d.Brand = strings.TrimSpace(d.Brand)
	d.SKU = NormalizeSKU(d.SKU)
	if d.Images == nil {
		d.Images = []string{}
	} else {
		images := make([]string, len(d.Images))
		for i, img := range d.Images {
			images[i] = strings.TrimSpace(img)
		}
		d.Images = images
	}
	tags := make([]string, 0, len(d.Tags))
	for _, tag := range d.Tags {
		tags = append(tags, strings.ToLower(strings.TrimSpace(tag)))
	}
	d.Tags = tags
	if d.Specifications == nil {
		d.Specifications = map[string]string{}
	}
}

func (d Details) validate() error {
	var violations []shared.Violation
	if err := shared.Validate(d); err != nil {
		v := shared.ViolationsOf(err)
		if v == nil {
			return err
		}
		violations = append(violations, v...)
	}
	if d.Discount != nil {
		violations = append(violations, d.Discount.violations()...)
	}
	if len(violations) == 0 {
		return nil
	}
	return &shared.DomainError{
		Code:       shared.CodeValidation,
		Message:    "Validation error",
		Violations: violations,
	}
}

// Product represents a catalog item
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseAggregateRoot
	Details
}

// ProductPatch is a partial product update. Nil fields are left unchanged.
type ProductPatch struct {
	Name           *string
	Description    *string
	Price          *decimal.Decimal
	Category       *string
	Brand          *string
	SKU            *string
	Stock          *int
	Images         *[]string
	Specifications *map[string]string
	Tags           *[]string
	IsFeatured     *bool
	Discount       *Discount
	Ratings        *Ratings
}

// NewProduct normalizes and validates details and returns a new active product
func NewProduct(details Details) (*Product, error) {
	details.normalize()
	if err := details.validate(); err != nil {
		return nil, err
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Details:           details,
	}, nil
}

// ApplyUpdate merges patch into the product, re-normalizes and validates
// the merged record. The product is left untouched when validation fails.
func (p *Product) ApplyUpdate(patch ProductPatch) error {
	merged := p.Details
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Price != nil {
		merged.Price = *patch.Price
	}
	if patch.Category != nil {
		merged.Category = *patch.Category
	}
	if patch.Brand != nil {
		merged.Brand = *patch.Brand
	}
	if patch.SKU != nil {
		merged.SKU = *patch.SKU
	}
	if patch.Stock != nil {
		merged.Stock = *patch.Stock
	}
	if patch.Images != nil {
		merged.Images = *patch.Images
	}
	if patch.Specifications != nil {
		merged.Specifications = *patch.Specifications
	}
	if patch.Tags != nil {
		merged.Tags = *patch.Tags
	}
	if patch.IsFeatured != nil {
		merged.IsFeatured = *patch.IsFeatured
	}
	if patch.Discount != nil {
		discount := *patch.Discount
		merged.Discount = &discount
	}
	if patch.Ratings != nil {
		merged.Ratings = *patch.Ratings
	}

	merged.normalize()
	if err := merged.validate(); err != nil {
		return err
	}

	p.Details = merged
	p.Touch()
	return nil
}

// FinalPrice returns the price after a discount active at t
func (p *Product) FinalPrice(t time.Time) decimal.Decimal {
	if p.Discount == nil || !p.Discount.ActiveAt(t) {
		return p.Price.Round(2)
	}
	return p.Discount.Apply(p.Price)
}

// NormalizeSKU trims and uppercases a SKU
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}
