package models

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
)

// DiscountModel is the embedded discount document
type DiscountModel struct {
	Type      string          `bson:"type"`
	Value     decimal.Decimal `bson:"value"`
	StartDate *time.Time      `bson:"startDate,omitempty"`
	EndDate   *time.Time      `bson:"endDate,omitempty"`
}

// RatingsModel is the embedded ratings document
type RatingsModel struct {
	Average float64 `bson:"average"`
	Count   int     `bson:"count"`
}

// ProductModel is the document stored in the products collection.
// Decimal fields are stored as Decimal128 through the registry in codec.go.
type ProductModel struct {
	AggregateModel `bson:",inline"`
	Name           string            `bson:"name"`
	Description    string            `bson:"description"`
	Price          decimal.Decimal   `bson:"price"`
	Category       string            `bson:"category"`
	Brand          string            `bson:"brand,omitempty"`
	SKU            string            `bson:"sku"`
	Stock          int               `bson:"stock"`
	Images         []string          `bson:"images"`
	Specifications map[string]string `bson:"specifications"`
	Tags           []string          `bson:"tags"`
	IsFeatured     bool              `bson:"isFeatured"`
	Discount       *DiscountModel    `bson:"discount,omitempty"`
	Ratings        RatingsModel      `bson:"ratings"`
}

// ToDomain converts the document to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.AggregateModel.ToDomain(),
		Details: catalog.Details{
			Name:           m.Name,
			Description:    m.Description,
			Price:          m.Price,
			Category:       m.Category,
			Brand:          m.Brand,
			SKU:            m.SKU,
			Stock:          m.Stock,
			Images:         nonNilStrings(m.Images),
			Specifications: m.Specifications,
			Tags:           nonNilStrings(m.Tags),
			IsFeatured:     m.IsFeatured,
			Ratings: catalog.Ratings{
				Average: m.Ratings.Average,
				Count:   m.Ratings.Count,
			},
		},
	}
	if p.Specifications == nil {
		p.Specifications = map[string]string{}
	}
	if m.Discount != nil {
		p.Discount = &catalog.Discount{
			Type:      catalog.DiscountType(m.Discount.Type),
			Value:     m.Discount.Value,
			StartDate: m.Discount.StartDate,
			EndDate:   m.Discount.EndDate,
		}
	}
	return p
}

// ProductModelFromDomain converts a domain Product to its document
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Category:       p.Category,
		Brand:          p.Brand,
		SKU:            p.SKU,
		Stock:          p.Stock,
		Images:         nonNilStrings(p.Images),
		Specifications: p.Specifications,
		Tags:           nonNilStrings(p.Tags),
		IsFeatured:     p.IsFeatured,
		Ratings: RatingsModel{
			Average: p.Ratings.Average,
			Count:   p.Ratings.Count,
		},
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	if p.Discount != nil {
		m.Discount = &DiscountModel{
			Type:      string(p.Discount.Type),
			Value:     p.Discount.Value,
			StartDate: p.Discount.StartDate,
			EndDate:   p.Discount.EndDate,
		}
	}
	return m
}

// SetFields returns the mutable fields for a $set update.
// Stock is included; concurrent stock changes bump the version and make
// a stale update fail instead of overwriting them.
func (m *ProductModel) SetFields() bson.M {
	return bson.M{
		"name":           m.Name,
		"description":    m.Description,
		"price":          m.Price,
		"category":       m.Category,
		"brand":          m.Brand,
		"sku":            m.SKU,
		"stock":          m.Stock,
		"images":         m.Images,
		"specifications": m.Specifications,
		"tags":           m.Tags,
		"isFeatured":     m.IsFeatured,
		"discount":       m.Discount,
		"ratings":        m.Ratings,
		"updatedAt":      m.UpdatedAt,
	}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
