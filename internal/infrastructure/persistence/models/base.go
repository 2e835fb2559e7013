package models

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/shared"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AggregateModel holds the fields every stored document carries.
type AggregateModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
	Version   int                `bson:"version"`
	IsActive  bool               `bson:"isActive"`
}

func (m *AggregateModel) ToDomain() shared.BaseAggregateRoot {
	var id string
	if !m.ID.IsZero() {
		id = m.ID.Hex()
	}
	return shared.BaseAggregateRoot{
		ID:        id,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Version:   m.Version,
		Active:    m.IsActive,
	}
}

// FromDomainAggregateRoot copies a into m. A missing or malformed ID leaves _id unset.
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	if oid, err := primitive.ObjectIDFromHex(a.ID); err == nil {
		m.ID = oid
	}
	m.CreatedAt, m.UpdatedAt = a.CreatedAt, a.UpdatedAt
	m.Version, m.IsActive = a.Version, a.Active
}
