package persistence

import (
	"github.com/ecommerce/backend/internal/domain/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// activeScope returns a copy of filter restricted to records that have not
// been soft-deleted. Every scoped read and write goes through it.
func activeScope(filter bson.M) bson.M {
	scoped := make(bson.M, len(filter)+1)
	for k, v := range filter {
		scoped[k] = v
	}
	scoped["isActive"] = true
	return scoped
}

// parseID converts a hex ID into an ObjectID. A malformed ID cannot match
// any record, so it is reported as notFound.
func parseID(id string, notFound *shared.DomainError) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}
