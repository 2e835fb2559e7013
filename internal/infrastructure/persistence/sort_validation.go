package persistence

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// ValidateSortOrder validates and normalizes the sort order to "asc" or "desc".
// Returns "desc" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "asc"
	}
	return "desc"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// API field names and returns the stored field it maps to.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]string, defaultField string) string {
	if field, ok := allowedFields[strings.TrimSpace(sortField)]; ok {
		return field
	}
	return defaultField
}

// sortSpec builds a sort document for a whitelisted field with _id as a
// tie-breaker so pages are stable
func sortSpec(sortField string, allowedFields map[string]string, defaultField, orderDir string) bson.D {
	dir := -1
	if ValidateSortOrder(orderDir) == "asc" {
		dir = 1
	}
	field := ValidateSortField(sortField, allowedFields, defaultField)
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

// newestFirst is the default listing order
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// ProductSortFields maps API sort names to product document fields
var ProductSortFields = map[string]string{
	"createdAt":       "createdAt",
	"updatedAt":       "updatedAt",
	"name":            "name",
	"price":           "price",
	"stock":           "stock",
	"sku":             "sku",
	"category":        "category",
	"brand":           "brand",
	"ratings.average": "ratings.average",
	"rating":          "ratings.average",
}
