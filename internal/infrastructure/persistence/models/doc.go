// Package models contains the BSON documents stored in MongoDB.
// These models are separate from domain entities to keep the domain layer
// free of storage concerns.
//
// Structure:
// - base.go: shared document fields (_id, timestamps, version, isActive)
// - identity.go: users collection
// - catalog.go: products collection
//
// Every model provides ToDomain, a ...FromDomain constructor and SetFields,
// the $set document used for updates.
package models
