package models

import (
	"github.com/ecommerce/backend/internal/domain/identity"
	"go.mongodb.org/mongo-driver/bson"
)

// AddressModel is the embedded postal address document
type AddressModel struct {
	Street  string `bson:"street"`
	City    string `bson:"city"`
	State   string `bson:"state"`
	ZipCode string `bson:"zipCode"`
	Country string `bson:"country"`
}

// UserModel is the document stored in the users collection
type UserModel struct {
	AggregateModel `bson:",inline"`
	Name           string        `bson:"name"`
	Email          string        `bson:"email"`
	Password       string        `bson:"password"`
	Role           string        `bson:"role"`
	Phone          string        `bson:"phone,omitempty"`
	Address        *AddressModel `bson:"address,omitempty"`
}

// ToDomain converts the document to a domain User
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		BaseAggregateRoot: m.AggregateModel.ToDomain(),
		Profile: identity.Profile{
			Name:  m.Name,
			Email: m.Email,
			Role:  identity.Role(m.Role),
			Phone: m.Phone,
		},
		PasswordHash: m.Password,
	}
	if m.Address != nil {
		u.Address = &identity.Address{
			Street:  m.Address.Street,
			City:    m.Address.City,
			State:   m.Address.State,
			ZipCode: m.Address.ZipCode,
			Country: m.Address.Country,
		}
	}
	return u
}

// UserModelFromDomain converts a domain User to its document
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Name:     u.Name,
		Email:    u.Email,
		Password: u.PasswordHash,
		Role:     string(u.Role),
		Phone:    u.Phone,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	if u.Address != nil {
		m.Address = &AddressModel{
			Street:  u.Address.Street,
			City:    u.Address.City,
			State:   u.Address.State,
			ZipCode: u.Address.ZipCode,
			Country: u.Address.Country,
		}
	}
	return m
}

// SetFields returns the mutable fields for a $set update.
// _id, createdAt, version and isActive are managed by the repository.
func (m *UserModel) SetFields() bson.M {
	return bson.M{
		"name":      m.Name,
		"email":     m.Email,
		"password":  m.Password,
		"role":      m.Role,
		"phone":     m.Phone,
		"address":   m.Address,
		"updatedAt": m.UpdatedAt,
	}
}
