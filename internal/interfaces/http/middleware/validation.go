package middleware

import (
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator installs the domain validation rules on gin's binding
// validator so binding tags report the same field names and messages
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		shared.RegisterRules(v)
	}
}
