package catalog

import (
	"github.com/ecommerce/backend/internal/domain/shared"
)

// StockOperation is the direction of a stock adjustment
type StockOperation string

const (
	StockAdd      StockOperation = "add"
	StockSubtract StockOperation = "subtract"
)

// StockAdjustment is a request to change a product's stock by Quantity
type StockAdjustment struct {
	Quantity  int            `json:"quantity" validate:"gte=0"`
	Operation StockOperation `json:"operation" validate:"required,oneof=add subtract"`
}

// NewStockAdjustment builds a validated adjustment. An empty operation means add.
func NewStockAdjustment(quantity int, operation StockOperation) (StockAdjustment, error) {
	if operation == "" {
		operation = StockAdd
	}
	adj := StockAdjustment{Quantity: quantity, Operation: operation}
	if err := shared.Validate(adj); err != nil {
		return StockAdjustment{}, err
	}
	return adj, nil
}

// Delta returns the signed change to apply to stock
func (a StockAdjustment) Delta() int {
	if a.Operation == StockSubtract {
		return -a.Quantity
	}
	return a.Quantity
}
