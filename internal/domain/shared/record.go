package shared

import "time"

// BaseAggregateRoot carries the bookkeeping every stored aggregate shares.
//
// ID is assigned by the store on insert and stays empty until then.
// Version starts at 1 and is compared on update for optimistic locking.
// Active is cleared on soft delete; lookups treat inactive records as gone.
type BaseAggregateRoot struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
	Active    bool
}

// NewBaseAggregateRoot stamps a fresh, active record at version 1.
func NewBaseAggregateRoot() BaseAggregateRoot {
	now := time.Now()
	return BaseAggregateRoot{CreatedAt: now, UpdatedAt: now, Version: 1, Active: true}
}

// Touch stamps UpdatedAt with the current time.
func (a *BaseAggregateRoot) Touch() { a.UpdatedAt = time.Now() }

// IncrementVersion bumps the optimistic locking version.
func (a *BaseAggregateRoot) IncrementVersion() { a.Version++ }

// IsActive reports whether the record has not been soft-deleted.
func (a *BaseAggregateRoot) IsActive() bool { return a.Active }

// Deactivate soft-deletes the record. There is no way back.
func (a *BaseAggregateRoot) Deactivate() {
	if a.Active {
		a.Active = false
		a.Touch()
	}
}
