package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor scopes one unit of work. fn receives the transaction handle
// to pass into mutating repository methods; the transaction is committed
// when fn returns nil and rolled back on error or panic.
type Transactor interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return t.db.WithContext(ctx).Transaction(fn)
}
