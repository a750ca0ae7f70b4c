package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"fit1-backend/internal/apperr"
	"fit1-backend/internal/database"
)

// collection is embedded by every repo.
type collection struct {
	pool *database.Pool
	name string
}

func (c collection) get(ctx context.Context) (*mongo.Collection, error) {
	coll, err := c.pool.Collection(ctx, c.name)
	if err != nil {
		return nil, storageErr("open "+c.name, err)
	}
	return coll, nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, apperr.ErrPersistence, err)
}
