package catalogpager

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Find executes the plan on db and scans the rows into T. Errors reported by
// gorm are returned as *StorageError. A plan that can never return a row is
// answered without a round trip.
func Find[T any](ctx context.Context, db *gorm.DB, plan *QueryPlan) ([]T, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	if plan.IsEmpty() {
		return []T{}, nil
	}

	var rows []T
	if err := plan.Apply(db.WithContext(ctx)).Find(&rows).Error; err != nil {
		return nil, wrapStorage(err)
	}

	if rows == nil {
		rows = []T{}
	}

	return rows, nil
}

// FindKeyset builds the keyset plan for the named entity and executes it.
func FindKeyset[T any](
	ctx context.Context,
	db *gorm.DB,
	builder *KeysetBuilder,
	entity string,
	parent *Key,
	filter PageFilter,
) ([]T, error) {
	plan, err := builder.Build(entity, parent, filter)
	if err != nil {
		return nil, err
	}

	return Find[T](ctx, db, plan)
}
