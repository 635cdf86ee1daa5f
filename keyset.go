package catalogpager

import (
	"fmt"

	"github.com/samber/lo"
)

// BuildKeysetPlan turns a page request into a plan over the entity.
//
// The inner plan seeks past the cursor key with a strict comparison, scans in
// the cursor's direction and takes Items rows. For Before this yields the
// rows closest to the cursor first. The outer plan re-sorts the page by the
// identity column ascending, so rows always come back in canonical order
// regardless of the direction the caller paged in:
//
//	SELECT <cols> FROM (
//		SELECT <table.cols> FROM <table> [JOIN <join_table> ON ...]
//		WHERE <table.id> {>|<} ? [AND <parent_key> = ?]
//		ORDER BY <table.id> {ASC|DESC} LIMIT <items>
//	) AS page ORDER BY <id> ASC
//
// A nil parent lists the whole collection. A non-nil parent on a descriptor
// without a ParentScope fails with ErrNoParentScope.
func BuildKeysetPlan(desc EntityDescriptor, parent *Key, filter PageFilter) (*QueryPlan, error) {
	cursor := filter.Cursor
	if cursor == nil {
		cursor = After(MinKey)
	}

	seek := seekOperator(cursor)
	predicates := Conjunction{{
		Column:   desc.QualifiedID(),
		Operator: seek,
		Value:    cursor.Key(),
	}}

	source := Source{Table: desc.Table}
	if parent != nil {
		scope, err := desc.ScopePredicate(*parent)
		if err != nil {
			return nil, err
		}

		predicates = append(predicates, scope)
		source.Join = desc.joinClause()
	}

	inner := &QueryPlan{
		Source:     source,
		Columns:    desc.QualifiedColumns(),
		Predicates: predicates,
		Order:      OrderBy{Column: desc.QualifiedID(), Direction: seek.ForOrdering()},
		Limit:      lo.Ternary(filter.Items < 0, 0, filter.Items),
	}

	outer := &QueryPlan{
		Source:  Source{Subplan: inner, Alias: DefaultSubplanAlias},
		Columns: append([]string(nil), desc.Columns...),
		Order:   OrderBy{Column: desc.IDColumn, Direction: DirectionASC},
		Limit:   NoLimit,
	}

	if err := outer.Validate(); err != nil {
		return nil, fmt.Errorf("%w: entity '%s': %v", ErrConfiguration, desc.Name, err)
	}

	return outer, nil
}

// KeysetBuilder resolves entity names against a Catalog before building.
// It holds no mutable state and is safe for concurrent use.
type KeysetBuilder struct {
	catalog *Catalog
}

func NewKeysetBuilder(catalog *Catalog) *KeysetBuilder {
	return &KeysetBuilder{catalog: catalog}
}

// Build returns the plan listing one page of the named entity.
func (b *KeysetBuilder) Build(entity string, parent *Key, filter PageFilter) (*QueryPlan, error) {
	desc, err := b.catalog.Describe(entity)
	if err != nil {
		return nil, err
	}

	return BuildKeysetPlan(desc, parent, filter)
}

// Catalog returns the catalog the builder resolves names against.
func (b *KeysetBuilder) Catalog() *Catalog {
	return b.catalog
}

// Edges holds the cursors of the pages adjacent to a returned page.
type Edges struct {
	// Next resumes after the last returned row.
	Next PageCursor
	// Prev resumes before the first returned row.
	Prev PageCursor
}

// PageEdges returns the cursors adjacent to rows, which must be in ascending
// key order as returned by a keyset plan. Both are nil for an empty page.
func PageEdges[T any](rows []T, key func(T) Key) Edges {
	if len(rows) == 0 {
		return Edges{}
	}

	return Edges{
		Next: After(key(lo.LastOrEmpty(rows))),
		Prev: Before(key(rows[0])),
	}
}
