package catalogpager

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// DefaultSubplanAlias is the alias of a wrapped inner plan.
const DefaultSubplanAlias = "page"

// Source is what a plan selects from: either a table, optionally joined, or
// another plan.
type Source struct {
	Table string
	// Join is a complete JOIN clause rendered verbatim after Table.
	Join string

	Subplan *QueryPlan
	// Alias names the subplan. Empty means DefaultSubplanAlias.
	Alias string
}

func (s Source) alias() string {
	if s.Alias == "" {
		return DefaultSubplanAlias
	}

	return s.Alias
}

// QueryPlan is a storage-agnostic description of a bounded, ordered query.
// It owns no connection and has no side effects. Plans are built fresh per
// request and discarded after execution.
type QueryPlan struct {
	Source     Source
	Columns    []string
	Predicates Conjunction
	Order      OrderBy
	// Limit is the maximum number of rows, or NoLimit.
	Limit int
}

// IsSubplanWrapped reports whether the plan selects from another plan.
func (p *QueryPlan) IsSubplanWrapped() bool {
	return p != nil && p.Source.Subplan != nil
}

// IsEmpty reports whether the plan can never return a row, i.e. it or its
// innermost plan is limited to zero rows.
func (p *QueryPlan) IsEmpty() bool {
	if p == nil {
		return true
	}
	if p.Limit == 0 {
		return true
	}

	return p.IsSubplanWrapped() && p.Source.Subplan.IsEmpty()
}

// Validate checks the plan is well formed.
func (p *QueryPlan) Validate() error {
	if p == nil {
		return fmt.Errorf("query plan is nil")
	}

	if (p.Source.Table == "") == (p.Source.Subplan == nil) {
		return fmt.Errorf("query plan must select from exactly one table or subplan")
	}
	if p.Source.Join != "" && p.Source.Subplan != nil {
		return fmt.Errorf("query plan cannot join a subplan")
	}
	if p.Source.Table != "" {
		if err := validateColumnName(p.Source.Table); err != nil {
			return fmt.Errorf("invalid source table: %w", err)
		}
	}
	if p.Source.Subplan != nil {
		if err := validateColumnName(p.Source.alias()); err != nil {
			return fmt.Errorf("invalid subplan alias: %w", err)
		}
		if err := p.Source.Subplan.Validate(); err != nil {
			return fmt.Errorf("invalid subplan: %w", err)
		}
	}

	if len(p.Columns) == 0 {
		return fmt.Errorf("query plan has no columns")
	}
	for _, c := range p.Columns {
		if err := validateColumnName(c); err != nil {
			return err
		}
	}
	for _, pr := range p.Predicates {
		if err := pr.validate(); err != nil {
			return err
		}
	}
	if p.Limit < NoLimit {
		return fmt.Errorf("invalid query plan limit %d", p.Limit)
	}

	return p.Order.validate()
}

// Apply renders the plan onto a gorm query. Subplans are built in a new
// session of db, so db may carry a context but should carry no conditions.
func (p *QueryPlan) Apply(db *gorm.DB) *gorm.DB {
	if p.Source.Subplan != nil {
		inner := p.Source.Subplan.Apply(db.Session(&gorm.Session{NewDB: true}))
		db = db.Table(fmt.Sprintf("(?) AS %s", p.Source.alias()), inner)
	} else {
		db = db.Table(p.Source.Table)
		if p.Source.Join != "" {
			db = db.Joins(p.Source.Join)
		}
	}

	db = db.Select(strings.Join(p.Columns, ", "))

	if exprs := p.Predicates.toGORMExpressions(); len(exprs) > 0 {
		db = db.Clauses(exprs...)
	}

	db = db.Order(p.Order.String())

	if p.Limit != NoLimit {
		db = db.Limit(p.Limit)
	}

	return db
}

// ToSQL returns the statement of the plan with "?" placeholders and the
// values to bind, in order.
//
// Usage:
//
//	query, args := plan.ToSQL()
//	rows, err := sqlDB.QueryContext(ctx, query, args...)
func (p *QueryPlan) ToSQL() (string, []driver.Value) {
	var (
		sb   strings.Builder
		args []driver.Value
	)

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(p.Columns, ", "))
	sb.WriteString(" FROM ")

	if p.Source.Subplan != nil {
		innerSQL, innerArgs := p.Source.Subplan.ToSQL()
		sb.WriteString("(")
		sb.WriteString(innerSQL)
		sb.WriteString(") AS ")
		sb.WriteString(p.Source.alias())
		args = append(args, innerArgs...)
	} else {
		sb.WriteString(p.Source.Table)
		if p.Source.Join != "" {
			sb.WriteString(" ")
			sb.WriteString(p.Source.Join)
		}
	}

	if len(p.Predicates) > 0 {
		where, whereArgs := p.Predicates.toSQLClause()
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
		args = append(args, whereArgs...)
	}

	sb.WriteString(" ORDER BY ")
	sb.WriteString(p.Order.String())

	if p.Limit != NoLimit {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(p.Limit))
	}

	return sb.String(), args
}
