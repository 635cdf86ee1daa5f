package catalogpager

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"gorm.io/gorm/clause"
)

type (
	// Predicate is a single condition of the form "Column Operator Value".
	Predicate struct {
		Column   string
		Operator Operator
		Value    any
	}

	// Conjunction is a list of predicates joined by AND. An empty
	// conjunction matches every row.
	Conjunction []Predicate
)

// toGORMExpression converts a predicate of the form Operator(Column, Value)
// into an SQL condition "Column Operator ?" represented as a clause.Expression.
//
// Example:
//
//	Predicate{Column: "books.id", Operator: ">", Value: key}
//
// Result:
//
//	"books.id > ?"
func (p Predicate) toGORMExpression() clause.Expression {
	sqlClause, arg := p.toSQLClause()

	return clause.Expr{
		SQL:  sqlClause,
		Vars: []any{arg},
	}
}

// toSQLClause returns the SQL string and the value for the placeholder.
//
// Example:
//
//	Predicate{Column: "books.id", Operator: ">", Value: key}
//
// Result:
//
//	("books.id > ?", key)
func (p Predicate) toSQLClause() (string, driver.Value) {
	return fmt.Sprintf("%s %s ?", p.Column, p.Operator), p.Value
}

func (p Predicate) validate() error {
	if p.Operator != OperatorEq && !p.Operator.Valid() {
		return fmt.Errorf("invalid predicate operator '%s'", p.Operator)
	}

	return validateColumnName(p.Column)
}

// toGORMExpressions returns one expression per predicate. GORM joins
// repeated WHERE clauses with AND.
func (c Conjunction) toGORMExpressions() []clause.Expression {
	ret := make([]clause.Expression, 0, len(c))
	for _, p := range c {
		ret = append(ret, p.toGORMExpression())
	}

	return ret
}

// toSQLClause converts a conjunction (P1, P2, P3) into "P1 AND P2 AND P3"
// with the corresponding values.
//
// Example:
//
//	Conjunction{
//		{Column: "tags.id", Operator: ">", Value: k},
//		{Column: "books_tags.book_id", Operator: "=", Value: b},
//	}
//
// Result:
//
//	("tags.id > ? AND books_tags.book_id = ?", [k, b])
func (c Conjunction) toSQLClause() (string, []driver.Value) {
	andClauses := make([]string, 0, len(c))
	andValues := make([]driver.Value, 0, len(c))

	for _, p := range c {
		andClause, andValue := p.toSQLClause()
		andClauses = append(andClauses, andClause)
		andValues = append(andValues, andValue)
	}

	if len(andClauses) == 0 {
		return "TRUE", nil
	}

	return strings.Join(andClauses, " AND "), andValues
}
