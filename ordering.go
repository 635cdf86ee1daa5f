package catalogpager

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// Direction defines the sort direction of a plan.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

func (o Direction) ForOperator() Operator {
	switch o {
	case DirectionASC:
		return OperatorGT
	case DirectionDESC:
		return OperatorLT
	default:
		panic(fmt.Errorf("cannot map direction '%s' to operator", o))
	}
}

// OrderBy is the single-column ordering of a plan.
type OrderBy struct {
	Column    string
	Direction Direction
}

// String returns "<column> <direction>".
func (o OrderBy) String() string {
	return fmt.Sprintf("%s %s", o.Column, o.Direction)
}

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", o.Direction)
	}

	return validateColumnName(o.Column)
}

var _availableColumnNameSymbols = append([]rune("_."), lo.AlphanumericCharset...)

// validateColumnName guards against SQL injection: table and column names of
// the catalog are rendered into statements verbatim.
func validateColumnName(name string) error {
	if name == "" {
		return fmt.Errorf("empty column name")
	}

	if !lo.Every(_availableColumnNameSymbols, []rune(name)) {
		return fmt.Errorf("column name contains forbidden symbols '%s'", name)
	}

	return nil
}

func closestName(input string, dataSet []string) string {
	minDist := math.MaxInt
	closest := ""

	for _, name := range dataSet {
		dist := levenshtein([]rune(name), []rune(input))
		if dist < minDist {
			minDist = dist
			closest = name
		}
	}

	return closest
}
