package catalogpager

import "fmt"

// Operator is the comparison of a plan predicate.
type Operator string

const (
	// OperatorGT seeks forward, past an After cursor.
	OperatorGT Operator = ">"
	// OperatorLT seeks backward, before a Before cursor.
	OperatorLT Operator = "<"

	// OperatorEq constrains a listing to a parent. It never seeks.
	OperatorEq Operator = "="
)

// Valid reports whether o is a seek operator.
func (o Operator) Valid() bool {
	return o == OperatorGT || o == OperatorLT
}

// ForOrdering returns the scan direction that visits the rows matched by a
// seek with o nearest to the cursor first.
func (o Operator) ForOrdering() Direction {
	switch o {
	case OperatorGT:
		return DirectionASC
	case OperatorLT:
		return DirectionDESC
	default:
		panic(fmt.Errorf("operator '%s' does not seek", o))
	}
}
