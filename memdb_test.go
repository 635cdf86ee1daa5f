package catalogpager

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// memDB evaluates query plans over in-memory tables. Rows of a table are
// keyed by bare column name.
type memDB map[string][]map[string]any

var _joinRegexp = regexp.MustCompile(`^JOIN (\w+) ON (\w+)\.(\w+) = (\w+)\.(\w+)$`)

func bareColumn(column string) string {
	if i := strings.LastIndexByte(column, '.'); i >= 0 {
		return column[i+1:]
	}

	return column
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case Key:
		return CompareKeys(av, b.(Key))
	case int:
		bv := b.(int)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case string:
		return strings.Compare(av, b.(string))
	default:
		panic(fmt.Sprintf("memdb: cannot compare %T", a))
	}
}

// source returns rows keyed by the column names visible to the plan.
func (m memDB) source(p *QueryPlan) []map[string]any {
	if p.Source.Subplan != nil {
		return m.run(p.Source.Subplan)
	}

	table := p.Source.Table
	var rows []map[string]any
	for _, r := range m[table] {
		qualified := make(map[string]any, len(r))
		for c, v := range r {
			qualified[table+"."+c] = v
			qualified[c] = v
		}
		rows = append(rows, qualified)
	}

	if p.Source.Join == "" {
		return rows
	}

	match := _joinRegexp.FindStringSubmatch(p.Source.Join)
	if match == nil {
		panic("memdb: unsupported join " + p.Source.Join)
	}
	joinTable, joinCol, entityCol := match[1], match[3], match[5]

	var joined []map[string]any
	for _, r := range rows {
		for _, j := range m[joinTable] {
			if compareValues(j[joinCol], r[table+"."+entityCol]) != 0 {
				continue
			}
			out := make(map[string]any, len(r)+len(j))
			for c, v := range r {
				out[c] = v
			}
			for c, v := range j {
				out[joinTable+"."+c] = v
			}
			joined = append(joined, out)
		}
	}

	return joined
}

func (m memDB) run(p *QueryPlan) []map[string]any {
	var rows []map[string]any

	for _, r := range m.source(p) {
		ok := true
		for _, pr := range p.Predicates {
			cmp := compareValues(r[pr.Column], pr.Value)
			switch pr.Operator {
			case OperatorGT:
				ok = ok && cmp > 0
			case OperatorLT:
				ok = ok && cmp < 0
			case OperatorEq:
				ok = ok && cmp == 0
			}
		}
		if ok {
			rows = append(rows, r)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		cmp := compareValues(rows[i][p.Order.Column], rows[j][p.Order.Column])
		if p.Order.Direction == DirectionDESC {
			return cmp > 0
		}
		return cmp < 0
	})

	if p.Limit != NoLimit && len(rows) > p.Limit {
		rows = rows[:p.Limit]
	}

	projected := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		out := make(map[string]any, len(p.Columns))
		for _, c := range p.Columns {
			out[bareColumn(c)] = r[c]
		}
		projected = append(projected, out)
	}

	return projected
}

func (m memDB) keys(p *QueryPlan, column string) []Key {
	var ret []Key
	for _, r := range m.run(p) {
		ret = append(ret, r[column].(Key))
	}

	return ret
}
