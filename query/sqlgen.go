package query

import (
	"fmt"
	"strings"
)

// DefaultLimit is the row limit applied when Bounds.Limit is unset.
const DefaultLimit = 100

// Bounds holds the numeric filters attached to a compiled query. Nil
// pointer fields mean the corresponding bound is absent. A zero Limit
// falls back to DefaultLimit.
type Bounds struct {
	// MagnitudeLower and MagnitudeUpper bound the rupture magnitude.
	MagnitudeLower *float64
	MagnitudeUpper *float64
	// RateLower and RateUpper bound the yearly rupture rate.
	RateLower *float64
	RateUpper *float64
	// FaultCountLimit caps the number of distinct parent faults in a
	// rupture. Useful for finding ruptures containing precisely the
	// faults named in the expression.
	FaultCountLimit *int
	// Limit caps the number of returned rows.
	Limit int
}

// CompiledQuery is a SQL statement together with its positional parameters.
// Parameters appear in the exact left-to-right order of the ?-placeholders
// in SQL.
type CompiledQuery struct {
	SQL    string
	Params []any
}

// faultPredicate is the SQL emitted per leaf: the rupture's grouped fault
// rows contain at least one row for the named parent fault.
const faultPredicate = "SUM(CASE WHEN parent_fault.name = ? THEN 1 ELSE 0 END) > 0"

// PredicateSQL lowers an expression tree to a SQL boolean predicate over
// the grouped rupture/fault join. Every composite node is parenthesized so
// the grouping is explicit regardless of the engine's own precedence. The
// leaf placeholders appear in the same depth-first left-to-right order as
// FaultNames reports the leaves.
func PredicateSQL(n Node) string {
	switch n := n.(type) {
	case *Leaf:
		return faultPredicate
	case *Not:
		return fmt.Sprintf("(NOT %s)", PredicateSQL(n.Child))
	case *BinOpExpr:
		return fmt.Sprintf("(%s) %s (%s)", PredicateSQL(n.Left), n.Op, PredicateSQL(n.Right))
	}
	return ""
}

// Compile assembles the full rupture search statement for an already parsed
// expression tree. It is total: given a valid tree and bounds it cannot
// fail.
//
// The statement joins rupture, rupture_faults, fault and parent_fault,
// groups by rupture, and filters grouped rows with the compiled predicate.
// The parameter order is fixed: magnitude bounds, rate bounds, the fault
// count limit, the leaf fault names in tree order, and finally the row
// limit.
func Compile(tree Node, bounds Bounds) CompiledQuery {
	var params []any

	var conditions strings.Builder
	if bounds.MagnitudeLower != nil {
		conditions.WriteString(" AND rupture.magnitude >= ?")
		params = append(params, *bounds.MagnitudeLower)
	}
	if bounds.MagnitudeUpper != nil {
		conditions.WriteString(" AND rupture.magnitude <= ?")
		params = append(params, *bounds.MagnitudeUpper)
	}
	if bounds.RateLower != nil {
		conditions.WriteString(" AND rupture.rate >= ?")
		params = append(params, *bounds.RateLower)
	}
	if bounds.RateUpper != nil {
		conditions.WriteString(" AND rupture.rate <= ?")
		params = append(params, *bounds.RateUpper)
	}

	faultCountExpr := ""
	if bounds.FaultCountLimit != nil {
		faultCountExpr = "COUNT(DISTINCT parent_fault.parent_id) <= ? AND "
		params = append(params, *bounds.FaultCountLimit)
	}

	sql := fmt.Sprintf(`SELECT
    rupture.rupture_id, rupture.magnitude, rupture.area, rupture.len, rupture.rate
FROM rupture
JOIN
    rupture_faults ON rupture.rupture_id = rupture_faults.rupture_id
JOIN
    fault ON rupture_faults.fault_id = fault.fault_id
JOIN
    parent_fault ON fault.parent_id = parent_fault.parent_id
WHERE rupture.rate IS NOT NULL%s
GROUP BY rupture.rupture_id
HAVING %s(%s)
ORDER BY rupture.rate DESC NULLS LAST
LIMIT ?`, conditions.String(), faultCountExpr, PredicateSQL(tree))

	for _, name := range FaultNames(tree) {
		params = append(params, name)
	}

	limit := bounds.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	params = append(params, limit)

	return CompiledQuery{SQL: sql, Params: params}
}

// ToSQL parses a search expression and compiles it against the given
// bounds. Lex and parse errors surface unchanged; no SQL is produced for a
// malformed expression.
func ToSQL(expression string, bounds Bounds) (string, []any, error) {
	tree, err := Parse(expression)
	if err != nil {
		return "", nil, err
	}
	compiled := Compile(tree, bounds)
	return compiled.SQL, compiled.Params, nil
}
