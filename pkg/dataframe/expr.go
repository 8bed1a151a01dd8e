package dataframe

import "strings"

// Expr is a column-level expression usable with WithColumn. Expressions are
// built from the constructors below; literal values always travel as bound
// arguments, never as interpolated SQL text.
type Expr struct {
	sql  string
	args []any
}

// Lit is a constant-valued expression.
func Lit(v any) Expr {
	return Expr{sql: "?", args: []any{v}}
}

// Col references an existing column.
func Col(name string) Expr {
	return Expr{sql: quoteIdent(name)}
}

// Sub is the difference a - b.
func Sub(a, b Expr) Expr {
	return binary(a, "-", b)
}

// Add is the sum a + b.
func Add(a, b Expr) Expr {
	return binary(a, "+", b)
}

// Mul is the product a * b.
func Mul(a, b Expr) Expr {
	return binary(a, "*", b)
}

// Equals is the comparison a = b, evaluating to 1 or 0.
func Equals(a, b Expr) Expr {
	return binary(a, "=", b)
}

// DateOf extracts the calendar date (YYYY-MM-DD) from an ISO-8601 timestamp
// expression.
func DateOf(e Expr) Expr {
	return Expr{sql: "date(" + e.sql + ")", args: e.args}
}

// ConcatWS concatenates the given expressions with sep between each pair.
func ConcatWS(sep string, parts ...Expr) Expr {
	if len(parts) == 0 {
		return Lit("")
	}
	out := parts[0]
	for _, p := range parts[1:] {
		joined := Expr{
			sql:  "(" + out.sql + " || ? || " + p.sql + ")",
			args: append(append(append([]any(nil), out.args...), sep), p.args...),
		}
		out = joined
	}
	return out
}

func binary(a Expr, op string, b Expr) Expr {
	return Expr{
		sql:  "(" + a.sql + " " + op + " " + b.sql + ")",
		args: append(append([]any(nil), a.args...), b.args...),
	}
}

// Cond is a row predicate usable with Filter. Like Expr, values are bound as
// arguments so a predicate can never be malformed by its inputs.
type Cond struct {
	sql  string
	args []any
}

// Eq matches rows where the column equals v. A nil v matches SQL NULL.
func Eq(column string, v any) Cond {
	if v == nil {
		return IsNull(column)
	}
	return Cond{sql: quoteIdent(column) + " = ?", args: []any{v}}
}

// IsNull matches rows where the column is NULL.
func IsNull(column string) Cond {
	return Cond{sql: quoteIdent(column) + " IS NULL"}
}

// IsTrue matches rows where the column holds a true (non-zero, non-null)
// value.
func IsTrue(column string) Cond {
	return Cond{sql: quoteIdent(column)}
}

// And is the conjunction of the given predicates.
func And(conds ...Cond) Cond {
	return combine("AND", conds)
}

// Or is the disjunction of the given predicates.
func Or(conds ...Cond) Cond {
	return combine("OR", conds)
}

func combine(op string, conds []Cond) Cond {
	switch len(conds) {
	case 0:
		// Empty conjunction is vacuously true, empty disjunction false; both
		// reduce to a constant that keeps generated SQL well formed.
		if op == "AND" {
			return Cond{sql: "1"}
		}
		return Cond{sql: "0"}
	case 1:
		return conds[0]
	}
	parts := make([]string, len(conds))
	var args []any
	for i, c := range conds {
		parts[i] = c.sql
		args = append(args, c.args...)
	}
	return Cond{sql: "(" + strings.Join(parts, " "+op+" ") + ")", args: args}
}
