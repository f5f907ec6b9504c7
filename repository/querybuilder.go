package repository

import "strings"

// Fragment is one WHERE predicate together with the arguments that belong
// to it. Binding args to their fragment keeps placeholder order correct by
// construction, instead of tracking positional parameter counters by hand.
type Fragment struct {
	Expr string
	Args []any
}

// QueryBuilder assembles a SELECT statement from a fixed SELECT/FROM head,
// an optional list of AND-joined predicate fragments, an ORDER BY (which
// may carry its own arguments) and a LIMIT.
type QueryBuilder struct {
	head      string
	fragments []Fragment
	orderBy   string
	orderArgs []any
	groupBy   string
	limit     int
}

// NewQueryBuilder starts a builder from the SELECT ... FROM ... JOIN head.
func NewQueryBuilder(head string) *QueryBuilder {
	return &QueryBuilder{head: head}
}

// Where appends a predicate fragment with its arguments.
func (b *QueryBuilder) Where(expr string, args ...any) *QueryBuilder {
	b.fragments = append(b.fragments, Fragment{Expr: expr, Args: args})
	return b
}

// GroupBy sets the GROUP BY expression.
func (b *QueryBuilder) GroupBy(expr string) *QueryBuilder {
	b.groupBy = expr
	return b
}

// OrderBy sets the ORDER BY expression. The expression may reference
// placeholders (e.g. a relevance CASE over a LIKE pattern); their
// arguments follow all WHERE arguments in the final statement.
func (b *QueryBuilder) OrderBy(expr string, args ...any) *QueryBuilder {
	b.orderBy = expr
	b.orderArgs = args
	return b
}

// Limit caps the result set; zero means no LIMIT clause.
func (b *QueryBuilder) Limit(n int) *QueryBuilder {
	b.limit = n
	return b
}

// Build renders the statement and the flat argument slice, in clause
// order: WHERE args (fragment order), then ORDER BY args, then the limit.
func (b *QueryBuilder) Build() (string, []any) {
	var sb strings.Builder
	var args []any

	sb.WriteString(b.head)

	if len(b.fragments) > 0 {
		exprs := make([]string, 0, len(b.fragments))
		for _, f := range b.fragments {
			exprs = append(exprs, f.Expr)
			args = append(args, f.Args...)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(exprs, " AND "))
	}

	if b.groupBy != "" {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(b.groupBy)
	}

	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
		args = append(args, b.orderArgs...)
	}

	if b.limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, b.limit)
	}

	return sb.String(), args
}
