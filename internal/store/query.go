package store

import (
	"fmt"
	"net/url"
	"strings"
)

// Query builds the filter portion of a store request. Filters are kept in
// insertion order so the rendered query string is deterministic, which the
// tests rely on.
type Query struct {
	filters []filter
	order   []string
	sel     string
	limit   *int
	offset  *int
}

type filter struct {
	column string
	op     string
	value  string
}

// NewQuery returns an empty Query.
func NewQuery() Query { return Query{} }

// Eq adds an equality filter on column.
func (q Query) Eq(column string, value any) Query {
	q.filters = append(q.filters, filter{column, "eq", fmt.Sprint(value)})
	return q
}

// Or adds a disjunction over equality filters, rendered as the store's
// or=(a.eq.x,b.eq.y) syntax. Pairs alternate column, value.
func (q Query) Or(pairs ...any) Query {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, fmt.Sprintf("%v.eq.%v", pairs[i], pairs[i+1]))
	}
	q.filters = append(q.filters, filter{"or", "", "(" + strings.Join(parts, ",") + ")"})
	return q
}

// OrderAsc sorts ascending by column.
func (q Query) OrderAsc(column string) Query {
	q.order = append(q.order, column+".asc")
	return q
}

// OrderDesc sorts descending by column.
func (q Query) OrderDesc(column string) Query {
	q.order = append(q.order, column+".desc")
	return q
}

// Select restricts the returned columns.
func (q Query) Select(columns string) Query {
	q.sel = columns
	return q
}

// Limit caps the number of returned rows.
func (q Query) Limit(n int) Query {
	q.limit = &n
	return q
}

// Offset skips n rows.
func (q Query) Offset(n int) Query {
	q.offset = &n
	return q
}

// Encode renders the query string without a leading "?".
func (q Query) Encode() string {
	var parts []string
	if q.sel != "" {
		parts = append(parts, "select="+url.QueryEscape(q.sel))
	}
	for _, f := range q.filters {
		if f.op == "" {
			parts = append(parts, f.column+"="+url.QueryEscape(f.value))
			continue
		}
		parts = append(parts, f.column+"="+f.op+"."+url.QueryEscape(f.value))
	}
	if len(q.order) > 0 {
		parts = append(parts, "order="+url.QueryEscape(strings.Join(q.order, ",")))
	}
	if q.limit != nil {
		parts = append(parts, fmt.Sprintf("limit=%d", *q.limit))
	}
	if q.offset != nil {
		parts = append(parts, fmt.Sprintf("offset=%d", *q.offset))
	}
	return strings.Join(parts, "&")
}
