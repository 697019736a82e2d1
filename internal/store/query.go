package store

// SortDirection orders a result set ascending or descending on one field.
type SortDirection string

// Sort directions accepted by the stores.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortClause is one ordering directive. Clauses apply in sequence.
type SortClause struct {
	Field     string
	Direction SortDirection
}

// FilterOp selects how a filter value is matched against a field.
type FilterOp string

// Filter operators accepted by the stores.
const (
	// FilterEquals matches the field value exactly.
	FilterEquals FilterOp = "equals"

	// FilterContains matches any field value containing the filter value as
	// a substring.
	FilterContains FilterOp = "contains"
)

// Filter is one predicate over a single field.
type Filter struct {
	Field string
	Op    FilterOp
	Value string
}

// QueryOptions carries the dynamic portion of a list query: an ordered
// sequence of sort clauses and a set of filter predicates. It is built fresh
// per request and discarded after the query executes. The zero value means
// "no filtering or sorting" and is always safe to pass.
type QueryOptions struct {
	OrderBy []SortClause
	Where   []Filter
}
