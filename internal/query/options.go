// Package query translates flat request parameters into the sort and filter
// clauses the task store accepts. Field names are validated against a closed
// allow-list before anything reaches the persistence layer, so request input
// can never name an internal column or enable an unintended filter.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/taskin/taskin-api/internal/domain"
	"github.com/taskin/taskin-api/internal/store"
)

const (
	sortPrefix   = "sort-"
	filterPrefix = "filter-"

	// countKey is reserved for the aggregation service. The builder ignores
	// it; it must never be mistaken for a sort or filter parameter.
	countKey = "isCount"
)

// directions maps the wire encoding of a sort direction to its clause value.
// Anything outside this table is rejected rather than silently passed through
// with an undefined direction.
var directions = map[string]store.SortDirection{
	"0": store.SortDesc,
	"1": store.SortAsc,
}

// sortableFields is the closed set of fields a client may sort by.
var sortableFields = map[string]bool{
	"title":     true,
	"state":     true,
	"createdAt": true,
	"updatedAt": true,
}

// filterableFields is the closed set of fields a client may filter by, each
// with its matching semantics: free-text fields match by substring, everything
// else matches exactly.
var filterableFields = map[string]store.FilterOp{
	"title":   store.FilterContains,
	"content": store.FilterContains,
	"state":   store.FilterEquals,
}

// IsCountRequest reports whether params carries the reserved count-only
// signal, telling the aggregation service to short-circuit into a count query
// instead of a record listing.
func IsCountRequest(params map[string]string) bool {
	_, ok := params[countKey]
	return ok
}

// Build parses params into QueryOptions. Keys with the sort- prefix become
// ordering clauses, keys with the filter- prefix become predicates, and
// everything else is ignored. Both collections are empty (not nil) when no
// parameter matches; callers treat that as "no filtering/sorting".
//
// Keys are processed in lexical order so that multi-key sorts are
// deterministic regardless of map iteration.
func Build(params map[string]string) (store.QueryOptions, error) {
	opts := store.QueryOptions{
		OrderBy: []store.SortClause{},
		Where:   []store.Filter{},
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := params[key]
		switch {
		case strings.HasPrefix(key, sortPrefix):
			field := strings.TrimPrefix(key, sortPrefix)
			if !sortableFields[field] {
				return store.QueryOptions{}, fmt.Errorf(
					"%w: cannot sort by %q", domain.ErrValidation, field)
			}
			direction, ok := directions[value]
			if !ok {
				return store.QueryOptions{}, fmt.Errorf(
					"%w: unknown sort direction %q for field %q", domain.ErrValidation, value, field)
			}
			opts.OrderBy = append(opts.OrderBy, store.SortClause{
				Field:     field,
				Direction: direction,
			})

		case strings.HasPrefix(key, filterPrefix):
			field := strings.TrimPrefix(key, filterPrefix)
			op, ok := filterableFields[field]
			if !ok {
				return store.QueryOptions{}, fmt.Errorf(
					"%w: cannot filter by %q", domain.ErrValidation, field)
			}
			opts.Where = append(opts.Where, store.Filter{
				Field: field,
				Op:    op,
				Value: value,
			})
		}
	}

	return opts, nil
}
