// Package query defines the request-scoped query specification: the parsed,
// structured form of list/filter/sort/pagination intent. A Spec is built once
// at the parser boundary and consumed as immutable data everywhere else.
package query

import (
	"time"

	"github.com/google/uuid"
)

// Spec is the structured representation of a raw parameter bag.
// The zero value means "no restriction": no filters, no projection, full
// result set.
type Spec struct {
	// Includes lists relation names to load alongside the records.
	Includes []string

	// Fields restricts the returned columns when non-empty.
	Fields []string

	// Page selects offset pagination when > 0 (1-based page number).
	Page int

	// Take is the page size when paginating, otherwise a cap on the result
	// set. Zero means no cap.
	Take int

	Filter Filter
}

// Filter holds the optional restriction clauses of a Spec. Every field is
// optional; absent fields impose no restriction.
type Filter struct {
	Date     *DateRange
	Order    *Order
	Search   string
	Field    string // column used to resolve a single-record criteria
	Name     string // exact match on the name column
	TenantID *uuid.UUID
}

// DateRange restricts a date column to [From, To], both ends optional.
type DateRange struct {
	Field string // defaults to created_at
	From  *time.Time
	To    *time.Time
}

// Order selects the sort column and direction.
type Order struct {
	Field string
	Way   string // "asc" or "desc"
}

// Relations resolves the include list to the relation names to load.
//
// A literal "*" resolves to the default relation set, which is empty. The
// legacy admin API has always treated wildcard as "defaults", never as "all
// relations", and clients depend on that; keep the behavior.
func (s *Spec) Relations() []string {
	for _, inc := range s.Includes {
		if inc == "*" {
			return nil
		}
	}
	return s.Includes
}

// MatchColumn returns the column a single-record criteria is matched
// against. Defaults to the primary id.
func (s *Spec) MatchColumn() string {
	if s.Filter.Field != "" {
		return s.Filter.Field
	}
	return "id"
}
