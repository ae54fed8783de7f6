package query

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sitecraft/menu-backend/internal/domain"
)

const (
	defaultTake = 50
	maxTake     = 500
)

// rawFilter mirrors the JSON shape of the legacy "filter" parameter.
type rawFilter struct {
	Date     *rawDate  `json:"date"`
	Order    *rawOrder `json:"order"`
	Search   string    `json:"search"`
	Field    string    `json:"field"`
	Name     string    `json:"name"`
	TenantID string    `json:"tenantId"`
}

type rawDate struct {
	Field string `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`
}

type rawOrder struct {
	Field string `json:"field"`
	Way   string `json:"way"`
}

// Parse converts raw HTTP query parameters into a Spec.
//
// Absent parameters default safely: no filter means no restriction, no page
// means no pagination. Parse fails with domain.ErrMalformedQuery only when a
// parameter is present but has an invalid shape. Recognized parameters:
//
//	include  comma-separated relation names, or "*" (may repeat)
//	fields   comma-separated column projection (may repeat)
//	page     1-based page number, enables pagination
//	take     page size / result cap
//	filter   JSON object: date{field,from,to}, order{field,way}, search,
//	         field, name, tenantId
func Parse(values url.Values) (*Spec, error) {
	spec := &Spec{
		Includes: splitList(values["include"]),
		Fields:   splitList(values["fields"]),
	}

	var err error
	if spec.Page, err = parseInt(values.Get("page"), "page"); err != nil {
		return nil, err
	}
	if spec.Take, err = parseInt(values.Get("take"), "take"); err != nil {
		return nil, err
	}

	if raw := values.Get("filter"); raw != "" {
		if err := parseFilter(raw, &spec.Filter); err != nil {
			return nil, err
		}
	}

	spec.normalize()
	return spec, nil
}

// normalize clamps the page size and applies the paginator default.
func (s *Spec) normalize() {
	if s.Page < 0 {
		s.Page = 0
	}
	if s.Take < 0 {
		s.Take = 0
	}
	if s.Take > maxTake {
		s.Take = maxTake
	}
	if s.Page > 0 && s.Take == 0 {
		s.Take = defaultTake
	}
}

func parseFilter(raw string, out *Filter) error {
	// Unknown filter keys are ignored: the admin UI sends extra hints that
	// only matter to other modules.
	var rf rawFilter
	if err := json.Unmarshal([]byte(raw), &rf); err != nil {
		return fmt.Errorf("%w: filter: %v", domain.ErrMalformedQuery, err)
	}

	out.Search = strings.TrimSpace(rf.Search)
	out.Field = strings.TrimSpace(rf.Field)
	out.Name = strings.TrimSpace(rf.Name)

	if rf.TenantID != "" {
		id, err := uuid.Parse(rf.TenantID)
		if err != nil {
			return fmt.Errorf("%w: filter.tenantId %q", domain.ErrMalformedQuery, rf.TenantID)
		}
		out.TenantID = &id
	}

	if rf.Date != nil {
		dr := &DateRange{Field: strings.TrimSpace(rf.Date.Field)}
		if dr.Field == "" {
			dr.Field = "created_at"
		}
		var err error
		if dr.From, err = parseDate(rf.Date.From, "filter.date.from"); err != nil {
			return err
		}
		if dr.To, err = parseDate(rf.Date.To, "filter.date.to"); err != nil {
			return err
		}
		out.Date = dr
	}

	if rf.Order != nil {
		ord := &Order{Field: strings.TrimSpace(rf.Order.Field)}
		if ord.Field == "" {
			ord.Field = "created_at"
		}
		switch strings.ToLower(strings.TrimSpace(rf.Order.Way)) {
		case "", "desc":
			ord.Way = "desc"
		case "asc":
			ord.Way = "asc"
		default:
			return fmt.Errorf("%w: filter.order.way %q", domain.ErrMalformedQuery, rf.Order.Way)
		}
		out.Order = ord
	}

	return nil
}

func parseInt(s, name string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", domain.ErrMalformedQuery, name, s)
	}
	return n, nil
}

func parseDate(s, name string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %q", domain.ErrMalformedQuery, name, s)
}

// splitList flattens repeated comma-separated values into a clean list.
func splitList(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
