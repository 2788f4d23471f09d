package waitlist

import (
	"sort"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/jekabolt/grbpwr-waitlist/internal/entity"
	gerr "github.com/jekabolt/grbpwr-waitlist/internal/errors"
)

// SearchParams is an admin search request. Zero values mean "use the default".
type SearchParams struct {
	Status        string
	Email         string
	SortBy        string
	SortDirection string
	Page          int
	Limit         int
	// Fields are raw extension filter values keyed by field name.
	Fields map[string]string
}

// Search is a built store query plus the effective page and limit.
type Search struct {
	Query entity.WaitlistQuery
	Page  int
	Limit int
}

// QueryBuilder turns search params into store queries.
type QueryBuilder struct {
	schema       *Schema
	defaultLimit int
	maxLimit     int
}

func NewQueryBuilder(schema *Schema, defaultLimit, maxLimit int) *QueryBuilder {
	return &QueryBuilder{
		schema:       schema,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Build validates p and returns the query. Every supplied field becomes an equality filter.
// The sort field isn't checked here; the store rejects what it can't order by.
func (qb *QueryBuilder) Build(p SearchParams) (Search, error) {
	var violations []gerr.FieldViolation
	violate := func(field, desc string) {
		violations = append(violations, gerr.FieldViolation{Field: field, Description: desc})
	}

	var filters []entity.WaitlistFilter
	if p.Status != "" {
		if !entity.IsValidWaitlistStatus(p.Status) {
			violate("status", "Must be one of pending, approved, rejected.")
		} else {
			filters = append(filters, eq(string(entity.SortByStatus), entity.WaitlistStatus(p.Status)))
		}
	}
	if email := NormalizeEmail(p.Email); email != "" {
		filters = append(filters, eq(string(entity.SortByEmail), email))
	}

	names := make([]string, 0, len(p.Fields))
	for name := range p.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f, ok := qb.schema.Field(name)
		if !ok {
			violate(name, "Unknown filter field.")
			continue
		}
		v, err := coerceQueryValue(f.Type, p.Fields[name])
		if err != nil {
			violate(name, err.Error())
			continue
		}
		filters = append(filters, eq(name, v))
	}

	sortBy := entity.SortFactor(p.SortBy)
	if sortBy == "" {
		sortBy = entity.SortByRequestedAt
	}

	order := entity.Descending
	switch strings.ToLower(p.SortDirection) {
	case "", "desc":
	case "asc":
		order = entity.Ascending
	default:
		violate("sortDirection", "Must be asc or desc.")
	}

	page := p.Page
	switch {
	case page == 0:
		page = 1
	case page < 0:
		violate("page", "Must be no less than 1.")
	}

	limit := p.Limit
	switch {
	case limit == 0:
		limit = qb.defaultLimit
	case limit < 0:
		violate("limit", "Must be no less than 1.")
	case limit > qb.maxLimit:
		limit = qb.maxLimit
	}

	if len(violations) > 0 {
		return Search{}, gerr.ValidationFailed.WithDetails(violations...)
	}

	return Search{
		Query: entity.WaitlistQuery{
			Filters: filters,
			SortBy:  sortBy,
			Order:   order,
			Limit:   limit,
			Offset:  offset(page, limit),
		},
		Page:  page,
		Limit: limit,
	}, nil
}

func offset(page, limit int) int {
	if page == 1 {
		return 0
	}
	return (page - 1) * limit
}

func eq(field string, v any) entity.WaitlistFilter {
	return entity.WaitlistFilter{Field: field, Operator: entity.OperatorEq, Value: v}
}

type coerceError string

func (e coerceError) Error() string { return string(e) }

// coerceQueryValue parses a raw query string value into the stored form of the field type.
func coerceQueryValue(t entity.FieldType, raw string) (any, error) {
	switch t {
	case entity.FieldTypeNumber:
		f, err := govalidator.ToFloat(raw)
		if err != nil || !govalidator.IsFloat(raw) {
			return nil, coerceError("Must be a number.")
		}
		return f, nil
	case entity.FieldTypeBoolean:
		b, err := govalidator.ToBoolean(raw)
		if err != nil {
			return nil, coerceError("Must be a boolean.")
		}
		return b, nil
	case entity.FieldTypeDate:
		if !govalidator.IsRFC3339(raw) {
			return nil, coerceError("Must be an RFC3339 date.")
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, coerceError("Must be an RFC3339 date.")
		}
		return formatDate(ts), nil
	case entity.FieldTypeStringArray:
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	}
	return raw, nil
}
