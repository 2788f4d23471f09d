package entity

import "regexp"

type OrderFactor string

const (
	Ascending  OrderFactor = "ASC"
	Descending OrderFactor = "DESC"
)

func (of *OrderFactor) String() string {
	if of != nil {
		if *of == Ascending {
			return "ASC"
		}
		return "DESC"
	}
	return "DESC"
}

// SortFactor names a waitlist field entries can be ordered by.
// Extension field names are valid sort factors too; the store decides.
type SortFactor string

const (
	SortById          SortFactor = "id"
	SortByEmail       SortFactor = "email"
	SortByStatus      SortFactor = "status"
	SortByRequestedAt SortFactor = "requestedAt"
	SortByProcessedAt SortFactor = "processedAt"
	SortByProcessedBy SortFactor = "processedBy"
)

// FilterOperator is the comparison applied by a WaitlistFilter.
type FilterOperator string

const (
	OperatorEq FilterOperator = "eq"
	OperatorNe FilterOperator = "ne"
)

// WaitlistFilter compares a single field against a value.
// Field is either a core field name (same names as SortFactor) or an extension field name.
type WaitlistFilter struct {
	Field    string
	Operator FilterOperator
	Value    any
}

// WaitlistQuery is a conjunctive filter set with sort and pagination.
type WaitlistQuery struct {
	Filters []WaitlistFilter
	SortBy  SortFactor
	Order   OrderFactor
	Limit   int
	Offset  int
}

// IsCoreField reports whether the field name refers to a core waitlist column.
func IsCoreField(field string) bool {
	switch SortFactor(field) {
	case SortById, SortByEmail, SortByStatus, SortByRequestedAt, SortByProcessedAt, SortByProcessedBy:
		return true
	}
	return false
}

// extension field names end up in JSON paths and query params, keep them to plain identifiers
var fieldNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,63}$`)

// IsValidFieldName reports whether name can be used as an extension field name.
func IsValidFieldName(name string) bool {
	return fieldNamePattern.MatchString(name)
}
