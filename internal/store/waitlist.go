package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jekabolt/grbpwr-waitlist/internal/dependency"
	"github.com/jekabolt/grbpwr-waitlist/internal/entity"
)

const waitlistColumns = `id, email, status, requested_at, processed_at, processed_by, extension`

var waitlistCoreColumns = map[entity.SortFactor]string{
	entity.SortById:          "id",
	entity.SortByEmail:       "email",
	entity.SortByStatus:      "status",
	entity.SortByRequestedAt: "requested_at",
	entity.SortByProcessedAt: "processed_at",
	entity.SortByProcessedBy: "processed_by",
}

type waitlistStore struct {
	*MYSQLStore
}

// Waitlist returns an object implementing Waitlist interface
func (ms *MYSQLStore) Waitlist() dependency.Waitlist {
	return &waitlistStore{
		MYSQLStore: ms,
	}
}

// AddWaitlistEntry inserts a new waitlist entry.
// The unique index on email turns concurrent duplicate joins into entity.ErrWaitlistEmailTaken.
func (ws *waitlistStore) AddWaitlistEntry(ctx context.Context, entry *entity.WaitlistEntry) error {
	query := `
	INSERT INTO waitlist (id, email, status, requested_at, processed_at, processed_by, extension)
	VALUES (:id, :email, :status, :requestedAt, :processedAt, :processedBy, :extension)`

	err := ExecNamed(ctx, ws.DB(), query, map[string]any{
		"id":          entry.Id,
		"email":       entry.Email,
		"status":      string(entry.Status),
		"requestedAt": entry.RequestedAt,
		"processedAt": entry.ProcessedAt,
		"processedBy": entry.ProcessedBy,
		"extension":   entry.Extension,
	})
	if err != nil {
		if ws.IsErrUniqueViolation(err) {
			return fmt.Errorf("failed to add waitlist entry: %w", entity.ErrWaitlistEmailTaken)
		}
		return fmt.Errorf("failed to add waitlist entry: %w", err)
	}
	return nil
}

// GetWaitlistEntryById returns a waitlist entry by its id.
func (ws *waitlistStore) GetWaitlistEntryById(ctx context.Context, id string) (*entity.WaitlistEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM waitlist WHERE id = :id`, waitlistColumns)
	entry, err := QueryNamedOne[entity.WaitlistEntry](ctx, ws.DB(), query, map[string]any{
		"id": id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get waitlist entry by id: %w", err)
	}
	return &entry, nil
}

// GetWaitlistEntryByEmail returns a waitlist entry by its email.
func (ws *waitlistStore) GetWaitlistEntryByEmail(ctx context.Context, email string) (*entity.WaitlistEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM waitlist WHERE email = :email`, waitlistColumns)
	entry, err := QueryNamedOne[entity.WaitlistEntry](ctx, ws.DB(), query, map[string]any{
		"email": email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get waitlist entry by email: %w", err)
	}
	return &entry, nil
}

// ListWaitlistEntries returns a page of waitlist entries matching all query filters.
func (ws *waitlistStore) ListWaitlistEntries(ctx context.Context, q entity.WaitlistQuery) ([]entity.WaitlistEntry, error) {
	where, params, err := waitlistWhere(q.Filters)
	if err != nil {
		return nil, err
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = entity.SortByRequestedAt
	}
	orderExpr, err := waitlistFieldExpr(string(sortBy))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidSortField, sortBy)
	}

	query := fmt.Sprintf(`SELECT %s FROM waitlist%s ORDER BY %s %s, id ASC`,
		waitlistColumns, where, orderExpr, q.Order.String())
	if q.Limit > 0 {
		query += ` LIMIT :limit OFFSET :offset`
		params["limit"] = q.Limit
		params["offset"] = q.Offset
	}

	entries, err := QueryListNamed[entity.WaitlistEntry](ctx, ws.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist entries: %w", err)
	}
	return entries, nil
}

// CountWaitlistEntries counts waitlist entries matching all filters.
func (ws *waitlistStore) CountWaitlistEntries(ctx context.Context, filters []entity.WaitlistFilter) (int, error) {
	where, params, err := waitlistWhere(filters)
	if err != nil {
		return 0, err
	}
	count, err := QueryCountNamed(ctx, ws.DB(), `SELECT COUNT(*) FROM waitlist`+where, params)
	if err != nil {
		return 0, fmt.Errorf("failed to count waitlist entries: %w", err)
	}
	return count, nil
}

// ProcessWaitlistEntry moves a pending entry to a terminal status.
// The update only matches pending rows, so concurrent approvals can't both stamp processed_at.
func (ws *waitlistStore) ProcessWaitlistEntry(ctx context.Context, id string, p entity.WaitlistProcess) (*entity.WaitlistEntry, error) {
	query := `
	UPDATE waitlist
	SET status = :status, processed_at = :processedAt, processed_by = :processedBy
	WHERE id = :id AND status = :pending`

	n, err := ExecNamedRowsAffected(ctx, ws.DB(), query, map[string]any{
		"id":          id,
		"status":      string(p.Status),
		"processedAt": p.ProcessedAt,
		"processedBy": p.ProcessedBy,
		"pending":     string(entity.WaitlistStatusPending),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process waitlist entry: %w", err)
	}

	entry, err := ws.GetWaitlistEntryById(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("failed to process waitlist entry %s: %w", id, entity.ErrWaitlistEntryProcessed)
	}
	return entry, nil
}

func waitlistFieldExpr(field string) (string, error) {
	if col, ok := waitlistCoreColumns[entity.SortFactor(field)]; ok {
		return col, nil
	}
	if !entity.IsValidFieldName(field) {
		return "", fmt.Errorf("invalid waitlist field %q", field)
	}
	return fmt.Sprintf(`JSON_EXTRACT(extension, '$."%s"')`, field), nil
}

func waitlistWhere(filters []entity.WaitlistFilter) (string, map[string]any, error) {
	params := map[string]any{}
	if len(filters) == 0 {
		return "", params, nil
	}

	conds := make([]string, 0, len(filters))
	for i, f := range filters {
		op, err := sqlOperator(f.Operator)
		if err != nil {
			return "", nil, err
		}
		expr, err := waitlistFieldExpr(f.Field)
		if err != nil {
			return "", nil, err
		}
		name := fmt.Sprintf("f%d", i)

		if entity.IsCoreField(f.Field) {
			conds = append(conds, fmt.Sprintf("%s %s :%s", expr, op, name))
			params[name] = coreFilterValue(f.Value)
			continue
		}

		raw, err := json.Marshal(f.Value)
		if err != nil {
			return "", nil, fmt.Errorf("marshal filter value for %q: %w", f.Field, err)
		}
		conds = append(conds, fmt.Sprintf("%s %s CAST(:%s AS JSON)", expr, op, name))
		params[name] = string(raw)
	}
	return " WHERE " + strings.Join(conds, " AND "), params, nil
}

func sqlOperator(op entity.FilterOperator) (string, error) {
	switch op {
	case entity.OperatorEq, "":
		return "=", nil
	case entity.OperatorNe:
		return "<>", nil
	}
	return "", errors.New("unsupported filter operator " + string(op))
}

func coreFilterValue(v any) any {
	if s, ok := v.(entity.WaitlistStatus); ok {
		return string(s)
	}
	return v
}
