package entity

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrWaitlistEmailTaken is returned by stores when the email unique constraint is violated.
	ErrWaitlistEmailTaken = errors.New("waitlist email already taken")
	// ErrWaitlistEntryProcessed is returned by stores when a conditional status update finds
	// the entry already out of pending.
	ErrWaitlistEntryProcessed = errors.New("waitlist entry already processed")
	// ErrInvalidSortField is returned by stores for sort fields they can't order by.
	ErrInvalidSortField = errors.New("invalid sort field")
)

// WaitlistStatus is the lifecycle state of a waitlist entry.
type WaitlistStatus string

const (
	WaitlistStatusPending  WaitlistStatus = "pending"
	WaitlistStatusApproved WaitlistStatus = "approved"
	WaitlistStatusRejected WaitlistStatus = "rejected"
)

var validWaitlistStatuses = map[WaitlistStatus]bool{
	WaitlistStatusPending:  true,
	WaitlistStatusApproved: true,
	WaitlistStatusRejected: true,
}

func IsValidWaitlistStatus(s string) bool {
	return validWaitlistStatuses[WaitlistStatus(s)]
}

// IsTerminal reports whether no further transition is allowed from the status.
func (s WaitlistStatus) IsTerminal() bool {
	return s == WaitlistStatusApproved || s == WaitlistStatusRejected
}

// ExtensionValues holds caller-declared attributes of an entry.
// Stored as a JSON column.
type ExtensionValues map[string]any

func (ev ExtensionValues) Value() (driver.Value, error) {
	if ev == nil {
		return nil, nil
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal extension values: %w", err)
	}
	return string(b), nil
}

func (ev *ExtensionValues) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*ev = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported extension values type %T", src)
	}
	if len(data) == 0 {
		*ev = nil
		return nil
	}
	m := map[string]any{}
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("unmarshal extension values: %w", err)
	}
	*ev = m
	return nil
}

// WaitlistEntry represents a waitlist application record.
// ProcessedAt and ProcessedBy are valid only once the entry left pending.
type WaitlistEntry struct {
	Id          string          `db:"id"`
	Email       string          `db:"email"`
	Status      WaitlistStatus  `db:"status"`
	RequestedAt time.Time       `db:"requested_at"`
	ProcessedAt sql.NullTime    `db:"processed_at"`
	ProcessedBy sql.NullString  `db:"processed_by"`
	Extension   ExtensionValues `db:"extension"`
}

// WaitlistProcess is a terminal status change applied to a pending entry.
type WaitlistProcess struct {
	Status      WaitlistStatus
	ProcessedAt time.Time
	ProcessedBy string
}

// FieldType is the type of an extension field.
type FieldType string

const (
	FieldTypeString      FieldType = "string"
	FieldTypeNumber      FieldType = "number"
	FieldTypeBoolean     FieldType = "boolean"
	FieldTypeDate        FieldType = "date"
	FieldTypeStringArray FieldType = "string[]"
)

var validFieldTypes = map[FieldType]bool{
	FieldTypeString:      true,
	FieldTypeNumber:      true,
	FieldTypeBoolean:     true,
	FieldTypeDate:        true,
	FieldTypeStringArray: true,
}

func IsValidFieldType(t string) bool {
	return validFieldTypes[FieldType(t)]
}

// FieldDescriptor declares an extension field attached to every entry.
type FieldDescriptor struct {
	Name     string    `mapstructure:"name"`
	Type     FieldType `mapstructure:"type"`
	Required bool      `mapstructure:"required"`
}
