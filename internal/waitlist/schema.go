package waitlist

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jekabolt/grbpwr-waitlist/internal/entity"
	"github.com/jekabolt/grbpwr-waitlist/internal/form"
)

// EntityName is the storage name of the waitlist entity.
const EntityName = "waitlist"

var (
	errMustBeString      = validation.NewError("validation_is_string", "must be a string")
	errMustBeNumber      = validation.NewError("validation_is_number", "must be a number")
	errMustBeBoolean     = validation.NewError("validation_is_boolean", "must be a boolean")
	errMustBeDate        = validation.NewError("validation_is_date", "must be an RFC3339 date")
	errMustBeStringArray = validation.NewError("validation_is_string_array", "must be an array of strings")
	errRequired          = validation.NewError("validation_required", "cannot be blank")
)

// FieldDeclaration describes one attribute of the waitlist entity.
type FieldDeclaration struct {
	Name     string           `json:"name"`
	Type     entity.FieldType `json:"type"`
	Required bool             `json:"required"`
	Unique   bool             `json:"unique,omitempty"`
}

// EntityDeclaration is the waitlist entity shape the host merges into its own storage schema.
type EntityDeclaration struct {
	Name   string             `json:"name"`
	Fields []FieldDeclaration `json:"fields"`
}

var coreDeclarations = []FieldDeclaration{
	{Name: string(entity.SortById), Type: entity.FieldTypeString, Required: true, Unique: true},
	{Name: string(entity.SortByEmail), Type: entity.FieldTypeString, Required: true, Unique: true},
	{Name: string(entity.SortByStatus), Type: entity.FieldTypeString, Required: true},
	{Name: string(entity.SortByRequestedAt), Type: entity.FieldTypeDate, Required: true},
	{Name: string(entity.SortByProcessedAt), Type: entity.FieldTypeDate},
	{Name: string(entity.SortByProcessedBy), Type: entity.FieldTypeString},
}

// Schema holds the extension field descriptors and the validation rules generated from them.
type Schema struct {
	fields []entity.FieldDescriptor
	byName map[string]entity.FieldDescriptor
	rules  []*validation.KeyRules
}

// NewSchema checks the descriptors and builds their validation rules.
func NewSchema(fields []entity.FieldDescriptor) (*Schema, error) {
	s := &Schema{
		fields: make([]entity.FieldDescriptor, 0, len(fields)),
		byName: make(map[string]entity.FieldDescriptor, len(fields)),
	}
	for _, f := range fields {
		switch {
		case !entity.IsValidFieldName(f.Name):
			return nil, fmt.Errorf("invalid additional field name %q", f.Name)
		case entity.IsCoreField(f.Name) || f.Name == "extension":
			return nil, fmt.Errorf("additional field %q collides with a core field", f.Name)
		case !entity.IsValidFieldType(string(f.Type)):
			return nil, fmt.Errorf("additional field %q has unknown type %q", f.Name, f.Type)
		}
		if _, ok := s.byName[f.Name]; ok {
			return nil, fmt.Errorf("additional field %q declared twice", f.Name)
		}
		s.fields = append(s.fields, f)
		s.byName[f.Name] = f

		rule := validation.Key(f.Name, validation.By(fieldRule(f)))
		if !f.Required {
			rule = rule.Optional()
		}
		s.rules = append(s.rules, rule)
	}
	return s, nil
}

// Fields returns the extension field descriptors in declaration order.
func (s *Schema) Fields() []entity.FieldDescriptor {
	return append([]entity.FieldDescriptor(nil), s.fields...)
}

// Field looks up an extension field by name.
func (s *Schema) Field(name string) (entity.FieldDescriptor, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Declaration returns the entity declaration: core fields followed by extension fields.
func (s *Schema) Declaration() EntityDeclaration {
	d := EntityDeclaration{
		Name:   EntityName,
		Fields: append([]FieldDeclaration(nil), coreDeclarations...),
	}
	for _, f := range s.fields {
		d.Fields = append(d.Fields, FieldDeclaration{Name: f.Name, Type: f.Type, Required: f.Required})
	}
	return d
}

// BeforeCreate stamps the default status on a new entry.
func (s *Schema) BeforeCreate(e *entity.WaitlistEntry) {
	if e.Status == "" {
		e.Status = entity.WaitlistStatusPending
	}
}

// Validate checks submitted extension values and returns them normalized.
// Undeclared keys are dropped. Null optional values are treated as absent.
func (s *Schema) Validate(values map[string]any) (entity.ExtensionValues, error) {
	declared := make(map[string]any, len(s.fields))
	for k, v := range values {
		if _, ok := s.byName[k]; ok {
			declared[k] = v
		}
	}
	if err := form.ValidateMap(declared, s.rules...); err != nil {
		return nil, err
	}

	out := entity.ExtensionValues{}
	for _, f := range s.fields {
		v, ok := declared[f.Name]
		if !ok || v == nil {
			continue
		}
		nv, err := normalizeValue(f.Type, v)
		if err != nil {
			return nil, err
		}
		out[f.Name] = nv
	}
	return out, nil
}

func fieldRule(f entity.FieldDescriptor) validation.RuleFunc {
	return func(value interface{}) error {
		if value == nil {
			if f.Required {
				return errRequired
			}
			return nil
		}
		if f.Required && f.Type == entity.FieldTypeString {
			if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
				return errRequired
			}
		}
		_, err := normalizeValue(f.Type, value)
		return err
	}
}

// normalizeValue converts a decoded JSON value into its stored form:
// numbers become float64, dates canonical UTC RFC3339 strings.
func normalizeValue(t entity.FieldType, v any) (any, error) {
	switch t {
	case entity.FieldTypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return nil, errMustBeString
	case entity.FieldTypeNumber:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
		return nil, errMustBeNumber
	case entity.FieldTypeBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
		return nil, errMustBeBoolean
	case entity.FieldTypeDate:
		switch d := v.(type) {
		case time.Time:
			return formatDate(d), nil
		case string:
			ts, err := time.Parse(time.RFC3339, d)
			if err != nil {
				return nil, errMustBeDate
			}
			return formatDate(ts), nil
		}
		return nil, errMustBeDate
	case entity.FieldTypeStringArray:
		switch a := v.(type) {
		case []string:
			return append([]string{}, a...), nil
		case []any:
			out := make([]string, 0, len(a))
			for _, item := range a {
				s, ok := item.(string)
				if !ok {
					return nil, errMustBeStringArray
				}
				out = append(out, s)
			}
			return out, nil
		}
		return nil, errMustBeStringArray
	}
	return nil, fmt.Errorf("unknown field type %q", t)
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
