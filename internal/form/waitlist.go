package form

import (
	"net/http"
	"net/url"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	gerr "github.com/jekabolt/grbpwr-waitlist/internal/errors"
)

var positiveInt = validation.Match(regexp.MustCompile(`^[1-9][0-9]{0,8}$`)).Error("must be a positive integer")

// JoinWaitlistRequest is the join body: email plus any extension fields at the top level.
type JoinWaitlistRequest map[string]interface{}

// Bind implements render.Binder.
func (r JoinWaitlistRequest) Bind(_ *http.Request) error {
	if r == nil {
		return gerr.ValidationFailed.WithDetails(gerr.FieldViolation{Field: "email", Description: "Cannot be blank."})
	}
	if v, ok := r["email"]; ok {
		if _, isString := v.(string); !isString {
			return gerr.ValidationFailed.WithDetails(gerr.FieldViolation{Field: "email", Description: "Must be a string."})
		}
	}
	return nil
}

func (r JoinWaitlistRequest) Email() string {
	email, _ := r["email"].(string)
	return email
}

// Fields returns everything but the email.
func (r JoinWaitlistRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, len(r))
	for k, v := range r {
		if k != "email" {
			fields[k] = v
		}
	}
	return fields
}

// ProcessWaitlistRequest is the approve and reject body.
type ProcessWaitlistRequest struct {
	Id string `json:"id"`
}

// Bind implements render.Binder.
func (r *ProcessWaitlistRequest) Bind(_ *http.Request) error {
	return ValidateStruct(r,
		validation.Field(&r.Id, validation.Required, validation.Length(1, 64)),
	)
}

// ListWaitlistRequest holds the raw list query. Keys that aren't core params are extension filters.
type ListWaitlistRequest struct {
	Page          string `json:"page"`
	Limit         string `json:"limit"`
	Status        string `json:"status"`
	Email         string `json:"email"`
	SortBy        string `json:"sortBy"`
	SortDirection string `json:"sortDirection"`
	Fields        map[string]string
}

// ParseListWaitlistRequest reads the list params from a query string. Repeated keys keep the first value.
func ParseListWaitlistRequest(q url.Values) *ListWaitlistRequest {
	r := &ListWaitlistRequest{
		Page:          q.Get("page"),
		Limit:         q.Get("limit"),
		Status:        q.Get("status"),
		Email:         q.Get("email"),
		SortBy:        q.Get("sortBy"),
		SortDirection: q.Get("sortDirection"),
		Fields:        map[string]string{},
	}
	for k := range q {
		switch k {
		case "page", "limit", "status", "email", "sortBy", "sortDirection":
		default:
			r.Fields[k] = q.Get(k)
		}
	}
	return r
}

func (r *ListWaitlistRequest) Validate() error {
	return ValidateStruct(r,
		validation.Field(&r.Page, positiveInt),
		validation.Field(&r.Limit, positiveInt),
		validation.Field(&r.Status, validation.In("pending", "approved", "rejected")),
		validation.Field(&r.SortDirection, validation.In("asc", "desc", "ASC", "DESC")),
		validation.Field(&r.SortBy, validation.Length(1, 64)),
	)
}
