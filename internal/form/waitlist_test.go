package form

import (
	"net/url"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	gerr "github.com/jekabolt/grbpwr-waitlist/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListWaitlistRequest(t *testing.T) {
	q, err := url.ParseQuery("page=2&limit=20&status=pending&sortBy=email&sortDirection=asc&company=acme&seats=3")
	require.NoError(t, err)

	r := ParseListWaitlistRequest(q)
	assert.Equal(t, "2", r.Page)
	assert.Equal(t, "20", r.Limit)
	assert.Equal(t, "pending", r.Status)
	assert.Equal(t, map[string]string{"company": "acme", "seats": "3"}, r.Fields)
	assert.NoError(t, r.Validate())
}

func TestListWaitlistRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		fields []string
	}{
		{"zero page", "page=0", []string{"page"}},
		{"negative limit", "limit=-1", []string{"limit"}},
		{"not a number", "page=abc&limit=1.5", []string{"page", "limit"}},
		{"unknown status", "status=accepted", []string{"status"}},
		{"bad direction", "sortDirection=sideways", []string{"sortDirection"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			err = ParseListWaitlistRequest(q).Validate()
			require.ErrorIs(t, err, gerr.ValidationFailed)
			ge, _ := gerr.As(err)
			fields := []string{}
			for _, d := range ge.Details {
				fields = append(fields, d.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestProcessWaitlistRequest_Bind(t *testing.T) {
	assert.NoError(t, (&ProcessWaitlistRequest{Id: "e1"}).Bind(nil))
	assert.ErrorIs(t, (&ProcessWaitlistRequest{}).Bind(nil), gerr.ValidationFailed)
}

func TestJoinWaitlistRequest(t *testing.T) {
	r := JoinWaitlistRequest{"email": "user@test.com", "company": "acme"}
	require.NoError(t, r.Bind(nil))
	assert.Equal(t, "user@test.com", r.Email())
	assert.Equal(t, map[string]interface{}{"company": "acme"}, r.Fields())

	assert.ErrorIs(t, JoinWaitlistRequest{"email": 42}.Bind(nil), gerr.ValidationFailed)
}

func TestValidateMap(t *testing.T) {
	rules := []*validation.KeyRules{
		validation.Key("company", validation.Required),
		validation.Key("seats", validation.Min(1)).Optional(),
	}

	assert.NoError(t, ValidateMap(map[string]interface{}{"company": "acme", "other": true}, rules...))

	err := ValidateMap(map[string]interface{}{"seats": -1}, rules...)
	require.ErrorIs(t, err, gerr.ValidationFailed)
	ge, _ := gerr.As(err)
	require.Len(t, ge.Details, 2)
	assert.Equal(t, gerr.FieldViolation{Field: "company", Description: "Required key is missing."}, ge.Details[0])
	assert.Equal(t, "seats", ge.Details[1].Field)
}
