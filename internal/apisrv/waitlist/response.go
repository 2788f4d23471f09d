package waitlist

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/jekabolt/grbpwr-waitlist/internal/dto"
	gerr "github.com/jekabolt/grbpwr-waitlist/internal/errors"
)

// ErrResponse is the error body: a stable code, a message and optional field violations.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	Code    string                `json:"code"`
	Message string                `json:"message"`
	Details []gerr.FieldViolation `json:"details,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func newErrResponse(err error, ge *gerr.Error) *ErrResponse {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: ge.HTTPStatus,
		Code:           ge.Code,
		Message:        ge.Message,
		Details:        ge.Details,
	}
}

// ErrRender maps err to its error response. Errors without a code are logged and hidden behind INTERNAL_ERROR.
func ErrRender(r *http.Request, err error) render.Renderer {
	ge, ok := gerr.As(err)
	if !ok {
		slog.Default().ErrorContext(r.Context(), "waitlist request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
		ge = gerr.Internal
	}
	return newErrResponse(err, ge)
}

// ErrInvalidRequest is returned when the body can't be decoded or bound.
func ErrInvalidRequest(err error) render.Renderer {
	if ge, ok := gerr.As(err); ok {
		return newErrResponse(err, ge)
	}
	return newErrResponse(err, gerr.ValidationFailed.Wrap(err).WithDetails(gerr.FieldViolation{
		Field:       "body",
		Description: "Must be a valid JSON object.",
	}))
}

type JoinResponse struct {
	Message string            `json:"message"`
	Success bool              `json:"success"`
	Details dto.WaitlistEntry `json:"details"`
}

func (*JoinResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusCreated)
	return nil
}

type ListResponse struct {
	Data  []dto.WaitlistEntry `json:"data"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
	Total int                 `json:"total"`
}

func (*ListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type CountResponse struct {
	Count int `json:"count"`
}

func (*CountResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type ProcessResponse struct {
	Message string            `json:"message"`
	Details dto.WaitlistEntry `json:"details,omitempty"`
}

func (*ProcessResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
