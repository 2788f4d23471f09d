// Package waitlist serves the waitlist operations over HTTP.
package waitlist

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jekabolt/grbpwr-waitlist/internal/dto"
	"github.com/jekabolt/grbpwr-waitlist/internal/form"
	"github.com/jekabolt/grbpwr-waitlist/internal/middleware"
	wl "github.com/jekabolt/grbpwr-waitlist/internal/waitlist"
)

const (
	msgJoined   = "Request created successfully"
	msgApproved = "Waitlist entry approved"
	msgRejected = "Waitlist entry rejected"
)

// Server binds the waitlist service to HTTP routes.
type Server struct {
	svc *wl.Service
}

// New creates a new waitlist server.
func New(svc *wl.Service) *Server {
	return &Server{svc: svc}
}

// Routes returns the waitlist router. The principal middleware must run before it.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/add-user", s.join)
	r.Get("/status", s.checkStatus)
	r.Get("/schema", s.schema)

	r.Get("/requests/list", s.list)
	r.Get("/requests/count", s.count)
	r.Get("/request/{id}", s.find)
	r.Post("/request/approve", s.approve)
	r.Post("/request/reject", s.reject)

	return r
}

func (s *Server) join(w http.ResponseWriter, r *http.Request) {
	data := form.JoinWaitlistRequest{}
	if err := render.Bind(r, &data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	res, err := s.svc.Join(r.Context(), wl.JoinRequest{
		Email:  data.Email(),
		Fields: data.Fields(),
	})
	if err != nil {
		render.Render(w, r, ErrRender(r, err))
		return
	}

	render.Render(w, r, &JoinResponse{
		Message: msgJoined,
		Success: true,
		Details: dto.ConvertJoinResult(res),
	})
}

func (s *Server) checkStatus(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.CheckStatus(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		render.Render(w, r, ErrRender(r, err))
		return
	}
	render.JSON(w, r, dto.ConvertStatusResult(res))
}

func (s *Server) schema(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.svc.Schema().Declaration())
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	req := form.ParseListWaitlistRequest(r.URL.Query())
	if err := req.Validate(); err != nil {
		render.Render(w, r, ErrRender(r, err))
		return
	}

	// both are validated as positive integers, empty means default
	page, _ := strconv.Atoi(req.Page)
	limit, _ := strconv.Atoi(req.Limit)

	res, err := s.svc.List(r.Context(), middleware.GetPrincipal(r.Context()), wl.SearchParams{
		Status:        req.Status,
		Email:         req.Email,
		SortBy:        req.SortBy,
		SortDirection: req.SortDirection,
		Page:          page,
		Limit:         limit,
		Fields:        req.Fields,
	})
	if err != nil {
		render.Render(w, r, ErrRender(r, err))
		return
	}

	render.Render(w, r, &ListResponse{
		Data:  dto.ConvertEntityWaitlistEntries(res.Entries),
		Page:  res.Page,
		Limit: res.Limit,
		Total: res.Total,
	})
}

func (s *Server) count(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.Count(r.Context(), middleware.GetPrincipal(r.Context()), r.URL.Query().Get("status"))
	if err != nil {
		render.Render(w, r, ErrRender(r, err))
		return
	}
	render.Render(w, r, &CountResponse{Count: n})
}

func (s *Server) find(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.Find(r.Context(), middleware.GetPrincipal(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrRender(r, err))
		return
	}
	render.JSON(w, r, dto.ConvertEntityWaitlistEntry(*e))
}

func (s *Server) approve(w http.ResponseWriter, r *http.Request) {
	data := &form.ProcessWaitlistRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	e, err := s.svc.Approve(r.Context(), middleware.GetPrincipal(r.Context()), data.Id)
	if err != nil {
		render.Render(w, r, ErrRender(r, err))
		return
	}
	render.Render(w, r, &ProcessResponse{
		Message: msgApproved,
		Details: dto.ConvertEntityWaitlistEntry(*e),
	})
}

func (s *Server) reject(w http.ResponseWriter, r *http.Request) {
	data := &form.ProcessWaitlistRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	if _, err := s.svc.Reject(r.Context(), middleware.GetPrincipal(r.Context()), data.Id); err != nil {
		render.Render(w, r, ErrRender(r, err))
		return
	}
	render.Render(w, r, &ProcessResponse{Message: msgRejected})
}
