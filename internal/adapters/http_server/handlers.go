package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"middlebro/internal/app"
	"middlebro/internal/domain"
)

type Handlers struct {
	Match    *app.MatchService
	Bookings *app.BookingService
	Auth     *app.AuthService
	Tokens   domain.TokenManager

	validate *validator.Validate
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	h.validate = validator.New()

	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Post("/v1/match", h.match)
	s.mux.Post("/v1/bookings", h.book)
	s.mux.Post("/v1/auth/register", h.register)
	s.mux.Post("/v1/auth/login", h.login)

	s.mux.Group(func(g chi.Router) {
		g.Use(Auth(h.Tokens))
		g.Get("/v1/profile", h.profile)
		g.Get("/v1/bookings", h.listBookings)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// decode binds and validates a JSON request body.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be valid JSON")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid body", "invalid field: "+verrs[0].Field())
			return false
		}
		writeProblem(w, http.StatusBadRequest, "Invalid body", "validation failed")
		return false
	}
	return true
}

// rejectCore maps the core's validation errors to field-specific problems.
// "no match" never lands here; it is a 200 with a null match.
func rejectCore(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, domain.ErrInvalidWeekday):
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid day", "day must be one of the seven Romanian weekday names")
		return true
	case errors.Is(err, domain.ErrInvalidTime):
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid hour", "hour must be a valid HH:MM time")
		return true
	}
	return false
}

// ---- matching ----

type matchRequest struct {
	Service string `json:"service" validate:"required"`
	City    string `json:"city" validate:"required"`
	Day     string `json:"day" validate:"required"`
	Hour    string `json:"hour" validate:"required"`
}

type matchedBusiness struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	City     string   `json:"city"`
	Services []string `json:"services"`
}

type matchResponse struct {
	Match *matchedBusiness `json:"match"`
	Slot  *slotView        `json:"slot,omitempty"`
}

type slotView struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func (h *Handlers) match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if !h.decode(w, r, &req) {
		return
	}

	out, err := h.Match.Match(r.Context(), domain.MatchRequest{
		Service: req.Service, City: req.City, Day: req.Day, Hour: req.Hour,
	})
	if err != nil {
		if rejectCore(w, err) {
			return
		}
		writeProblem(w, http.StatusServiceUnavailable, "Directory unavailable", "could not load the business directory")
		return
	}

	resp := matchResponse{}
	if out.Business != nil {
		resp.Match = &matchedBusiness{
			ID:       out.Business.ID,
			Name:     out.Business.Name,
			City:     out.Business.City,
			Services: out.Business.Services,
		}
		resp.Slot = &slotView{
			Date:  out.Slot.Start.Format(domain.DateLayout),
			Start: out.Slot.Start.Format(timeLayout),
			End:   out.Slot.End.Format(timeLayout),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

const timeLayout = time.RFC3339

// ---- bookings ----

type bookingRequest struct {
	UserName     string `json:"user_name" validate:"required"`
	BusinessID   string `json:"business_id" validate:"required"`
	BusinessName string `json:"business_name"`
	Service      string `json:"service" validate:"required"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
}

type bookingView struct {
	ID         string `json:"id"`
	UserName   string `json:"user_name"`
	BusinessID string `json:"business_id"`
	Service    string `json:"service"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	CreatedAt  string `json:"created_at"`
}

func toBookingView(b domain.Booking) bookingView {
	return bookingView{
		ID:         b.ID,
		UserName:   b.UserName,
		BusinessID: b.BusinessID,
		Service:    b.Service,
		Date:       b.Date,
		Time:       b.Time,
		CreatedAt:  b.CreatedAt.Format(timeLayout),
	}
}

func (h *Handlers) book(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if !h.decode(w, r, &req) {
		return
	}

	b, err := h.Bookings.Book(r.Context(), app.BookingInput{
		UserName:     req.UserName,
		BusinessID:   req.BusinessID,
		BusinessName: req.BusinessName,
		Service:      req.Service,
		Date:         req.Date,
		Time:         req.Time,
		Email:        req.Email,
	})
	if err != nil {
		if rejectCore(w, err) {
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Booking failed", "could not store the booking")
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		Status  string      `json:"status"`
		Booking bookingView `json:"booking"`
	}{Status: "confirmed", Booking: toBookingView(b)})
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	businessID := r.URL.Query().Get("business_id")
	if businessID == "" {
		writeProblem(w, http.StatusBadRequest, "Missing business_id", "business_id query parameter is required")
		return
	}
	bookings, err := h.Bookings.ListForBusiness(r.Context(), businessID)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Lookup failed", "could not list bookings")
		return
	}
	views := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, toBookingView(b))
	}
	writeJSON(w, http.StatusOK, struct {
		Bookings []bookingView `json:"bookings"`
	}{Bookings: views})
}

// ---- accounts ----

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}
	id, err := h.Auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeProblem(w, http.StatusConflict, "Email taken", "an account with this email already exists")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Registration failed", "could not create the account")
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		ID int64 `json:"id"`
	}{ID: id})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	tok, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid email or password")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Login failed", "could not authenticate")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Token string `json:"token"`
	}{Token: tok})
}

func (h *Handlers) profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing token claims")
		return
	}
	p, err := h.Auth.Profile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "account no longer exists")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Lookup failed", "could not load the profile")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
