package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"middlebro/internal/domain"
)

// BookingService persists bookings and fans out confirmations. Email and
// calendar are strictly best-effort: the booking is confirmed once stored.
type BookingService struct {
	repo     domain.BookingRepository
	notifier domain.Notifier
	calendar domain.Calendar
	loc      *time.Location
	now      func() time.Time
}

func NewBookingService(repo domain.BookingRepository, notifier domain.Notifier, cal domain.Calendar, loc *time.Location, now func() time.Time) *BookingService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{repo: repo, notifier: notifier, calendar: cal, loc: loc, now: now}
}

type BookingInput struct {
	UserName     string
	BusinessID   string
	BusinessName string
	Service      string
	Date         string // YYYY-MM-DD
	Time         string // HH:MM
	Email        string
}

func (s *BookingService) Book(ctx context.Context, in BookingInput) (domain.Booking, error) {
	start, err := time.ParseInLocation(domain.DateLayout+" "+domain.HourLayout, in.Date+" "+in.Time, s.loc)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("%w: %q %q", domain.ErrInvalidTime, in.Date, in.Time)
	}

	b := domain.Booking{
		ID:         uuid.NewString(),
		UserName:   in.UserName,
		BusinessID: in.BusinessID,
		Service:    in.Service,
		Date:       in.Date,
		Time:       in.Time,
		Email:      in.Email,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.InsertBooking(ctx, b); err != nil {
		return domain.Booking{}, fmt.Errorf("store booking: %w", err)
	}

	s.confirm(ctx, b, in.BusinessName, start)
	return b, nil
}

func (s *BookingService) ListForBusiness(ctx context.Context, businessID string) ([]domain.Booking, error) {
	return s.repo.ListBookingsByBusiness(ctx, businessID)
}

// confirm sends the email and files the calendar event. Failures are logged
// and swallowed.
func (s *BookingService) confirm(ctx context.Context, b domain.Booking, businessName string, start time.Time) {
	if s.notifier != nil && b.Email != "" {
		subject := "Rezervare confirmată"
		body := fmt.Sprintf("Salut %s!\n\nRezervarea ta pentru %s pe %s la %s este confirmată.\n\n— MiddleBro",
			b.UserName, b.Service, b.Date, b.Time)
		if err := s.notifier.Send(ctx, b.Email, subject, body); err != nil {
			log.Warn().Err(err).Str("booking", b.ID).Msg("confirmation email failed")
		}
	}

	if s.calendar != nil {
		summary := fmt.Sprintf("%s - %s", b.Service, b.UserName)
		description := fmt.Sprintf("Booking %s at %s for %s", b.ID, businessName, b.UserName)
		if err := s.calendar.CreateEvent(ctx, summary, description, start, start.Add(domain.SlotDuration)); err != nil {
			log.Warn().Err(err).Str("booking", b.ID).Msg("calendar event failed")
		}
	}
}
