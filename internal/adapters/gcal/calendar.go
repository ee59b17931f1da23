package gcal

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"middlebro/internal/adapters/observability"
)

// Sink files booked slots into a Google Calendar using an injected
// service-account credential. No token files on disk: the credential JSON is
// configuration, refresh is handled by the oauth2 client.
type Sink struct {
	svc        *calendar.Service
	calendarID string
	timezone   string
}

func New(ctx context.Context, credsFile, calendarID, timezone string) (*Sink, error) {
	creds, err := os.ReadFile(credsFile)
	if err != nil {
		return nil, fmt.Errorf("read calendar credentials: %w", err)
	}
	jwtCfg, err := google.JWTConfigFromJSON(creds, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("parse calendar credentials: %w", err)
	}
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &Sink{svc: svc, calendarID: calendarID, timezone: timezone}, nil
}

func (s *Sink) CreateEvent(ctx context.Context, summary, description string, start, end time.Time) error {
	ev := &calendar.Event{
		Summary:     summary,
		Description: description,
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: s.timezone},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: s.timezone},
	}
	began := time.Now()
	_, err := s.svc.Events.Insert(s.calendarID, ev).Context(ctx).Do()
	status := 200
	if err != nil {
		status = 0
	}
	observability.ObserveExternal("calendar", status, time.Since(began))
	observability.ObserveNotification("calendar", err)
	if err != nil {
		return fmt.Errorf("calendar insert: %w", err)
	}
	return nil
}
