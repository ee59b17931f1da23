package domain

import (
	"context"
	"time"
)

// DirectorySource supplies the current business directory, typically the
// published spreadsheet. Each call returns a fresh ordered snapshot.
type DirectorySource interface {
	Businesses(ctx context.Context) ([]BusinessRecord, error)
}

type BookingRepository interface {
	InsertBooking(ctx context.Context, b Booking) error
	ListBookingsByBusiness(ctx context.Context, businessID string) ([]Booking, error)
}

type AccountRepository interface {
	CreateUser(ctx context.Context, email, passwordHash, name string) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (BusinessUser, error)
	GetUserByID(ctx context.Context, id int64) (BusinessUser, error)
}

// DirectoryRepository is the MySQL mirror of the spreadsheet, kept fresh by
// the syncer and used as a fallback when the sheet is unreachable. Position
// is the record's row order in the sheet; listing preserves it because the
// matcher's tie-break depends on it.
type DirectoryRepository interface {
	UpsertBusiness(ctx context.Context, b BusinessRecord, position int) error
	ListBusinesses(ctx context.Context) ([]BusinessRecord, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Notifier dispatches a confirmation message. Best-effort: failures are
// logged by callers and never block a booking.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Calendar files a booked slot as an external calendar event. Best-effort.
type Calendar interface {
	CreateEvent(ctx context.Context, summary, description string, start, end time.Time) error
}

// TokenManager issues and verifies the bearer tokens that protect the
// business-account routes.
type TokenManager interface {
	Issue(userID int64, email string) (string, error)
	Verify(token string) (TokenClaims, error)
}

type TokenClaims struct {
	UserID int64
	Email  string
}
