package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"middlebro/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- bookings ----

func (r *Repo) InsertBooking(ctx context.Context, b domain.Booking) error {
	_, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.ID, b.UserName, b.BusinessID, b.Service, b.Date, b.Time, nullable(b.Email), b.CreatedAt,
	)
	return err
}

func (r *Repo) ListBookingsByBusiness(ctx context.Context, businessID string) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsByBusinessSQL, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var email sql.NullString
		if err := rows.Scan(&b.ID, &b.UserName, &b.BusinessID, &b.Service, &b.Date, &b.Time, &email, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Email = email.String
		out = append(out, b)
	}
	return out, rows.Err()
}

// ---- business accounts ----

func (r *Repo) CreateUser(ctx context.Context, email, passwordHash, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, email, passwordHash, nullable(name))
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 { // duplicate key
			return 0, domain.ErrDuplicateEmail
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (domain.BusinessUser, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, getUserByEmailSQL, email))
}

func (r *Repo) GetUserByID(ctx context.Context, id int64) (domain.BusinessUser, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, getUserByIDSQL, id))
}

func (r *Repo) scanUser(row *sql.Row) (domain.BusinessUser, error) {
	var u domain.BusinessUser
	var name sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BusinessUser{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.BusinessUser{}, err
	}
	u.Name = name.String
	return u, nil
}

// ---- directory mirror ----

func (r *Repo) UpsertBusiness(ctx context.Context, b domain.BusinessRecord, position int) error {
	services, err := json.Marshal(b.Services)
	if err != nil {
		return err
	}
	availability, err := json.Marshal(b.Availability)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertBusinessSQL,
		b.ID, b.Name, b.City, string(services), string(availability), position,
	)
	return err
}

func (r *Repo) ListBusinesses(ctx context.Context) ([]domain.BusinessRecord, error) {
	rows, err := r.db.QueryContext(ctx, listBusinessesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BusinessRecord
	for rows.Next() {
		var b domain.BusinessRecord
		var services, availability []byte
		if err := rows.Scan(&b.ID, &b.Name, &b.City, &services, &availability); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(services, &b.Services); err != nil {
			return nil, fmt.Errorf("business %s: services column: %w", b.ID, err)
		}
		if err := json.Unmarshal(availability, &b.Availability); err != nil {
			return nil, fmt.Errorf("business %s: availability column: %w", b.ID, err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
