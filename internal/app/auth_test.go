package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"middlebro/internal/adapters/token"
	"middlebro/internal/app"
	"middlebro/internal/domain"
)

type fakeAccounts struct {
	byEmail map[string]domain.BusinessUser
	nextID  int64
}

func (f *fakeAccounts) CreateUser(ctx context.Context, email, passwordHash, name string) (int64, error) {
	if f.byEmail == nil {
		f.byEmail = map[string]domain.BusinessUser{}
	}
	if _, ok := f.byEmail[email]; ok {
		return 0, domain.ErrDuplicateEmail
	}
	f.nextID++
	f.byEmail[email] = domain.BusinessUser{ID: f.nextID, Email: email, PasswordHash: passwordHash, Name: name, CreatedAt: time.Now()}
	return f.nextID, nil
}

func (f *fakeAccounts) GetUserByEmail(ctx context.Context, email string) (domain.BusinessUser, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return domain.BusinessUser{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeAccounts) GetUserByID(ctx context.Context, id int64) (domain.BusinessUser, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.BusinessUser{}, domain.ErrNotFound
}

func newAuth(t *testing.T) (*app.AuthService, domain.TokenManager) {
	t.Helper()
	tm := token.New("test-secret", time.Hour)
	return app.NewAuthService(&fakeAccounts{}, tm).WithBcryptCost(bcrypt.MinCost), tm
}

func TestRegisterLoginProfile(t *testing.T) {
	svc, tm := newAuth(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "salon@example.com", "parola123", "Salon Aura")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	tok, err := svc.Login(ctx, "salon@example.com", "parola123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := tm.Verify(tok)
	if err != nil || claims.UserID != id {
		t.Fatalf("token claims: %+v err=%v", claims, err)
	}

	p, err := svc.Profile(ctx, id)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.Email != "salon@example.com" || p.Name != "Salon Aura" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dup@example.com", "x", ""); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, "dup@example.com", "y", ""); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "salon@example.com", "parola123", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(ctx, "salon@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "parola123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: want ErrInvalidCredentials, got %v", err)
	}
}
