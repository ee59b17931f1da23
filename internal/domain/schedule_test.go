package domain_test

import (
	"errors"
	"testing"
	"time"

	"middlebro/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveNextDate(t *testing.T) {
	monday := date(2025, 4, 14) // 2025-04-14 is a Monday

	cases := []struct {
		name    string
		weekday string
		today   time.Time
		want    string
	}{
		{"three days ahead", "joi", monday, "2025-04-17"},
		{"case folded", "JOI", monday, "2025-04-17"},
		{"diacritics folded", "Sâmbătă", monday, "2025-04-19"},
		{"next day", "marți", monday, "2025-04-15"},
		{"same weekday wraps a full week", "joi", date(2025, 4, 17), "2025-04-24"},
		{"monday from monday wraps", "luni", monday, "2025-04-21"},
		{"sunday wraparound", "duminică", date(2025, 4, 19), "2025-04-20"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := domain.ResolveNextDate(tc.weekday, tc.today)
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			if got.Format(domain.DateLayout) != tc.want {
				t.Fatalf("want %s, got %s", tc.want, got.Format(domain.DateLayout))
			}
		})
	}
}

func TestResolveNextDate_InvalidWeekday(t *testing.T) {
	for _, bad := range []string{"marțq", "thursday", "", "joi "} {
		_, err := domain.ResolveNextDate(bad, date(2025, 4, 14))
		if !errors.Is(err, domain.ErrInvalidWeekday) {
			t.Fatalf("%q: want ErrInvalidWeekday, got %v", bad, err)
		}
	}
}

// The next occurrence is always strictly after today and at most 7 days out,
// and querying again from the found date lands exactly a week later.
func TestResolveNextDate_Properties(t *testing.T) {
	days := []string{"luni", "marți", "miercuri", "joi", "vineri", "sâmbătă", "duminică"}
	for offset := 0; offset < 7; offset++ {
		today := date(2025, 4, 14).AddDate(0, 0, offset)
		for _, w := range days {
			got, err := domain.ResolveNextDate(w, today)
			if err != nil {
				t.Fatalf("%s from %s: %v", w, today, err)
			}
			ahead := int(got.Sub(today).Hours() / 24)
			if ahead < 1 || ahead > 7 {
				t.Fatalf("%s from %s: %d days ahead", w, today, ahead)
			}
			again, err := domain.ResolveNextDate(w, got)
			if err != nil {
				t.Fatalf("%s from %s: %v", w, got, err)
			}
			if !again.Equal(got.AddDate(0, 0, 7)) {
				t.Fatalf("%s: expected %s, got %s", w, got.AddDate(0, 0, 7), again)
			}
		}
	}
}

func TestResolveSlot(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Bucharest")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	today := time.Date(2025, 4, 14, 9, 30, 0, 0, loc)

	slot, err := domain.ResolveSlot("joi", "18:00", today)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	wantStart := time.Date(2025, 4, 17, 18, 0, 0, 0, loc)
	if !slot.Start.Equal(wantStart) {
		t.Fatalf("start: want %s, got %s", wantStart, slot.Start)
	}
	if !slot.End.Equal(wantStart.Add(time.Hour)) {
		t.Fatalf("end: want %s, got %s", wantStart.Add(time.Hour), slot.End)
	}
	if slot.Start.Location() != loc {
		t.Fatalf("slot not in booking zone: %s", slot.Start.Location())
	}
}

func TestResolveSlot_Errors(t *testing.T) {
	today := date(2025, 4, 14)

	if _, err := domain.ResolveSlot("badday", "18:00", today); !errors.Is(err, domain.ErrInvalidWeekday) {
		t.Fatalf("want ErrInvalidWeekday, got %v", err)
	}
	for _, bad := range []string{"25:00", "18:60", "1800", "six pm", ""} {
		if _, err := domain.ResolveSlot("joi", bad, today); !errors.Is(err, domain.ErrInvalidTime) {
			t.Fatalf("%q: want ErrInvalidTime, got %v", bad, err)
		}
	}
}
