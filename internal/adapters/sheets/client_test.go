package sheets_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"middlebro/internal/adapters/sheets"
)

const sampleCSV = "id,name,city,services,joi,vineri\n" +
	"b1,Frizeria Centrala,Cluj,\"tuns, barbă\",\"18:00, 19:00\",10:00\n" +
	"b2,Salon Aura,Iași,manichiură,,\"09:00,10:00\"\n"

func TestBusinesses_ParsesDirectory(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, sampleCSV)
	}))
	defer ts.Close()

	cl, err := sheets.New(ts.URL, 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, err := cl.Businesses(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 businesses, got %d", len(got))
	}

	b1 := got[0]
	if b1.ID != "b1" || b1.City != "Cluj" {
		t.Fatalf("unexpected first record: %+v", b1)
	}
	if len(b1.Services) != 2 || b1.Services[1] != "barbă" {
		t.Fatalf("services not trimmed/split: %+v", b1.Services)
	}
	joi := b1.Availability["joi"]
	if len(joi) != 2 || joi[0] != "18:00" || joi[1] != "19:00" {
		t.Fatalf("unexpected joi hours: %+v", joi)
	}
	if _, ok := got[1].Availability["joi"]; ok {
		t.Fatalf("empty availability cell must not produce a day key")
	}
}

func TestBusinesses_SkipsMalformedRows(t *testing.T) {
	csvBody := "id,name,city,services,joi\n" +
		",No ID,Cluj,tuns,18:00\n" +
		"ok,Has ID,Cluj,tuns,18:00\n" +
		"noservices,Empty,Cluj,,18:00\n"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, csvBody)
	}))
	defer ts.Close()

	cl, _ := sheets.New(ts.URL, 100)
	got, err := cl.Businesses(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != "ok" {
		t.Fatalf("expected only the valid row, got %+v", got)
	}
}

func TestBusinesses_MissingRequiredColumn(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "id,name,services\nb1,X,tuns\n")
	}))
	defer ts.Close()

	cl, _ := sheets.New(ts.URL, 100)
	if _, err := cl.Businesses(context.Background()); err == nil {
		t.Fatal("expected error for missing city column")
	}
}

func TestBusinesses_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			w.WriteHeader(500)
		default:
			fmt.Fprint(w, sampleCSV)
		}
	}))
	defer ts.Close()

	cl, _ := sheets.New(ts.URL, 100)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := cl.Businesses(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 businesses, got %d", len(got))
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestBusinesses_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, _ := sheets.New(ts.URL, 100)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := cl.Businesses(ctx)
	if !errors.Is(err, sheets.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
