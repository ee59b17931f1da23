package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"middlebro/internal/app"
	"middlebro/internal/domain"
)

func TestSync_MirrorsDirectoryAndDropsCache(t *testing.T) {
	dir := []domain.BusinessRecord{
		{ID: "b1", Name: "A", City: "Cluj", Services: []string{"tuns"}},
		{ID: "b2", Name: "B", City: "Iași", Services: []string{"manichiură"}},
	}
	src := &fakeSource{dir: dir}
	mirror := &fakeMirror{}
	cache := &fakeCache{store: map[string][]domain.BusinessRecord{"directory:v1": dir}}

	svc := app.NewSyncService(src, mirror, cache, 2)
	synced, failed, err := svc.Sync(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if synced != 2 || failed != 0 {
		t.Fatalf("synced=%d failed=%d", synced, failed)
	}
	if got := mirror.upsertedRecords(); len(got) != 2 {
		t.Fatalf("expected 2 upserts, got %d", len(got))
	}
	if len(cache.dels) != 1 || cache.dels[0] != "directory:v1" {
		t.Fatalf("cache not invalidated: %+v", cache.dels)
	}
}

// Exercises the worker fan-out with many rows and more workers than rows in
// flight, so the race detector sees the concurrent upsert path.
func TestSync_ConcurrentUpserts(t *testing.T) {
	dir := make([]domain.BusinessRecord, 64)
	for i := range dir {
		dir[i] = domain.BusinessRecord{ID: fmt.Sprintf("b%d", i), Name: "N", City: "Cluj", Services: []string{"tuns"}}
	}
	mirror := &fakeMirror{}
	svc := app.NewSyncService(&fakeSource{dir: dir}, mirror, &fakeCache{}, 8)

	synced, failed, err := svc.Sync(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if synced != len(dir) || failed != 0 {
		t.Fatalf("synced=%d failed=%d", synced, failed)
	}
	if got := mirror.upsertedRecords(); len(got) != len(dir) {
		t.Fatalf("expected %d upserts, got %d", len(dir), len(got))
	}
}

func TestSync_SourceFailure(t *testing.T) {
	svc := app.NewSyncService(&fakeSource{err: errors.New("sheet down")}, &fakeMirror{}, &fakeCache{}, 2)
	if _, _, err := svc.Sync(context.Background()); err == nil {
		t.Fatal("expected source error to surface")
	}
}

func TestSync_CountsRowFailures(t *testing.T) {
	dir := []domain.BusinessRecord{{ID: "b1"}, {ID: "b2"}}
	mirror := &fakeMirror{err: errors.New("db down")}
	svc := app.NewSyncService(&fakeSource{dir: dir}, mirror, &fakeCache{}, 1)

	synced, failed, err := svc.Sync(context.Background())
	if err != nil {
		t.Fatalf("row failures must not abort the sync: %v", err)
	}
	if synced != 0 || failed != 2 {
		t.Fatalf("synced=%d failed=%d", synced, failed)
	}
}
