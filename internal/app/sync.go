package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"middlebro/internal/domain"
)

// SyncService refreshes the MySQL mirror from the sheet so matching keeps
// working through sheet outages. Run from cmd/syncer, typically on a cron.
type SyncService struct {
	source  domain.DirectorySource
	mirror  domain.DirectoryRepository
	cache   domain.Cache
	workers int
}

func NewSyncService(src domain.DirectorySource, mirror domain.DirectoryRepository, cache domain.Cache, workers int) *SyncService {
	if workers <= 0 {
		workers = 4
	}
	return &SyncService{source: src, mirror: mirror, cache: cache, workers: workers}
}

// Sync fetches the full directory once and upserts every record, bounded by
// the worker count. Per-row failures are logged and counted, not fatal.
// The cached snapshot is dropped afterwards so readers pick up the refresh.
func (s *SyncService) Sync(ctx context.Context) (synced, failed int, err error) {
	businesses, err := s.source.Businesses(ctx)
	if err != nil {
		return 0, 0, err
	}

	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i, biz := range businesses {
		if err := sem.Acquire(ctx, 1); err != nil {
			return synced, failed, err
		}
		wg.Add(1)
		go func(b domain.BusinessRecord, pos int) {
			defer wg.Done()
			defer sem.Release(1)

			uerr := s.mirror.UpsertBusiness(ctx, b, pos)
			mu.Lock()
			defer mu.Unlock()
			if uerr != nil {
				failed++
				log.Warn().Str("id", b.ID).Err(uerr).Msg("mirror upsert failed")
				return
			}
			synced++
		}(biz, i)
	}
	wg.Wait()

	if s.cache != nil {
		_ = s.cache.Del(ctx, directoryKey)
	}
	return synced, failed, nil
}
