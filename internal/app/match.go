package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"middlebro/internal/adapters/observability"
	"middlebro/internal/domain"
)

const directoryKey = "directory:v1"

// MatchService answers "who can serve this request" over the current
// directory snapshot. The sheet is the source of truth; redis keeps a short
// TTL snapshot so every match does not refetch it, and the MySQL mirror is
// the fallback when the sheet is unreachable.
type MatchService struct {
	source   domain.DirectorySource
	mirror   domain.DirectoryRepository
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewMatchService(src domain.DirectorySource, mirror domain.DirectoryRepository, cache domain.Cache, ttl time.Duration, now func() time.Time) *MatchService {
	if now == nil {
		now = time.Now
	}
	return &MatchService{source: src, mirror: mirror, cache: cache, cacheTTL: ttl, now: now}
}

// MatchOutcome carries the matched business (nil when nothing matched) and
// the concrete slot the symbolic day/hour resolved to.
type MatchOutcome struct {
	Business *domain.BusinessRecord
	Slot     domain.Slot
}

// Match validates the request's day and hour, loads the directory and runs
// the first-match scan. A request with an unknown weekday or a bad hour is
// rejected up front; an empty result is a normal outcome.
func (s *MatchService) Match(ctx context.Context, req domain.MatchRequest) (MatchOutcome, error) {
	slot, err := domain.ResolveSlot(req.Day, req.Hour, s.now())
	if err != nil {
		observability.ObserveMatch("rejected")
		return MatchOutcome{}, err
	}

	businesses, err := s.loadDirectory(ctx)
	if err != nil {
		return MatchOutcome{}, err
	}

	biz, ok := domain.FirstMatch(req, businesses)
	if !ok {
		observability.ObserveMatch("no_match")
		return MatchOutcome{Slot: slot}, nil
	}
	observability.ObserveMatch("matched")
	return MatchOutcome{Business: &biz, Slot: slot}, nil
}

func (s *MatchService) loadDirectory(ctx context.Context) ([]domain.BusinessRecord, error) {
	var cached []domain.BusinessRecord
	if ok, _ := s.cache.Get(ctx, directoryKey, &cached); ok {
		return cached, nil
	}

	businesses, err := s.source.Businesses(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("sheet fetch failed, falling back to mirror")
		mirrored, merr := s.mirror.ListBusinesses(ctx)
		if merr != nil {
			return nil, errors.Join(err, merr)
		}
		return mirrored, nil
	}

	_ = s.cache.Set(ctx, directoryKey, businesses, s.cacheTTL)
	return businesses, nil
}
