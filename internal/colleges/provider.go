// internal/colleges/provider.go
package colleges

import (
	"context"
	"database/sql"
	"errors"

	"college-match-workers/internal/common/logger"
	"college-match-workers/internal/scoring"
)

// StatsSource is anything that can resolve a college name to stats.
type StatsSource interface {
	GetByName(ctx context.Context, name string) (*scoring.UniversityData, error)
}

// StatsSink accepts records discovered through the remote source. A repo
// that implements it gets remote hits written back.
type StatsSink interface {
	Upsert(ctx context.Context, u *scoring.UniversityData) error
}

// RemoteSource is the external fallback API.
type RemoteSource interface {
	FetchByName(ctx context.Context, name string) (*scoring.UniversityData, error)
}

// StatsProvider resolves college stats through cache, database and the
// external Scorecard API, in that order. Database is authoritative; the API
// only fills colleges we have not ingested yet.
type StatsProvider struct {
	repo      StatsSource
	cache     *StatsCache
	scorecard RemoteSource
	logger    logger.Logger
}

func NewStatsProvider(repo StatsSource, cache *StatsCache, scorecard RemoteSource, log logger.Logger) *StatsProvider {
	return &StatsProvider{
		repo:      repo,
		cache:     cache,
		scorecard: scorecard,
		logger:    log,
	}
}

// ErrNotFound reports that no source knows the college.
var ErrNotFound = errors.New("college not found in any source")

// Stats resolves one college. A hit from any source behind the cache is
// written back to the cache before returning.
func (p *StatsProvider) Stats(ctx context.Context, name string) (*scoring.UniversityData, error) {
	if p.cache != nil {
		if u := p.cache.Get(ctx, name); u != nil {
			return u, nil
		}
	}

	u, err := p.repo.GetByName(ctx, name)
	switch {
	case err == nil:
		p.cacheResult(ctx, u)
		return u, nil
	case errors.Is(err, sql.ErrNoRows):
		// fall through to the remote source
	default:
		return nil, err
	}

	if p.scorecard == nil {
		return nil, ErrNotFound
	}

	remote, err := p.scorecard.FetchByName(ctx, name)
	if err != nil {
		p.logger.Warn("scorecard lookup failed", map[string]interface{}{
			"college": name,
			"error":   err.Error(),
		})
		return nil, ErrNotFound
	}
	if remote == nil {
		return nil, ErrNotFound
	}

	p.cacheResult(ctx, remote)
	if sink, ok := p.repo.(StatsSink); ok {
		if err := sink.Upsert(ctx, remote); err != nil {
			p.logger.Warn("college ingest failed", map[string]interface{}{
				"college": name,
				"error":   err.Error(),
			})
		}
	}
	return remote, nil
}

func (p *StatsProvider) cacheResult(ctx context.Context, u *scoring.UniversityData) {
	if p.cache != nil {
		p.cache.Set(ctx, u)
	}
}
