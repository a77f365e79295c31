package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/denisAlshanov/tikgrab/internal/models"
	"github.com/denisAlshanov/tikgrab/internal/services/cache"
	"github.com/denisAlshanov/tikgrab/internal/services/extractor"
	"github.com/denisAlshanov/tikgrab/internal/services/worker"
	"github.com/denisAlshanov/tikgrab/internal/utils"
)

var (
	// ErrNoFormatsFound means extraction succeeded but nothing downloadable
	// could be derived from the record.
	ErrNoFormatsFound = errors.New("no downloadable formats found")

	// ErrInternal wraps every failure that is neither a bad source nor an
	// empty result. Its details are for logs only.
	ErrInternal = errors.New("media extraction failed")
)

type Service struct {
	extractor extractor.Extractor
	pool      *worker.Pool
	cache     cache.MediaCache
}

func NewService(ext extractor.Extractor, pool *worker.Pool, mediaCache cache.MediaCache) *Service {
	if mediaCache == nil {
		mediaCache = cache.NoopCache{}
	}
	return &Service{
		extractor: ext,
		pool:      pool,
		cache:     mediaCache,
	}
}

// GetMediaInfo resolves url into downloadable formats. Errors wrap one of
// extractor.ErrInvalidSource, ErrNoFormatsFound or ErrInternal.
func (s *Service) GetMediaInfo(ctx context.Context, url string) (*models.MediaResponse, error) {
	logFields := utils.SourceFields(url)

	if cached, found, err := s.cache.Get(ctx, url); err != nil {
		utils.LogWarn(ctx, "Response cache lookup failed", utils.Fields{"error": err.Error()})
	} else if found {
		utils.LogDebug(ctx, "Serving cached media response", logFields)
		return cached, nil
	}

	record, err := s.extract(ctx, url)
	if err != nil {
		if errors.Is(err, extractor.ErrInvalidSource) {
			utils.LogWarn(ctx, "Extractor rejected source: "+err.Error(), logFields)
			return nil, err
		}
		utils.LogError(ctx, "Unexpected extraction failure", err, logFields)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	response, err := BuildResponse(record)
	if err == nil && len(response.Formats) == 0 {
		err = ErrNoFormatsFound
	}
	if err != nil {
		utils.LogInfo(ctx, "No downloadable formats derived", logFields)
		return nil, err
	}

	if err := s.cache.Set(ctx, url, response); err != nil {
		utils.LogWarn(ctx, "Failed to cache media response", utils.Fields{"error": err.Error()})
	}

	return response, nil
}

// extract runs the blocking extractor call on the worker pool and waits for
// it without holding up anything but this request.
func (s *Service) extract(ctx context.Context, url string) (*models.RawMediaRecord, error) {
	future, err := worker.Submit(ctx, s.pool, func(ctx context.Context) (*models.RawMediaRecord, error) {
		return s.extractor.Extract(ctx, url)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule extraction: %w", err)
	}

	record, err := future.Await(ctx)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.New("extractor returned no record")
	}
	return record, nil
}
