package cache

import (
	"context"

	"github.com/denisAlshanov/tikgrab/internal/models"
)

// MediaCache stores successful extraction responses by source URL.
type MediaCache interface {
	// Get returns (nil, false, nil) on a miss.
	Get(ctx context.Context, url string) (*models.MediaResponse, bool, error)
	Set(ctx context.Context, url string, response *models.MediaResponse) error
	Ping(ctx context.Context) error
	Close() error
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*models.MediaResponse, bool, error) {
	return nil, false, nil
}

func (NoopCache) Set(context.Context, string, *models.MediaResponse) error { return nil }

func (NoopCache) Ping(context.Context) error { return nil }

func (NoopCache) Close() error { return nil }
