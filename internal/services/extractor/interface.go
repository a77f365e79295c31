package extractor

import (
	"context"
	"errors"

	"github.com/denisAlshanov/tikgrab/internal/models"
)

// InvalidSourceMessage is shown to clients whose URL the extractor rejected.
const InvalidSourceMessage = "Invalid URL or video is private/unavailable."

// ErrInvalidSource means the extractor could not resolve the URL: it is
// malformed, unsupported, private or unreachable.
var ErrInvalidSource = errors.New("invalid or unavailable media source")

// Extractor resolves a media page URL into the extractor's raw record.
type Extractor interface {
	// Extract blocks until the extractor has produced metadata for url.
	Extract(ctx context.Context, url string) (*models.RawMediaRecord, error)

	// Version reports the extractor version; used as a readiness probe.
	Version(ctx context.Context) (string, error)
}
