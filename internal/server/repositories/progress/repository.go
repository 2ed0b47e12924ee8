package progress

import (
	"context"

	"github.com/mkalvans/cinetrack/internal/server/models"
)

// Repository stores progress records keyed by (user, movie slug, episode).
// Episode is nil for standalone movies; implementations must treat two nil
// episodes as the same key.
type Repository interface {
	Find(ctx context.Context, userID, movieSlug string, episode *string) (*models.ProgressRecord, error)
	Create(ctx context.Context, rec *models.ProgressRecord) (*models.ProgressRecord, error)
	Update(ctx context.Context, rec *models.ProgressRecord) error
	ListByUser(ctx context.Context, userID string) ([]*models.ProgressRecord, error)
	ListByUserAndSlug(ctx context.Context, userID, movieSlug string) ([]*models.ProgressRecord, error)
}
