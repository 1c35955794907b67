// Package render loads presentation snapshots from the store and renders
// them with the engine.
package render

import (
	"context"
	"log/slog"

	"github.com/YaredDejene/kidase-presentation/internal/config"
	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

type presentationRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Presentation, error)
	ListActive(ctx context.Context) ([]domain.Presentation, error)
	ListSlides(ctx context.Context, presentationID string) ([]domain.Slide, error)
	ListVariables(ctx context.Context, presentationID string, bound domain.SlotMap) ([]domain.Variable, error)
}

type templateRepo interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.Template, error)
}

type ruleRepo interface {
	ListForPresentation(ctx context.Context, presentationID string, slideIDs []string) ([]domain.RuleDefinition, error)
}

type gitsaweRepo interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.Gitsawe, error)
	ListVersesBySegments(ctx context.Context, segmentIDs []string) ([]domain.Verse, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service renders presentations stored in the database.
type Service struct {
	presentations presentationRepo
	templates     templateRepo
	rules         ruleRepo
	gitsawes      gitsaweRepo
	tx            txManager
	metrics       *Metrics
	cfg           config.RenderConfig
	log           *slog.Logger
}

// NewService creates a new render service. metrics may be nil.
func NewService(
	log *slog.Logger,
	cfg config.RenderConfig,
	metrics *Metrics,
	presentations presentationRepo,
	templates templateRepo,
	rules ruleRepo,
	gitsawes gitsaweRepo,
	tx txManager,
) *Service {
	return &Service{
		presentations: presentations,
		templates:     templates,
		rules:         rules,
		gitsawes:      gitsawes,
		tx:            tx,
		metrics:       metrics,
		cfg:           cfg,
		log:           log.With("service", "render"),
	}
}
