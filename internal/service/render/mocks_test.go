package render

import (
	"context"
	"sync"

	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

type presentationRepoMock struct {
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Presentation, error)
	ListActiveFunc    func(ctx context.Context) ([]domain.Presentation, error)
	ListSlidesFunc    func(ctx context.Context, presentationID string) ([]domain.Slide, error)
	ListVariablesFunc func(ctx context.Context, presentationID string, bound domain.SlotMap) ([]domain.Variable, error)

	mu           sync.Mutex
	getByIDCalls []string
}

func (m *presentationRepoMock) GetByID(ctx context.Context, id string) (*domain.Presentation, error) {
	m.mu.Lock()
	m.getByIDCalls = append(m.getByIDCalls, id)
	m.mu.Unlock()
	return m.GetByIDFunc(ctx, id)
}

func (m *presentationRepoMock) GetByIDCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.getByIDCalls...)
}

func (m *presentationRepoMock) ListActive(ctx context.Context) ([]domain.Presentation, error) {
	return m.ListActiveFunc(ctx)
}

func (m *presentationRepoMock) ListSlides(ctx context.Context, presentationID string) ([]domain.Slide, error) {
	return m.ListSlidesFunc(ctx, presentationID)
}

func (m *presentationRepoMock) ListVariables(ctx context.Context, presentationID string, bound domain.SlotMap) ([]domain.Variable, error) {
	return m.ListVariablesFunc(ctx, presentationID, bound)
}

type templateRepoMock struct {
	GetByIDsFunc func(ctx context.Context, ids []string) ([]domain.Template, error)
}

func (m *templateRepoMock) GetByIDs(ctx context.Context, ids []string) ([]domain.Template, error) {
	return m.GetByIDsFunc(ctx, ids)
}

type ruleRepoMock struct {
	ListForPresentationFunc func(ctx context.Context, presentationID string, slideIDs []string) ([]domain.RuleDefinition, error)
}

func (m *ruleRepoMock) ListForPresentation(ctx context.Context, presentationID string, slideIDs []string) ([]domain.RuleDefinition, error) {
	return m.ListForPresentationFunc(ctx, presentationID, slideIDs)
}

type gitsaweRepoMock struct {
	GetByIDsFunc             func(ctx context.Context, ids []string) ([]domain.Gitsawe, error)
	ListVersesBySegmentsFunc func(ctx context.Context, segmentIDs []string) ([]domain.Verse, error)
}

func (m *gitsaweRepoMock) GetByIDs(ctx context.Context, ids []string) ([]domain.Gitsawe, error) {
	return m.GetByIDsFunc(ctx, ids)
}

func (m *gitsaweRepoMock) ListVersesBySegments(ctx context.Context, segmentIDs []string) ([]domain.Verse, error) {
	return m.ListVersesBySegmentsFunc(ctx, segmentIDs)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	mu    sync.Mutex
	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	// Default: pass-through (no real transaction).
	return fn(ctx)
}

func (m *txManagerMock) RunInTxCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
