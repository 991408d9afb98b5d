package repository

import (
	"context"

	"tenders-ai/internal/models"
	"tenders-ai/internal/storage"

	"go.uber.org/zap"
)

// UIStateRepository persists the browsing view state (filters, sort, page,
// selection) and the visual theme preference.
type UIStateRepository struct {
	store  *storage.Store
	logger *zap.Logger
}

func NewUIStateRepository(store *storage.Store, logger *zap.Logger) *UIStateRepository {
	return &UIStateRepository{
		store:  store,
		logger: logger,
	}
}

func (r *UIStateRepository) LoadSearchPageState(ctx context.Context) (models.SearchPageState, error) {
	var state models.SearchPageState
	if err := r.store.Get(ctx, storage.KeySearchPageState, &state, models.DefaultSearchPageState()); err != nil {
		return models.SearchPageState{}, err
	}
	return state, nil
}

func (r *UIStateRepository) SaveSearchPageState(ctx context.Context, state models.SearchPageState) error {
	return r.store.Set(ctx, storage.KeySearchPageState, state)
}

func (r *UIStateRepository) LoadTheme(ctx context.Context) (models.Theme, error) {
	var theme models.Theme
	if err := r.store.Get(ctx, storage.KeyTheme, &theme, models.ThemeLight); err != nil {
		return models.ThemeLight, err
	}
	return theme, nil
}

func (r *UIStateRepository) SaveTheme(ctx context.Context, theme models.Theme) error {
	return r.store.Set(ctx, storage.KeyTheme, theme)
}
