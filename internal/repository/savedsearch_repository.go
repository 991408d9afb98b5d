package repository

import (
	"context"

	"tenders-ai/internal/models"
	"tenders-ai/internal/storage"

	"go.uber.org/zap"
)

type SavedSearchRepository struct {
	store  *storage.Store
	logger *zap.Logger
}

func NewSavedSearchRepository(store *storage.Store, logger *zap.Logger) *SavedSearchRepository {
	return &SavedSearchRepository{
		store:  store,
		logger: logger,
	}
}

func (r *SavedSearchRepository) Load(ctx context.Context) ([]models.SavedSearch, error) {
	var searches []models.SavedSearch
	if err := r.store.Get(ctx, storage.KeySavedSearches, &searches, []models.SavedSearch{}); err != nil {
		return nil, err
	}
	return searches, nil
}

func (r *SavedSearchRepository) Save(ctx context.Context, searches []models.SavedSearch) error {
	if searches == nil {
		searches = []models.SavedSearch{}
	}
	return r.store.Set(ctx, storage.KeySavedSearches, searches)
}
