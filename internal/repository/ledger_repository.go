package repository

import (
	"context"

	"tenders-ai/internal/models"
	"tenders-ai/internal/storage"

	"go.uber.org/zap"
)

// LedgerRepository persists the bookmark and dismissal ledgers. The two
// entities are mutually exclusive, so Save writes both keys in one
// transaction; a reader can never observe a tender in both.
type LedgerRepository struct {
	store  *storage.Store
	logger *zap.Logger
}

func NewLedgerRepository(store *storage.Store, logger *zap.Logger) *LedgerRepository {
	return &LedgerRepository{
		store:  store,
		logger: logger,
	}
}

func (r *LedgerRepository) Load(ctx context.Context) ([]models.Bookmark, []int, error) {
	var bookmarks []models.Bookmark
	if err := r.store.Get(ctx, storage.KeySavedTenders, &bookmarks, []models.Bookmark{}); err != nil {
		return nil, nil, err
	}

	var dismissed []int
	if err := r.store.Get(ctx, storage.KeyUninteresting, &dismissed, []int{}); err != nil {
		return nil, nil, err
	}

	return bookmarks, dismissed, nil
}

func (r *LedgerRepository) Save(ctx context.Context, bookmarks []models.Bookmark, dismissed []int) error {
	if bookmarks == nil {
		bookmarks = []models.Bookmark{}
	}
	if dismissed == nil {
		dismissed = []int{}
	}
	return r.store.SetAll(ctx, map[string]any{
		storage.KeySavedTenders:  bookmarks,
		storage.KeyUninteresting: dismissed,
	})
}
