package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"tenders-ai/internal/models"
	"tenders-ai/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptySearchName rejects saving a search whose name is empty after
// trimming.
var ErrEmptySearchName = errors.New("saved search name is empty")

// SavedSearchService manages named, persisted filter snapshots.
type SavedSearchService struct {
	repo   *repository.SavedSearchRepository
	logger *zap.Logger

	mu       sync.RWMutex
	searches []models.SavedSearch
}

func NewSavedSearchService(ctx context.Context, repo *repository.SavedSearchRepository, logger *zap.Logger) (*SavedSearchService, error) {
	searches, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &SavedSearchService{
		repo:     repo,
		logger:   logger,
		searches: searches,
	}, nil
}

func (s *SavedSearchService) List() []models.SavedSearch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SavedSearch, len(s.searches))
	copy(out, s.searches)
	return out
}

// Get resolves a saved search by id.
func (s *SavedSearchService) Get(id string) (models.SavedSearch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, search := range s.searches {
		if search.ID == id {
			return search, true
		}
	}
	return models.SavedSearch{}, false
}

// Save appends a new search holding a snapshot of the given filters and
// default notification settings.
func (s *SavedSearchService) Save(ctx context.Context, name string, filters models.FilterState) (models.SavedSearch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.SavedSearch{}, ErrEmptySearchName
	}

	search := models.SavedSearch{
		ID:                   uuid.NewString(),
		Name:                 name,
		Filters:              filters,
		NotificationSettings: models.DefaultNotificationSettings(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.SavedSearch, len(s.searches), len(s.searches)+1)
	copy(next, s.searches)
	next = append(next, search)

	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("Failed to persist saved searches", zap.Error(err))
		return models.SavedSearch{}, err
	}
	s.searches = next

	s.logger.Info("Search saved", zap.String("id", search.ID), zap.String("name", name))
	return search, nil
}

// Delete removes the search with the given id. Unknown ids are ignored.
func (s *SavedSearchService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.SavedSearch, 0, len(s.searches))
	for _, search := range s.searches {
		if search.ID != id {
			next = append(next, search)
		}
	}
	if len(next) == len(s.searches) {
		return nil
	}

	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("Failed to persist saved searches", zap.Error(err))
		return err
	}
	s.searches = next
	return nil
}
