package app

import (
	"context"
	"sync"

	"tenders-ai/internal/models"
	"tenders-ai/internal/repository"
	"tenders-ai/internal/service"

	"go.uber.org/zap"
)

// Session is one browsing session: the loaded catalog, every stateful
// feature service and the shell-level state (current view, theme). All
// entity state is constructed once at startup and injected here.
type Session struct {
	Tenders       []models.Tender
	Search        *service.SearchService
	Ledger        *service.LedgerService
	SavedSearches *service.SavedSearchService
	Chat          *service.ChatService

	uiRepo      *repository.UIStateRepository
	profileRepo *repository.ProfileRepository
	logger      *zap.Logger

	mu    sync.Mutex
	view  View
	theme models.Theme
}

func NewSession(
	ctx context.Context,
	tenders []models.Tender,
	search *service.SearchService,
	ledger *service.LedgerService,
	savedSearches *service.SavedSearchService,
	chat *service.ChatService,
	uiRepo *repository.UIStateRepository,
	profileRepo *repository.ProfileRepository,
	logger *zap.Logger,
) (*Session, error) {
	theme, err := uiRepo.LoadTheme(ctx)
	if err != nil {
		return nil, err
	}

	return &Session{
		Tenders:       tenders,
		Search:        search,
		Ledger:        ledger,
		SavedSearches: savedSearches,
		Chat:          chat,
		uiRepo:        uiRepo,
		profileRepo:   profileRepo,
		logger:        logger,
		view:          ViewSearch,
		theme:         theme,
	}, nil
}

func (s *Session) CurrentView() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *Session) SetView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

func (s *Session) Theme() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// ToggleTheme flips and persists the light/dark preference.
func (s *Session) ToggleTheme(ctx context.Context) (models.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.theme.Toggle()
	if err := s.uiRepo.SaveTheme(ctx, next); err != nil {
		s.logger.Error("Failed to persist theme", zap.Error(err))
		return s.theme, err
	}
	s.theme = next
	return next, nil
}

func (s *Session) Profile(ctx context.Context) (models.Profile, error) {
	return s.profileRepo.Load(ctx)
}

func (s *Session) SaveProfile(ctx context.Context, profile models.Profile) error {
	return s.profileRepo.Save(ctx, profile)
}

// ConsumeDeepLink resolves a saved-search id passed to the shell at
// startup, seeds it as both pending and applied filters and activates the
// browsing view. Unresolvable ids are silently ignored. The id is consumed
// exactly once; callers must not reuse it.
func (s *Session) ConsumeDeepLink(ctx context.Context, searchID string) (bool, error) {
	if searchID == "" {
		return false, nil
	}

	saved, ok := s.SavedSearches.Get(searchID)
	if !ok {
		s.logger.Warn("Deep link did not resolve", zap.String("search_id", searchID))
		return false, nil
	}

	if err := s.Search.ApplySavedSearch(ctx, saved.Filters); err != nil {
		return false, err
	}
	s.SetView(ViewSearch)

	s.logger.Info("Deep link consumed",
		zap.String("search_id", searchID),
		zap.String("name", saved.Name),
	)
	return true, nil
}
