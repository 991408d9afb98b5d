package service

import (
	"context"
	"sync"

	"tenders-ai/internal/models"
	"tenders-ai/internal/repository"

	"go.uber.org/zap"
)

// LedgerService owns the bookmark and dismissal ledgers. Exclusivity is
// enforced on write: bookmarking removes any dismissal for the same tender
// and vice versa, and both ledgers are persisted in one transaction.
type LedgerService struct {
	repo   *repository.LedgerRepository
	logger *zap.Logger

	mu        sync.RWMutex
	bookmarks []models.Bookmark
	dismissed []int
}

func NewLedgerService(ctx context.Context, repo *repository.LedgerRepository, logger *zap.Logger) (*LedgerService, error) {
	bookmarks, dismissed, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &LedgerService{
		repo:      repo,
		logger:    logger,
		bookmarks: bookmarks,
		dismissed: dismissed,
	}, nil
}

// Bookmarks returns the bookmark ledger in insertion order.
func (s *LedgerService) Bookmarks() []models.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Bookmark, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}

// DismissedIDs returns the dismissed tender ids in insertion order.
func (s *LedgerService) DismissedIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, len(s.dismissed))
	copy(out, s.dismissed)
	return out
}

// BookmarkedSet returns bookmarked tender ids as a lookup set.
func (s *LedgerService) BookmarkedSet() map[int]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := make(map[int]bool, len(s.bookmarks))
	for _, b := range s.bookmarks {
		set[b.TenderID] = true
	}
	return set
}

// DismissedSet returns dismissed tender ids as a lookup set.
func (s *LedgerService) DismissedSet() map[int]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := make(map[int]bool, len(s.dismissed))
	for _, id := range s.dismissed {
		set[id] = true
	}
	return set
}

func (s *LedgerService) IsBookmarked(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bookmarkIndex(id) >= 0
}

func (s *LedgerService) IsDismissed(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dismissedIndex(id) >= 0
}

// Nickname reports the bookmark nickname for id, if bookmarked.
func (s *LedgerService) Nickname(id int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.bookmarkIndex(id); i >= 0 {
		return s.bookmarks[i].Nickname, true
	}
	return "", false
}

// ToggleBookmark removes the bookmark for id if present; otherwise it
// creates one with an empty nickname and drops any dismissal for id.
func (s *LedgerService) ToggleBookmark(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookmarks := make([]models.Bookmark, len(s.bookmarks))
	copy(bookmarks, s.bookmarks)
	dismissed := make([]int, len(s.dismissed))
	copy(dismissed, s.dismissed)

	if i := s.bookmarkIndex(id); i >= 0 {
		bookmarks = append(bookmarks[:i], bookmarks[i+1:]...)
	} else {
		bookmarks = append(bookmarks, models.Bookmark{TenderID: id, Nickname: ""})
		if j := s.dismissedIndex(id); j >= 0 {
			dismissed = append(dismissed[:j], dismissed[j+1:]...)
		}
	}

	return s.commit(ctx, bookmarks, dismissed)
}

// ToggleDismissal removes the dismissal for id if present; otherwise it
// records one and drops any bookmark for id.
func (s *LedgerService) ToggleDismissal(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookmarks := make([]models.Bookmark, len(s.bookmarks))
	copy(bookmarks, s.bookmarks)
	dismissed := make([]int, len(s.dismissed))
	copy(dismissed, s.dismissed)

	if j := s.dismissedIndex(id); j >= 0 {
		dismissed = append(dismissed[:j], dismissed[j+1:]...)
	} else {
		dismissed = append(dismissed, id)
		if i := s.bookmarkIndex(id); i >= 0 {
			bookmarks = append(bookmarks[:i], bookmarks[i+1:]...)
		}
	}

	return s.commit(ctx, bookmarks, dismissed)
}

// SetNickname replaces the nickname of an existing bookmark. Tenders
// without a bookmark are left untouched.
func (s *LedgerService) SetNickname(ctx context.Context, id int, nickname string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.bookmarkIndex(id)
	if i < 0 {
		return nil
	}

	bookmarks := make([]models.Bookmark, len(s.bookmarks))
	copy(bookmarks, s.bookmarks)
	bookmarks[i].Nickname = nickname

	return s.commit(ctx, bookmarks, s.dismissed)
}

// commit persists both ledgers atomically, then swaps the in-memory state.
// A failed write leaves the visible ledgers unchanged. Callers hold mu.
func (s *LedgerService) commit(ctx context.Context, bookmarks []models.Bookmark, dismissed []int) error {
	if err := s.repo.Save(ctx, bookmarks, dismissed); err != nil {
		s.logger.Error("Failed to persist ledgers", zap.Error(err))
		return err
	}
	s.bookmarks = bookmarks
	s.dismissed = dismissed
	return nil
}

func (s *LedgerService) bookmarkIndex(id int) int {
	for i, b := range s.bookmarks {
		if b.TenderID == id {
			return i
		}
	}
	return -1
}

func (s *LedgerService) dismissedIndex(id int) int {
	for i, d := range s.dismissed {
		if d == id {
			return i
		}
	}
	return -1
}
