package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tenders-ai/internal/models"
	"tenders-ai/internal/repository"

	"go.uber.org/zap"
)

// FilterTenders evaluates the applied criteria against every tender, all
// conditions ANDed. dismissed and bookmarked are the current ledger sets.
func FilterTenders(tenders []models.Tender, f models.FilterState, dismissed, bookmarked map[int]bool) []models.Tender {
	keyword := strings.ToLower(f.Keyword)
	start, hasStart := parseDate(f.DeadlineStart)
	end, hasEnd := parseDate(f.DeadlineEnd)

	out := make([]models.Tender, 0, len(tenders))
	for _, t := range tenders {
		if !f.ShowUninteresting && dismissed[t.ID] {
			continue
		}
		if f.ShowSaved && !bookmarked[t.ID] {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(t.Title), keyword) &&
			!strings.Contains(strings.ToLower(t.Summary), keyword) {
			continue
		}
		if f.FundingType != models.FilterAll && string(t.FundingType) != f.FundingType {
			continue
		}
		if f.Category != models.FilterAll && string(t.Category) != f.Category {
			continue
		}
		if f.Institution != models.FilterAll && t.Institution != f.Institution {
			continue
		}
		if f.EligibleEntity != models.FilterAll && !containsString(t.EligibleEntities, f.EligibleEntity) {
			continue
		}
		// Unparseable tender deadlines pass both date bounds.
		if hasStart || hasEnd {
			if d, err := t.DeadlineDate(); err == nil {
				if hasStart && d.Before(start) {
					continue
				}
				if hasEnd && d.After(end) {
					continue
				}
			}
		}
		// Funding bounds test range overlap; zero disables the bound.
		if f.MinFunding > 0 && t.FundingMax < f.MinFunding {
			continue
		}
		if f.MaxFunding > 0 && t.FundingMin > f.MaxFunding {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortTenders returns a sorted copy. The sort is stable: tenders with equal
// keys keep their relative input order in both directions, which keeps
// pagination reproducible.
func SortTenders(tenders []models.Tender, cfg models.SortConfig) []models.Tender {
	out := make([]models.Tender, len(tenders))
	copy(out, tenders)

	sort.SliceStable(out, func(i, j int) bool {
		c := compareTenders(out[i], out[j], cfg.Key)
		if cfg.Direction == models.SortDesc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compareTenders(a, b models.Tender, key models.SortKey) int {
	switch key {
	case models.SortByFundingMax:
		switch {
		case a.FundingMax < b.FundingMax:
			return -1
		case a.FundingMax > b.FundingMax:
			return 1
		}
		return 0
	default: // deadline
		ad, aerr := a.DeadlineDate()
		bd, berr := b.DeadlineDate()
		if aerr != nil || berr != nil {
			return 0
		}
		switch {
		case ad.Before(bd):
			return -1
		case ad.After(bd):
			return 1
		}
		return 0
	}
}

// Paginate slices out page p (1-based) of the result set.
func Paginate(tenders []models.Tender, page, itemsPerPage int) []models.Tender {
	start := (page - 1) * itemsPerPage
	if start < 0 || start >= len(tenders) {
		return []models.Tender{}
	}
	end := start + itemsPerPage
	if end > len(tenders) {
		end = len(tenders)
	}
	return tenders[start:end]
}

// TotalPages floors at one page even for an empty result set.
func TotalPages(count, itemsPerPage int) int {
	if itemsPerPage < 1 {
		return 1
	}
	pages := (count + itemsPerPage - 1) / itemsPerPage
	if pages < 1 {
		return 1
	}
	return pages
}

// Summarize aggregates the filtered set. Deadline bounds consider only
// parseable deadlines and stay empty when there are none.
func Summarize(tenders []models.Tender) models.SummaryData {
	summary := models.SummaryData{Count: len(tenders)}

	var earliest, latest time.Time
	for _, t := range tenders {
		summary.TotalMin += t.FundingMin
		summary.TotalMax += t.FundingMax

		d, err := t.DeadlineDate()
		if err != nil {
			continue
		}
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
		if latest.IsZero() || d.After(latest) {
			latest = d
		}
	}
	if !earliest.IsZero() {
		summary.EarliestDeadline = earliest.Format("2006-01-02")
		summary.LatestDeadline = latest.Format("2006-01-02")
	}
	return summary
}

// SearchResults is everything the browsing view needs for one render.
type SearchResults struct {
	All        []models.Tender
	Page       []models.Tender
	Summary    models.SummaryData
	TotalPages int
}

// SearchService owns the browsing view state: pending and applied filters,
// sort, pagination and selection. Pending edits never affect results until
// CommitSearch copies them into the applied set.
type SearchService struct {
	tenders []models.Tender
	ledger  *LedgerService
	uiRepo  *repository.UIStateRepository
	logger  *zap.Logger

	mu    sync.Mutex
	state models.SearchPageState

	institutions     []string
	eligibleEntities []string
}

func NewSearchService(ctx context.Context, tenders []models.Tender, ledger *LedgerService, uiRepo *repository.UIStateRepository, logger *zap.Logger) (*SearchService, error) {
	state, err := uiRepo.LoadSearchPageState(ctx)
	if err != nil {
		return nil, err
	}
	if state.CurrentPage < 1 {
		state.CurrentPage = 1
	}
	if !validPageSize(state.ItemsPerPage) {
		state.ItemsPerPage = models.PageSizes[0]
	}

	return &SearchService{
		tenders:          tenders,
		ledger:           ledger,
		uiRepo:           uiRepo,
		logger:           logger,
		state:            state,
		institutions:     distinctInstitutions(tenders),
		eligibleEntities: distinctEligibleEntities(tenders),
	}, nil
}

// PageState returns a snapshot of the current browsing state.
func (s *SearchService) PageState() models.SearchPageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetPendingFilters replaces the pending (draft) criteria.
func (s *SearchService) SetPendingFilters(ctx context.Context, f models.FilterState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Filters = f
	return s.commit(ctx, next)
}

// CommitSearch copies pending filters into the applied set and resets to
// the first page.
func (s *SearchService) CommitSearch(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.AppliedFilters = next.Filters
	next.CurrentPage = 1
	return s.commit(ctx, next)
}

// SetSort changes the sort order. The current page is kept.
func (s *SearchService) SetSort(ctx context.Context, cfg models.SortConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Sort = cfg
	return s.commit(ctx, next)
}

func (s *SearchService) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.CurrentPage = page
	return s.commit(ctx, next)
}

// SetItemsPerPage changes the page size and always resets to page one.
func (s *SearchService) SetItemsPerPage(ctx context.Context, n int) error {
	if !validPageSize(n) {
		n = models.PageSizes[0]
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.ItemsPerPage = n
	next.CurrentPage = 1
	return s.commit(ctx, next)
}

// SelectTender opens the detail view for one tender. Selection is
// independent of filtering and survives re-filtering.
func (s *SearchService) SelectTender(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.SelectedTenderID = &id
	return s.commit(ctx, next)
}

func (s *SearchService) ClearSelection(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.SelectedTenderID = nil
	return s.commit(ctx, next)
}

// SelectedTender resolves the selected id against the catalog. A selection
// that no longer resolves is treated as no selection.
func (s *SearchService) SelectedTender() *models.Tender {
	s.mu.Lock()
	id := s.state.SelectedTenderID
	s.mu.Unlock()
	if id == nil {
		return nil
	}
	for _, t := range s.tenders {
		if t.ID == *id {
			tender := t
			return &tender
		}
	}
	return nil
}

// ApplySavedSearch loads a saved filter snapshot as both pending and
// applied criteria and resets to the first page.
func (s *SearchService) ApplySavedSearch(ctx context.Context, f models.FilterState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Filters = f
	next.AppliedFilters = f
	next.CurrentPage = 1
	return s.commit(ctx, next)
}

// Results runs the filter → sort → paginate pipeline over the applied
// criteria and the current ledger sets.
func (s *SearchService) Results() SearchResults {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	filtered := FilterTenders(s.tenders, state.AppliedFilters, s.ledger.DismissedSet(), s.ledger.BookmarkedSet())
	sorted := SortTenders(filtered, state.Sort)

	return SearchResults{
		All:        sorted,
		Page:       Paginate(sorted, state.CurrentPage, state.ItemsPerPage),
		Summary:    Summarize(sorted),
		TotalPages: TotalPages(len(sorted), state.ItemsPerPage),
	}
}

// Institutions lists the distinct institutions present in the catalog.
func (s *SearchService) Institutions() []string {
	return s.institutions
}

// EligibleEntities lists the distinct eligible entities in the catalog.
func (s *SearchService) EligibleEntities() []string {
	return s.eligibleEntities
}

// commit persists the next state and swaps it in on success. Callers hold mu.
func (s *SearchService) commit(ctx context.Context, next models.SearchPageState) error {
	if err := s.uiRepo.SaveSearchPageState(ctx, next); err != nil {
		s.logger.Error("Failed to persist search page state", zap.Error(err))
		return err
	}
	s.state = next
	return nil
}

func validPageSize(n int) bool {
	for _, size := range models.PageSizes {
		if n == size {
			return true
		}
	}
	return false
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func distinctInstitutions(tenders []models.Tender) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tenders {
		if t.Institution != "" && !seen[t.Institution] {
			seen[t.Institution] = true
			out = append(out, t.Institution)
		}
	}
	sort.Strings(out)
	return out
}

func distinctEligibleEntities(tenders []models.Tender) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tenders {
		for _, e := range t.EligibleEntities {
			if e != "" && !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	sort.Strings(out)
	return out
}
