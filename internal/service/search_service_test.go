package service_test

import (
	"context"
	"testing"

	"tenders-ai/internal/models"
	"tenders-ai/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByKeyword(t *testing.T) {
	f := models.DefaultFilterState()
	f.Keyword = "ZELENI"

	got := service.FilterTenders(testTenders(), f, nil, nil)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
}

func TestFilterByEnumFields(t *testing.T) {
	tenders := testTenders()

	t.Run("funding type", func(t *testing.T) {
		f := models.DefaultFilterState()
		f.FundingType = string(models.FundingSubsidy)
		assert.Equal(t, []int{1, 3}, tenderIDs(service.FilterTenders(tenders, f, nil, nil)))
	})

	t.Run("category", func(t *testing.T) {
		f := models.DefaultFilterState()
		f.Category = string(models.CategoryAgriculture)
		assert.Equal(t, []int{3}, tenderIDs(service.FilterTenders(tenders, f, nil, nil)))
	})

	t.Run("institution", func(t *testing.T) {
		f := models.DefaultFilterState()
		f.Institution = "Eko sklad"
		assert.Equal(t, []int{2}, tenderIDs(service.FilterTenders(tenders, f, nil, nil)))
	})

	t.Run("eligible entity", func(t *testing.T) {
		f := models.DefaultFilterState()
		f.EligibleEntity = "Mala podjetja"
		assert.Equal(t, []int{1, 3}, tenderIDs(service.FilterTenders(tenders, f, nil, nil)))
	})
}

func TestFilterByDeadlineBounds(t *testing.T) {
	tenders := testTenders()

	f := models.DefaultFilterState()
	f.DeadlineStart = "2025-01-15"
	assert.Equal(t, []int{2, 3}, tenderIDs(service.FilterTenders(tenders, f, nil, nil)))

	f = models.DefaultFilterState()
	f.DeadlineEnd = "2025-01-20"
	assert.Equal(t, []int{1, 3}, tenderIDs(service.FilterTenders(tenders, f, nil, nil)))

	// Bounds are inclusive.
	f = models.DefaultFilterState()
	f.DeadlineStart = "2025-01-20"
	f.DeadlineEnd = "2025-01-20"
	assert.Equal(t, []int{3}, tenderIDs(service.FilterTenders(tenders, f, nil, nil)))
}

func TestFilterDismissedGate(t *testing.T) {
	tenders := testTenders()
	dismissed := map[int]bool{1: true}

	f := models.DefaultFilterState()
	f.ShowUninteresting = false
	assert.Equal(t, []int{2, 3}, tenderIDs(service.FilterTenders(tenders, f, dismissed, nil)))

	f.ShowUninteresting = true
	assert.Equal(t, []int{1, 2, 3}, tenderIDs(service.FilterTenders(tenders, f, dismissed, nil)))
}

func TestFilterFundingBoundsAndShowSaved(t *testing.T) {
	tenders := testTenders()

	f := models.DefaultFilterState()
	f.MinFunding = 6000
	assert.Equal(t, []int{2}, tenderIDs(service.FilterTenders(tenders, f, nil, nil)))

	f = models.DefaultFilterState()
	f.MaxFunding = 1500
	assert.Equal(t, []int{1, 3}, tenderIDs(service.FilterTenders(tenders, f, nil, nil)))

	f = models.DefaultFilterState()
	f.ShowSaved = true
	bookmarked := map[int]bool{3: true}
	assert.Equal(t, []int{3}, tenderIDs(service.FilterTenders(tenders, f, nil, bookmarked)))
}

func TestFilterIsIdempotent(t *testing.T) {
	tenders := testTenders()
	f := models.DefaultFilterState()
	f.Keyword = "pomoč"
	f.ShowUninteresting = false
	dismissed := map[int]bool{2: true}

	once := service.FilterTenders(tenders, f, dismissed, nil)
	twice := service.FilterTenders(once, f, dismissed, nil)
	assert.Equal(t, once, twice)
}

func TestSortScenarios(t *testing.T) {
	tenders := testTenders()[:2]

	byFunding := service.SortTenders(tenders, models.SortConfig{Key: models.SortByFundingMax, Direction: models.SortDesc})
	assert.Equal(t, []int{2, 1}, tenderIDs(byFunding))

	byDeadline := service.SortTenders(tenders, models.SortConfig{Key: models.SortByDeadline, Direction: models.SortAsc})
	assert.Equal(t, []int{1, 2}, tenderIDs(byDeadline))
}

func TestSortIsStable(t *testing.T) {
	// Tenders 1 and 3 share fundingMax 5000; their relative order must
	// survive both directions.
	tenders := testTenders()

	asc := service.SortTenders(tenders, models.SortConfig{Key: models.SortByFundingMax, Direction: models.SortAsc})
	assert.Equal(t, []int{1, 3, 2}, tenderIDs(asc))

	desc := service.SortTenders(tenders, models.SortConfig{Key: models.SortByFundingMax, Direction: models.SortDesc})
	assert.Equal(t, []int{2, 1, 3}, tenderIDs(desc))
}

func TestSortLeavesUnparseableDeadlinesInPlace(t *testing.T) {
	tenders := testTenders()
	tenders[1].Deadline = "kmalu"

	sorted := service.SortTenders(tenders, models.SortConfig{Key: models.SortByDeadline, Direction: models.SortAsc})
	// Comparisons involving the broken deadline are ties, so only 1 and 3
	// may reorder relative to each other.
	assert.Equal(t, []int{1, 2, 3}, tenderIDs(sorted))
}

func TestPaginationCoversEveryItemExactlyOnce(t *testing.T) {
	var tenders []models.Tender
	for i := 1; i <= 23; i++ {
		tenders = append(tenders, models.Tender{ID: i})
	}

	for _, perPage := range []int{1, 2, 10, 23, 50} {
		seen := make(map[int]int)
		total := service.TotalPages(len(tenders), perPage)
		for page := 1; page <= total; page++ {
			for _, item := range service.Paginate(tenders, page, perPage) {
				seen[item.ID]++
			}
		}
		require.Len(t, seen, len(tenders), "itemsPerPage=%d", perPage)
		for id, n := range seen {
			assert.Equal(t, 1, n, "tender %d appeared %d times at itemsPerPage=%d", id, n, perPage)
		}
	}
}

func TestTotalPagesFloorsAtOne(t *testing.T) {
	assert.Equal(t, 1, service.TotalPages(0, 10))
	assert.Equal(t, 1, service.TotalPages(10, 10))
	assert.Equal(t, 2, service.TotalPages(11, 10))
}

func TestSummarize(t *testing.T) {
	summary := service.Summarize(testTenders())
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, int64(3500), summary.TotalMin)
	assert.Equal(t, int64(19000), summary.TotalMax)
	assert.Equal(t, "2025-01-10", summary.EarliestDeadline)
	assert.Equal(t, "2025-02-01", summary.LatestDeadline)
}

func TestSummarizeEmptySet(t *testing.T) {
	summary := service.Summarize(nil)
	assert.Equal(t, 0, summary.Count)
	assert.Empty(t, summary.EarliestDeadline)
	assert.Empty(t, summary.LatestDeadline)
}

func TestSummarizeSkipsUnparseableDeadlines(t *testing.T) {
	tenders := []models.Tender{
		{ID: 1, Deadline: "kmalu", FundingMin: 10, FundingMax: 20},
	}
	summary := service.Summarize(tenders)
	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, int64(10), summary.TotalMin)
	assert.Empty(t, summary.EarliestDeadline)
}

func TestPendingEditsDoNotAffectResultsUntilCommit(t *testing.T) {
	store := newTestStore(t)
	ledger := newLedgerService(t, store)
	search := newSearchService(t, store, testTenders(), ledger)
	ctx := context.Background()

	pending := search.PageState().Filters
	pending.Keyword = "zeleni"
	require.NoError(t, search.SetPendingFilters(ctx, pending))

	assert.Equal(t, 3, search.Results().Summary.Count, "pending edit leaked into results")

	require.NoError(t, search.CommitSearch(ctx))
	results := search.Results()
	assert.Equal(t, 1, results.Summary.Count)
	assert.Equal(t, 1, search.PageState().CurrentPage)
}

func TestDismissalScenarioThroughService(t *testing.T) {
	store := newTestStore(t)
	ledger := newLedgerService(t, store)
	search := newSearchService(t, store, testTenders(), ledger)
	ctx := context.Background()

	require.NoError(t, ledger.ToggleDismissal(ctx, 1))

	pending := search.PageState().Filters
	pending.ShowUninteresting = false
	require.NoError(t, search.SetPendingFilters(ctx, pending))
	require.NoError(t, search.CommitSearch(ctx))
	assert.NotContains(t, tenderIDs(search.Results().All), 1)

	pending.ShowUninteresting = true
	require.NoError(t, search.SetPendingFilters(ctx, pending))
	require.NoError(t, search.CommitSearch(ctx))
	assert.Contains(t, tenderIDs(search.Results().All), 1)
}

func TestSetItemsPerPageResetsPage(t *testing.T) {
	store := newTestStore(t)
	search := newSearchService(t, store, testTenders(), newLedgerService(t, store))
	ctx := context.Background()

	require.NoError(t, search.SetPage(ctx, 2))
	require.NoError(t, search.SetItemsPerPage(ctx, 20))

	state := search.PageState()
	assert.Equal(t, 20, state.ItemsPerPage)
	assert.Equal(t, 1, state.CurrentPage)
}

func TestSetSortKeepsPage(t *testing.T) {
	store := newTestStore(t)
	search := newSearchService(t, store, testTenders(), newLedgerService(t, store))
	ctx := context.Background()

	require.NoError(t, search.SetPage(ctx, 2))
	require.NoError(t, search.SetSort(ctx, models.SortConfig{Key: models.SortByFundingMax, Direction: models.SortDesc}))
	assert.Equal(t, 2, search.PageState().CurrentPage)
}

func TestSelectionSurvivesRefiltering(t *testing.T) {
	store := newTestStore(t)
	search := newSearchService(t, store, testTenders(), newLedgerService(t, store))
	ctx := context.Background()

	require.NoError(t, search.SelectTender(ctx, 2))

	pending := search.PageState().Filters
	pending.Keyword = "kmete"
	require.NoError(t, search.SetPendingFilters(ctx, pending))
	require.NoError(t, search.CommitSearch(ctx))

	selected := search.SelectedTender()
	require.NotNil(t, selected)
	assert.Equal(t, 2, selected.ID)

	require.NoError(t, search.ClearSelection(ctx))
	assert.Nil(t, search.SelectedTender())
}

func TestSelectedTenderMissingFromCatalog(t *testing.T) {
	store := newTestStore(t)
	search := newSearchService(t, store, testTenders(), newLedgerService(t, store))

	require.NoError(t, search.SelectTender(context.Background(), 999))
	assert.Nil(t, search.SelectedTender())
}

func TestFacets(t *testing.T) {
	store := newTestStore(t)
	search := newSearchService(t, store, testTenders(), newLedgerService(t, store))

	assert.Equal(t, []string{"Eko sklad", "Ministrstvo za kmetijstvo", "SPIRIT Slovenija"}, search.Institutions())
	assert.Equal(t, []string{"Kmetijska gospodarstva", "Mala podjetja", "Velika podjetja"}, search.EligibleEntities())
}
