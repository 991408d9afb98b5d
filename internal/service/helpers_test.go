package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"tenders-ai/internal/models"
	"tenders-ai/internal/repository"
	"tenders-ai/internal/service"
	"tenders-ai/internal/storage"
	"tenders-ai/pkg/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	cfg := config.StorageConfig{Path: filepath.Join(t.TempDir(), "test.db")}
	store, err := storage.Open(context.Background(), &cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newLedgerService(t *testing.T, store *storage.Store) *service.LedgerService {
	t.Helper()
	repo := repository.NewLedgerRepository(store, zap.NewNop())
	ledger, err := service.NewLedgerService(context.Background(), repo, zap.NewNop())
	require.NoError(t, err)
	return ledger
}

func newSearchService(t *testing.T, store *storage.Store, tenders []models.Tender, ledger *service.LedgerService) *service.SearchService {
	t.Helper()
	uiRepo := repository.NewUIStateRepository(store, zap.NewNop())
	search, err := service.NewSearchService(context.Background(), tenders, ledger, uiRepo, zap.NewNop())
	require.NoError(t, err)
	return search
}

// testTenders covers both sort scenarios: by fundingMax desc the order is
// [2 1], by deadline asc it is [1 2].
func testTenders() []models.Tender {
	return []models.Tender{
		{
			ID:               1,
			Title:            "Digitalna preobrazba MSP",
			Summary:          "Sofinanciranje digitalnih rešitev.",
			Institution:      "SPIRIT Slovenija",
			FundingMin:       1000,
			FundingMax:       5000,
			Deadline:         "2025-01-10",
			FundingType:      models.FundingSubsidy,
			EligibleEntities: []string{"Mala podjetja"},
			Category:         models.CategoryDigitalization,
		},
		{
			ID:               2,
			Title:            "Zeleni prehod v proizvodnji",
			Summary:          "Zmanjšanje ogljičnega odtisa.",
			Institution:      "Eko sklad",
			FundingMin:       2000,
			FundingMax:       9000,
			Deadline:         "2025-02-01",
			FundingType:      models.FundingGrant,
			EligibleEntities: []string{"Velika podjetja"},
			Category:         models.CategoryGreenTransition,
		},
		{
			ID:               3,
			Title:            "Spodbude za mlade kmete",
			Summary:          "Zagonska pomoč kmetijam.",
			Institution:      "Ministrstvo za kmetijstvo",
			FundingMin:       500,
			FundingMax:       5000,
			Deadline:         "2025-01-20",
			FundingType:      models.FundingSubsidy,
			EligibleEntities: []string{"Kmetijska gospodarstva", "Mala podjetja"},
			Category:         models.CategoryAgriculture,
		},
	}
}

func tenderIDs(tenders []models.Tender) []int {
	ids := make([]int, len(tenders))
	for i, t := range tenders {
		ids[i] = t.ID
	}
	return ids
}
