package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"tenders-ai/internal/models"
	"tenders-ai/pkg/config"

	"go.uber.org/zap"
)

// LoadErrorMessage is the localized message shown when the catalog cannot
// be populated. There is no retry policy beyond reloading the application.
const LoadErrorMessage = "Napaka pri nalaganju razpisov. Poskusite znova kasneje."

// Loader fetches the complete ordered tender list exactly once at startup.
// The source is either an http(s) URL or a local JSON file.
type Loader struct {
	source string
	client *http.Client
	logger *zap.Logger
}

func NewLoader(cfg *config.CatalogConfig, logger *zap.Logger) *Loader {
	return &Loader{
		source: cfg.Source,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

func (l *Loader) Load(ctx context.Context) ([]models.Tender, error) {
	var (
		tenders []models.Tender
		err     error
	)
	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		tenders, err = l.fetch(ctx)
	} else {
		tenders, err = l.readFile()
	}
	if err != nil {
		return nil, err
	}

	l.logger.Info("Tender catalog loaded",
		zap.String("source", l.source),
		zap.Int("count", len(tenders)),
	)
	return tenders, nil
}

func (l *Loader) fetch(ctx context.Context) ([]models.Tender, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch failed with status %d", resp.StatusCode)
	}

	var tenders []models.Tender
	if err := json.NewDecoder(resp.Body).Decode(&tenders); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return tenders, nil
}

func (l *Loader) readFile() ([]models.Tender, error) {
	raw, err := os.ReadFile(l.source)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var tenders []models.Tender
	if err := json.Unmarshal(raw, &tenders); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file: %w", err)
	}
	return tenders, nil
}
