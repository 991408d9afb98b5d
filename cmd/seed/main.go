package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"tenders-ai/internal/models"
	"tenders-ai/pkg/config"
	"tenders-ai/pkg/logger"

	"go.uber.org/zap"
)

// Writes a demo tender catalog to the configured catalog source so the
// application can run without a remote catalog endpoint.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	target := cfg.Catalog.Source
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			appLogger.Fatal("Failed to create catalog directory", zap.Error(err))
		}
	}

	tenders := demoCatalog()
	raw, err := json.MarshalIndent(tenders, "", "  ")
	if err != nil {
		appLogger.Fatal("Failed to encode catalog", zap.Error(err))
	}
	if err := os.WriteFile(target, raw, 0o644); err != nil {
		appLogger.Fatal("Failed to write catalog", zap.Error(err))
	}

	appLogger.Info("Demo catalog written",
		zap.String("path", target),
		zap.Int("tenders", len(tenders)),
	)
	fmt.Printf("Seeded %d tenders into %s\n", len(tenders), target)
}

func demoCatalog() []models.Tender {
	return []models.Tender{
		{
			ID:          1,
			Title:       "Digitalna preobrazba MSP 2026",
			Summary:     "Sofinanciranje uvedbe digitalnih rešitev v malih in srednjih podjetjih.",
			Institution: "SPIRIT Slovenija",
			FundingMin:  30000,
			FundingMax:  100000,
			Deadline:    "2026-03-31",
			FundingType: models.FundingGrant,
			EligibleEntities: []string{
				"Mala podjetja",
				"Srednja podjetja",
			},
			Category: models.CategoryDigitalization,
			FullDescription: "Javni razpis podpira celovito digitalno preobrazbo poslovanja.\n" +
				"### Upravičeni stroški\n" +
				"* Nakup programske opreme\n" +
				"* Stroški zunanjih svetovalcev\n" +
				"* Usposabljanje zaposlenih\n" +
				"Vloge se oddajo izključno elektronsko.",
			ConclusionPoints: []string{
				"Do 60 % sofinanciranja upravičenih stroškov",
				"Enostavna elektronska oddaja vloge",
			},
		},
		{
			ID:          2,
			Title:       "Zeleni prehod v proizvodnji",
			Summary:     "Nepovratna sredstva za zmanjšanje ogljičnega odtisa proizvodnih procesov.",
			Institution: "Eko sklad",
			FundingMin:  50000,
			FundingMax:  250000,
			Deadline:    "2026-05-15",
			FundingType: models.FundingGrant,
			EligibleEntities: []string{
				"Srednja podjetja",
				"Velika podjetja",
			},
			Category: models.CategoryGreenTransition,
			FullDescription: "Razpis sofinancira naložbe v energetsko učinkovitost.\n" +
				"### Prednostna področja\n" +
				"* Obnovljivi viri energije\n" +
				"* Krožno gospodarstvo\n" +
				"Višina podpore je odvisna od velikosti podjetja.",
			ConclusionPoints: []string{
				"Poudarek na merljivih prihrankih energije",
			},
		},
		{
			ID:          3,
			Title:       "Spodbude za mlade kmete",
			Summary:     "Zagonska pomoč mladim prevzemnikom kmetij.",
			Institution: "Ministrstvo za kmetijstvo",
			FundingMin:  18600,
			FundingMax:  45000,
			Deadline:    "2026-02-28",
			FundingType: models.FundingSubsidy,
			EligibleEntities: []string{
				"Kmetijska gospodarstva",
				"Fizične osebe",
			},
			Category: models.CategoryAgriculture,
			FullDescription: "Podpora je namenjena prevzemu in razvoju kmetij.\n" +
				"* Starost do 40 let\n" +
				"* Ustrezna poklicna usposobljenost\n" +
				"Sredstva se izplačajo v dveh obrokih.",
			ConclusionPoints: []string{
				"Pavšalna zagonska pomoč",
				"Izplačilo v dveh obrokih",
			},
		},
		{
			ID:          4,
			Title:       "So-investicija v visokotehnološka zagonska podjetja",
			Summary:     "Lastniško so-investiranje zasebnih vlagateljev in sklada v start-upe.",
			Institution: "Slovenski podjetniški sklad",
			FundingMin:  100000,
			FundingMax:  600000,
			Deadline:    "2026-09-30",
			FundingType: models.FundingCoInvestment,
			EligibleEntities: []string{
				"Zagonska podjetja",
				"Mala podjetja",
			},
			Category: models.CategoryTechnology,
			FullDescription: "Sklad so-investira skupaj z neodvisnimi zasebnimi vlagatelji.\n" +
				"### Pogoji\n" +
				"* Inovativen produkt z globalnim potencialom\n" +
				"* Zasebni vlagatelj prispeva vsaj polovico\n" +
				"Naložba se izvede v obliki konvertibilnega posojila.",
			ConclusionPoints: []string{
				"Lastniško financiranje brez zavarovanj",
			},
		},
		{
			ID:          5,
			Title:       "Subvencioniran kredit za turistično infrastrukturo",
			Summary:     "Ugodni krediti za obnovo nastanitvenih kapacitet.",
			Institution: "SID banka",
			FundingMin:  200000,
			FundingMax:  1500000,
			Deadline:    "2026-11-30",
			FundingType: models.FundingSubsidizedCredit,
			EligibleEntities: []string{
				"Srednja podjetja",
				"Velika podjetja",
			},
			Category: models.CategoryTourism,
			FullDescription: "Kreditna linija z znižano obrestno mero za turizem.\n" +
				"* Ročnost do 20 let\n" +
				"* Moratorij na odplačilo glavnice do 5 let\n" +
				"Vloga se odda prek spletnega portala banke.",
			ConclusionPoints: []string{
				"Znižana obrestna mera",
				"Dolga ročnost",
			},
		},
		{
			ID:          6,
			Title:       "Vračljiva pomoč za socialna podjetja",
			Summary:     "Vračljiva sredstva za rast podjetij z družbenim učinkom.",
			Institution: "Slovenski regionalno razvojni sklad",
			FundingMin:  10000,
			FundingMax:  80000,
			Deadline:    "2026-06-30",
			FundingType: models.FundingRepayableAid,
			EligibleEntities: []string{
				"Socialna podjetja",
				"Zadruge",
			},
			Category: models.CategorySocialEnterprise,
			FullDescription: "Pomoč se vrača po ugodni dinamiki glede na doseženi družbeni učinek.\n" +
				"### Merila\n" +
				"* Število novo ustvarjenih delovnih mest\n" +
				"* Vključevanje ranljivih skupin\n" +
				"Del pomoči se ob doseženih ciljih odpiše.",
			ConclusionPoints: []string{
				"Možnost delnega odpisa",
			},
		},
	}
}
