package models

import (
	"fmt"
	"time"
)

type FundingType string

const (
	FundingGrant            FundingType = "Nepovratna sredstva"
	FundingSubsidy          FundingType = "Subvencija"
	FundingCoInvestment     FundingType = "So-investicija"
	FundingRepayableAid     FundingType = "Vračljiva pomoč"
	FundingSubsidizedCredit FundingType = "Subvencioniran kredit"
)

type Category string

const (
	CategoryTechnology       Category = "Tehnologija in inovacije"
	CategoryGreenTransition  Category = "Zeleni prehod"
	CategoryAgriculture      Category = "Kmetijstvo"
	CategoryTourism          Category = "Turizem"
	CategoryDigitalization   Category = "Digitalizacija"
	CategorySocialEnterprise Category = "Socialno podjetništvo"
)

// deadlineLayout is the calendar-date format used across the catalog.
const deadlineLayout = "2006-01-02"

// Tender is one public funding opportunity. The catalog is loaded once at
// startup and tenders are read-only for the lifetime of the session.
type Tender struct {
	ID               int         `json:"id"`
	Title            string      `json:"title"`
	Summary          string      `json:"summary"`
	Institution      string      `json:"institution"`
	FundingMin       int64       `json:"fundingMin"`
	FundingMax       int64       `json:"fundingMax"`
	Deadline         string      `json:"deadline"`
	FundingType      FundingType `json:"fundingType"`
	EligibleEntities []string    `json:"eligibleEntities"`
	Category         Category    `json:"category"`
	FullDescription  string      `json:"fullDescription"`
	ConclusionPoints []string    `json:"conclusionPoints"`
}

// DeadlineDate parses the tender deadline as a calendar date.
func (t Tender) DeadlineDate() (time.Time, error) {
	d, err := time.Parse(deadlineLayout, t.Deadline)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid deadline %q: %w", t.Deadline, err)
	}
	return d, nil
}

func ParseFundingType(s string) (FundingType, error) {
	switch ft := FundingType(s); ft {
	case FundingGrant, FundingSubsidy, FundingCoInvestment, FundingRepayableAid, FundingSubsidizedCredit:
		return ft, nil
	}
	return "", fmt.Errorf("unknown funding type: %q", s)
}

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryTechnology, CategoryGreenTransition, CategoryAgriculture,
		CategoryTourism, CategoryDigitalization, CategorySocialEnterprise:
		return c, nil
	}
	return "", fmt.Errorf("unknown category: %q", s)
}
