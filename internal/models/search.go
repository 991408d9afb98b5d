package models

type SortKey string

const (
	SortByDeadline   SortKey = "deadline"
	SortByFundingMax SortKey = "fundingMax"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type SortConfig struct {
	Key       SortKey       `json:"key"`
	Direction SortDirection `json:"direction"`
}

// FilterAll is the wildcard value for enum and string filter fields.
const FilterAll = "all"

// FilterState is one full set of search criteria. Two copies live per
// search session: the pending copy edited by the user and the applied copy
// driving the visible result set.
type FilterState struct {
	Keyword           string `json:"keyword"`
	FundingType       string `json:"fundingType"`
	Category          string `json:"category"`
	Institution       string `json:"institution"`
	EligibleEntity    string `json:"eligibleEntity"`
	DeadlineStart     string `json:"deadlineStart"`
	DeadlineEnd       string `json:"deadlineEnd"`
	MinFunding        int64  `json:"minFunding"`
	MaxFunding        int64  `json:"maxFunding"`
	ShowSaved         bool   `json:"showSaved"`
	ShowUninteresting bool   `json:"showUninteresting"`
}

// DefaultFilterState returns the criteria a fresh search session starts with.
func DefaultFilterState() FilterState {
	return FilterState{
		Keyword:           "",
		FundingType:       FilterAll,
		Category:          FilterAll,
		Institution:       FilterAll,
		EligibleEntity:    FilterAll,
		ShowUninteresting: true,
	}
}

// PageSizes are the selectable items-per-page values.
var PageSizes = []int{10, 20, 50}

// SearchPageState is the persisted UI state of the browsing view.
type SearchPageState struct {
	SelectedTenderID *int        `json:"selectedTenderId"`
	Filters          FilterState `json:"filters"`
	AppliedFilters   FilterState `json:"activeFilters"`
	Sort             SortConfig  `json:"sortConfig"`
	CurrentPage      int         `json:"currentPage"`
	ItemsPerPage     int         `json:"itemsPerPage"`
}

func DefaultSearchPageState() SearchPageState {
	return SearchPageState{
		Filters:        DefaultFilterState(),
		AppliedFilters: DefaultFilterState(),
		Sort:           SortConfig{Key: SortByDeadline, Direction: SortAsc},
		CurrentPage:    1,
		ItemsPerPage:   10,
	}
}

// SummaryData aggregates the filtered result set.
type SummaryData struct {
	Count            int    `json:"count"`
	TotalMin         int64  `json:"totalMin"`
	TotalMax         int64  `json:"totalMax"`
	EarliestDeadline string `json:"earliestDeadline"`
	LatestDeadline   string `json:"latestDeadline"`
}

type NotificationFrequency string

const (
	NotifyWeekly  NotificationFrequency = "weekly"
	NotifyMonthly NotificationFrequency = "monthly"
)

// NotificationSettings are captured on saved searches but never activated
// in this scope.
type NotificationSettings struct {
	Enabled     bool                  `json:"enabled"`
	Frequency   NotificationFrequency `json:"frequency"`
	IncludeTips bool                  `json:"includeTips"`
	Email       string                `json:"email"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:     false,
		Frequency:   NotifyWeekly,
		IncludeTips: true,
		Email:       "",
	}
}

// SavedSearch is a named snapshot of filter criteria.
type SavedSearch struct {
	ID                   string               `json:"id"`
	Name                 string               `json:"name"`
	Filters              FilterState          `json:"filters"`
	NotificationSettings NotificationSettings `json:"notificationSettings"`
}
