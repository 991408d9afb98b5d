package storage

// Logical keys, one per persisted entity.
const (
	KeySavedTenders    = "savedTenders"
	KeyUninteresting   = "uninterestingTenderIds"
	KeySavedSearches   = "savedSearches"
	KeyUserProfile     = "userProfile"
	KeyTheme           = "theme"
	KeySearchPageState = "searchPageState"
	KeyConversations   = "aiConversations"
)
