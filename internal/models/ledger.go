package models

// Bookmark marks a tender as saved, with an optional user nickname.
// A bookmarked tender can never simultaneously be dismissed.
type Bookmark struct {
	TenderID int    `json:"id"`
	Nickname string `json:"nickname"`
}
