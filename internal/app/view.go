package app

import "fmt"

// View identifies one page of the application shell.
type View string

const (
	ViewSearch         View = "search"
	ViewSavedTenders   View = "saved-tenders"
	ViewUninteresting  View = "uninteresting-tenders"
	ViewAIChat         View = "ai-chat"
	ViewSavedSearches  View = "saved-searches"
	ViewProfile        View = "profile"
)

// Views lists every page in sidebar order.
var Views = []View{
	ViewSearch,
	ViewSavedTenders,
	ViewUninteresting,
	ViewAIChat,
	ViewSavedSearches,
	ViewProfile,
}

func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewSearch, ViewSavedTenders, ViewUninteresting, ViewAIChat, ViewSavedSearches, ViewProfile:
		return v, nil
	}
	return "", fmt.Errorf("unknown view: %q", s)
}

// Title returns the localized page title. The switch is exhaustive over
// Views so adding a page is a compile-visible change.
func (v View) Title() string {
	switch v {
	case ViewSearch:
		return "Iskanje razpisov"
	case ViewSavedTenders:
		return "Shranjeni razpisi"
	case ViewUninteresting:
		return "Nezanimivi razpisi"
	case ViewAIChat:
		return "AI asistent"
	case ViewSavedSearches:
		return "Shranjena iskanja"
	case ViewProfile:
		return "Profil podjetja"
	}
	return string(v)
}
