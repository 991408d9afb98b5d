package models

// Profile is the user's company profile. CompanyName, Industry and
// MainGoals feed the assistant's system instruction; the remaining fields
// are persisted for the profile page only.
type Profile struct {
	CompanyName        string `json:"companyName"`
	Industry           string `json:"industry"`
	CompanySize        string `json:"companySize"`
	MainGoals          string `json:"mainGoals"`
	ProjectDescription string `json:"projectDescription"`
	CompanyWebsite     string `json:"companyWebsite"`
	FundingExperience  string `json:"fundingExperience"`
	KeyTechnologies    string `json:"keyTechnologies"`
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
