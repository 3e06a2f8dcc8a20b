package domain

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

const DefaultCurrency = "USD"

// Settings are display preferences plus the net-worth inclusion policy
type Settings struct {
	Currency                string `json:"currency"`
	Theme                   Theme  `json:"theme"`
	IncludeCreditInNetWorth bool   `json:"includeCreditInNetWorth"`
}

// DefaultSettings returns the settings of a fresh tracker
func DefaultSettings() Settings {
	return Settings{
		Currency:                DefaultCurrency,
		Theme:                   ThemeLight,
		IncludeCreditInNetWorth: false,
	}
}

// SettingsPatch is a partial update; nil fields are left untouched
type SettingsPatch struct {
	Currency                *string `json:"currency,omitempty"`
	Theme                   *Theme  `json:"theme,omitempty"`
	IncludeCreditInNetWorth *bool   `json:"includeCreditInNetWorth,omitempty"`
}

func (p SettingsPatch) Apply(s *Settings) {
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.IncludeCreditInNetWorth != nil {
		s.IncludeCreditInNetWorth = *p.IncludeCreditInNetWorth
	}
}
