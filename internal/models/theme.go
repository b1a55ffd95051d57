package models

// Theme is a named visual palette from the static catalog.
type Theme struct {
	ID                     int64  `gorm:"primaryKey" json:"id"`
	Name                   string `gorm:"uniqueIndex;not null" json:"name"`
	PrimaryColor           string `json:"primaryColor"`
	SecondaryColor         string `json:"secondaryColor"`
	BackgroundColor        string `json:"backgroundColor"`
	MessageBackgroundSelf  string `json:"messageBackgroundSelf"`
	MessageBackgroundOther string `json:"messageBackgroundOther"`
	TextColor              string `json:"textColor"`
}

// Setting is a key/value row for process-wide state that survives restarts
// when a database driver is configured (e.g. the active theme pointer).
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

// ActiveThemeKey is the settings key holding the active theme id.
const ActiveThemeKey = "active_theme_id"
