package driving

import "github.com/custodia-labs/replybot/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, stored values over defaults.
	Get() (*domain.AppSettings, error)

	// Set validates and persists a single setting by its dot-notation key.
	// The value is given as text and converted to the key's type.
	Set(key, value string) error

	// Keys returns every supported setting key in display order.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
