package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driven"
	"github.com/custodia-labs/replybot/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyServerAddr          = "server.addr"
	keyServerOrigins       = "server.allowed_origins"
	keyServerRateLimit     = "server.rate_limit"
	keyServerBurst         = "server.burst"
	keyCorpusSource        = "corpus.source"
	keyCorpusPath          = "corpus.path"
	keyAnalysisLanguage    = "analysis.language"
	keyAnalysisMinTermLen  = "analysis.min_term_length"
	keyVectoriserNormalise = "vectoriser.norm"
)

// settingKeys lists every supported key in display order.
var settingKeys = []string{
	keyServerAddr,
	keyServerOrigins,
	keyServerRateLimit,
	keyServerBurst,
	keyCorpusSource,
	keyCorpusPath,
	keyAnalysisLanguage,
	keyAnalysisMinTermLen,
	keyVectoriserNormalise,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Unset or unrecognised enum values fall back to their defaults; the
// merged result must still pass validation.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Server: domain.ServerSettings{
			Addr:           s.getString(keyServerAddr, defaults.Server.Addr),
			AllowedOrigins: s.getStringSlice(keyServerOrigins, defaults.Server.AllowedOrigins),
			RateLimit:      s.getFloat(keyServerRateLimit, defaults.Server.RateLimit),
			Burst:          s.getInt(keyServerBurst, defaults.Server.Burst),
		},
		Corpus: domain.CorpusSettings{
			Source: s.getCorpusSource(defaults.Corpus.Source),
			Path:   s.getString(keyCorpusPath, defaults.Corpus.Path),
		},
		Analysis: domain.AnalysisSettings{
			Language:      s.getString(keyAnalysisLanguage, defaults.Analysis.Language),
			MinTermLength: s.getInt(keyAnalysisMinTermLen, defaults.Analysis.MinTermLength),
		},
		Vectoriser: domain.VectoriserSettings{
			Norm: s.getVectorNorm(defaults.Vectoriser.Norm),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings in %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Set converts value to the type of key, validates the resulting
// settings and persists the value.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		// Allow repairing a broken file one key at a time.
		defaults := domain.DefaultAppSettings()
		settings = &defaults
	}

	value = strings.TrimSpace(value)
	var stored any

	switch key {
	case keyServerAddr:
		settings.Server.Addr = value
		stored = value
	case keyServerOrigins:
		origins := splitList(value)
		settings.Server.AllowedOrigins = origins
		stored = origins
	case keyServerRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Server.RateLimit = f
		stored = f
	case keyServerBurst:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Server.Burst = n
		stored = n
	case keyCorpusSource:
		settings.Corpus.Source = domain.CorpusSourceType(value)
		stored = value
	case keyCorpusPath:
		settings.Corpus.Path = value
		stored = value
	case keyAnalysisLanguage:
		settings.Analysis.Language = value
		stored = value
	case keyAnalysisMinTermLen:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Analysis.MinTermLength = n
		stored = n
	case keyVectoriserNormalise:
		settings.Vectoriser.Norm = domain.VectorNorm(value)
		stored = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every supported setting key in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Value renders a single setting from settings as text, in the same form
// Set accepts.
func Value(settings *domain.AppSettings, key string) (string, bool) {
	switch key {
	case keyServerAddr:
		return settings.Server.Addr, true
	case keyServerOrigins:
		return strings.Join(settings.Server.AllowedOrigins, ","), true
	case keyServerRateLimit:
		return strconv.FormatFloat(settings.Server.RateLimit, 'g', -1, 64), true
	case keyServerBurst:
		return strconv.Itoa(settings.Server.Burst), true
	case keyCorpusSource:
		return settings.Corpus.Source.String(), true
	case keyCorpusPath:
		return settings.Corpus.Path, true
	case keyAnalysisLanguage:
		return settings.Analysis.Language, true
	case keyAnalysisMinTermLen:
		return strconv.Itoa(settings.Analysis.MinTermLength), true
	case keyVectoriserNormalise:
		return settings.Vectoriser.Norm.String(), true
	default:
		return "", false
	}
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getCorpusSource(defaultVal domain.CorpusSourceType) domain.CorpusSourceType {
	val := s.configStore.GetString(keyCorpusSource)
	if val == "" {
		return defaultVal
	}
	source := domain.CorpusSourceType(val)
	if !source.IsValid() {
		return defaultVal
	}
	return source
}

func (s *SettingsService) getVectorNorm(defaultVal domain.VectorNorm) domain.VectorNorm {
	val := s.configStore.GetString(keyVectoriserNormalise)
	if val == "" {
		return defaultVal
	}
	norm := domain.VectorNorm(val)
	if !norm.IsValid() {
		return defaultVal
	}
	return norm
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
