package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

var (
	// ErrDefaultLocaleRequired indicates a blank default locale.
	ErrDefaultLocaleRequired = errors.New("editor config: default locale is required")
	// ErrDefaultLocaleUnknown indicates a default locale missing from the configured locales.
	ErrDefaultLocaleUnknown = errors.New("editor config: default locale must be one of the configured locales")
	// ErrLocaleCodeInvalid indicates a locale code that is not a BCP 47 tag.
	ErrLocaleCodeInvalid = errors.New("editor config: locale code is invalid")
	// ErrLocaleDuplicate indicates the same locale configured twice.
	ErrLocaleDuplicate = errors.New("editor config: locale configured more than once")

	ErrStorageProviderUnknown = errors.New("editor config: storage provider is invalid")
	ErrStorageDSNRequired     = errors.New("editor config: storage dsn is required for the bun provider")
	ErrStorageDialectUnknown  = errors.New("editor config: storage dialect is invalid")
	ErrThumbnailLimitInvalid  = errors.New("editor config: thumbnail limit must be zero or positive")
	ErrCacheTTLInvalid        = errors.New("editor config: cache ttl must be zero or positive")

	ErrLoggingProviderRequired = errors.New("editor config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown  = errors.New("editor config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("editor config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("editor config: logging format is invalid")
)

const (
	StorageMemory = "memory"
	StorageBun    = "bun"
)

// Config aggregates feature flags and adapter bindings for the editor module.
type Config struct {
	DefaultLocale string
	Locales       []LocaleConfig
	Storage       StorageConfig
	Cache         CacheConfig
	Thumbnails    ThumbnailConfig
	Posts         PostConfig
	Features      Features
	Logging       LoggingConfig
}

// LocaleConfig seeds one locale of the registry.
type LocaleConfig struct {
	Code        string
	DisplayName string
}

// StorageConfig selects the backend behind the remote contract.
type StorageConfig struct {
	Provider string
	Dialect  string
	DSN      string
	// Migrate creates the sandbox tables on startup.
	Migrate bool
}

// CacheConfig captures the read cache placed over bun repositories.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// ThumbnailConfig captures thumbnail service limits.
type ThumbnailConfig struct {
	MaxPerMedia int
}

// PostConfig captures post specific options.
type PostConfig struct {
	// MetaSchema is a JSON schema (or fields shorthand) applied to post meta.
	MetaSchema map[string]any
}

// Features toggles module functionality.
type Features struct {
	Thumbnails     bool
	MarkdownImport bool
	Commands       bool
	Logger         bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns an in-memory configuration with English and French.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		Locales: []LocaleConfig{
			{Code: "en"},
			{Code: "fr"},
		},
		Storage: StorageConfig{
			Provider: StorageMemory,
			Dialect:  "sqlite",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Features: Features{
			Thumbnails:     true,
			MarkdownImport: true,
			Commands:       true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	defaultLocale := strings.TrimSpace(cfg.DefaultLocale)
	if defaultLocale == "" {
		return ErrDefaultLocaleRequired
	}
	seen := make(map[string]struct{}, len(cfg.Locales))
	for _, locale := range cfg.Locales {
		code := strings.TrimSpace(locale.Code)
		if _, err := language.Parse(code); err != nil {
			return fmt.Errorf("%w: %q", ErrLocaleCodeInvalid, locale.Code)
		}
		key := strings.ToLower(code)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s", ErrLocaleDuplicate, code)
		}
		seen[key] = struct{}{}
	}
	if len(seen) > 0 {
		if _, ok := seen[strings.ToLower(defaultLocale)]; !ok {
			return fmt.Errorf("%w: %s", ErrDefaultLocaleUnknown, defaultLocale)
		}
	}

	switch normalize(cfg.Storage.Provider) {
	case "", StorageMemory:
	case StorageBun:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
		if !isSupportedDialect(cfg.Storage.Dialect) {
			return fmt.Errorf("%w: %s", ErrStorageDialectUnknown, cfg.Storage.Dialect)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}

	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Thumbnails.MaxPerMedia < 0 {
		return ErrThumbnailLimitInvalid
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// StorageProvider returns the normalised provider name, defaulting to memory.
func (cfg Config) StorageProvider() string {
	if provider := normalize(cfg.Storage.Provider); provider != "" {
		return provider
	}
	return StorageMemory
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDialect(dialect string) bool {
	switch normalize(dialect) {
	case "sqlite", "sqlite3", "postgres", "postgresql", "pg":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
