package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-cms-editor/internal/runtimeconfig"
)

func TestConfigValidate_DefaultsAreValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.StorageProvider() != runtimeconfig.StorageMemory {
		t.Fatalf("expected memory storage by default, got %q", cfg.StorageProvider())
	}
}

func TestConfigValidate_RequiresDefaultLocale(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLocale = " "

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrDefaultLocaleRequired) {
		t.Fatalf("expected ErrDefaultLocaleRequired, got %v", err)
	}
}

func TestConfigValidate_DefaultLocaleMustBeConfigured(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLocale = "de"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrDefaultLocaleUnknown) {
		t.Fatalf("expected ErrDefaultLocaleUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidAndDuplicateLocales(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Locales = append(cfg.Locales, runtimeconfig.LocaleConfig{Code: "not a locale!"})
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLocaleCodeInvalid) {
		t.Fatalf("expected ErrLocaleCodeInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Locales = append(cfg.Locales, runtimeconfig.LocaleConfig{Code: "FR"})
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLocaleDuplicate) {
		t.Fatalf("expected ErrLocaleDuplicate, got %v", err)
	}
}

func TestConfigValidate_BunStorageNeedsDSNAndDialect(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.DSN = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}

	cfg.Storage.DSN = "file::memory:"
	cfg.Storage.Dialect = "oracle"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDialectUnknown) {
		t.Fatalf("expected ErrStorageDialectUnknown, got %v", err)
	}

	cfg.Storage.Provider = "redis"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeLimits(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Thumbnails.MaxPerMedia = -1
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrThumbnailLimitInvalid) {
		t.Fatalf("expected ErrThumbnailLimitInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Cache.DefaultTTL = -1
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCacheTTLInvalid) {
		t.Fatalf("expected ErrCacheTTLInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingLevelAndFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
