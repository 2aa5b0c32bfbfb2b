package editor

import "github.com/goliatone/go-cms-editor/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired   = runtimeconfig.ErrDefaultLocaleRequired
	ErrDefaultLocaleUnknown    = runtimeconfig.ErrDefaultLocaleUnknown
	ErrLocaleCodeInvalid       = runtimeconfig.ErrLocaleCodeInvalid
	ErrLocaleDuplicate         = runtimeconfig.ErrLocaleDuplicate
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrStorageDialectUnknown   = runtimeconfig.ErrStorageDialectUnknown
	ErrThumbnailLimitInvalid   = runtimeconfig.ErrThumbnailLimitInvalid
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

const (
	StorageMemory = runtimeconfig.StorageMemory
	StorageBun    = runtimeconfig.StorageBun
)

type (
	Config          = runtimeconfig.Config
	LocaleConfig    = runtimeconfig.LocaleConfig
	StorageConfig   = runtimeconfig.StorageConfig
	CacheConfig     = runtimeconfig.CacheConfig
	ThumbnailConfig = runtimeconfig.ThumbnailConfig
	PostConfig      = runtimeconfig.PostConfig
	Features        = runtimeconfig.Features
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
