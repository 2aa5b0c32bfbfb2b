package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

const (
	rootModule       = "editor"
	localesModule    = "editor.locales"
	sessionModule    = "editor.session"
	thumbnailsModule = "editor.thumbnails"
	remoteModule     = "editor.remote"
)

const (
	fieldResource = "resource"
	fieldRecordID = "record_id"
	fieldLocale   = "locale"
	fieldMediaID  = "media_id"
	fieldSize     = "size"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// LocalesLogger returns the logger namespace reserved for the locale registry.
func LocalesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, localesModule)
}

// SessionLogger returns the logger namespace reserved for edit sessions.
func SessionLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sessionModule)
}

// ThumbnailsLogger returns the logger namespace reserved for thumbnail services.
func ThumbnailsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, thumbnailsModule)
}

// RemoteLogger returns the logger namespace reserved for remote adapters.
func RemoteLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, remoteModule)
}

// WithRecordContext enriches the logger with resource, record id and locale.
// Empty values are skipped.
func WithRecordContext(logger interfaces.Logger, resource, recordID, locale string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(resource); trimmed != "" {
		fields[fieldResource] = trimmed
	}
	if trimmed := strings.TrimSpace(recordID); trimmed != "" {
		fields[fieldRecordID] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	return WithFields(logger, fields)
}

// WithMediaContext enriches the logger with media id and thumbnail size.
func WithMediaContext(logger interfaces.Logger, mediaID, size string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(mediaID); trimmed != "" {
		fields[fieldMediaID] = trimmed
	}
	if trimmed := strings.TrimSpace(size); trimmed != "" {
		fields[fieldSize] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
