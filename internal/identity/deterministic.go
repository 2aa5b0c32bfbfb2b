package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by entity type to prevent cross-entity collisions.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// LocaleUUID identifies a registered locale by its code.
func LocaleUUID(code string) uuid.UUID {
	return UUID("go-cms-editor:locale:" + strings.ToLower(strings.TrimSpace(code)))
}

// ThumbnailKey identifies a thumbnail by media id and size string. The same
// pair always yields the same key.
func ThumbnailKey(mediaID, size string) string {
	return UUID("go-cms-editor:thumbnail:" + strings.TrimSpace(mediaID) + ":" + strings.ToLower(strings.TrimSpace(size))).String()
}

// TranslationUUID identifies the row holding one locale of a record.
func TranslationUUID(recordID uuid.UUID, locale string) uuid.UUID {
	return UUID("go-cms-editor:translation:" + recordID.String() + ":" + strings.ToLower(strings.TrimSpace(locale)))
}
