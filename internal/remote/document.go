package remote

import (
	"fmt"

	"github.com/goliatone/go-cms-editor/internal/records"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

// Decoder turns one remote translation map into a payload.
type Decoder[T records.Translation[T]] func(values map[string]any) (T, error)

// ToDocument serialises record into the wire shape.
func ToDocument[T records.Translation[T]](id string, version int, record records.Record[T]) interfaces.RemoteDocument {
	doc := interfaces.RemoteDocument{
		ID:           id,
		Version:      version,
		Translations: make(map[string]map[string]any, record.Len()),
	}
	for _, entry := range record.Entries() {
		doc.Translations[entry.Locale] = entry.Payload.Values()
	}
	return doc
}

// FromDocument decodes doc into a record. Locales are ordered by id since the
// wire map carries no order.
func FromDocument[T records.Translation[T]](doc interfaces.RemoteDocument, decode Decoder[T]) (records.Record[T], error) {
	entries := make([]records.Entry[T], 0, len(doc.Translations))
	for _, locale := range sortedLocales(doc.Translations) {
		payload, err := decode(doc.Translations[locale])
		if err != nil {
			return records.Record[T]{}, fmt.Errorf("decode %s translation: %w", locale, err)
		}
		entries = append(entries, records.Entry[T]{Locale: locale, Payload: payload})
	}
	return records.FromEntries(entries...), nil
}

// CloneDocument copies doc one level deep.
func CloneDocument(doc interfaces.RemoteDocument) interfaces.RemoteDocument {
	out := interfaces.RemoteDocument{
		ID:           doc.ID,
		Version:      doc.Version,
		Translations: make(map[string]map[string]any, len(doc.Translations)),
	}
	for locale, values := range doc.Translations {
		copied := make(map[string]any, len(values))
		for key, value := range values {
			copied[key] = value
		}
		out.Translations[locale] = copied
	}
	return out
}
