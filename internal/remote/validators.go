package remote

import (
	"errors"

	"github.com/goliatone/go-cms-editor/internal/records"
	"github.com/goliatone/go-cms-editor/internal/validation"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

// DocumentValidator inspects a document before a sandbox backend stores it.
// It returns a *FieldValidationError or nil.
type DocumentValidator func(doc interfaces.RemoteDocument) error

// PayloadValidator decodes every translation and runs the payload rules.
// Failures are reported under "translations.<locale>.<field>".
func PayloadValidator[T records.Translation[T]](decode Decoder[T]) DocumentValidator {
	return func(doc interfaces.RemoteDocument) error {
		fields := map[string]string{}
		for _, locale := range sortedLocales(doc.Translations) {
			payload, err := decode(doc.Translations[locale])
			if err != nil {
				fields[translationPath(locale, "")] = err.Error()
				continue
			}
			for field, message := range records.FieldMessages(payload.Validate()) {
				fields[translationPath(locale, field)] = message
			}
		}
		return fieldErrorOrNil(fields)
	}
}

// MetaSchemaValidator checks every translation's "meta" object against v.
func MetaSchemaValidator(v *validation.MetaValidator) DocumentValidator {
	return func(doc interfaces.RemoteDocument) error {
		if v == nil {
			return nil
		}
		fields := map[string]string{}
		for _, locale := range sortedLocales(doc.Translations) {
			meta, _ := doc.Translations[locale][records.FieldMeta].(map[string]any)
			err := v.Validate(meta)
			if err == nil {
				continue
			}
			for path, message := range validation.FieldPaths(err, translationPath(locale, records.FieldMeta)) {
				fields[path] = message
			}
		}
		return fieldErrorOrNil(fields)
	}
}

// ValidateDocument runs validators and merges their field errors. A document
// without translations fails with "translations": "required".
func ValidateDocument(doc interfaces.RemoteDocument, validators ...DocumentValidator) error {
	fields := map[string]string{}
	if len(doc.Translations) == 0 {
		fields["translations"] = "required"
	}
	for _, validate := range validators {
		if validate == nil {
			continue
		}
		err := validate(doc)
		if err == nil {
			continue
		}
		var fieldErr *FieldValidationError
		if !errors.As(err, &fieldErr) || fieldErr == nil {
			return err
		}
		for path, message := range fieldErr.Fields {
			if _, exists := fields[path]; !exists {
				fields[path] = message
			}
		}
	}
	return fieldErrorOrNil(fields)
}

func translationPath(locale, field string) string {
	if field == "" {
		return "translations." + locale
	}
	return "translations." + locale + "." + field
}

func fieldErrorOrNil(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &FieldValidationError{Fields: fields}
}

// slugIndex lists locale/slug pairs of doc in locale order.
func slugIndex(doc interfaces.RemoteDocument) [][2]string {
	var out [][2]string
	for _, locale := range sortedLocales(doc.Translations) {
		slug := slugOf(doc.Translations[locale])
		if slug == "" {
			continue
		}
		out = append(out, [2]string{locale, slug})
	}
	return out
}
