package recordscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	deleteRecordMessageType = "editor.records.delete"
	importPostMessageType   = "editor.records.import_markdown_post"
)

// DeleteRecordCommand removes a persisted record of Resource.
type DeleteRecordCommand struct {
	Resource string `json:"resource"`
	RecordID string `json:"record_id"`
}

// Type implements command.Message.
func (DeleteRecordCommand) Type() string { return deleteRecordMessageType }

// Validate ensures both the resource and the record id are present.
func (cmd DeleteRecordCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Resource, validation.By(requireText("editor.records.resource_required", "resource is required"))),
		validation.Field(&cmd.RecordID, validation.By(requireText("editor.records.record_id_required", "record id is required"))),
	)
}

// ImportMarkdownPostCommand turns a Markdown document with front matter into
// one post translation and submits it. When RecordID is blank the post is
// matched by its slug in the target locale, and a new record is created when
// nothing matches.
type ImportMarkdownPostCommand struct {
	Source []byte `json:"source"`
	// Locale is used when the document's front matter does not name one.
	Locale   string `json:"locale,omitempty"`
	RecordID string `json:"record_id,omitempty"`
}

// Type implements command.Message.
func (ImportMarkdownPostCommand) Type() string { return importPostMessageType }

// Validate ensures a document was supplied.
func (cmd ImportMarkdownPostCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Source, validation.By(func(value any) error {
			if len(strings.TrimSpace(string(value.([]byte)))) == 0 {
				return validation.NewError("editor.records.source_required", "markdown source is required")
			}
			return nil
		})),
	)
}

func requireText(code, message string) validation.RuleFunc {
	return func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
