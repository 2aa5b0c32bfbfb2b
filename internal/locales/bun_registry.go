package locales

import (
	"context"
	"errors"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-editor/internal/identity"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

// ErrLocaleNotFound indicates a registry lookup for an unknown code.
var ErrLocaleNotFound = errors.New("locales: locale not found")

// LocaleRecord is the persisted registry row.
type LocaleRecord struct {
	bun.BaseModel `bun:"table:editor_locales,alias:el"`

	ID          uuid.UUID `bun:",pk,type:uuid"                 json:"id"`
	Code        string    `bun:"code,notnull,unique"           json:"code"`
	DisplayName string    `bun:"display_name,notnull"          json:"display_name"`
	Position    int       `bun:"position,notnull,default:0"    json:"position"`
	IsActive    bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// BunRegistry persists the locale list and publishes changes made through it.
type BunRegistry struct {
	repo        repository.Repository[*LocaleRecord]
	broadcaster *broadcaster
}

var _ interfaces.LocaleRegistry = (*BunRegistry)(nil)

// NewBunRegistry constructs a registry backed by the editor_locales table.
func NewBunRegistry(db *bun.DB) *BunRegistry {
	return &BunRegistry{
		repo:        newLocaleRepository(db),
		broadcaster: newBroadcaster(),
	}
}

func newLocaleRepository(db *bun.DB) repository.Repository[*LocaleRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*LocaleRecord]{
		NewRecord: func() *LocaleRecord { return &LocaleRecord{} },
		GetID: func(l *LocaleRecord) uuid.UUID {
			return l.ID
		},
		SetID: func(l *LocaleRecord, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(l *LocaleRecord) string {
			return l.Code
		},
	})
}

// Current lists active locales ordered by position.
func (r *BunRegistry) Current(ctx context.Context) ([]Descriptor, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.is_active = ?", true).
				OrderExpr("?TableAlias.position ASC, ?TableAlias.code ASC")
		}),
	)
	if err != nil {
		return nil, err
	}
	out := make([]Descriptor, 0, len(records))
	for _, record := range records {
		out = append(out, Descriptor{ID: record.Code, DisplayName: record.DisplayName})
	}
	return out, nil
}

// Upsert registers or updates a locale and publishes the resulting list.
func (r *BunRegistry) Upsert(ctx context.Context, desc Descriptor, position int) error {
	normalized, err := NewDescriptor(desc.ID, desc.DisplayName)
	if err != nil {
		return err
	}
	existing, err := r.repo.GetByIdentifier(ctx, normalized.ID)
	switch {
	case err == nil:
		existing.DisplayName = normalized.DisplayName
		existing.Position = position
		existing.IsActive = true
		existing.UpdatedAt = time.Now().UTC()
		if _, err := r.repo.Update(ctx, existing); err != nil {
			return err
		}
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		record := &LocaleRecord{
			ID:          identity.LocaleUUID(normalized.ID),
			Code:        normalized.ID,
			DisplayName: normalized.DisplayName,
			Position:    position,
			IsActive:    true,
			UpdatedAt:   time.Now().UTC(),
		}
		if _, err := r.repo.Create(ctx, record); err != nil {
			return err
		}
	default:
		return err
	}
	return r.publish(ctx)
}

// Deactivate hides a locale from the published list without deleting it.
func (r *BunRegistry) Deactivate(ctx context.Context, code string) error {
	existing, err := r.repo.GetByIdentifier(ctx, Canonical(code))
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return ErrLocaleNotFound
		}
		return err
	}
	if !existing.IsActive {
		return nil
	}
	existing.IsActive = false
	existing.UpdatedAt = time.Now().UTC()
	if _, err := r.repo.Update(ctx, existing); err != nil {
		return err
	}
	return r.publish(ctx)
}

// Subscribe delivers locale lists until ctx is cancelled.
func (r *BunRegistry) Subscribe(ctx context.Context) (<-chan []Descriptor, error) {
	return r.broadcaster.Subscribe(ctx)
}

func (r *BunRegistry) publish(ctx context.Context) error {
	list, err := r.Current(ctx)
	if err != nil {
		return err
	}
	r.broadcaster.Broadcast(list)
	return nil
}

// Seed upserts ids in order, deriving display names where needed.
func (r *BunRegistry) Seed(ctx context.Context, descriptors ...Descriptor) error {
	for i, desc := range descriptors {
		if strings.TrimSpace(desc.ID) == "" {
			continue
		}
		if err := r.Upsert(ctx, desc, i); err != nil {
			return err
		}
	}
	return nil
}

// Migrate creates the editor_locales table when missing.
func Migrate(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*LocaleRecord)(nil)).IfNotExists().Exec(ctx)
	return err
}
