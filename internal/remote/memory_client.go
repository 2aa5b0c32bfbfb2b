package remote

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

// MemoryClient is an in-process implementation of the remote CRUD contract.
// Slugs are unique per resource and locale; updates carrying a stale version
// fail with ErrUpdateConflict.
type MemoryClient struct {
	mu         sync.RWMutex
	resources  map[string]*memoryResource
	validators map[string][]DocumentValidator
	newID      func() string
}

type memoryResource struct {
	order []string
	docs  map[string]interfaces.RemoteDocument
}

// MemoryOption configures a MemoryClient.
type MemoryOption func(*MemoryClient)

// WithValidators registers document validators for resource.
func WithValidators(resource string, validators ...DocumentValidator) MemoryOption {
	return func(c *MemoryClient) {
		c.validators[resource] = append(c.validators[resource], validators...)
	}
}

// WithIDGenerator overrides the uuid based id generator.
func WithIDGenerator(fn func() string) MemoryOption {
	return func(c *MemoryClient) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewMemoryClient constructs an empty client.
func NewMemoryClient(opts ...MemoryOption) *MemoryClient {
	c := &MemoryClient{
		resources:  map[string]*memoryResource{},
		validators: map[string][]DocumentValidator{},
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

var _ interfaces.RemoteClient = (*MemoryClient)(nil)

func (c *MemoryClient) Create(ctx context.Context, resource string, doc interfaces.RemoteDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ValidateDocument(doc, c.validators[resource]...); err != nil {
		return "", err
	}
	store := c.resource(resource)
	id := strings.TrimSpace(doc.ID)
	if id == "" {
		id = c.newID()
	}
	if _, exists := store.docs[id]; exists {
		return "", &DuplicateKeyError{Field: "id", Value: id}
	}
	if err := store.checkSlugs(id, doc); err != nil {
		return "", err
	}

	stored := CloneDocument(doc)
	stored.ID = id
	stored.Version = 1
	store.docs[id] = stored
	store.order = append(store.order, id)
	return id, nil
}

func (c *MemoryClient) Read(ctx context.Context, resource string, filter interfaces.RemoteFilter) ([]interfaces.RemoteDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	store, ok := c.resources[resource]
	if !ok {
		return nil, nil
	}
	var out []interfaces.RemoteDocument
	for _, id := range store.order {
		doc := store.docs[id]
		if filter.ID != "" && filter.ID != id {
			continue
		}
		if !matchesTranslation(doc, filter.Locale, filter.Slug) {
			continue
		}
		out = append(out, CloneDocument(doc))
	}
	return out, nil
}

func (c *MemoryClient) Update(ctx context.Context, resource string, doc interfaces.RemoteDocument) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	store, ok := c.resources[resource]
	if !ok {
		return false, nil
	}
	current, ok := store.docs[doc.ID]
	if !ok {
		return false, nil
	}
	if doc.Version != 0 && doc.Version != current.Version {
		return false, ErrUpdateConflict
	}
	if err := ValidateDocument(doc, c.validators[resource]...); err != nil {
		return false, err
	}
	if err := store.checkSlugs(doc.ID, doc); err != nil {
		return false, err
	}
	stored := CloneDocument(doc)
	stored.Version = current.Version + 1
	store.docs[doc.ID] = stored
	return true, nil
}

func (c *MemoryClient) Delete(ctx context.Context, resource string, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	store, ok := c.resources[resource]
	if !ok {
		return false, nil
	}
	if _, ok := store.docs[key]; !ok {
		return false, nil
	}
	delete(store.docs, key)
	for i, id := range store.order {
		if id == key {
			store.order = append(store.order[:i], store.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (c *MemoryClient) resource(name string) *memoryResource {
	store, ok := c.resources[name]
	if !ok {
		store = &memoryResource{docs: map[string]interfaces.RemoteDocument{}}
		c.resources[name] = store
	}
	return store
}

func (r *memoryResource) checkSlugs(id string, doc interfaces.RemoteDocument) error {
	for _, pair := range slugIndex(doc) {
		locale, slug := pair[0], pair[1]
		for otherID, other := range r.docs {
			if otherID == id {
				continue
			}
			if slugOf(other.Translations[locale]) == slug {
				return &DuplicateKeyError{Locale: locale, Field: "slug", Value: slug}
			}
		}
	}
	return nil
}

func matchesTranslation(doc interfaces.RemoteDocument, locale, slug string) bool {
	if locale == "" && slug == "" {
		return true
	}
	for docLocale, values := range doc.Translations {
		if locale != "" && docLocale != locale {
			continue
		}
		if slug != "" && slugOf(values) != slug {
			continue
		}
		return true
	}
	return false
}

func slugOf(values map[string]any) string {
	slug, _ := values["slug"].(string)
	return strings.TrimSpace(slug)
}
