package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spicehouse/storefront-api/internal/domains/catalog/domain"
	"github.com/spicehouse/storefront-api/internal/domains/catalog/ports"
	"github.com/spicehouse/storefront-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory menu catalog used for tests and local
// development without a database.
type Repository struct {
	mu     sync.RWMutex
	items  map[int64]*storedItem
	nextID int64
	now    func() time.Time
}

type storedItem struct {
	item     *domain.MenuItem
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory catalog.
func NewRepository() *Repository {
	return &Repository{
		items:  map[int64]*storedItem{},
		nextID: 1,
		now:    time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(_ context.Context, item *domain.MenuItem) (*projection.Projection[*domain.MenuItem], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *item
	clone.ID = r.nextID
	r.nextID++
	timestamp := r.now()
	stored := &storedItem{
		item:     &clone,
		metadata: projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp},
	}
	r.items[clone.ID] = stored
	return itemCopy(stored), nil
}

func (r *Repository) Update(_ context.Context, item *domain.MenuItem) (*projection.Projection[*domain.MenuItem], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[item.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *item
	stored.item = &clone
	stored.metadata.UpdatedAt = r.now()
	return itemCopy(stored), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.MenuItem], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return itemCopy(stored), nil
}

func (r *Repository) List(_ context.Context, category domain.Category) ([]*projection.Projection[*domain.MenuItem], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*projection.Projection[*domain.MenuItem]
	for _, stored := range r.items {
		if category != "" && stored.item.Category != category {
			continue
		}
		list = append(list, itemCopy(stored))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Entity.Category != list[j].Entity.Category {
			return list[i].Entity.Category < list[j].Entity.Category
		}
		return list[i].Entity.ID < list[j].Entity.ID
	})
	return list, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func itemCopy(stored *storedItem) *projection.Projection[*domain.MenuItem] {
	clone := *stored.item
	return &projection.Projection[*domain.MenuItem]{
		Entity:   &clone,
		Metadata: stored.metadata,
	}
}
