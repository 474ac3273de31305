package dashboard

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"maintdesk/internal/domain/reference"
	"maintdesk/internal/shared/logger"
)

// Kind names one reference-data list.
type Kind string

const (
	KindSections    Kind = "sections"
	KindFacilities  Kind = "facilities"
	KindTechnicians Kind = "technicians"
	KindUsers       Kind = "users"
)

// KindState is the observable loading/error state of one kind. Kinds are
// fully independent: a failed technicians fetch never blocks sections.
type KindState struct {
	Loading bool
	Loaded  bool
	Err     error
}

type cacheEntry struct {
	items   any
	loaded  bool
	loading bool
	err     error
}

// ReferenceCache is the one shared, single-fetch store of reference data per
// session. The first caller for a kind triggers exactly one fetch; concurrent
// callers join the in-flight call, later callers get the cached value. Data
// is invalidated only by an explicit Refetch, never by time.
type ReferenceCache struct {
	svc    ReferenceService
	logger logger.Interface

	group singleflight.Group

	mu      sync.RWMutex
	entries map[Kind]*cacheEntry
	subs    map[int]chan Kind
	nextSub int
}

func NewReferenceCache(svc ReferenceService, log logger.Interface) *ReferenceCache {
	return &ReferenceCache{
		svc:     svc,
		logger:  log,
		entries: make(map[Kind]*cacheEntry),
		subs:    make(map[int]chan Kind),
	}
}

// Sections returns the cached section list, fetching it on first use.
func (c *ReferenceCache) Sections(ctx context.Context) ([]reference.Section, error) {
	v, err := c.get(ctx, KindSections)
	if err != nil {
		return nil, err
	}
	return v.([]reference.Section), nil
}

func (c *ReferenceCache) Facilities(ctx context.Context) ([]reference.Facility, error) {
	v, err := c.get(ctx, KindFacilities)
	if err != nil {
		return nil, err
	}
	return v.([]reference.Facility), nil
}

func (c *ReferenceCache) Technicians(ctx context.Context) ([]reference.Technician, error) {
	v, err := c.get(ctx, KindTechnicians)
	if err != nil {
		return nil, err
	}
	return v.([]reference.Technician), nil
}

func (c *ReferenceCache) Users(ctx context.Context) ([]reference.User, error) {
	v, err := c.get(ctx, KindUsers)
	if err != nil {
		return nil, err
	}
	return v.([]reference.User), nil
}

// State reports the loading/error state of a kind without triggering a fetch.
func (c *ReferenceCache) State(kind Kind) KindState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[kind]
	if !ok {
		return KindState{}
	}
	return KindState{Loading: e.loading, Loaded: e.loaded, Err: e.err}
}

// Refetch drops the cached value for a kind, fetches it again, and broadcasts
// the invalidation to every subscriber. Used after reference records are
// edited by the admin-management side.
func (c *ReferenceCache) Refetch(ctx context.Context, kind Kind) error {
	c.mu.Lock()
	delete(c.entries, kind)
	c.mu.Unlock()
	c.group.Forget(string(kind))

	_, err := c.get(ctx, kind)
	c.broadcast(kind)
	return err
}

// Subscribe registers for invalidation broadcasts. The returned cancel
// function must be called when the consumer goes away.
func (c *ReferenceCache) Subscribe() (<-chan Kind, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	ch := make(chan Kind, 4)
	c.subs[id] = ch
	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *ReferenceCache) broadcast(kind Kind) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ch := range c.subs {
		// Non-blocking: a slow subscriber misses the intermediate signal but
		// still observes the fresh value on its next Get.
		select {
		case ch <- kind:
		default:
		}
	}
}

func (c *ReferenceCache) get(ctx context.Context, kind Kind) (any, error) {
	if e, ok := c.cached(kind); ok {
		return e.items, e.err
	}

	c.setLoading(kind, true)
	v, err, _ := c.group.Do(string(kind), func() (any, error) {
		return c.load(ctx, kind)
	})
	return v, err
}

// cached returns a copy of the committed entry for a kind, if any.
func (c *ReferenceCache) cached(kind Kind) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[kind]; ok && e.loaded {
		return *e, true
	}
	return cacheEntry{}, false
}

// load runs inside a singleflight round. A caller that saw an unloaded entry
// but only entered its round after the winning fetch committed would otherwise
// fetch a second time; the re-check here returns the committed entry instead.
func (c *ReferenceCache) load(ctx context.Context, kind Kind) (any, error) {
	if e, ok := c.cached(kind); ok {
		return e.items, e.err
	}

	items, err := c.fetch(ctx, kind)

	c.mu.Lock()
	c.entries[kind] = &cacheEntry{items: items, loaded: true, err: err}
	c.mu.Unlock()

	if err != nil {
		c.logger.Errorw("reference data fetch failed", "kind", kind, "error", err)
	}
	return items, err
}

func (c *ReferenceCache) setLoading(kind Kind, loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[kind]
	if !ok {
		e = &cacheEntry{}
		c.entries[kind] = e
	}
	if !e.loaded {
		e.loading = loading
	}
}

func (c *ReferenceCache) fetch(ctx context.Context, kind Kind) (any, error) {
	switch kind {
	case KindSections:
		return c.svc.ListSections(ctx)
	case KindFacilities:
		return c.svc.ListFacilities(ctx)
	case KindTechnicians:
		return c.svc.ListTechnicians(ctx)
	case KindUsers:
		return c.svc.ListUsers(ctx)
	default:
		return nil, fmt.Errorf("unknown reference kind: %s", kind)
	}
}
