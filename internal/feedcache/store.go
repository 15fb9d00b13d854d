// Package feedcache keeps an in-memory copy of paginated feed queries and
// reconciles reaction toggles against it optimistically: the cached pages are
// patched before the server confirms, rolled back verbatim on failure, and
// refreshed from the source of truth on success.
package feedcache

import (
	"context"
	"sync"

	"nostagram/internal/models"
)

// tempIDBase keeps speculative reaction ids out of the range real rows use.
const tempIDBase = 1 << 31

// Reaction is the cached view of one reaction row.
type Reaction struct {
	ID     uint
	Type   models.ReactionType
	UserID uint
}

// Entry is one cached feed item (a post or a comment) with its reactions.
type Entry struct {
	ID        uint
	Reactions []Reaction
}

// Page is one cached page of a query.
type Page struct {
	Entries    []Entry
	NextCursor *uint
}

// Fetcher reloads all pages of a query from the source of truth.
type Fetcher func(ctx context.Context, key string) ([]Page, error)

type query struct {
	pages []Page
	// cancel stops the in-flight refetch, if any. A toggle must cancel it
	// before patching so a stale response cannot overwrite the patch.
	cancel context.CancelFunc
}

// Store is a cache of feed queries supporting optimistic reaction toggles.
type Store struct {
	mu      sync.Mutex
	queries map[string]*query
	fetch   Fetcher
	nextID  uint
}

// NewStore creates a store backed by the given fetcher.
func NewStore(fetch Fetcher) *Store {
	return &Store{
		queries: make(map[string]*query),
		fetch:   fetch,
		nextID:  tempIDBase,
	}
}

// Put replaces the cached pages for a query.
func (s *Store) Put(key string, pages []Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.ensureLocked(key)
	q.pages = clonePages(pages)
}

// Get returns a deep copy of the cached pages for a query.
func (s *Store) Get(key string) ([]Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.queries[key]
	if !ok || q.pages == nil {
		return nil, false
	}
	return clonePages(q.pages), true
}

// Mutation is one in-progress optimistic toggle. Exactly one of Rollback or
// Commit must be called.
type Mutation struct {
	store     *Store
	keys      []string
	snapshots map[string][]Page
}

// BeginToggle cancels any in-flight refetch of the affected queries, snapshots
// their current pages, and patches the cached entry as if the toggle already
// succeeded. The returned mutation carries the snapshots for rollback.
func (s *Store) BeginToggle(keys []string, entryID, userID uint, reactionType models.ReactionType) *Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &Mutation{
		store:     s,
		keys:      keys,
		snapshots: make(map[string][]Page, len(keys)),
	}

	for _, key := range keys {
		q, ok := s.queries[key]
		if !ok {
			continue
		}
		if q.cancel != nil {
			q.cancel()
			q.cancel = nil
		}
		m.snapshots[key] = clonePages(q.pages)
		s.patchLocked(q, entryID, userID, reactionType)
	}
	return m
}

// Rollback restores every affected query to its pre-toggle snapshot, verbatim.
func (m *Mutation) Rollback() {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for key, snap := range m.snapshots {
		if q, ok := m.store.queries[key]; ok {
			q.pages = snap
		}
	}
}

// Commit discards the snapshots and refetches the affected queries in the
// background. The speculative patch stays visible until fresh pages arrive.
func (m *Mutation) Commit(ctx context.Context) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, key := range m.keys {
		if _, ok := m.snapshots[key]; !ok {
			continue
		}
		m.store.refetchLocked(ctx, key)
	}
}

// Invalidate drops a query and cancels its in-flight refetch.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q, ok := s.queries[key]; ok {
		if q.cancel != nil {
			q.cancel()
		}
		delete(s.queries, key)
	}
}

func (s *Store) ensureLocked(key string) *query {
	q, ok := s.queries[key]
	if !ok {
		q = &query{}
		s.queries[key] = q
	}
	return q
}

// patchLocked applies the three-state toggle to the cached entry: no existing
// reaction appends one with a fabricated id, the same type removes it, a
// different type rewrites it in place.
func (s *Store) patchLocked(q *query, entryID, userID uint, reactionType models.ReactionType) {
	for pi := range q.pages {
		for ei := range q.pages[pi].Entries {
			entry := &q.pages[pi].Entries[ei]
			if entry.ID != entryID {
				continue
			}

			for ri, r := range entry.Reactions {
				if r.UserID != userID {
					continue
				}
				if r.Type == reactionType {
					entry.Reactions = append(entry.Reactions[:ri], entry.Reactions[ri+1:]...)
				} else {
					entry.Reactions[ri].Type = reactionType
				}
				return
			}

			entry.Reactions = append(entry.Reactions, Reaction{
				ID:     s.tempIDLocked(),
				Type:   reactionType,
				UserID: userID,
			})
			return
		}
	}
}

func (s *Store) tempIDLocked() uint {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) refetchLocked(ctx context.Context, key string) {
	if s.fetch == nil {
		return
	}
	q := s.ensureLocked(key)
	if q.cancel != nil {
		q.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	q.cancel = cancel

	go func() {
		pages, err := s.fetch(fetchCtx, key)
		if err != nil || fetchCtx.Err() != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		cur, ok := s.queries[key]
		if !ok || fetchCtx.Err() != nil {
			return
		}
		cur.pages = clonePages(pages)
		if cur.cancel != nil {
			cur.cancel()
			cur.cancel = nil
		}
	}()
}

func clonePages(pages []Page) []Page {
	if pages == nil {
		return nil
	}
	out := make([]Page, len(pages))
	for i, p := range pages {
		cp := Page{}
		if p.NextCursor != nil {
			c := *p.NextCursor
			cp.NextCursor = &c
		}
		if p.Entries != nil {
			cp.Entries = make([]Entry, len(p.Entries))
			for j, e := range p.Entries {
				ce := Entry{ID: e.ID}
				if e.Reactions != nil {
					ce.Reactions = make([]Reaction, len(e.Reactions))
					copy(ce.Reactions, e.Reactions)
				}
				cp.Entries[j] = ce
			}
		}
		out[i] = cp
	}
	return out
}
