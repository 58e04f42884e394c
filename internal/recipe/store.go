package recipe

import (
	"fmt"
	"sync"
)

// ChangeKind names the mutation a Change describes.
type ChangeKind int

const (
	ChangeAdd ChangeKind = iota
	ChangeRemove
	ChangeUpdate
	ChangeLabel
	ChangeName
	ChangeReplace
)

// Change describes one store mutation, delivered to subscribers after the
// mutation has been applied. EntryID and Field are set when they apply to
// the kind.
type Change struct {
	Kind    ChangeKind
	EntryID string
	Field   Field
}

// Store is the authoritative, ordered collection of entries for one
// recipe. All mutation goes through it, and every read of a derived value
// reflects the latest mutation. Derived values are cached per entry and
// evicted exactly when their source entry changes, so a read recomputes
// only what a mutation touched. A Store is safe for concurrent use;
// handlers serving the same session may overlap.
type Store struct {
	mu      sync.RWMutex
	name    string
	entries []Entry

	derived  map[string]Derived
	aggEntry Entry
	agg      Derived
	aggClean bool

	version uint64
	subs    []func(Change)
}

// NewStore returns an empty recipe.
func NewStore() *Store {
	return &Store{derived: make(map[string]Derived)}
}

// AddEntry appends a new entry and returns its id. It always succeeds;
// out-of-domain seed values are coerced to zero.
func (s *Store) AddEntry(init EntryInit) string {
	s.mu.Lock()
	e := newEntry(init)
	s.entries = append(s.entries, e)
	s.aggClean = false
	s.version++
	subs := s.snapshotSubs()
	s.mu.Unlock()

	publish(subs, Change{Kind: ChangeAdd, EntryID: e.ID})
	return e.ID
}

// RemoveEntry removes the entry with the given id. An absent id is a
// no-op, so a double-submitted remove never errors.
func (s *Store) RemoveEntry(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	delete(s.derived, id)
	s.aggClean = false
	s.version++
	subs := s.snapshotSubs()
	s.mu.Unlock()

	publish(subs, Change{Kind: ChangeRemove, EntryID: id})
}

// UpdateField replaces one numeric field of one entry. A negative or
// non-finite value fails with ErrInvalidInput and leaves the entry, and
// everything derived from it, untouched. An absent id is a no-op, like
// RemoveEntry.
func (s *Store) UpdateField(id string, field Field, value float64) error {
	if err := validateQuantity(value); err != nil {
		return err
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	if !field.apply(&s.entries[i], value) {
		s.mu.Unlock()
		return fmt.Errorf("%w: unknown field %q", ErrInvalidInput, string(field))
	}
	delete(s.derived, id)
	s.aggClean = false
	s.version++
	subs := s.snapshotSubs()
	s.mu.Unlock()

	publish(subs, Change{Kind: ChangeUpdate, EntryID: id, Field: field})
	return nil
}

// SetLabel renames one entry. Labels play no part in derivation, so
// cached values stay valid. An absent id is a no-op.
func (s *Store) SetLabel(id, label string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.entries[i].Label = label
	s.version++
	subs := s.snapshotSubs()
	s.mu.Unlock()

	publish(subs, Change{Kind: ChangeLabel, EntryID: id})
}

// SetName renames the recipe.
func (s *Store) SetName(name string) {
	s.mu.Lock()
	s.name = name
	s.version++
	subs := s.snapshotSubs()
	s.mu.Unlock()

	publish(subs, Change{Kind: ChangeName})
}

// Replace swaps the whole recipe in one step. Share links and catalog
// prefills go through here, so imported values are coerced the same way
// AddEntry coerces them and every entry gets a fresh id.
func (s *Store) Replace(name string, inits []EntryInit) {
	entries := make([]Entry, 0, len(inits))
	for _, init := range inits {
		entries = append(entries, newEntry(init))
	}

	s.mu.Lock()
	s.name = name
	s.entries = entries
	s.derived = make(map[string]Derived, len(entries))
	s.aggClean = false
	s.version++
	subs := s.snapshotSubs()
	s.mu.Unlock()

	publish(subs, Change{Kind: ChangeReplace})
}

// Reset discards every entry and the recipe name.
func (s *Store) Reset() {
	s.Replace("", nil)
}

// Entries returns the entries in insertion order. The returned slice is a
// snapshot the caller may keep.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Entry returns the entry with the given id.
func (s *Store) Entry(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.entries[i], true
	}
	return Entry{}, false
}

// Derived returns the computed values for one entry, recomputing them if
// the entry changed since the last read.
func (s *Store) Derived(id string) (Derived, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return Derived{}, false
	}
	d, ok := s.derived[id]
	if !ok {
		d = Derive(s.entries[i])
		s.derived[id] = d
	}
	return d, true
}

// AggregateEntry returns the synthetic entry holding the field-wise sums
// over the whole recipe. An empty recipe sums to all zeros.
func (s *Store) AggregateEntry() Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshAggregate()
	return s.aggEntry
}

// AggregateDerived returns the derived values for the whole recipe,
// recomputing them if any entry changed since the last read.
func (s *Store) AggregateDerived() Derived {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshAggregate()
	return s.agg
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Name returns the recipe name, possibly empty.
func (s *Store) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// Version counts mutations. Two equal versions bracket an unchanged
// store, which lets pollers and caches skip re-rendering.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers fn to run after every mutation. Callbacks run on
// the mutating goroutine, outside the store lock, in registration order,
// and last for the life of the store.
func (s *Store) Subscribe(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// indexOf returns the position of id, or -1. Callers must hold mu.
func (s *Store) indexOf(id string) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// refreshAggregate recomputes the aggregate when a mutation invalidated
// it. Callers must hold mu.
func (s *Store) refreshAggregate() {
	if s.aggClean {
		return
	}
	s.aggEntry = Aggregate(s.entries)
	s.agg = Derive(s.aggEntry)
	s.aggClean = true
}

func (s *Store) snapshotSubs() []func(Change) {
	if len(s.subs) == 0 {
		return nil
	}
	out := make([]func(Change), len(s.subs))
	copy(out, s.subs)
	return out
}

func publish(subs []func(Change), c Change) {
	for _, fn := range subs {
		fn(c)
	}
}
