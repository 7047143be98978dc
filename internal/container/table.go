// Package container holds the core data structures of the store: the
// TTL-aware hash table, the hash set with set algebra, the AVL-backed
// ordered set, and the singly linked list. None of them lock; callers
// serialize access (the engine holds one mutex per command).
package container

import (
	"iter"
	"time"
)

// ExpiryStatus reports the TTL state of a key.
type ExpiryStatus int

const (
	// StatusNotFound means that the key does not exist
	StatusNotFound ExpiryStatus = -2
	// StatusNoExpiry means that the key exists, but it does not have a TTL
	StatusNoExpiry ExpiryStatus = -1
	// StatusActive means that the key has an active lifetime
	StatusActive ExpiryStatus = 1
)

// entry is a single slot. expireAt is unix nanoseconds, 0 means never.
type entry[V any] struct {
	value    V
	expireAt int64
}

// Table is a key-value table with optional per-entry expiry. Expired
// entries are removed lazily: Get, Values and Entries physically delete
// an expired slot the moment they observe it. Has and Keys check
// residency only and may see not-yet-swept slots.
type Table[K comparable, V any] struct {
	slots map[K]entry[V]
	now   func() time.Time // injectable clock, tests run on simulated time
}

// NewTable creates an empty table.
func NewTable[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{
		slots: make(map[K]entry[V]),
		now:   time.Now,
	}
}

// Set inserts or overwrites a value, clearing any expiry.
func (t *Table[K, V]) Set(key K, value V) {
	t.slots[key] = entry[V]{value: value}
}

// SetEx inserts or overwrites a value expiring after ttl.
func (t *Table[K, V]) SetEx(key K, value V, ttl time.Duration) {
	t.slots[key] = entry[V]{
		value:    value,
		expireAt: t.now().Add(ttl).UnixNano(),
	}
}

// Get returns the value for key. A slot whose expiry has passed is
// deleted as a side effect and reported as absent.
func (t *Table[K, V]) Get(key K) (V, bool) {
	e, ok := t.slots[key]
	if !ok {
		var zero V
		return zero, false
	}

	if t.expired(e) {
		delete(t.slots, key)
		var zero V
		return zero, false
	}

	return e.value, true
}

// Has reports slot residency. It does not evaluate expiry: a slot that
// expired but was never swept still reports true until the next Get or
// iteration touches it.
func (t *Table[K, V]) Has(key K) bool {
	_, ok := t.slots[key]
	return ok
}

// Delete removes the key. Returns true if the key was resident.
func (t *Table[K, V]) Delete(key K) bool {
	if _, ok := t.slots[key]; ok {
		delete(t.slots, key)
		return true
	}
	return false
}

// ExpireAt sets the expiry of an existing entry to now + ttl.
// Returns false without effect if the key is absent.
func (t *Table[K, V]) ExpireAt(key K, ttl time.Duration) bool {
	e, ok := t.slots[key]
	if !ok {
		return false
	}
	e.expireAt = t.now().Add(ttl).UnixNano()
	t.slots[key] = e
	return true
}

// TTL returns the remaining lifetime of key. The duration is only
// meaningful when the status is StatusActive; a slot past its expiry
// that was never swept reports StatusNotFound and is deleted.
func (t *Table[K, V]) TTL(key K) (time.Duration, ExpiryStatus) {
	e, ok := t.slots[key]
	if !ok {
		return 0, StatusNotFound
	}
	if e.expireAt == 0 {
		return 0, StatusNoExpiry
	}

	remaining := e.expireAt - t.now().UnixNano()
	if remaining <= 0 {
		delete(t.slots, key)
		return 0, StatusNotFound
	}
	return time.Duration(remaining), StatusActive
}

// Persist clears the expiry of key. Returns false if the key is absent.
func (t *Table[K, V]) Persist(key K) bool {
	e, ok := t.slots[key]
	if !ok {
		return false
	}
	e.expireAt = 0
	t.slots[key] = e
	return true
}

// Keys iterates over resident keys in no particular order. Expired
// slots are not filtered out here; only value-visiting iteration sweeps.
func (t *Table[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.slots {
			if !yield(k) {
				return
			}
		}
	}
}

// Values iterates over live values, sweeping expired slots on the way.
func (t *Table[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for k, e := range t.slots {
			if t.expired(e) {
				delete(t.slots, k)
				continue
			}
			if !yield(e.value) {
				return
			}
		}
	}
}

// Entries iterates over live key/value pairs, sweeping expired slots.
func (t *Table[K, V]) Entries() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, e := range t.slots {
			if t.expired(e) {
				delete(t.slots, k)
				continue
			}
			if !yield(k, e.value) {
				return
			}
		}
	}
}

// Len returns the number of resident slots, swept or not.
func (t *Table[K, V]) Len() int {
	return len(t.slots)
}

// Clear drops every slot.
func (t *Table[K, V]) Clear() {
	clear(t.slots)
}

func (t *Table[K, V]) expired(e entry[V]) bool {
	return e.expireAt != 0 && t.now().UnixNano() > e.expireAt
}
