// Package keyspace implements the process-wide mapping from key names
// to stored values: scalar strings, lists, sets and ordered sets. The
// keyspace carries no lock of its own; the engine serializes commands.
package keyspace

import (
	"errors"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/junealder/eventide/internal/container"
)

var (
	ErrWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
	ErrNoSuchKey = errors.New("keyspace: no such key")
)

// Keyspace owns the shared key table. Construct one per process (or per
// test) and hand it to the engine; there is no package-level instance.
type Keyspace struct {
	table *container.Table[string, Entity]
}

// New creates an empty keyspace.
func New() *Keyspace {
	return &Keyspace{table: container.NewTable[string, Entity]()}
}

// Len returns the number of resident keys, swept or not.
func (k *Keyspace) Len() int {
	return k.table.Len()
}

// GetString returns the string stored at key. Fails with ErrWrongType
// when the key holds a container.
func (k *Keyspace) GetString(key string) (string, bool, error) {
	e, ok := k.table.Get(key)
	if !ok {
		return "", false, nil
	}
	if e.Type != TypeString {
		return "", false, ErrWrongType
	}
	return e.Value.(string), true, nil
}

// SetString stores a string at key, clearing any expiry.
func (k *Keyspace) SetString(key, value string) {
	k.table.Set(key, Entity{Type: TypeString, Value: value})
}

// SetStringEx stores a string at key expiring after ttl.
func (k *Keyspace) SetStringEx(key, value string, ttl time.Duration) {
	k.table.SetEx(key, Entity{Type: TypeString, Value: value}, ttl)
}

// Del removes the given keys and returns how many were resident.
func (k *Keyspace) Del(keys ...string) int {
	deleted := 0
	for _, key := range keys {
		if k.table.Delete(key) {
			deleted++
		}
	}
	return deleted
}

// Exists counts how many of the given keys are resident. A key passed
// twice is counted twice.
func (k *Keyspace) Exists(keys ...string) int {
	found := 0
	for _, key := range keys {
		if k.table.Has(key) {
			found++
		}
	}
	return found
}

// Keys returns the names of live keys matching a glob pattern. Only the
// `*` wildcard is supported; it is translated to a regular expression.
func (k *Keyspace) Keys(pattern string) ([]string, error) {
	re, err := compileGlob(pattern)
	if err != nil {
		return nil, err
	}

	matched := []string{}
	for key := range k.table.Entries() {
		if re.MatchString(key) {
			matched = append(matched, key)
		}
	}
	return matched, nil
}

// Type returns the type tag of the value stored at key, or "none".
func (k *Keyspace) Type(key string) string {
	e, ok := k.table.Get(key)
	if !ok {
		return "none"
	}
	return e.Type.String()
}

// Expire sets the key's expiry to now + ttl. Returns false if absent.
func (k *Keyspace) Expire(key string, ttl time.Duration) bool {
	return k.table.ExpireAt(key, ttl)
}

// TTL returns the remaining lifetime of key.
func (k *Keyspace) TTL(key string) (time.Duration, container.ExpiryStatus) {
	return k.table.TTL(key)
}

// Persist clears the key's expiry. Returns false if absent.
func (k *Keyspace) Persist(key string) bool {
	return k.table.Persist(key)
}

// Rename moves the value (and its remaining lifetime) from oldKey to
// newKey, overwriting the destination. Fails if oldKey does not exist.
func (k *Keyspace) Rename(oldKey, newKey string) error {
	e, ok := k.table.Get(oldKey)
	if !ok {
		return ErrNoSuchKey
	}

	remaining, status := k.table.TTL(oldKey)
	k.table.Delete(oldKey)

	if status == container.StatusActive {
		k.table.SetEx(newKey, e, remaining)
	} else {
		k.table.Set(newKey, e)
	}
	return nil
}

// RenameNX renames oldKey to newKey only when the destination does not
// exist. Returns false when it refused.
func (k *Keyspace) RenameNX(oldKey, newKey string) (bool, error) {
	if !k.table.Has(oldKey) {
		return false, ErrNoSuchKey
	}
	if k.table.Has(newKey) {
		return false, nil
	}
	return true, k.Rename(oldKey, newKey)
}

// RandomKey returns a uniformly selected live key, or false when the
// keyspace is empty.
func (k *Keyspace) RandomKey() (string, bool) {
	live := make([]string, 0, k.table.Len())
	for key := range k.table.Entries() {
		live = append(live, key)
	}
	if len(live) == 0 {
		return "", false
	}
	return live[rand.Intn(len(live))], true
}

// SetOf returns the set stored at key, creating it when absent.
func (k *Keyspace) SetOf(key string) (*container.Set[string], error) {
	e, ok := k.table.Get(key)
	if !ok {
		s := container.NewSet[string]()
		k.table.Set(key, Entity{Type: TypeSet, Value: s})
		return s, nil
	}
	if e.Type != TypeSet {
		return nil, ErrWrongType
	}
	return e.Value.(*container.Set[string]), nil
}

// FindSet returns the set stored at key, or nil when absent.
func (k *Keyspace) FindSet(key string) (*container.Set[string], error) {
	e, ok := k.table.Get(key)
	if !ok {
		return nil, nil
	}
	if e.Type != TypeSet {
		return nil, ErrWrongType
	}
	return e.Value.(*container.Set[string]), nil
}

// ZSetOf returns the ordered set stored at key, creating it when absent.
// Members are ordered lexicographically.
func (k *Keyspace) ZSetOf(key string) (*container.OrderedSet[string], error) {
	e, ok := k.table.Get(key)
	if !ok {
		z := container.NewOrderedSet[string]()
		k.table.Set(key, Entity{Type: TypeZSet, Value: z})
		return z, nil
	}
	if e.Type != TypeZSet {
		return nil, ErrWrongType
	}
	return e.Value.(*container.OrderedSet[string]), nil
}

// FindZSet returns the ordered set stored at key, or nil when absent.
func (k *Keyspace) FindZSet(key string) (*container.OrderedSet[string], error) {
	e, ok := k.table.Get(key)
	if !ok {
		return nil, nil
	}
	if e.Type != TypeZSet {
		return nil, ErrWrongType
	}
	return e.Value.(*container.OrderedSet[string]), nil
}

// ListOf returns the list stored at key, creating it when absent.
func (k *Keyspace) ListOf(key string) (*container.List[string], error) {
	e, ok := k.table.Get(key)
	if !ok {
		l := container.NewList[string]()
		k.table.Set(key, Entity{Type: TypeList, Value: l})
		return l, nil
	}
	if e.Type != TypeList {
		return nil, ErrWrongType
	}
	return e.Value.(*container.List[string]), nil
}

// FindList returns the list stored at key, or nil when absent.
func (k *Keyspace) FindList(key string) (*container.List[string], error) {
	e, ok := k.table.Get(key)
	if !ok {
		return nil, nil
	}
	if e.Type != TypeList {
		return nil, ErrWrongType
	}
	return e.Value.(*container.List[string]), nil
}

// compileGlob translates a `*` glob into an anchored regular expression.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.Compile("^" + strings.Join(parts, ".*") + "$")
}
