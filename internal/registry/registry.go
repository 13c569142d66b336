// Package registry maps the resident addresses of serializable code references to
// stable names.
//
// A Table is populated once at startup from an explicit list of (name, value) pairs,
// sorted by address, and then only read. Address lookups binary-search the sorted
// table; name lookups scan it, comparing cached name hashes first.
package registry

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/go-multierror"
)

var (
	ErrDuplicateName    = errors.New("registry: duplicate name")
	ErrDuplicateAddress = errors.New("registry: duplicate address")
	ErrInvalidEntry     = errors.New("registry: invalid entry")
)

// Entry connects a name with the value registered under it.
type Entry struct {
	Name  string
	Addr  uintptr
	Value any

	hash uint64
}

// Def is one registration: a name and a func value or pointer.
type Def struct {
	Name  string
	Value any
}

// Table is a sorted name/address registry. It is immutable once built.
type Table struct {
	kind    string
	entries []Entry
}

// Build resolves the address of every definition, sorts the table by address and
// validates that names and addresses are unique. All problems are reported together.
func Build(kind string, defs []Def) (*Table, error) {
	var errs *multierror.Error
	entries := make([]Entry, 0, len(defs))
	for i, d := range defs {
		if d.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s entry %d has no name", ErrInvalidEntry, kind, i))
			continue
		}
		addr, err := AddressOf(d.Value)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s %q: %w", kind, d.Name, err))
			continue
		}
		if addr == 0 {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s %q is nil", ErrInvalidEntry, kind, d.Name))
			continue
		}
		entries = append(entries, Entry{
			Name:  d.Name,
			Addr:  addr,
			Value: d.Value,
			hash:  xxhash.Sum64String(d.Name),
		})
	}

	SortByAddress(entries)

	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		if _, ok := seen[entries[i].Name]; ok {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s %q", ErrDuplicateName, kind, entries[i].Name))
		}
		seen[entries[i].Name] = struct{}{}
		if i > 0 && entries[i].Addr == entries[i-1].Addr {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s %q and %q share %#x",
				ErrDuplicateAddress, kind, entries[i-1].Name, entries[i].Name, entries[i].Addr))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &Table{kind: kind, entries: entries}, nil
}

// MustBuild is Build for static tables; it panics on configuration errors.
func MustBuild(kind string, defs []Def) *Table {
	t, err := Build(kind, defs)
	if err != nil {
		panic(err)
	}
	return t
}

// AddressOf returns the resident address of a func value or pointer. Nil values have
// address zero.
func AddressOf(v any) (uintptr, error) {
	if v == nil {
		return 0, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.UnsafePointer:
		return rv.Pointer(), nil
	default:
		return 0, fmt.Errorf("%w: %T is not a func or pointer", ErrInvalidEntry, v)
	}
}

func (t *Table) Kind() string { return t.kind }

func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the table in address order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}
