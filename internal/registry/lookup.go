package registry

import "github.com/cespare/xxhash/v2"

// Lookup finds the entry registered at addr by binary search. Only exact matches are
// returned.
func (t *Table) Lookup(addr uintptr) (Entry, bool) {
	lo, hi := 0, len(t.entries)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch a := t.entries[mid].Addr; {
		case a == addr:
			return t.entries[mid], true
		case a < addr:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return Entry{}, false
}

// LookupValue resolves a func value or pointer to its entry.
func (t *Table) LookupValue(v any) (Entry, bool) {
	addr, err := AddressOf(v)
	if err != nil || addr == 0 {
		return Entry{}, false
	}
	return t.Lookup(addr)
}

// Find scans the table for name. It only runs on the load path.
func (t *Table) Find(name string) (Entry, bool) {
	h := xxhash.Sum64String(name)
	for i := range t.entries {
		if t.entries[i].hash == h && t.entries[i].Name == name {
			return t.entries[i], true
		}
	}
	return Entry{}, false
}
