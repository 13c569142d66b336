package field

import (
	"fmt"
	"unsafe"

	"github.com/hashicorp/go-multierror"
)

// Layout is the ordered, immutable field table of one record kind. The fixed block
// of a record is the concatenation of its descriptors' slots in layout order.
type Layout[T any] struct {
	name  string
	descs []Descriptor[T]
	slots []int
	size  int
}

// NewLayout flattens groups into a layout for records named name. Each descriptor's
// offset is computed by probing a zero T. Names must be unique, no two fields may
// share a byte and every field must lie inside T.
func NewLayout[T any](name string, groups ...[]Descriptor[T]) (*Layout[T], error) {
	var probe T
	base := uintptr(unsafe.Pointer(&probe))
	limit := unsafe.Sizeof(probe)

	var errs *multierror.Error
	l := &Layout[T]{name: name}
	names := make(map[string]struct{})
	var spans []span
	for _, g := range groups {
		for _, d := range g {
			if d.err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", name, d.err))
				continue
			}
			if d.Name == "" {
				errs = multierror.Append(errs, fmt.Errorf("%w: %s has an unnamed field", ErrInvalidDescriptor, name))
				continue
			}
			if _, ok := names[d.Name]; ok {
				errs = multierror.Append(errs, fmt.Errorf("%w: %s.%s listed twice", ErrInvalidDescriptor, name, d.Name))
				continue
			}
			names[d.Name] = struct{}{}

			off := uintptr(d.addr(&probe)) - base
			if off >= limit || off+d.size > limit {
				errs = multierror.Append(errs, fmt.Errorf("%w: %s.%s is outside the record", ErrInvalidDescriptor, name, d.Name))
				continue
			}
			cur := span{name: d.Name, lo: off, hi: off + max(d.size, 1)}
			if prev, ok := overlapping(spans, cur); ok {
				errs = multierror.Append(errs, fmt.Errorf("%w: %s.%s and %s overlap at offset %d",
					ErrInvalidDescriptor, name, prev.name, d.Name, max(prev.lo, cur.lo)))
				continue
			}
			spans = append(spans, cur)
			d.Offset = off

			l.descs = append(l.descs, d)
			l.slots = append(l.slots, l.size)
			l.size += d.Width()
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return l, nil
}

// span is the byte range [lo, hi) a descriptor covers in its record.
type span struct {
	name   string
	lo, hi uintptr
}

func overlapping(spans []span, cur span) (span, bool) {
	for _, s := range spans {
		if cur.lo < s.hi && s.lo < cur.hi {
			return s, true
		}
	}
	return span{}, false
}

// MustLayout is NewLayout for package-level tables.
func MustLayout[T any](name string, groups ...[]Descriptor[T]) *Layout[T] {
	l, err := NewLayout(name, groups...)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Layout[T]) Name() string { return l.name }

// BlockSize is the size of a record's fixed block.
func (l *Layout[T]) BlockSize() int { return l.size }

func (l *Layout[T]) Len() int { return len(l.descs) }

func (l *Layout[T]) At(i int) Descriptor[T] { return l.descs[i] }

// Slot returns descriptor i's slot within block.
func (l *Layout[T]) Slot(block []byte, i int) []byte {
	off := l.slots[i]
	return block[off : off+l.descs[i].Width()]
}

// Descriptors returns a copy of the layout's descriptors in order.
func (l *Layout[T]) Descriptors() []Descriptor[T] {
	out := make([]Descriptor[T], len(l.descs))
	copy(out, l.descs)
	return out
}

// Group is a convenience for building layouts from single descriptors and expanded
// arrays.
func Group[T any](ds ...Descriptor[T]) []Descriptor[T] { return ds }
