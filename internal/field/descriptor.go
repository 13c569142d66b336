package field

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Descriptor describes one field of a record of type T.
type Descriptor[T any] struct {
	Name  string
	Kind  Kind
	Flags Flags

	// Offset is the field's byte offset in T, filled in by NewLayout.
	Offset uintptr

	addr  func(*T) unsafe.Pointer
	size  uintptr
	codec codec[T]
	err   error
}

// Transient reports whether the field is skipped in both directions.
func (d Descriptor[T]) Transient() bool { return d.Flags&Transient != 0 }

// Width is the number of bytes the field occupies in the record's fixed block.
func (d Descriptor[T]) Width() int {
	if d.Transient() {
		return 0
	}
	return d.Kind.Width()
}

// SpawnTemp returns a copy of d marked Transient.
func (d Descriptor[T]) SpawnTemp() Descriptor[T] {
	d.Flags |= Transient
	return d
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16
}

// Int describes an integer field stored as int32. Values outside the int32 range
// cannot be saved.
func Int[T any, I integer](name string, ref func(*T) *I) Descriptor[T] {
	return newDescriptor(name, KindInt, ref, intCodec[T, I]{ref: ref})
}

// Bits describes a bit set stored as the raw 32 bits.
func Bits[T any, U ~uint32](name string, ref func(*T) *U) Descriptor[T] {
	return newDescriptor(name, KindInt, ref, bitsCodec[T, U]{ref: ref})
}

// Bool describes a boolean stored as int32 0 or 1.
func Bool[T any, B ~bool](name string, ref func(*T) *B) Descriptor[T] {
	return newDescriptor(name, KindInt, ref, boolCodec[T, B]{ref: ref})
}

// Float describes a float32 field.
func Float[T any, F ~float32](name string, ref func(*T) *F) Descriptor[T] {
	return newDescriptor(name, KindFloat, ref, floatCodec[T, F]{ref: ref})
}

// Vector describes a three-component float32 vector.
func Vector[T any, V ~[3]float32](name string, ref func(*T) *V) Descriptor[T] {
	return newDescriptor(name, KindVector, ref, vectorCodec[T, V]{ref: ref})
}

// String describes a string field. The empty string is saved as a null string.
func String[T any](name string, ref func(*T) *string) Descriptor[T] {
	return newDescriptor(name, KindString, ref, stringCodec[T]{ref: ref})
}

// Entity describes a pointer into the session's entity table.
func Entity[T any, E any](name string, ref func(*T) **E) Descriptor[T] {
	return newDescriptor(name, KindEntity, ref, refCodec[T, E]{kind: KindEntity, ref: ref})
}

// Client describes a pointer into the session's client table.
func Client[T any, C any](name string, ref func(*T) **C) Descriptor[T] {
	return newDescriptor(name, KindClient, ref, refCodec[T, C]{kind: KindClient, ref: ref})
}

// Item describes a pointer into the static item table.
func Item[T any, I any](name string, ref func(*T) **I) Descriptor[T] {
	return newDescriptor(name, KindItem, ref, refCodec[T, I]{kind: KindItem, ref: ref})
}

// Callback describes a func-typed field resolved through the callback registry.
func Callback[T any, F any](name string, ref func(*T) *F) Descriptor[T] {
	d := newDescriptor(name, KindCallback, ref, namedCodec[T, F]{kind: KindCallback, ref: ref})
	if k := reflect.TypeFor[F]().Kind(); k != reflect.Func {
		d.err = fmt.Errorf("%w: callback %q has non-func type %s", ErrInvalidDescriptor, name, k)
	}
	return d
}

// Sequence describes a pointer to a sequence descriptor resolved through the
// sequence registry.
func Sequence[T any, S any](name string, ref func(*T) **S) Descriptor[T] {
	return newDescriptor(name, KindSequence, ref, namedCodec[T, *S]{kind: KindSequence, ref: ref})
}

// Ignore reserves a zero slot for a field whose live value has no portable form. The
// field is never decoded.
func Ignore[T any, V any](name string, ref func(*T) *V) Descriptor[T] {
	return newDescriptor(name, KindIgnore, ref, ignoreCodec[T]{})
}

// Ints expands an integer array into one Int descriptor per element, named
// name[0], name[1] and so on.
func Ints[T any, I integer](name string, n int, ref func(*T) []I) []Descriptor[T] {
	out := make([]Descriptor[T], n)
	for i := range n {
		out[i] = Int(fmt.Sprintf("%s[%d]", name, i), func(rec *T) *I { return &ref(rec)[i] })
	}
	return out
}

func newDescriptor[T any, V any](name string, kind Kind, ref func(*T) *V, c codec[T]) Descriptor[T] {
	var zero V
	d := Descriptor[T]{Name: name, Kind: kind, codec: c, size: unsafe.Sizeof(zero)}
	if ref == nil {
		d.err = fmt.Errorf("%w: %q has no accessor", ErrInvalidDescriptor, name)
		return d
	}
	d.addr = func(rec *T) unsafe.Pointer { return unsafe.Pointer(ref(rec)) }
	return d
}
