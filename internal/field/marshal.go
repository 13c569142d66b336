package field

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/samcharles93/edictsave/internal/registry"
	"github.com/samcharles93/edictsave/pkg/savefmt"
)

// Resolver converts object references to table indices and back. The session that
// owns the live tables implements it.
type Resolver interface {
	// IndexOf returns the index of ref, a non-nil pointer of the kind's element type.
	IndexOf(kind Kind, ref any) (int, error)
	// Resolve returns a pointer to the element at index.
	Resolve(kind Kind, index int) (any, error)
}

// Marshaller carries everything a field conversion may need. One marshaller serves
// one save or load operation.
type Marshaller struct {
	Callbacks *registry.Table
	Sequences *registry.Table
	Refs      Resolver

	// Alloc returns buffers for loaded strings. Nil uses the Go heap.
	Alloc func(n int) []byte

	name [MaxNameLen]byte
}

func (m *Marshaller) alloc(n int) []byte {
	if m.Alloc != nil {
		if b := m.Alloc(n); len(b) >= n {
			return b
		}
	}
	return make([]byte, n)
}

// Out converts the field of rec, a private copy of a live record, into its slot in
// the record's fixed block. Transient fields are skipped.
func (d Descriptor[T]) Out(m *Marshaller, rec *T, slot []byte) error {
	if d.Transient() {
		return nil
	}
	return d.codec.out(m, rec, slot[:d.Kind.Width()])
}

// Payload appends the field's trailing bytes, read from the live record.
func (d Descriptor[T]) Payload(m *Marshaller, rec *T, enc *savefmt.Encoder) error {
	if d.Transient() {
		return nil
	}
	return d.codec.payload(m, rec, enc)
}

// In replaces the stored slot value in rec with the resolved live value, consuming
// trailing payload from dec as needed.
func (d Descriptor[T]) In(m *Marshaller, rec *T, slot []byte, dec *savefmt.Decoder) error {
	if d.Transient() {
		return nil
	}
	return d.codec.in(m, rec, slot[:d.Kind.Width()], dec)
}

type codec[T any] interface {
	out(m *Marshaller, rec *T, slot []byte) error
	payload(m *Marshaller, rec *T, enc *savefmt.Encoder) error
	in(m *Marshaller, rec *T, slot []byte, dec *savefmt.Decoder) error
}

type intCodec[T any, I integer] struct{ ref func(*T) *I }

func (c intCodec[T, I]) out(_ *Marshaller, rec *T, slot []byte) error {
	v := int64(*c.ref(rec))
	if v < math.MinInt32 || v > math.MaxInt32 {
		return fmt.Errorf("%w: %d", ErrIntRange, v)
	}
	savefmt.PutInt32(slot, int32(v))
	return nil
}

func (c intCodec[T, I]) payload(*Marshaller, *T, *savefmt.Encoder) error { return nil }

func (c intCodec[T, I]) in(_ *Marshaller, rec *T, slot []byte, _ *savefmt.Decoder) error {
	v := savefmt.Int32(slot)
	x := I(v)
	if int64(x) != int64(v) {
		return fmt.Errorf("%w: %w: %d does not fit %T", savefmt.ErrCorrupt, ErrIntRange, v, x)
	}
	*c.ref(rec) = x
	return nil
}

type bitsCodec[T any, U ~uint32] struct{ ref func(*T) *U }

func (c bitsCodec[T, U]) out(_ *Marshaller, rec *T, slot []byte) error {
	savefmt.PutInt32(slot, int32(*c.ref(rec)))
	return nil
}

func (c bitsCodec[T, U]) payload(*Marshaller, *T, *savefmt.Encoder) error { return nil }

func (c bitsCodec[T, U]) in(_ *Marshaller, rec *T, slot []byte, _ *savefmt.Decoder) error {
	*c.ref(rec) = U(uint32(savefmt.Int32(slot)))
	return nil
}

type boolCodec[T any, B ~bool] struct{ ref func(*T) *B }

func (c boolCodec[T, B]) out(_ *Marshaller, rec *T, slot []byte) error {
	var v int32
	if *c.ref(rec) {
		v = 1
	}
	savefmt.PutInt32(slot, v)
	return nil
}

func (c boolCodec[T, B]) payload(*Marshaller, *T, *savefmt.Encoder) error { return nil }

func (c boolCodec[T, B]) in(_ *Marshaller, rec *T, slot []byte, _ *savefmt.Decoder) error {
	*c.ref(rec) = savefmt.Int32(slot) != 0
	return nil
}

type floatCodec[T any, F ~float32] struct{ ref func(*T) *F }

func (c floatCodec[T, F]) out(_ *Marshaller, rec *T, slot []byte) error {
	savefmt.PutFloat32(slot, float32(*c.ref(rec)))
	return nil
}

func (c floatCodec[T, F]) payload(*Marshaller, *T, *savefmt.Encoder) error { return nil }

func (c floatCodec[T, F]) in(_ *Marshaller, rec *T, slot []byte, _ *savefmt.Decoder) error {
	*c.ref(rec) = F(savefmt.Float32(slot))
	return nil
}

type vectorCodec[T any, V ~[3]float32] struct{ ref func(*T) *V }

func (c vectorCodec[T, V]) out(_ *Marshaller, rec *T, slot []byte) error {
	v := c.ref(rec)
	for i := range 3 {
		savefmt.PutFloat32(slot[i*4:], (*v)[i])
	}
	return nil
}

func (c vectorCodec[T, V]) payload(*Marshaller, *T, *savefmt.Encoder) error { return nil }

func (c vectorCodec[T, V]) in(_ *Marshaller, rec *T, slot []byte, _ *savefmt.Decoder) error {
	v := c.ref(rec)
	for i := range 3 {
		(*v)[i] = savefmt.Float32(slot[i*4:])
	}
	return nil
}

type stringCodec[T any] struct{ ref func(*T) *string }

func (c stringCodec[T]) out(_ *Marshaller, rec *T, slot []byte) error {
	n := 0
	if s := *c.ref(rec); s != "" {
		n = len(s) + 1
	}
	if n > MaxStringLen {
		return fmt.Errorf("%w: string of %d bytes", ErrPayloadLength, n)
	}
	savefmt.PutInt32(slot, int32(n))
	return nil
}

func (c stringCodec[T]) payload(_ *Marshaller, rec *T, enc *savefmt.Encoder) error {
	s := *c.ref(rec)
	if s == "" {
		return nil
	}
	if _, err := enc.Write(unsafe.Slice(unsafe.StringData(s), len(s))); err != nil {
		return err
	}
	_, err := enc.Write([]byte{0})
	return err
}

func (c stringCodec[T]) in(m *Marshaller, rec *T, slot []byte, dec *savefmt.Decoder) error {
	n := int(savefmt.Int32(slot))
	if n == 0 {
		*c.ref(rec) = ""
		return nil
	}
	if n < 0 || n > MaxStringLen {
		return fmt.Errorf("%w: string length %d", ErrPayloadLength, n)
	}
	buf := m.alloc(n + StringSlack)
	if err := dec.ReadFull(buf[:n]); err != nil {
		return err
	}
	if buf[n-1] != 0 {
		return fmt.Errorf("%w: string not terminated", ErrPayloadLength)
	}
	if n == 1 {
		*c.ref(rec) = ""
		return nil
	}
	// The string borrows the arena buffer; the buffer is never written again.
	*c.ref(rec) = unsafe.String(&buf[0], n-1)
	return nil
}

type refCodec[T any, E any] struct {
	kind Kind
	ref  func(*T) **E
}

func (c refCodec[T, E]) out(m *Marshaller, rec *T, slot []byte) error {
	p := *c.ref(rec)
	if p == nil {
		savefmt.PutInt32(slot, NilIndex)
		return nil
	}
	if m.Refs == nil {
		return ErrNoResolver
	}
	idx, err := m.Refs.IndexOf(c.kind, p)
	if err != nil {
		return err
	}
	if idx < 0 || idx > math.MaxInt32 {
		return fmt.Errorf("%w: %s index %d", ErrIndexRange, c.kind, idx)
	}
	savefmt.PutInt32(slot, int32(idx))
	return nil
}

func (c refCodec[T, E]) payload(*Marshaller, *T, *savefmt.Encoder) error { return nil }

func (c refCodec[T, E]) in(m *Marshaller, rec *T, slot []byte, _ *savefmt.Decoder) error {
	idx := savefmt.Int32(slot)
	if idx == NilIndex {
		*c.ref(rec) = nil
		return nil
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s index %d", ErrIndexRange, c.kind, idx)
	}
	if m.Refs == nil {
		return ErrNoResolver
	}
	v, err := m.Refs.Resolve(c.kind, int(idx))
	if err != nil {
		return err
	}
	p, ok := v.(*E)
	if !ok {
		return fmt.Errorf("%w: %s resolved to %T", ErrTypeMismatch, c.kind, v)
	}
	*c.ref(rec) = p
	return nil
}

// namedCodec stores callbacks and sequences by registry name.
type namedCodec[T any, V any] struct {
	kind Kind
	ref  func(*T) *V
}

func (c namedCodec[T, V]) table(m *Marshaller) *registry.Table {
	if c.kind == KindSequence {
		return m.Sequences
	}
	return m.Callbacks
}

// lookup returns the registry name of the live value, or "" for nil.
func (c namedCodec[T, V]) lookup(m *Marshaller, rec *T) (string, error) {
	addr, err := registry.AddressOf(*c.ref(rec))
	if err != nil {
		return "", err
	}
	if addr == 0 {
		return "", nil
	}
	tbl := c.table(m)
	if tbl == nil {
		return "", fmt.Errorf("%w: no %s table", ErrUnregistered, c.kind)
	}
	e, ok := tbl.Lookup(addr)
	if !ok {
		return "", fmt.Errorf("%w: %s at %#x", ErrUnregistered, c.kind, addr)
	}
	return e.Name, nil
}

func (c namedCodec[T, V]) out(m *Marshaller, rec *T, slot []byte) error {
	name, err := c.lookup(m, rec)
	if err != nil {
		return err
	}
	n := 0
	if name != "" {
		n = len(name) + 1
	}
	if n > MaxNameLen {
		return fmt.Errorf("%w: %s name of %d bytes", ErrPayloadLength, c.kind, n)
	}
	savefmt.PutInt32(slot, int32(n))
	return nil
}

func (c namedCodec[T, V]) payload(m *Marshaller, rec *T, enc *savefmt.Encoder) error {
	name, err := c.lookup(m, rec)
	if err != nil || name == "" {
		return err
	}
	if _, err := enc.Write([]byte(name)); err != nil {
		return err
	}
	_, err = enc.Write([]byte{0})
	return err
}

func (c namedCodec[T, V]) in(m *Marshaller, rec *T, slot []byte, dec *savefmt.Decoder) error {
	n := int(savefmt.Int32(slot))
	if n == 0 {
		var zero V
		*c.ref(rec) = zero
		return nil
	}
	if n < 0 || n > MaxNameLen {
		return fmt.Errorf("%w: %s name length %d", ErrPayloadLength, c.kind, n)
	}
	buf := m.name[:n]
	if err := dec.ReadFull(buf); err != nil {
		return err
	}
	if buf[n-1] != 0 {
		return fmt.Errorf("%w: %s name not terminated", ErrPayloadLength, c.kind)
	}
	name := string(buf[:n-1])
	tbl := c.table(m)
	if tbl == nil {
		return fmt.Errorf("%w: no %s table for %q", ErrUnknownName, c.kind, name)
	}
	e, ok := tbl.Find(name)
	if !ok {
		return fmt.Errorf("%w: %s %q", ErrUnknownName, c.kind, name)
	}
	v, ok := e.Value.(V)
	if !ok {
		var zero V
		return fmt.Errorf("%w: %s %q is %T, field wants %T", ErrTypeMismatch, c.kind, name, e.Value, zero)
	}
	*c.ref(rec) = v
	return nil
}

type ignoreCodec[T any] struct{}

func (ignoreCodec[T]) out(_ *Marshaller, _ *T, slot []byte) error {
	clear(slot)
	return nil
}

func (ignoreCodec[T]) payload(*Marshaller, *T, *savefmt.Encoder) error { return nil }

func (ignoreCodec[T]) in(*Marshaller, *T, []byte, *savefmt.Decoder) error { return nil }
