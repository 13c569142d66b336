// Package record writes and reads whole records: a fixed block of field slots
// followed by the payloads of the record's string and code-reference fields.
package record

import (
	"errors"
	"fmt"

	"github.com/samcharles93/edictsave/internal/field"
	"github.com/samcharles93/edictsave/pkg/savefmt"
)

// Write encodes live. Slots are converted on a private copy so live is never
// modified; payloads are then appended from live in layout order.
func Write[T any](enc *savefmt.Encoder, m *field.Marshaller, l *field.Layout[T], live *T) error {
	tmp := *live
	block := make([]byte, l.BlockSize())
	for i := range l.Len() {
		d := l.At(i)
		if err := d.Out(m, &tmp, l.Slot(block, i)); err != nil {
			return wrap(l, d, err)
		}
	}
	if _, err := enc.Write(block); err != nil {
		return fmt.Errorf("%s: %w", l.Name(), err)
	}
	for i := range l.Len() {
		d := l.At(i)
		if err := d.Payload(m, live, enc); err != nil {
			return wrap(l, d, err)
		}
	}
	return enc.Err()
}

// Read decodes one record into dst. Fields not described by the layout, and
// Transient or Ignore fields, keep whatever dst held before the call.
func Read[T any](dec *savefmt.Decoder, m *field.Marshaller, l *field.Layout[T], dst *T) error {
	block := make([]byte, l.BlockSize())
	if err := dec.ReadFull(block); err != nil {
		return fmt.Errorf("%s: %w", l.Name(), err)
	}
	for i := range l.Len() {
		d := l.At(i)
		if err := d.In(m, dst, l.Slot(block, i), dec); err != nil {
			return wrap(l, d, err)
		}
	}
	return nil
}

func wrap[T any](l *field.Layout[T], d field.Descriptor[T], err error) error {
	var fe *field.Error
	if errors.As(err, &fe) {
		return err
	}
	return &field.Error{Record: l.Name(), Field: d.Name, Err: err}
}
