package savefmt

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const encoderBufSize = 64 * 1024

// Encoder streams little-endian save data. The first write error sticks; later calls
// are no-ops returning it.
type Encoder struct {
	w   *bufio.Writer
	n   int64
	err error
	buf [4]byte
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriterSize(w, encoderBufSize)}
}

// Write implements io.Writer.
func (e *Encoder) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.n += int64(n)
	if err != nil {
		e.err = err
	}
	return n, err
}

func (e *Encoder) WriteInt32(v int32) error {
	PutInt32(e.buf[:], v)
	_, err := e.Write(e.buf[:])
	return err
}

func (e *Encoder) WriteHeader(h Header) error {
	var raw [HeaderSize]byte
	encodeHeader(raw[:], h)
	_, err := e.Write(raw[:])
	return err
}

// Flush pushes buffered bytes to the underlying writer.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.w.Flush(); err != nil {
		e.err = err
	}
	return e.err
}

// Written reports the number of bytes accepted so far.
func (e *Encoder) Written() int64 { return e.n }

func (e *Encoder) Err() error { return e.err }

// Decoder reads little-endian save data and reports truncation as ErrCorrupt.
type Decoder struct {
	r   io.Reader
	off int64
	buf [4]byte
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// ReadFull fills p completely.
func (d *Decoder) ReadFull(p []byte) error {
	n, err := io.ReadFull(d.r, p)
	d.off += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: unexpected end of data at offset %d", ErrCorrupt, d.off)
		}
		return err
	}
	return nil
}

func (d *Decoder) ReadInt32() (int32, error) {
	if err := d.ReadFull(d.buf[:]); err != nil {
		return 0, err
	}
	return Int32(d.buf[:]), nil
}

func (d *Decoder) ReadHeader() (Header, error) {
	var raw [HeaderSize]byte
	if err := d.ReadFull(raw[:]); err != nil {
		return Header{}, err
	}
	h, _ := decodeHeader(raw[:])
	return h, nil
}

// Offset reports the number of bytes consumed so far.
func (d *Decoder) Offset() int64 { return d.off }

func PutInt32(dst []byte, v int32) {
	binary.LittleEndian.PutUint32(dst, uint32(v))
}

func Int32(src []byte) int32 {
	return int32(binary.LittleEndian.Uint32(src))
}

func PutFloat32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}

func Float32(src []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(src))
}
