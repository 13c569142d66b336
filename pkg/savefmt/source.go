package savefmt

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Source is a read-only view of a save file.
type Source struct {
	data    []byte
	mmapped bool
}

// Open maps a save file read-only. If mmap is unavailable it falls back to
// ReadAt-based loading. The returned source must be closed to release the mapping.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := st.Size()
	if size64 < 0 || size64 > int64(int(^uint(0)>>1)) {
		return nil, ErrCorrupt
	}
	size := int(size64)
	if size == 0 {
		return &Source{data: []byte{}}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		return &Source{data: data, mmapped: true}, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return &Source{data: data}, nil
}

// NewSource wraps an in-memory save image.
func NewSource(data []byte) *Source {
	return &Source{data: data}
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

// Bytes returns the file contents. The slice must not be retained after Close.
func (s *Source) Bytes() []byte { return s.data }

func (s *Source) Size() int64 { return int64(len(s.data)) }

// Decoder starts decoding at the beginning of the file.
func (s *Source) Decoder() *Decoder {
	return NewDecoder(bytes.NewReader(s.data))
}

// Scope sniffs the file's scope from its first bytes.
func (s *Source) Scope() Scope {
	return Sniff(s.data)
}

// Close releases the mapping, if any.
func (s *Source) Close() error {
	if s == nil || s.data == nil {
		return nil
	}
	var err error
	if s.mmapped {
		err = unix.Munmap(s.data)
	}
	s.data = nil
	s.mmapped = false
	return err
}
