// Package archive bundles a save slot into a single zstd stream.
//
// The stream holds one JSON manifest line followed by the bodies of the listed
// files, back to back and in manifest order.
package archive

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"

	"github.com/samcharles93/edictsave/internal/catalog"
	"github.com/samcharles93/edictsave/pkg/savefmt"
)

// ManifestVersion is bumped whenever the stream layout changes.
const ManifestVersion = 1

var (
	ErrManifest = errors.New("archive: bad manifest")
	ErrDigest   = errors.New("archive: digest mismatch")
	ErrEmpty    = errors.New("archive: no save files")
)

// File describes one bundled file.
type File struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

// Manifest heads every archive.
type Manifest struct {
	Version int       `json:"version"`
	Format  string    `json:"format"`
	Created time.Time `json:"created"`
	Files   []File    `json:"files"`
}

// Pack writes every save file directly inside dir to w.
func Pack(w io.Writer, dir string) (*Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && catalog.IsSaveFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmpty, dir)
	}
	sort.Strings(names)

	m := &Manifest{Version: ManifestVersion, Format: savefmt.FormatVersion, Created: time.Now().UTC()}
	for _, name := range names {
		f, err := digestFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		f.Name = name
		m.Files = append(m.Files, f)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)
	if err := writeManifest(bw, m); err != nil {
		_ = enc.Close()
		return nil, err
	}
	for _, f := range m.Files {
		if err := copyFile(bw, filepath.Join(dir, f.Name), f.Size); err != nil {
			_ = enc.Close()
			return nil, err
		}
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return m, nil
}

func writeManifest(w io.Writer, m *Manifest) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return err
	}
	return nil
}

func digestFile(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer func() { _ = f.Close() }()
	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return File{}, err
	}
	return File{Size: n, SHA256: hex.EncodeToString(h.Sum(nil))}, nil
}

// copyFile copies exactly size bytes so a file changing under Pack cannot desync
// the stream from its manifest.
func copyFile(w io.Writer, path string, size int64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	n, err := io.Copy(w, io.LimitReader(f, size))
	if err != nil {
		return err
	}
	if n != size {
		return fmt.Errorf("archive: %s shrank while packing", path)
	}
	return nil
}

// Reader walks an archive stream.
type Reader struct {
	dec      *zstd.Decoder
	br       *bufio.Reader
	manifest *Manifest
}

// NewReader decodes the manifest of the archive in r.
func NewReader(r io.Reader) (*Reader, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReaderSize(dec, 256*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		dec.Close()
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}
	var m Manifest
	if err := json.Unmarshal(line, &m); err != nil {
		dec.Close()
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}
	if err := m.validate(); err != nil {
		dec.Close()
		return nil, err
	}
	return &Reader{dec: dec, br: br, manifest: &m}, nil
}

func (m *Manifest) validate() error {
	if m.Version != ManifestVersion {
		return fmt.Errorf("%w: version %d", ErrManifest, m.Version)
	}
	seen := make(map[string]bool, len(m.Files))
	for _, f := range m.Files {
		if f.Name == "" || f.Name != filepath.Base(f.Name) || strings.ContainsAny(f.Name, `/\`) || f.Name == ".." {
			return fmt.Errorf("%w: unsafe name %q", ErrManifest, f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: %s listed twice", ErrManifest, f.Name)
		}
		seen[f.Name] = true
		if f.Size < 0 {
			return fmt.Errorf("%w: %s has size %d", ErrManifest, f.Name, f.Size)
		}
	}
	return nil
}

func (r *Reader) Manifest() *Manifest { return r.manifest }

func (r *Reader) Close() { r.dec.Close() }

// Extract restores every file into dir. Each file is written beside its
// destination and only renamed into place once its size and digest check out.
func (r *Reader) Extract(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, f := range r.manifest.Files {
		if err := r.extractOne(dir, f); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) extractOne(dir string, f File) (err error) {
	sink, err := savefmt.Create(filepath.Join(dir, f.Name))
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			sink.Abort()
		}
	}()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(sink, h), io.LimitReader(r.br, f.Size))
	if err != nil {
		return err
	}
	if n != f.Size {
		return fmt.Errorf("%w: %s truncated at %d of %d bytes", savefmt.ErrCorrupt, f.Name, n, f.Size)
	}
	if got := hex.EncodeToString(h.Sum(nil)); got != f.SHA256 {
		return fmt.Errorf("%w: %s", ErrDigest, f.Name)
	}
	return sink.Commit()
}

// Unpack restores the archive in r into dir and returns its manifest.
func Unpack(r io.Reader, dir string) (*Manifest, error) {
	ar, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	defer ar.Close()
	if err := ar.Extract(dir); err != nil {
		return nil, err
	}
	return ar.Manifest(), nil
}

// PackFile packs dir into the file at path.
func PackFile(path, dir string) (m *Manifest, err error) {
	sink, err := savefmt.Create(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			sink.Abort()
		}
	}()
	if m, err = Pack(sink, dir); err != nil {
		return nil, err
	}
	return m, sink.Commit()
}

// UnpackFile restores the archive at path into dir.
func UnpackFile(path, dir string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Unpack(f, dir)
}
