package savefmt

import (
	"bytes"
	"fmt"
)

// Identity names the build that produced a save. All four strings must match the
// loading process byte for byte.
type Identity struct {
	Version string
	Game    string
	OS      string
	Arch    string
}

func (id Identity) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", id.Version, id.Game, id.OS, id.Arch)
}

// Header is the on-disk form of an Identity.
type Header struct {
	Version [IdentWidth]byte
	Game    [IdentWidth]byte
	OS      [IdentWidth]byte
	Arch    [IdentWidth]byte
}

// NewHeader truncates each identity string to IdentWidth-1 bytes so that every field
// keeps at least one NUL.
func NewHeader(id Identity) Header {
	var h Header
	putIdent(&h.Version, id.Version)
	putIdent(&h.Game, id.Game)
	putIdent(&h.OS, id.OS)
	putIdent(&h.Arch, id.Arch)
	return h
}

func (h Header) Identity() Identity {
	return Identity{
		Version: identString(h.Version),
		Game:    identString(h.Game),
		OS:      identString(h.OS),
		Arch:    identString(h.Arch),
	}
}

// Check compares h against the running identity and names the first field that
// disagrees.
func (h Header) Check(want Identity) error {
	w := NewHeader(want)
	switch {
	case h.Version != w.Version:
		return fmt.Errorf("%w: %q, want %q", ErrIncompatibleVersion, identString(h.Version), want.Version)
	case h.Game != w.Game:
		return fmt.Errorf("%w: %q, want %q", ErrOtherGame, identString(h.Game), want.Game)
	case h.OS != w.OS:
		return fmt.Errorf("%w: %q, want %q", ErrOtherOS, identString(h.OS), want.OS)
	case h.Arch != w.Arch:
		return fmt.Errorf("%w: %q, want %q", ErrOtherArch, identString(h.Arch), want.Arch)
	}
	return nil
}

func encodeHeader(dst []byte, h Header) bool {
	if len(dst) < HeaderSize {
		return false
	}
	copy(dst[0*IdentWidth:], h.Version[:])
	copy(dst[1*IdentWidth:], h.Game[:])
	copy(dst[2*IdentWidth:], h.OS[:])
	copy(dst[3*IdentWidth:], h.Arch[:])
	return true
}

func decodeHeader(src []byte) (Header, bool) {
	var h Header
	if len(src) < HeaderSize {
		return h, false
	}
	copy(h.Version[:], src[0*IdentWidth:1*IdentWidth])
	copy(h.Game[:], src[1*IdentWidth:2*IdentWidth])
	copy(h.OS[:], src[2*IdentWidth:3*IdentWidth])
	copy(h.Arch[:], src[3*IdentWidth:4*IdentWidth])
	return h, true
}

func putIdent(dst *[IdentWidth]byte, s string) {
	*dst = [IdentWidth]byte{}
	copy(dst[:IdentWidth-1], s)
}

func identString(b [IdentWidth]byte) string {
	if i := bytes.IndexByte(b[:], 0); i >= 0 {
		return string(b[:i])
	}
	return string(b[:])
}
