// Package savefmt implements the framing of edict save files.
//
// A save file is either game scoped (identification header, game record, client
// records) or level scoped (entity size tag, level record, indexed entity records,
// sentinel). Records themselves are opaque to this package; it only provides the
// header, the little-endian stream primitives and file access.
package savefmt

// Framing constants must never change without bumping FormatVersion.
const (
	// FormatVersion is written into the first identification field. Bump it whenever
	// a field table or a registry changes.
	FormatVersion = "EDSV-1"

	// IdentWidth is the fixed, NUL padded width of each identification string.
	IdentWidth = 32

	// HeaderSize is the size of the identification header of a game-scope file.
	HeaderSize = 4 * IdentWidth

	// Sentinel terminates the entity stream of a level-scope file.
	Sentinel int32 = -1
)

// Scope tells game-scope files from level-scope files.
type Scope uint8

const (
	ScopeUnknown Scope = iota
	ScopeGame
	ScopeLevel
)

func (s Scope) String() string {
	switch s {
	case ScopeGame:
		return "game"
	case ScopeLevel:
		return "level"
	default:
		return "unknown"
	}
}

// MarshalText renders the scope name in JSON output.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Scope) UnmarshalText(b []byte) error {
	switch string(b) {
	case "game":
		*s = ScopeGame
	case "level":
		*s = ScopeLevel
	default:
		*s = ScopeUnknown
	}
	return nil
}

// Sniff guesses the scope of a save from its first bytes. Game-scope files start with
// a printable identification string; level-scope files start with a binary size tag.
func Sniff(prefix []byte) Scope {
	if len(prefix) < 4 {
		return ScopeUnknown
	}
	for _, c := range prefix[:4] {
		if c < 0x20 || c > 0x7e {
			return ScopeLevel
		}
	}
	return ScopeGame
}
