package savegame

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samcharles93/edictsave/internal/game"
	"github.com/samcharles93/edictsave/pkg/savefmt"
)

var ErrMismatch = errors.New("savegame: re-encoded save differs")

// Verify loads the save at path into a scratch session, writes it back to a
// temporary file and requires the two files to be byte-identical.
func Verify(path string, opts Options) (savefmt.Scope, error) {
	opts = opts.withDefaults()
	scope, err := Sniff(path)
	if err != nil {
		return scope, err
	}

	tmpDir, err := os.MkdirTemp("", "edictsave-verify-*")
	if err != nil {
		return scope, err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()
	out := filepath.Join(tmpDir, filepath.Base(path))

	switch scope {
	case savefmt.ScopeGame:
		sess := &game.Session{Items: game.DefaultItems()}
		eng := New(sess, nil, opts)
		if err := eng.ReadGameState(path); err != nil {
			return scope, err
		}
		if err := eng.WriteGameState(out, sess.Game.Autosaved); err != nil {
			return scope, err
		}
	case savefmt.ScopeLevel:
		capacity := opts.MaxEntities
		if capacity == 0 {
			capacity = DefaultMaxEntities
		}
		sess, err := game.NewSession(opts.MaxClients, capacity)
		if err != nil {
			return scope, err
		}
		eng := New(sess, nil, opts)
		if err := eng.ReadLevelState(path); err != nil {
			return scope, err
		}
		if err := eng.WriteLevelState(out); err != nil {
			return scope, err
		}
	default:
		return scope, fmt.Errorf("%s: %w", path, ErrUnknownScope)
	}

	want, err := os.ReadFile(path)
	if err != nil {
		return scope, err
	}
	got, err := os.ReadFile(out)
	if err != nil {
		return scope, err
	}
	if !bytes.Equal(want, got) {
		return scope, fmt.Errorf("%s: %w at byte %d (%d vs %d bytes)", path, ErrMismatch, firstDiff(want, got), len(want), len(got))
	}
	return scope, nil
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
