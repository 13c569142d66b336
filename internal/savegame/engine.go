// Package savegame reads and writes game-scope and level-scope save files.
//
// A game-scope file holds the identification header, the game record and every
// client record. A level-scope file holds the entity size tag, the level record and
// each in-use entity prefixed by its index, terminated by -1. Code and object
// references inside records are made portable by the field marshaller.
package savegame

import (
	"fmt"

	"github.com/samcharles93/edictsave/internal/field"
	"github.com/samcharles93/edictsave/internal/game"
	"github.com/samcharles93/edictsave/internal/logger"
	"github.com/samcharles93/edictsave/internal/version"
	"github.com/samcharles93/edictsave/pkg/savefmt"
)

const (
	DefaultMaxClients  = 1
	DefaultMaxEntities = 1024

	// MaxEntitiesLimit bounds the entity capacity a save may ask for.
	MaxEntitiesLimit = 1 << 16
)

// Options configure an Engine.
type Options struct {
	// Identity is stamped into written headers and required of loaded ones. The zero
	// value uses the running binary's identity.
	Identity savefmt.Identity
	// Tables default to game.DefaultTables.
	Tables *game.Tables
	Logger logger.Logger
	// MaxEntities is the entity capacity allocated by ReadGameState. Zero uses the
	// capacity recorded in the save.
	MaxEntities int
	// MaxClients sizes the scratch sessions of level inspection. Zero uses
	// DefaultMaxClients.
	MaxClients int
}

func (o Options) withDefaults() Options {
	if o.Identity == (savefmt.Identity{}) {
		o.Identity = version.Identity()
	}
	if o.Tables == nil {
		o.Tables = game.DefaultTables()
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	if o.MaxClients <= 0 {
		o.MaxClients = DefaultMaxClients
	}
	return o
}

// Engine saves and restores one session. Its methods must not run concurrently.
type Engine struct {
	sess   *game.Session
	host   Host
	tables *game.Tables
	ident  savefmt.Identity
	log    logger.Logger
	maxEnt int
}

// New returns an engine over sess. A nil host uses an Arena.
func New(sess *game.Session, host Host, opts Options) *Engine {
	opts = opts.withDefaults()
	if host == nil {
		host = NewArena(opts.Logger)
	}
	return &Engine{
		sess:   sess,
		host:   host,
		tables: opts.Tables,
		ident:  opts.Identity,
		log:    opts.Logger,
		maxEnt: opts.MaxEntities,
	}
}

func (e *Engine) Session() *game.Session { return e.sess }

func (e *Engine) Tables() *game.Tables { return e.tables }

// marshaller allocates loaded strings under tag.
func (e *Engine) marshaller(tag Tag) *field.Marshaller {
	return e.tables.Marshaller(e.sess, func(n int) []byte {
		return e.host.TagMalloc(n, tag)
	})
}

func openError(path string, err error) error {
	return fmt.Errorf("couldn't open %s: %w", path, err)
}
