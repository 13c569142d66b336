package game

import (
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/samcharles93/edictsave/internal/field"
	"github.com/samcharles93/edictsave/internal/registry"
)

// Tables bundles the registries and record layouts a save engine needs.
type Tables struct {
	Callbacks *registry.Table
	Sequences *registry.Table

	Entity *field.Layout[Entity]
	Client *field.Layout[Client]
	Level  *field.Layout[LevelLocals]
	Game   *field.Layout[GameLocals]
}

// BuildTables sorts the registries and builds the layouts, reporting every
// configuration problem at once.
func BuildTables() (*Tables, error) {
	var (
		t    Tables
		errs *multierror.Error
		err  error
	)
	if t.Callbacks, err = registry.Build("callback", callbackDefs()); err != nil {
		errs = multierror.Append(errs, err)
	}
	if t.Sequences, err = registry.Build("sequence", sequenceDefs()); err != nil {
		errs = multierror.Append(errs, err)
	}
	if t.Entity, err = field.NewLayout("edict", entityFields()); err != nil {
		errs = multierror.Append(errs, err)
	}
	inventory := field.Ints("pers.inventory", MaxItems, func(c *Client) []int32 { return c.Pers.Inventory[:] })
	if t.Client, err = field.NewLayout("client", persistentFields(), inventory, clientFields()); err != nil {
		errs = multierror.Append(errs, err)
	}
	if t.Level, err = field.NewLayout("level", levelFields()); err != nil {
		errs = multierror.Append(errs, err)
	}
	if t.Game, err = field.NewLayout("game", gameFields()); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &t, nil
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// DefaultTables returns the process-wide tables, built on first use. The tables are
// static, so a build failure is a programming error and panics.
func DefaultTables() *Tables {
	defaultOnce.Do(func() {
		t, err := BuildTables()
		if err != nil {
			panic(err)
		}
		defaultTables = t
	})
	return defaultTables
}

// Marshaller returns a marshaller over t resolving references against s.
func (t *Tables) Marshaller(s *Session, alloc func(n int) []byte) *field.Marshaller {
	return &field.Marshaller{
		Callbacks: t.Callbacks,
		Sequences: t.Sequences,
		Refs:      s,
		Alloc:     alloc,
	}
}
