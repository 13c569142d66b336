package savegame

import (
	"fmt"

	"github.com/samcharles93/edictsave/internal/field"
	"github.com/samcharles93/edictsave/internal/game"
	"github.com/samcharles93/edictsave/internal/record"
	"github.com/samcharles93/edictsave/pkg/savefmt"
)

// crossLevelTarget entities are re-armed after every level load.
const crossLevelTarget = "target_crosslevel_target"

// WriteLevelState writes the level record and every in-use entity to path.
func (e *Engine) WriteLevelState(path string) (err error) {
	s := e.sess
	sink, err := savefmt.Create(path)
	if err != nil {
		return openError(path, err)
	}
	defer func() {
		if err != nil {
			sink.Abort()
		}
	}()

	if err := sink.WriteInt32(int32(e.tables.Entity.BlockSize())); err != nil {
		return err
	}
	m := e.marshaller(TagLevel)
	if err := record.Write(sink.Encoder, m, e.tables.Level, &s.Level); err != nil {
		return err
	}

	n := min(s.NumEntities, len(s.Entities))
	written := 0
	for i := range n {
		ent := &s.Entities[i]
		if !ent.InUse {
			continue
		}
		if err := sink.WriteInt32(int32(i)); err != nil {
			return err
		}
		if err := record.Write(sink.Encoder, m, e.tables.Entity, ent); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
		written++
	}
	if err := sink.WriteInt32(savefmt.Sentinel); err != nil {
		return err
	}
	if err := sink.Commit(); err != nil {
		return err
	}

	e.log.Debug("wrote level state", "path", path, "map", s.Level.MapName, "entities", written, "bytes", sink.Written())
	return nil
}

// ReadLevelState restores the level record and the entity table from path. Every
// loaded entity is relinked through the host, players are reattached to their
// clients and cross-level targets are re-armed.
func (e *Engine) ReadLevelState(path string) error {
	src, err := savefmt.Open(path)
	if err != nil {
		return openError(path, err)
	}
	defer func() { _ = src.Close() }()

	dec := src.Decoder()
	size, err := dec.ReadInt32()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if want := e.tables.Entity.BlockSize(); int(size) != want {
		return fmt.Errorf("%s: %w: entity size %d, want %d", path, savefmt.ErrRecordSize, size, want)
	}

	s := e.sess
	if len(s.Entities) <= len(s.Clients)+1 {
		return fmt.Errorf("%s: %w: %d entities for %d clients", path, game.ErrCapacity, len(s.Entities), len(s.Clients))
	}
	e.host.FreeTags(TagLevel)
	s.ClearEntities()
	s.NumEntities = len(s.Clients) + 1
	m := e.marshaller(TagLevel)

	s.Level = game.LevelLocals{}
	if err := record.Read(dec, m, e.tables.Level, &s.Level); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	loaded := 0
	for {
		idx, err := dec.ReadInt32()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if idx == savefmt.Sentinel {
			break
		}
		if idx < 0 || int(idx) >= len(s.Entities) {
			return fmt.Errorf("%s: %w: entity %d of %d", path, field.ErrIndexRange, idx, len(s.Entities))
		}
		if int(idx) >= s.NumEntities {
			s.NumEntities = int(idx) + 1
		}
		ent := &s.Entities[idx]
		if err := record.Read(dec, m, e.tables.Entity, ent); err != nil {
			return fmt.Errorf("%s: entity %d: %w", path, idx, err)
		}
		ent.Area = game.AreaLink{}
		e.host.LinkEntity(ent)
		loaded++
	}

	n := min(s.NumEntities, len(s.Entities))
	for i := range s.Clients {
		if i+1 >= n {
			break
		}
		ent := &s.Entities[i+1]
		ent.Client = &s.Clients[i]
		ent.Client.Pers.Connected = false
	}

	for i := range n {
		ent := &s.Entities[i]
		if ent.InUse && ent.ClassName == crossLevelTarget {
			ent.NextThink = s.Level.Time + ent.Delay
		}
	}

	e.log.Debug("read level state", "path", path, "map", s.Level.MapName, "entities", loaded, "num_entities", s.NumEntities)
	return nil
}
