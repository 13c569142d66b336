package savegame

import (
	"fmt"

	"github.com/samcharles93/edictsave/internal/game"
	"github.com/samcharles93/edictsave/internal/record"
	"github.com/samcharles93/edictsave/pkg/savefmt"
)

// WriteGameState writes the game record and every client record to path. Unless
// autosave is set, the players' entity state is first copied into their persistent
// client data.
func (e *Engine) WriteGameState(path string, autosave bool) (err error) {
	s := e.sess
	if !autosave {
		s.SaveClientData()
	}

	sink, err := savefmt.Create(path)
	if err != nil {
		return openError(path, err)
	}
	defer func() {
		if err != nil {
			sink.Abort()
		}
	}()

	if err := sink.WriteHeader(savefmt.NewHeader(e.ident)); err != nil {
		return err
	}

	s.Game.MaxClients = int32(len(s.Clients))
	m := e.marshaller(TagGame)
	s.Game.Autosaved = autosave
	err = record.Write(sink.Encoder, m, e.tables.Game, &s.Game)
	s.Game.Autosaved = false
	if err != nil {
		return err
	}
	for i := range s.Clients {
		if err := record.Write(sink.Encoder, m, e.tables.Client, &s.Clients[i]); err != nil {
			return fmt.Errorf("client %d: %w", i, err)
		}
	}
	if err := sink.Commit(); err != nil {
		return err
	}

	e.log.Debug("wrote game state", "path", path, "clients", len(s.Clients), "autosave", autosave, "bytes", sink.Written())
	return nil
}

// ReadGameState restores the game record and the client table from path. The
// header is checked before any state changes; afterwards game-tagged memory is
// released and the entity and client tables are reallocated.
func (e *Engine) ReadGameState(path string) error {
	src, err := savefmt.Open(path)
	if err != nil {
		return openError(path, err)
	}
	defer func() { _ = src.Close() }()

	dec := src.Decoder()
	h, err := dec.ReadHeader()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := h.Check(e.ident); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	s := e.sess
	e.host.FreeTags(TagGame)
	m := e.marshaller(TagGame)

	s.Game = game.GameLocals{}
	if err := record.Read(dec, m, e.tables.Game, &s.Game); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	maxClients := int(s.Game.MaxClients)
	capacity := e.maxEnt
	if capacity == 0 {
		capacity = int(s.Game.MaxEntities)
	}
	if capacity <= 1 || capacity > MaxEntitiesLimit {
		return fmt.Errorf("%s: %w: entity capacity %d", path, savefmt.ErrCorrupt, capacity)
	}
	if maxClients < 1 || maxClients >= capacity-1 {
		return fmt.Errorf("%s: %w: %d clients for %d entities", path, savefmt.ErrCorrupt, maxClients, capacity)
	}

	s.AllocEntities(capacity)
	s.NumEntities = maxClients + 1
	s.Game.MaxEntities = int32(capacity)
	s.AllocClients(maxClients)
	for i := range s.Clients {
		if err := record.Read(dec, m, e.tables.Client, &s.Clients[i]); err != nil {
			return fmt.Errorf("%s: client %d: %w", path, i, err)
		}
	}

	e.log.Debug("read game state", "path", path, "clients", maxClients, "entities", capacity)
	return nil
}
