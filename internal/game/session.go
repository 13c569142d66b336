package game

import (
	"errors"
	"fmt"

	"github.com/samcharles93/edictsave/internal/field"
)

var (
	ErrCapacity     = errors.New("game: invalid capacity")
	ErrNoFreeEntity = errors.New("game: no free entity slots")
)

// Session owns the live tables. Record cross-references are pointers into its
// slices, so the slices are never reallocated while records point into them.
type Session struct {
	Entities    []Entity
	NumEntities int
	Clients     []Client
	Items       []Item

	Level LevelLocals
	Game  GameLocals

	// Coop carries client scores through SaveClientData.
	Coop bool

	// Fog state that is rebuilt by spawning and never saved.
	Fogs         []Fog
	FadeFog      Fog
	TrigFadeFog  Fog
	InTriggerFog bool
}

// NewSession allocates an entity table of maxEntities slots and maxClients clients.
// Entity 0 is the world; entities 1..maxClients belong to the clients.
func NewSession(maxClients, maxEntities int) (*Session, error) {
	s := &Session{Items: DefaultItems()}
	if err := s.Reset(maxClients, maxEntities); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset discards all state and reallocates the tables.
func (s *Session) Reset(maxClients, maxEntities int) error {
	if maxClients < 1 || maxEntities <= maxClients+1 {
		return fmt.Errorf("%w: %d clients, %d entities", ErrCapacity, maxClients, maxEntities)
	}
	s.AllocEntities(maxEntities)
	s.AllocClients(maxClients)
	s.Level = LevelLocals{}
	s.Game = GameLocals{
		MaxClients:  int32(maxClients),
		MaxEntities: int32(maxEntities),
		NumItems:    int32(len(s.Items)),
	}
	s.Fogs = make([]Fog, MaxFogs)
	s.FadeFog, s.TrigFadeFog, s.InTriggerFog = Fog{}, Fog{}, false
	return nil
}

// AllocEntities replaces the entity table with n cleared slots.
func (s *Session) AllocEntities(n int) {
	s.Entities = make([]Entity, n)
	for i := range s.Entities {
		s.Entities[i].Num = i
	}
	s.NumEntities = 0
}

// AllocClients replaces the client table with n cleared slots.
func (s *Session) AllocClients(n int) {
	s.Clients = make([]Client, n)
	for i := range s.Clients {
		s.Clients[i].Index = i
	}
}

// ClearEntities zeroes every entity slot, keeping each slot's index.
func (s *Session) ClearEntities() {
	for i := range s.Entities {
		s.Entities[i] = Entity{Num: i}
	}
}

// MaxClients is the number of client slots.
func (s *Session) MaxClients() int { return len(s.Clients) }

// SaveClientData copies the state of each connected player's entity into the
// client's persistent data so it survives the level change.
func (s *Session) SaveClientData() {
	for i := range s.Clients {
		if i+1 >= len(s.Entities) {
			break
		}
		ent := &s.Entities[i+1]
		if !ent.InUse {
			continue
		}
		pers := &s.Clients[i].Pers
		pers.Health = ent.Health
		pers.MaxHealth = ent.MaxHealth
		pers.SavedFlags = ent.Flags & savedClientFlags
		if s.Coop && ent.Client != nil {
			pers.Score = ent.Client.Resp.Score
		}
	}
}

// Spawn returns the first free entity slot past the clients, marked in use.
func (s *Session) Spawn() (*Entity, error) {
	for i := len(s.Clients) + 1; i < len(s.Entities); i++ {
		e := &s.Entities[i]
		// Slots freed within the last half second are not reused.
		if e.InUse || (e.TimeStamp >= 2 && s.Level.Time-e.TimeStamp <= 0.5) {
			continue
		}
		*e = Entity{Num: i, InUse: true, ClassName: "noclass"}
		if i >= s.NumEntities {
			s.NumEntities = i + 1
		}
		return e, nil
	}
	return nil, ErrNoFreeEntity
}

// Free releases an entity slot. The release time is kept in TimeStamp.
func (s *Session) Free(e *Entity) {
	*e = Entity{Num: e.Num, ClassName: "freed", TimeStamp: s.Level.Time}
}

// Find returns the next in-use entity after from whose targetname matches.
func (s *Session) Find(from *Entity, targetName string) *Entity {
	start := 0
	if from != nil {
		start = from.Num + 1
	}
	for i := start; i < s.NumEntities; i++ {
		e := &s.Entities[i]
		if e.InUse && e.TargetName == targetName {
			return e
		}
	}
	return nil
}

// UseTargets fires the Use behaviour of every entity targeted by ent.
func (s *Session) UseTargets(ent, activator *Entity) {
	if ent.Target == "" {
		return
	}
	for t := s.Find(nil, ent.Target); t != nil; t = s.Find(t, ent.Target) {
		if t.Use != nil {
			t.Use(s, t, ent, activator)
		}
		if !ent.InUse {
			return
		}
	}
}

// IndexOf implements field.Resolver. The reference must point into the session's
// own tables.
func (s *Session) IndexOf(kind field.Kind, ref any) (int, error) {
	switch kind {
	case field.KindEntity:
		if e, ok := ref.(*Entity); ok {
			return indexIn(s.Entities, e, e.Num, kind)
		}
	case field.KindClient:
		if c, ok := ref.(*Client); ok {
			return indexIn(s.Clients, c, c.Index, kind)
		}
	case field.KindItem:
		if it, ok := ref.(*Item); ok {
			return indexIn(s.Items, it, it.Index, kind)
		}
	}
	return 0, fmt.Errorf("%w: %T is not a %s reference", field.ErrTypeMismatch, ref, kind)
}

// Resolve implements field.Resolver.
func (s *Session) Resolve(kind field.Kind, index int) (any, error) {
	var n int
	switch kind {
	case field.KindEntity:
		n = len(s.Entities)
	case field.KindClient:
		n = len(s.Clients)
	case field.KindItem:
		n = len(s.Items)
	default:
		return nil, fmt.Errorf("%w: %s is not a reference kind", field.ErrTypeMismatch, kind)
	}
	if index < 0 || index >= n {
		return nil, fmt.Errorf("%w: %s %d of %d", field.ErrIndexRange, kind, index, n)
	}
	switch kind {
	case field.KindEntity:
		return &s.Entities[index], nil
	case field.KindClient:
		return &s.Clients[index], nil
	default:
		return &s.Items[index], nil
	}
}

// indexIn trusts the record's own index only if it points back at the record.
func indexIn[E any](table []E, p *E, i int, kind field.Kind) (int, error) {
	if i >= 0 && i < len(table) && &table[i] == p {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %s at %p", field.ErrForeignRef, kind, p)
}
