package savegame

import (
	"errors"
	"fmt"
	"os"

	"github.com/samcharles93/edictsave/internal/game"
	"github.com/samcharles93/edictsave/internal/registry"
	"github.com/samcharles93/edictsave/pkg/savefmt"
)

var ErrUnknownScope = errors.New("savegame: not a save file")

// ClientSummary describes one client record.
type ClientSummary struct {
	Index     int    `json:"index"`
	NetName   string `json:"netname"`
	Connected bool   `json:"connected"`
	Health    int32  `json:"health"`
	MaxHealth int32  `json:"max_health"`
	Weapon    string `json:"weapon,omitempty"`
	Score     int32  `json:"score"`
}

// GameSummary describes a game-scope save.
type GameSummary struct {
	Path        string           `json:"path"`
	Identity    savefmt.Identity `json:"identity"`
	MaxClients  int              `json:"max_clients"`
	MaxEntities int              `json:"max_entities"`
	Autosaved   bool             `json:"autosaved"`
	ServerFlags uint32           `json:"server_flags"`
	HelpMessage string           `json:"help_message,omitempty"`
	Clients     []ClientSummary  `json:"clients"`
}

// EntitySummary describes one saved entity.
type EntitySummary struct {
	Index      int       `json:"index"`
	ClassName  string    `json:"classname"`
	TargetName string    `json:"targetname,omitempty"`
	Target     string    `json:"target,omitempty"`
	Think      string    `json:"think,omitempty"`
	NextThink  float32   `json:"nextthink,omitempty"`
	Move       string    `json:"move,omitempty"`
	Health     int32     `json:"health"`
	Origin     game.Vec3 `json:"origin"`
}

// LevelSummary describes a level-scope save.
type LevelSummary struct {
	Path        string          `json:"path"`
	MapName     string          `json:"map"`
	LevelName   string          `json:"level_name"`
	Time        float32         `json:"time"`
	FrameNum    int32           `json:"framenum"`
	NumEntities int             `json:"num_entities"`
	ActiveFog   int32           `json:"active_fog"`
	Entities    []EntitySummary `json:"entities"`
}

// Summary is the result of Inspect; exactly one of Game and Level is set.
type Summary struct {
	Scope savefmt.Scope `json:"scope"`
	Size  int64         `json:"size"`
	Game  *GameSummary  `json:"game,omitempty"`
	Level *LevelSummary `json:"level,omitempty"`
}

// InspectGame loads a game-scope save into a scratch session and summarises it.
func InspectGame(path string, opts Options) (*GameSummary, error) {
	opts = opts.withDefaults()
	sess := &game.Session{Items: game.DefaultItems()}
	eng := New(sess, NewArena(opts.Logger), opts)
	if err := eng.ReadGameState(path); err != nil {
		return nil, err
	}
	return summariseGame(path, opts.Identity, sess), nil
}

func summariseGame(path string, id savefmt.Identity, s *game.Session) *GameSummary {
	out := &GameSummary{
		Path:        path,
		Identity:    id,
		MaxClients:  len(s.Clients),
		MaxEntities: int(s.Game.MaxEntities),
		Autosaved:   s.Game.Autosaved,
		ServerFlags: s.Game.ServerFlags,
		HelpMessage: s.Game.HelpMessage1,
		Clients:     make([]ClientSummary, 0, len(s.Clients)),
	}
	for i := range s.Clients {
		c := &s.Clients[i]
		cs := ClientSummary{
			Index:     i,
			NetName:   c.Pers.NetName,
			Connected: c.Pers.Connected,
			Health:    c.Pers.Health,
			MaxHealth: c.Pers.MaxHealth,
			Score:     c.Pers.Score,
		}
		if c.Pers.Weapon != nil {
			cs.Weapon = c.Pers.Weapon.PickupName
		}
		out.Clients = append(out.Clients, cs)
	}
	return out
}

// InspectLevel loads a level-scope save into a scratch session sized by
// opts.MaxClients and opts.MaxEntities and summarises it.
func InspectLevel(path string, opts Options) (*LevelSummary, error) {
	opts = opts.withDefaults()
	capacity := opts.MaxEntities
	if capacity == 0 {
		capacity = DefaultMaxEntities
	}
	sess, err := game.NewSession(opts.MaxClients, capacity)
	if err != nil {
		return nil, err
	}
	eng := New(sess, NewArena(opts.Logger), opts)
	if err := eng.ReadLevelState(path); err != nil {
		return nil, err
	}
	return summariseLevel(path, opts.Tables, sess), nil
}

func summariseLevel(path string, tables *game.Tables, s *game.Session) *LevelSummary {
	out := &LevelSummary{
		Path:        path,
		MapName:     s.Level.MapName,
		LevelName:   s.Level.LevelName,
		Time:        s.Level.Time,
		FrameNum:    s.Level.FrameNum,
		NumEntities: s.NumEntities,
		ActiveFog:   s.Level.ActiveFog,
	}
	for i := range s.NumEntities {
		ent := &s.Entities[i]
		if !ent.InUse {
			continue
		}
		out.Entities = append(out.Entities, EntitySummary{
			Index:      i,
			ClassName:  ent.ClassName,
			TargetName: ent.TargetName,
			Target:     ent.Target,
			Think:      nameOf(tables.Callbacks, ent.Think),
			NextThink:  ent.NextThink,
			Move:       nameOf(tables.Sequences, ent.MonsterInfo.CurrentMove),
			Health:     ent.Health,
			Origin:     ent.Origin,
		})
	}
	return out
}

func nameOf(t *registry.Table, v any) string {
	if e, ok := t.LookupValue(v); ok {
		return e.Name
	}
	return ""
}

// Inspect sniffs the scope of path and summarises it.
func Inspect(path string, opts Options) (*Summary, error) {
	scope, size, err := sniffFile(path)
	if err != nil {
		return nil, err
	}
	out := &Summary{Scope: scope, Size: size}
	switch scope {
	case savefmt.ScopeGame:
		out.Game, err = InspectGame(path, opts)
	case savefmt.ScopeLevel:
		out.Level, err = InspectLevel(path, opts)
	default:
		err = fmt.Errorf("%s: %w", path, ErrUnknownScope)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func sniffFile(path string) (savefmt.Scope, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return savefmt.ScopeUnknown, 0, openError(path, err)
	}
	defer func() { _ = f.Close() }()
	st, err := f.Stat()
	if err != nil {
		return savefmt.ScopeUnknown, 0, err
	}
	var prefix [4]byte
	n, _ := f.Read(prefix[:])
	return savefmt.Sniff(prefix[:n]), st.Size(), nil
}

// Sniff reports the scope of the save at path.
func Sniff(path string) (savefmt.Scope, error) {
	scope, _, err := sniffFile(path)
	return scope, err
}
