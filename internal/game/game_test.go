package game

import (
	"errors"
	"testing"

	"github.com/samcharles93/edictsave/internal/field"
)

func TestDefaultTablesBuild(t *testing.T) {
	t.Parallel()

	tbl := DefaultTables()
	if tbl != DefaultTables() {
		t.Fatalf("default tables rebuilt")
	}
	if got := tbl.Callbacks.Len(); got != len(callbackDefs()) {
		t.Fatalf("callbacks: got %d want %d", got, len(callbackDefs()))
	}
	if got := tbl.Sequences.Len(); got != len(sequenceDefs()) {
		t.Fatalf("sequences: got %d want %d", got, len(sequenceDefs()))
	}
	for _, name := range []string{"fog_fade", "trig_fog_fade", "init_trigger_fog_delay", "target_fog_use", "trigger_fog_use"} {
		if _, ok := tbl.Callbacks.Find(name); !ok {
			t.Fatalf("fog callback %q not registered", name)
		}
	}
	if e, ok := tbl.Callbacks.LookupValue(Think(FogFade)); !ok || e.Name != "fog_fade" {
		t.Fatalf("lookup fog_fade: %q %v", e.Name, ok)
	}
	if e, ok := tbl.Sequences.LookupValue(SoldierMoveRun); !ok || e.Name != "soldier_move_run" {
		t.Fatalf("lookup soldier_move_run: %q %v", e.Name, ok)
	}
	if tbl.Client.BlockSize() == 0 || tbl.Entity.BlockSize() == 0 {
		t.Fatalf("empty layouts")
	}
}

func TestEntityLayoutSkipsSpawnTemp(t *testing.T) {
	t.Parallel()

	l := DefaultTables().Entity
	transient := 0
	for _, d := range l.Descriptors() {
		if d.Transient() {
			transient++
			if d.Width() != 0 {
				t.Fatalf("%s: transient field has width %d", d.Name, d.Width())
			}
		}
		if d.Kind == field.KindIgnore && d.Name != "area" {
			t.Fatalf("unexpected ignored field %s", d.Name)
		}
	}
	if transient != 9 {
		t.Fatalf("transient fields: got %d want 9", transient)
	}
}

func TestNewSessionCapacity(t *testing.T) {
	t.Parallel()

	if _, err := NewSession(0, 16); !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}
	if _, err := NewSession(4, 5); !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}
	s, err := NewSession(2, 32)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	for i := range s.Entities {
		if s.Entities[i].Num != i {
			t.Fatalf("entity %d has Num %d", i, s.Entities[i].Num)
		}
	}
	if s.Game.MaxClients != 2 || s.Game.MaxEntities != 32 {
		t.Fatalf("game limits: %+v", s.Game)
	}
}

func TestResolver(t *testing.T) {
	t.Parallel()

	s, err := NewSession(1, 8)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	idx, err := s.IndexOf(field.KindEntity, &s.Entities[5])
	if err != nil || idx != 5 {
		t.Fatalf("entity index: %d %v", idx, err)
	}
	idx, err = s.IndexOf(field.KindItem, &s.Items[3])
	if err != nil || idx != 3 {
		t.Fatalf("item index: %d %v", idx, err)
	}
	stray := Entity{Num: 2}
	if _, err := s.IndexOf(field.KindEntity, &stray); !errors.Is(err, field.ErrForeignRef) {
		t.Fatalf("expected ErrForeignRef, got %v", err)
	}
	if _, err := s.IndexOf(field.KindClient, &s.Entities[1]); !errors.Is(err, field.ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	v, err := s.Resolve(field.KindClient, 0)
	if err != nil || v.(*Client) != &s.Clients[0] {
		t.Fatalf("resolve client 0: %v", err)
	}
	if _, err := s.Resolve(field.KindEntity, 8); !errors.Is(err, field.ErrIndexRange) {
		t.Fatalf("expected ErrIndexRange, got %v", err)
	}
}

func TestSaveClientData(t *testing.T) {
	t.Parallel()

	s, err := NewSession(2, 8)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	s.Coop = true
	p := &s.Entities[1]
	p.InUse = true
	p.Client = &s.Clients[0]
	p.Health, p.MaxHealth = 42, 100
	p.Flags = FlagGodMode | FlagSwim | FlagPowerArmor
	s.Clients[0].Resp.Score = 7
	s.Clients[1].Pers.Health = 55

	s.SaveClientData()
	pers := s.Clients[0].Pers
	if pers.Health != 42 || pers.MaxHealth != 100 || pers.Score != 7 {
		t.Fatalf("persistent data not copied: %+v", pers)
	}
	if pers.SavedFlags != FlagGodMode|FlagPowerArmor {
		t.Fatalf("saved flags: %#x", pers.SavedFlags)
	}
	if s.Clients[1].Pers.Health != 55 {
		t.Fatalf("client without an entity was touched")
	}
}

func TestSpawnSkipsRecentlyFreed(t *testing.T) {
	t.Parallel()

	s, err := NewSession(1, 6)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	s.Level.Time = 10
	a, _ := s.Spawn()
	s.Free(a)
	b, err := s.Spawn()
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if b == a {
		t.Fatalf("freed slot reused immediately")
	}
	s.Level.Time = 11
	c, _ := s.Spawn()
	if c != a {
		t.Fatalf("freed slot not reused after timeout: got %d", c.Num)
	}
}

func TestSampleSession(t *testing.T) {
	t.Parallel()

	s, err := NewSample(2, 64)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if s.Level.MapName != SampleMap {
		t.Fatalf("map: %q", s.Level.MapName)
	}
	classes := map[string]*Entity{}
	for i := range s.NumEntities {
		if e := &s.Entities[i]; e.InUse {
			classes[e.ClassName] = e
		}
	}
	for _, want := range []string{"worldspawn", "player", "func_door", "trigger_relay", "monster_soldier", "item_health", "target_fog", "trigger_fog", "target_crosslevel_target"} {
		if classes[want] == nil {
			t.Fatalf("sample has no %s", want)
		}
	}
	if s.Entities[3].InUse {
		t.Fatalf("freed slot 3 is in use")
	}
	if s.Level.Fogs != 3 || s.Level.TriggerFogs != 1 {
		t.Fatalf("fog counts: %d %d", s.Level.Fogs, s.Level.TriggerFogs)
	}
	trig := classes["trigger_fog"]
	if !isThink(trig.Think, TrigFogFade) || s.Level.ActiveFog != trig.FogIndex {
		t.Fatalf("trigger fog not ramping")
	}
}

func TestMonsterThinkAdvancesSequence(t *testing.T) {
	t.Parallel()

	s, err := NewSession(1, 8)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	e, _ := s.Spawn()
	e.MonsterInfo.CurrentMove = SoldierMoveWalk
	e.Frame = frameWalk10
	e.Angles[1] = 0

	MonsterThink(s, e)
	if e.Frame != frameWalk01 {
		t.Fatalf("sequence did not wrap: frame %d", e.Frame)
	}
	if e.Origin[0] != 4 {
		t.Fatalf("walk did not move: %v", e.Origin)
	}
	if e.NextThink != s.Level.Time+FrameTime {
		t.Fatalf("nextthink: %v", e.NextThink)
	}

	SoldierPain(s, e, nil, 0, 5)
	if e.MonsterInfo.CurrentMove != SoldierMovePain {
		t.Fatalf("pain sequence not set")
	}
	e.Frame = framePain05
	MonsterThink(s, e)
	if e.MonsterInfo.CurrentMove != SoldierMoveStand {
		t.Fatalf("pain end did not return to stand")
	}
}

func TestTargetFogUse(t *testing.T) {
	t.Parallel()

	s, err := NewSession(1, 16)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	s.NumEntities = 2
	e, _ := s.Spawn()
	e.FogColor = Vec3{1, 0, 0}
	e.FogNear, e.FogFar = 10, 100
	e.Count = 2
	if err := s.SpawnFog(e, false); err != nil {
		t.Fatalf("spawn fog: %v", err)
	}

	e.Use(s, e, nil, nil)
	if s.Level.ActiveFog != e.FogIndex || s.Level.Fog.Far != 100 {
		t.Fatalf("fog not applied: %+v", s.Level)
	}

	e.Use(s, e, nil, nil)
	if !isThink(e.Think, FreeEdict) {
		t.Fatalf("exhausted target_fog not scheduled for removal")
	}
}

func TestTriggerFogToggle(t *testing.T) {
	t.Parallel()

	s, err := NewSession(1, 16)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	e, _ := s.Spawn()
	e.SpawnFlags = FogToggle
	e.Count = 1
	TriggerFogUse(s, e, nil, nil)
	if e.SpawnFlags&FogOn == 0 {
		t.Fatalf("fog not switched on")
	}
	TriggerFogUse(s, e, nil, nil)
	if e.SpawnFlags&FogOn != 0 || !isThink(e.Think, FreeEdict) {
		t.Fatalf("toggle off did not expire the trigger")
	}
}

func TestCrossLevelTarget(t *testing.T) {
	t.Parallel()

	s, err := NewSample(1, 32)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	var target, door *Entity
	for i := range s.NumEntities {
		switch e := &s.Entities[i]; e.ClassName {
		case "target_crosslevel_target":
			target = e
		case "func_door":
			door = e
		}
	}
	CrossLevelTargetThink(s, target)
	if target.InUse {
		t.Fatalf("cross-level target not freed")
	}
	if door.MoveInfo.State != StateUp {
		t.Fatalf("door not opened: state %d", door.MoveInfo.State)
	}
}
