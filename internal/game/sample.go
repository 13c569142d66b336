package game

import "fmt"

// SampleMap is the map name used by NewSample.
const SampleMap = "base1"

// NewSample builds a small but complete session: the world, one player per client
// slot, a soldier, a door with its relay, a pickup, two fogs and a cross-level
// target. It exercises every field kind and most registered behaviours.
func NewSample(maxClients, maxEntities int) (*Session, error) {
	s, err := NewSession(maxClients, maxEntities)
	if err != nil {
		return nil, err
	}
	s.NumEntities = maxClients + 1

	s.Game.HelpMessage1 = "Locate the data CD"
	s.Game.HelpChanged = 1
	s.Game.ServerFlags = 0x2

	s.Level.FrameNum = 125
	s.Level.Time = 12.5
	s.Level.LevelName = "Outer Base"
	s.Level.MapName = SampleMap
	s.Level.NextMap = "base2"

	world := &s.Entities[0]
	world.InUse = true
	world.ClassName = "worldspawn"
	world.Message = "Outer Base"
	world.Solid = 3
	world.Spawn.Sky = "unit1_"
	world.Spawn.Gravity = "800"

	shotgun := s.FindItem("weapon_shotgun")
	for i := range s.Clients {
		c := &s.Clients[i]
		c.Pers.NetName = fmt.Sprintf("player%d", i+1)
		c.Pers.UserInfo = fmt.Sprintf(`\name\player%d\hand\0\skin\male/grunt`, i+1)
		c.Pers.Connected = true
		c.Pers.Health, c.Pers.MaxHealth = 100, 100
		c.Pers.Weapon = shotgun
		c.Pers.LastWeapon = s.FindItem("weapon_blaster")
		c.Pers.Inventory[shotgun.Index] = 1
		c.Pers.Inventory[s.FindItem("ammo_shells").Index] = 25
		c.Pers.MaxShells = 100
		c.ViewHeight = 22

		p := &s.Entities[i+1]
		p.InUse = true
		p.ClassName = "player"
		p.Client = c
		p.Origin = Vec3{float32(64 * i), 0, 24}
		p.Mins, p.Maxs = Vec3{-16, -16, -24}, Vec3{16, 16, 32}
		p.Health, p.MaxHealth = 87, 100
		p.Flags = FlagGodMode | FlagSwim
		p.TakeDamage = 2
		p.Pain = PlayerPain
		p.Die = PlayerDie
		p.GroundEntity = world
	}
	player := &s.Entities[1]
	s.Level.SightClient = player

	// A freed slot between live entities.
	gib, err := s.Spawn()
	if err != nil {
		return nil, err
	}
	s.Free(gib)

	door, err := s.spawn("func_door", func(e *Entity) {
		e.TargetName = "door1"
		e.Model = "*1"
		e.Use = DoorUse
		e.Blocked = DoorBlocked
		e.Dmg = 2
		e.MoveInfo.StartOrigin = Vec3{256, 0, 0}
		e.MoveInfo.EndOrigin = Vec3{256, 0, 96}
		e.MoveInfo.Speed = 100
		e.MoveInfo.Wait = 3
		e.MoveInfo.State = StateBottom
		e.MoveInfo.End = DoorHitTop
		e.Origin = e.MoveInfo.StartOrigin
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.spawn("trigger_relay", func(e *Entity) {
		e.Target = "door1"
		e.Use = TriggerRelayUse
		e.Activator = player
	}); err != nil {
		return nil, err
	}

	if _, err := s.spawn("monster_soldier", func(e *Entity) {
		e.Origin = Vec3{512, 128, 24}
		e.Angles = Vec3{0, 180, 0}
		e.Health, e.MaxHealth, e.GibHealth = 20, 20, -30
		e.TakeDamage = 1
		e.Mass = 100
		e.Think = MonsterThink
		e.NextThink = s.Level.Time + FrameTime
		e.Pain = SoldierPain
		e.Die = SoldierDie
		e.Enemy = player
		e.GoalEntity = door
		e.MonsterInfo.CurrentMove = SoldierMoveRun
		e.MonsterInfo.SavedMove = SoldierMoveStand
		e.MonsterInfo.Stand = SoldierStand
		e.MonsterInfo.Walk = SoldierWalk
		e.MonsterInfo.Run = SoldierRun
		e.MonsterInfo.Sight = SoldierSight
		e.MonsterInfo.Scale = 1.2
		e.MonsterInfo.LastSighting = player.Origin
		e.Frame = frameRun01 + 2
	}); err != nil {
		return nil, err
	}
	s.Level.TotalMonsters = 1

	if _, err := s.spawn("item_health", func(e *Entity) {
		e.Item = s.FindItem("item_health")
		e.Touch = TouchItem
		e.Origin = Vec3{128, -64, 16}
		e.Message = "You got the health"
	}); err != nil {
		return nil, err
	}

	if _, err := s.spawn("target_fog", func(e *Entity) {
		e.TargetName = "fog_on"
		e.FogColor = Vec3{0.4, 0.4, 0.5}
		e.FogNear, e.FogFar = 64, 1024
		e.FogDensity = 20
		e.FogModel = 1
		e.Delay = 2
		e.Count = 3
		e.SpawnFlags = FogToggle
	}); err != nil {
		return nil, err
	}
	if fog := s.Find(nil, "fog_on"); fog != nil {
		if err := s.SpawnFog(fog, false); err != nil {
			return nil, err
		}
	}

	trig, err := s.spawn("trigger_fog", func(e *Entity) {
		e.FogColor = Vec3{0.2, 0.25, 0.2}
		e.FogNear, e.FogFar = 128, 768
		e.Delay = 1
		e.Mins, e.Maxs = Vec3{-64, -64, 0}, Vec3{64, 64, 128}
	})
	if err != nil {
		return nil, err
	}
	if err := s.SpawnFog(trig, true); err != nil {
		return nil, err
	}
	s.InTriggerFog = true
	InitTriggerFogDelay(s, trig)

	if _, err := s.spawn("target_crosslevel_target", func(e *Entity) {
		e.SpawnFlags = 0x2
		e.Delay = 1
		e.Target = "door1"
		e.Think = CrossLevelTargetThink
		e.NextThink = s.Level.Time + e.Delay
	}); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Session) spawn(className string, init func(e *Entity)) (*Entity, error) {
	e, err := s.Spawn()
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", className, err)
	}
	e.ClassName = className
	init(e)
	return e, nil
}
