package game

import "github.com/samcharles93/edictsave/internal/field"

// Field tables. Their order is the on-disk order; changing any table invalidates
// existing saves.

func entityFields() []field.Descriptor[Entity] {
	type E = Entity
	return field.Group(
		field.Bool("inuse", func(e *E) *bool { return &e.InUse }),
		field.Ignore("area", func(e *E) *AreaLink { return &e.Area }),
		field.Int("linkcount", func(e *E) *int32 { return &e.LinkCount }),
		field.Client("client", func(e *E) **Client { return &e.Client }),

		field.Vector("origin", func(e *E) *Vec3 { return &e.Origin }),
		field.Vector("angles", func(e *E) *Vec3 { return &e.Angles }),
		field.Vector("velocity", func(e *E) *Vec3 { return &e.Velocity }),
		field.Vector("avelocity", func(e *E) *Vec3 { return &e.AVelocity }),
		field.Vector("mins", func(e *E) *Vec3 { return &e.Mins }),
		field.Vector("maxs", func(e *E) *Vec3 { return &e.Maxs }),

		field.Int("frame", func(e *E) *int32 { return &e.Frame }),
		field.Int("solid", func(e *E) *int32 { return &e.Solid }),
		field.Int("movetype", func(e *E) *int32 { return &e.MoveType }),
		field.Bits("flags", func(e *E) *uint32 { return &e.Flags }),
		field.Bits("spawnflags", func(e *E) *uint32 { return &e.SpawnFlags }),
		field.Bits("svflags", func(e *E) *uint32 { return &e.SvFlags }),

		field.String("model", func(e *E) *string { return &e.Model }),
		field.String("classname", func(e *E) *string { return &e.ClassName }),
		field.String("targetname", func(e *E) *string { return &e.TargetName }),
		field.String("target", func(e *E) *string { return &e.Target }),
		field.String("killtarget", func(e *E) *string { return &e.KillTarget }),
		field.String("team", func(e *E) *string { return &e.Team }),
		field.String("message", func(e *E) *string { return &e.Message }),
		field.String("map", func(e *E) *string { return &e.Map }),
		field.String("pathtarget", func(e *E) *string { return &e.PathTarget }),

		field.Int("health", func(e *E) *int32 { return &e.Health }),
		field.Int("max_health", func(e *E) *int32 { return &e.MaxHealth }),
		field.Int("gib_health", func(e *E) *int32 { return &e.GibHealth }),
		field.Int("deadflag", func(e *E) *int32 { return &e.DeadFlag }),
		field.Int("takedamage", func(e *E) *int32 { return &e.TakeDamage }),
		field.Int("dmg", func(e *E) *int32 { return &e.Dmg }),
		field.Int("count", func(e *E) *int32 { return &e.Count }),
		field.Int("style", func(e *E) *int32 { return &e.Style }),
		field.Int("sounds", func(e *E) *int32 { return &e.Sounds }),
		field.Int("mass", func(e *E) *int32 { return &e.Mass }),

		field.Float("speed", func(e *E) *float32 { return &e.Speed }),
		field.Float("delay", func(e *E) *float32 { return &e.Delay }),
		field.Float("wait", func(e *E) *float32 { return &e.Wait }),
		field.Float("random", func(e *E) *float32 { return &e.Random }),
		field.Float("timestamp", func(e *E) *float32 { return &e.TimeStamp }),
		field.Float("nextthink", func(e *E) *float32 { return &e.NextThink }),

		field.Callback("think", func(e *E) *Think { return &e.Think }),
		field.Callback("prethink", func(e *E) *Think { return &e.PreThink }),
		field.Callback("use", func(e *E) *Use { return &e.Use }),
		field.Callback("touch", func(e *E) *Touch { return &e.Touch }),
		field.Callback("blocked", func(e *E) *Blocked { return &e.Blocked }),
		field.Callback("pain", func(e *E) *Pain { return &e.Pain }),
		field.Callback("die", func(e *E) *Die { return &e.Die }),

		field.Entity("enemy", func(e *E) **Entity { return &e.Enemy }),
		field.Entity("oldenemy", func(e *E) **Entity { return &e.OldEnemy }),
		field.Entity("goalentity", func(e *E) **Entity { return &e.GoalEntity }),
		field.Entity("movetarget", func(e *E) **Entity { return &e.MoveTarget }),
		field.Entity("owner", func(e *E) **Entity { return &e.Owner }),
		field.Entity("activator", func(e *E) **Entity { return &e.Activator }),
		field.Entity("groundentity", func(e *E) **Entity { return &e.GroundEntity }),
		field.Entity("teamchain", func(e *E) **Entity { return &e.TeamChain }),
		field.Entity("teammaster", func(e *E) **Entity { return &e.TeamMaster }),
		field.Entity("chain", func(e *E) **Entity { return &e.Chain }),

		field.Item("item", func(e *E) **Item { return &e.Item }),

		field.Vector("moveinfo.start_origin", func(e *E) *Vec3 { return &e.MoveInfo.StartOrigin }),
		field.Vector("moveinfo.start_angles", func(e *E) *Vec3 { return &e.MoveInfo.StartAngles }),
		field.Vector("moveinfo.end_origin", func(e *E) *Vec3 { return &e.MoveInfo.EndOrigin }),
		field.Vector("moveinfo.end_angles", func(e *E) *Vec3 { return &e.MoveInfo.EndAngles }),
		field.Float("moveinfo.speed", func(e *E) *float32 { return &e.MoveInfo.Speed }),
		field.Float("moveinfo.accel", func(e *E) *float32 { return &e.MoveInfo.Accel }),
		field.Float("moveinfo.decel", func(e *E) *float32 { return &e.MoveInfo.Decel }),
		field.Float("moveinfo.wait", func(e *E) *float32 { return &e.MoveInfo.Wait }),
		field.Int("moveinfo.state", func(e *E) *int32 { return &e.MoveInfo.State }),
		field.Vector("moveinfo.dir", func(e *E) *Vec3 { return &e.MoveInfo.Dir }),
		field.Float("moveinfo.current_speed", func(e *E) *float32 { return &e.MoveInfo.CurrentSpeed }),
		field.Float("moveinfo.remaining_distance", func(e *E) *float32 { return &e.MoveInfo.RemainingDistance }),
		field.Callback("moveinfo.endfunc", func(e *E) *Think { return &e.MoveInfo.End }),

		field.Sequence("monsterinfo.currentmove", func(e *E) **MoveSequence { return &e.MonsterInfo.CurrentMove }),
		field.Sequence("monsterinfo.savedmove", func(e *E) **MoveSequence { return &e.MonsterInfo.SavedMove }),
		field.Bits("monsterinfo.aiflags", func(e *E) *uint32 { return &e.MonsterInfo.AIFlags }),
		field.Int("monsterinfo.nextframe", func(e *E) *int32 { return &e.MonsterInfo.NextFrame }),
		field.Float("monsterinfo.scale", func(e *E) *float32 { return &e.MonsterInfo.Scale }),
		field.Callback("monsterinfo.stand", func(e *E) *Think { return &e.MonsterInfo.Stand }),
		field.Callback("monsterinfo.idle", func(e *E) *Think { return &e.MonsterInfo.Idle }),
		field.Callback("monsterinfo.search", func(e *E) *Think { return &e.MonsterInfo.Search }),
		field.Callback("monsterinfo.walk", func(e *E) *Think { return &e.MonsterInfo.Walk }),
		field.Callback("monsterinfo.run", func(e *E) *Think { return &e.MonsterInfo.Run }),
		field.Callback("monsterinfo.sight", func(e *E) *Touch { return &e.MonsterInfo.Sight }),
		field.Float("monsterinfo.pausetime", func(e *E) *float32 { return &e.MonsterInfo.PauseTime }),
		field.Float("monsterinfo.attack_finished", func(e *E) *float32 { return &e.MonsterInfo.AttackFinished }),
		field.Float("monsterinfo.idle_time", func(e *E) *float32 { return &e.MonsterInfo.IdleTime }),
		field.Vector("monsterinfo.last_sighting", func(e *E) *Vec3 { return &e.MonsterInfo.LastSighting }),

		field.Int("fog_index", func(e *E) *int32 { return &e.FogIndex }),
		field.Int("fog_model", func(e *E) *int32 { return &e.FogModel }),
		field.Vector("fog_color", func(e *E) *Vec3 { return &e.FogColor }),
		field.Float("fog_near", func(e *E) *float32 { return &e.FogNear }),
		field.Float("fog_far", func(e *E) *float32 { return &e.FogFar }),
		field.Float("fog_density", func(e *E) *float32 { return &e.FogDensity }),
		field.Float("density", func(e *E) *float32 { return &e.Density }),
		field.Int("goal_frame", func(e *E) *int32 { return &e.GoalFrame }),
		field.Bool("is_bot", func(e *E) *bool { return &e.IsBot }),

		field.String("sky", func(e *E) *string { return &e.Spawn.Sky }).SpawnTemp(),
		field.Float("skyrotate", func(e *E) *float32 { return &e.Spawn.SkyRotate }).SpawnTemp(),
		field.Vector("skyaxis", func(e *E) *Vec3 { return &e.Spawn.SkyAxis }).SpawnTemp(),
		field.String("nextmap", func(e *E) *string { return &e.Spawn.NextMap }).SpawnTemp(),
		field.String("gravity", func(e *E) *string { return &e.Spawn.Gravity }).SpawnTemp(),
		field.Float("minyaw", func(e *E) *float32 { return &e.Spawn.MinYaw }).SpawnTemp(),
		field.Float("maxyaw", func(e *E) *float32 { return &e.Spawn.MaxYaw }).SpawnTemp(),
		field.Float("minpitch", func(e *E) *float32 { return &e.Spawn.MinPitch }).SpawnTemp(),
		field.Float("maxpitch", func(e *E) *float32 { return &e.Spawn.MaxPitch }).SpawnTemp(),
	)
}

func persistentFields() []field.Descriptor[Client] {
	type C = Client
	return field.Group(
		field.String("pers.userinfo", func(c *C) *string { return &c.Pers.UserInfo }),
		field.String("pers.netname", func(c *C) *string { return &c.Pers.NetName }),
		field.Int("pers.hand", func(c *C) *int32 { return &c.Pers.Hand }),
		field.Bool("pers.connected", func(c *C) *bool { return &c.Pers.Connected }),
		field.Int("pers.health", func(c *C) *int32 { return &c.Pers.Health }),
		field.Int("pers.max_health", func(c *C) *int32 { return &c.Pers.MaxHealth }),
		field.Bits("pers.savedFlags", func(c *C) *uint32 { return &c.Pers.SavedFlags }),
		field.Int("pers.selected_item", func(c *C) *int32 { return &c.Pers.SelectedItem }),
		field.Int("pers.max_bullets", func(c *C) *int32 { return &c.Pers.MaxBullets }),
		field.Int("pers.max_shells", func(c *C) *int32 { return &c.Pers.MaxShells }),
		field.Int("pers.max_rockets", func(c *C) *int32 { return &c.Pers.MaxRockets }),
		field.Int("pers.max_grenades", func(c *C) *int32 { return &c.Pers.MaxGrenades }),
		field.Int("pers.max_cells", func(c *C) *int32 { return &c.Pers.MaxCells }),
		field.Int("pers.max_slugs", func(c *C) *int32 { return &c.Pers.MaxSlugs }),
		field.Item("pers.weapon", func(c *C) **Item { return &c.Pers.Weapon }),
		field.Item("pers.lastweapon", func(c *C) **Item { return &c.Pers.LastWeapon }),
		field.Int("pers.score", func(c *C) *int32 { return &c.Pers.Score }),
		field.Bool("pers.spectator", func(c *C) *bool { return &c.Pers.Spectator }),
	)
}

func clientFields() []field.Descriptor[Client] {
	type C = Client
	return field.Group(
		field.Int("resp.enterframe", func(c *C) *int32 { return &c.Resp.EnterFrame }),
		field.Int("resp.score", func(c *C) *int32 { return &c.Resp.Score }),
		field.Vector("resp.cmd_angles", func(c *C) *Vec3 { return &c.Resp.CmdAngles }),
		field.Bool("resp.spectator", func(c *C) *bool { return &c.Resp.Spectator }),
		field.Vector("v_angle", func(c *C) *Vec3 { return &c.ViewAngles }),
		field.Vector("kick_angles", func(c *C) *Vec3 { return &c.KickAngles }),
		field.Vector("kick_origin", func(c *C) *Vec3 { return &c.KickOrigin }),
		field.Float("viewheight", func(c *C) *float32 { return &c.ViewHeight }),
		field.Item("newweapon", func(c *C) **Item { return &c.NewWeapon }),
		field.Int("weaponstate", func(c *C) *int32 { return &c.WeaponState }),
		field.Entity("chase_target", func(c *C) **Entity { return &c.ChaseTarget }),
		field.Bool("showscores", func(c *C) *bool { return &c.ShowScores }),
		field.Float("zoomfov", func(c *C) *float32 { return &c.ZoomFOV }),
	)
}

func levelFields() []field.Descriptor[LevelLocals] {
	type L = LevelLocals
	return field.Group(
		field.Int("framenum", func(l *L) *int32 { return &l.FrameNum }),
		field.Float("time", func(l *L) *float32 { return &l.Time }),
		field.String("level_name", func(l *L) *string { return &l.LevelName }),
		field.String("mapname", func(l *L) *string { return &l.MapName }),
		field.String("nextmap", func(l *L) *string { return &l.NextMap }),
		field.Float("intermissiontime", func(l *L) *float32 { return &l.IntermissionTime }),
		field.String("changemap", func(l *L) *string { return &l.ChangeMap }),
		field.Bool("exitintermission", func(l *L) *bool { return &l.ExitIntermission }),
		field.Vector("intermission_origin", func(l *L) *Vec3 { return &l.IntermissionOrigin }),
		field.Vector("intermission_angle", func(l *L) *Vec3 { return &l.IntermissionAngle }),
		field.Entity("sight_client", func(l *L) **Entity { return &l.SightClient }),
		field.Entity("sight_entity", func(l *L) **Entity { return &l.SightEntity }),
		field.Entity("sound_entity", func(l *L) **Entity { return &l.SoundEntity }),
		field.Entity("current_entity", func(l *L) **Entity { return &l.CurrentEntity }),
		field.Int("body_que", func(l *L) *int32 { return &l.BodyQue }),
		field.Int("power_cubes", func(l *L) *int32 { return &l.PowerCubes }),
		field.Int("total_secrets", func(l *L) *int32 { return &l.TotalSecrets }),
		field.Int("found_secrets", func(l *L) *int32 { return &l.FoundSecrets }),
		field.Int("total_goals", func(l *L) *int32 { return &l.TotalGoals }),
		field.Int("found_goals", func(l *L) *int32 { return &l.FoundGoals }),
		field.Int("total_monsters", func(l *L) *int32 { return &l.TotalMonsters }),
		field.Int("killed_monsters", func(l *L) *int32 { return &l.KilledMonsters }),
		field.Int("fogs", func(l *L) *int32 { return &l.Fogs }),
		field.Int("trigger_fogs", func(l *L) *int32 { return &l.TriggerFogs }),
		field.Int("active_fog", func(l *L) *int32 { return &l.ActiveFog }),
		field.Int("active_target_fog", func(l *L) *int32 { return &l.ActiveTargetFog }),
		field.Int("fog.model", func(l *L) *int32 { return &l.Fog.Model }),
		field.Vector("fog.color", func(l *L) *Vec3 { return &l.Fog.Color }),
		field.Float("fog.near", func(l *L) *float32 { return &l.Fog.Near }),
		field.Float("fog.far", func(l *L) *float32 { return &l.Fog.Far }),
		field.Float("fog.density", func(l *L) *float32 { return &l.Fog.Density }),
		field.Float("fog.density1", func(l *L) *float32 { return &l.Fog.Density1 }),
		field.Float("fog.density2", func(l *L) *float32 { return &l.Fog.Density2 }),
	)
}

func gameFields() []field.Descriptor[GameLocals] {
	type G = GameLocals
	return field.Group(
		field.String("helpmessage1", func(g *G) *string { return &g.HelpMessage1 }),
		field.String("helpmessage2", func(g *G) *string { return &g.HelpMessage2 }),
		field.Int("helpchanged", func(g *G) *int32 { return &g.HelpChanged }),
		field.String("spawnpoint", func(g *G) *string { return &g.SpawnPoint }),
		field.Int("maxclients", func(g *G) *int32 { return &g.MaxClients }),
		field.Int("maxentities", func(g *G) *int32 { return &g.MaxEntities }),
		field.Bits("serverflags", func(g *G) *uint32 { return &g.ServerFlags }),
		field.Int("num_items", func(g *G) *int32 { return &g.NumItems }),
		field.Bool("autosaved", func(g *G) *bool { return &g.Autosaved }),
	)
}
