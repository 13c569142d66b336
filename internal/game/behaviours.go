package game

// Dead flags.
const (
	DeadNo int32 = iota
	DeadDying
	DeadDead
)

// FreeEdict releases self.
func FreeEdict(s *Session, self *Entity) {
	s.Free(self)
}

// CrossLevelTargetThink fires the targets of a target_crosslevel_target once the
// cross-level trigger bits it waits for are all set, then frees it.
func CrossLevelTargetThink(s *Session, self *Entity) {
	want := self.SpawnFlags & CrossTriggerMask
	if s.Game.ServerFlags&CrossTriggerMask&want == want {
		s.UseTargets(self, self)
		s.Free(self)
	}
}

// TriggerRelayUse passes activation through to the relay's targets.
func TriggerRelayUse(s *Session, self, other, activator *Entity) {
	s.UseTargets(self, activator)
}

// MonsterThink advances the monster's current sequence by one frame.
func MonsterThink(s *Session, self *Entity) {
	moveFrame(s, self)
}

func moveFrame(s *Session, self *Entity) {
	mi := &self.MonsterInfo
	move := mi.CurrentMove
	self.NextThink = s.Level.Time + FrameTime
	if move == nil {
		return
	}

	if mi.NextFrame != 0 && mi.NextFrame >= move.FirstFrame && mi.NextFrame <= move.LastFrame {
		self.Frame = mi.NextFrame
		mi.NextFrame = 0
	} else {
		if self.Frame == move.LastFrame && move.End != nil {
			move.End(s, self)
			move = mi.CurrentMove
			if !self.InUse || move == nil {
				return
			}
		}
		if self.Frame < move.FirstFrame || self.Frame > move.LastFrame {
			self.Frame = move.FirstFrame
		} else {
			self.Frame++
			if self.Frame > move.LastFrame {
				self.Frame = move.FirstFrame
			}
		}
	}

	i := int(self.Frame - move.FirstFrame)
	if i < 0 || i >= len(move.Frames) {
		return
	}
	f := move.Frames[i]
	if f.AI != nil {
		scale := mi.Scale
		if scale == 0 {
			scale = 1
		}
		f.AI(s, self, f.Dist*scale)
	}
	if f.Think != nil {
		f.Think(s, self)
	}
}

func aiStand(s *Session, self *Entity, dist float32) {
	if self.Enemy != nil && self.MonsterInfo.Run != nil {
		self.MonsterInfo.Run(s, self)
	}
}

func aiMove(s *Session, self *Entity, dist float32) {
	yaw := self.Angles[1]
	dx, dy := forward(yaw)
	self.Origin[0] += dx * dist
	self.Origin[1] += dy * dist
}

func aiCharge(s *Session, self *Entity, dist float32) {
	if self.Enemy != nil {
		self.Angles[1] = yawTowards(self.Origin, self.Enemy.Origin)
	}
	aiMove(s, self, dist)
}

// SoldierStand puts a soldier into its idle sequence.
func SoldierStand(s *Session, self *Entity) {
	self.MonsterInfo.CurrentMove = SoldierMoveStand
}

func SoldierWalk(s *Session, self *Entity) {
	self.MonsterInfo.CurrentMove = SoldierMoveWalk
}

func SoldierRun(s *Session, self *Entity) {
	self.MonsterInfo.CurrentMove = SoldierMoveRun
}

// SoldierSight makes other the soldier's enemy.
func SoldierSight(s *Session, self, other *Entity) {
	self.Enemy = other
	s.Level.SightEntity = self
	SoldierRun(s, self)
}

func SoldierPain(s *Session, self, other *Entity, kick float32, damage int) {
	if self.Health < self.MaxHealth/2 {
		self.MonsterInfo.SavedMove = self.MonsterInfo.CurrentMove
	}
	if s.Level.Time < self.TimeStamp {
		return
	}
	self.TimeStamp = s.Level.Time + 3
	self.MonsterInfo.CurrentMove = SoldierMovePain
}

func SoldierDie(s *Session, self, inflictor, attacker *Entity, damage int, point Vec3) {
	if self.DeadFlag == DeadDead {
		return
	}
	self.DeadFlag = DeadDead
	self.TakeDamage = 1
	self.MonsterInfo.CurrentMove = SoldierMoveDeath
	s.Level.KilledMonsters++
}

func soldierDead(s *Session, self *Entity) {
	self.Maxs[2] = -8
	self.NextThink = 0
	self.Think = nil
}

func soldierPainEnd(s *Session, self *Entity) {
	if self.Enemy != nil {
		SoldierRun(s, self)
		return
	}
	SoldierStand(s, self)
}

func PlayerPain(s *Session, self, other *Entity, kick float32, damage int) {
	if self.Client != nil {
		self.Client.KickAngles[0] -= kick
	}
}

func PlayerDie(s *Session, self, inflictor, attacker *Entity, damage int, point Vec3) {
	self.DeadFlag = DeadDead
	self.Enemy = attacker
	if self.Client != nil {
		self.Client.ShowScores = true
	}
}

// TouchItem gives the item to a touching player and frees the pickup.
func TouchItem(s *Session, self, other *Entity) {
	if other.Client == nil || self.Item == nil {
		return
	}
	inv := &other.Client.Pers.Inventory
	if self.Item.Index < len(inv) {
		q := self.Item.Quantity
		if q == 0 {
			q = 1
		}
		inv[self.Item.Index] += q
	}
	if self.Item.Flags&ItemWeapon != 0 {
		other.Client.NewWeapon = self.Item
	}
	s.UseTargets(self, other)
	s.Free(self)
}

// Door states.
const (
	StateTop int32 = iota
	StateBottom
	StateUp
	StateDown
)

// DoorUse opens a closed door and closes an open one.
func DoorUse(s *Session, self, other, activator *Entity) {
	mi := &self.MoveInfo
	switch mi.State {
	case StateUp, StateTop:
		mi.State = StateDown
		self.Origin = mi.StartOrigin
		self.Think = DoorHitBottom
	default:
		mi.State = StateUp
		self.Origin = mi.EndOrigin
		self.Think = DoorHitTop
	}
	self.Activator = activator
	self.NextThink = s.Level.Time + FrameTime
}

func DoorHitTop(s *Session, self *Entity) {
	self.MoveInfo.State = StateTop
	self.Think = nil
	if self.MoveInfo.Wait >= 0 {
		self.Think = DoorGoDown
		self.NextThink = s.Level.Time + self.MoveInfo.Wait
	}
}

func DoorGoDown(s *Session, self *Entity) {
	self.MoveInfo.State = StateDown
	self.Origin = self.MoveInfo.StartOrigin
	self.Think = DoorHitBottom
	self.NextThink = s.Level.Time + FrameTime
}

func DoorHitBottom(s *Session, self *Entity) {
	self.MoveInfo.State = StateBottom
	self.Think = nil
}

func DoorBlocked(s *Session, self, other *Entity) {
	if other.TakeDamage != 0 {
		other.Health -= self.Dmg
	}
}
