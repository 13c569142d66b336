package game

import (
	"errors"

	"github.com/samcharles93/edictsave/internal/registry"
)

// MaxFogs bounds the fog table. Fog 0 is reserved for console commands.
const MaxFogs = 16

var ErrTooManyFogs = errors.New("game: maximum number of fogs exceeded")

// fogOff is the setting a fade starts from when no fog is active.
func fogOff(f Fog) Fog {
	f.Near, f.Far = 4999, 5000
	f.Density, f.Density1, f.Density2 = 0, 0, 0
	return f
}

// fadeStep moves cur one frame closer to goal, arriving after frames frames.
func fadeStep(cur *Fog, goal Fog, frames float32) {
	if cur.Model == 0 {
		cur.Near += (goal.Near - cur.Near) / frames
		cur.Far += (goal.Far - cur.Far) / frames
	} else {
		cur.Density += (goal.Density - cur.Density) / frames
		cur.Density1 += (goal.Density1 - cur.Density1) / frames
		cur.Density2 += (goal.Density2 - cur.Density2) / frames
	}
	for i := range cur.Color {
		cur.Color[i] += (goal.Color[i] - cur.Color[i]) / frames
	}
}

func (s *Session) fog(self *Entity) *Fog {
	i := int(self.FogIndex) - 1
	if i < 0 || i >= len(s.Fogs) {
		return nil
	}
	return &s.Fogs[i]
}

// goalFog loads self's fog keys into its fog table entry.
func (s *Session) goalFog(self *Entity, f *Fog) {
	f.Color = self.FogColor
	f.Near = self.FogNear
	f.Far = self.FogFar
	f.Density = self.FogDensity
	f.Density1 = self.FogDensity
	f.Density2 = self.Density
}

func isThink(t Think, fn Think) bool {
	a, _ := registry.AddressOf(t)
	b, _ := registry.AddressOf(fn)
	return a != 0 && a == b
}

// FogFade ramps the level fog toward a target_fog's setting.
func FogFade(s *Session, self *Entity) {
	goal := s.fog(self)
	if goal == nil {
		return
	}
	if s.Level.FrameNum <= self.GoalFrame {
		frames := float32(self.GoalFrame - s.Level.FrameNum + 1)
		fadeStep(&s.FadeFog, *goal, frames)
		self.NextThink = s.Level.Time + FrameTime
		if !s.InTriggerFog {
			s.Level.Fog = s.FadeFog
		}
		return
	}
	if self.SpawnFlags&FogTurnOff != 0 {
		s.Level.ActiveFog, s.Level.ActiveTargetFog = 0, 0
	}
}

// TrigFogFade ramps the trigger fade fog while the player stays inside a
// trigger_fog.
func TrigFogFade(s *Session, self *Entity) {
	if !s.InTriggerFog {
		self.NextThink = 0
		return
	}
	goal := s.fog(self)
	if goal == nil || s.Level.FrameNum > self.GoalFrame {
		return
	}
	frames := float32(self.GoalFrame - s.Level.FrameNum + 1)
	fadeStep(&s.TrigFadeFog, *goal, frames)
	self.NextThink = s.Level.Time + FrameTime
}

// InitTriggerFogDelay stops every other fog ramp and starts self's.
func InitTriggerFogDelay(s *Session, self *Entity) {
	goal := s.fog(self)
	if goal == nil {
		return
	}
	for i := 1; i < s.NumEntities; i++ {
		e := &s.Entities[i]
		if !e.InUse || e == self {
			continue
		}
		if isThink(e.Think, TrigFogFade) || isThink(e.Think, FogFade) {
			e.Think = nil
			e.NextThink = 0
		}
	}

	self.SpawnFlags |= FogOn
	if s.Level.ActiveFog == 0 {
		s.Level.Fog = fogOff(*goal)
	}
	s.goalFog(self, goal)
	self.GoalFrame = s.Level.FrameNum + int32(self.Delay*10) + 1
	self.Think = TrigFogFade
	self.NextThink = s.Level.Time + FrameTime
	s.TrigFadeFog = s.Level.Fog
	s.Level.ActiveFog = self.FogIndex
}

// TargetFogUse switches the level fog to self's setting, ramping over Delay seconds
// when set.
func TargetFogUse(s *Session, self, other, activator *Entity) {
	self.Count--
	if self.Count == 0 {
		self.Think = FreeEdict
		self.NextThink = s.Level.Time + self.Delay + 1
	}
	if self.SpawnFlags&FogOn != 0 && self.SpawnFlags&FogToggle != 0 {
		self.SpawnFlags &^= FogOn
		return
	}
	self.SpawnFlags |= FogOn

	goal := s.fog(self)
	if goal == nil {
		return
	}
	s.InTriggerFog = false
	for i := 1; i < s.NumEntities; i++ {
		if e := &s.Entities[i]; e.InUse && isThink(e.Think, FogFade) {
			e.NextThink = 0
		}
	}

	if self.SpawnFlags&FogTurnOff != 0 {
		if self.Delay != 0 && s.Level.ActiveFog != 0 {
			*goal = fogOff(*goal)
			goal.Color = s.Level.Fog.Color
			self.GoalFrame = s.Level.FrameNum + int32(self.Delay*10) + 1
			self.Think = FogFade
			self.NextThink = s.Level.Time + FrameTime
			s.Level.ActiveFog, s.Level.ActiveTargetFog = self.FogIndex, self.FogIndex
			s.FadeFog = s.Level.Fog
			return
		}
		s.Level.ActiveFog, s.Level.ActiveTargetFog = 0, 0
		return
	}

	if self.Delay != 0 {
		if s.Level.ActiveFog == 0 {
			s.Level.Fog = fogOff(*goal)
		}
		s.goalFog(self, goal)
		self.GoalFrame = s.Level.FrameNum + int32(self.Delay*10) + 1
		self.Think = FogFade
		self.NextThink = s.Level.Time + FrameTime
		s.FadeFog = s.Level.Fog
	} else {
		s.Level.Fog = *goal
	}
	s.Level.ActiveFog, s.Level.ActiveTargetFog = self.FogIndex, self.FogIndex
}

// TriggerFogUse toggles a trigger_fog on and off.
func TriggerFogUse(s *Session, self, other, activator *Entity) {
	if self.SpawnFlags&FogOn != 0 && self.SpawnFlags&FogToggle != 0 {
		self.SpawnFlags &^= FogOn
		self.Count--
		if self.Count == 0 {
			self.Think = FreeEdict
			self.NextThink = s.Level.Time + FrameTime
		}
		return
	}
	self.SpawnFlags |= FogOn
}

// SpawnFog claims a fog table entry for a target_fog or trigger_fog and sets its
// use behaviour.
func (s *Session) SpawnFog(self *Entity, trigger bool) error {
	if s.Level.Fogs == 0 {
		s.Level.Fogs = 1
	}
	if int(s.Level.Fogs) >= len(s.Fogs) {
		s.Free(self)
		return ErrTooManyFogs
	}
	self.FogIndex = s.Level.Fogs + 1
	f := &s.Fogs[s.Level.Fogs]
	f.Model = self.FogModel
	if f.Model < 0 || f.Model > 2 {
		f.Model = 0
	}
	s.goalFog(self, f)
	s.Level.Fogs++
	if trigger {
		s.Level.TriggerFogs++
		self.ClassName = "trigger_fog"
		self.Use = TriggerFogUse
	} else {
		self.ClassName = "target_fog"
		self.Use = TargetFogUse
	}
	return nil
}
