package game

import "github.com/samcharles93/edictsave/internal/registry"

// Every behaviour a savable field may hold is registered here under a stable
// name. Values carry the field's named func type so loads can check them.
func callbackDefs() []registry.Def {
	return []registry.Def{
		{Name: "G_FreeEdict", Value: Think(FreeEdict)},
		{Name: "target_crosslevel_target_think", Value: Think(CrossLevelTargetThink)},
		{Name: "trigger_relay_use", Value: Use(TriggerRelayUse)},
		{Name: "monster_think", Value: Think(MonsterThink)},
		{Name: "soldier_stand", Value: Think(SoldierStand)},
		{Name: "soldier_walk", Value: Think(SoldierWalk)},
		{Name: "soldier_run", Value: Think(SoldierRun)},
		{Name: "soldier_sight", Value: Touch(SoldierSight)},
		{Name: "soldier_pain", Value: Pain(SoldierPain)},
		{Name: "soldier_die", Value: Die(SoldierDie)},
		{Name: "soldier_dead", Value: Think(soldierDead)},
		{Name: "soldier_pain_end", Value: Think(soldierPainEnd)},
		{Name: "player_pain", Value: Pain(PlayerPain)},
		{Name: "player_die", Value: Die(PlayerDie)},
		{Name: "Touch_Item", Value: Touch(TouchItem)},
		{Name: "door_use", Value: Use(DoorUse)},
		{Name: "door_hit_top", Value: Think(DoorHitTop)},
		{Name: "door_hit_bottom", Value: Think(DoorHitBottom)},
		{Name: "door_go_down", Value: Think(DoorGoDown)},
		{Name: "door_blocked", Value: Blocked(DoorBlocked)},
		{Name: "fog_fade", Value: Think(FogFade)},
		{Name: "trig_fog_fade", Value: Think(TrigFogFade)},
		{Name: "init_trigger_fog_delay", Value: Think(InitTriggerFogDelay)},
		{Name: "target_fog_use", Value: Use(TargetFogUse)},
		{Name: "trigger_fog_use", Value: Use(TriggerFogUse)},
	}
}

func sequenceDefs() []registry.Def {
	return []registry.Def{
		{Name: "soldier_move_stand", Value: SoldierMoveStand},
		{Name: "soldier_move_walk", Value: SoldierMoveWalk},
		{Name: "soldier_move_run", Value: SoldierMoveRun},
		{Name: "soldier_move_pain", Value: SoldierMovePain},
		{Name: "soldier_move_death", Value: SoldierMoveDeath},
	}
}
