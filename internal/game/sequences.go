package game

// Soldier frame numbers.
const (
	frameStand01 = 0
	frameStand30 = 29
	frameWalk01  = 30
	frameWalk10  = 39
	frameRun01   = 40
	frameRun06   = 45
	framePain01  = 46
	framePain05  = 50
	frameDeath01 = 51
	frameDeath12 = 62
)

func frames(n int, ai AI, dist float32) []MoveFrame {
	out := make([]MoveFrame, n)
	for i := range out {
		out[i] = MoveFrame{AI: ai, Dist: dist}
	}
	return out
}

var (
	SoldierMoveStand = &MoveSequence{
		FirstFrame: frameStand01,
		LastFrame:  frameStand30,
		Frames:     frames(frameStand30-frameStand01+1, aiStand, 0),
	}
	SoldierMoveWalk = &MoveSequence{
		FirstFrame: frameWalk01,
		LastFrame:  frameWalk10,
		Frames:     frames(frameWalk10-frameWalk01+1, aiMove, 4),
	}
	SoldierMoveRun = &MoveSequence{
		FirstFrame: frameRun01,
		LastFrame:  frameRun06,
		Frames:     frames(frameRun06-frameRun01+1, aiCharge, 11),
	}
	SoldierMovePain = &MoveSequence{
		FirstFrame: framePain01,
		LastFrame:  framePain05,
		Frames:     frames(framePain05-framePain01+1, aiMove, -3),
		End:        soldierPainEnd,
	}
	SoldierMoveDeath = &MoveSequence{
		FirstFrame: frameDeath01,
		LastFrame:  frameDeath12,
		Frames:     frames(frameDeath12-frameDeath01+1, nil, 0),
		End:        soldierDead,
	}
)
