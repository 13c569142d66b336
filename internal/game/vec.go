package game

import "math"

func forward(yaw float32) (float32, float32) {
	r := float64(yaw) * math.Pi / 180
	return float32(math.Cos(r)), float32(math.Sin(r))
}

func yawTowards(from, to Vec3) float32 {
	dx, dy := float64(to[0]-from[0]), float64(to[1]-from[1])
	if dx == 0 && dy == 0 {
		return 0
	}
	yaw := math.Atan2(dy, dx) * 180 / math.Pi
	if yaw < 0 {
		yaw += 360
	}
	return float32(yaw)
}
