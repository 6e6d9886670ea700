package geometry

import "math"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Angle returns the direction from a to b in radians.
func Angle(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// PointAlong returns the point dist linear units from a toward b.
// If a and b coincide there is no direction to travel, so a is returned.
func PointAlong(a, b Point, dist float64) Point {
	total := Distance(a, b)
	if total == 0 {
		return a
	}
	t := dist / total
	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Extend returns the point dist linear units from origin along angle radians.
func Extend(origin Point, angle, dist float64) Point {
	return Point{
		X: origin.X + math.Cos(angle)*dist,
		Y: origin.Y + math.Sin(angle)*dist,
	}
}
