package game

import "github.com/simukka/starship-formation/common"

// CubicBezier evaluates the curve through control points p0..p3 at t in [0, 1].
func CubicBezier(p0, p1, p2, p3 Vec2, t float64) Vec2 {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Vec2{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// SampleBezier returns n evenly spaced samples, t = i/(n-1), so the first
// sample is p0 and the last is p3.
func SampleBezier(p0, p1, p2, p3 Vec2, n int) []Vec2 {
	if n < 2 {
		return []Vec2{p0}
	}
	points := make([]Vec2, n)
	for i := 0; i < n; i++ {
		points[i] = CubicBezier(p0, p1, p2, p3, float64(i)/float64(n-1))
	}
	return points
}

// GenerateDivePath builds a dive from start that swoops down past the
// player's column and exits above the top edge.
//
// The two inner control points sit near playerX at 55-75% and 80-95% of the
// field height. The exit point has a random x and y = DiveExitY.
func GenerateDivePath(start Vec2, playerX float64, field Rect, rng common.Source) []Vec2 {
	p1 := Vec2{
		X: playerX + rng.RandomFloat(-100, 100),
		Y: field.Y + field.H*rng.RandomFloat(0.55, 0.75),
	}
	p2 := Vec2{
		X: playerX + rng.RandomFloat(-150, 150),
		Y: field.Y + field.H*rng.RandomFloat(0.8, 0.95),
	}
	p3 := Vec2{
		X: field.X + rng.RandomFloat(0, field.W),
		Y: DiveExitY,
	}
	return SampleBezier(start, p1, p2, p3, DivePathPoints)
}
