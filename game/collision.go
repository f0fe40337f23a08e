package game

import "math"

// Vec2 is a point or a velocity in playfield pixels.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the middle of the box.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Inset shrinks the box by d on every side. A box narrower than 2*d
// collapses to its center line instead of inverting.
func (r Rect) Inset(d float64) Rect {
	w := math.Max(0, r.W-2*d)
	h := math.Max(0, r.H-2*d)
	c := r.Center()
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Intersects reports strict overlap: boxes that only share an edge do not
// intersect.
func Intersects(a, b Rect) bool {
	return a.X < b.Right() && a.Right() > b.X &&
		a.Y < b.Bottom() && a.Bottom() > b.Y
}

// PointInRect reports whether (x, y) lies inside r, edges included.
func PointInRect(x, y float64, r Rect) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// CirclesOverlap reports whether two circles overlap. Compares squared
// distances to skip the sqrt.
func CirclesOverlap(ax, ay, ar, bx, by, br float64) bool {
	dx := ax - bx
	dy := ay - by
	rr := ar + br
	return dx*dx+dy*dy < rr*rr
}

// CircleIntersectsRect reports whether a circle overlaps a box.
func CircleIntersectsRect(cx, cy, radius float64, r Rect) bool {
	nx := math.Max(r.X, math.Min(cx, r.Right()))
	ny := math.Max(r.Y, math.Min(cy, r.Bottom()))
	dx := cx - nx
	dy := cy - ny
	return dx*dx+dy*dy < radius*radius
}

// Detect returns every active candidate overlapping subject, in candidate
// order. An inactive subject matches nothing and the subject never matches
// itself.
func Detect[T Entity](subject Entity, candidates []T) []T {
	if subject == nil || !subject.IsActive() {
		return nil
	}
	bounds := subject.Bounds()

	var hits []T
	for _, c := range candidates {
		if Entity(c) == subject || !c.IsActive() {
			continue
		}
		if Intersects(bounds, c.Bounds()) {
			hits = append(hits, c)
		}
	}
	return hits
}

// GroupHit pairs one entity of the first group with everything it overlaps
// in the second.
type GroupHit[A, B Entity] struct {
	Subject A
	Hits    []B
}

// DetectGroups runs Detect for every active member of groupA and returns the
// members with at least one hit. Results follow groupA order so resolution
// is deterministic. There is no broad phase: the counts involved are small.
func DetectGroups[A, B Entity](groupA []A, groupB []B) []GroupHit[A, B] {
	var out []GroupHit[A, B]
	for _, a := range groupA {
		if !a.IsActive() {
			continue
		}
		if hits := Detect(a, groupB); len(hits) > 0 {
			out = append(out, GroupHit[A, B]{Subject: a, Hits: hits})
		}
	}
	return out
}
