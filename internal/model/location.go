package model

import "math"

// Location is a point or direction on the arena plane.
// Value type, passed by value.
type Location struct {
	X float64
	Y float64
}

// NewLocation creates a Location with the given coordinates.
func NewLocation(x, y float64) Location {
	return Location{X: x, Y: y}
}

// Add returns l + o.
func (l Location) Add(o Location) Location {
	return Location{X: l.X + o.X, Y: l.Y + o.Y}
}

// Sub returns l - o.
func (l Location) Sub(o Location) Location {
	return Location{X: l.X - o.X, Y: l.Y - o.Y}
}

// Scale returns l multiplied by k.
func (l Location) Scale(k float64) Location {
	return Location{X: l.X * k, Y: l.Y * k}
}

// Length returns the vector length.
func (l Location) Length() float64 {
	return math.Hypot(l.X, l.Y)
}

// Normalized returns the unit vector in l's direction, or the zero vector.
func (l Location) Normalized() Location {
	n := l.Length()
	if n == 0 {
		return Location{}
	}
	return l.Scale(1 / n)
}

// DistanceSquared returns the squared distance to other (no sqrt).
func (l Location) DistanceSquared(other Location) float64 {
	dx := l.X - other.X
	dy := l.Y - other.Y
	return dx*dx + dy*dy
}

// Distance returns the distance to other.
func (l Location) Distance(other Location) float64 {
	return math.Sqrt(l.DistanceSquared(other))
}
